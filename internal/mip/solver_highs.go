package mip

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type highsSolver struct {
	path string
}

// NewHiGHSSolver shells out to the HiGHS binary. An empty path resolves
// "highs" through PATH.
func NewHiGHSSolver(path string) Solver {
	if path == "" {
		path = "highs"
	}
	return &highsSolver{path: path}
}

func (solver *highsSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	if model.NumVars() == 0 {
		// Nothing to hand the binary; the empty candidate decides feasibility.
		return NewEnumerationSolver().Solve(ctx, model)
	}

	dir, err := os.MkdirTemp("", "schedkit-highs-")
	if err != nil {
		return Solution{}, fmt.Errorf("cannot create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "model.sol")
	if err := os.WriteFile(lpPath, []byte(model.LP()), 0o600); err != nil {
		return Solution{}, fmt.Errorf("cannot write lp file: %v", err)
	}

	args := []string{"--solution_file", solPath}
	if deadline, ok := ctx.Deadline(); ok {
		seconds := time.Until(deadline).Seconds()
		if seconds < 1 {
			seconds = 1
		}
		args = append(args, "--time_limit", strconv.FormatFloat(seconds, 'f', 3, 64))
	}
	args = append(args, lpPath)

	cmd := exec.CommandContext(ctx, solver.path, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Solution{Status: StatusTimeout}, nil
		}
		return Solution{}, fmt.Errorf("highs execution failed: %v: %s", err, stderr.String())
	}

	raw, err := os.ReadFile(solPath)
	if err != nil {
		return Solution{}, fmt.Errorf("cannot read highs solution file: %v", err)
	}
	return parseHiGHSSolution(string(raw), model)
}

// parseHiGHSSolution reads the raw-style solution file HiGHS writes: a
// "Model status" block, an "Objective" line and a "# Columns n" block with one
// "name value" pair per column.
func parseHiGHSSolution(output string, model *Model) (Solution, error) {
	lines := strings.Split(output, "\n")

	status := StatusUnknown
	solution := Solution{}
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "Model status":
			for i+1 < len(lines) {
				i++
				statusLine := strings.TrimSpace(lines[i])
				if statusLine == "" {
					continue
				}
				status = highsStatus(statusLine)
				break
			}
		case strings.HasPrefix(line, "Objective"):
			fields := strings.Fields(line)
			if len(fields) == 2 {
				if value, err := strconv.ParseFloat(fields[1], 64); err == nil {
					solution.Objective = value
				}
			}
		case strings.HasPrefix(line, "# Columns"):
			fields := strings.Fields(line)
			count, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				return Solution{}, fmt.Errorf("invalid column count in highs solution: %v", err)
			}
			solution.Values = make([]float64, model.NumVars())
			for j := 1; j <= count && i+j < len(lines); j++ {
				pair := strings.Fields(lines[i+j])
				if len(pair) != 2 {
					return Solution{}, fmt.Errorf("invalid column line %q in highs solution", lines[i+j])
				}
				v, ok := model.Column(pair[0])
				if !ok {
					continue
				}
				value, err := strconv.ParseFloat(pair[1], 64)
				if err != nil {
					return Solution{}, fmt.Errorf("invalid value %q for column %s in highs solution: %v", pair[1], pair[0], err)
				}
				solution.Values[v] = value
			}
			i += count
		}
	}

	solution.Status = status
	if status != StatusOptimal {
		return Solution{Status: status}, nil
	}
	if solution.Values == nil {
		return Solution{}, fmt.Errorf("highs solution file has no column block")
	}
	return solution, nil
}

func highsStatus(line string) Status {
	lowered := strings.ToLower(line)
	switch {
	case lowered == "optimal":
		return StatusOptimal
	case strings.Contains(lowered, "infeasible"):
		return StatusInfeasible
	case strings.Contains(lowered, "unbounded"):
		return StatusUnbounded
	case strings.Contains(lowered, "time limit"):
		return StatusTimeout
	default:
		return StatusUnknown
	}
}
