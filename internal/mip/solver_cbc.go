package mip

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type cbcSolver struct {
	path string
}

// NewCBCSolver shells out to the COIN-OR cbc binary. An empty path resolves
// "cbc" through PATH.
func NewCBCSolver(path string) Solver {
	if path == "" {
		path = "cbc"
	}
	return &cbcSolver{path: path}
}

func (solver *cbcSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	if model.NumVars() == 0 {
		// Nothing to hand the binary; the empty candidate decides feasibility.
		return NewEnumerationSolver().Solve(ctx, model)
	}

	dir, err := os.MkdirTemp("", "schedkit-cbc-")
	if err != nil {
		return Solution{}, fmt.Errorf("cannot create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "model.sol")
	if err := os.WriteFile(lpPath, []byte(model.LP()), 0o600); err != nil {
		return Solution{}, fmt.Errorf("cannot write lp file: %v", err)
	}

	// Same argument layout PuLP uses for its bundled cbc: options between the
	// model path and the solve directive, solution file after it.
	args := []string{lpPath}
	if deadline, ok := ctx.Deadline(); ok {
		seconds := int(math.Ceil(time.Until(deadline).Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		args = append(args, "sec", strconv.Itoa(seconds))
	}
	args = append(args, "solve", "solu", solPath)

	cmd := exec.CommandContext(ctx, solver.path, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Solution{Status: StatusTimeout}, nil
		}
		return Solution{}, fmt.Errorf("cbc execution failed: %v: %s", err, stderr.String())
	}

	raw, err := os.ReadFile(solPath)
	if err != nil {
		return Solution{}, fmt.Errorf("cannot read cbc solution file: %v", err)
	}
	return parseCBCSolution(string(raw), model)
}

// parseCBCSolution reads cbc's "solu" file: a status header carrying the
// objective value, then one "index name value reduced-cost" row per column.
func parseCBCSolution(output string, model *Model) (Solution, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	header := strings.TrimSpace(lines[0])
	if header == "" {
		return Solution{}, fmt.Errorf("empty cbc solution file")
	}

	status := StatusUnknown
	lowered := strings.ToLower(header)
	switch {
	case strings.HasPrefix(lowered, "optimal"):
		status = StatusOptimal
	case strings.Contains(lowered, "infeasible"):
		status = StatusInfeasible
	case strings.HasPrefix(lowered, "unbounded"):
		status = StatusUnbounded
	case strings.HasPrefix(lowered, "stopped"):
		status = StatusTimeout
	}
	if status != StatusOptimal {
		return Solution{Status: status}, nil
	}

	solution := Solution{Status: StatusOptimal, Values: make([]float64, model.NumVars())}
	headerFields := strings.Fields(header)
	if value, err := strconv.ParseFloat(headerFields[len(headerFields)-1], 64); err == nil {
		solution.Objective = value
	}

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "**" {
			// cbc flags rows violating a bound with a leading marker.
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		name, valueStr := fields[1], fields[2]
		v, ok := model.Column(name)
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return Solution{}, fmt.Errorf("invalid value %q for column %s in cbc solution: %v", valueStr, name, err)
		}
		solution.Values[v] = value
	}
	return solution, nil
}
