package mip

import (
	"context"
	"fmt"
	"math"
	"slices"
)

// enumColumnLimit caps the exhaustive search; beyond it the external
// adapters are the right tool.
const enumColumnLimit = 24

const feasibilityEps = 1e-6

type enumerationSolver struct{}

// NewEnumerationSolver solves by exhaustive enumeration of the binary cube.
// Exact and dependency-free for small models, which also makes it the
// reference oracle in tests.
func NewEnumerationSolver() Solver {
	return &enumerationSolver{}
}

func (solver *enumerationSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	n := model.NumVars()
	if n > enumColumnLimit {
		return Solution{}, fmt.Errorf("model %q has %d columns, enumeration handles at most %d", model.Name(), n, enumColumnLimit)
	}

	objective, sense, hasObjective := model.Objective()
	values := make([]float64, n)
	best := Solution{Status: StatusInfeasible}

	limit := uint64(1) << n
	for mask := uint64(0); mask < limit; mask++ {
		if mask%4096 == 0 && ctx.Err() != nil {
			return Solution{Status: StatusTimeout}, nil
		}
		for i := range values {
			values[i] = float64((mask >> i) & 1)
		}
		if !feasible(model.constraints, values) {
			continue
		}
		value := 0.0
		if hasObjective {
			value = objective.Value(values)
		}
		if best.Status != StatusOptimal || strictlyBetter(sense, value, best.Objective) {
			best = Solution{Status: StatusOptimal, Values: slices.Clone(values), Objective: value}
		}
		if !hasObjective {
			// Any feasible point settles a pure feasibility solve.
			break
		}
	}
	return best, nil
}

func feasible(constraints []Constraint, values []float64) bool {
	for _, c := range constraints {
		lhs := c.Expr.Value(values)
		switch c.Rel {
		case LessEq:
			if lhs > c.RHS+feasibilityEps {
				return false
			}
		case GreaterEq:
			if lhs < c.RHS-feasibilityEps {
				return false
			}
		case Equal:
			if math.Abs(lhs-c.RHS) > feasibilityEps {
				return false
			}
		}
	}
	return true
}

// strictlyBetter keeps the first incumbent among ties, so runs are
// deterministic for a fixed column order.
func strictlyBetter(sense Sense, candidate, incumbent float64) bool {
	if sense == Maximize {
		return candidate > incumbent
	}
	return candidate < incumbent
}
