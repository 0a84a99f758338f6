package mip

import "context"

type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Solution is the outcome of one solve. Values holds one entry per model
// column and is populated only when Status is StatusOptimal.
type Solution struct {
	Status    Status
	Values    []float64
	Objective float64
}

// Picked reports the columns set to 1 in the solution.
func (s Solution) Picked() []Var {
	picked := make([]Var, 0, len(s.Values))
	for i, value := range s.Values {
		if value > 0.5 {
			picked = append(picked, Var(i))
		}
	}
	return picked
}

// Solver solves a binary integer program. The context deadline is the solve's
// resource budget: exceeding it yields StatusTimeout, not an error. An error
// return means the solver itself could not run.
type Solver interface {
	Solve(ctx context.Context, model *Model) (Solution, error)
}
