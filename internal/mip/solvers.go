package mip

import (
	"fmt"
	"sort"
)

// SolverConfig names a registered solver and, for the external ones, the
// binary to run. There is no ambient lookup: an empty path only ever falls
// back to PATH resolution of the conventional binary name.
type SolverConfig struct {
	Name string
	Path string
}

var solverFactories = map[string]func(path string) Solver{
	"cbc":   NewCBCSolver,
	"highs": NewHiGHSSolver,
	"enum":  func(string) Solver { return NewEnumerationSolver() },
}

// NewSolver builds a solver by registry name.
func NewSolver(cfg SolverConfig) (Solver, error) {
	factory, ok := solverFactories[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q, available: %v", cfg.Name, SolverNames())
	}
	return factory(cfg.Path), nil
}

func SolverNames() []string {
	names := make([]string, 0, len(solverFactories))
	for name := range solverFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
