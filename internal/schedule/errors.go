package schedule

import (
	"fmt"

	"github.com/schedkit/schedkit/internal/mip"
)

// LoadError reports a catalog record that cannot be accepted: duplicate or
// empty identifiers, missing instructors, unparseable slot times.
type LoadError struct {
	Entity string
	ID     string
	Reason string
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("cannot load %s %q: %s", err.Entity, err.ID, err.Reason)
}

// InfeasibleModelError means the hard constraints alone admit no solution.
// It is raised at the first solve attempt, or by the matching screen before
// any solver runs.
type InfeasibleModelError struct {
	Status mip.Status
	Reason string
}

func (err *InfeasibleModelError) Error() string {
	if err.Reason != "" {
		return fmt.Sprintf("base model admits no solution: %s", err.Reason)
	}
	return fmt.Sprintf("base model admits no solution (status: %s)", err.Status)
}

// StagedInfeasibilityError means a later stage became infeasible under a
// frozen bound from an earlier stage. Completed holds every stage solved
// before the failure, including the bound each one froze.
type StagedInfeasibilityError struct {
	Stage     int
	Objective string
	Status    mip.Status
	Completed []StageResult
}

func (err *StagedInfeasibilityError) Error() string {
	last := err.Completed[len(err.Completed)-1]
	return fmt.Sprintf("objective %d (%s) is infeasible under the frozen bound %g from %q (status: %s)",
		err.Stage, err.Objective, last.Bound, last.Objective, err.Status)
}

// SolverTimeoutError means a stage exceeded the solve's resource budget.
type SolverTimeoutError struct {
	Stage     int
	Objective string
	Completed []StageResult
}

func (err *SolverTimeoutError) Error() string {
	return fmt.Sprintf("objective %d (%s) exceeded the solver's resource budget", err.Stage, err.Objective)
}

// PluginError wraps a failure inside a constraint or objective plugin with
// the plugin's name and the stage it failed in. A negative stage marks model
// build, before any objective ran.
type PluginError struct {
	Plugin string
	Stage  int
	Err    error
}

func (err *PluginError) Error() string {
	if err.Stage < 0 {
		return fmt.Sprintf("plugin %q failed during model build: %v", err.Plugin, err.Err)
	}
	return fmt.Sprintf("plugin %q failed at objective %d: %v", err.Plugin, err.Stage, err.Err)
}

func (err *PluginError) Unwrap() error {
	return err.Err
}
