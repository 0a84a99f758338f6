package schedule

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schedkit/schedkit/internal/mip"
)

// StageResult records one solved objective: the value the solver reached and
// the bound that value froze for later stages. Constraints is the size of the
// model's constraint sequence when the stage solved.
type StageResult struct {
	Objective   string
	Sense       mip.Sense
	Value       float64
	Tolerance   float64
	Bound       float64
	Constraints int
}

// Result is a completed optimization run.
type Result struct {
	RunID      string
	Assignment []Key
	Stages     []StageResult
}

// Engine runs lexicographic optimization over a built plan. Each run owns a
// fresh clone of the base model; stages run strictly in order because every
// stage's model depends on the optimum discovered by the one before it.
type Engine struct {
	plan   *Plan
	solver mip.Solver
	logger *zap.Logger
}

func NewEngine(plan *Plan, solver mip.Solver, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{plan: plan, solver: solver, logger: logger}
}

// Optimize solves the objectives in priority order. After each optimal stage
// the achieved value is frozen, within the objective's tolerance, as a
// constraint on every later stage; the last stage's bound is reported but not
// appended since nothing runs after it. The first non-optimal stage aborts
// the run with an error carrying every previously solved stage.
func (e *Engine) Optimize(ctx context.Context, objectives []Objective) (*Result, error) {
	infos := make([]ObjectiveInfo, len(objectives))
	for i, objective := range objectives {
		infos[i] = objective.Info()
		if infos[i].Tolerance < 0 {
			return nil, fmt.Errorf("objective %d (%s): tolerance must be non-negative, got %v", i, infos[i].Name, infos[i].Tolerance)
		}
	}

	model := e.plan.NewRunModel()
	result := &Result{RunID: uuid.NewString()}

	if len(objectives) == 0 {
		e.logger.Warn("no objectives specified, solving for feasibility only")
		solution, err := e.solver.Solve(ctx, model)
		if err != nil {
			return nil, err
		}
		switch solution.Status {
		case mip.StatusOptimal:
			result.Assignment = e.plan.ChosenKeys(solution)
			return result, nil
		case mip.StatusTimeout:
			return nil, &SolverTimeoutError{Stage: 0, Objective: "feasibility"}
		default:
			return nil, &InfeasibleModelError{Status: solution.Status}
		}
	}

	var last mip.Solution
	for i, objective := range objectives {
		info := infos[i]
		e.logger.Info("optimizing objective",
			zap.Int("stage", i+1),
			zap.Int("stages", len(objectives)),
			zap.String("objective", info.Name),
			zap.String("sense", info.Sense.String()))

		expr, err := objective.Evaluate(e.plan.Context())
		if err != nil {
			return nil, &PluginError{Plugin: info.Name, Stage: i, Err: err}
		}
		model.SetObjective(expr, info.Sense)

		solution, err := e.solver.Solve(ctx, model)
		if err != nil {
			return nil, fmt.Errorf("objective %d (%s): %w", i, info.Name, err)
		}
		switch solution.Status {
		case mip.StatusOptimal:
		case mip.StatusTimeout:
			return nil, &SolverTimeoutError{Stage: i, Objective: info.Name, Completed: slices.Clone(result.Stages)}
		default:
			if i == 0 {
				return nil, &InfeasibleModelError{Status: solution.Status}
			}
			return nil, &StagedInfeasibilityError{
				Stage:     i,
				Objective: info.Name,
				Status:    solution.Status,
				Completed: slices.Clone(result.Stages),
			}
		}

		stage := StageResult{
			Objective:   info.Name,
			Sense:       info.Sense,
			Value:       solution.Objective,
			Tolerance:   info.Tolerance,
			Bound:       frozenBound(info.Sense, solution.Objective, info.Tolerance),
			Constraints: model.NumConstraints(),
		}
		result.Stages = append(result.Stages, stage)
		last = solution
		e.logger.Info("objective solved",
			zap.Int("stage", i+1),
			zap.Float64("value", stage.Value))

		if i < len(objectives)-1 {
			rel := mip.LessEq
			if info.Sense == mip.Maximize {
				rel = mip.GreaterEq
			}
			model.AddConstraint(mip.Constraint{
				Name: fmt.Sprintf("lock_objective_%d", i),
				Expr: expr,
				Rel:  rel,
				RHS:  stage.Bound,
			})
			e.logger.Info("objective frozen",
				zap.Int("stage", i+1),
				zap.Float64("bound", stage.Bound),
				zap.Float64("tolerance", info.Tolerance))
		}
	}

	result.Assignment = e.plan.ChosenKeys(last)
	return result, nil
}

// frozenBound applies the tolerance away from the optimum: minimized values
// may rise by tolerance*|value|, maximized values may drop by the same
// amount. Scaling by the magnitude keeps the slack direction correct when the
// optimum is negative, and a zero optimum pins the bound to zero exactly.
func frozenBound(sense mip.Sense, value, tolerance float64) float64 {
	slack := tolerance * math.Abs(value)
	if sense == mip.Maximize {
		return value - slack
	}
	return value + slack
}
