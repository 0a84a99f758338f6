package schedule

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/schedkit/schedkit/internal/mip"
)

// ModelContext is the read-only view handed to constraint and objective
// plugins: the catalog, the key universe and the key-to-column binding.
type ModelContext struct {
	Catalog *Catalog
	Space   *Space
	Vars    map[Key]mip.Var
}

// SumKeys builds the unit-coefficient sum over the keys' decision variables.
func (mc ModelContext) SumKeys(keys []Key) mip.LinearExpr {
	var expr mip.LinearExpr
	for _, k := range keys {
		expr.Add(mc.Vars[k], 1)
	}
	return expr
}

// WeightedSum builds a sum with a per-key coefficient.
func (mc ModelContext) WeightedSum(keys []Key, weight func(Key) float64) mip.LinearExpr {
	var expr mip.LinearExpr
	for _, k := range keys {
		expr.Add(mc.Vars[k], weight(k))
	}
	return expr
}

// Plan is the built base: catalog, space, column bindings and the base model
// with every hard constraint applied. Runs clone the model and never touch
// the base.
type Plan struct {
	catalog *Catalog
	space   *Space
	vars    map[Key]mip.Var
	keyOf   []Key
	base    *mip.Model
}

// BuildPlan enumerates the space, binds one binary column per key and runs
// every constraint plugin once. Plugins generate concurrently; their rows are
// appended in plugin order so the constraint sequence stays reproducible.
func BuildPlan(catalog *Catalog, constraints []Constraint) (*Plan, error) {
	space := NewSpace(catalog)
	model := mip.NewModel("course_schedule")

	keys := space.Keys()
	vars := make(map[Key]mip.Var, len(keys))
	keyOf := make([]Key, len(keys))
	for i, key := range keys {
		v := model.AddBinary("x" + strconv.Itoa(i))
		vars[key] = v
		keyOf[v] = key
	}

	mc := ModelContext{Catalog: catalog, Space: space, Vars: vars}

	type generated struct {
		index int
		rows  []mip.Constraint
		err   error
	}
	results := make(chan generated)
	for i, constraint := range constraints {
		go func(index int, constraint Constraint) {
			rows, err := constraint.Generate(mc)
			results <- generated{index: index, rows: rows, err: err}
		}(i, constraint)
	}

	collected := make([][]mip.Constraint, len(constraints))
	errs := make([]error, len(constraints))
	for range constraints {
		g := <-results
		collected[g.index] = g.rows
		errs[g.index] = g.err
	}

	for i, err := range errs {
		if err != nil {
			return nil, &PluginError{Plugin: constraints[i].Name(), Stage: -1, Err: err}
		}
	}
	for _, rows := range collected {
		for _, row := range rows {
			model.AddConstraint(row)
		}
	}

	return &Plan{
		catalog: catalog,
		space:   space,
		vars:    vars,
		keyOf:   keyOf,
		base:    model,
	}, nil
}

func (p *Plan) Catalog() *Catalog {
	return p.catalog
}

func (p *Plan) Space() *Space {
	return p.space
}

func (p *Plan) Context() ModelContext {
	return ModelContext{Catalog: p.catalog, Space: p.space, Vars: p.vars}
}

// NewRunModel clones the base so one optimization run can accumulate frozen
// constraints without leaking into the next run.
func (p *Plan) NewRunModel() *mip.Model {
	return p.base.Clone()
}

// BaseConstraints exposes the base constraint sequence for inspection.
func (p *Plan) BaseConstraints() []mip.Constraint {
	return p.base.Constraints()
}

// ChosenKeys maps a solution's picked columns back to placement keys, sorted
// by course, then room, then slot.
func (p *Plan) ChosenKeys(solution mip.Solution) []Key {
	keys := lo.Map(solution.Picked(), func(v mip.Var, _ int) Key {
		return p.keyOf[v]
	})
	slices.SortFunc(keys, func(a, b Key) int {
		if c := strings.Compare(a.Course, b.Course); c != 0 {
			return c
		}
		if c := strings.Compare(a.Room, b.Room); c != 0 {
			return c
		}
		return strings.Compare(a.Slot, b.Slot)
	})
	return keys
}
