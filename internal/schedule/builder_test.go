package schedule

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedkit/schedkit/internal/mip"
)

func TestBuildPlan(t *testing.T) {
	// Arrange
	catalog := testCatalog(t)

	// Act
	plan, err := BuildPlan(catalog, StandardConstraints(DefaultOverlapBuffer))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 15, plan.Space().Len())
	assert.Len(t, plan.Context().Vars, 15)

	rows := plan.BaseConstraints()
	require.Len(t, rows, 24)
	assert.Equal(t, "assign_course_CS101", rows[0].Name)
	assert.Equal(t, "no_instructor_overlap_Rivera_MWF-0900", rows[4].Name)
	assert.Equal(t, "no_room_overlap_R101_MWF-0900", rows[12].Name)
}

func TestBuildPlanIsReproducible(t *testing.T) {
	catalog := testCatalog(t)
	constraints := StandardConstraints(DefaultOverlapBuffer)

	first, err := BuildPlan(catalog, constraints)
	require.NoError(t, err)
	second, err := BuildPlan(catalog, constraints)
	require.NoError(t, err)

	// Plugins generate concurrently but rows land in plugin order, so two
	// builds of the same inputs produce the same constraint sequence.
	names := func(rows []mip.Constraint) []string {
		return lo.Map(rows, func(r mip.Constraint, _ int) string { return r.Name })
	}
	assert.Equal(t, names(first.BaseConstraints()), names(second.BaseConstraints()))
}

func TestBuildPlanWrapsPluginErrors(t *testing.T) {
	catalog := testCatalog(t)

	_, err := BuildPlan(catalog, []Constraint{
		AssignAllCourses{},
		ForceRooms{Pins: []RoomPin{{Course: "CS999", Room: "R101"}}},
	})

	var pluginErr *PluginError
	require.ErrorAs(t, err, &pluginErr)
	assert.Equal(t, "force_rooms", pluginErr.Plugin)
	assert.Equal(t, -1, pluginErr.Stage)
	assert.ErrorContains(t, pluginErr.Err, "unknown course")
}

func TestNewRunModelIsolatesRuns(t *testing.T) {
	catalog := testCatalog(t)
	plan, err := BuildPlan(catalog, StandardConstraints(DefaultOverlapBuffer))
	require.NoError(t, err)

	run := plan.NewRunModel()
	run.AddConstraint(mip.Constraint{Name: "lock_objective_0", Rel: mip.LessEq, RHS: 1})

	assert.Equal(t, 25, run.NumConstraints())
	assert.Equal(t, 24, len(plan.BaseConstraints()))
	assert.Equal(t, 24, plan.NewRunModel().NumConstraints())
}

func TestModelContextSums(t *testing.T) {
	mc := testContext(t)
	a := Key{Course: "CS101", Room: "R101", Slot: "MWF-0900"}
	b := Key{Course: "CS101", Room: "R101", Slot: "MWF-1000"}

	t.Run("sum keys", func(t *testing.T) {
		expr := mc.SumKeys([]Key{a, b})

		assert.Equal(t, 2, expr.Len())
		values := make([]float64, len(mc.Vars))
		values[mc.Vars[a]] = 1
		assert.Equal(t, 1.0, expr.Value(values))
	})

	t.Run("repeated keys merge", func(t *testing.T) {
		expr := mc.SumKeys([]Key{a, a})

		assert.Equal(t, 1, expr.Len())
		values := make([]float64, len(mc.Vars))
		values[mc.Vars[a]] = 1
		assert.Equal(t, 2.0, expr.Value(values))
	})

	t.Run("weighted sum", func(t *testing.T) {
		expr := mc.WeightedSum([]Key{a, b}, func(k Key) float64 {
			return float64(mc.Catalog.Enrollment(k.Course))
		})

		values := make([]float64, len(mc.Vars))
		values[mc.Vars[b]] = 1
		assert.Equal(t, 25.0, expr.Value(values))
	})
}

func TestChosenKeys(t *testing.T) {
	// Arrange
	catalog := testCatalog(t)
	plan, err := BuildPlan(catalog, nil)
	require.NoError(t, err)

	vars := plan.Context().Vars
	values := make([]float64, len(vars))
	values[vars[Key{Course: "CS102", Room: "R202", Slot: "TTH-0930"}]] = 1
	values[vars[Key{Course: "CS101", Room: "R101", Slot: "MWF-0900"}]] = 1
	values[vars[Key{Course: "BIO201L", Room: "LAB1", Slot: "T-1400"}]] = 1

	// Act
	keys := plan.ChosenKeys(mip.Solution{Status: mip.StatusOptimal, Values: values})

	// Assert: sorted by course, room, slot regardless of column order.
	assert.Equal(t, []Key{
		{Course: "BIO201L", Room: "LAB1", Slot: "T-1400"},
		{Course: "CS101", Room: "R101", Slot: "MWF-0900"},
		{Course: "CS102", Room: "R202", Slot: "TTH-0930"},
	}, keys)
}
