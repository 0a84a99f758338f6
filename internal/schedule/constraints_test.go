package schedule

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedkit/schedkit/internal/mip"
)

func rowByName(t *testing.T, rows []mip.Constraint, name string) mip.Constraint {
	t.Helper()
	row, found := lo.Find(rows, func(r mip.Constraint) bool { return r.Name == name })
	require.True(t, found, "no constraint named %s", name)
	return row
}

func TestStandardConstraints(t *testing.T) {
	constraints := StandardConstraints(DefaultOverlapBuffer)

	names := lo.Map(constraints, func(c Constraint, _ int) string { return c.Name() })
	assert.Equal(t, []string{"assign_all_courses", "no_instructor_overlap", "no_room_overlap"}, names)
}

func TestAssignAllCourses(t *testing.T) {
	// Arrange
	mc := testContext(t)

	// Act
	rows, err := AssignAllCourses{}.Generate(mc)

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 4)

	row := rowByName(t, rows, "assign_course_CS101")
	assert.Equal(t, mip.Equal, row.Rel)
	assert.Equal(t, 1.0, row.RHS)
	assert.Equal(t, 3, row.Expr.Len())

	assert.Equal(t, 6, rowByName(t, rows, "assign_course_CS102").Expr.Len())
}

func TestAssignAllCoursesKeepsImpossibleCourses(t *testing.T) {
	// Arrange: 80 students fit nowhere, so the course has no keys.
	catalog, err := NewCatalog(
		[]Course{{ID: "CHEM500", Instructor: "Okafor", Enrollment: 80, Type: "Lecture"}},
		[]Room{{ID: "R101", Capacity: 30}},
		[]TimeSlot{{ID: "MWF-0900", Days: "MWF", Start: "09:00", End: "09:50", Type: "Lecture"}},
	)
	require.NoError(t, err)
	plan, err := BuildPlan(catalog, nil)
	require.NoError(t, err)

	// Act
	rows, err := AssignAllCourses{}.Generate(plan.Context())

	// Assert: an empty row equal to one stays in the model and makes it
	// infeasible instead of silently dropping the course.
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Expr.Len())
	assert.Equal(t, mip.Equal, rows[0].Rel)
	assert.Equal(t, 1.0, rows[0].RHS)
}

func TestNoInstructorOverlap(t *testing.T) {
	mc := testContext(t)

	t.Run("one row per instructor and slot", func(t *testing.T) {
		rows, err := NoInstructorOverlap{BufferMinutes: DefaultOverlapBuffer}.Generate(mc)

		require.NoError(t, err)
		assert.Len(t, rows, 8)
		assert.True(t, lo.EveryBy(rows, func(r mip.Constraint) bool {
			return r.Rel == mip.LessEq && r.RHS == 1
		}))
	})

	t.Run("buffer pulls back to back slots into one window", func(t *testing.T) {
		rows, err := NoInstructorOverlap{BufferMinutes: DefaultOverlapBuffer}.Generate(mc)
		require.NoError(t, err)

		// MWF-0900 ends ten minutes before MWF-1000 starts, inside the buffer,
		// so Rivera's window at MWF-1000 spans both slots: CS101 contributes
		// two keys and CS102 four.
		row := rowByName(t, rows, "no_instructor_overlap_Rivera_MWF-1000")
		assert.Equal(t, 6, row.Expr.Len())
	})

	t.Run("without buffer the slots are independent", func(t *testing.T) {
		rows, err := NoInstructorOverlap{}.Generate(mc)
		require.NoError(t, err)

		row := rowByName(t, rows, "no_instructor_overlap_Rivera_MWF-1000")
		assert.Equal(t, 3, row.Expr.Len())
	})
}

func TestNoRoomOverlap(t *testing.T) {
	mc := testContext(t)

	// Act
	rows, err := NoRoomOverlap{BufferMinutes: DefaultOverlapBuffer}.Generate(mc)

	// Assert
	require.NoError(t, err)
	assert.Len(t, rows, 12)

	row := rowByName(t, rows, "no_room_overlap_R101_MWF-1000")
	assert.Equal(t, mip.LessEq, row.Rel)
	assert.Equal(t, 6, row.Expr.Len())

	// Only BIO201L fits LAB1, and only in the lab slot.
	assert.Equal(t, 0, rowByName(t, rows, "no_room_overlap_LAB1_MWF-0900").Expr.Len())
	assert.Equal(t, 1, rowByName(t, rows, "no_room_overlap_LAB1_T-1400").Expr.Len())
}

func TestForceRooms(t *testing.T) {
	mc := testContext(t)

	t.Run("pins a course to a room", func(t *testing.T) {
		rows, err := ForceRooms{Pins: []RoomPin{{Course: "CS102", Room: "R202"}}}.Generate(mc)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "force_room_CS102", rows[0].Name)
		assert.Equal(t, mip.Equal, rows[0].Rel)
		assert.Equal(t, 1.0, rows[0].RHS)
		assert.Equal(t, 3, rows[0].Expr.Len())
	})

	t.Run("capacity pruned pin becomes an unsatisfiable row", func(t *testing.T) {
		rows, err := ForceRooms{Pins: []RoomPin{{Course: "CS101", Room: "R202"}}}.Generate(mc)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 0, rows[0].Expr.Len())
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := ForceRooms{Pins: []RoomPin{{Course: "CS999", Room: "R101"}}}.Generate(mc)

		assert.ErrorContains(t, err, "unknown course")
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := ForceRooms{Pins: []RoomPin{{Course: "CS101", Room: "R999"}}}.Generate(mc)

		assert.ErrorContains(t, err, "unknown room")
	})
}

func TestForceTimeSlots(t *testing.T) {
	mc := testContext(t)

	t.Run("pins a course to a slot", func(t *testing.T) {
		rows, err := ForceTimeSlots{Pins: []SlotPin{{Course: "BIO201L", Slot: "T-1400"}}}.Generate(mc)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "force_time_slot_BIO201L", rows[0].Name)
		assert.Equal(t, 3, rows[0].Expr.Len())
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, err := ForceTimeSlots{Pins: []SlotPin{{Course: "CS101", Slot: "SU-0800"}}}.Generate(mc)

		assert.ErrorContains(t, err, "unknown time slot")
	})
}
