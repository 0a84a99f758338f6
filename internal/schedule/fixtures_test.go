package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testCatalog is the shared department fixture: two instructors, three rooms,
// three lecture slots and one lab slot. Small enough for the enumeration
// solver, rich enough to exercise capacity pruning, type matching and the
// overlap buffer.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	courses := []Course{
		{ID: "CS101", Instructor: "Rivera", Enrollment: 25, Type: "Lecture"},
		{ID: "CS102", Instructor: "Rivera", Enrollment: 18, Type: "Lecture"},
		{ID: "BIO201", Instructor: "Chen", Enrollment: 30, Type: "Lecture"},
		{ID: "BIO201L", Instructor: "Chen", Enrollment: 12, Type: "Lab"},
	}
	rooms := []Room{
		{ID: "R101", Capacity: 30},
		{ID: "R202", Capacity: 20},
		{ID: "LAB1", Capacity: 16},
	}
	slots := []TimeSlot{
		{ID: "MWF-0900", Days: "MWF", Start: "09:00", End: "09:50", Type: "Lecture"},
		{ID: "MWF-1000", Days: "MWF", Start: "10:00", End: "10:50", Type: "Lecture"},
		{ID: "TTH-0930", Days: "TTH", Start: "09:30", End: "10:45", Type: "Lecture"},
		{ID: "T-1400", Days: "T", Start: "14:00", End: "16:50", Type: "Lab"},
	}
	catalog, err := NewCatalog(courses, rooms, slots)
	require.NoError(t, err)
	return catalog
}

func testContext(t *testing.T) ModelContext {
	t.Helper()
	plan, err := BuildPlan(testCatalog(t), nil)
	require.NoError(t, err)
	return plan.Context()
}
