package schedule

import (
	"fmt"

	"github.com/schedkit/schedkit/internal/mip"
)

// DefaultOverlapBuffer is the turnaround gap between classes: a slot still
// counts as occupied this many minutes after it ends.
const DefaultOverlapBuffer = 15

// Constraint contributes rows to the base model. Implementations read the
// context and return relations; they never mutate it.
type Constraint interface {
	Name() string
	Generate(mc ModelContext) ([]mip.Constraint, error)
}

// StandardConstraints is the hard-constraint pipeline every schedule model
// carries. Room capacity needs no row here: keys that would violate it do not
// exist in the space.
func StandardConstraints(bufferMinutes int) []Constraint {
	return []Constraint{
		AssignAllCourses{},
		NoInstructorOverlap{BufferMinutes: bufferMinutes},
		NoRoomOverlap{BufferMinutes: bufferMinutes},
	}
}

// AssignAllCourses pins every course to exactly one placement. A course with
// no candidate keys yields an unsatisfiable row, which is the correct way to
// surface it: the model is infeasible, not malformed.
type AssignAllCourses struct{}

func (AssignAllCourses) Name() string {
	return "assign_all_courses"
}

func (AssignAllCourses) Generate(mc ModelContext) ([]mip.Constraint, error) {
	constraints := make([]mip.Constraint, 0, len(mc.Catalog.courses))
	for _, course := range mc.Catalog.courses {
		keys := mc.Space.FilterKeys(ByCourse(course.ID))
		constraints = append(constraints, mip.Constraint{
			Name: "assign_course_" + course.ID,
			Expr: mc.SumKeys(keys),
			Rel:  mip.Equal,
			RHS:  1,
		})
	}
	return constraints, nil
}

// NoInstructorOverlap keeps each instructor in at most one class per
// overlapping slot window.
type NoInstructorOverlap struct {
	BufferMinutes int
}

func (NoInstructorOverlap) Name() string {
	return "no_instructor_overlap"
}

func (c NoInstructorOverlap) Generate(mc ModelContext) ([]mip.Constraint, error) {
	constraints := make([]mip.Constraint, 0, len(mc.Catalog.instructors)*len(mc.Catalog.slots))
	for _, instructor := range mc.Catalog.instructors {
		teaches := mc.Catalog.ByInstructor(instructor)
		for _, slot := range mc.Catalog.slots {
			keys := mc.Space.FilterKeys(And(teaches, mc.Catalog.OverlapsSlot(slot.ID, c.BufferMinutes)))
			constraints = append(constraints, mip.Constraint{
				Name: fmt.Sprintf("no_instructor_overlap_%s_%s", instructor, slot.ID),
				Expr: mc.SumKeys(keys),
				Rel:  mip.LessEq,
				RHS:  1,
			})
		}
	}
	return constraints, nil
}

// NoRoomOverlap keeps each room hosting at most one class per overlapping
// slot window.
type NoRoomOverlap struct {
	BufferMinutes int
}

func (NoRoomOverlap) Name() string {
	return "no_room_overlap"
}

func (c NoRoomOverlap) Generate(mc ModelContext) ([]mip.Constraint, error) {
	constraints := make([]mip.Constraint, 0, len(mc.Catalog.rooms)*len(mc.Catalog.slots))
	for _, room := range mc.Catalog.rooms {
		inRoom := ByRoom(room.ID)
		for _, slot := range mc.Catalog.slots {
			keys := mc.Space.FilterKeys(And(inRoom, mc.Catalog.OverlapsSlot(slot.ID, c.BufferMinutes)))
			constraints = append(constraints, mip.Constraint{
				Name: fmt.Sprintf("no_room_overlap_%s_%s", room.ID, slot.ID),
				Expr: mc.SumKeys(keys),
				Rel:  mip.LessEq,
				RHS:  1,
			})
		}
	}
	return constraints, nil
}

// RoomPin names the room a course must end up in.
type RoomPin struct {
	Course string `mapstructure:"course"`
	Room   string `mapstructure:"room"`
}

// ForceRooms pins courses to specific rooms. Unknown identifiers are plugin
// errors; a pin whose keys were pruned on capacity grounds stays in the model
// as an unsatisfiable row.
type ForceRooms struct {
	Pins []RoomPin `mapstructure:"pins"`
}

func (ForceRooms) Name() string {
	return "force_rooms"
}

func (c ForceRooms) Generate(mc ModelContext) ([]mip.Constraint, error) {
	constraints := make([]mip.Constraint, 0, len(c.Pins))
	for _, pin := range c.Pins {
		if _, ok := mc.Catalog.Course(pin.Course); !ok {
			return nil, fmt.Errorf("unknown course %q", pin.Course)
		}
		if _, ok := mc.Catalog.Room(pin.Room); !ok {
			return nil, fmt.Errorf("unknown room %q", pin.Room)
		}
		keys := mc.Space.FilterKeys(And(ByCourse(pin.Course), ByRoom(pin.Room)))
		constraints = append(constraints, mip.Constraint{
			Name: "force_room_" + pin.Course,
			Expr: mc.SumKeys(keys),
			Rel:  mip.Equal,
			RHS:  1,
		})
	}
	return constraints, nil
}

// SlotPin names the time slot a course must end up in.
type SlotPin struct {
	Course string `mapstructure:"course"`
	Slot   string `mapstructure:"slot"`
}

// ForceTimeSlots pins courses to specific time slots.
type ForceTimeSlots struct {
	Pins []SlotPin `mapstructure:"pins"`
}

func (ForceTimeSlots) Name() string {
	return "force_time_slots"
}

func (c ForceTimeSlots) Generate(mc ModelContext) ([]mip.Constraint, error) {
	constraints := make([]mip.Constraint, 0, len(c.Pins))
	for _, pin := range c.Pins {
		if _, ok := mc.Catalog.Course(pin.Course); !ok {
			return nil, fmt.Errorf("unknown course %q", pin.Course)
		}
		if _, ok := mc.Catalog.Slot(pin.Slot); !ok {
			return nil, fmt.Errorf("unknown time slot %q", pin.Slot)
		}
		keys := mc.Space.FilterKeys(And(ByCourse(pin.Course), BySlot(pin.Slot)))
		constraints = append(constraints, mip.Constraint{
			Name: "force_time_slot_" + pin.Course,
			Expr: mc.SumKeys(keys),
			Rel:  mip.Equal,
			RHS:  1,
		})
	}
	return constraints, nil
}
