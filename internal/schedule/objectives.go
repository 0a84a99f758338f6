package schedule

import (
	"fmt"
	"strings"

	"github.com/schedkit/schedkit/internal/mip"
)

// ObjectiveInfo is the metadata a stage runs under: a display name, the
// optimization sense and the fractional tolerance applied when the achieved
// value is frozen for later stages.
type ObjectiveInfo struct {
	Name      string
	Sense     mip.Sense
	Tolerance float64
}

// Objective produces one stage's linear expression. Implementations are
// stateless: Evaluate depends only on the context passed in.
type Objective interface {
	Info() ObjectiveInfo
	Evaluate(mc ModelContext) (mip.LinearExpr, error)
}

// MinimizeClassesBefore counts placements whose slot starts strictly before
// the threshold, optionally scoped to one instructor.
type MinimizeClassesBefore struct {
	Threshold  string  `mapstructure:"threshold"`
	Instructor string  `mapstructure:"instructor"`
	Tolerance  float64 `mapstructure:"tolerance"`
}

func (o MinimizeClassesBefore) Info() ObjectiveInfo {
	name := "minimize classes before " + o.Threshold
	if o.Instructor != "" {
		name += " for " + o.Instructor
	}
	return ObjectiveInfo{Name: name, Sense: mip.Minimize, Tolerance: o.Tolerance}
}

func (o MinimizeClassesBefore) Evaluate(mc ModelContext) (mip.LinearExpr, error) {
	threshold, err := minutesOfDay(o.Threshold)
	if err != nil {
		return mip.LinearExpr{}, fmt.Errorf("invalid threshold: %v", err)
	}
	predicate := func(k Key) bool {
		return mc.Catalog.SlotStartMinutes(k.Slot) < threshold
	}
	if o.Instructor != "" {
		predicate = And(predicate, mc.Catalog.ByInstructor(o.Instructor))
	}
	return mc.SumKeys(mc.Space.FilterKeys(predicate)), nil
}

// MinimizeClassesAfter counts placements whose slot starts strictly after the
// threshold, optionally scoped to one instructor or course type.
type MinimizeClassesAfter struct {
	Threshold  string  `mapstructure:"threshold"`
	Instructor string  `mapstructure:"instructor"`
	CourseType string  `mapstructure:"course_type"`
	Tolerance  float64 `mapstructure:"tolerance"`
}

func (o MinimizeClassesAfter) Info() ObjectiveInfo {
	name := "minimize classes after " + o.Threshold
	if o.Instructor != "" {
		name += " for " + o.Instructor
	}
	if o.CourseType != "" {
		name += " (" + o.CourseType + ")"
	}
	return ObjectiveInfo{Name: name, Sense: mip.Minimize, Tolerance: o.Tolerance}
}

func (o MinimizeClassesAfter) Evaluate(mc ModelContext) (mip.LinearExpr, error) {
	threshold, err := minutesOfDay(o.Threshold)
	if err != nil {
		return mip.LinearExpr{}, fmt.Errorf("invalid threshold: %v", err)
	}
	predicate := func(k Key) bool {
		return mc.Catalog.SlotStartMinutes(k.Slot) > threshold
	}
	if o.Instructor != "" {
		predicate = And(predicate, mc.Catalog.ByInstructor(o.Instructor))
	}
	if o.CourseType != "" {
		predicate = And(predicate, mc.Catalog.ByCourseType(o.CourseType))
	}
	return mc.SumKeys(mc.Space.FilterKeys(predicate)), nil
}

// MaximizePreferredRooms rewards placements landing in the preferred room
// set, optionally scoped to one instructor or course type.
type MaximizePreferredRooms struct {
	Rooms      []string `mapstructure:"rooms"`
	Instructor string   `mapstructure:"instructor"`
	CourseType string   `mapstructure:"course_type"`
	Tolerance  float64  `mapstructure:"tolerance"`
}

func (o MaximizePreferredRooms) Info() ObjectiveInfo {
	name := "maximize preferred rooms (" + strings.Join(o.Rooms, ", ") + ")"
	if o.Instructor != "" {
		name += " for " + o.Instructor
	}
	if o.CourseType != "" {
		name += " (" + o.CourseType + ")"
	}
	return ObjectiveInfo{Name: name, Sense: mip.Maximize, Tolerance: o.Tolerance}
}

func (o MaximizePreferredRooms) Evaluate(mc ModelContext) (mip.LinearExpr, error) {
	predicate := ByRooms(o.Rooms...)
	if o.Instructor != "" {
		predicate = And(predicate, mc.Catalog.ByInstructor(o.Instructor))
	}
	if o.CourseType != "" {
		predicate = And(predicate, mc.Catalog.ByCourseType(o.CourseType))
	}
	return mc.SumKeys(mc.Space.FilterKeys(predicate)), nil
}

// MaximizePreferredSlots rewards placements landing in the preferred slot
// set, optionally scoped to one instructor.
type MaximizePreferredSlots struct {
	Slots      []string `mapstructure:"slots"`
	Instructor string   `mapstructure:"instructor"`
	Tolerance  float64  `mapstructure:"tolerance"`
}

func (o MaximizePreferredSlots) Info() ObjectiveInfo {
	name := "maximize preferred slots (" + strings.Join(o.Slots, ", ") + ")"
	if o.Instructor != "" {
		name += " for " + o.Instructor
	}
	return ObjectiveInfo{Name: name, Sense: mip.Maximize, Tolerance: o.Tolerance}
}

func (o MaximizePreferredSlots) Evaluate(mc ModelContext) (mip.LinearExpr, error) {
	predicate := BySlots(o.Slots...)
	if o.Instructor != "" {
		predicate = And(predicate, mc.Catalog.ByInstructor(o.Instructor))
	}
	return mc.SumKeys(mc.Space.FilterKeys(predicate)), nil
}

// HomeRoom declares the room an instructor normally teaches from.
type HomeRoom struct {
	Instructor string `mapstructure:"instructor"`
	Room       string `mapstructure:"room"`
}

// MinimizeRoomChanges counts placements that pull an instructor out of their
// declared home room. Instructors without a declaration are unconstrained.
type MinimizeRoomChanges struct {
	HomeRooms []HomeRoom `mapstructure:"home_rooms"`
	Tolerance float64    `mapstructure:"tolerance"`
}

func (o MinimizeRoomChanges) Info() ObjectiveInfo {
	return ObjectiveInfo{Name: "minimize room changes", Sense: mip.Minimize, Tolerance: o.Tolerance}
}

func (o MinimizeRoomChanges) Evaluate(mc ModelContext) (mip.LinearExpr, error) {
	home := make(map[string]string, len(o.HomeRooms))
	for _, declaration := range o.HomeRooms {
		if _, ok := mc.Catalog.Room(declaration.Room); !ok {
			return mip.LinearExpr{}, fmt.Errorf("unknown room %q for instructor %q", declaration.Room, declaration.Instructor)
		}
		home[declaration.Instructor] = declaration.Room
	}
	predicate := func(k Key) bool {
		room, ok := home[mc.Catalog.Instructor(k.Course)]
		return ok && room != k.Room
	}
	return mc.SumKeys(mc.Space.FilterKeys(predicate)), nil
}

// MaximizeEnrollmentInRooms weighs placements in the room subset by course
// enrollment, steering the largest classes into those rooms.
type MaximizeEnrollmentInRooms struct {
	Rooms     []string `mapstructure:"rooms"`
	Tolerance float64  `mapstructure:"tolerance"`
}

func (o MaximizeEnrollmentInRooms) Info() ObjectiveInfo {
	name := "maximize enrollment in rooms (" + strings.Join(o.Rooms, ", ") + ")"
	return ObjectiveInfo{Name: name, Sense: mip.Maximize, Tolerance: o.Tolerance}
}

func (o MaximizeEnrollmentInRooms) Evaluate(mc ModelContext) (mip.LinearExpr, error) {
	keys := mc.Space.FilterKeys(ByRooms(o.Rooms...))
	return mc.WeightedSum(keys, func(k Key) float64 {
		return float64(mc.Catalog.Enrollment(k.Course))
	}), nil
}
