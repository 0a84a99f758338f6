package schedule

import (
	"fmt"
)

// Placement is one solved assignment joined with its catalog records.
type Placement struct {
	Course     string
	Instructor string
	Room       string
	Slot       string
	Days       string
	Start      string
	End        string
	Enrollment int
}

// Placements joins chosen keys with the catalog. Keys arrive sorted from
// ChosenKeys, so the rows come out in course order.
func Placements(catalog *Catalog, keys []Key) []Placement {
	placements := make([]Placement, 0, len(keys))
	for _, k := range keys {
		course, _ := catalog.Course(k.Course)
		slot, _ := catalog.Slot(k.Slot)
		placements = append(placements, Placement{
			Course:     k.Course,
			Instructor: course.Instructor,
			Room:       k.Room,
			Slot:       k.Slot,
			Days:       slot.Days,
			Start:      slot.Start,
			End:        slot.End,
			Enrollment: course.Enrollment,
		})
	}
	return placements
}

// Validate re-checks a solved assignment against the hard rules: every key
// must exist in the space, every course appears exactly once, and no
// instructor or room is double-booked across overlapping slots. A nil error
// means the schedule stands.
func Validate(catalog *Catalog, space *Space, keys []Key, bufferMinutes int) error {
	seen := make(map[string]int, len(keys))
	for _, k := range keys {
		if !space.Has(k) {
			return fmt.Errorf("placement %v is outside the assignment space", k)
		}
		seen[k.Course]++
	}

	for _, course := range catalog.courses {
		switch count := seen[course.ID]; {
		case count == 0:
			return fmt.Errorf("course %q is not scheduled", course.ID)
		case count > 1:
			return fmt.Errorf("course %q is scheduled %d times", course.ID, count)
		}
	}

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a, b := keys[i], keys[j]
			if !catalog.slotsCollide(a.Slot, b.Slot, bufferMinutes) {
				continue
			}
			if catalog.Instructor(a.Course) == catalog.Instructor(b.Course) {
				return fmt.Errorf("instructor %q is double-booked across %q and %q",
					catalog.Instructor(a.Course), a.Slot, b.Slot)
			}
			if a.Room == b.Room {
				return fmt.Errorf("room %q is double-booked across %q and %q", a.Room, a.Slot, b.Slot)
			}
		}
	}
	return nil
}
