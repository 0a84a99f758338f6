package schedule

import (
	"slices"

	"github.com/samber/lo"
)

type Course struct {
	ID         string
	Instructor string
	Enrollment int
	Type       string
}

type Room struct {
	ID       string
	Capacity int
}

type TimeSlot struct {
	ID    string
	Days  string
	Start string
	End   string
	Type  string
}

// Catalog is the immutable record store every other component reads from.
// Input order is preserved so derived structures are reproducible run to run.
type Catalog struct {
	courses []Course
	rooms   []Room
	slots   []TimeSlot

	courseIndex map[string]int
	roomIndex   map[string]int
	slotIndex   map[string]int

	instructors []string
	coursesOf   map[string][]string

	slotStart map[string]int
	slotEnd   map[string]int
	slotDays  map[string][]string
}

// NewCatalog validates the records and builds the lookup tables. Duplicate
// identifiers, missing instructors and unparseable slot times come back as a
// *LoadError before any model exists.
func NewCatalog(courses []Course, rooms []Room, slots []TimeSlot) (*Catalog, error) {
	catalog := &Catalog{
		courses:     slices.Clone(courses),
		rooms:       slices.Clone(rooms),
		slots:       slices.Clone(slots),
		courseIndex: make(map[string]int, len(courses)),
		roomIndex:   make(map[string]int, len(rooms)),
		slotIndex:   make(map[string]int, len(slots)),
		coursesOf:   make(map[string][]string),
		slotStart:   make(map[string]int, len(slots)),
		slotEnd:     make(map[string]int, len(slots)),
		slotDays:    make(map[string][]string, len(slots)),
	}

	for i, room := range catalog.rooms {
		if room.ID == "" {
			return nil, &LoadError{Entity: "room", ID: room.ID, Reason: "empty identifier"}
		}
		if _, ok := catalog.roomIndex[room.ID]; ok {
			return nil, &LoadError{Entity: "room", ID: room.ID, Reason: "duplicate identifier"}
		}
		catalog.roomIndex[room.ID] = i
	}

	for i, course := range catalog.courses {
		if course.ID == "" {
			return nil, &LoadError{Entity: "course", ID: course.ID, Reason: "empty identifier"}
		}
		if _, ok := catalog.courseIndex[course.ID]; ok {
			return nil, &LoadError{Entity: "course", ID: course.ID, Reason: "duplicate identifier"}
		}
		if course.Instructor == "" {
			return nil, &LoadError{Entity: "course", ID: course.ID, Reason: "no instructor"}
		}
		catalog.courseIndex[course.ID] = i

		if _, ok := catalog.coursesOf[course.Instructor]; !ok {
			catalog.instructors = append(catalog.instructors, course.Instructor)
		}
		catalog.coursesOf[course.Instructor] = append(catalog.coursesOf[course.Instructor], course.ID)
	}

	for i, slot := range catalog.slots {
		if slot.ID == "" {
			return nil, &LoadError{Entity: "time slot", ID: slot.ID, Reason: "empty identifier"}
		}
		if _, ok := catalog.slotIndex[slot.ID]; ok {
			return nil, &LoadError{Entity: "time slot", ID: slot.ID, Reason: "duplicate identifier"}
		}
		start, err := minutesOfDay(slot.Start)
		if err != nil {
			return nil, &LoadError{Entity: "time slot", ID: slot.ID, Reason: err.Error()}
		}
		end, err := minutesOfDay(slot.End)
		if err != nil {
			return nil, &LoadError{Entity: "time slot", ID: slot.ID, Reason: err.Error()}
		}
		if end <= start {
			return nil, &LoadError{Entity: "time slot", ID: slot.ID, Reason: "end does not follow start"}
		}
		catalog.slotIndex[slot.ID] = i
		catalog.slotStart[slot.ID] = start
		catalog.slotEnd[slot.ID] = end
		catalog.slotDays[slot.ID] = ExpandDays(slot.Days)
	}

	return catalog, nil
}

func (c *Catalog) Courses() []Course {
	return slices.Clone(c.courses)
}

func (c *Catalog) Rooms() []Room {
	return slices.Clone(c.rooms)
}

func (c *Catalog) Slots() []TimeSlot {
	return slices.Clone(c.slots)
}

// Instructors lists instructors in order of first appearance.
func (c *Catalog) Instructors() []string {
	return slices.Clone(c.instructors)
}

func (c *Catalog) Course(id string) (Course, bool) {
	i, ok := c.courseIndex[id]
	if !ok {
		return Course{}, false
	}
	return c.courses[i], true
}

func (c *Catalog) Room(id string) (Room, bool) {
	i, ok := c.roomIndex[id]
	if !ok {
		return Room{}, false
	}
	return c.rooms[i], true
}

func (c *Catalog) Slot(id string) (TimeSlot, bool) {
	i, ok := c.slotIndex[id]
	if !ok {
		return TimeSlot{}, false
	}
	return c.slots[i], true
}

func (c *Catalog) Enrollment(course string) int {
	if i, ok := c.courseIndex[course]; ok {
		return c.courses[i].Enrollment
	}
	return 0
}

func (c *Catalog) Capacity(room string) int {
	if i, ok := c.roomIndex[room]; ok {
		return c.rooms[i].Capacity
	}
	return 0
}

func (c *Catalog) Instructor(course string) string {
	if i, ok := c.courseIndex[course]; ok {
		return c.courses[i].Instructor
	}
	return ""
}

func (c *Catalog) CoursesOf(instructor string) []string {
	return slices.Clone(c.coursesOf[instructor])
}

func (c *Catalog) SlotStartMinutes(slot string) int {
	return c.slotStart[slot]
}

func (c *Catalog) SlotEndMinutes(slot string) int {
	return c.slotEnd[slot]
}

// ByInstructor selects keys whose course is taught by the instructor.
func (c *Catalog) ByInstructor(instructor string) Predicate {
	return func(k Key) bool {
		return c.Instructor(k.Course) == instructor
	}
}

// ByCourseType selects keys whose course has the given type.
func (c *Catalog) ByCourseType(courseType string) Predicate {
	return func(k Key) bool {
		if i, ok := c.courseIndex[k.Course]; ok {
			return c.courses[i].Type == courseType
		}
		return false
	}
}

// OverlapsSlot selects keys whose slot has already started by the reference
// slot's start and has not ended more than the buffer before it, on an
// intersecting day pattern. Generating one row per reference slot covers
// every pairwise collision.
func (c *Catalog) OverlapsSlot(slotID string, bufferMinutes int) Predicate {
	referenceStart := c.slotStart[slotID]
	referenceDays := c.slotDays[slotID]
	return func(k Key) bool {
		if !daysIntersect(c.slotDays[k.Slot], referenceDays) {
			return false
		}
		start, end := c.slotStart[k.Slot], c.slotEnd[k.Slot]
		return start <= referenceStart && end > referenceStart-bufferMinutes
	}
}

// slotsCollide reports whether two slots overlap in time on a shared day,
// counting the buffer after a slot ends as still occupied.
func (c *Catalog) slotsCollide(a, b string, bufferMinutes int) bool {
	if !daysIntersect(c.slotDays[a], c.slotDays[b]) {
		return false
	}
	aStart, aEnd := c.slotStart[a], c.slotEnd[a]
	bStart, bEnd := c.slotStart[b], c.slotEnd[b]
	if aStart <= bStart {
		return aEnd > bStart-bufferMinutes
	}
	return bEnd > aStart-bufferMinutes
}

func daysIntersect(a, b []string) bool {
	return lo.SomeBy(a, func(day string) bool {
		return slices.Contains(b, day)
	})
}
