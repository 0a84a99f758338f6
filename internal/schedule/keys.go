package schedule

// Key is one candidate placement: a course into a room at a time slot.
type Key struct {
	Course string
	Room   string
	Slot   string
}

// Predicate selects keys. Exact-match helpers cover the common cases and And
// combines them; anything else is an ordinary closure over Key.
type Predicate func(Key) bool

func ByCourse(course string) Predicate {
	return func(k Key) bool { return k.Course == course }
}

func ByRoom(room string) Predicate {
	return func(k Key) bool { return k.Room == room }
}

func BySlot(slot string) Predicate {
	return func(k Key) bool { return k.Slot == slot }
}

// ByRooms selects keys placed in any of the given rooms.
func ByRooms(rooms ...string) Predicate {
	member := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		member[room] = true
	}
	return func(k Key) bool { return member[k.Room] }
}

// BySlots selects keys placed in any of the given time slots.
func BySlots(slots ...string) Predicate {
	member := make(map[string]bool, len(slots))
	for _, slot := range slots {
		member[slot] = true
	}
	return func(k Key) bool { return member[k.Slot] }
}

func And(predicates ...Predicate) Predicate {
	return func(k Key) bool {
		for _, predicate := range predicates {
			if !predicate(k) {
				return false
			}
		}
		return true
	}
}
