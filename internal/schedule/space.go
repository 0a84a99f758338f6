package schedule

import (
	"slices"

	"github.com/samber/lo"
)

// Space is the immutable universe of candidate placements. A key exists only
// if the course fits the room and the course type matches the slot type;
// capacity violations are pruned here instead of being modeled as rows.
type Space struct {
	keys []Key
	has  map[Key]bool
}

// NewSpace enumerates the keys in catalog order: courses, then rooms, then
// slots. The key set never changes afterwards.
func NewSpace(catalog *Catalog) *Space {
	space := &Space{has: make(map[Key]bool)}
	for _, course := range catalog.courses {
		for _, room := range catalog.rooms {
			if course.Enrollment > room.Capacity {
				continue
			}
			for _, slot := range catalog.slots {
				if course.Type != slot.Type {
					continue
				}
				key := Key{Course: course.ID, Room: room.ID, Slot: slot.ID}
				space.keys = append(space.keys, key)
				space.has[key] = true
			}
		}
	}
	return space
}

func (s *Space) Len() int {
	return len(s.keys)
}

func (s *Space) Keys() []Key {
	return slices.Clone(s.keys)
}

func (s *Space) Has(k Key) bool {
	return s.has[k]
}

// FilterKeys returns the keys matching the predicate, in space order. A nil
// predicate matches everything.
func (s *Space) FilterKeys(predicate Predicate) []Key {
	if predicate == nil {
		return s.Keys()
	}
	return lo.Filter(s.keys, func(k Key, _ int) bool {
		return predicate(k)
	})
}
