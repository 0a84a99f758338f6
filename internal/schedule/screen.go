package schedule

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// ScreenPlacements checks a necessary feasibility condition without running a
// solver: under the standard pipeline each course occupies its own
// (room, slot) pair, so a largest bipartite matching smaller than the course
// count already proves the model infeasible. A nil error clears the screen,
// it does not promise feasibility.
func ScreenPlacements(catalog *Catalog, space *Space) error {
	courses := lo.Map(catalog.Courses(), func(course Course, _ int) any {
		return course.ID
	})

	pairs := make([]any, 0, len(catalog.rooms)*len(catalog.slots))
	for _, room := range catalog.rooms {
		for _, slot := range catalog.slots {
			pairs = append(pairs, [2]string{room.ID, slot.ID})
		}
	}

	neighbors := func(courseAny any, pairAny any) (bool, error) {
		course := courseAny.(string)
		pair := pairAny.([2]string)
		return space.Has(Key{Course: course, Room: pair[0], Slot: pair[1]}), nil
	}

	graph, err := bipartitegraph.NewBipartiteGraph(courses, pairs, neighbors)
	if err != nil {
		return err
	}

	matching := graph.LargestMatching()
	if len(matching) < len(courses) {
		return &InfeasibleModelError{
			Reason: fmt.Sprintf("only %d of %d courses can get a distinct room and time slot", len(matching), len(courses)),
		}
	}
	return nil
}
