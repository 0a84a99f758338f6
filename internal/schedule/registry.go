package schedule

import (
	"fmt"
	"log"

	"github.com/mitchellh/mapstructure"
)

// PipelineEntry is one configured plugin: a registered kind plus its
// parameters as loose key/value pairs, the shape a config file produces.
type PipelineEntry struct {
	Kind   string         `mapstructure:"kind"`
	Params map[string]any `mapstructure:"params"`
}

var objectiveFactories = map[string]func(params map[string]any) (Objective, error){
	"minimize_classes_before":      decodeObjective[MinimizeClassesBefore],
	"minimize_classes_after":       decodeObjective[MinimizeClassesAfter],
	"maximize_preferred_rooms":     decodeObjective[MaximizePreferredRooms],
	"maximize_preferred_slots":     decodeObjective[MaximizePreferredSlots],
	"minimize_room_changes":        decodeObjective[MinimizeRoomChanges],
	"maximize_enrollment_in_rooms": decodeObjective[MaximizeEnrollmentInRooms],
}

var constraintFactories = map[string]func(params map[string]any) (Constraint, error){
	"force_rooms":      decodeConstraint[ForceRooms],
	"force_time_slots": decodeConstraint[ForceTimeSlots],
}

// RegisterObjective adds an external objective kind. Registration happens at
// init time; the registry is not synchronized.
func RegisterObjective(kind string, factory func(params map[string]any) (Objective, error)) {
	if _, ok := objectiveFactories[kind]; ok {
		log.Panicf("objective kind %q registered twice", kind)
	}
	objectiveFactories[kind] = factory
}

// RegisterConstraint adds an external constraint kind.
func RegisterConstraint(kind string, factory func(params map[string]any) (Constraint, error)) {
	if _, ok := constraintFactories[kind]; ok {
		log.Panicf("constraint kind %q registered twice", kind)
	}
	constraintFactories[kind] = factory
}

// NewObjective builds one objective from a pipeline entry.
func NewObjective(entry PipelineEntry) (Objective, error) {
	factory, ok := objectiveFactories[entry.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown objective kind %q", entry.Kind)
	}
	objective, err := factory(entry.Params)
	if err != nil {
		return nil, fmt.Errorf("objective %q: %v", entry.Kind, err)
	}
	return objective, nil
}

// NewObjectives builds the ordered objective pipeline.
func NewObjectives(entries []PipelineEntry) ([]Objective, error) {
	objectives := make([]Objective, 0, len(entries))
	for i, entry := range entries {
		objective, err := NewObjective(entry)
		if err != nil {
			return nil, fmt.Errorf("pipeline entry %d: %v", i, err)
		}
		objectives = append(objectives, objective)
	}
	return objectives, nil
}

// NewConstraint builds one extra constraint from a pipeline entry.
func NewConstraint(entry PipelineEntry) (Constraint, error) {
	factory, ok := constraintFactories[entry.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown constraint kind %q", entry.Kind)
	}
	constraint, err := factory(entry.Params)
	if err != nil {
		return nil, fmt.Errorf("constraint %q: %v", entry.Kind, err)
	}
	return constraint, nil
}

// NewConstraints builds extra constraints to append after the standard
// pipeline.
func NewConstraints(entries []PipelineEntry) ([]Constraint, error) {
	constraints := make([]Constraint, 0, len(entries))
	for i, entry := range entries {
		constraint, err := NewConstraint(entry)
		if err != nil {
			return nil, fmt.Errorf("pipeline entry %d: %v", i, err)
		}
		constraints = append(constraints, constraint)
	}
	return constraints, nil
}

func decodeObjective[T Objective](params map[string]any) (Objective, error) {
	var objective T
	if err := decodeParams(params, &objective); err != nil {
		return nil, err
	}
	return objective, nil
}

func decodeConstraint[T Constraint](params map[string]any) (Constraint, error) {
	var constraint T
	if err := decodeParams(params, &constraint); err != nil {
		return nil, err
	}
	return constraint, nil
}

func decodeParams(params map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(params)
}
