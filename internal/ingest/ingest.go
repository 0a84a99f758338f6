package ingest

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/schedkit/schedkit/internal/schedule"
)

// Paths names the catalog files a load reads from.
type Paths struct {
	Courses   string
	Rooms     string
	TimeSlots string
}

type courseRecord struct {
	ID         string `csv:"course_id" validate:"required"`
	Instructor string `csv:"instructor" validate:"required"`
	Enrollment int    `csv:"enrollment" validate:"gte=0"`
	Type       string `csv:"type" validate:"required"`
}

type roomRecord struct {
	ID       string `csv:"room_id" validate:"required"`
	Capacity int    `csv:"capacity" validate:"gte=0"`
}

type slotRecord struct {
	ID    string `csv:"slot_id" validate:"required"`
	Days  string `csv:"days" validate:"required"`
	Start string `csv:"start" validate:"required"`
	End   string `csv:"end" validate:"required"`
	Type  string `csv:"type" validate:"required"`
}

// Loader reads catalog CSV files into a validated catalog.
type Loader struct {
	validator *validator.Validate
	logger    *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{validator: validator.New(), logger: logger}
}

// LoadCatalog reads the three files and hands the records to the catalog.
// File, parse and validation problems all come back as a *schedule.LoadError
// naming the offending entity.
func (l *Loader) LoadCatalog(paths Paths) (*schedule.Catalog, error) {
	courses, err := l.loadCourses(paths.Courses)
	if err != nil {
		return nil, err
	}
	rooms, err := l.LoadRooms(paths.Rooms)
	if err != nil {
		return nil, err
	}
	slots, err := l.loadSlots(paths.TimeSlots)
	if err != nil {
		return nil, err
	}

	l.logger.Info("catalog files loaded",
		zap.Int("courses", len(courses)),
		zap.Int("rooms", len(rooms)),
		zap.Int("time_slots", len(slots)))

	return schedule.NewCatalog(courses, rooms, slots)
}

func (l *Loader) loadCourses(path string) ([]schedule.Course, error) {
	var records []courseRecord
	if err := readCSV(path, "course", &records); err != nil {
		return nil, err
	}
	courses := make([]schedule.Course, 0, len(records))
	for _, record := range records {
		if err := l.validator.Struct(record); err != nil {
			return nil, &schedule.LoadError{Entity: "course", ID: record.ID, Reason: err.Error()}
		}
		courses = append(courses, schedule.Course{
			ID:         record.ID,
			Instructor: record.Instructor,
			Enrollment: record.Enrollment,
			Type:       record.Type,
		})
	}
	return courses, nil
}

// LoadRooms reads the room file alone. Rendering a saved schedule needs the
// capacities without the rest of the catalog.
func (l *Loader) LoadRooms(path string) ([]schedule.Room, error) {
	var records []roomRecord
	if err := readCSV(path, "room", &records); err != nil {
		return nil, err
	}
	rooms := make([]schedule.Room, 0, len(records))
	for _, record := range records {
		if err := l.validator.Struct(record); err != nil {
			return nil, &schedule.LoadError{Entity: "room", ID: record.ID, Reason: err.Error()}
		}
		rooms = append(rooms, schedule.Room{ID: record.ID, Capacity: record.Capacity})
	}
	return rooms, nil
}

func (l *Loader) loadSlots(path string) ([]schedule.TimeSlot, error) {
	var records []slotRecord
	if err := readCSV(path, "time slot", &records); err != nil {
		return nil, err
	}
	slots := make([]schedule.TimeSlot, 0, len(records))
	for _, record := range records {
		if err := l.validator.Struct(record); err != nil {
			return nil, &schedule.LoadError{Entity: "time slot", ID: record.ID, Reason: err.Error()}
		}
		slots = append(slots, schedule.TimeSlot{
			ID:    record.ID,
			Days:  record.Days,
			Start: record.Start,
			End:   record.End,
			Type:  record.Type,
		})
	}
	return slots, nil
}

func readCSV(path, entity string, records any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &schedule.LoadError{Entity: entity, Reason: err.Error()}
	}
	if err := gocsv.UnmarshalBytes(data, records); err != nil {
		return &schedule.LoadError{Entity: entity, Reason: err.Error()}
	}
	return nil
}
