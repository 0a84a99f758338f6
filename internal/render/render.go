package render

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/schedkit/schedkit/internal/schedule"
)

// Row is one line of a rendered schedule, in the column layout the CSV
// export carries.
type Row struct {
	Course     string `csv:"Course"`
	Room       string `csv:"Room"`
	Days       string `csv:"Days"`
	Start      string `csv:"Start"`
	End        string `csv:"End"`
	Instructor string `csv:"Instructor"`
	Enrollment int    `csv:"Enrollment"`
}

// Rows flattens placements into export rows, keeping their order.
func Rows(placements []schedule.Placement) []Row {
	return lo.Map(placements, func(p schedule.Placement, _ int) Row {
		return Row{
			Course:     p.Course,
			Room:       p.Room,
			Days:       p.Days,
			Start:      p.Start,
			End:        p.End,
			Instructor: p.Instructor,
			Enrollment: p.Enrollment,
		}
	})
}

// WriteCSV writes the rows under their header line.
func WriteCSV(w io.Writer, rows []Row) error {
	return gocsv.Marshal(&rows, w)
}

// ReadCSV loads rows previously saved by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
