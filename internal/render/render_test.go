package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedkit/schedkit/internal/schedule"
)

func fixtureRows() []Row {
	return []Row{
		{Course: "BIO201", Room: "R101", Days: "MWF", Start: "10:00", End: "10:50", Instructor: "Chen", Enrollment: 30},
		{Course: "BIO201L", Room: "LAB1", Days: "T", Start: "14:00", End: "16:50", Instructor: "Chen", Enrollment: 12},
		{Course: "CS101", Room: "R101", Days: "TTH", Start: "09:30", End: "10:45", Instructor: "Rivera", Enrollment: 25},
		{Course: "CS102", Room: "R202", Days: "MWF", Start: "10:00", End: "10:50", Instructor: "Rivera", Enrollment: 18},
	}
}

func fixtureCapacity() map[string]int {
	return map[string]int{"R101": 30, "R202": 20, "LAB1": 16}
}

func TestRows(t *testing.T) {
	placements := []schedule.Placement{
		{Course: "CS101", Instructor: "Rivera", Room: "R101", Slot: "TTH-0930", Days: "TTH", Start: "09:30", End: "10:45", Enrollment: 25},
	}

	rows := Rows(placements)

	assert.Equal(t, []Row{
		{Course: "CS101", Room: "R101", Days: "TTH", Start: "09:30", End: "10:45", Instructor: "Rivera", Enrollment: 25},
	}, rows)
}

func TestCSVRoundTrip(t *testing.T) {
	// Arrange
	rows := fixtureRows()
	var buf bytes.Buffer

	// Act
	require.NoError(t, WriteCSV(&buf, rows))
	loaded, err := ReadCSV(&buf)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Course,Room,Days,Start,End,Instructor,Enrollment", strings.SplitN(buf.String(), "\n", 2)[0])
	assert.Equal(t, rows, loaded)
}

func TestNewGrid(t *testing.T) {
	// Act
	days := NewGrid(fixtureRows(), fixtureCapacity())

	// Assert: MWF courses expand to three days, TTH to two, the lab to one.
	require.Len(t, days, 5)
	assert.Equal(t, []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"},
		[]string{days[0].Title, days[1].Title, days[2].Title, days[3].Title, days[4].Title})

	t.Run("rooms run largest first", func(t *testing.T) {
		monday := days[0]
		require.Len(t, monday.Lanes, 2)
		assert.Equal(t, "R101 (30)", monday.Lanes[0].Label)
		assert.Equal(t, "R202 (20)", monday.Lanes[1].Label)
	})

	t.Run("tuesday mixes both patterns", func(t *testing.T) {
		tuesday := days[1]
		require.Len(t, tuesday.Lanes, 2)
		assert.Equal(t, "R101", tuesday.Lanes[0].Room)
		assert.Equal(t, []Cell{
			{Start: "09:30", End: "10:45", Course: "CS101", Instructor: "Rivera"},
		}, tuesday.Lanes[0].Cells)
		assert.Equal(t, "LAB1", tuesday.Lanes[1].Room)
	})

	t.Run("cells sort by start time", func(t *testing.T) {
		rows := append(fixtureRows(), Row{
			Course: "CS100", Room: "R101", Days: "M", Start: "08:00", End: "08:50", Instructor: "Chen", Enrollment: 10,
		})

		monday := NewGrid(rows, fixtureCapacity())[0]

		assert.Equal(t, "CS100", monday.Lanes[0].Cells[0].Course)
		assert.Equal(t, "BIO201", monday.Lanes[0].Cells[1].Course)
	})

	t.Run("unknown capacity", func(t *testing.T) {
		days := NewGrid(fixtureRows(), nil)

		assert.Equal(t, "R101 (?)", days[0].Lanes[0].Label)
	})
}

func TestWriteText(t *testing.T) {
	// Arrange
	days := NewGrid(fixtureRows(), fixtureCapacity())
	var buf bytes.Buffer

	// Act
	require.NoError(t, WriteText(&buf, days))

	// Assert
	report := buf.String()
	assert.Contains(t, report, "MONDAY\n")
	assert.Contains(t, report, "THURSDAY\n")
	assert.Contains(t, report, "R101 (30)")
	assert.Contains(t, report, "10:00-10:50 BIO201 [Chen]")
	assert.Contains(t, report, "14:00-16:50 BIO201L [Chen]")

	// Thursday has no lab, so the lab lane only shows under Tuesday.
	thursday := report[strings.Index(report, "THURSDAY"):]
	assert.NotContains(t, thursday, "LAB1")
}

func TestWriteHTML(t *testing.T) {
	// Arrange
	rows := append(fixtureRows(), Row{
		Course: "A&B", Room: "R202", Days: "F", Start: "13:00", End: "13:50", Instructor: "O'Neil", Enrollment: 5,
	})
	var buf bytes.Buffer

	// Act
	require.NoError(t, WriteHTML(&buf, NewGrid(rows, fixtureCapacity())))

	// Assert
	page := buf.String()
	assert.Contains(t, page, "<h2>MONDAY</h2>")
	assert.Contains(t, page, "<th>R101 (30)</th>")
	assert.Contains(t, page, "<td>09:30-10:45</td>")
	assert.Contains(t, page, "CS101<br>Rivera")
	assert.Contains(t, page, "A&amp;B<br>O&#39;Neil")
	assert.NotContains(t, page, "O'Neil")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WritePDF(&buf, fixtureRows(), "Fall 2026"))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 0)
}
