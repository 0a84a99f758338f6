package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/schedkit/schedkit/internal/schedule"
)

var dayOrder = []string{"M", "T", "W", "TH", "F"}

var dayTitles = map[string]string{
	"M":  "MONDAY",
	"T":  "TUESDAY",
	"W":  "WEDNESDAY",
	"TH": "THURSDAY",
	"F":  "FRIDAY",
}

// Cell is one class occupying a room for a time window.
type Cell struct {
	Start      string
	End        string
	Course     string
	Instructor string
}

// Window is the cell's "Start-End" label.
func (c Cell) Window() string {
	return c.Start + "-" + c.End
}

// Lane is one room's day, cells ordered by start time.
type Lane struct {
	Room  string
	Label string
	Cells []Cell
}

// Day is one weekday of the grid.
type Day struct {
	Code  string
	Title string
	Lanes []Lane
}

// NewGrid arranges rows into per-day room lanes: days in week order, rooms
// from largest to smallest, cells by start time. Days and rooms without any
// class are left out. Unknown capacities render as a question mark, matching
// rooms that appear in a saved schedule but not in the room file.
func NewGrid(rows []Row, capacity map[string]int) []Day {
	type placement struct {
		room string
		cell Cell
	}
	byDay := make(map[string][]placement)
	for _, row := range rows {
		cell := Cell{Start: row.Start, End: row.End, Course: row.Course, Instructor: row.Instructor}
		for _, day := range schedule.ExpandDays(row.Days) {
			byDay[day] = append(byDay[day], placement{room: row.Room, cell: cell})
		}
	}

	days := make([]Day, 0, len(byDay))
	for _, code := range dayOrder {
		placements, ok := byDay[code]
		if !ok {
			continue
		}

		lanes := make(map[string][]Cell)
		for _, p := range placements {
			lanes[p.room] = append(lanes[p.room], p.cell)
		}

		rooms := make([]string, 0, len(lanes))
		for room := range lanes {
			rooms = append(rooms, room)
		}
		slices.SortFunc(rooms, func(a, b string) int {
			if c := capacity[b] - capacity[a]; c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})

		day := Day{Code: code, Title: dayTitles[code]}
		for _, room := range rooms {
			cells := lanes[room]
			slices.SortFunc(cells, func(a, b Cell) int {
				if c := clockMinutes(a.Start) - clockMinutes(b.Start); c != 0 {
					return c
				}
				return strings.Compare(a.Course, b.Course)
			})
			day.Lanes = append(day.Lanes, Lane{Room: room, Label: roomLabel(room, capacity), Cells: cells})
		}
		days = append(days, day)
	}
	return days
}

func roomLabel(room string, capacity map[string]int) string {
	if seats, ok := capacity[room]; ok {
		return fmt.Sprintf("%s (%d)", room, seats)
	}
	return room + " (?)"
}

// windows lists the day's distinct time windows in start order.
func windows(day Day) []Cell {
	seen := make(map[string]bool)
	var result []Cell
	for _, lane := range day.Lanes {
		for _, cell := range lane.Cells {
			if seen[cell.Window()] {
				continue
			}
			seen[cell.Window()] = true
			result = append(result, Cell{Start: cell.Start, End: cell.End})
		}
	}
	slices.SortFunc(result, func(a, b Cell) int {
		return clockMinutes(a.Start) - clockMinutes(b.Start)
	})
	return result
}

func clockMinutes(clock string) int {
	var hours, minutes int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hours, &minutes); err != nil {
		return 0
	}
	return hours*60 + minutes
}
