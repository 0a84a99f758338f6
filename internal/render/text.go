package render

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText renders the grid as a weekly text report, one section per day
// with a lane per room.
func WriteText(w io.Writer, days []Day) error {
	for i, day := range days {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, day.Title); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, lane := range day.Lanes {
			fmt.Fprintf(tw, "  %s", lane.Label)
			for _, cell := range lane.Cells {
				fmt.Fprintf(tw, "\t%s %s [%s]", cell.Window(), cell.Course, cell.Instructor)
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
