package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

// WriteHTML renders the grid as one table per day: rooms across the top,
// time windows down the side, a course and its instructor in each cell.
func WriteHTML(out io.Writer, days []Day) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "<!DOCTYPE html>\n")
	fmt.Fprintf(w, "<html lang=\"en\">\n")
	fmt.Fprintf(w, "<head>\n")
	fmt.Fprintf(w, "<title>Course schedule</title>\n")
	fmt.Fprintf(w, "<style>\n")
	fmt.Fprintf(w, "  table, td, th { border: 1px solid darkgray; border-collapse: collapse; padding: 4px; }\n")
	fmt.Fprintf(w, "</style>\n")
	fmt.Fprintf(w, "</head>\n")
	fmt.Fprintf(w, "<body>\n")

	for _, day := range days {
		fmt.Fprintf(w, "<h2>%s</h2>\n", html.EscapeString(day.Title))
		fmt.Fprintf(w, "<table>\n")
		fmt.Fprintf(w, "<thead>\n")
		fmt.Fprintf(w, "  <tr>\n")
		fmt.Fprintf(w, "    <th>&nbsp;</th>\n")
		for _, lane := range day.Lanes {
			fmt.Fprintf(w, "    <th>%s</th>\n", html.EscapeString(lane.Label))
		}
		fmt.Fprintf(w, "  </tr>\n")
		fmt.Fprintf(w, "</thead>\n")
		fmt.Fprintf(w, "<tbody>\n")
		for _, window := range windows(day) {
			fmt.Fprintf(w, "  <tr>\n")
			fmt.Fprintf(w, "    <td>%s</td>\n", html.EscapeString(window.Window()))
			for _, lane := range day.Lanes {
				cell := cellAt(lane, window.Window())
				if cell == nil {
					fmt.Fprintf(w, "    <td>&nbsp;</td>\n")
					continue
				}
				fmt.Fprintf(w, "    <td>%s<br>%s</td>\n",
					html.EscapeString(cell.Course),
					html.EscapeString(cell.Instructor))
			}
			fmt.Fprintf(w, "  </tr>\n")
		}
		fmt.Fprintf(w, "</tbody>\n")
		fmt.Fprintf(w, "</table>\n")
	}

	fmt.Fprintf(w, "</body>\n")
	fmt.Fprintf(w, "</html>\n")
	return w.Flush()
}

func cellAt(lane Lane, window string) *Cell {
	for i := range lane.Cells {
		if lane.Cells[i].Window() == window {
			return &lane.Cells[i]
		}
	}
	return nil
}
