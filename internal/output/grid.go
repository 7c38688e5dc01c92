package output

import (
	"fmt"
	"html"
	"io"

	"github.com/c-m-hunt/fixture-generator/internal/domain"
	"github.com/c-m-hunt/fixture-generator/internal/solver"
)

// WriteTextGrid writes a plain-text week-by-team grid for every
// division, split into two halves (weeks 1-9 and 10-18) so each half
// fits a terminal width without wrapping.
func WriteTextGrid(w io.Writer, results []solver.Result) error {
	for _, r := range results {
		fmt.Fprintf(w, "%s (%s)\n", r.Division, r.Strategy)
		teams := teamsInFixtures(r.Fixtures)
		byTeamWeek := indexFixtures(r.Fixtures)

		for _, half := range [][2]int{{domain.FirstWeek, domain.HalfWeeks}, {domain.HalfWeeks + 1, domain.LastWeek}} {
			fmt.Fprintf(w, "  weeks %d-%d\n", half[0], half[1])
			for _, team := range teams {
				fmt.Fprintf(w, "    %-6s", team)
				for week := half[0]; week <= half[1]; week++ {
					fmt.Fprintf(w, " %-10s", cellText(byTeamWeek, team, week))
				}
				fmt.Fprintln(w)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteHTMLGrid writes the same grid as a minimal standalone HTML
// document, one table per division half.
func WriteHTMLGrid(w io.Writer, results []solver.Result) error {
	fmt.Fprintln(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Fixtures</title>")
	fmt.Fprintln(w, "<style>table{border-collapse:collapse;margin-bottom:1em}td,th{border:1px solid #ccc;padding:2px 6px;font-family:sans-serif;font-size:13px}</style>")
	fmt.Fprintln(w, "</head><body>")

	for _, r := range results {
		fmt.Fprintf(w, "<h2>%s (%s)</h2>\n", html.EscapeString(r.Division), html.EscapeString(string(r.Strategy)))
		teams := teamsInFixtures(r.Fixtures)
		byTeamWeek := indexFixtures(r.Fixtures)

		for _, half := range [][2]int{{domain.FirstWeek, domain.HalfWeeks}, {domain.HalfWeeks + 1, domain.LastWeek}} {
			fmt.Fprintln(w, "<table><tr><th>Team</th>")
			for week := half[0]; week <= half[1]; week++ {
				fmt.Fprintf(w, "<th>Wk %d</th>", week)
			}
			fmt.Fprintln(w, "</tr>")
			for _, team := range teams {
				fmt.Fprintf(w, "<tr><td>%s</td>", html.EscapeString(team))
				for week := half[0]; week <= half[1]; week++ {
					fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(cellText(byTeamWeek, team, week)))
				}
				fmt.Fprintln(w, "</tr>")
			}
			fmt.Fprintln(w, "</table>")
		}
	}

	fmt.Fprintln(w, "</body></html>")
	return nil
}

func indexFixtures(fixtures []domain.Fixture) map[string]map[int]string {
	byTeamWeek := make(map[string]map[int]string)
	for _, fx := range fixtures {
		if byTeamWeek[fx.Home] == nil {
			byTeamWeek[fx.Home] = make(map[int]string)
		}
		if byTeamWeek[fx.Away] == nil {
			byTeamWeek[fx.Away] = make(map[int]string)
		}
		byTeamWeek[fx.Home][fx.Week] = fx.Away + " (H)"
		byTeamWeek[fx.Away][fx.Week] = fx.Home + " (A)"
	}
	return byTeamWeek
}

func cellText(byTeamWeek map[string]map[int]string, team string, week int) string {
	if v, ok := byTeamWeek[team][week]; ok {
		return v
	}
	return "Bye"
}

