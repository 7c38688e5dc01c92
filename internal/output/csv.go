package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/c-m-hunt/fixture-generator/internal/solver"
)

// WriteCSV writes fixtures.csv per spec.md §6: a leading
// "# Generated with seed: N" comment line, a
// "game_week,home_team,away_team,division" header, then every fixture
// sorted by (week, division, home team).
func WriteCSV(w io.Writer, results []solver.Result, seed int64) error {
	if _, err := fmt.Fprintf(w, "# Generated with seed: %d\n", seed); err != nil {
		return fmt.Errorf("writing seed comment: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"game_week", "home_team", "away_team", "division"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	type row struct {
		week     int
		division string
		home     string
		away     string
	}
	var rows []row
	for _, r := range results {
		for _, fx := range r.Fixtures {
			rows = append(rows, row{week: fx.Week, division: fx.Division, home: fx.Home, away: fx.Away})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.week != b.week {
			return a.week < b.week
		}
		if a.division != b.division {
			return a.division < b.division
		}
		return a.home < b.home
	})

	for _, rw := range rows {
		record := []string{strconv.Itoa(rw.week), rw.home, rw.away, rw.division}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing fixture row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
