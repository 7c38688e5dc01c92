package validate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadFixturesCSV reads a fixtures.csv file produced by
// internal/output.WriteCSV: an optional leading "# Generated with
// seed: N" comment, a "game_week,home_team,away_team,division" header
// row, then one row per fixture.
func ReadFixturesCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1

	var rows []Row
	header := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(record) != 4 {
			return nil, fmt.Errorf("%s: expected 4 fields (game_week,home_team,away_team,division), got %d", path, len(record))
		}
		week, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid week %q: %w", path, record[0], err)
		}
		rows = append(rows, Row{Week: week, Home: record[1], Away: record[2], Division: record[3]})
	}
	return rows, nil
}
