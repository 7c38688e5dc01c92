// Package loader reads the CSV input files described in spec.md §6:
// divisions.csv, fixReq.csv, venReq.csv and venConflicts.csv. Every
// reader skips blank lines and lines starting with "#", and wraps
// parse errors with the file and row they came from.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c-m-hunt/fixture-generator/internal/domain"
)

// LoadDivisions reads divisions.csv: one row per division, the first
// field its name, the rest team codes.
func LoadDivisions(path string) ([]domain.Division, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	divisions := make([]domain.Division, 0, len(rows))
	for _, row := range rows {
		if len(row.fields) < 2 {
			return nil, fmt.Errorf("%s:%d: division row needs a name and at least one team code", path, row.line)
		}
		div, err := domain.NewDivision(row.fields[0], row.fields[1:], seen)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, row.line, err)
		}
		divisions = append(divisions, div)
	}
	return divisions, nil
}

// LoadFixedMatches reads fixReq.csv: week, team1, team2 per row.
func LoadFixedMatches(path string) ([]domain.FixedMatch, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FixedMatch, 0, len(rows))
	for _, row := range rows {
		if len(row.fields) != 3 {
			return nil, fmt.Errorf("%s:%d: fixed match row needs exactly 3 fields (week,team1,team2)", path, row.line)
		}
		week, err := strconv.Atoi(strings.TrimSpace(row.fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid week %q: %w", path, row.line, row.fields[0], err)
		}
		out = append(out, domain.FixedMatch{
			Week:  week,
			Team1: strings.TrimSpace(row.fields[1]),
			Team2: strings.TrimSpace(row.fields[2]),
		})
	}
	return out, nil
}

// LoadVenueRequirements reads venReq.csv: team, week, venue (h/a) per row.
func LoadVenueRequirements(path string) ([]domain.VenueRequirement, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.VenueRequirement, 0, len(rows))
	for _, row := range rows {
		if len(row.fields) != 3 {
			return nil, fmt.Errorf("%s:%d: venue requirement row needs exactly 3 fields (team,week,venue)", path, row.line)
		}
		week, err := strconv.Atoi(strings.TrimSpace(row.fields[1]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid week %q: %w", path, row.line, row.fields[1], err)
		}
		venue, err := domain.ParseVenue(strings.TrimSpace(row.fields[2]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, row.line, err)
		}
		out = append(out, domain.VenueRequirement{
			Team:  strings.TrimSpace(row.fields[0]),
			Week:  week,
			Venue: venue,
		})
	}
	return out, nil
}

// LoadVenueConflicts reads venConflicts.csv: two or more team codes
// sharing a ground per row.
func LoadVenueConflicts(path string) ([]domain.VenueConflict, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.VenueConflict, 0, len(rows))
	for _, row := range rows {
		if len(row.fields) < 2 {
			return nil, fmt.Errorf("%s:%d: venue conflict row needs at least 2 team codes", path, row.line)
		}
		teams := make([]string, len(row.fields))
		for i, f := range row.fields {
			teams[i] = strings.TrimSpace(f)
		}
		out = append(out, domain.VenueConflict{Teams: teams})
	}
	return out, nil
}

type dataRow struct {
	line   int
	fields []string
}

// readRows reads path as CSV, skipping blank lines and comment lines
// ('#' as the first character). A missing venReq.csv/fixReq.csv/
// venConflicts.csv is not an error: those inputs are optional, so a
// missing file yields no rows rather than failing the run.
func readRows(path string) ([]dataRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	var rows []dataRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, dataRow{line: line, fields: record})
	}
	return rows, nil
}
