// Package output writes the solved schedule out as a fixtures CSV, a
// human-readable text/HTML grid, and a supplementary Excel workbook.
package output

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/c-m-hunt/fixture-generator/internal/domain"
	"github.com/c-m-hunt/fixture-generator/internal/solver"
)

// WriteExcel builds a workbook with one "Fixtures" sheet listing every
// division's season in week order, plus one sheet per division
// pivoted into the week-by-week grid shape. Adapted from
// derekprior/rbrl's internal/excel/excel.go, which builds an
// equivalent master-sheet-plus-per-team-sheet workbook from a
// schedule.Result.
func WriteExcel(results []solver.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeFixturesSheet(f, results); err != nil {
		return nil, fmt.Errorf("writing fixtures sheet: %w", err)
	}
	for _, r := range results {
		if err := writeDivisionSheet(f, r); err != nil {
			return nil, fmt.Errorf("writing sheet for %s: %w", r.Division, err)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeFixturesSheet(f *excelize.File, results []solver.Result) error {
	sheet := "Fixtures"
	f.NewSheet(sheet)

	headers := []string{"Week", "Division", "Home", "Away"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}

	var all []domain.Fixture
	for _, r := range results {
		all = append(all, r.Fixtures...)
	}
	sortFixtures(all)

	for i, fx := range all {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), fx.Week)
		f.SetCellValue(sheet, cellRef(2, row), fx.Division)
		f.SetCellValue(sheet, cellRef(3, row), fx.Home)
		f.SetCellValue(sheet, cellRef(4, row), fx.Away)
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "D", 14)
	return nil
}

func writeDivisionSheet(f *excelize.File, r solver.Result) error {
	sheet := sheetName(r.Division)
	f.NewSheet(sheet)

	teams := teamsInFixtures(r.Fixtures)
	f.SetCellValue(sheet, cellRef(1, 1), "Team")
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	byTeamWeek := indexFixtures(r.Fixtures)

	for week := domain.FirstWeek; week <= domain.LastWeek; week++ {
		col := week + 1
		f.SetCellValue(sheet, cellRef(col, 1), fmt.Sprintf("Wk %d", week))
		if headerStyle != 0 {
			f.SetCellStyle(sheet, cellRef(col, 1), cellRef(col, 1), headerStyle)
		}
	}

	for i, team := range teams {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), team)
		for week := domain.FirstWeek; week <= domain.LastWeek; week++ {
			f.SetCellValue(sheet, cellRef(week+1, row), cellText(byTeamWeek, team, week))
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	return nil
}

func teamsInFixtures(fixtures []domain.Fixture) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, fx := range fixtures {
		for _, code := range []string{fx.Home, fx.Away} {
			if !seen[code] {
				seen[code] = true
				teams = append(teams, code)
			}
		}
	}
	sort.Strings(teams)
	return teams
}

func sortFixtures(fixtures []domain.Fixture) {
	sort.Slice(fixtures, func(i, j int) bool {
		if fixtures[i].Week != fixtures[j].Week {
			return fixtures[i].Week < fixtures[j].Week
		}
		if fixtures[i].Division != fixtures[j].Division {
			return fixtures[i].Division < fixtures[j].Division
		}
		return fixtures[i].Home < fixtures[j].Home
	})
}

// sheetName trims a division name to Excel's 31-character sheet-name
// limit.
func sheetName(division string) string {
	if len(division) > 31 {
		return division[:31]
	}
	return division
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
