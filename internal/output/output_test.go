package output

import (
	"strings"
	"testing"

	"github.com/c-m-hunt/fixture-generator/internal/domain"
	"github.com/c-m-hunt/fixture-generator/internal/solver"
)

func sampleResults() []solver.Result {
	return []solver.Result{
		{
			Division: "Division 1",
			Strategy: solver.StrategyMirrored,
			Fixtures: []domain.Fixture{
				{Week: 2, Division: "Division 1", Home: "B1", Away: "A1"},
				{Week: 1, Division: "Division 1", Home: "A1", Away: "B1"},
			},
		},
	}
}

func TestWriteCSVSortsAndAddsSeedComment(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, sampleResults(), 42); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# Generated with seed: 42\n") {
		t.Errorf("expected seed comment first, got: %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (comment, header, 2 fixture rows), got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[2], "1,A1,B1,Division 1") {
		t.Errorf("expected week 1 row before week 2 row, got %q", lines[2])
	}
}

func TestWriteTextGridCoversBothHalves(t *testing.T) {
	var buf strings.Builder
	if err := WriteTextGrid(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteTextGrid: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "weeks 1-9") || !strings.Contains(out, "weeks 10-18") {
		t.Errorf("expected both season halves in output, got: %q", out)
	}
}

func TestWriteHTMLGridEscapesAndIncludesTeams(t *testing.T) {
	var buf strings.Builder
	if err := WriteHTMLGrid(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteHTMLGrid: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "A1") {
		t.Errorf("expected an HTML table containing team codes, got: %q", out)
	}
}

func TestWriteExcelBuildsFixturesAndDivisionSheets(t *testing.T) {
	f, err := WriteExcel(sampleResults())
	if err != nil {
		t.Fatalf("WriteExcel: %v", err)
	}
	sheets := f.GetSheetList()
	found := map[string]bool{}
	for _, s := range sheets {
		found[s] = true
	}
	if !found["Fixtures"] {
		t.Error("expected a Fixtures sheet")
	}
	if !found["Division 1"] {
		t.Error("expected a Division 1 sheet")
	}
}
