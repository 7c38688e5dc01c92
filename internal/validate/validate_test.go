package validate

import (
	"strings"
	"testing"

	"github.com/c-m-hunt/fixture-generator/internal/config"
	"github.com/c-m-hunt/fixture-generator/internal/domain"
	"github.com/c-m-hunt/fixture-generator/internal/solver"
)

func generatedRows(t *testing.T) []Row {
	t.Helper()
	codes := make([]string, 10)
	for i := range codes {
		codes[i] = string(rune('A'+i)) + "1"
	}
	div, err := domain.NewDivision("Division 1", codes, map[string]string{})
	if err != nil {
		t.Fatalf("NewDivision: %v", err)
	}
	cfg := config.Default()
	cfg.Engine.MirroredTimeLimitSeconds = 2
	cfg.Engine.FullTimeLimitFactor = 1

	results, _, err := solver.Generate([]domain.Division{div}, nil, nil, nil, solver.Options{Seed: 7, Config: cfg})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var rows []Row
	for _, fx := range results[0].Fixtures {
		rows = append(rows, Row{Week: fx.Week, Division: fx.Division, Home: fx.Home, Away: fx.Away})
	}
	return rows
}

func TestFixturesNoHardViolationsOnGeneratedSeason(t *testing.T) {
	violations := Fixtures(generatedRows(t))
	for _, v := range violations {
		if v.Type == "error" {
			t.Errorf("unexpected hard violation on a solver-produced season: %+v", v)
		}
	}
}

func TestFixturesDetectsSelfPlay(t *testing.T) {
	rows := []Row{{Week: 1, Division: "Division 1", Home: "A1", Away: "A1"}}
	violations := Fixtures(rows)
	if !containsMessage(violations, "play itself") {
		t.Errorf("expected a self-play violation, got %+v", violations)
	}
}

func TestFixturesDetectsDoubleBooking(t *testing.T) {
	rows := []Row{
		{Week: 1, Division: "Division 1", Home: "A1", Away: "B1"},
		{Week: 1, Division: "Division 1", Home: "A1", Away: "C1"},
	}
	violations := Fixtures(rows)
	if !containsMessage(violations, "more than one fixture") {
		t.Errorf("expected a double-booking violation, got %+v", violations)
	}
}

func TestFixturesDetectsExcessiveRematch(t *testing.T) {
	rows := []Row{
		{Week: 1, Division: "Division 1", Home: "A1", Away: "B1"},
		{Week: 5, Division: "Division 1", Home: "B1", Away: "A1"},
		{Week: 9, Division: "Division 1", Home: "A1", Away: "B1"},
	}
	violations := Fixtures(rows)
	if !containsMessage(violations, "want 1 or 2") {
		t.Errorf("expected a pair-frequency violation, got %+v", violations)
	}
}

func TestFixturesDetectsAdjacentRematch(t *testing.T) {
	rows := []Row{
		{Week: 1, Division: "Division 1", Home: "A1", Away: "B1"},
		{Week: 2, Division: "Division 1", Home: "B1", Away: "A1"},
	}
	violations := Fixtures(rows)
	if !containsMessage(violations, "adjacent weeks") {
		t.Errorf("expected an adjacent-rematch violation, got %+v", violations)
	}
}

func TestFixturesDetectsSameTeamHomeBothMeetings(t *testing.T) {
	rows := []Row{
		{Week: 1, Division: "Division 1", Home: "A1", Away: "B1"},
		{Week: 5, Division: "Division 1", Home: "A1", Away: "B1"},
	}
	violations := Fixtures(rows)
	if !containsMessage(violations, "home in both meetings") {
		t.Errorf("expected a same-team-home-twice violation, got %+v", violations)
	}
}

func TestFixturesDetectsCrossDivisionGroundSharing(t *testing.T) {
	rows := []Row{
		{Week: 1, Division: "Division 1", Home: "A1", Away: "B1"},
		{Week: 1, Division: "Division 2", Home: "A2", Away: "C1"},
	}
	violations := Fixtures(rows)
	if !containsMessage(violations, "ground-sharing conflict") {
		t.Errorf("expected a cross-division ground-sharing violation, got %+v", violations)
	}
}

func containsMessage(violations []Violation, substr string) bool {
	for _, v := range violations {
		if strings.Contains(v.Message, substr) {
			return true
		}
	}
	return false
}
