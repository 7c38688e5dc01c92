package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c-m-hunt/fixture-generator/internal/domain"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadDivisions(t *testing.T) {
	path := writeTemp(t, "divisions.csv", "# comment\nDivision 1,A1,A2,B1,B2\n\nDivision 2,C1,C2\n")
	divisions, err := LoadDivisions(path)
	if err != nil {
		t.Fatalf("LoadDivisions: %v", err)
	}
	if len(divisions) != 2 {
		t.Fatalf("expected 2 divisions, got %d", len(divisions))
	}
	if divisions[0].Name != "Division 1" || len(divisions[0].Teams) != 4 {
		t.Errorf("unexpected first division: %+v", divisions[0])
	}
}

func TestLoadDivisionsDuplicateTeam(t *testing.T) {
	path := writeTemp(t, "divisions.csv", "Division 1,A1,A2\nDivision 2,A1,B2\n")
	_, err := LoadDivisions(path)
	if err == nil {
		t.Fatal("expected an error for a team code reused across divisions")
	}
}

func TestLoadFixedMatches(t *testing.T) {
	path := writeTemp(t, "fixReq.csv", "3,A1,A2\n# note\n10,B1,B2\n")
	matches, err := LoadFixedMatches(path)
	if err != nil {
		t.Fatalf("LoadFixedMatches: %v", err)
	}
	if len(matches) != 2 || matches[0].Week != 3 || matches[1].Team1 != "B1" {
		t.Errorf("unexpected matches: %+v", matches)
	}
}

func TestLoadVenueRequirements(t *testing.T) {
	path := writeTemp(t, "venReq.csv", "A1,5,h\nB2,6,a\n")
	reqs, err := LoadVenueRequirements(path)
	if err != nil {
		t.Fatalf("LoadVenueRequirements: %v", err)
	}
	if len(reqs) != 2 || reqs[0].Venue != domain.Home || reqs[1].Venue != domain.Away {
		t.Errorf("unexpected requirements: %+v", reqs)
	}
}

func TestLoadVenueConflicts(t *testing.T) {
	path := writeTemp(t, "venConflicts.csv", "A1,A2,A3\n")
	conflicts, err := LoadVenueConflicts(path)
	if err != nil {
		t.Fatalf("LoadVenueConflicts: %v", err)
	}
	if len(conflicts) != 1 || len(conflicts[0].Teams) != 3 {
		t.Errorf("unexpected conflicts: %+v", conflicts)
	}
}

func TestLoadMissingOptionalFileReturnsEmpty(t *testing.T) {
	reqs, err := LoadVenueRequirements(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil {
		t.Fatalf("expected no error for a missing optional file, got %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("expected no requirements, got %d", len(reqs))
	}
}
