package domain

import "testing"

func TestNewDivisionTier(t *testing.T) {
	tests := []struct {
		name     string
		wantTier Tier
	}{
		{"Premier Division", 1},
		{"Division 3", 1},
		{"Div 6", 2},
		{"Division 8", 3},
		{"Div 11", 4},
		{"2nd XI", 2},
		{"Sunday Friendlies", 4},
	}

	for _, tt := range tests {
		seen := make(map[string]string)
		d, err := NewDivision(tt.name, []string{"A1", "A2"}, seen)
		if err != nil {
			t.Fatalf("NewDivision(%q) unexpected error: %v", tt.name, err)
		}
		if d.Tier != tt.wantTier {
			t.Errorf("NewDivision(%q).Tier = %d, want %d", tt.name, d.Tier, tt.wantTier)
		}
	}
}

func TestNewDivisionDuplicateTeam(t *testing.T) {
	seen := make(map[string]string)
	if _, err := NewDivision("Premier", []string{"A1", "A2"}, seen); err != nil {
		t.Fatalf("first division: unexpected error: %v", err)
	}
	_, err := NewDivision("Division 2", []string{"A1", "B2"}, seen)
	if err == nil {
		t.Fatal("expected DuplicateTeamError, got nil")
	}
	var dup *DuplicateTeamError
	if _, ok := err.(*DuplicateTeamError); !ok {
		t.Errorf("got error %v (%T), want %T", err, err, dup)
	}
}

func TestHasByeWeeks(t *testing.T) {
	seen := make(map[string]string)
	ten, _ := NewDivision("Ten", []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10"}, seen)
	if ten.HasByeWeeks() {
		t.Error("10-team division should not have bye weeks")
	}

	seen = make(map[string]string)
	eleven, _ := NewDivision("Eleven", []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "A11"}, seen)
	if !eleven.HasByeWeeks() {
		t.Error("11-team division should have bye weeks")
	}
}
