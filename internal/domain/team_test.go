package domain

import "testing"

func TestParseTeam(t *testing.T) {
	tests := []struct {
		code      string
		wantClub  string
		wantNum   int
		wantError bool
	}{
		{"A1", "A", 1, false},
		{"AB12", "AB", 12, false},
		{"A", "", 0, true},
		{"1A", "", 0, true},
		{"", "", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTeam(tt.code, "Premier")
		if tt.wantError {
			if err == nil {
				t.Errorf("ParseTeam(%q) = %v, want error", tt.code, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTeam(%q) unexpected error: %v", tt.code, err)
		}
		if got.Club != tt.wantClub || got.Number != tt.wantNum {
			t.Errorf("ParseTeam(%q) = {%s %d}, want {%s %d}", tt.code, got.Club, got.Number, tt.wantClub, tt.wantNum)
		}
	}
}

func TestGroundBucket(t *testing.T) {
	a1, _ := ParseTeam("A1", "Premier")
	a2, _ := ParseTeam("A2", "Premier")
	a3, _ := ParseTeam("A3", "Premier")
	b1, _ := ParseTeam("B1", "Premier")

	if !a1.SharesGround(a2) {
		t.Error("A1 and A2 should share a ground")
	}
	if a1.SharesGround(a3) {
		t.Error("A1 and A3 should not share a ground")
	}
	if a1.SharesGround(b1) {
		t.Error("A1 and B1 are different clubs, should not share a ground")
	}
}
