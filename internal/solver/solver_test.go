package solver

import (
	"testing"

	"github.com/c-m-hunt/fixture-generator/internal/config"
	"github.com/c-m-hunt/fixture-generator/internal/domain"
)

// makeDivision builds a division of teamCount teams, one per club
// letter, so no implicit ground-sharing conflicts arise from the test
// fixture itself.
func makeDivision(t *testing.T, name string, teamCount int) domain.Division {
	t.Helper()
	codes := make([]string, teamCount)
	for i := 0; i < teamCount; i++ {
		codes[i] = string(rune('A'+i)) + "1"
	}
	div, err := domain.NewDivision(name, codes, map[string]string{})
	if err != nil {
		t.Fatalf("NewDivision: %v", err)
	}
	return div
}

func fastTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Engine.MirroredTimeLimitSeconds = 2
	cfg.Engine.FullTimeLimitFactor = 1
	return cfg
}

func TestGenerateEvenDivisionCompleteAndBalanced(t *testing.T) {
	div := makeDivision(t, "Division 1", 10)
	results, _, err := Generate([]domain.Division{div}, nil, nil, nil, Options{Seed: 1, Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if len(r.Fixtures) != 90 {
		t.Errorf("expected 90 fixtures for a 10-team division, got %d", len(r.Fixtures))
	}

	games := make(map[string]int)
	home := make(map[string]int)
	pairCount := make(map[[2]string]int)
	for _, f := range r.Fixtures {
		games[f.Home]++
		games[f.Away]++
		home[f.Home]++
		pair := [2]string{f.Home, f.Away}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		pairCount[pair]++
	}
	for code, g := range games {
		if g != 18 {
			t.Errorf("team %s played %d games, want 18", code, g)
		}
		if h := home[code]; h != 9 {
			t.Errorf("team %s had %d home games, want 9", code, h)
		}
	}
	for pair, n := range pairCount {
		if n != 2 {
			t.Errorf("pair %v met %d times, want 2", pair, n)
		}
	}
}

func TestGenerateEvenDivisionOppositeOrientationOnRematch(t *testing.T) {
	div := makeDivision(t, "Division 1", 10)
	results, _, err := Generate([]domain.Division{div}, nil, nil, nil, Options{Seed: 4, Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	homesOf := make(map[[2]string][]string)
	for _, f := range results[0].Fixtures {
		pair := [2]string{f.Home, f.Away}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		homesOf[pair] = append(homesOf[pair], f.Home)
	}
	for pair, homes := range homesOf {
		if len(homes) == 2 && homes[0] == homes[1] {
			t.Errorf("%v met twice with %s home both times", pair, homes[0])
		}
	}
}

func TestGenerateOddDivisionNonAdjacentRematch(t *testing.T) {
	div := makeDivision(t, "Division 7", 11)
	results, _, err := Generate([]domain.Division{div}, nil, nil, nil, Options{Seed: 6, Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	weeksOf := make(map[[2]string][]int)
	for _, f := range results[0].Fixtures {
		pair := [2]string{f.Home, f.Away}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		weeksOf[pair] = append(weeksOf[pair], f.Week)
	}
	for pair, weeks := range weeksOf {
		if len(weeks) != 2 {
			continue
		}
		w1, w2 := weeks[0], weeks[1]
		if w1 > w2 {
			w1, w2 = w2, w1
		}
		if w2-w1 < 2 {
			t.Errorf("%v met in adjacent weeks %d and %d", pair, w1, w2)
		}
	}
}

// TestGenerateCrossDivisionGroundSharing mirrors spec.md §8 scenario
// S4: two teams of the same club, in different divisions, share a
// ground and must never both be home in the same week, even though
// each division is solved against only its own roster.
func TestGenerateCrossDivisionGroundSharing(t *testing.T) {
	codes1 := []string{"A1", "B1", "C1", "D1", "E1", "F1", "G1", "H1", "I1", "J1"}
	div1, err := domain.NewDivision("Division 1", codes1, map[string]string{})
	if err != nil {
		t.Fatalf("NewDivision: %v", err)
	}
	codes2 := []string{"A2", "K1", "L1", "M1", "N1", "O1", "P1", "Q1", "R1", "S1"}
	div2, err := domain.NewDivision("Division 2", codes2, map[string]string{})
	if err != nil {
		t.Fatalf("NewDivision: %v", err)
	}

	results, _, err := Generate([]domain.Division{div1, div2}, nil, nil, nil, Options{Seed: 7, Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	homeWeeks := make(map[string]map[int]bool)
	for _, r := range results {
		for _, f := range r.Fixtures {
			if homeWeeks[f.Home] == nil {
				homeWeeks[f.Home] = make(map[int]bool)
			}
			homeWeeks[f.Home][f.Week] = true
		}
	}
	for week := range homeWeeks["A1"] {
		if homeWeeks["A2"][week] {
			t.Errorf("A1 (Division 1) and A2 (Division 2) share a ground but are both home in week %d", week)
		}
	}
}

func TestGenerateOddDivisionByeInvariant(t *testing.T) {
	div := makeDivision(t, "Division 7", 11)
	results, _, err := Generate([]domain.Division{div}, nil, nil, nil, Options{Seed: 2, Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	games := make(map[string]int)
	for _, f := range results[0].Fixtures {
		games[f.Home]++
		games[f.Away]++
	}
	for _, tm := range div.Teams {
		g := games[tm.Code]
		if g < 16 || g > 17 {
			t.Errorf("team %s played %d games, want 16 or 17", tm.Code, g)
		}
	}
}

func TestMirrorFeasibleRejectsOddDivision(t *testing.T) {
	div := makeDivision(t, "Division 7", 11)
	ok, reason := mirrorFeasible(div, nil, nil)
	if ok {
		t.Fatal("expected mirroring to be infeasible for an odd-sized division")
	}
	if reason == "" {
		t.Error("expected a non-empty reason")
	}
}

func TestMirrorFeasibleRejectsConflictingVenueRequirement(t *testing.T) {
	div := makeDivision(t, "Division 1", 10)
	reqs := []domain.VenueRequirement{
		{Team: "A1", Week: 2, Venue: domain.Home},
		{Team: "A1", Week: 11, Venue: domain.Home},
	}
	ok, _ := mirrorFeasible(div, nil, reqs)
	if ok {
		t.Fatal("expected mirroring to be infeasible when the same team wants the same venue in mirrored weeks")
	}
}

func TestGenerateHonoursFixedMatch(t *testing.T) {
	div := makeDivision(t, "Division 1", 10)
	fixed := []domain.FixedMatch{{Week: 3, Team1: "A1", Team2: "B1"}}
	results, _, err := Generate([]domain.Division{div}, fixed, nil, nil, Options{Seed: 5, Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	found := false
	for _, f := range results[0].Fixtures {
		if f.Week == 3 && ((f.Home == "A1" && f.Away == "B1") || (f.Home == "B1" && f.Away == "A1")) {
			found = true
		}
	}
	if !found {
		t.Error("fixed match A1 vs B1 in week 3 was not scheduled")
	}
}

func TestGenerateHonoursVenueRequirement(t *testing.T) {
	div := makeDivision(t, "Division 1", 10)
	reqs := []domain.VenueRequirement{{Team: "C1", Week: 5, Venue: domain.Away}}
	results, _, err := Generate([]domain.Division{div}, nil, reqs, nil, Options{Seed: 9, Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, f := range results[0].Fixtures {
		if f.Week == 5 && f.Home == "C1" {
			t.Error("C1 was scheduled home in week 5 despite an away venue requirement")
		}
	}
}

func TestGenerateAutoSeedWithinRange(t *testing.T) {
	div := makeDivision(t, "Division 1", 10)
	_, seedUsed, err := Generate([]domain.Division{div}, nil, nil, nil, Options{Config: fastTestConfig()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if seedUsed < 1 || seedUsed > MaxSeed {
		t.Errorf("auto-picked seed %d is outside [1, %d]", seedUsed, MaxSeed)
	}
}
