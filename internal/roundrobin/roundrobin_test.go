package roundrobin

import "testing"

func TestRoundsEven(t *testing.T) {
	rounds := Rounds(10)
	if len(rounds) != 9 {
		t.Fatalf("len(rounds) = %d, want 9", len(rounds))
	}

	seen := make(map[Pair]bool)
	for r, round := range rounds {
		if len(round) != 5 {
			t.Errorf("round %d has %d pairs, want 5", r, len(round))
		}
		teamsThisRound := make(map[int]bool)
		for _, p := range round {
			if teamsThisRound[p.A] || teamsThisRound[p.B] {
				t.Errorf("round %d: team appears twice", r)
			}
			teamsThisRound[p.A] = true
			teamsThisRound[p.B] = true

			key := normalize(p)
			if seen[key] {
				t.Errorf("pair %v scheduled more than once", p)
			}
			seen[key] = true
		}
		if len(teamsThisRound) != 10 {
			t.Errorf("round %d covers %d teams, want 10", r, len(teamsThisRound))
		}
	}

	if len(seen) != 45 { // C(10,2)
		t.Errorf("total pairs = %d, want 45", len(seen))
	}
}

func TestRoundsOdd(t *testing.T) {
	rounds := Rounds(11)
	if len(rounds) != 11 {
		t.Fatalf("len(rounds) = %d, want 11", len(rounds))
	}

	byeCount := make(map[int]int)
	for r, round := range rounds {
		if len(round) != 5 {
			t.Errorf("round %d has %d pairs, want 5", r, len(round))
		}
		present := make(map[int]bool)
		for _, p := range round {
			present[p.A] = true
			present[p.B] = true
		}
		for team := 0; team < 11; team++ {
			if !present[team] {
				byeCount[team]++
			}
		}
	}
	for team := 0; team < 11; team++ {
		if byeCount[team] != 1 {
			t.Errorf("team %d has %d byes across single round-robin, want 1", team, byeCount[team])
		}
	}
}

func normalize(p Pair) Pair {
	if p.A > p.B {
		return Pair{A: p.B, B: p.A}
	}
	return p
}
