package solver

import (
	"fmt"
	"math/rand"

	"github.com/c-m-hunt/fixture-generator/internal/roundrobin"
)

// roundSet is one round of a 1-factorization: a set of disjoint pairs
// (team indices) plus a stable id used to pin it to a specific week.
type roundSet struct {
	id    int
	pairs []roundrobin.Pair
}

// assignWeeks maps each round to a distinct week drawn from weekPool,
// honoring any pins (round id -> required week). It returns an error
// only when the pins themselves are contradictory or cannot be
// satisfied with the available weeks — the mapping itself, once pins
// are consistent, always exists (there are always at least as many
// free weeks as free rounds).
func assignWeeks(rounds []roundSet, weekPool []int, pins map[int]int, rng *rand.Rand) (map[int]int, error) {
	if len(rounds) > len(weekPool) {
		return nil, fmt.Errorf("%d rounds do not fit in %d available weeks", len(rounds), len(weekPool))
	}

	usedWeeks := make(map[int]bool)
	weekOf := make(map[int]int, len(rounds))

	// Apply pins first, checking for conflicts.
	for id, wk := range pins {
		if !containsInt(weekPool, wk) {
			return nil, fmt.Errorf("round %d pinned to week %d, which is outside the available weeks", id, wk)
		}
		if usedWeeks[wk] {
			return nil, fmt.Errorf("two fixed matches require the same week %d", wk)
		}
		usedWeeks[wk] = true
		weekOf[id] = wk
	}

	var freeWeeks []int
	for _, wk := range weekPool {
		if !usedWeeks[wk] {
			freeWeeks = append(freeWeeks, wk)
		}
	}
	rng.Shuffle(len(freeWeeks), func(i, j int) { freeWeeks[i], freeWeeks[j] = freeWeeks[j], freeWeeks[i] })

	i := 0
	for _, r := range rounds {
		if _, pinned := pins[r.id]; pinned {
			continue
		}
		if i >= len(freeWeeks) {
			return nil, fmt.Errorf("not enough free weeks left to place round %d", r.id)
		}
		weekOf[r.id] = freeWeeks[i]
		i++
	}

	return weekOf, nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// pairRoundID finds the id of the single round in rounds containing
// the given team-index pair, or -1 if no round contains it.
func pairRoundID(rounds []roundSet, a, b int) int {
	for _, r := range rounds {
		for _, p := range r.pairs {
			if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
				return r.id
			}
		}
	}
	return -1
}

// weekRange returns [from, to] inclusive as a slice.
func weekRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for w := from; w <= to; w++ {
		out = append(out, w)
	}
	return out
}
