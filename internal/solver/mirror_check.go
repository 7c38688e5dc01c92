package solver

import (
	"fmt"

	"github.com/c-m-hunt/fixture-generator/internal/domain"
)

// mirrorFeasible reports whether div can use the mirrored half-season
// strategy (spec.md §4.3): leg2 is always the structural mirror of
// leg1 (same pairing, opposite venue), so it is infeasible whenever
// the input data demands something that structure cannot produce.
func mirrorFeasible(div domain.Division, fixed []domain.FixedMatch, venueReqs []domain.VenueRequirement) (bool, string) {
	if div.HasByeWeeks() {
		return false, "division has an odd team count, so there is no single leg to mirror"
	}

	pairFixedWeeks := make(map[[2]string][]int)
	for _, fm := range fixed {
		a, b := fm.Pair()
		key := [2]string{a, b}
		pairFixedWeeks[key] = append(pairFixedWeeks[key], fm.Week)
	}
	for pair, weeks := range pairFixedWeeks {
		if len(weeks) > 2 {
			return false, fmt.Sprintf("%s vs %s is fixed more than twice", pair[0], pair[1])
		}
		if len(weeks) == 2 {
			w1, w2 := weeks[0], weeks[1]
			if w1 > w2 {
				w1, w2 = w2, w1
			}
			if w2-w1 != domain.HalfWeeks {
				return false, fmt.Sprintf("%s vs %s is fixed in weeks %d and %d, which are not a mirrored pair", pair[0], pair[1], w1, w2)
			}
		}
	}

	byTeamWeek := make(map[string]map[int]domain.Venue)
	for _, req := range venueReqs {
		if byTeamWeek[req.Team] == nil {
			byTeamWeek[req.Team] = make(map[int]domain.Venue)
		}
		byTeamWeek[req.Team][req.Week] = req.Venue
	}
	for team, weeks := range byTeamWeek {
		for w := domain.FirstWeek; w <= domain.HalfWeeks; w++ {
			v1, ok1 := weeks[w]
			v2, ok2 := weeks[w+domain.HalfWeeks]
			if ok1 && ok2 && v1 == v2 {
				return false, fmt.Sprintf("%s has the same venue requirement in mirrored weeks %d and %d", team, w, w+domain.HalfWeeks)
			}
		}
	}

	return true, ""
}
