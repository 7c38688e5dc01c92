package solver

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/c-m-hunt/fixture-generator/internal/config"
	"github.com/c-m-hunt/fixture-generator/internal/domain"
	"github.com/c-m-hunt/fixture-generator/internal/roundrobin"
)

const adjacencyAttempts = 200

// solveFull builds a schedule for div using the full 18-week strategy
// of spec.md §4.4: unlike the mirrored strategy, leg2's rounds are not
// placed at week w+9 of their leg1 round but assigned to weeks of their
// own. Each pair's second meeting is still built as the reverse of its
// first.
func solveFull(div domain.Division, fixed []domain.FixedMatch, venueReqs []domain.VenueRequirement, conflicts *domain.ConflictIndex, cfg *config.Config, rng *rand.Rand) (*divisionPlan, error) {
	if div.HasByeWeeks() {
		return solveFullOdd(div, fixed, venueReqs, conflicts, cfg, rng)
	}
	return solveFullEven(div, fixed, venueReqs, conflicts, cfg, rng)
}

// solveFullEven handles an even-sized division (e.g. 10 teams): both
// legs reuse the same 1-factorization, assigned to disjoint halves of
// the season so every pair meets exactly twice.
func solveFullEven(div domain.Division, fixed []domain.FixedMatch, venueReqs []domain.VenueRequirement, conflicts *domain.ConflictIndex, cfg *config.Config, rng *rand.Rand) (*divisionPlan, error) {
	ti := teamIndex(div)
	rrRounds := roundrobin.Rounds(len(div.Teams))
	rounds := make([]roundSet, len(rrRounds))
	for i, pairs := range rrRounds {
		rounds[i] = roundSet{id: i, pairs: pairs}
	}

	leg1Pins, leg2Pins, err := splitFixedPins(div.Name, fixed, ti, rounds)
	if err != nil {
		return nil, err
	}

	var weekOf1, weekOf2 map[int]int
	for attempt := 0; attempt < adjacencyAttempts; attempt++ {
		weekOf1, err = assignWeeks(rounds, weekRange(domain.FirstWeek, domain.HalfWeeks), leg1Pins, rng)
		if err != nil {
			return nil, &InfeasibleError{Division: div.Name, Reason: err.Error()}
		}
		weekOf2, err = assignWeeks(rounds, weekRange(domain.HalfWeeks+1, domain.LastWeek), leg2Pins, rng)
		if err != nil {
			return nil, &InfeasibleError{Division: div.Name, Reason: err.Error()}
		}
		if adjacentEnough(rounds, weekOf1, weekOf2) {
			break
		}
		weekOf1, weekOf2 = nil, nil
	}
	if weekOf1 == nil {
		return nil, &InfeasibleError{Division: div.Name, Reason: "could not separate a pair's two meetings by enough weeks"}
	}

	plan := &divisionPlan{div: div}
	for _, r := range rounds {
		for _, p := range r.pairs {
			if p.A < 0 || p.B < 0 {
				continue
			}
			m1 := &match{teamA: p.A, teamB: p.B, week: weekOf1[r.id], homeIsA: rng.Intn(2) == 0}
			m2 := &match{teamA: p.A, teamB: p.B, week: weekOf2[r.id], homeIsA: !m1.homeIsA}
			plan.matches = append(plan.matches, m1, m2)
			plan.flipUnits = append(plan.flipUnits, flipUnit{primary: m1, mirror: m2})
		}
	}

	return runRepair(plan, conflicts, cfg, venueReqs, rng)
}

// solveFullOdd handles an odd-sized division (e.g. 11 teams): leg1 is
// a complete single round-robin (every team has exactly one bye across
// its 11 rounds); leg2 is a second, independently rotated
// 1-factorization of which only HalfWeeks-2 of its rounds are used, so
// every team ends the season with one or two byes and at least 16
// games played, per spec.md §4.4's 11-team invariant.
func solveFullOdd(div domain.Division, fixed []domain.FixedMatch, venueReqs []domain.VenueRequirement, conflicts *domain.ConflictIndex, cfg *config.Config, rng *rand.Rand) (*divisionPlan, error) {
	n := len(div.Teams)
	ti := teamIndex(div)

	leg1RR := roundrobin.Rounds(n)
	leg1 := make([]roundSet, len(leg1RR))
	for i, pairs := range leg1RR {
		leg1[i] = roundSet{id: i, pairs: pairs}
	}

	order := rng.Perm(n)
	leg2RR := roundrobin.Rotated(order)
	leg2 := make([]roundSet, len(leg2RR))
	for i, pairs := range leg2RR {
		leg2[i] = roundSet{id: len(leg1) + i, pairs: pairs}
	}

	leg1Pins, leg2Pins, err := splitFixedPins(div.Name, fixed, ti, append(append([]roundSet{}, leg1...), leg2...))
	if err != nil {
		return nil, err
	}

	var weekOf1, weekOf2 map[int]int
	var chosen []roundSet
	for attempt := 0; attempt < adjacencyAttempts; attempt++ {
		weekOf1, err = assignWeeks(leg1, weekRange(domain.FirstWeek, len(leg1)), leg1Pins, rng)
		if err != nil {
			return nil, &InfeasibleError{Division: div.Name, Reason: err.Error()}
		}

		leg2Weeks := domain.LastWeek - len(leg1)
		chosen, err = chooseLeg2Rounds(leg2, leg2Pins, leg2Weeks)
		if err != nil {
			return nil, &InfeasibleError{Division: div.Name, Reason: err.Error()}
		}
		weekOf2, err = assignWeeks(chosen, weekRange(len(leg1)+1, domain.LastWeek), leg2Pins, rng)
		if err != nil {
			return nil, &InfeasibleError{Division: div.Name, Reason: err.Error()}
		}
		if adjacentEnoughPairs(leg1, weekOf1, chosen, weekOf2) {
			break
		}
		weekOf1, weekOf2, chosen = nil, nil, nil
	}
	if weekOf1 == nil {
		return nil, &InfeasibleError{Division: div.Name, Reason: "could not separate a pair's two meetings by enough weeks"}
	}

	plan := &divisionPlan{div: div}
	firstMatch := make(map[[2]int]*match)
	soloUnitIdx := make(map[[2]int]int)
	// A pair's leg1 round and leg2 round are independent
	// 1-factorizations, so a pair that is chosen for both legs needs
	// its second match linked back to the first into one flip unit
	// (mirroring the mirrored strategy's construction) so the repair
	// engine can never leave both meetings with the same home team.
	addRoundMatches := func(rounds []roundSet, weekOf map[int]int) {
		for _, r := range rounds {
			wk, ok := weekOf[r.id]
			if !ok {
				continue
			}
			for _, p := range r.pairs {
				if p.A < 0 || p.B < 0 {
					continue
				}
				key := pairKey(p.A, p.B)
				if prior, ok := firstMatch[key]; ok {
					m := &match{teamA: p.A, teamB: p.B, week: wk, homeIsA: !prior.homeIsA}
					plan.matches = append(plan.matches, m)
					plan.flipUnits[soloUnitIdx[key]] = flipUnit{primary: prior, mirror: m}
					continue
				}
				m := &match{teamA: p.A, teamB: p.B, week: wk, homeIsA: rng.Intn(2) == 0}
				plan.matches = append(plan.matches, m)
				plan.flipUnits = append(plan.flipUnits, flipUnit{primary: m})
				soloUnitIdx[key] = len(plan.flipUnits) - 1
				firstMatch[key] = m
			}
		}
	}
	addRoundMatches(leg1, weekOf1)
	addRoundMatches(chosen, weekOf2)

	return runRepair(plan, conflicts, cfg, venueReqs, rng)
}

// chooseLeg2Rounds picks `want` of leg2's rounds, preferring any round
// that a fixed match has pinned, and filling the rest with leg2's
// remaining rounds in order.
func chooseLeg2Rounds(leg2 []roundSet, pins map[int]int, want int) ([]roundSet, error) {
	if want > len(leg2) {
		return nil, fmt.Errorf("need %d rounds from the second leg but only %d exist", want, len(leg2))
	}
	chosen := make([]roundSet, 0, want)
	seen := make(map[int]bool)
	for id := range pins {
		for _, r := range leg2 {
			if r.id == id {
				chosen = append(chosen, r)
				seen[id] = true
			}
		}
	}
	for _, r := range leg2 {
		if len(chosen) >= want {
			break
		}
		if !seen[r.id] {
			chosen = append(chosen, r)
			seen[r.id] = true
		}
	}
	return chosen, nil
}

// splitFixedPins translates each FixedMatch into a round id, routed to
// leg1's pins if its week falls in the first half of the season and
// leg2's pins otherwise.
func splitFixedPins(divName string, fixed []domain.FixedMatch, ti map[string]int, rounds []roundSet) (map[int]int, map[int]int, error) {
	leg1Pins := make(map[int]int)
	leg2Pins := make(map[int]int)
	for _, fm := range fixed {
		a, okA := ti[fm.Team1]
		b, okB := ti[fm.Team2]
		if !okA || !okB {
			continue
		}
		rid := pairRoundID(rounds, a, b)
		if rid == -1 {
			return nil, nil, &FixedMatchConflictError{
				Division: divName,
				Detail:   fmt.Sprintf("%s vs %s does not occur in this season's pairing", fm.Team1, fm.Team2),
			}
		}
		pins := leg1Pins
		if fm.Week > domain.HalfWeeks {
			pins = leg2Pins
		}
		if existing, ok := pins[rid]; ok && existing != fm.Week {
			return nil, nil, &FixedMatchConflictError{
				Division: divName,
				Detail:   fmt.Sprintf("%s vs %s is fixed to week %d, but its round is already fixed to week %d", fm.Team1, fm.Team2, fm.Week, existing),
			}
		}
		pins[rid] = fm.Week
	}
	return leg1Pins, leg2Pins, nil
}

// adjacentEnough reports whether every round's two week assignments
// (its leg1 week and, if present, leg2 week) are separated by at
// least two weeks.
func adjacentEnough(rounds []roundSet, weekOf1, weekOf2 map[int]int) bool {
	for _, r := range rounds {
		w1, ok1 := weekOf1[r.id]
		w2, ok2 := weekOf2[r.id]
		if !ok1 || !ok2 {
			continue
		}
		diff := w2 - w1
		if diff < 0 {
			diff = -diff
		}
		if diff < 2 {
			return false
		}
	}
	return true
}

// adjacentEnoughPairs reports whether every pair that is scheduled in
// both leg1 and the chosen leg2 rounds has its two weeks separated by
// at least two weeks. Unlike adjacentEnough, this walks pair identity
// rather than round id, since leg1 and leg2 are independent
// 1-factorizations and a pair's leg1 round id carries no relationship
// to its leg2 round id.
func adjacentEnoughPairs(leg1 []roundSet, weekOf1 map[int]int, leg2 []roundSet, weekOf2 map[int]int) bool {
	weeks := make(map[[2]int][]int)
	collect := func(rounds []roundSet, weekOf map[int]int) {
		for _, r := range rounds {
			wk, ok := weekOf[r.id]
			if !ok {
				continue
			}
			for _, p := range r.pairs {
				if p.A < 0 || p.B < 0 {
					continue
				}
				key := pairKey(p.A, p.B)
				weeks[key] = append(weeks[key], wk)
			}
		}
	}
	collect(leg1, weekOf1)
	collect(leg2, weekOf2)

	for _, wks := range weeks {
		for i := 0; i < len(wks); i++ {
			for j := i + 1; j < len(wks); j++ {
				diff := wks[i] - wks[j]
				if diff < 0 {
					diff = -diff
				}
				if diff < 2 {
					return false
				}
			}
		}
	}
	return true
}

func runRepair(plan *divisionPlan, conflicts *domain.ConflictIndex, cfg *config.Config, venueReqs []domain.VenueRequirement, rng *rand.Rand) (*divisionPlan, error) {
	deadline := time.Now().Add(time.Duration(cfg.Engine.MirroredTimeLimitSeconds*cfg.Engine.FullTimeLimitFactor) * time.Second)
	final := repair(plan, conflicts, cfg, venueReqs, rng, deadline)
	if final.hard != "" {
		return nil, &InfeasibleError{Division: plan.div.Name, Reason: final.hard}
	}
	return plan, nil
}
