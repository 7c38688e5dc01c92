package solver

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/c-m-hunt/fixture-generator/internal/config"
	"github.com/c-m-hunt/fixture-generator/internal/domain"
	"github.com/c-m-hunt/fixture-generator/internal/roundrobin"
)

// solveMirrored builds a schedule for div using the mirrored
// half-season strategy of spec.md §4.3: one 1-factorization of the
// division supplies leg1 (weeks 1-9), and leg2 (weeks 10-18) is its
// structural mirror — same pairing, opposite venue. That structure
// guarantees every team plays exactly 9 home and 9 away fixtures
// without any extra search, so the repair engine below only has to
// satisfy venue requirements, ground sharing and consecutive-venue
// limits.
func solveMirrored(div domain.Division, fixed []domain.FixedMatch, venueReqs []domain.VenueRequirement, conflicts *domain.ConflictIndex, cfg *config.Config, rng *rand.Rand) (*divisionPlan, error) {
	ti := teamIndex(div)
	rrRounds := roundrobin.Rounds(len(div.Teams))
	rounds := make([]roundSet, len(rrRounds))
	for i, pairs := range rrRounds {
		rounds[i] = roundSet{id: i, pairs: pairs}
	}

	pins := make(map[int]int)
	for _, fm := range fixed {
		a, okA := ti[fm.Team1]
		b, okB := ti[fm.Team2]
		if !okA || !okB {
			continue
		}
		rid := pairRoundID(rounds, a, b)
		if rid == -1 {
			return nil, &FixedMatchConflictError{
				Division: div.Name,
				Detail:   fmt.Sprintf("%s vs %s does not occur in a single round-robin leg", fm.Team1, fm.Team2),
			}
		}
		week := fm.Week
		if week > domain.HalfWeeks {
			week -= domain.HalfWeeks
		}
		if existing, ok := pins[rid]; ok && existing != week {
			return nil, &FixedMatchConflictError{
				Division: div.Name,
				Detail:   fmt.Sprintf("%s vs %s is fixed to inconsistent weeks", fm.Team1, fm.Team2),
			}
		}
		pins[rid] = week
	}

	weekOf, err := assignWeeks(rounds, weekRange(domain.FirstWeek, domain.HalfWeeks), pins, rng)
	if err != nil {
		return nil, &InfeasibleError{Division: div.Name, Reason: err.Error()}
	}

	plan := &divisionPlan{div: div}
	for _, r := range rounds {
		w1 := weekOf[r.id]
		w2 := w1 + domain.HalfWeeks
		for _, p := range r.pairs {
			if p.A < 0 || p.B < 0 {
				continue
			}
			m1 := &match{teamA: p.A, teamB: p.B, week: w1, homeIsA: rng.Intn(2) == 0}
			m2 := &match{teamA: p.A, teamB: p.B, week: w2, homeIsA: !m1.homeIsA}
			plan.matches = append(plan.matches, m1, m2)
			plan.flipUnits = append(plan.flipUnits, flipUnit{primary: m1, mirror: m2})
		}
	}

	deadline := time.Now().Add(time.Duration(cfg.Engine.MirroredTimeLimitSeconds) * time.Second)
	final := repair(plan, conflicts, cfg, venueReqs, rng, deadline)
	if final.hard != "" {
		return nil, &InfeasibleError{Division: div.Name, Reason: final.hard}
	}
	return plan, nil
}
