package solver

import (
	"fmt"
	"math/rand"

	"github.com/c-m-hunt/fixture-generator/internal/config"
	"github.com/c-m-hunt/fixture-generator/internal/domain"
)

// CrossDivisionConflictError is returned when a ground-sharing group
// spanning more than one division cannot be resolved by coordination.
// Per spec.md §7's error-handling policy, local recovery only covers
// the mirrored/full fallback within a single division; a contradiction
// that only shows up once every division's plan is known is outside
// that recovery path and is surfaced rather than folded into a
// per-division Diagnostic.
type CrossDivisionConflictError struct {
	Teams []string
	Week  int
}

func (e *CrossDivisionConflictError) Error() string {
	return fmt.Sprintf("ground-sharing conflict between %v could not be resolved in week %d", e.Teams, e.Week)
}

const crossDivisionPasses = 5

// coordinateGroundSharing restores the original implementation's
// CrossDivisionCoordinator (original_source/fix_gen/validation.py):
// since a club's sides routinely play in different divisions (see
// original_source/fix_gen/ground_sharing.py's build_ground_sharing_pairs,
// which groups teams by club across every division rather than within
// one), a ground-sharing group can span divisions that were each
// solved against only their own roster and so cannot see the
// conflict. This walks every week and every such group, and nudges
// one conflicting team's match away from home using that team's own
// flip unit - re-validating its own division's full invariant set
// before keeping the flip, the same repair move internal/solver/engine.go
// makes within a single division.
func coordinateGroundSharing(plans []*divisionPlan, crossGroups [][]string, cfg *config.Config, localConflicts map[string]*domain.ConflictIndex, venueReqsByDivision map[string][]domain.VenueRequirement, rng *rand.Rand) error {
	if len(crossGroups) == 0 {
		return nil
	}

	byCode := make(map[string]*divisionPlan)
	for _, p := range plans {
		for _, t := range p.div.Teams {
			byCode[t.Code] = p
		}
	}

	for pass := 0; pass < crossDivisionPasses; pass++ {
		resolvedAll := true
		for week := domain.FirstWeek; week <= domain.LastWeek; week++ {
			for _, group := range crossGroups {
				if !resolveWeekConflict(byCode, group, week, cfg, localConflicts, venueReqsByDivision, rng) {
					resolvedAll = false
				}
			}
		}
		if resolvedAll {
			return nil
		}
	}

	for week := domain.FirstWeek; week <= domain.LastWeek; week++ {
		for _, group := range crossGroups {
			if len(homeTeamsInWeek(byCode, group, week)) > 1 {
				return &CrossDivisionConflictError{Teams: group, Week: week}
			}
		}
	}
	return nil
}

// resolveWeekConflict tries to bring group down to at most one home
// team in week by flipping one conflicting team's match at a time. It
// reports whether the group ends the call with at most one team home.
func resolveWeekConflict(byCode map[string]*divisionPlan, group []string, week int, cfg *config.Config, localConflicts map[string]*domain.ConflictIndex, venueReqsByDivision map[string][]domain.VenueRequirement, rng *rand.Rand) bool {
	for {
		home := homeTeamsInWeek(byCode, group, week)
		if len(home) <= 1 {
			return true
		}
		order := rng.Perm(len(home))
		flipped := false
		for _, idx := range order {
			code := home[idx]
			plan := byCode[code]
			if hasHomeRequirement(venueReqsByDivision[plan.div.Name], code, week) {
				continue
			}
			m, _, ok := plan.matchAt(code, week)
			if !ok {
				continue
			}
			unit, ok := plan.unitFor(m)
			if !ok {
				continue
			}
			unit.flip()
			if evaluate(plan, localConflicts[plan.div.Name], cfg, venueReqsByDivision[plan.div.Name]).hard != "" {
				unit.flip()
				continue
			}
			flipped = true
			break
		}
		if !flipped {
			return false
		}
	}
}

func homeTeamsInWeek(byCode map[string]*divisionPlan, group []string, week int) []string {
	var home []string
	for _, code := range group {
		plan, ok := byCode[code]
		if !ok {
			continue
		}
		m, ti, ok := plan.matchAt(code, week)
		if !ok {
			continue
		}
		if m.isHome(ti) {
			home = append(home, code)
		}
	}
	return home
}

func hasHomeRequirement(reqs []domain.VenueRequirement, code string, week int) bool {
	for _, r := range reqs {
		if r.Team == code && r.Week == week && r.Venue == domain.Home {
			return true
		}
	}
	return false
}

// crossDivisionGroups returns every group in conflicts whose member
// teams are not all in the same division.
func crossDivisionGroups(conflicts *domain.ConflictIndex, teamDivision map[string]string) [][]string {
	var out [][]string
	for _, g := range conflicts.AllGroups() {
		divs := make(map[string]bool)
		for _, code := range g {
			if d, ok := teamDivision[code]; ok {
				divs[d] = true
			}
		}
		if len(divs) > 1 {
			out = append(out, g)
		}
	}
	return out
}
