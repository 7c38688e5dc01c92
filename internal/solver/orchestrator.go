package solver

import (
	"math/rand"
	"time"

	"github.com/c-m-hunt/fixture-generator/internal/config"
	"github.com/c-m-hunt/fixture-generator/internal/domain"
	"github.com/c-m-hunt/fixture-generator/internal/logging"
)

// Strategy names a division's chosen scheduling approach, reported to
// the caller so the CLI and output files can record which one ran.
type Strategy string

const (
	StrategyMirrored Strategy = "mirrored"
	StrategyFull     Strategy = "full"
)

// Options configures a Generate run.
type Options struct {
	Seed   int64
	Config *config.Config
}

// Result is one division's solved schedule. Diagnostic is set, and
// Fixtures left empty, when neither strategy found a feasible
// schedule for this division (spec.md §6/§7: infeasibility is
// reported, not thrown).
type Result struct {
	Division   string
	Strategy   Strategy
	Fixtures   []domain.Fixture
	Diagnostic string
}

// MaxSeed is the upper bound (inclusive) of an auto-picked seed, per
// spec.md §4.5 and §8 property 10.
const MaxSeed = 999999

// Generate solves every division independently and returns one Result
// per division, in input order, plus the seed actually used. It
// implements the orchestration spec.md §4.5 describes: if no seed is
// supplied (Options.Seed == 0), one is drawn from [1, MaxSeed] and
// reported back to the caller; try the mirrored strategy first (it is
// cheaper and yields exact home/away balance for free), and fall back
// to the full 18-week strategy whenever mirroring is structurally
// infeasible for that division's fixed matches and venue requirements.
//
// Per spec.md §6/§7, infeasibility is a recoverable outcome, not a
// thrown error: a division for which both strategies fail gets a
// Result with empty Fixtures and a non-empty Diagnostic, logged as an
// error, and the run continues with the remaining divisions. Generate
// returns a non-nil error only for a contradiction outside that
// per-division recovery path: a ground-sharing group that spans more
// than one division (clubs routinely run sides across multiple
// divisions) and cannot be resolved even after every division has its
// own feasible plan - see coordinateGroundSharing.
func Generate(divisions []domain.Division, fixed []domain.FixedMatch, venueReqs []domain.VenueRequirement, venueConflicts []domain.VenueConflict, opts Options) ([]Result, int64, error) {
	log := logging.Log()
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = int64(rand.New(rand.NewSource(time.Now().UnixNano())).Intn(MaxSeed) + 1)
	}
	log.WithField("seed", seed).Info("starting fixture generation")

	teamDivision := make(map[string]string)
	var allTeams []domain.Team
	for _, div := range divisions {
		for _, t := range div.Teams {
			teamDivision[t.Code] = div.Name
			allTeams = append(allTeams, t)
		}
	}
	globalConflicts := domain.NewConflictIndex(venueConflicts, allTeams)
	crossGroups := crossDivisionGroups(globalConflicts, teamDivision)

	var plans []*divisionPlan
	strategies := make(map[string]Strategy)
	localConflicts := make(map[string]*domain.ConflictIndex)
	venueReqsByDivision := make(map[string][]domain.VenueRequirement)
	diagnostics := make(map[string]string)

	for _, div := range divisions {
		rng := rand.New(rand.NewSource(seed + int64(divisionSeedOffset(div.Name))))

		divFixed := filterFixedMatches(div, fixed)
		divVenueReqs := filterVenueReqs(div, venueReqs)
		divConflicts := filterVenueConflicts(div, venueConflicts)
		conflicts := domain.NewConflictIndex(divConflicts, div.Teams)
		localConflicts[div.Name] = conflicts
		venueReqsByDivision[div.Name] = divVenueReqs

		plan, strat, err := solveDivision(div, divFixed, divVenueReqs, conflicts, cfg, rng)
		if err != nil {
			log.WithField("division", div.Name).WithError(err).Error("no feasible schedule")
			diagnostics[div.Name] = err.Error()
			continue
		}
		log.WithField("division", div.Name).WithField("strategy", strat).Info("schedule found")
		plans = append(plans, plan)
		strategies[div.Name] = strat
	}

	if len(crossGroups) > 0 {
		coordRng := rand.New(rand.NewSource(seed))
		if err := coordinateGroundSharing(plans, crossGroups, cfg, localConflicts, venueReqsByDivision, coordRng); err != nil {
			log.WithError(err).Error("cross-division ground-sharing conflict could not be resolved")
			return nil, seed, err
		}
	}

	byName := make(map[string]*divisionPlan, len(plans))
	for _, p := range plans {
		byName[p.div.Name] = p
	}

	results := make([]Result, 0, len(divisions))
	for _, div := range divisions {
		if plan, ok := byName[div.Name]; ok {
			results = append(results, Result{
				Division: div.Name,
				Strategy: strategies[div.Name],
				Fixtures: plan.fixtures(),
			})
			continue
		}
		results = append(results, Result{Division: div.Name, Diagnostic: diagnostics[div.Name]})
	}
	return results, seed, nil
}

func solveDivision(div domain.Division, fixed []domain.FixedMatch, venueReqs []domain.VenueRequirement, conflicts *domain.ConflictIndex, cfg *config.Config, rng *rand.Rand) (*divisionPlan, Strategy, error) {
	if ok, reason := mirrorFeasible(div, fixed, venueReqs); ok {
		plan, err := solveMirrored(div, fixed, venueReqs, conflicts, cfg, rng)
		if err == nil {
			return plan, StrategyMirrored, nil
		}
		logging.Log().WithField("division", div.Name).WithError(err).Warn("mirrored strategy failed, falling back to full season")
	} else {
		logging.Log().WithField("division", div.Name).WithField("reason", reason).Debug("mirroring not structurally possible")
	}

	plan, err := solveFull(div, fixed, venueReqs, conflicts, cfg, rng)
	if err != nil {
		return nil, "", err
	}
	return plan, StrategyFull, nil
}

func filterFixedMatches(div domain.Division, fixed []domain.FixedMatch) []domain.FixedMatch {
	in := teamIndex(div)
	var out []domain.FixedMatch
	for _, fm := range fixed {
		_, okA := in[fm.Team1]
		_, okB := in[fm.Team2]
		if okA && okB {
			out = append(out, fm)
		}
	}
	return out
}

func filterVenueReqs(div domain.Division, reqs []domain.VenueRequirement) []domain.VenueRequirement {
	in := teamIndex(div)
	var out []domain.VenueRequirement
	for _, r := range reqs {
		if _, ok := in[r.Team]; ok {
			out = append(out, r)
		}
	}
	return out
}

func filterVenueConflicts(div domain.Division, conflicts []domain.VenueConflict) []domain.VenueConflict {
	in := teamIndex(div)
	var out []domain.VenueConflict
	for _, c := range conflicts {
		for _, t := range c.Teams {
			if _, ok := in[t]; ok {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// divisionSeedOffset derives a small, stable per-division offset from
// its name so every division gets a distinct but reproducible RNG
// stream from a single run seed.
func divisionSeedOffset(name string) int {
	h := 0
	for _, r := range name {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return h
}
