// Package validate independently re-checks a generated fixtures.csv
// against every hard and soft rule in spec.md §8, the way
// derekprior/rbrl's internal/validator package re-checks a generated
// schedule workbook rather than trusting the generator that produced
// it.
package validate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/c-m-hunt/fixture-generator/internal/domain"
)

// Violation is one rule breach found during validation.
type Violation struct {
	Division string
	Type     string // "error" (hard) or "warning" (soft)
	Message  string
}

// Row is one parsed fixtures.csv data row.
type Row struct {
	Week     int
	Division string
	Home     string
	Away     string
}

// Fixtures re-derives every hard and soft spec.md §8 property from a
// flat list of rows and reports every violation found. It does not
// know how the schedule was produced, so it catches mistakes in the
// solver or in hand-edited CSV input alike.
func Fixtures(rows []Row) []Violation {
	var violations []Violation
	byDivision := groupByDivision(rows)

	for division, divRows := range byDivision {
		violations = append(violations, checkWeekCoverage(division, divRows)...)
		violations = append(violations, checkMatchesPerWeek(division, divRows)...)
		violations = append(violations, checkNoSelfPlay(division, divRows)...)
		violations = append(violations, checkPairFrequency(division, divRows)...)
		violations = append(violations, checkNonAdjacentRematch(division, divRows)...)
		violations = append(violations, checkOppositeOrientationOnRematch(division, divRows)...)
		violations = append(violations, checkOneGamePerTeamPerWeek(division, divRows)...)
		violations = append(violations, checkConsecutiveVenue(division, divRows)...)
	}
	violations = append(violations, checkCrossDivisionGroundSharing(rows)...)

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Division != violations[j].Division {
			return violations[i].Division < violations[j].Division
		}
		return violations[i].Message < violations[j].Message
	})
	return violations
}

func groupByDivision(rows []Row) map[string][]Row {
	out := make(map[string][]Row)
	for _, r := range rows {
		out[r.Division] = append(out[r.Division], r)
	}
	return out
}

func checkWeekCoverage(division string, rows []Row) []Violation {
	seen := make(map[int]bool)
	for _, r := range rows {
		seen[r.Week] = true
	}
	var violations []Violation
	for week := domain.FirstWeek; week <= domain.LastWeek; week++ {
		if !seen[week] {
			violations = append(violations, Violation{
				Division: division, Type: "error",
				Message: fmt.Sprintf("no fixtures at all in week %d", week),
			})
		}
	}
	return violations
}

func checkMatchesPerWeek(division string, rows []Row) []Violation {
	teams := teamsOf(rows)
	expected := len(teams) / 2
	counts := make(map[int]int)
	for _, r := range rows {
		counts[r.Week]++
	}
	var violations []Violation
	for week := domain.FirstWeek; week <= domain.LastWeek; week++ {
		if counts[week] != expected && counts[week] != 0 {
			violations = append(violations, Violation{
				Division: division, Type: "error",
				Message: fmt.Sprintf("week %d has %d matches, want %d", week, counts[week], expected),
			})
		}
	}
	return violations
}

func checkNoSelfPlay(division string, rows []Row) []Violation {
	var violations []Violation
	for _, r := range rows {
		if r.Home == r.Away {
			violations = append(violations, Violation{
				Division: division, Type: "error",
				Message: fmt.Sprintf("week %d: %s is scheduled to play itself", r.Week, r.Home),
			})
		}
	}
	return violations
}

func checkPairFrequency(division string, rows []Row) []Violation {
	counts := make(map[[2]string]int)
	for _, r := range rows {
		pair := [2]string{r.Home, r.Away}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		counts[pair]++
	}
	var violations []Violation
	for pair, n := range counts {
		if n < 1 || n > 2 {
			violations = append(violations, Violation{
				Division: division, Type: "error",
				Message: fmt.Sprintf("%s vs %s met %d times, want 1 or 2", pair[0], pair[1], n),
			})
		}
	}
	return violations
}

// checkNonAdjacentRematch enforces spec.md §8 property 4: a pair that
// meets twice must not meet in adjacent weeks.
func checkNonAdjacentRematch(division string, rows []Row) []Violation {
	weeksOf := make(map[[2]string][]int)
	for _, r := range rows {
		pair := [2]string{r.Home, r.Away}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		weeksOf[pair] = append(weeksOf[pair], r.Week)
	}
	var violations []Violation
	for pair, weeks := range weeksOf {
		if len(weeks) != 2 {
			continue
		}
		w1, w2 := weeks[0], weeks[1]
		if w1 > w2 {
			w1, w2 = w2, w1
		}
		if w2-w1 < 2 {
			violations = append(violations, Violation{
				Division: division, Type: "error",
				Message: fmt.Sprintf("%s vs %s meet in adjacent weeks %d and %d", pair[0], pair[1], w1, w2),
			})
		}
	}
	return violations
}

// checkOppositeOrientationOnRematch enforces spec.md §3/§8 property 3:
// when a pair meets twice, one meeting must have each team at home -
// a team cannot be home (or away) in both of its fixtures against the
// same opponent.
func checkOppositeOrientationOnRematch(division string, rows []Row) []Violation {
	homeOf := make(map[[2]string][]string)
	for _, r := range rows {
		pair := [2]string{r.Home, r.Away}
		key := pair
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		homeOf[key] = append(homeOf[key], r.Home)
	}
	var violations []Violation
	for pair, homes := range homeOf {
		if len(homes) != 2 {
			continue
		}
		if homes[0] == homes[1] {
			violations = append(violations, Violation{
				Division: division, Type: "error",
				Message: fmt.Sprintf("%s vs %s: %s is home in both meetings", pair[0], pair[1], homes[0]),
			})
		}
	}
	return violations
}

// checkCrossDivisionGroundSharing re-derives the implicit ground
// sharing groups directly from team codes (club letters and
// pairing-bucket numbers), the way original_source's
// CrossDivisionCoordinator builds ground_sharing_pairs across every
// division rather than within one: a club's sides routinely play in
// different divisions, so this check walks the full row set instead
// of being grouped by division like the checks above.
func checkCrossDivisionGroundSharing(rows []Row) []Violation {
	homeWeeksByTeam := make(map[string]map[int]bool)
	divisionOf := make(map[string]string)
	for _, r := range rows {
		if homeWeeksByTeam[r.Home] == nil {
			homeWeeksByTeam[r.Home] = make(map[int]bool)
		}
		homeWeeksByTeam[r.Home][r.Week] = true
		divisionOf[r.Home] = r.Division
		divisionOf[r.Away] = r.Division
	}

	type bucketKey struct {
		club   string
		bucket int
	}
	byBucket := make(map[bucketKey][]string)
	for code := range divisionOf {
		club, bucket, ok := groundSharingBucket(code)
		if !ok {
			continue
		}
		key := bucketKey{club, bucket}
		byBucket[key] = append(byBucket[key], code)
	}

	var violations []Violation
	for _, group := range byBucket {
		if len(group) < 2 {
			continue
		}
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				t1, t2 := group[i], group[j]
				for week := range homeWeeksByTeam[t1] {
					if homeWeeksByTeam[t2][week] {
						violations = append(violations, Violation{
							Division: divisionOf[t1] + "/" + divisionOf[t2], Type: "error",
							Message: fmt.Sprintf("ground-sharing conflict: %s and %s both home in week %d", t1, t2, week),
						})
					}
				}
			}
		}
	}
	return violations
}

// groundSharingBucket splits a team code into its club letters and
// ground-sharing pairing bucket ((number-1)/2), mirroring
// domain.Team.GroundBucket without importing the domain package's
// CSV-facing team-construction path.
func groundSharingBucket(code string) (string, int, bool) {
	i := 0
	for i < len(code) && code[i] >= 'A' && code[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(code) {
		return "", 0, false
	}
	n, err := strconv.Atoi(code[i:])
	if err != nil {
		return "", 0, false
	}
	return code[:i], (n - 1) / 2, true
}

type teamWeek struct {
	team string
	week int
}

func checkOneGamePerTeamPerWeek(division string, rows []Row) []Violation {
	seen := make(map[teamWeek]bool)
	var violations []Violation
	for _, r := range rows {
		for _, team := range []string{r.Home, r.Away} {
			key := teamWeek{team, r.Week}
			if seen[key] {
				violations = append(violations, Violation{
					Division: division, Type: "error",
					Message: fmt.Sprintf("%s has more than one fixture in week %d", team, r.Week),
				})
			}
			seen[key] = true
		}
	}
	return violations
}

func checkConsecutiveVenue(division string, rows []Row) []Violation {
	byTeamWeek := make(map[string]map[int]bool) // team -> week -> isHome
	for _, r := range rows {
		if byTeamWeek[r.Home] == nil {
			byTeamWeek[r.Home] = make(map[int]bool)
		}
		if byTeamWeek[r.Away] == nil {
			byTeamWeek[r.Away] = make(map[int]bool)
		}
		byTeamWeek[r.Home][r.Week] = true
		byTeamWeek[r.Away][r.Week] = false
	}

	var violations []Violation
	for team, weeks := range byTeamWeek {
		run, runHome := 0, false
		for week := domain.FirstWeek; week <= domain.LastWeek; week++ {
			home, ok := weeks[week]
			if !ok {
				home = false // bye counts as away
			}
			if week > domain.FirstWeek && home == runHome {
				run++
			} else {
				run = 1
				runHome = home
			}
			if run == 4 {
				violations = append(violations, Violation{
					Division: division, Type: "error",
					Message: fmt.Sprintf("%s has 4 consecutive %s fixtures ending week %d", team, venueWord(runHome), week),
				})
			} else if run == 3 {
				violations = append(violations, Violation{
					Division: division, Type: "warning",
					Message: fmt.Sprintf("%s has 3 consecutive %s fixtures ending week %d", team, venueWord(runHome), week),
				})
			}
		}
	}
	return violations
}

func venueWord(home bool) string {
	if home {
		return "home"
	}
	return "away"
}

func teamsOf(rows []Row) map[string]bool {
	teams := make(map[string]bool)
	for _, r := range rows {
		teams[r.Home] = true
		teams[r.Away] = true
	}
	return teams
}
