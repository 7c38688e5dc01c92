package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Tier classifies a division by seniority, 1 (most senior) through 4.
// It is used only for ground-sharing penalty weighting under the
// tier-weighted soft-constraint policy (see internal/config).
type Tier int

// Division is an ordered pair of (name, teams). A division has either
// 10 or 11 teams; HasByeWeeks reports which.
type Division struct {
	Name  string
	Teams []Team
	Tier  Tier
}

// NewDivision builds a Division from a name and a list of team codes,
// assigning tier deterministically from the name and validating every
// code. DuplicateTeamError is returned via the caller-supplied seen set
// so duplicates can be detected across divisions, not just within one.
func NewDivision(name string, codes []string, seen map[string]string) (Division, error) {
	d := Division{Name: name, Tier: tierFromName(name)}
	for _, code := range codes {
		t, err := ParseTeam(code, name)
		if err != nil {
			return Division{}, err
		}
		if _, ok := seen[code]; ok {
			return Division{}, &DuplicateTeamError{Code: code}
		}
		seen[code] = name
		d.Teams = append(d.Teams, t)
	}
	return d, nil
}

// HasByeWeeks reports whether this division has an odd (11) team count
// and therefore needs a bye each week.
func (d Division) HasByeWeeks() bool {
	return len(d.Teams)%2 == 1
}

// Team looks up a team by code within the division.
func (d Division) Team(code string) (Team, bool) {
	for _, t := range d.Teams {
		if t.Code == code {
			return t, true
		}
	}
	return Team{}, false
}

// divisionNumberPattern pulls the numeral out of a "Div N" / "Division
// N" name so tier lookup compares whole numbers, never substrings
// ("Div 11" must not match a "Div 1" prefix check).
var divisionNumberPattern = regexp.MustCompile(`(?i)\bdiv(?:ision)?\.?\s*0*([0-9]+)\b`)

// tierFromName assigns tier deterministically from a division name:
// Premier/Div 1-4 -> 1, Div 5-7 -> 2, Div 8-9 -> 3, Div 10-12 -> 4;
// legacy "1st/2nd/3rd XI" names map to tiers 1/2/3 respectively;
// anything else defaults to 4.
func tierFromName(name string) Tier {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "premier") || strings.Contains(lower, "1st xi") {
		return 1
	}
	if strings.Contains(lower, "2nd xi") {
		return 2
	}
	if strings.Contains(lower, "3rd xi") {
		return 3
	}
	if m := divisionNumberPattern.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case n >= 1 && n <= 4:
				return 1
			case n >= 5 && n <= 7:
				return 2
			case n >= 8 && n <= 9:
				return 3
			}
		}
	}
	return 4
}
