// Package domain holds the value types shared by the CSV loaders, the
// solver, and the output writers: teams, divisions, fixed matches, venue
// requirements, venue conflicts, and the fixtures the solver produces.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var teamCodePattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// Venue is a home/away indicator.
type Venue int

const (
	Away Venue = iota
	Home
)

func (v Venue) String() string {
	if v == Home {
		return "home"
	}
	return "away"
}

// ParseVenue parses "h" or "a" (case-insensitive) into a Venue.
func ParseVenue(s string) (Venue, error) {
	switch s {
	case "h", "H":
		return Home, nil
	case "a", "A":
		return Away, nil
	default:
		return Away, fmt.Errorf("invalid venue %q: want \"h\" or \"a\"", s)
	}
}

// InvalidTeamCodeError is returned when a team code does not match the
// required [A-Z]+[0-9]+ pattern.
type InvalidTeamCodeError struct {
	Code string
}

func (e *InvalidTeamCodeError) Error() string {
	return fmt.Sprintf("invalid team code %q: want letters followed by digits, e.g. \"A1\"", e.Code)
}

// DuplicateTeamError is returned when a team code appears in more than one
// division.
type DuplicateTeamError struct {
	Code string
}

func (e *DuplicateTeamError) Error() string {
	return fmt.Sprintf("duplicate team code %q: team codes must be unique across all divisions", e.Code)
}

// Team identifies a club side. Code decomposes into Club (the letter
// prefix) and Number (the integer suffix); Number determines
// ground-sharing membership within a club via integer division into
// pairs {1,2}/{3,4}/{5,6}/{7,8}.
type Team struct {
	Code     string
	Club     string
	Number   int
	Division string
}

// ParseTeam parses a team code of the form "[A-Z]+[0-9]+" into a Team
// belonging to the given division.
func ParseTeam(code, division string) (Team, error) {
	m := teamCodePattern.FindStringSubmatch(code)
	if m == nil {
		return Team{}, &InvalidTeamCodeError{Code: code}
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return Team{}, &InvalidTeamCodeError{Code: code}
	}
	return Team{Code: code, Club: m[1], Number: n, Division: division}, nil
}

// GroundBucket returns the ground-sharing pairing bucket for this team:
// numbers {1,2} share bucket 0, {3,4} bucket 1, {5,6} bucket 2, {7,8}
// bucket 3, and so on.
func (t Team) GroundBucket() int {
	return (t.Number - 1) / 2
}

// SharesGround reports whether two teams of the same club fall in the
// same ground-sharing pairing bucket.
func (t Team) SharesGround(o Team) bool {
	return t.Club == o.Club && t.GroundBucket() == o.GroundBucket()
}
