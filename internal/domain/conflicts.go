package domain

// ConflictIndex is a lookup of co-venued team sets, built from the
// VenueConflict rows supplied by the venConflicts.csv collaborator
// (see internal/loader) plus, where no explicit conflict covers a
// club's pair, the implicit ground-sharing buckets derived from team
// numbers (see Team.SharesGround).
type ConflictIndex struct {
	// groups maps a team code to every conflict group (as a slice of
	// team codes, including itself) that team belongs to.
	groups map[string][][]string
}

// NewConflictIndex builds an index from explicit conflicts and a pool
// of teams used to derive implicit same-club ground-sharing pairs for
// any team not already covered by an explicit conflict group.
func NewConflictIndex(explicit []VenueConflict, teams []Team) *ConflictIndex {
	idx := &ConflictIndex{groups: make(map[string][][]string)}

	covered := make(map[string]bool)
	for _, c := range explicit {
		idx.add(c.Teams)
		for _, t := range c.Teams {
			covered[t] = true
		}
	}

	byClub := make(map[string][]Team)
	for _, t := range teams {
		byClub[t.Club] = append(byClub[t.Club], t)
	}
	added := make(map[string]bool)
	for _, club := range byClub {
		for i := 0; i < len(club); i++ {
			if covered[club[i].Code] {
				continue
			}
			var group []string
			for j := 0; j < len(club); j++ {
				if club[i].SharesGround(club[j]) {
					group = append(group, club[j].Code)
				}
			}
			if key := groupKey(group); len(group) > 1 && !added[key] {
				added[key] = true
				idx.add(group)
			}
		}
	}

	return idx
}

func (idx *ConflictIndex) add(teams []string) {
	for _, t := range teams {
		idx.groups[t] = append(idx.groups[t], teams)
	}
}

// Groups returns every distinct conflict group a team belongs to.
func (idx *ConflictIndex) Groups(team string) [][]string {
	return idx.groups[team]
}

// AllGroups returns every distinct conflict group in the index,
// deduplicated.
func (idx *ConflictIndex) AllGroups() [][]string {
	seen := make(map[string]bool)
	var out [][]string
	for _, groups := range idx.groups {
		for _, g := range groups {
			key := groupKey(g)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, g)
		}
	}
	return out
}

// Conflicts reports whether two teams belong to the same conflict
// group (and so cannot both be home in the same week).
func (idx *ConflictIndex) Conflicts(a, b string) bool {
	for _, g := range idx.groups[a] {
		for _, t := range g {
			if t == b {
				return true
			}
		}
	}
	return false
}

func groupKey(teams []string) string {
	// Groups are always constructed with a stable member order, so
	// simple concatenation is a safe dedup key.
	key := ""
	for _, t := range teams {
		key += t + ","
	}
	return key
}
