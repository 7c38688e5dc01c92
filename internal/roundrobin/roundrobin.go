// Package roundrobin builds 1-factorizations of a team list: partitions
// of every unordered pair into rounds such that each round is a perfect
// matching (every team appears at most once per round). This is the
// "circle method" / polygon rotation used by sports-scheduling draw
// generators: fix one team, rotate the rest, and read off one round per
// rotation.
package roundrobin

// Pair is an unordered matchup between two team indices into the slice
// passed to Rounds.
type Pair struct {
	A, B int
}

// Rounds returns a 1-factorization of n teams (indices 0..n-1): for
// even n, n-1 rounds each containing n/2 pairs covering every team
// exactly once; for odd n, n rounds each containing (n-1)/2 pairs,
// with exactly one team absent (on bye) per round.
//
// The rotation keeps index 0 fixed and rotates all other indices
// around it one step per round, the standard circle/polygon method
// (see e.g. adampetrovic/nrl-scheduler's draw.Generator.rotateTeams).
func Rounds(n int) [][]Pair {
	if n < 2 {
		return nil
	}

	bye := -1
	working := make([]int, n)
	for i := range working {
		working[i] = i
	}
	if n%2 == 1 {
		working = append(working, bye)
		n++
	}

	numRounds := n - 1
	matchesPerRound := n / 2

	rounds := make([][]Pair, numRounds)
	for r := 0; r < numRounds; r++ {
		var pairs []Pair
		for m := 0; m < matchesPerRound; m++ {
			a := working[m]
			b := working[n-1-m]
			if a == bye || b == bye {
				continue
			}
			pairs = append(pairs, Pair{A: a, B: b})
		}
		rounds[r] = pairs
		rotate(working)
	}
	return rounds
}

// rotate keeps index 0 fixed and rotates every other element one
// position clockwise.
func rotate(teams []int) {
	if len(teams) <= 2 {
		return
	}
	last := teams[len(teams)-1]
	for i := len(teams) - 1; i > 1; i-- {
		teams[i] = teams[i-1]
	}
	teams[1] = last
}

// Rotated returns Rounds(n) computed starting from a rotated team
// order: working[i] = order[i]. This is used to diversify the
// 1-factorization produced for a given n (symmetry breaking) without
// changing its structural properties. order must be a permutation of
// 0..n-1.
func Rotated(order []int) [][]Pair {
	n := len(order)
	rounds := Rounds(n)
	// Rounds() was built over indices 0..n-1; remap through order.
	for _, round := range rounds {
		for i, p := range round {
			round[i] = Pair{A: order[p.A], B: order[p.B]}
		}
	}
	return rounds
}
