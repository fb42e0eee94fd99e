// Package workload generates the universes and operation sequences used
// by the differential test driver (cmd/fksdiff) and by this module's own
// property-style tests. It has no dependents inside the core fksset
// package — the core stays free of any notion of "how to generate a
// test universe," per the spec's scope boundary.
package workload

import "math/rand"

// ActionType mirrors the original test harness's action enum
// (insert/erase/find/is_possible/size), used to drive an operation
// sequence against a Set implementation.
type ActionType int

const (
	Insert ActionType = iota
	Erase
	Find
	IsPossible
	Size
)

// Action is one step of an operation sequence: an action type plus the
// key it applies to (ignored for Size).
type Action struct {
	Type ActionType
	Key  uint32
}

// Random builds a universe of up to maxElements pairwise-distinct keys
// drawn uniformly from the full uint32 range.
func Random(rng *rand.Rand, maxElements int) []uint32 {
	n := rng.Intn(maxElements + 1)
	seen := make(map[uint32]struct{}, n)
	universe := make([]uint32, 0, n)
	for len(universe) < n {
		k := rng.Uint32()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		universe = append(universe, k)
	}
	return universe
}

// Permutation returns a random permutation of 1..n, exercising the
// spec's S3 scenario (construction behavior must not depend on key
// order).
func Permutation(rng *rand.Rand, n int) []uint32 {
	universe := make([]uint32, n)
	for i := range universe {
		universe[i] = uint32(i + 1)
	}
	rng.Shuffle(len(universe), func(i, j int) {
		universe[i], universe[j] = universe[j], universe[i]
	})
	return universe
}

// Duplicate returns a universe of at most n keys (at least two) in which
// exactly one value appears twice: a random universe of up to n-1 distinct
// keys plus a copy of one of them. It is a degenerate universe that must
// surface *fksset.DuplicateKeyError.
func Duplicate(rng *rand.Rand, n int) []uint32 {
	if n < 2 {
		n = 2
	}
	universe := Random(rng, n-1)
	if len(universe) == 0 {
		universe = []uint32{rng.Uint32()}
	}
	return append(universe, universe[rng.Intn(len(universe))])
}

// Adversarial returns a universe engineered to be hash-unfriendly for a
// small table size: many keys congruent mod small moduli, which tends
// to stress the outer construction's retry loop before a balanced
// coefficient draw is found.
func Adversarial(rng *rand.Rand, n int) []uint32 {
	if n <= 0 {
		return nil
	}
	modulus := uint32(rng.Intn(7) + 2) // small modulus in [2,8]
	seen := make(map[uint32]struct{}, n)
	universe := make([]uint32, 0, n)
	residue := rng.Uint32() % modulus
	for len(universe) < n {
		k := residue + uint32(len(universe))*modulus
		if _, dup := seen[k]; dup {
			k += modulus
		}
		seen[k] = struct{}{}
		universe = append(universe, k)
	}
	return universe
}

// Operations generates a sequence of count actions over universe,
// optionally including keys outside the universe (to exercise
// NotInUniverse) when includeForeign is true.
func Operations(rng *rand.Rand, universe []uint32, count int, includeForeign bool) []Action {
	actions := make([]Action, 0, count)
	for i := 0; i < count; i++ {
		actionType := ActionType(rng.Intn(int(Size) + 1))
		var key uint32
		switch {
		case len(universe) == 0:
			key = rng.Uint32()
		case includeForeign && rng.Intn(4) == 0:
			key = foreignKey(rng, universe)
		default:
			key = universe[rng.Intn(len(universe))]
		}
		actions = append(actions, Action{Type: actionType, Key: key})
	}
	return actions
}

func foreignKey(rng *rand.Rand, universe []uint32) uint32 {
	inUniverse := make(map[uint32]struct{}, len(universe))
	for _, k := range universe {
		inUniverse[k] = struct{}{}
	}
	for {
		k := rng.Uint32()
		if _, ok := inUniverse[k]; !ok {
			return k
		}
	}
}
