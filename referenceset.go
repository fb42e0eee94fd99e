package fksset

import "sort"

// ReferenceSet is the oracle implementation: a sorted copy of the
// universe searched by binary search for IsPossible, plus a plain
// presence set for the keys currently inserted. It exists to validate
// PerfectHashSet against (spec §4.4) and must be behaviourally
// indistinguishable from it across the Set interface, including which
// operations raise which error.
type ReferenceSet struct {
	sorted  []uint32
	present map[uint32]struct{}
}

// NewReferenceSet constructs a ReferenceSet over universe. universe must
// be pairwise distinct; a repeated key surfaces as *DuplicateKeyError,
// detected by sorting and scanning for adjacent equal pairs.
func NewReferenceSet(universe []uint32) (*ReferenceSet, error) {
	r := &ReferenceSet{}
	if err := r.init(universe); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ReferenceSet) init(universe []uint32) error {
	sorted := make([]uint32, len(universe))
	copy(sorted, universe)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] == sorted[i] {
			return duplicateKey(sorted[i])
		}
	}

	r.sorted = sorted
	r.present = make(map[uint32]struct{})
	return nil
}

// IsPossible reports whether x belongs to the initial universe, via
// binary search over the sorted copy. Never fails.
func (r *ReferenceSet) IsPossible(x uint32) bool {
	i := sort.Search(len(r.sorted), func(i int) bool { return r.sorted[i] >= x })
	return i < len(r.sorted) && r.sorted[i] == x
}

// Insert adds x. Fails with *NotInUniverseError if x is not in the
// universe.
func (r *ReferenceSet) Insert(x uint32) error {
	if !r.IsPossible(x) {
		return notInUniverse(x)
	}
	r.present[x] = struct{}{}
	return nil
}

// Erase removes x. Fails with *NotInUniverseError if x is not in the
// universe.
func (r *ReferenceSet) Erase(x uint32) error {
	if !r.IsPossible(x) {
		return notInUniverse(x)
	}
	delete(r.present, x)
	return nil
}

// Find reports whether x is currently present. Fails with
// *NotInUniverseError if x is not in the universe.
func (r *ReferenceSet) Find(x uint32) (bool, error) {
	if !r.IsPossible(x) {
		return false, notInUniverse(x)
	}
	_, ok := r.present[x]
	return ok, nil
}

// Size returns the number of currently present keys.
func (r *ReferenceSet) Size() uint32 {
	return uint32(len(r.present))
}
