package fksset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestS1EmptyUniverse is the spec's scenario S1.
func TestS1EmptyUniverse(t *testing.T) {
	s, err := NewPerfectHashSet(nil, WithSource(NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, uint32(0), s.Size())

	err = s.Insert(0)
	require.IsType(t, &NotInUniverseError{}, err)

	_, err = s.Find(0)
	require.IsType(t, &NotInUniverseError{}, err)

	require.False(t, s.IsPossible(0))
}

// TestS2Singleton is the spec's scenario S2.
func TestS2Singleton(t *testing.T) {
	s, err := NewPerfectHashSet([]uint32{42}, WithSource(NewSource(1)))
	require.NoError(t, err)

	require.Equal(t, uint32(0), s.Size())
	require.True(t, s.IsPossible(42))

	found, err := s.Find(42)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Insert(42))
	require.Equal(t, uint32(1), s.Size())

	found, err = s.Find(42)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, s.Erase(42))
	require.Equal(t, uint32(0), s.Size())

	found, err = s.Find(42)
	require.NoError(t, err)
	require.False(t, found)

	err = s.Insert(7)
	require.IsType(t, &NotInUniverseError{}, err)
}

// TestS3Permutation is the spec's scenario S3: every permutation of
// {1..5} yields identical observable behavior.
func TestS3Permutation(t *testing.T) {
	base := []uint32{1, 2, 3, 4, 5}
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		universe := append([]uint32(nil), base...)
		rng.Shuffle(len(universe), func(i, j int) {
			universe[i], universe[j] = universe[j], universe[i]
		})

		s, err := NewPerfectHashSet(universe, WithSource(NewSource(uint64(trial))))
		require.NoError(t, err)
		require.Equal(t, uint32(0), s.Size())

		for k := uint32(1); k <= 5; k++ {
			require.True(t, s.IsPossible(k))
		}
		for _, k := range []uint32{0, 6, 100} {
			require.False(t, s.IsPossible(k))
		}
	}
}

// TestS4DuplicateDetection is the spec's scenario S4.
func TestS4DuplicateDetection(t *testing.T) {
	_, err := NewPerfectHashSet([]uint32{1, 2, 3, 2}, WithSource(NewSource(1)))
	require.Error(t, err)
	dup, ok := err.(*DuplicateKeyError)
	require.True(t, ok, "expected *DuplicateKeyError, got %T", err)
	require.Equal(t, uint32(2), dup.Key)
}

// TestS5LargeValueKeys is the spec's scenario S5.
func TestS5LargeValueKeys(t *testing.T) {
	universe := []uint32{
		^uint32(0) - 4,
		^uint32(0) - 3,
		^uint32(0) - 2,
		^uint32(0) - 1,
		^uint32(0),
	}
	s, err := NewPerfectHashSet(universe, WithSource(NewSource(1)))
	require.NoError(t, err)

	for _, k := range universe {
		require.True(t, s.IsPossible(k))
	}

	k := universe[0]
	found, err := s.Find(k)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Insert(k))
	found, err = s.Find(k)
	require.NoError(t, err)
	require.True(t, found)
}

// TestS6InsertIdempotence is the spec's scenario S6.
func TestS6InsertIdempotence(t *testing.T) {
	s, err := NewPerfectHashSet([]uint32{10}, WithSource(NewSource(1)))
	require.NoError(t, err)

	require.NoError(t, s.Insert(10))
	require.NoError(t, s.Insert(10))
	require.Equal(t, uint32(1), s.Size())

	require.NoError(t, s.Erase(10))
	require.Equal(t, uint32(0), s.Size())
}

func TestPerfectHashSetSpaceBound(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 30; trial++ {
		n := rng.Intn(300)
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

		s, err := NewPerfectHashSet(universe, WithSource(NewSource(uint64(trial)+1000)))
		require.NoError(t, err)

		var sumSquares uint64
		for _, inner := range s.inner {
			sumSquares += uint64(len(inner.slotKey))
		}
		require.LessOrEqual(t, sumSquares, 3*uint64(n), "space bound violated for n=%d", n)
	}
}

// constCoeffSource always returns the same draw, so generateCoefficients
// always produces the same (a, b) pair. It is a deliberately pathological
// coeffSource used only to exercise the bounded retry cap deterministically:
// a real Source never repeats this way.
type constCoeffSource struct {
	value uint64
}

func (c constCoeffSource) next() uint64 { return c.value }

func TestInnerSetConstructionExhausted(t *testing.T) {
	src := constCoeffSource{value: 12345}

	var probe hashParams
	probe.generateCoefficients(src)
	probe.setSize(4) // two keys -> m_inner = 2^2 = 4

	seenSlot := make(map[uint32]uint32)
	var x, y uint32
	found := false
	for k := uint32(0); k < 1_000_000 && !found; k++ {
		slot := probe.eval(k)
		if prev, ok := seenSlot[slot]; ok {
			x, y = prev, k
			found = true
			break
		}
		seenSlot[slot] = k
	}
	require.True(t, found, "expected to find two keys colliding under a fixed hash within the search range")

	// With a fixed (a, b) draw every retry computes the identical
	// collision, so the loop can never resolve it and must report
	// ErrConstructionExhausted once the retry cap is hit.
	_, err := newInnerSet([]uint32{x, y}, src, 5)
	require.ErrorIs(t, err, ErrConstructionExhausted)
}
