package fksset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInnerSetEmptyBucket(t *testing.T) {
	s, err := newInnerSet(nil, defaultSource(), defaultMaxRetries)
	require.NoError(t, err)
	require.False(t, s.isPossible(0))
	require.False(t, s.isPossible(42))

	_, err = s.insert(1)
	require.Error(t, err)
	require.IsType(t, &NotInUniverseError{}, err)
}

func TestInnerSetSingleton(t *testing.T) {
	s, err := newInnerSet([]uint32{42}, NewSource(1), defaultMaxRetries)
	require.NoError(t, err)

	require.True(t, s.isPossible(42))
	require.False(t, s.isPossible(7))

	found, err := s.find(42)
	require.NoError(t, err)
	require.False(t, found)

	changed, err := s.insert(42)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.insert(42)
	require.NoError(t, err)
	require.False(t, changed, "re-inserting an already-present key should not change state")

	found, err = s.find(42)
	require.NoError(t, err)
	require.True(t, found)

	_, err = s.insert(7)
	require.Error(t, err)
	require.IsType(t, &NotInUniverseError{}, err)
}

func TestInnerSetDuplicatePropagates(t *testing.T) {
	_, err := newInnerSet([]uint32{1, 2, 2}, NewSource(1), defaultMaxRetries)
	require.Error(t, err)
	dup, ok := err.(*DuplicateKeyError)
	require.True(t, ok, "expected *DuplicateKeyError, got %T", err)
	require.Equal(t, uint32(2), dup.Key)
}

func TestInnerSetInjectiveOverManyKeys(t *testing.T) {
	keys := make([]uint32, 50)
	for i := range keys {
		keys[i] = uint32(i * 97)
	}
	s, err := newInnerSet(keys, NewSource(123), defaultMaxRetries)
	require.NoError(t, err)

	seenSlots := make(map[uint32]bool)
	for _, k := range keys {
		require.True(t, s.isPossible(k))
		slot := s.hash.eval(k)
		require.False(t, seenSlots[slot], "hash is not injective over assigned keys")
		seenSlots[slot] = true
	}
	require.Equal(t, uint32(len(keys)*len(keys)), s.hash.m)
}

func TestInnerSetEraseRoundTrip(t *testing.T) {
	s, err := newInnerSet([]uint32{10, 20, 30}, NewSource(5), defaultMaxRetries)
	require.NoError(t, err)

	changed, err := s.insert(20)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.erase(20)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.erase(20)
	require.NoError(t, err)
	require.False(t, changed, "erasing an already-absent key should not change state")

	found, err := s.find(20)
	require.NoError(t, err)
	require.False(t, found)
}
