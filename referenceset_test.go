package fksset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceSetS1EmptyUniverse(t *testing.T) {
	r, err := NewReferenceSet(nil)
	require.NoError(t, err)
	require.Equal(t, uint32(0), r.Size())

	err = r.Insert(0)
	require.IsType(t, &NotInUniverseError{}, err)

	_, err = r.Find(0)
	require.IsType(t, &NotInUniverseError{}, err)

	require.False(t, r.IsPossible(0))
}

func TestReferenceSetS2Singleton(t *testing.T) {
	r, err := NewReferenceSet([]uint32{42})
	require.NoError(t, err)

	require.True(t, r.IsPossible(42))
	found, err := r.Find(42)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, r.Insert(42))
	require.Equal(t, uint32(1), r.Size())

	found, err = r.Find(42)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, r.Erase(42))
	require.Equal(t, uint32(0), r.Size())

	err = r.Insert(7)
	require.IsType(t, &NotInUniverseError{}, err)
}

func TestReferenceSetS4DuplicateDetection(t *testing.T) {
	_, err := NewReferenceSet([]uint32{1, 2, 3, 2})
	require.Error(t, err)
	require.IsType(t, &DuplicateKeyError{}, err)
}

func TestReferenceSetIdempotence(t *testing.T) {
	r, err := NewReferenceSet([]uint32{10})
	require.NoError(t, err)

	require.NoError(t, r.Insert(10))
	require.NoError(t, r.Insert(10))
	require.Equal(t, uint32(1), r.Size())

	require.NoError(t, r.Erase(10))
	require.NoError(t, r.Erase(10))
	require.Equal(t, uint32(0), r.Size())
}
