package fksset

import "fmt"

// DuplicateKeyError is raised by init when the supplied universe contains
// the same key more than once. The set that raised it is left unusable
// until re-initialised.
type DuplicateKeyError struct {
	Key uint32
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("fksset: duplicate key %d in universe", e.Key)
}

// NotInUniverseError is raised by insert/erase/find when the key was not
// part of the universe passed to init. The set remains usable; the
// operation that raised it had no effect.
type NotInUniverseError struct {
	Key uint32
}

func (e *NotInUniverseError) Error() string {
	return fmt.Sprintf("fksset: key %d is not in the universe", e.Key)
}

// ErrConstructionExhausted is returned when a bounded retry cap (see
// WithMaxRetries) is exceeded during construction. It is purely
// defensive: with a non-degenerate coefficient source it is not expected
// to occur, since both retry loops terminate with probability 1.
var ErrConstructionExhausted = fmt.Errorf("fksset: construction exceeded its retry budget")

func duplicateKey(key uint32) error {
	return &DuplicateKeyError{Key: key}
}

func notInUniverse(key uint32) error {
	return &NotInUniverseError{Key: key}
}
