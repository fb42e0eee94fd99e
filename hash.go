package fksset

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// prime is the smallest prime strictly greater than 2^32, used as the
// modulus of the universal hash family h_{a,b}(x) = ((a*x+b) mod p) mod m.
const prime uint64 = 4294967311

// coeffSource is the minimal interface hashParams needs to draw
// coefficients. Source is the only production implementation; tests in
// this package may supply alternate implementations to exercise
// otherwise-nondeterministic retry paths deterministically.
type coeffSource interface {
	next() uint64
}

// Source is a seeded, replayable stream of pseudorandom 64-bit values used
// to draw hash coefficients. It is deliberately not cryptographic: the
// spec only requires membership in a 2-universal family and a
// deterministic, observable seed so that a construction can be replayed.
//
// Internally it is a counter mixed through xxhash, a small counter-based
// generator in the spirit of splitmix64 but using xxhash as the mixing
// function instead of a hand-rolled finalizer.
type Source struct {
	mu      sync.Mutex
	seed    uint64
	counter uint64
}

// NewSource returns a Source seeded deterministically by seed. Two
// Sources created with the same seed produce the same stream of draws,
// which is what makes a construction trace replayable.
func NewSource(seed uint64) *Source {
	return &Source{seed: seed}
}

// Seed returns the value this Source was constructed with, so a caller
// can record it and reproduce the exact same construction later.
func (s *Source) Seed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// next draws the next 64-bit value from the stream.
func (s *Source) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], s.seed)
	binary.LittleEndian.PutUint64(buf[8:16], s.counter)
	return xxhash.Sum64(buf[:])
}

// defaultSource is the process-wide coefficient source used whenever a
// set is constructed without an explicit Source, mirroring the original
// implementation's single process-wide RNG. It is seeded lazily, once,
// from the wall clock — callers who need a replayable trace should pass
// an explicit Source built with NewSource instead.
var (
	defaultSourceOnce sync.Once
	defaultSourceVal  *Source
)

func defaultSource() *Source {
	defaultSourceOnce.Do(func() {
		defaultSourceVal = NewSource(uint64(time.Now().UnixNano()))
	})
	return defaultSourceVal
}

// hashParams holds one draw of coefficients (a, b) plus the modulus m
// the hash currently evaluates into.
type hashParams struct {
	a uint64 // in [1, prime-1]
	b uint64 // in [0, prime-1]
	m uint32 // table size; 0 means "not evaluable"
}

// generateCoefficients draws a new (a, b) pair from src. a is drawn from
// [1, prime-1] and b from [0, prime-1], matching the spec's
// generate_coefficients contract.
func (h *hashParams) generateCoefficients(src coeffSource) {
	h.a = 1 + src.next()%(prime-1)
	h.b = src.next() % prime
}

// setSize sets the table size m. m must be positive for eval to be
// called; a zero-size hash is never evaluated (the empty-bucket/
// empty-universe edge cases short-circuit before reaching it).
func (h *hashParams) setSize(m uint32) {
	h.m = m
}

// eval computes h_{a,b,m}(x) = ((a*x + b) mod p) mod m without overflow.
//
// a < prime fits in 33 bits (prime is just 15 above 2^32), so a*x would
// need up to 65 bits and can't be computed directly in a uint64. The
// reference implementation avoids this by splitting a into high and low
// 32-bit halves and reducing each half's product with x (which is an
// exact 32-bit value, unlike a) before summing:
//
//	a*x mod p == ((aHi<<32)*x mod p + aLo*x mod p) mod p
//
// Both (aHi<<32)*x and aLo*x fit in 64 bits because one factor is always
// an exact 32-bit value.
func (h *hashParams) eval(x uint32) uint32 {
	aHi := h.a >> 32
	aLo := h.a & 0xFFFFFFFF
	xv := uint64(x)

	term1 := (aHi << 32) * xv % prime
	term2 := aLo * xv % prime

	sum := (term1 + term2 + h.b) % prime
	return uint32(sum % uint64(h.m))
}
