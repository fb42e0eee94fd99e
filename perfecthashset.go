package fksset

// defaultMaxRetries bounds both the outer and inner retry loops as a
// defensive measure against a pathological coefficient source. With the
// package's xxhash-mixed Source this is not expected to be hit; both
// loops terminate in O(1) expected iterations per the spec's Markov
// bound.
const defaultMaxRetries = 100

// PerfectHashSet is the two-level FKS perfect hash set over a fixed
// universe of uint32 keys. It satisfies the Set interface.
type PerfectHashSet struct {
	n       uint32
	hash    hashParams
	buckets [][]uint32 // only populated transiently during init
	inner   []*innerSet
	count   uint32

	src        coeffSource
	maxRetries int
}

// Option configures a PerfectHashSet at construction.
type Option func(*config)

type config struct {
	src        coeffSource
	maxRetries int
}

func newConfig(opts []Option) *config {
	c := &config{src: defaultSource(), maxRetries: defaultMaxRetries}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSource overrides the coefficient source used during construction.
// Two sets built WithSource(NewSource(seed)) from the same universe
// produce identical constructions, which is what makes a trace
// replayable.
func WithSource(src *Source) Option {
	return func(c *config) { c.src = src }
}

// WithMaxRetries overrides the bounded retry cap (default 100) that
// guards against a pathological coefficient source. Exceeding it
// surfaces ErrConstructionExhausted instead of looping indefinitely.
func WithMaxRetries(n int) Option {
	return func(c *config) { c.maxRetries = n }
}

// NewPerfectHashSet constructs a PerfectHashSet over the given universe.
// keys must be pairwise distinct; a repeated key surfaces as
// *DuplicateKeyError. An empty universe is valid and trivially
// constructed with no buckets.
func NewPerfectHashSet(keys []uint32, opts ...Option) (*PerfectHashSet, error) {
	s := &PerfectHashSet{}
	cfg := newConfig(opts)
	s.src = cfg.src
	s.maxRetries = cfg.maxRetries
	if err := s.init(keys); err != nil {
		return nil, err
	}
	return s, nil
}

// init implements the outer construction algorithm of §4.3: set n to the
// universe size, repeatedly draw outer coefficients and partition until
// the total squared bucket size is within budget, then build one
// InnerSet per bucket.
func (s *PerfectHashSet) init(universe []uint32) error {
	s.n = uint32(len(universe))
	s.count = 0
	s.inner = nil
	s.buckets = nil

	if s.n == 0 {
		return nil
	}

	s.hash = hashParams{}
	s.hash.setSize(s.n)

	for attempt := 0; ; attempt++ {
		if attempt >= s.maxRetries {
			return ErrConstructionExhausted
		}
		s.hash.generateCoefficients(s.src)

		buckets := make([][]uint32, s.n)
		for _, key := range universe {
			slot := s.hash.eval(key)
			buckets[slot] = append(buckets[slot], key)
		}

		if err := checkBucketsForDuplicates(buckets); err != nil {
			return err
		}

		var sumSquares uint64
		for _, b := range buckets {
			sumSquares += square(uint32(len(b)))
		}

		if sumSquares <= 3*uint64(s.n) {
			s.buckets = buckets
			break
		}
	}

	inner := make([]*innerSet, s.n)
	for i, b := range s.buckets {
		is, err := newInnerSet(b, s.src, s.maxRetries)
		if err != nil {
			return err
		}
		inner[i] = is
	}
	s.inner = inner
	s.buckets = nil // only needed transiently during construction
	return nil
}

func square(x uint32) uint64 {
	return uint64(x) * uint64(x)
}

// checkBucketsForDuplicates reproduces the reference implementation's
// bucket-local duplicate scan: consecutive-pair comparison, plus a
// first-vs-last comparison for buckets of exactly size 3 (which, with
// the consecutive-pair scan, covers all three pairs in a 3-element
// bucket). This is a fast pre-check only — equal keys always hash to
// the same outer *and* inner slot under any coefficients, so InnerSet
// construction independently and completely detects any duplicate this
// pre-check misses (e.g. non-adjacent duplicates in buckets of size 4
// or more); see DESIGN.md.
func checkBucketsForDuplicates(buckets [][]uint32) error {
	for _, b := range buckets {
		for i := 1; i < len(b); i++ {
			if b[i-1] == b[i] {
				return duplicateKey(b[i])
			}
		}
		if len(b) == 3 {
			if b[0] == b[2] {
				return duplicateKey(b[0])
			}
		}
	}
	return nil
}

// Insert adds x to the set. Fails with *NotInUniverseError if x is not
// in the universe the set was constructed from.
func (s *PerfectHashSet) Insert(x uint32) error {
	if s.n == 0 {
		return notInUniverse(x)
	}
	slot := s.hash.eval(x)
	changed, err := s.inner[slot].insert(x)
	if err != nil {
		return err
	}
	if changed {
		s.count++
	}
	return nil
}

// Erase removes x from the set. Fails with *NotInUniverseError if x is
// not in the universe the set was constructed from.
func (s *PerfectHashSet) Erase(x uint32) error {
	if s.n == 0 {
		return notInUniverse(x)
	}
	slot := s.hash.eval(x)
	changed, err := s.inner[slot].erase(x)
	if err != nil {
		return err
	}
	if changed {
		s.count--
	}
	return nil
}

// Find reports whether x is currently present. Fails with
// *NotInUniverseError if x is not in the universe.
func (s *PerfectHashSet) Find(x uint32) (bool, error) {
	if s.n == 0 {
		return false, notInUniverse(x)
	}
	slot := s.hash.eval(x)
	return s.inner[slot].find(x)
}

// IsPossible reports whether x belongs to the initial universe. It never
// fails.
func (s *PerfectHashSet) IsPossible(x uint32) bool {
	if s.n == 0 {
		return false
	}
	slot := s.hash.eval(x)
	return s.inner[slot].isPossible(x)
}

// Size returns the current cardinality (number of present keys).
func (s *PerfectHashSet) Size() uint32 {
	return s.count
}
