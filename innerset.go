package fksset

// innerSet is the collision-free inner hash table for one outer bucket.
// Zero is a valid key, so whether a slot holds a recorded key is tracked
// with a separate bool array (occupied) rather than a sentinel key value.
type innerSet struct {
	hash     hashParams
	slotKey  []uint32
	occupied []bool // true once slotKey[i] holds a recorded (bucket) key
	present  []bool // mutated by insert/erase; membership of present keys

	src        coeffSource
	maxRetries int
}

// newInnerSet constructs the collision-free inner hash table for one
// outer bucket. keys are expected to be pairwise distinct; the caller's
// bucket pre-check catches most duplicates, and init reports any repeated
// key it meets at its own recorded slot as *DuplicateKeyError.
func newInnerSet(keys []uint32, src coeffSource, maxRetries int) (*innerSet, error) {
	s := &innerSet{src: src, maxRetries: maxRetries}
	if err := s.init(keys); err != nil {
		return nil, err
	}
	return s, nil
}

// init sets m_inner = k^2 for k = len(keys), then resamples hash
// coefficients until the hash is injective over keys. An empty bucket
// (k == 0) is the degenerate case: no slots, no retries needed.
func (s *innerSet) init(keys []uint32) error {
	k := len(keys)
	m := uint32(k) * uint32(k)

	s.hash = hashParams{}
	s.hash.setSize(m)
	s.slotKey = make([]uint32, m)
	s.occupied = make([]bool, m)
	s.present = make([]bool, m)

	if k == 0 {
		return nil
	}

	for attempt := 0; ; attempt++ {
		if attempt >= s.maxRetries {
			return ErrConstructionExhausted
		}
		s.hash.generateCoefficients(s.src)

		for i := range s.occupied {
			s.occupied[i] = false
		}
		collided := false
		for _, key := range keys {
			slot := s.hash.eval(key)
			if s.occupied[slot] {
				if s.slotKey[slot] == key {
					return duplicateKey(key)
				}
				collided = true
				break
			}
			s.occupied[slot] = true
			s.slotKey[slot] = key
		}
		if !collided {
			break
		}
	}

	for i := range s.present {
		s.present[i] = false
	}
	return nil
}

// isPossible reports whether x is recorded at its hashed slot, i.e.
// whether x belongs to this bucket's assigned key set.
func (s *innerSet) isPossible(x uint32) bool {
	if len(s.slotKey) == 0 {
		return false
	}
	slot := s.hash.eval(x)
	return s.occupied[slot] && s.slotKey[slot] == x
}

// insert sets the presence bit for x. Returns whether the bit changed
// (false -> true). Fails with NotInUniverseError if x is foreign to this
// bucket.
func (s *innerSet) insert(x uint32) (bool, error) {
	if !s.isPossible(x) {
		return false, notInUniverse(x)
	}
	slot := s.hash.eval(x)
	changed := !s.present[slot]
	s.present[slot] = true
	return changed, nil
}

// erase clears the presence bit for x. Returns whether the bit changed
// (true -> false). Fails with NotInUniverseError if x is foreign to this
// bucket.
func (s *innerSet) erase(x uint32) (bool, error) {
	if !s.isPossible(x) {
		return false, notInUniverse(x)
	}
	slot := s.hash.eval(x)
	changed := s.present[slot]
	s.present[slot] = false
	return changed, nil
}

// find reports the presence bit for x. Fails with NotInUniverseError if
// x is foreign to this bucket.
func (s *innerSet) find(x uint32) (bool, error) {
	if !s.isPossible(x) {
		return false, notInUniverse(x)
	}
	slot := s.hash.eval(x)
	return s.present[slot], nil
}
