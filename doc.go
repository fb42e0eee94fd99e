/*
Package fksset provides a static-key perfect hash set over 32-bit
unsigned integers, built with the FKS (Fredman-Komlos-Szemerészi)
two-level scheme.

Given a fixed universe of distinct keys supplied at construction, the
set answers membership, insertion, removal, cardinality, and
universe-membership queries in worst-case constant time, using space
linear in the universe size.

Basic usage:

	import "github.com/theflywheel/fksset"

	set, err := fksset.NewPerfectHashSet([]uint32{10, 20, 30, 40})
	if err != nil {
		log.Fatal(err)
	}

	set.IsPossible(20) // true -- 20 is in the universe
	set.IsPossible(99) // false -- 99 was never in the universe

	if err := set.Insert(20); err != nil {
		log.Fatal(err)
	}
	found, _ := set.Find(20) // true

	if err := set.Insert(99); err != nil {
		// *fksset.NotInUniverseError: 99 was never part of the universe
	}

Features:

  - O(1) worst-case insert/erase/find/is_possible/size, independent of
    universe size, after O(n) expected-time construction
  - Space linear in the universe size (sum of squared bucket sizes is
    bounded by 3n after construction)
  - A ReferenceSet oracle with the same Set contract, for differential
    testing against PerfectHashSet
  - A seeded, replayable coefficient Source so a construction trace can
    be reproduced deterministically

Implementation Details:

The set hashes the universe into n outer buckets using a 2-universal
hash family, partitions keys by bucket, then builds one collision-free
inner hash table per bucket sized to the square of its key count. Both
levels use a resampling retry loop: draw coefficients, check a
predicate (outer: sum of squared bucket sizes <= 3n; inner: no
collisions), and retry on failure. Because the hash family is
2-universal, both loops terminate in O(1) expected iterations.

Resizing the universe after construction, inserting keys outside the
initial universe, and thread-safe concurrent mutation are explicitly
out of scope; see the package's SPEC_FULL.md for the full contract.
*/
package fksset
