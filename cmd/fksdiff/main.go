// Command fksdiff is the differential test driver described in the
// fksset package's specification (§6): it builds a PerfectHashSet and a
// ReferenceSet from the same generated universe, replays the same
// operation sequence against both, and reports the first divergence per
// iteration. It is an external collaborator of the core package, not
// part of its tested contract — see SPEC_FULL.md §12.3.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"

	"github.com/theflywheel/fksset"
	"github.com/theflywheel/fksset/internal/workload"
)

type result struct {
	value   bool
	errKind string // "" | "duplicate" | "notInUniverse"
}

func classify(err error) string {
	switch err.(type) {
	case nil:
		return ""
	case *fksset.DuplicateKeyError:
		return "duplicate"
	case *fksset.NotInUniverseError:
		return "notInUniverse"
	default:
		return "other"
	}
}

func main() {
	var (
		typeOfTest          string
		numberOfTests       int
		maxNumberOfElements int
		maxNumberOfQueries  int
		timeMeasure         bool
		seed                int64
	)

	flag.StringVar(&typeOfTest, "typeOfTest", "random", "random | permutation | duplicate | adversarial")
	flag.IntVar(&numberOfTests, "numberOfTests", 100, "number of iterations to run")
	flag.IntVar(&maxNumberOfElements, "maxNumberOfElements", 200, "max universe size per iteration")
	flag.IntVar(&maxNumberOfQueries, "maxNumberOfQueries", 500, "max operations replayed per iteration")
	flag.BoolVar(&timeMeasure, "timeMeasure", false, "print wall-clock timing to stderr")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "PRNG seed for workload generation")
	flag.Parse()

	// Bare arguments are accepted too: "name=value", or plain values in
	// the order typeOfTest numberOfTests maxNumberOfElements
	// maxNumberOfQueries timeMeasure.
	positional := []string{"typeOfTest", "numberOfTests", "maxNumberOfElements", "maxNumberOfQueries", "timeMeasure"}
	for i, arg := range flag.Args() {
		name, value, ok := strings.Cut(arg, "=")
		if !ok && i < len(positional) {
			name, value = positional[i], arg
		}
		if err := flag.Set(name, value); err != nil {
			fmt.Fprintf(os.Stderr, "fksdiff: argument %q: %v\n", arg, err)
			os.Exit(2)
		}
	}

	rng := rand.New(rand.NewSource(seed))

	for test := 0; test < numberOfTests; test++ {
		runIteration(rng, test, typeOfTest, maxNumberOfElements, maxNumberOfQueries, timeMeasure)
	}
	fmt.Println()

	os.Exit(0)
}

func runIteration(rng *rand.Rand, test int, typeOfTest string, maxElements, maxQueries int, timeMeasure bool) {
	universe := generateUniverse(rng, typeOfTest, maxElements)

	start := time.Now()
	perfect, perfectErr := fksset.NewPerfectHashSet(universe)
	reference, referenceErr := fksset.NewReferenceSet(universe)
	constructTime := time.Since(start)

	if classify(perfectErr) != classify(referenceErr) {
		fmt.Printf("Different Exception result - test %d\n", test)
		return
	}
	if perfectErr != nil {
		// Both failed identically (e.g. DuplicateKey); nothing further
		// to replay this iteration.
		fmt.Print("+")
		return
	}

	ops := workload.Operations(rng, universe, maxQueries, true)

	queryStart := time.Now()
	for _, op := range ops {
		if !replay(perfect, reference, op, test) {
			return
		}
	}
	queryTime := time.Since(queryStart)

	if timeMeasure {
		fmt.Fprintf(os.Stderr, "test %d: construct=%s queries=%s\n", test, constructTime, queryTime)
	}

	fmt.Print("+")
}

func generateUniverse(rng *rand.Rand, typeOfTest string, maxElements int) []uint32 {
	switch typeOfTest {
	case "permutation":
		return workload.Permutation(rng, rng.Intn(maxElements+1))
	case "duplicate":
		return workload.Duplicate(rng, maxElements)
	case "adversarial":
		return workload.Adversarial(rng, maxElements)
	default:
		return workload.Random(rng, maxElements)
	}
}

// replay applies one operation to both sets and reports whether they
// still agree. On the first disagreement it prints the spec's literal
// diagnostic and returns false so the caller moves to the next
// iteration.
func replay(perfect, reference fksset.Set, op workload.Action, test int) bool {
	switch op.Type {
	case workload.Insert:
		pErr := perfect.Insert(op.Key)
		rErr := reference.Insert(op.Key)
		return compareErr(pErr, rErr, test)
	case workload.Erase:
		pErr := perfect.Erase(op.Key)
		rErr := reference.Erase(op.Key)
		return compareErr(pErr, rErr, test)
	case workload.Find:
		pVal, pErr := perfect.Find(op.Key)
		rVal, rErr := reference.Find(op.Key)
		if !compareErr(pErr, rErr, test) {
			return false
		}
		if pErr == nil && !cmp.Equal(pVal, rVal) {
			fmt.Printf("Different Answers - test %d\n", test)
			return false
		}
		return true
	case workload.IsPossible:
		if !cmp.Equal(perfect.IsPossible(op.Key), reference.IsPossible(op.Key)) {
			fmt.Printf("Different Answers - test %d\n", test)
			return false
		}
		return true
	case workload.Size:
		if !cmp.Equal(perfect.Size(), reference.Size()) {
			fmt.Printf("Different Answers - test %d\n", test)
			return false
		}
		return true
	default:
		return true
	}
}

func compareErr(pErr, rErr error, test int) bool {
	if classify(pErr) != classify(rErr) {
		fmt.Printf("Different Exception result - test %d\n", test)
		return false
	}
	return true
}
