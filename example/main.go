package main

import (
	"fmt"
	"log"

	"github.com/theflywheel/fksset"
)

func main() {
	universe := make([]uint32, 0, 10)
	for i := uint32(0); i < 10; i++ {
		universe = append(universe, i*100)
	}

	set, err := fksset.NewPerfectHashSet(universe)
	if err != nil {
		log.Fatalf("failed to build perfect hash set: %v", err)
	}

	fmt.Printf("Perfect hash set built over %d keys\n", len(universe))

	for i := uint32(0); i < 10; i += 2 {
		key := i * 100
		if err := set.Insert(key); err != nil {
			log.Fatalf("failed to insert key %d: %v", key, err)
		}
	}

	fmt.Println("Inserted every other key")

	for i := uint32(0); i < 15; i += 3 {
		key := i * 100
		found, err := set.Find(key)
		switch {
		case err != nil:
			fmt.Printf("Key %d is not in the universe\n", key)
		case found:
			fmt.Printf("Key %d => present\n", key)
		default:
			fmt.Printf("Key %d => absent\n", key)
		}
	}

	// Erase then re-find a key.
	key := uint32(200)
	if err := set.Erase(key); err != nil {
		log.Fatalf("failed to erase key %d: %v", key, err)
	}
	found, _ := set.Find(key)
	fmt.Printf("Key %d present after erase: %v\n", key, found)

	fmt.Printf("Set size: %d\n", set.Size())
	fmt.Println("Example completed successfully")
}
