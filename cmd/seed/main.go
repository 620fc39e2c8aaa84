// Command seed resets the local state database. It removes any existing
// database files and re-creates an empty store, which is handy after a
// schema change or when a corrupt session blocks the main binary.
package main

import (
	"fmt"
	"log"
	"os"

	"smartlib/library"
)

func main() {
	cfg := library.LoadConfig()

	for _, path := range []string{cfg.StateDB, cfg.StateDB + "-shm", cfg.StateDB + "-wal"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Fatalf("remove %s: %v", path, err)
		}
	}

	store, err := library.OpenStore(cfg.StateDB)
	if err != nil {
		log.Fatalf("recreate state database: %v", err)
	}
	defer store.Close()

	fmt.Printf("State database reset at %s\n", cfg.StateDB)
}
