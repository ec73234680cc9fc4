package seeder

import "github.com/Rana718/petseed/internal/pets"

type SeedConfig struct {
	Count   int      // Generated pets when no fixture or fixed set is used
	Species []string // Species to draw from
	Fixed   bool     // Use FixedPets instead of random data
	Fixture string   // JSON or YAML file with the pets to load
	Batch   int      // Rows per INSERT
	DryRun  bool     // Build and print the list without touching the database
}

type Result struct {
	Deleted  int64
	Inserted int64
	Pets     []pets.Pet
}
