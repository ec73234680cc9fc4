package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/petseed/internal/database"
	"github.com/Rana718/petseed/internal/pets"
	"github.com/fatih/color"
)

const defaultCount = 10

var ErrCountMismatch = errors.New("row count after seeding does not match the seed list")

type Seeder struct {
	adapter   database.DatabaseAdapter
	generator *DataGenerator
}

func NewSeeder(adapter database.DatabaseAdapter, generator *DataGenerator) *Seeder {
	if generator == nil {
		generator = NewDataGenerator(0)
	}
	return &Seeder{adapter: adapter, generator: generator}
}

// Build returns the pets a seed run would write: the fixture if one is set,
// then the fixed set, otherwise generated pets.
func (s *Seeder) Build(cfg SeedConfig) ([]pets.Pet, error) {
	switch {
	case cfg.Fixture != "":
		return LoadFixture(cfg.Fixture)
	case cfg.Fixed:
		return FixedPets(), nil
	}

	count := cfg.Count
	if count <= 0 {
		count = defaultCount
	}
	return s.generator.Pets(count, cfg.Species), nil
}

// Seed replaces the contents of the pets table with the built list. The
// clear, the inserts and the final count check share one transaction, so a
// failure leaves the previous rows untouched.
func (s *Seeder) Seed(ctx context.Context, cfg SeedConfig) (*Result, error) {
	list, err := s.Build(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DryRun {
		color.Yellow("Dry run: %d pet(s) would be written", len(list))
		return &Result{Pets: list}, nil
	}

	color.Cyan("Seeding %d pet(s)...", len(list))

	tx, err := s.adapter.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := pets.ForAdapter(s.adapter).WithTx(tx)

	deleted, err := repo.DeleteAll(ctx)
	if err != nil {
		return nil, err
	}

	inserted, err := repo.InsertAll(ctx, list, cfg.Batch)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pets: %w", err)
	}

	total, err := repo.Count(ctx, pets.Query{})
	if err != nil {
		return nil, err
	}
	if total != int64(len(list)) {
		return nil, fmt.Errorf("%w: expected %d, found %d", ErrCountMismatch, len(list), total)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	color.Green("Removed %d and inserted %d pet(s)", deleted, inserted)
	return &Result{Deleted: deleted, Inserted: inserted, Pets: list}, nil
}
