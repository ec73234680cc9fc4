package migrator

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/fatih/color"
)

type StatusItem struct {
	ID        string
	Name      string
	Applied   bool
	AppliedAt *time.Time
	Missing   bool
}

// Upgrade applies pending migrations in ID order. An empty target or "head"
// applies all of them; otherwise it stops after the named migration.
func (m *Migrator) Upgrade(ctx context.Context, target string) ([]string, error) {
	if err := m.adapter.CreateMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := m.adapter.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	if target != "" && target != "head" {
		found := false
		for _, mig := range migrations {
			if mig.ID == target {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMigration, target)
		}
	}

	var pending []Migration
	for _, mig := range migrations {
		if rec, ok := applied[mig.ID]; ok {
			if rec.Checksum != "" && rec.Checksum != mig.Checksum {
				log.Printf("Warning: migration %s was modified after it was applied", mig.ID)
			}
			continue
		}
		if target != "" && target != "head" && mig.ID > target {
			break
		}
		pending = append(pending, mig)
	}

	if len(pending) == 0 {
		color.Green("No pending migrations")
		return nil, nil
	}

	color.Cyan("Found %d pending migration(s)", len(pending))

	var done []string
	for _, mig := range pending {
		color.Cyan("  Applying %s", mig.ID)
		if err := m.adapter.ExecuteAndRecordMigration(ctx, mig.ID, mig.Name, mig.Checksum, mig.Up); err != nil {
			return done, fmt.Errorf("failed to apply migration %s: %w", mig.ID, err)
		}
		done = append(done, mig.ID)
	}

	color.Green("All migrations applied successfully")
	return done, nil
}

// Downgrade rolls back the most recent steps applied migrations.
func (m *Migrator) Downgrade(ctx context.Context, steps int) ([]string, error) {
	if steps <= 0 {
		steps = 1
	}

	if err := m.adapter.CreateMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.adapter.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	if len(applied) == 0 {
		return nil, ErrNothingToRollback
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	local := make(map[string]Migration, len(migrations))
	for _, mig := range migrations {
		local[mig.ID] = mig
	}

	ids := make([]string, 0, len(applied))
	for id := range applied {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	if steps < len(ids) {
		ids = ids[:steps]
	}

	var done []string
	for _, id := range ids {
		mig, ok := local[id]
		if !ok {
			return done, fmt.Errorf("%w: %s is applied but its file is missing", ErrUnknownMigration, id)
		}

		color.Yellow("  Rolling back %s", id)
		if err := m.adapter.ExecuteAndRemoveMigration(ctx, id, mig.Down); err != nil {
			return done, fmt.Errorf("failed to roll back migration %s: %w", id, err)
		}
		done = append(done, id)
	}

	color.Green("Rolled back %d migration(s)", len(done))
	return done, nil
}

// Status lists local migrations plus any applied ones whose file is gone.
func (m *Migrator) Status(ctx context.Context) ([]StatusItem, error) {
	if err := m.adapter.CreateMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := m.adapter.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	seen := make(map[string]bool, len(migrations))
	items := make([]StatusItem, 0, len(migrations))
	for _, mig := range migrations {
		seen[mig.ID] = true
		item := StatusItem{ID: mig.ID, Name: mig.Name}
		if rec, ok := applied[mig.ID]; ok {
			item.Applied = true
			item.AppliedAt = rec.AppliedAt
		}
		items = append(items, item)
	}

	for id, rec := range applied {
		if !seen[id] {
			items = append(items, StatusItem{ID: id, Name: displayName(id), Applied: true, AppliedAt: rec.AppliedAt, Missing: true})
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func PrintStatus(w io.Writer, items []StatusItem) {
	applied := 0
	for _, item := range items {
		if item.Applied {
			applied++
		}
	}

	fmt.Fprintf(w, "Migration Status\n")
	fmt.Fprintf(w, "================\n\n")
	fmt.Fprintf(w, "Total migrations: %d\n", len(items))
	fmt.Fprintf(w, "Applied: %d\n", applied)
	fmt.Fprintf(w, "Pending: %d\n\n", len(items)-applied)

	if len(items) == 0 {
		fmt.Fprintln(w, "No migrations found")
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, item := range items {
		status := yellow("Pending")
		timestamp := ""
		if item.Applied {
			status = green("Applied")
			if item.AppliedAt != nil {
				timestamp = fmt.Sprintf(" (applied: %s)", item.AppliedAt.Format("2006-01-02 15:04:05"))
			}
		}
		if item.Missing {
			status = red("Missing file")
		}
		fmt.Fprintf(w, "%-50s %s%s\n", item.ID, status, timestamp)
	}
}
