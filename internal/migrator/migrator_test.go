package migrator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/petseed/internal/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMigrator(t *testing.T) (*Migrator, *sqlite.Adapter) {
	t.Helper()

	dir := t.TempDir()
	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(context.Background(), "sqlite://"+filepath.Join(dir, "app.db")))
	t.Cleanup(func() { adapter.Close() })

	m := NewMigrator(adapter, filepath.Join(dir, "migrations"))
	clock := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return m, adapter
}

func TestParseMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantUp   string
		wantDown string
	}{
		{
			name:     "both sections",
			content:  "-- header\n-- migrate:up\nCREATE TABLE a (id INT);\n-- migrate:down\nDROP TABLE a;\n",
			wantUp:   "CREATE TABLE a (id INT);",
			wantDown: "DROP TABLE a;",
		},
		{
			name:    "no markers",
			content: "CREATE TABLE a (id INT);\n",
			wantUp:  "CREATE TABLE a (id INT);",
		},
		{
			name:    "up only",
			content: "-- migrate:up\nSELECT 1;",
			wantUp:  "SELECT 1;",
		},
		{
			name:     "down first",
			content:  "-- migrate:down\nDROP TABLE a;\n-- migrate:up\nCREATE TABLE a (id INT);",
			wantUp:   "CREATE TABLE a (id INT);",
			wantDown: "DROP TABLE a;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := ParseMigration(tt.content)
			assert.Equal(t, tt.wantUp, up)
			assert.Equal(t, tt.wantDown, down)
		})
	}
}

func TestGenerateMigrationAutogenerate(t *testing.T) {
	m, _ := newTestMigrator(t)
	ctx := context.Background()

	first, err := m.GenerateMigration(ctx, "Create pets table", true)
	require.NoError(t, err)
	assert.Equal(t, "20260301093100_create_pets_table", first.ID)
	assert.Contains(t, first.Up, "CREATE TABLE pets")
	assert.Contains(t, first.Down, "DROP TABLE IF EXISTS pets")

	data, err := os.ReadFile(first.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), upMarker)
	assert.Contains(t, string(data), downMarker)

	// An earlier file already creates pets, so nothing new is detected.
	second, err := m.GenerateMigration(ctx, "again", true)
	require.NoError(t, err)
	assert.NotContains(t, second.Up, "CREATE TABLE")
	assert.True(t, strings.HasSuffix(second.ID, "_again"))
}

func TestGenerateMigrationSkipsExistingTable(t *testing.T) {
	m, adapter := newTestMigrator(t)
	ctx := context.Background()

	require.NoError(t, adapter.ExecuteStatements(ctx, m.tmpl.PetsTableUp()))

	mig, err := m.GenerateMigration(ctx, "initial", true)
	require.NoError(t, err)
	assert.NotContains(t, mig.Up, "CREATE TABLE")
}

func TestGenerateMigrationTimestampCollision(t *testing.T) {
	m, _ := newTestMigrator(t)
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	ctx := context.Background()

	a, err := m.GenerateMigration(ctx, "same", false)
	require.NoError(t, err)
	b, err := m.GenerateMigration(ctx, "same", false)
	require.NoError(t, err)

	assert.Equal(t, "20260301093000_same", a.ID)
	assert.Equal(t, "20260301093001_same", b.ID)
}

func TestGenerateMigrationSanitizesName(t *testing.T) {
	m, _ := newTestMigrator(t)

	mig, err := m.GenerateMigration(context.Background(), "  Add Pets!! ", false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(mig.ID, "_add_pets"))

	blank, err := m.GenerateMigration(context.Background(), "???", false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(blank.ID, "_migration"))
}

func TestUpgradeStatusDowngrade(t *testing.T) {
	m, adapter := newTestMigrator(t)
	ctx := context.Background()

	first, err := m.GenerateMigration(ctx, "create pets", true)
	require.NoError(t, err)
	second, err := m.GenerateMigration(ctx, "noop", false)
	require.NoError(t, err)

	items, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].Applied)
	assert.False(t, items[1].Applied)

	applied, err := m.Upgrade(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID}, applied)

	exists, err := adapter.CheckTableExists(ctx, "pets")
	require.NoError(t, err)
	assert.True(t, exists)

	applied, err = m.Upgrade(ctx, "head")
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, applied)

	applied, err = m.Upgrade(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, applied)

	items, err = m.Status(ctx)
	require.NoError(t, err)
	for _, item := range items {
		assert.True(t, item.Applied, item.ID)
		assert.NotNil(t, item.AppliedAt, item.ID)
	}

	var buf bytes.Buffer
	PrintStatus(&buf, items)
	assert.Contains(t, buf.String(), "Applied: 2")
	assert.Contains(t, buf.String(), first.ID)

	rolled, err := m.Downgrade(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, rolled)

	exists, err = adapter.CheckTableExists(ctx, "pets")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = m.Downgrade(ctx, 1)
	assert.ErrorIs(t, err, ErrNothingToRollback)
}

func TestUpgradeUnknownTarget(t *testing.T) {
	m, _ := newTestMigrator(t)
	ctx := context.Background()

	_, err := m.GenerateMigration(ctx, "create pets", true)
	require.NoError(t, err)

	_, err = m.Upgrade(ctx, "20990101000000_nope")
	assert.ErrorIs(t, err, ErrUnknownMigration)

	items, err := m.Status(ctx)
	require.NoError(t, err)
	assert.False(t, items[0].Applied)
}

func TestUpgradeFailureLeavesMigrationPending(t *testing.T) {
	m, _ := newTestMigrator(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(m.migrationsPath, 0755))
	path := filepath.Join(m.migrationsPath, "20260101000000_broken.sql")
	require.NoError(t, os.WriteFile(path, []byte("-- migrate:up\nCREATE TABLE ok (id INTEGER);\nNOT VALID SQL;\n-- migrate:down\n"), 0644))

	_, err := m.Upgrade(ctx, "")
	require.Error(t, err)

	items, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Applied)
}

func TestStatusReportsMissingFile(t *testing.T) {
	m, _ := newTestMigrator(t)
	ctx := context.Background()

	mig, err := m.GenerateMigration(ctx, "create pets", true)
	require.NoError(t, err)
	_, err = m.Upgrade(ctx, "")
	require.NoError(t, err)
	require.NoError(t, os.Remove(mig.FilePath))

	items, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Missing)

	_, err = m.Downgrade(ctx, 1)
	assert.ErrorIs(t, err, ErrUnknownMigration)
}
