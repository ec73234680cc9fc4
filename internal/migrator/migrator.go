package migrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Rana718/petseed/internal/database"
	"github.com/Rana718/petseed/internal/pets"
	"github.com/Rana718/petseed/template"
	"github.com/fatih/color"
)

const (
	upMarker   = "-- migrate:up"
	downMarker = "-- migrate:down"
)

var (
	ErrUnknownMigration  = errors.New("unknown migration")
	ErrNothingToRollback = errors.New("no applied migrations to roll back")
)

var (
	nonWordRegex     = regexp.MustCompile(`[^a-z0-9]+`)
	createPetsRegex  = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?["` + "`" + `]?` + pets.TableName + `\b`)
	migrationIDRegex = regexp.MustCompile(`^\d{14}_`)
)

// Migration is one file in the migrations directory.
type Migration struct {
	ID       string
	Name     string
	Up       string
	Down     string
	Checksum string
	FilePath string
}

type Migrator struct {
	adapter        database.DatabaseAdapter
	migrationsPath string
	tmpl           *template.ProjectTemplate
	now            func() time.Time
}

func NewMigrator(adapter database.DatabaseAdapter, migrationsPath string) *Migrator {
	provider := ""
	if adapter != nil {
		provider = adapter.Provider()
	}
	return &Migrator{
		adapter:        adapter,
		migrationsPath: migrationsPath,
		tmpl:           template.NewProjectTemplate(template.ValidateDatabaseType(provider)),
		now:            time.Now,
	}
}

// GenerateMigration writes a new migration file. With autogenerate set the
// pets table is scripted when neither the database nor an earlier migration
// creates it; otherwise the file is a blank template.
func (m *Migrator) GenerateMigration(ctx context.Context, name string, autogenerate bool) (*Migration, error) {
	if err := os.MkdirAll(m.migrationsPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	up, down := m.tmpl.BlankMigration(name)
	if autogenerate {
		covered, err := m.modelCovered(ctx)
		if err != nil {
			return nil, err
		}
		if covered {
			color.Yellow("No changes in schema detected")
		} else {
			color.Cyan("Detected added table '%s'", pets.TableName)
			up, down = m.tmpl.PetsTableUp(), m.tmpl.PetsTableDown()
		}
	}

	cleanName := strings.Trim(nonWordRegex.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if cleanName == "" {
		cleanName = "migration"
	}

	ts := m.now()
	var id, path string
	for {
		id = fmt.Sprintf("%s_%s", ts.Format("20060102150405"), cleanName)
		path = filepath.Join(m.migrationsPath, id+".sql")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		ts = ts.Add(time.Second)
	}

	content := fmt.Sprintf("-- Migration: %s\n-- Created at: %s\n\n%s\n%s\n%s\n%s",
		name, ts.Format("2006-01-02 15:04:05"), upMarker, up, downMarker, down)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to create migration file: %w", err)
	}

	color.Green("Generated migration: %s", path)
	return &Migration{
		ID:       id,
		Name:     name,
		Up:       strings.TrimSpace(up),
		Down:     strings.TrimSpace(down),
		Checksum: checksum(content),
		FilePath: path,
	}, nil
}

func (m *Migrator) modelCovered(ctx context.Context) (bool, error) {
	local, err := m.LoadMigrations()
	if err != nil {
		return false, err
	}
	for _, mig := range local {
		if createPetsRegex.MatchString(mig.Up) {
			return true, nil
		}
	}

	if m.adapter == nil {
		return false, nil
	}
	exists, err := m.adapter.CheckTableExists(ctx, pets.TableName)
	if err != nil {
		return false, fmt.Errorf("failed to inspect database: %w", err)
	}
	return exists, nil
}

// LoadMigrations reads every *.sql file in the migrations directory, sorted
// by ID.
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	entries, err := os.ReadDir(m.migrationsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		path := filepath.Join(m.migrationsPath, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		id := strings.TrimSuffix(entry.Name(), ".sql")
		up, down := ParseMigration(string(data))
		migrations = append(migrations, Migration{
			ID:       id,
			Name:     displayName(id),
			Up:       up,
			Down:     down,
			Checksum: checksum(string(data)),
			FilePath: path,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})
	return migrations, nil
}

// ParseMigration splits file content into its up and down sections. A file
// without markers is treated as up-only.
func ParseMigration(content string) (up, down string) {
	upIdx := strings.Index(content, upMarker)
	downIdx := strings.Index(content, downMarker)

	switch {
	case upIdx < 0 && downIdx < 0:
		return strings.TrimSpace(content), ""
	case upIdx < 0:
		return strings.TrimSpace(content[:downIdx]), strings.TrimSpace(content[downIdx+len(downMarker):])
	case downIdx < 0:
		return strings.TrimSpace(content[upIdx+len(upMarker):]), ""
	case downIdx > upIdx:
		return strings.TrimSpace(content[upIdx+len(upMarker) : downIdx]), strings.TrimSpace(content[downIdx+len(downMarker):])
	default:
		return strings.TrimSpace(content[upIdx+len(upMarker):]), strings.TrimSpace(content[downIdx+len(downMarker) : upIdx])
	}
}

func displayName(id string) string {
	return strings.ReplaceAll(migrationIDRegex.ReplaceAllString(id, ""), "_", " ")
}

func checksum(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}
