package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/petseed/internal/database/common"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	*common.SQLAdapter
	path string
}

var dialect = common.Dialect{
	Provider:    "sqlite",
	Placeholder: squirrel.Question,
	MigrationsDDL: `CREATE TABLE IF NOT EXISTS ` + common.MigrationsTable + ` (
		id TEXT PRIMARY KEY,
		checksum TEXT NOT NULL,
		migration_name TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP
	)`,
	ListTablesQuery: `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`,
}

func New() *Adapter {
	return &Adapter{SQLAdapter: common.NewSQLAdapter(dialect)}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dsn := ToDSN(url)
	s.path = dsn
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.Attach(db)
	return nil
}

// Path is the database file without connection parameters.
func (s *Adapter) Path() string {
	return s.path
}

// ToDSN strips the sqlite:// scheme and adds WAL and busy-timeout defaults
// unless the caller passed parameters of their own.
func ToDSN(url string) string {
	dsn := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite3://"), "sqlite://")
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}
	return dsn
}

// Without AUTOINCREMENT an INTEGER PRIMARY KEY is the rowid, which starts
// again from 1 once the table is empty.
func (s *Adapter) ClearTableStatements(tableName string) []string {
	return []string{fmt.Sprintf(`DELETE FROM "%s"`, tableName)}
}
