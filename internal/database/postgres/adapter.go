package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/petseed/internal/database/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

type Adapter struct {
	*common.SQLAdapter
}

var dialect = common.Dialect{
	Provider:    "postgresql",
	Placeholder: squirrel.Dollar,
	MigrationsDDL: `CREATE TABLE IF NOT EXISTS ` + common.MigrationsTable + ` (
		id VARCHAR(255) PRIMARY KEY,
		checksum VARCHAR(64) NOT NULL,
		migration_name VARCHAR(255) NOT NULL,
		started_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		finished_at TIMESTAMP WITH TIME ZONE
	)`,
	ListTablesQuery: `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name`,
}

func New() *Adapter {
	return &Adapter{SQLAdapter: common.NewSQLAdapter(dialect)}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	connConfig, err := pgx.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	connConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	db := stdlib.OpenDB(*connConfig)
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	p.Attach(db)
	return nil
}

// TRUNCATE is transactional in PostgreSQL, so the identity reset rolls back
// with the rest of a failed seed.
func (p *Adapter) ClearTableStatements(tableName string) []string {
	return []string{
		fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", pgx.Identifier{tableName}.Sanitize()),
	}
}
