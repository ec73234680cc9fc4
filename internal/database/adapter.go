package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/petseed/internal/database/common"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	Provider() string

	DB() *sql.DB
	Builder() squirrel.StatementBuilderType
	BeginTx(ctx context.Context) (*sql.Tx, error)

	ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*common.QueryResult, error)
	ExecuteStatements(ctx context.Context, script string) error

	// Schema inspection
	GetAllTableNames(ctx context.Context) ([]string, error)
	CheckTableExists(ctx context.Context, tableName string) (bool, error)

	// Migration bookkeeping
	CreateMigrationsTable(ctx context.Context) error
	GetAppliedMigrations(ctx context.Context) (map[string]common.AppliedMigration, error)
	ExecuteAndRecordMigration(ctx context.Context, migrationID, name, checksum, migrationSQL string) error
	ExecuteAndRemoveMigration(ctx context.Context, migrationID, downSQL string) error

	// ClearTableStatements empties a table and restarts its identity where
	// the provider can do so without leaving the current transaction.
	ClearTableStatements(tableName string) []string
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
