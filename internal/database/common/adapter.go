package common

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// MigrationsTable records which migration files have been applied.
const MigrationsTable = "_petseed_migrations"

// Dialect carries the provider specific SQL the shared adapter needs.
type Dialect struct {
	Provider        string
	Placeholder     squirrel.PlaceholderFormat
	MigrationsDDL   string
	ListTablesQuery string
}

// AppliedMigration is one row of the migrations table.
type AppliedMigration struct {
	ID        string
	Checksum  string
	AppliedAt *time.Time
}

// SQLAdapter implements everything that is identical across database/sql
// providers. Provider packages embed it and add connection handling.
type SQLAdapter struct {
	db      *sql.DB
	qb      squirrel.StatementBuilderType
	dialect Dialect
}

func NewSQLAdapter(dialect Dialect) *SQLAdapter {
	return &SQLAdapter{
		qb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
		dialect: dialect,
	}
}

// Attach takes ownership of an open handle.
func (s *SQLAdapter) Attach(db *sql.DB) {
	s.db = db
}

func (s *SQLAdapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLAdapter) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database is not connected")
	}
	return s.db.PingContext(ctx)
}

func (s *SQLAdapter) Provider() string {
	return s.dialect.Provider
}

func (s *SQLAdapter) DB() *sql.DB {
	return s.db
}

func (s *SQLAdapter) Builder() squirrel.StatementBuilderType {
	return s.qb
}

func (s *SQLAdapter) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

func (s *SQLAdapter) ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*QueryResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &QueryResult{Columns: columns, Rows: results}, nil
}

// ExecuteStatements runs every statement of a script in one transaction.
func (s *SQLAdapter) ExecuteStatements(ctx context.Context, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := execScript(ctx, tx, script); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLAdapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.ListTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (s *SQLAdapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	tables, err := s.GetAllTableNames(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if strings.EqualFold(t, tableName) {
			return true, nil
		}
	}
	return false, nil
}

func (s *SQLAdapter) CreateMigrationsTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.dialect.MigrationsDDL)
	return err
}

func (s *SQLAdapter) GetAppliedMigrations(ctx context.Context) (map[string]AppliedMigration, error) {
	query, args, err := s.qb.Select("id", "checksum", "finished_at").
		From(MigrationsTable).
		Where(squirrel.NotEq{"finished_at": nil}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]AppliedMigration)
	for rows.Next() {
		var m AppliedMigration
		var finishedAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Checksum, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			m.AppliedAt = &t
		}
		applied[m.ID] = m
	}
	return applied, rows.Err()
}

// ExecuteAndRecordMigration applies the up script and its bookkeeping row
// atomically (as far as the provider's DDL allows).
func (s *SQLAdapter) ExecuteAndRecordMigration(ctx context.Context, migrationID, name, checksum, migrationSQL string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := execScript(ctx, tx, migrationSQL); err != nil {
		return err
	}

	query, args, err := s.qb.Insert(MigrationsTable).
		Columns("id", "migration_name", "checksum", "started_at", "finished_at").
		Values(migrationID, name, checksum, squirrel.Expr("CURRENT_TIMESTAMP"), squirrel.Expr("CURRENT_TIMESTAMP")).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// ExecuteAndRemoveMigration runs a down script and forgets the migration.
func (s *SQLAdapter) ExecuteAndRemoveMigration(ctx context.Context, migrationID, downSQL string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := execScript(ctx, tx, downSQL); err != nil {
		return err
	}

	query, args, err := s.qb.Delete(MigrationsTable).Where(squirrel.Eq{"id": migrationID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}

	return tx.Commit()
}

func execScript(ctx context.Context, tx *sql.Tx, script string) error {
	for i, stmt := range ParseSQLStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement %d: %w", i+1, err)
		}
	}
	return nil
}
