package pets

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/petseed/internal/database"
)

const defaultBatchSize = 100

type Repository struct {
	db    database.DBTX
	qb    squirrel.StatementBuilderType
	clear []string
}

func NewRepository(db database.DBTX, qb squirrel.StatementBuilderType, clearStatements []string) *Repository {
	return &Repository{db: db, qb: qb, clear: clearStatements}
}

// ForAdapter returns a repository running directly on the adapter's pool.
func ForAdapter(adapter database.DatabaseAdapter) *Repository {
	return NewRepository(adapter.DB(), adapter.Builder(), adapter.ClearTableStatements(TableName))
}

// WithTx returns a copy of r bound to tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx, qb: r.qb, clear: r.clear}
}

// DeleteAll empties the table and reports how many rows it held.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	existing, err := r.Count(ctx, Query{})
	if err != nil {
		return 0, err
	}

	for _, stmt := range r.clear {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("failed to clear %s: %w", TableName, err)
		}
	}
	return existing, nil
}

// InsertAll writes the pets with multi-row INSERTs of at most batchSize rows.
func (r *Repository) InsertAll(ctx context.Context, list []Pet, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	for _, p := range list {
		if err := p.Validate(); err != nil {
			return 0, err
		}
	}

	var inserted int64
	for start := 0; start < len(list); start += batchSize {
		end := start + batchSize
		if end > len(list) {
			end = len(list)
		}

		ib := r.qb.Insert(TableName).Columns("name", "species")
		for _, p := range list[start:end] {
			ib = ib.Values(p.Name, p.Species)
		}

		query, args, err := ib.ToSql()
		if err != nil {
			return inserted, err
		}

		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert batch: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			n = int64(end - start)
		}
		inserted += n
	}

	return inserted, nil
}

func (r *Repository) All(ctx context.Context) ([]Pet, error) {
	return r.Find(ctx, Query{})
}

func (r *Repository) Find(ctx context.Context, q Query) ([]Pet, error) {
	sb := r.filter(r.qb.Select("id", "name", "species").From(TableName), q)

	order := "id"
	if q.OrderBy != "" {
		order = q.OrderBy
	}
	if q.Desc {
		order += " DESC"
	}
	sb = sb.OrderBy(order)
	if q.OrderBy != "" && q.OrderBy != "id" {
		sb = sb.OrderBy("id")
	}
	switch {
	case q.Limit > 0:
		sb = sb.Limit(uint64(q.Limit))
	case q.Offset > 0:
		// SQLite and MySQL only accept OFFSET after a LIMIT.
		sb = sb.Limit(math.MaxInt64)
	}
	if q.Offset > 0 {
		sb = sb.Offset(uint64(q.Offset))
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", TableName, err)
	}
	defer rows.Close()

	var result []Pet
	for rows.Next() {
		var p Pet
		if err := rows.Scan(&p.ID, &p.Name, &p.Species); err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Count honours the filters and, like counting a sliced query, skips
// q.Offset rows and never exceeds q.Limit when one is set.
func (r *Repository) Count(ctx context.Context, q Query) (int64, error) {
	query, args, err := r.filter(r.qb.Select("COUNT(*)").From(TableName), q).ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", TableName, err)
	}

	n = max(n-int64(q.Offset), 0)
	if q.Limit > 0 && n > int64(q.Limit) {
		n = int64(q.Limit)
	}
	return n, nil
}

func (r *Repository) filter(sb squirrel.SelectBuilder, q Query) squirrel.SelectBuilder {
	if q.Species != "" {
		sb = sb.Where(squirrel.Eq{"species": q.Species})
	}
	if q.Name != "" {
		sb = sb.Where(squirrel.Eq{"name": q.Name})
	}
	return sb
}
