package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autoapi/internal/apperrors"
)

// RecordRepository executes dynamically built SQL against arbitrary
// tables. It has no static knowledge of any table's shape; rows travel
// as maps keyed by column name.
type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

// normalizeValue prepares a JSON-decoded value for binding. Nested
// objects and arrays are re-encoded so they land in json/jsonb columns.
func normalizeValue(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return v
		}
		return b
	default:
		return v
	}
}

func normalizeData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = normalizeValue(v)
	}
	return out
}

// List returns the rows matching opts within the pagination window.
func (r *RecordRepository) List(ctx context.Context, table string, opts ListOptions) ([]map[string]any, error) {
	q := BuildListQuery(table, opts)

	rows, err := r.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToMap)
}

// Count returns the number of rows matching opts, independent of the
// pagination window.
func (r *RecordRepository) Count(ctx context.Context, table string, opts ListOptions) (int64, error) {
	q := BuildCountQuery(table, opts)

	var total int64
	if err := r.pool.QueryRow(ctx, q.SQL, q.Args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetByPK returns a single row by primary key, or nil when absent.
func (r *RecordRepository) GetByPK(ctx context.Context, table, pk string, id any) (map[string]any, error) {
	q := BuildGetQuery(table, pk, id)

	rows, err := r.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// InsertChecked runs the configured unique-column probes and the INSERT
// inside one transaction, so two concurrent creates cannot both pass the
// check and both write. Returns the inserted row.
func (r *RecordRepository) InsertChecked(ctx context.Context, table string, data map[string]any, uniqueColumns []string) (map[string]any, error) {
	data = normalizeData(data)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkUnique(ctx, tx, table, data, uniqueColumns, "", nil); err != nil {
		return nil, err
	}

	q := BuildInsertQuery(table, data)
	rows, err := tx.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return record, nil
}

// UpdateChecked runs the unique-column probes (excluding the row being
// updated) and the UPDATE inside one transaction.
func (r *RecordRepository) UpdateChecked(ctx context.Context, table, pk string, id any, data map[string]any, uniqueColumns []string) error {
	data = normalizeData(data)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkUnique(ctx, tx, table, data, uniqueColumns, pk, id); err != nil {
		return err
	}

	q := BuildUpdateQuery(table, pk, id, data)
	if _, err := tx.Exec(ctx, q.SQL, q.Args...); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes a row by primary key. Deleting an id that does not
// exist is not an error.
func (r *RecordRepository) Delete(ctx context.Context, table, pk string, id any) error {
	q := BuildDeleteQuery(table, pk, id)
	_, err := r.pool.Exec(ctx, q.SQL, q.Args...)
	return err
}

// checkUnique probes each configured unique column that carries a
// non-nil value in data. Any existing match fails with a conflict.
func checkUnique(ctx context.Context, tx pgx.Tx, table string, data map[string]any, uniqueColumns []string, excludePK string, excludeID any) error {
	for _, col := range uniqueColumns {
		value, ok := data[col]
		if !ok || value == nil {
			continue
		}

		q := BuildUniqueCountQuery(table, col, value, excludePK, excludeID)

		var count int64
		if err := tx.QueryRow(ctx, q.SQL, q.Args...).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Newf(apperrors.KindConflict, "%s '%v' already exists", col, value)
		}
	}
	return nil
}
