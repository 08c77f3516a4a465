package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"autoapi/internal/models"
)

// CatalogRepository reads table and column definitions from the
// information_schema catalog of the configured database.
type CatalogRepository struct {
	pool   *pgxpool.Pool
	schema string
}

func NewCatalogRepository(pool *pgxpool.Pool, schema string) *CatalogRepository {
	if schema == "" {
		schema = "public"
	}
	return &CatalogRepository{pool: pool, schema: schema}
}

// ListTables returns all base table names in the configured schema.
func (r *CatalogRepository) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := r.pool.Query(ctx, query, r.schema)
	if err != nil {
		return nil, err
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

// TableExists checks the catalog for a table. It is the guard that runs
// before any table name is interpolated into dynamically built SQL.
func (r *CatalogRepository) TableExists(ctx context.Context, table string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
			AND table_type = 'BASE TABLE'
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, r.schema, table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetColumns returns all columns for a table in ordinal position order,
// including primary key and auto-increment flags. A sequence-backed
// default (nextval) or an identity column counts as auto-increment.
func (r *CatalogRepository) GetColumns(ctx context.Context, table string) ([]models.CatalogColumn, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable = 'YES' AS is_nullable,
			c.character_maximum_length,
			COALESCE(pk.is_pk, false) AS is_primary_key,
			(c.is_identity = 'YES' OR COALESCE(c.column_default, '') LIKE 'nextval(%') AS is_auto_increment
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.column_name, true AS is_pk
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = $1
				AND tc.table_name = $2
		) pk ON pk.column_name = c.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := r.pool.Query(ctx, query, r.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.CatalogColumn
	for rows.Next() {
		var col models.CatalogColumn
		if err := rows.Scan(
			&col.Name,
			&col.DataType,
			&col.Nullable,
			&col.MaxLength,
			&col.IsPrimaryKey,
			&col.IsAutoIncrement,
		); err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return columns, rows.Err()
}
