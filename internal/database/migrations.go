package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// RunMigrations applies the schema for the application's own tables.
// Every statement is idempotent, so the runner is safe to execute on
// every startup.
func RunMigrations(pool *pgxpool.Pool) error {
	ctx := context.Background()

	migrations := []string{
		createTableConfigurationsTable,
	}

	for i, migration := range migrations {
		log.Info().Int("migration", i+1).Int("total", len(migrations)).Msg("running migration")
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info().Msg("all migrations completed")
	return nil
}

const createTableConfigurationsTable = `
CREATE TABLE IF NOT EXISTS table_configurations (
  id BIGSERIAL PRIMARY KEY,
  table_name TEXT NOT NULL,
  column_order JSONB,
  unique_constraints JSONB,
  sortable_columns JSONB,
  searchable_columns JSONB,
  filterable_columns JSONB,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  deleted_at TIMESTAMP WITH TIME ZONE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_table_configurations_table_name
  ON table_configurations(table_name) WHERE deleted_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_table_configurations_deleted_at
  ON table_configurations(deleted_at);
`
