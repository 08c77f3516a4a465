package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"autoapi/internal/apperrors"
	"autoapi/internal/models"
)

// CatalogReader is the slice of the catalog repository the metadata
// service needs.
type CatalogReader interface {
	ListTables(ctx context.Context) ([]string, error)
	TableExists(ctx context.Context, table string) (bool, error)
	GetColumns(ctx context.Context, table string) ([]models.CatalogColumn, error)
}

// MetadataService introspects tables and caches the result per table
// name. Every CRUD operation depends on DescribeTable for primary-key
// resolution and column validation, so the catalog round-trip runs once
// per table until the cache is explicitly invalidated. A stale entry can
// diverge from the live schema until POST /meta/refresh.
type MetadataService struct {
	catalog CatalogReader
	logger  zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*models.TableMetadata
}

func NewMetadataService(catalog CatalogReader, logger zerolog.Logger) *MetadataService {
	return &MetadataService{
		catalog: catalog,
		logger:  logger,
		cache:   make(map[string]*models.TableMetadata),
	}
}

// ListTables returns all table names in the configured schema.
func (s *MetadataService) ListTables(ctx context.Context) ([]string, error) {
	return s.catalog.ListTables(ctx)
}

// TableExists checks the catalog for a table.
func (s *MetadataService) TableExists(ctx context.Context, table string) (bool, error) {
	return s.catalog.TableExists(ctx, table)
}

// DescribeTable returns the introspected metadata for a table, serving
// from the cache when populated. Concurrent first requests for the same
// table may both hit the catalog; the computation is idempotent so the
// duplicate write is harmless.
func (s *MetadataService) DescribeTable(ctx context.Context, table string) (*models.TableMetadata, error) {
	s.mu.RLock()
	meta, ok := s.cache[table]
	s.mu.RUnlock()
	if ok {
		return meta, nil
	}

	exists, err := s.catalog.TableExists(ctx, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.Newf(apperrors.KindNotFound, "table '%s' not found", table)
	}

	columns, err := s.catalog.GetColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	meta = &models.TableMetadata{
		TableName:  table,
		Label:      models.Labelize(table),
		PrimaryKey: primaryKeyOf(columns),
		Columns:    make([]models.ColumnDescriptor, 0, len(columns)),
		Relations:  []models.Relation{},
	}
	for _, col := range columns {
		meta.Columns = append(meta.Columns, col.Describe())
	}

	s.mu.Lock()
	s.cache[table] = meta
	s.mu.Unlock()

	s.logger.Debug().Str("table", table).Int("columns", len(meta.Columns)).Msg("table metadata cached")
	return meta, nil
}

// InvalidateCache drops every cached entry. The next DescribeTable per
// table re-queries the catalog.
func (s *MetadataService) InvalidateCache() {
	s.mu.Lock()
	s.cache = make(map[string]*models.TableMetadata)
	s.mu.Unlock()

	s.logger.Info().Msg("table metadata cache cleared")
}

// primaryKeyOf returns the first catalog-flagged primary column, falling
// back to the conventional "id" when the table declares none.
func primaryKeyOf(columns []models.CatalogColumn) string {
	for _, col := range columns {
		if col.IsPrimaryKey {
			return col.Name
		}
	}
	return "id"
}
