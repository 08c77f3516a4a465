package services

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"autoapi/internal/apperrors"
	"autoapi/internal/models"
	"autoapi/internal/repositories"
	"autoapi/internal/utils"
)

const (
	DefaultPage  = 1
	DefaultLimit = 30
)

// RecordStore executes dynamically built SQL for an arbitrary table.
type RecordStore interface {
	List(ctx context.Context, table string, opts repositories.ListOptions) ([]map[string]any, error)
	Count(ctx context.Context, table string, opts repositories.ListOptions) (int64, error)
	GetByPK(ctx context.Context, table, pk string, id any) (map[string]any, error)
	InsertChecked(ctx context.Context, table string, data map[string]any, uniqueColumns []string) (map[string]any, error)
	UpdateChecked(ctx context.Context, table, pk string, id any, data map[string]any, uniqueColumns []string) error
	Delete(ctx context.Context, table, pk string, id any) error
}

// TableMetadataProvider resolves primary keys and column descriptors.
type TableMetadataProvider interface {
	DescribeTable(ctx context.Context, table string) (*models.TableMetadata, error)
}

// ConfigurationProvider supplies the per-table search/unique column sets.
type ConfigurationProvider interface {
	GetByTableName(ctx context.Context, table string) (*models.TableConfiguration, error)
}

// ListQuery is the canonical query shape after the HTTP layer has
// normalized its pagination and filter dialects.
type ListQuery struct {
	Page      int
	Limit     int
	Filters   map[string]string
	Search    string
	SortBy    string
	SortOrder string
}

type ListResult struct {
	Data  []map[string]any `json:"data"`
	Total int64            `json:"total"`
}

// RecordService performs generic CRUD against any table the catalog
// knows about. It never assumes a fixed schema: every operation starts
// from the introspected column descriptors, and every client-supplied
// column name is validated against them before it is interpolated into
// SQL.
type RecordService struct {
	metadata TableMetadataProvider
	store    RecordStore
	configs  ConfigurationProvider
	logger   zerolog.Logger
}

func NewRecordService(metadata TableMetadataProvider, store RecordStore, configs ConfigurationProvider, logger zerolog.Logger) *RecordService {
	return &RecordService{
		metadata: metadata,
		store:    store,
		configs:  configs,
		logger:   logger,
	}
}

// describe resolves table metadata, translating a missing table into the
// invalid-table error the HTTP layer maps to a client error.
func (s *RecordService) describe(ctx context.Context, table string) (*models.TableMetadata, error) {
	meta, err := s.metadata.DescribeTable(ctx, table)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Newf(apperrors.KindInvalidTable, "table '%s' not found", table)
		}
		return nil, err
	}
	return meta, nil
}

// List returns one page of rows plus the filter-matching total.
func (s *RecordService) List(ctx context.Context, table string, q ListQuery) (*ListResult, error) {
	meta, err := s.describe(ctx, table)
	if err != nil {
		return nil, err
	}

	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}

	columns := columnNames(meta)

	opts := repositories.ListOptions{
		Filters: make(map[string]any, len(q.Filters)),
		Limit:   q.Limit,
		Offset:  (q.Page - 1) * q.Limit,
	}
	for col, value := range q.Filters {
		if !utils.Contains(columns, col) {
			return nil, apperrors.Newf(apperrors.KindValidation, "unknown filter column '%s'", col)
		}
		opts.Filters[col] = value
	}

	if q.Search != "" {
		config, err := s.configs.GetByTableName(ctx, table)
		if err != nil {
			return nil, err
		}
		// Search is opt-in: without configured searchable columns the
		// term is ignored.
		if config != nil {
			opts.Search = q.Search
			opts.SearchColumns = config.SearchableColumns
		}
	}

	if q.SortBy != "" {
		if !utils.Contains(columns, q.SortBy) {
			return nil, apperrors.Newf(apperrors.KindValidation, "unknown sort column '%s'", q.SortBy)
		}
		opts.SortBy = q.SortBy
		opts.SortOrder = q.SortOrder
	}

	rows, err := s.store.List(ctx, table, opts)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	total, err := s.store.Count(ctx, table, opts)
	if err != nil {
		return nil, err
	}

	return &ListResult{Data: rows, Total: total}, nil
}

// Get returns a single row by id, or nil when no row matches.
func (s *RecordService) Get(ctx context.Context, table string, id string) (map[string]any, error) {
	meta, err := s.describe(ctx, table)
	if err != nil {
		return nil, err
	}

	return s.store.GetByPK(ctx, table, meta.PrimaryKey, id)
}

// Create validates data against the introspected columns, enforces the
// configured unique constraints, and inserts the row. The inserted row,
// including any generated identifier, is returned.
func (s *RecordService) Create(ctx context.Context, table string, data map[string]any) (map[string]any, error) {
	meta, err := s.describe(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "no fields supplied")
	}
	if err := s.rejectUnknownColumns(meta, data); err != nil {
		return nil, err
	}

	for _, col := range meta.Columns {
		value, present := data[col.Name]

		if !col.Nullable && !col.IsAutoIncrement {
			if !present || value == nil {
				return nil, apperrors.Newf(apperrors.KindValidation, "field '%s' is required", col.Name)
			}
		}

		if col.MaxLength != nil && present {
			if str, ok := value.(string); ok && utf8.RuneCountInString(str) > *col.MaxLength {
				return nil, apperrors.Newf(apperrors.KindValidation,
					"field '%s' exceeds maximum length of %d", col.Name, *col.MaxLength)
			}
		}
	}

	unique, err := s.uniqueColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	record, err := s.store.InsertChecked(ctx, table, data, unique)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("table", table).Msg("record created")
	return record, nil
}

// Update writes the supplied columns and returns the refreshed row.
// Unlike Create it performs no required-field or length validation, only
// the unknown-column and uniqueness checks.
func (s *RecordService) Update(ctx context.Context, table string, id string, data map[string]any) (map[string]any, error) {
	meta, err := s.describe(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "no fields supplied")
	}
	if err := s.rejectUnknownColumns(meta, data); err != nil {
		return nil, err
	}

	unique, err := s.uniqueColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateChecked(ctx, table, meta.PrimaryKey, id, data, unique); err != nil {
		return nil, err
	}

	return s.store.GetByPK(ctx, table, meta.PrimaryKey, id)
}

// Delete removes a row by id. Deleting an id that does not exist
// succeeds, so the operation is idempotent.
func (s *RecordService) Delete(ctx context.Context, table string, id string) error {
	meta, err := s.describe(ctx, table)
	if err != nil {
		return err
	}

	return s.store.Delete(ctx, table, meta.PrimaryKey, id)
}

func (s *RecordService) rejectUnknownColumns(meta *models.TableMetadata, data map[string]any) error {
	columns := columnNames(meta)
	for col := range data {
		if !utils.Contains(columns, col) {
			return apperrors.Newf(apperrors.KindValidation, "unknown column '%s'", col)
		}
	}
	return nil
}

// uniqueColumns returns the configured unique-constraint columns for a
// table. Tables without a configuration get no uniqueness enforcement.
func (s *RecordService) uniqueColumns(ctx context.Context, table string) ([]string, error) {
	config, err := s.configs.GetByTableName(ctx, table)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, nil
	}
	return config.UniqueConstraints, nil
}

func columnNames(meta *models.TableMetadata) []string {
	names := make([]string, 0, len(meta.Columns))
	for _, col := range meta.Columns {
		names = append(names, col.Name)
	}
	return names
}
