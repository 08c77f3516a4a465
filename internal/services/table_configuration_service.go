package services

import (
	"context"

	"github.com/rs/zerolog"

	"autoapi/internal/apperrors"
	"autoapi/internal/models"
)

// TableConfigurationStore persists the per-table configuration rows.
type TableConfigurationStore interface {
	ListTableNames(ctx context.Context) ([]string, error)
	GetByTableName(ctx context.Context, table string) (*models.TableConfiguration, error)
	Create(ctx context.Context, config *models.TableConfiguration) error
	Update(ctx context.Context, config *models.TableConfiguration) error
	SoftDelete(ctx context.Context, table string) error
}

// SaveTableConfigurationInput carries the upsert payload. Nil slices
// leave the stored value null, which disables the corresponding behavior
// for the table.
type SaveTableConfigurationInput struct {
	TableName         string   `json:"table_name"`
	ColumnOrder       []string `json:"column_order"`
	UniqueConstraints []string `json:"unique_constraints"`
	SortableColumns   []string `json:"sortable_columns"`
	SearchableColumns []string `json:"searchable_columns"`
	FilterableColumns []string `json:"filterable_columns"`
}

type TableConfigurationService struct {
	repo   TableConfigurationStore
	logger zerolog.Logger
}

func NewTableConfigurationService(repo TableConfigurationStore, logger zerolog.Logger) *TableConfigurationService {
	return &TableConfigurationService{repo: repo, logger: logger}
}

// ListConfiguredTables returns the names of all tables with a live
// configuration, ordered by name.
func (s *TableConfigurationService) ListConfiguredTables(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListTableNames(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Get returns the configuration for a table, or nil when none exists.
func (s *TableConfigurationService) Get(ctx context.Context, table string) (*models.TableConfiguration, error) {
	return s.repo.GetByTableName(ctx, table)
}

// Save upserts the configuration for input.TableName. The existence
// check and the write are separate statements; concurrent saves for a
// brand-new table may race, which the unique index on table_name catches.
func (s *TableConfigurationService) Save(ctx context.Context, input SaveTableConfigurationInput) (*models.TableConfiguration, error) {
	if input.TableName == "" {
		return nil, apperrors.New(apperrors.KindValidation, "table_name is required")
	}

	config, err := s.repo.GetByTableName(ctx, input.TableName)
	if err != nil {
		return nil, err
	}

	if config == nil {
		config = &models.TableConfiguration{TableName: input.TableName}
		applyInput(config, input)
		if err := s.repo.Create(ctx, config); err != nil {
			return nil, err
		}
		s.logger.Info().Str("table", input.TableName).Msg("table configuration created")
		return config, nil
	}

	applyInput(config, input)
	if err := s.repo.Update(ctx, config); err != nil {
		return nil, err
	}
	s.logger.Info().Str("table", input.TableName).Msg("table configuration updated")
	return config, nil
}

// Delete soft-deletes the configuration for a table; missing rows are a
// no-op.
func (s *TableConfigurationService) Delete(ctx context.Context, table string) error {
	return s.repo.SoftDelete(ctx, table)
}

func applyInput(config *models.TableConfiguration, input SaveTableConfigurationInput) {
	config.ColumnOrder = models.StringList(input.ColumnOrder)
	config.UniqueConstraints = models.StringList(input.UniqueConstraints)
	config.SortableColumns = models.StringList(input.SortableColumns)
	config.SearchableColumns = models.StringList(input.SearchableColumns)
	config.FilterableColumns = models.StringList(input.FilterableColumns)
}
