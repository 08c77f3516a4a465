package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoapi/internal/models"
)

// TableConfigurationRepository persists per-table configuration rows.
// Deletes are soft: gorm stamps deleted_at and every query here only
// sees live rows.
type TableConfigurationRepository struct {
	db *gorm.DB
}

func NewTableConfigurationRepository(db *gorm.DB) *TableConfigurationRepository {
	return &TableConfigurationRepository{db: db}
}

// ListTableNames returns the table names of all live configuration rows,
// ordered by name.
func (r *TableConfigurationRepository) ListTableNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.TableConfiguration{}).
		Order("table_name").
		Pluck("table_name", &names).Error
	return names, err
}

// GetByTableName returns the live configuration for a table, or nil when
// none exists.
func (r *TableConfigurationRepository) GetByTableName(ctx context.Context, table string) (*models.TableConfiguration, error) {
	var config models.TableConfiguration
	err := r.db.WithContext(ctx).
		Where("table_name = ?", table).
		First(&config).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *TableConfigurationRepository) Create(ctx context.Context, config *models.TableConfiguration) error {
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *TableConfigurationRepository) Update(ctx context.Context, config *models.TableConfiguration) error {
	return r.db.WithContext(ctx).Save(config).Error
}

// SoftDelete stamps deleted_at on the row for a table. Deleting a table
// that has no configuration is a no-op.
func (r *TableConfigurationRepository) SoftDelete(ctx context.Context, table string) error {
	return r.db.WithContext(ctx).
		Where("table_name = ?", table).
		Delete(&models.TableConfiguration{}).Error
}
