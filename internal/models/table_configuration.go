package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList is a []string stored as a JSON array column. Scan accepts
// both a plain JSON array and a double-encoded one (a JSON string that
// itself holds a JSON array).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err == nil {
		*l = out
		return nil
	}

	// Double-encoded form: a JSON string holding a JSON array.
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return fmt.Errorf("cannot scan %q into StringList", raw)
	}
	if err := json.Unmarshal([]byte(inner), &out); err != nil {
		return fmt.Errorf("cannot scan %q into StringList", raw)
	}
	*l = out
	return nil
}

// TableConfiguration holds the per-table options that modify query
// construction: which columns are searchable, sortable, unique, and how
// columns are ordered for display. One row per table name; rows are
// soft-deleted.
type TableConfiguration struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	TableName         string         `gorm:"uniqueIndex;not null" json:"table_name"`
	ColumnOrder       StringList     `gorm:"type:jsonb" json:"column_order"`
	UniqueConstraints StringList     `gorm:"type:jsonb" json:"unique_constraints"`
	SortableColumns   StringList     `gorm:"type:jsonb" json:"sortable_columns"`
	SearchableColumns StringList     `gorm:"type:jsonb" json:"searchable_columns"`
	FilterableColumns StringList     `gorm:"type:jsonb" json:"filterable_columns"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
