package models

import "strings"

// Widget is the UI input hint derived from a column's catalog type.
type Widget string

const (
	WidgetSwitch   Widget = "switch"
	WidgetNumber   Widget = "number"
	WidgetTextarea Widget = "textarea"
	WidgetDate     Widget = "date"
	WidgetText     Widget = "text"
)

// CatalogColumn is a raw information_schema row for one column.
type CatalogColumn struct {
	Name            string
	DataType        string
	Nullable        bool
	MaxLength       *int
	IsPrimaryKey    bool
	IsAutoIncrement bool
}

// ColumnDescriptor is a CatalogColumn enriched with display metadata.
type ColumnDescriptor struct {
	Name            string `json:"name"`
	DataType        string `json:"data_type"`
	Nullable        bool   `json:"nullable"`
	MaxLength       *int   `json:"max_length,omitempty"`
	IsPrimaryKey    bool   `json:"is_primary_key"`
	IsAutoIncrement bool   `json:"is_auto_increment"`
	Widget          Widget `json:"widget"`
	Label           string `json:"label"`
}

// Relation is reserved for foreign-key derived relations; currently always empty.
type Relation struct {
	Column       string `json:"column"`
	ForeignTable string `json:"foreign_table"`
	ForeignKey   string `json:"foreign_key"`
}

// TableMetadata is the introspected shape of one table.
type TableMetadata struct {
	TableName  string             `json:"table_name"`
	Label      string             `json:"label"`
	PrimaryKey string             `json:"primary_key"`
	Columns    []ColumnDescriptor `json:"columns"`
	Relations  []Relation         `json:"relations"`
}

var widgetByType = map[string]Widget{
	"boolean": WidgetSwitch,
	"bool":    WidgetSwitch,

	"smallint":         WidgetNumber,
	"integer":          WidgetNumber,
	"int":              WidgetNumber,
	"bigint":           WidgetNumber,
	"numeric":          WidgetNumber,
	"decimal":          WidgetNumber,
	"real":             WidgetNumber,
	"double precision": WidgetNumber,
	"smallserial":      WidgetNumber,
	"serial":           WidgetNumber,
	"bigserial":        WidgetNumber,
	"money":            WidgetNumber,

	"text":  WidgetTextarea,
	"json":  WidgetTextarea,
	"jsonb": WidgetTextarea,
	"xml":   WidgetTextarea,

	"date":                        WidgetDate,
	"time without time zone":      WidgetDate,
	"time with time zone":         WidgetDate,
	"timestamp without time zone": WidgetDate,
	"timestamp with time zone":    WidgetDate,
	"timestamptz":                 WidgetDate,
	"interval":                    WidgetDate,
}

// ClassifyWidget maps a raw catalog type to a UI widget hint.
// Unrecognised types fall back to a plain text input.
func ClassifyWidget(dataType string) Widget {
	if w, ok := widgetByType[strings.ToLower(strings.TrimSpace(dataType))]; ok {
		return w
	}
	return WidgetText
}

// Labelize turns an identifier like "reg_no" into "Reg No".
func Labelize(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Describe enriches a raw catalog column with its widget and display label.
func (c CatalogColumn) Describe() ColumnDescriptor {
	return ColumnDescriptor{
		Name:            c.Name,
		DataType:        c.DataType,
		Nullable:        c.Nullable,
		MaxLength:       c.MaxLength,
		IsPrimaryKey:    c.IsPrimaryKey,
		IsAutoIncrement: c.IsAutoIncrement,
		Widget:          ClassifyWidget(c.DataType),
		Label:           Labelize(c.Name),
	}
}
