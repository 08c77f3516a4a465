package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWidget(t *testing.T) {
	cases := []struct {
		dataType string
		want     Widget
	}{
		{"boolean", WidgetSwitch},
		{"integer", WidgetNumber},
		{"bigint", WidgetNumber},
		{"numeric", WidgetNumber},
		{"double precision", WidgetNumber},
		{"text", WidgetTextarea},
		{"jsonb", WidgetTextarea},
		{"date", WidgetDate},
		{"timestamp with time zone", WidgetDate},
		{"character varying", WidgetText},
		{"uuid", WidgetText},
		{"TEXT", WidgetTextarea},
		{" integer ", WidgetNumber},
		{"", WidgetText},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyWidget(tc.dataType), "type %q", tc.dataType)
	}
}

func TestLabelize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"reg_no", "Reg No"},
		{"name", "Name"},
		{"created_at", "Created At"},
		{"id", "Id"},
		{"a__b", "A  B"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Labelize(tc.in))
	}
}

func TestCatalogColumnDescribe(t *testing.T) {
	maxLen := 120
	col := CatalogColumn{
		Name:      "first_name",
		DataType:  "character varying",
		Nullable:  true,
		MaxLength: &maxLen,
	}

	desc := col.Describe()

	assert.Equal(t, "first_name", desc.Name)
	assert.Equal(t, WidgetText, desc.Widget)
	assert.Equal(t, "First Name", desc.Label)
	assert.True(t, desc.Nullable)
	assert.Equal(t, &maxLen, desc.MaxLength)
	assert.False(t, desc.IsPrimaryKey)
	assert.False(t, desc.IsAutoIncrement)
}
