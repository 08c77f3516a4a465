package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ListOptions is the canonical, already-normalized query shape the record
// repository builds SQL from. Column names in Filters, SearchColumns and
// SortBy must have been validated against the table's introspected columns
// before they reach the builders, since identifiers cannot be bound as
// query parameters.
type ListOptions struct {
	Filters       map[string]any
	Search        string
	SearchColumns []string
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// Query is a SQL statement plus its positional arguments.
type Query struct {
	SQL  string
	Args []any
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildWhere renders the filter conjunction. Equality filters are ANDed
// together; a search term expands to a disjunction of LIKE clauses over
// the searchable columns, ANDed with the rest.
func buildWhere(opts ListOptions, args []any) (string, []any) {
	var conditions []string

	for _, col := range sortedKeys(opts.Filters) {
		args = append(args, opts.Filters[col])
		conditions = append(conditions, fmt.Sprintf("%s = $%d", quoteIdent(col), len(args)))
	}

	if opts.Search != "" && len(opts.SearchColumns) > 0 {
		var likes []string
		for _, col := range opts.SearchColumns {
			args = append(args, "%"+opts.Search+"%")
			likes = append(likes, fmt.Sprintf("%s::text LIKE $%d", quoteIdent(col), len(args)))
		}
		conditions = append(conditions, "("+strings.Join(likes, " OR ")+")")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// BuildListQuery renders the paginated SELECT for a table.
func BuildListQuery(table string, opts ListOptions) Query {
	var args []any

	sql := fmt.Sprintf("SELECT * FROM %s", quoteIdent(table))

	where, args := buildWhere(opts, args)
	sql += where

	if opts.SortBy != "" {
		order := "ASC"
		if strings.EqualFold(opts.SortOrder, "desc") {
			order = "DESC"
		}
		sql += fmt.Sprintf(" ORDER BY %s %s", quoteIdent(opts.SortBy), order)
	}

	args = append(args, opts.Limit)
	sql += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, opts.Offset)
	sql += fmt.Sprintf(" OFFSET $%d", len(args))

	return Query{SQL: sql, Args: args}
}

// BuildCountQuery renders the COUNT(*) companion to BuildListQuery: same
// predicates, no sort or pagination.
func BuildCountQuery(table string, opts ListOptions) Query {
	var args []any

	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	where, args := buildWhere(opts, args)

	return Query{SQL: sql + where, Args: args}
}

// BuildGetQuery renders a single-row lookup by primary key.
func BuildGetQuery(table, pk string, id any) Query {
	return Query{
		SQL:  fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 LIMIT 1", quoteIdent(table), quoteIdent(pk)),
		Args: []any{id},
	}
}

// BuildInsertQuery renders a parameterized INSERT returning the new row.
func BuildInsertQuery(table string, data map[string]any) Query {
	keys := sortedKeys(data)

	columns := make([]string, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, data[k])
		columns = append(columns, quoteIdent(k))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quoteIdent(table),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	return Query{SQL: sql, Args: args}
}

// BuildUpdateQuery renders a parameterized UPDATE by primary key.
func BuildUpdateQuery(table, pk string, id any, data map[string]any) Query {
	keys := sortedKeys(data)

	assignments := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, data[k])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", quoteIdent(k), len(args)))
	}
	args = append(args, id)

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		quoteIdent(table),
		strings.Join(assignments, ", "),
		quoteIdent(pk),
		len(args),
	)

	return Query{SQL: sql, Args: args}
}

// BuildDeleteQuery renders a DELETE by primary key.
func BuildDeleteQuery(table, pk string, id any) Query {
	return Query{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1", quoteIdent(table), quoteIdent(pk)),
		Args: []any{id},
	}
}

// BuildUniqueCountQuery renders the existence probe for a configured
// unique column. When excludePK is non-empty the row being updated is
// excluded, so updating a record to its own current value does not
// conflict with itself.
func BuildUniqueCountQuery(table, column string, value any, excludePK string, excludeID any) Query {
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", quoteIdent(table), quoteIdent(column))
	args := []any{value}

	if excludePK != "" {
		args = append(args, excludeID)
		sql += fmt.Sprintf(" AND %s <> $%d", quoteIdent(excludePK), len(args))
	}

	return Query{SQL: sql, Args: args}
}
