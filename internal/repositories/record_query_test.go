package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	q := BuildListQuery("students", ListOptions{Limit: 30, Offset: 0})
	assert.Equal(t, `SELECT * FROM "students" LIMIT $1 OFFSET $2`, q.SQL)
	assert.Equal(t, []any{30, 0}, q.Args)
}

func TestBuildListQueryFilters(t *testing.T) {
	q := BuildListQuery("students", ListOptions{
		Filters: map[string]any{"department": "CS", "name": "Ann"},
		Limit:   10,
		Offset:  10,
	})

	// Filter keys render in sorted order so the SQL is deterministic.
	assert.Equal(t,
		`SELECT * FROM "students" WHERE "department" = $1 AND "name" = $2 LIMIT $3 OFFSET $4`,
		q.SQL)
	assert.Equal(t, []any{"CS", "Ann", 10, 10}, q.Args)
}

func TestBuildListQuerySearch(t *testing.T) {
	q := BuildListQuery("students", ListOptions{
		Filters:       map[string]any{"department": "CS"},
		Search:        "doe",
		SearchColumns: []string{"name", "reg_no"},
		Limit:         30,
	})

	assert.Equal(t,
		`SELECT * FROM "students" WHERE "department" = $1 AND ("name"::text LIKE $2 OR "reg_no"::text LIKE $3) LIMIT $4 OFFSET $5`,
		q.SQL)
	assert.Equal(t, []any{"CS", "%doe%", "%doe%", 30, 0}, q.Args)
}

func TestBuildListQuerySearchWithoutColumns(t *testing.T) {
	// A search term with no configured searchable columns adds no predicate.
	q := BuildListQuery("students", ListOptions{Search: "doe", Limit: 30})
	assert.Equal(t, `SELECT * FROM "students" LIMIT $1 OFFSET $2`, q.SQL)
}

func TestBuildListQuerySort(t *testing.T) {
	q := BuildListQuery("students", ListOptions{SortBy: "name", SortOrder: "DESC", Limit: 30})
	assert.Equal(t, `SELECT * FROM "students" ORDER BY "name" DESC LIMIT $1 OFFSET $2`, q.SQL)

	q = BuildListQuery("students", ListOptions{SortBy: "name", SortOrder: "weird", Limit: 30})
	assert.Equal(t, `SELECT * FROM "students" ORDER BY "name" ASC LIMIT $1 OFFSET $2`, q.SQL)

	q = BuildListQuery("students", ListOptions{SortBy: "name", SortOrder: "desc", Limit: 30})
	assert.Contains(t, q.SQL, `ORDER BY "name" DESC`)
}

func TestBuildCountQuery(t *testing.T) {
	q := BuildCountQuery("students", ListOptions{
		Filters: map[string]any{"name": "Ann"},
		SortBy:  "name",
		Limit:   10,
		Offset:  20,
	})

	// Sort and pagination never reach the count query.
	assert.Equal(t, `SELECT COUNT(*) FROM "students" WHERE "name" = $1`, q.SQL)
	assert.Equal(t, []any{"Ann"}, q.Args)
}

func TestBuildGetQuery(t *testing.T) {
	q := BuildGetQuery("students", "id", "7")
	assert.Equal(t, `SELECT * FROM "students" WHERE "id" = $1 LIMIT 1`, q.SQL)
	assert.Equal(t, []any{"7"}, q.Args)
}

func TestBuildInsertQuery(t *testing.T) {
	q := BuildInsertQuery("students", map[string]any{"name": "Ann", "reg_no": "R1"})
	assert.Equal(t,
		`INSERT INTO "students" ("name", "reg_no") VALUES ($1, $2) RETURNING *`,
		q.SQL)
	assert.Equal(t, []any{"Ann", "R1"}, q.Args)
}

func TestBuildUpdateQuery(t *testing.T) {
	q := BuildUpdateQuery("students", "id", "7", map[string]any{"department": "CS", "name": "Ann"})
	assert.Equal(t,
		`UPDATE "students" SET "department" = $1, "name" = $2 WHERE "id" = $3`,
		q.SQL)
	assert.Equal(t, []any{"CS", "Ann", "7"}, q.Args)
}

func TestBuildDeleteQuery(t *testing.T) {
	q := BuildDeleteQuery("students", "id", "7")
	assert.Equal(t, `DELETE FROM "students" WHERE "id" = $1`, q.SQL)
	assert.Equal(t, []any{"7"}, q.Args)
}

func TestBuildUniqueCountQuery(t *testing.T) {
	q := BuildUniqueCountQuery("students", "reg_no", "R1", "", nil)
	assert.Equal(t, `SELECT COUNT(*) FROM "students" WHERE "reg_no" = $1`, q.SQL)
	assert.Equal(t, []any{"R1"}, q.Args)

	q = BuildUniqueCountQuery("students", "reg_no", "R1", "id", "7")
	assert.Equal(t, `SELECT COUNT(*) FROM "students" WHERE "reg_no" = $1 AND "id" <> $2`, q.SQL)
	assert.Equal(t, []any{"R1", "7"}, q.Args)
}

func TestQuoteIdentBlocksInjection(t *testing.T) {
	// Embedded quotes are doubled, so a crafted identifier cannot break
	// out of its quoting.
	q := BuildGetQuery(`students" WHERE 1=1 --`, "id", 1)
	assert.Contains(t, q.SQL, `"students"" WHERE 1=1 --"`)
}

func TestNormalizeData(t *testing.T) {
	out := normalizeData(map[string]any{
		"name": "Ann",
		"tags": []any{"a", "b"},
		"meta": map[string]any{"x": 1},
		"age":  float64(20),
	})

	assert.Equal(t, "Ann", out["name"])
	assert.Equal(t, float64(20), out["age"])
	assert.Equal(t, []byte(`["a","b"]`), out["tags"])
	assert.Equal(t, []byte(`{"x":1}`), out["meta"])
}
