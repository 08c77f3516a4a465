package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"autoapi/internal/database"
	"autoapi/internal/responses"
)

// startPostgres runs a disposable postgres container seeded with a
// students table and returns a router wired against it, plus the pool
// for tests that mutate the schema directly.
func startPostgres(t *testing.T) (*gin.Engine, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:latest",
		postgres.WithDatabase("autoapi"),
		postgres.WithUsername("autoapi"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE students (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			reg_no VARCHAR(20) NOT NULL,
			department TEXT
		)`)
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(pool))

	gdb, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	return BuildRouter(pool, gdb, zerolog.Nop()), pool
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (int, responses.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope responses.APIResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w.Code, envelope
}

func TestStudentsEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	router, _ := startPostgres(t)

	// Discovery picks up the seeded table.
	status, envelope := do(t, router, http.MethodGet, "/meta/tables", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, envelope.Data, "students")

	status, envelope = do(t, router, http.MethodGet, "/meta/table/students", "")
	require.Equal(t, http.StatusOK, status)
	meta := envelope.Data.(map[string]any)
	assert.Equal(t, "id", meta["primary_key"])

	// Configure reg_no as unique and name as searchable.
	status, _ = do(t, router, http.MethodPost, "/api/table_configurations",
		`{"table_name":"students","unique_constraints":["reg_no"],"searchable_columns":["name"],"sortable_columns":["name"]}`)
	require.Equal(t, http.StatusOK, status)

	// Create a few rows.
	status, envelope = do(t, router, http.MethodPost, "/api/students",
		`{"name":"Ann","reg_no":"R1","department":"Physics"}`)
	require.Equal(t, http.StatusCreated, status)
	created := envelope.Data.(map[string]any)
	id := fmt.Sprintf("%v", created["id"])

	status, _ = do(t, router, http.MethodPost, "/api/students",
		`{"name":"Bob","reg_no":"R2"}`)
	require.Equal(t, http.StatusCreated, status)

	// A duplicate reg_no is rejected before it reaches the table.
	status, envelope = do(t, router, http.MethodPost, "/api/students",
		`{"name":"Cal","reg_no":"R1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "conflict", envelope.Code)

	// Missing required column.
	status, envelope = do(t, router, http.MethodPost, "/api/students", `{"name":"Dee"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation", envelope.Code)

	// VARCHAR(20) length limit is enforced server side.
	status, envelope = do(t, router, http.MethodPost, "/api/students",
		`{"name":"Eve","reg_no":"`+strings.Repeat("x", 21)+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation", envelope.Code)

	// Listing with search and sorting.
	status, envelope = do(t, router, http.MethodGet,
		"/api/students?_search=Ann&sortBy=name&sortOrder=asc", "")
	require.Equal(t, http.StatusOK, status)
	result := envelope.Data.(map[string]any)
	assert.Equal(t, float64(1), result["total"])

	// Sorting on a column the table does not have is refused, not
	// silently ignored.
	status, envelope = do(t, router, http.MethodGet, "/api/students?sortBy=nope", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation", envelope.Code)

	// Fetch, update, and re-fetch a single row.
	status, envelope = do(t, router, http.MethodGet, "/api/students/"+id, "")
	require.Equal(t, http.StatusOK, status)
	record := envelope.Data.(map[string]any)
	assert.Equal(t, "Ann", record["name"])

	status, envelope = do(t, router, http.MethodPut, "/api/students/"+id,
		`{"department":"Chemistry"}`)
	require.Equal(t, http.StatusOK, status)
	record = envelope.Data.(map[string]any)
	assert.Equal(t, "Chemistry", record["department"])

	// Filtered listing.
	status, envelope = do(t, router, http.MethodGet,
		"/api/students?filter[department]=Chemistry", "")
	require.Equal(t, http.StatusOK, status)
	result = envelope.Data.(map[string]any)
	assert.Equal(t, float64(1), result["total"])

	// Delete is idempotent.
	status, _ = do(t, router, http.MethodDelete, "/api/students/"+id, "")
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, router, http.MethodDelete, "/api/students/"+id, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, router, http.MethodGet, "/api/students/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)

	// Unknown tables are rejected at the API surface.
	status, envelope = do(t, router, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_table", envelope.Code)
}

func TestSchemaRefresh(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	router, pool := startPostgres(t)

	// Warm the cache.
	status, envelope := do(t, router, http.MethodGet, "/meta/table/students", "")
	require.Equal(t, http.StatusOK, status)
	meta := envelope.Data.(map[string]any)
	require.Len(t, meta["columns"], 4)

	// Alter the table behind the cache's back. The stale descriptor is
	// served until a refresh is requested.
	_, err := pool.Exec(context.Background(), `ALTER TABLE students ADD COLUMN email TEXT`)
	require.NoError(t, err)

	status, envelope = do(t, router, http.MethodGet, "/meta/table/students", "")
	require.Equal(t, http.StatusOK, status)
	meta = envelope.Data.(map[string]any)
	assert.Len(t, meta["columns"], 4)

	status, _ = do(t, router, http.MethodPost, "/meta/refresh", "")
	require.Equal(t, http.StatusOK, status)

	status, envelope = do(t, router, http.MethodGet, "/meta/table/students", "")
	require.Equal(t, http.StatusOK, status)
	meta = envelope.Data.(map[string]any)
	assert.Len(t, meta["columns"], 5)
}
