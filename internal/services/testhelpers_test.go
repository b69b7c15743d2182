package services

import (
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/chasonjia/familytree/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// newTestDB opens an in-memory database with the full schema applied.
// MaxOpenConns is pinned to 1 so every query sees the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if err := config.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_schema.sql")
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return db
}
