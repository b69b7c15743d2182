package repositories

import (
	"database/sql"
	"os"
	"testing"

	"github.com/chasonjia/familytree/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory database with the full schema applied.
// MaxOpenConns is pinned to 1 so every query sees the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

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

func strPtr(s string) *string { return &s }

func seedPerson(t *testing.T, repo *PersonRepository, first string, middle, last *string, birthDate string) *models.Person {
	t.Helper()
	person := &models.Person{
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		BirthDate:  birthDate,
	}
	require.NoError(t, repo.Create(person))
	return person
}
