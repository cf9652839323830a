package testutil

import (
	"database/sql"
	"io/fs"
	"sort"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/migrations"
)

// NewTestDB creates an in-memory SQLite database with the full schema applied
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	schemaFS, err := migrations.GetFS("sqlite")
	if err != nil {
		t.Fatalf("Failed to load migrations: %v", err)
	}
	files, err := fs.Glob(schemaFS, "*.sql")
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	sort.Strings(files)

	for _, name := range files {
		schema, err := fs.ReadFile(schemaFS, name)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		if _, err := db.Exec(string(schema)); err != nil {
			t.Fatalf("Failed to create schema from %s: %v", name, err)
		}
	}

	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}

// NewLogger returns a logger that only prints errors
func NewLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}
