package test

import (
	"context"
	"log"
	"testing"

	"github.com/google/uuid"

	"goalsapp/internal/adapter/database"
)

// InitTestDB opens a private in-memory sqlite database with the schema applied.
// A single connection keeps the memory database alive for the whole test.
func InitTestDB() *database.DB {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := database.OpenSQLite(context.Background(), dsn, database.WithMaxOpenConns(1))
	if err != nil {
		log.Fatal(err)
	}

	return db
}

// CleanDB empties every application table, tasks first.
func CleanDB(t *testing.T, db *database.DB) {
	for _, table := range []string{"tasks", "goals"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}
