package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"gamebase/internal/config"
	"gamebase/internal/database"

	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
