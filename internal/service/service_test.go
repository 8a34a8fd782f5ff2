package service

import (
	"database/sql"
	"path/filepath"
	"testing"

	"gamebase/internal/config"
	"gamebase/internal/database"
	"gamebase/internal/repository"

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

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	db := openTestDB(t)
	return NewTracker(repository.NewGameRepository(db, zerolog.Nop()), zerolog.Nop())
}

func newTestAnalyser(t *testing.T) (*Analyser, *repository.StatsRepository) {
	t.Helper()
	db := openTestDB(t)
	stats := repository.NewStatsRepository(db, zerolog.Nop())
	return NewAnalyser(stats, zerolog.Nop()), stats
}
