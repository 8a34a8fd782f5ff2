package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamebase/internal/domain"

	"github.com/rs/zerolog"
)

type StatsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStatsRepository(sqlDB *sql.DB, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{db: sqlDB, logger: logger}
}

// Upsert writes a stats snapshot and all of its achievement rows in one
// transaction. The snapshot is keyed by (steam_id, app_id) and each
// achievement by (steam_id, app_id, api_name), so repeated scrapes update
// rows in place instead of duplicating them.
func (r *StatsRepository) Upsert(ctx context.Context, stats *domain.GameStats) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO game_stats
			(steam_id, app_id, game_name, playtime_minutes,
			 achievements_total, achievements_unlocked, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(steam_id, app_id) DO UPDATE SET
			game_name             = excluded.game_name,
			playtime_minutes      = excluded.playtime_minutes,
			achievements_total    = excluded.achievements_total,
			achievements_unlocked = excluded.achievements_unlocked,
			fetched_at            = excluded.fetched_at`,
		stats.SteamID,
		stats.AppID,
		stats.GameName,
		stats.PlaytimeMinutes,
		stats.AchievementsTotal,
		stats.AchievementsUnlocked,
		stats.FetchedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("steam_id", stats.SteamID).Int("app_id", stats.AppID).Msg("failed to upsert game stats")
		return fmt.Errorf("failed to upsert game stats %s/%d: %w", stats.SteamID, stats.AppID, err)
	}

	for _, ach := range stats.Achievements {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO achievements
				(steam_id, app_id, api_name, display_name, achieved, unlock_time, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(steam_id, app_id, api_name) DO UPDATE SET
				display_name = excluded.display_name,
				achieved     = excluded.achieved,
				unlock_time  = excluded.unlock_time,
				description  = excluded.description`,
			stats.SteamID,
			stats.AppID,
			ach.APIName,
			ach.DisplayName,
			ach.Achieved,
			nullTime(ach.UnlockTime),
			ach.Description,
		)
		if err != nil {
			r.logger.Error().Err(err).Str("api_name", ach.APIName).Msg("failed to upsert achievement")
			return fmt.Errorf("failed to upsert achievement %s: %w", ach.APIName, err)
		}
	}

	return tx.Commit()
}

// Get returns the snapshot for (steam id, app id) with its achievements, or
// nil when no snapshot is stored.
func (r *StatsRepository) Get(ctx context.Context, steamID string, appID int) (*domain.GameStats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT steam_id, app_id, game_name, playtime_minutes,
		       achievements_total, achievements_unlocked, fetched_at
		FROM game_stats WHERE steam_id = ? AND app_id = ?`, steamID, appID)

	stats, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game stats %s/%d: %w", steamID, appID, err)
	}

	stats.Achievements, err = r.loadAchievements(ctx, steamID, appID)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ListBySteamID returns all snapshots for an account ordered by playtime
// descending, each with its achievements loaded.
func (r *StatsRepository) ListBySteamID(ctx context.Context, steamID string) ([]domain.GameStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT steam_id, app_id, game_name, playtime_minutes,
		       achievements_total, achievements_unlocked, fetched_at
		FROM game_stats WHERE steam_id = ? ORDER BY playtime_minutes DESC`, steamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game stats: %w", err)
	}
	defer rows.Close()

	var all []domain.GameStats
	for rows.Next() {
		stats, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game stats: %w", err)
		}
		all = append(all, *stats)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the connection before the per-snapshot child queries run.
	rows.Close()

	for i := range all {
		all[i].Achievements, err = r.loadAchievements(ctx, all[i].SteamID, all[i].AppID)
		if err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (r *StatsRepository) loadAchievements(ctx context.Context, steamID string, appID int) ([]domain.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT api_name, display_name, achieved, unlock_time, description
		FROM achievements WHERE steam_id = ? AND app_id = ? ORDER BY id`, steamID, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var ach domain.Achievement
		var unlockTime sql.NullTime
		if err := rows.Scan(&ach.APIName, &ach.DisplayName, &ach.Achieved, &unlockTime, &ach.Description); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		ach.UnlockTime = timePtr(unlockTime)
		achievements = append(achievements, ach)
	}
	return achievements, rows.Err()
}

func scanStats(row rowScanner) (*domain.GameStats, error) {
	var stats domain.GameStats
	err := row.Scan(
		&stats.SteamID,
		&stats.AppID,
		&stats.GameName,
		&stats.PlaytimeMinutes,
		&stats.AchievementsTotal,
		&stats.AchievementsUnlocked,
		&stats.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
