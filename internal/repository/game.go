package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gamebase/internal/domain"

	"github.com/rs/zerolog"
)

type GameRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, logger zerolog.Logger) *GameRepository {
	return &GameRepository{db: sqlDB, logger: logger}
}

// Upsert inserts or updates a game by app id, overwriting all fields.
func (r *GameRepository) Upsert(ctx context.Context, game *domain.Game) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO games
			(app_id, name, playtime_minutes, last_played, img_icon_url, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(app_id) DO UPDATE SET
			name             = excluded.name,
			playtime_minutes = excluded.playtime_minutes,
			last_played      = excluded.last_played,
			img_icon_url     = excluded.img_icon_url,
			notes            = excluded.notes`,
		game.AppID,
		game.Name,
		game.PlaytimeMinutes,
		nullTime(game.LastPlayed),
		game.IconURL,
		game.Notes,
	)
	if err != nil {
		r.logger.Error().Err(err).Int("app_id", game.AppID).Msg("failed to upsert game")
		return fmt.Errorf("failed to upsert game %d: %w", game.AppID, err)
	}
	return nil
}

// Get returns the game for app id, or nil when it is not tracked.
func (r *GameRepository) Get(ctx context.Context, appID int) (*domain.Game, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT app_id, name, playtime_minutes, last_played, img_icon_url, notes
		FROM games WHERE app_id = ?`, appID)

	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", appID, err)
	}
	return game, nil
}

// List returns all tracked games ordered by playtime descending.
func (r *GameRepository) List(ctx context.Context) ([]domain.Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT app_id, name, playtime_minutes, last_played, img_icon_url, notes
		FROM games ORDER BY playtime_minutes DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

// Delete removes the game and reports whether a row was actually deleted.
func (r *GameRepository) Delete(ctx context.Context, appID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE app_id = ?`, appID)
	if err != nil {
		return false, fmt.Errorf("failed to delete game %d: %w", appID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanGame(row rowScanner) (*domain.Game, error) {
	var game domain.Game
	var lastPlayed sql.NullTime
	err := row.Scan(
		&game.AppID,
		&game.Name,
		&game.PlaytimeMinutes,
		&lastPlayed,
		&game.IconURL,
		&game.Notes,
	)
	if err != nil {
		return nil, err
	}
	game.LastPlayed = timePtr(lastPlayed)
	return &game, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
