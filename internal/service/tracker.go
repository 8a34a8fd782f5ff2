package service

import (
	"context"
	"fmt"

	"gamebase/internal/domain"
	"gamebase/internal/repository"

	"github.com/rs/zerolog"
)

// Tracker manages the local collection of tracked games.
type Tracker struct {
	games  *repository.GameRepository
	logger zerolog.Logger
}

func NewTracker(games *repository.GameRepository, logger zerolog.Logger) *Tracker {
	return &Tracker{games: games, logger: logger}
}

// Add validates and upserts a game. An already tracked app id has all of its
// fields overwritten.
func (t *Tracker) Add(ctx context.Context, game domain.Game) (*domain.Game, error) {
	g, err := domain.NewGame(game)
	if err != nil {
		return nil, err
	}
	if err := t.games.Upsert(ctx, g); err != nil {
		return nil, err
	}
	t.logger.Debug().Int("app_id", g.AppID).Str("name", g.Name).Msg("game added")
	return g, nil
}

// UpdatePlaytime sets the playtime for a tracked game. It fails with a
// domain.NotFoundError when the game is not tracked.
func (t *Tracker) UpdatePlaytime(ctx context.Context, appID, playtimeMinutes int) (*domain.Game, error) {
	game, err := t.games.Get(ctx, appID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &domain.NotFoundError{Entity: "game", Key: appID}
	}
	game.PlaytimeMinutes = playtimeMinutes
	updated, err := domain.NewGame(*game)
	if err != nil {
		return nil, err
	}
	if err := t.games.Upsert(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateNotes sets the personal notes for a tracked game. It fails with a
// domain.NotFoundError when the game is not tracked.
func (t *Tracker) UpdateNotes(ctx context.Context, appID int, notes string) (*domain.Game, error) {
	game, err := t.games.Get(ctx, appID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &domain.NotFoundError{Entity: "game", Key: appID}
	}
	game.Notes = notes
	if err := t.games.Upsert(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Remove deletes a game and reports whether it was tracked.
func (t *Tracker) Remove(ctx context.Context, appID int) (bool, error) {
	return t.games.Delete(ctx, appID)
}

// Get returns a tracked game, or nil when it is not tracked.
func (t *Tracker) Get(ctx context.Context, appID int) (*domain.Game, error) {
	return t.games.Get(ctx, appID)
}

// List returns all tracked games ordered by playtime descending.
func (t *Tracker) List(ctx context.Context) ([]domain.Game, error) {
	return t.games.List(ctx)
}

// Import upserts every game in the batch and returns the number of entries
// processed. Each upsert is atomic on its own; there is no rollback of
// earlier entries when a later one fails.
func (t *Tracker) Import(ctx context.Context, games []domain.Game) (int, error) {
	for i := range games {
		if err := t.games.Upsert(ctx, &games[i]); err != nil {
			return i, fmt.Errorf("failed to import game %d: %w", games[i].AppID, err)
		}
	}
	t.logger.Debug().Int("count", len(games)).Msg("games imported")
	return len(games), nil
}
