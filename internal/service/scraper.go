package service

import (
	"context"
	"fmt"
	"time"

	"gamebase/internal/constants"
	"gamebase/internal/domain"
	"gamebase/internal/repository"
	"gamebase/internal/steam"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// SteamAPI is the slice of the Steam client the scraper depends on.
type SteamAPI interface {
	GetPlayerSummary(ctx context.Context, steamID string) (*steam.PlayerSummary, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
	GetAchievements(ctx context.Context, steamID string, appID int) ([]steam.PlayerAchievement, error)
}

// Scraper fetches player, library and achievement data from the Steam API
// and persists it.
type Scraper struct {
	client   SteamAPI
	accounts *repository.AccountRepository
	stats    *repository.StatsRepository
	tracker  *Tracker
	logger   zerolog.Logger
}

func NewScraper(
	client SteamAPI,
	accounts *repository.AccountRepository,
	stats *repository.StatsRepository,
	tracker *Tracker,
	logger zerolog.Logger,
) *Scraper {
	return &Scraper{
		client:   client,
		accounts: accounts,
		stats:    stats,
		tracker:  tracker,
		logger:   logger,
	}
}

// ScrapeAccount fetches the player summary for steamID and upserts it. The
// stored created_at of an existing account is preserved.
func (s *Scraper) ScrapeAccount(ctx context.Context, steamID string) (*domain.Account, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.client.GetPlayerSummary(apiCtx, steamID)
	if err != nil {
		s.logger.Error().Err(err).Str("steam_id", steamID).Msg("failed to fetch player summary")
		return nil, err
	}

	avatar := raw.AvatarFull
	if avatar == "" {
		avatar = raw.Avatar
	}

	account, err := domain.NewAccount(domain.Account{
		SteamID:     raw.SteamID,
		PersonaName: raw.PersonaName,
		ProfileURL:  raw.ProfileURL,
		AvatarURL:   avatar,
		RealName:    raw.RealName,
		CountryCode: raw.CountryCode,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Upsert(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info().Str("steam_id", account.SteamID).Str("persona_name", account.PersonaName).Msg("account scraped")
	return account, nil
}

// ScrapeOwnedGames fetches the owned-games list for steamID and bulk-imports
// it into the tracker. Raw entries without an app id are skipped.
func (s *Scraper) ScrapeOwnedGames(ctx context.Context, steamID string) ([]domain.Game, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	rawGames, err := s.client.GetOwnedGames(apiCtx, steamID)
	if err != nil {
		s.logger.Error().Err(err).Str("steam_id", steamID).Msg("failed to fetch owned games")
		return nil, err
	}

	var games []domain.Game
	for _, raw := range rawGames {
		if raw.AppID == 0 {
			s.logger.Debug().Str("name", raw.Name).Msg("skipping owned game without app id")
			continue
		}
		name := raw.Name
		if name == "" {
			name = fmt.Sprintf("App %d", raw.AppID)
		}
		game, err := domain.NewGame(domain.Game{
			AppID:           raw.AppID,
			Name:            name,
			PlaytimeMinutes: raw.PlaytimeForever,
			LastPlayed:      steam.UnixToTime(raw.RtimeLastPlayed),
			IconURL:         raw.ImgIconURL,
		})
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}

	if _, err := s.tracker.Import(ctx, games); err != nil {
		return nil, err
	}
	s.logger.Info().Str("steam_id", steamID).Int("count", len(games)).Msg("owned games scraped")
	return games, nil
}

// ScrapeGameStats fetches achievement data for one game and upserts the
// resulting snapshot. Name and playtime are denormalized from the tracked
// game when available.
func (s *Scraper) ScrapeGameStats(ctx context.Context, steamID string, appID int) (*domain.GameStats, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	rawAchievements, err := s.client.GetAchievements(apiCtx, steamID, appID)
	if err != nil {
		return nil, err
	}

	achievements := make([]domain.Achievement, 0, len(rawAchievements))
	unlocked := 0
	for _, raw := range rawAchievements {
		achieved := raw.Achieved != 0
		if achieved {
			unlocked++
		}
		achievements = append(achievements, domain.Achievement{
			APIName:     raw.APIName,
			DisplayName: raw.Name,
			Achieved:    achieved,
			UnlockTime:  steam.UnixToTime(raw.UnlockTime),
			Description: raw.Description,
		})
	}

	gameName := fmt.Sprintf("App %d", appID)
	playtime := 0
	game, err := s.tracker.Get(ctx, appID)
	if err != nil {
		return nil, err
	}
	if game != nil {
		gameName = game.Name
		playtime = game.PlaytimeMinutes
	}

	stats := &domain.GameStats{
		SteamID:              steamID,
		AppID:                appID,
		GameName:             gameName,
		PlaytimeMinutes:      playtime,
		AchievementsTotal:    len(achievements),
		AchievementsUnlocked: unlocked,
		Achievements:         achievements,
		FetchedAt:            time.Now().UTC(),
	}
	if err := s.stats.Upsert(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ScrapeAllGameStats scrapes achievement stats for every app id in appIDs,
// or for every tracked game when appIDs is nil. A failure on one id is
// logged and skipped; the batch never aborts early. Only successfully
// scraped snapshots are returned.
func (s *Scraper) ScrapeAllGameStats(ctx context.Context, steamID string, appIDs []int) ([]domain.GameStats, error) {
	if appIDs == nil {
		games, err := s.tracker.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, g := range games {
			appIDs = append(appIDs, g.AppID)
		}
	}

	runID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}
	log := s.logger.With().Str("run_id", runID).Str("steam_id", steamID).Logger()
	log.Info().Int("requested", len(appIDs)).Msg("scraping game stats")

	var results []domain.GameStats
	for _, appID := range appIDs {
		stats, err := s.ScrapeGameStats(ctx, steamID, appID)
		if err != nil {
			log.Warn().Err(err).Int("app_id", appID).Msg("skipping app")
			continue
		}
		results = append(results, *stats)
	}

	log.Info().Int("scraped", len(results)).Msg("scrape run finished")
	return results, nil
}
