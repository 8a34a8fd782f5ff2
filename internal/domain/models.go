package domain

import (
	"math"
	"time"
)

// Account is a locally tracked Steam user profile.
type Account struct {
	SteamID     string
	PersonaName string
	ProfileURL  string
	AvatarURL   string
	RealName    string
	CountryCode string
	CreatedAt   time.Time
}

// NewAccount validates an Account and fills defaults. The steam id must be a
// non-empty, digits-only string. CreatedAt defaults to now when unset.
func NewAccount(account Account) (*Account, error) {
	if !isNumeric(account.SteamID) {
		return nil, &ValidationError{Field: "steam_id", Value: account.SteamID, Reason: "must be a non-empty numeric string"}
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	return &account, nil
}

// Game is one tracked library entry, keyed by Steam app id.
type Game struct {
	AppID           int
	Name            string
	PlaytimeMinutes int
	LastPlayed      *time.Time
	IconURL         string
	Notes           string
}

// NewGame validates a Game. The app id must be positive and playtime
// non-negative.
func NewGame(game Game) (*Game, error) {
	if game.AppID <= 0 {
		return nil, &ValidationError{Field: "app_id", Value: game.AppID, Reason: "must be positive"}
	}
	if game.PlaytimeMinutes < 0 {
		return nil, &ValidationError{Field: "playtime_minutes", Value: game.PlaytimeMinutes, Reason: "cannot be negative"}
	}
	return &game, nil
}

// PlaytimeHours returns the playtime in hours, rounded to 2 decimal places.
func (g *Game) PlaytimeHours() float64 {
	return round(float64(g.PlaytimeMinutes)/60, 2)
}

// Achievement is a single achievement definition plus its unlock state for
// one (account, game) pair.
type Achievement struct {
	APIName     string
	DisplayName string
	Achieved    bool
	UnlockTime  *time.Time
	Description string
}

// GameStats is the latest fetched stats snapshot for one game owned by one
// account. Only the most recent snapshot per (steam id, app id) is kept.
type GameStats struct {
	SteamID              string
	AppID                int
	GameName             string
	PlaytimeMinutes      int
	AchievementsTotal    int
	AchievementsUnlocked int
	Achievements         []Achievement
	FetchedAt            time.Time
}

// AchievementRate returns the unlocked fraction rounded to 4 decimal places,
// or 0.0 when the game has no achievements.
func (s *GameStats) AchievementRate() float64 {
	if s.AchievementsTotal == 0 {
		return 0.0
	}
	return round(float64(s.AchievementsUnlocked)/float64(s.AchievementsTotal), 4)
}

// PlaytimeHours returns the snapshot playtime in hours, rounded to 2 decimal
// places.
func (s *GameStats) PlaytimeHours() float64 {
	return round(float64(s.PlaytimeMinutes)/60, 2)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func round(v float64, places int) float64 {
	factor := math.Pow10(places)
	return math.Round(v*factor) / factor
}
