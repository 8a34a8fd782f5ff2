package service

import (
	"context"
	"math"
	"sort"

	"gamebase/internal/domain"
	"gamebase/internal/repository"

	"github.com/rs/zerolog"
)

// GameSummary is the projected view of a single stats snapshot.
type GameSummary struct {
	AppID                int
	GameName             string
	PlaytimeHours        float64
	AchievementsTotal    int
	AchievementsUnlocked int
	AchievementRate      float64
}

// LibrarySummary aggregates every stored snapshot for one account.
type LibrarySummary struct {
	SteamID                   string
	TotalGames                int
	TotalPlaytimeHours        float64
	TotalAchievementsTotal    int
	TotalAchievementsUnlocked int
	OverallAchievementRate    float64
	TopPlayed                 []GameSummary
	MostComplete              []GameSummary
	LeastPlayed               []GameSummary
}

// Analyser derives read-only views over stored stats snapshots.
type Analyser struct {
	stats  *repository.StatsRepository
	logger zerolog.Logger
}

func NewAnalyser(stats *repository.StatsRepository, logger zerolog.Logger) *Analyser {
	return &Analyser{stats: stats, logger: logger}
}

// GameSummary returns the summary for one game, or nil when no snapshot
// exists.
func (a *Analyser) GameSummary(ctx context.Context, steamID string, appID int) (*GameSummary, error) {
	stats, err := a.stats.Get(ctx, steamID, appID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, nil
	}
	summary := toSummary(stats)
	return &summary, nil
}

// LibrarySummary aggregates all snapshots for steamID. Each ranked list is
// truncated to topN entries; ties keep store order. A non-positive topN
// leaves the ranked lists empty while the totals are still computed.
func (a *Analyser) LibrarySummary(ctx context.Context, steamID string, topN int) (*LibrarySummary, error) {
	if topN < 0 {
		topN = 0
	}

	all, err := a.stats.ListBySteamID(ctx, steamID)
	if err != nil {
		return nil, err
	}

	summaries := make([]GameSummary, len(all))
	totalPlaytime := 0.0
	totalAch := 0
	totalUnlocked := 0
	for i := range all {
		summaries[i] = toSummary(&all[i])
		totalPlaytime += summaries[i].PlaytimeHours
		totalAch += summaries[i].AchievementsTotal
		totalUnlocked += summaries[i].AchievementsUnlocked
	}

	overallRate := 0.0
	if totalAch > 0 {
		overallRate = roundTo(float64(totalUnlocked)/float64(totalAch), 4)
	}

	topPlayed := make([]GameSummary, len(summaries))
	copy(topPlayed, summaries)
	sort.SliceStable(topPlayed, func(i, j int) bool {
		return topPlayed[i].PlaytimeHours > topPlayed[j].PlaytimeHours
	})

	var mostComplete []GameSummary
	for _, s := range summaries {
		if s.AchievementsTotal > 0 {
			mostComplete = append(mostComplete, s)
		}
	}
	sort.SliceStable(mostComplete, func(i, j int) bool {
		return mostComplete[i].AchievementRate > mostComplete[j].AchievementRate
	})

	leastPlayed := make([]GameSummary, len(summaries))
	copy(leastPlayed, summaries)
	sort.SliceStable(leastPlayed, func(i, j int) bool {
		return leastPlayed[i].PlaytimeHours < leastPlayed[j].PlaytimeHours
	})

	return &LibrarySummary{
		SteamID:                   steamID,
		TotalGames:                len(summaries),
		TotalPlaytimeHours:        roundTo(totalPlaytime, 2),
		TotalAchievementsTotal:    totalAch,
		TotalAchievementsUnlocked: totalUnlocked,
		OverallAchievementRate:    overallRate,
		TopPlayed:                 truncate(topPlayed, topN),
		MostComplete:              truncate(mostComplete, topN),
		LeastPlayed:               truncate(leastPlayed, topN),
	}, nil
}

// UnplayedGames returns the snapshots with zero playtime, in store order.
func (a *Analyser) UnplayedGames(ctx context.Context, steamID string) ([]GameSummary, error) {
	return a.filter(ctx, steamID, func(s *domain.GameStats) bool {
		return s.PlaytimeMinutes == 0
	})
}

// CompletedGames returns the snapshots where every achievement is unlocked.
func (a *Analyser) CompletedGames(ctx context.Context, steamID string) ([]GameSummary, error) {
	return a.filter(ctx, steamID, func(s *domain.GameStats) bool {
		return s.AchievementsTotal > 0 && s.AchievementsUnlocked == s.AchievementsTotal
	})
}

// GamesAbovePlaytime returns the snapshots with at least minHours of
// playtime. The threshold is compared in minutes so the stored value is not
// rounded first.
func (a *Analyser) GamesAbovePlaytime(ctx context.Context, steamID string, minHours float64) ([]GameSummary, error) {
	minMinutes := minHours * 60
	return a.filter(ctx, steamID, func(s *domain.GameStats) bool {
		return float64(s.PlaytimeMinutes) >= minMinutes
	})
}

func (a *Analyser) filter(ctx context.Context, steamID string, keep func(*domain.GameStats) bool) ([]GameSummary, error) {
	all, err := a.stats.ListBySteamID(ctx, steamID)
	if err != nil {
		return nil, err
	}
	var summaries []GameSummary
	for i := range all {
		if keep(&all[i]) {
			summaries = append(summaries, toSummary(&all[i]))
		}
	}
	return summaries, nil
}

func toSummary(stats *domain.GameStats) GameSummary {
	return GameSummary{
		AppID:                stats.AppID,
		GameName:             stats.GameName,
		PlaytimeHours:        stats.PlaytimeHours(),
		AchievementsTotal:    stats.AchievementsTotal,
		AchievementsUnlocked: stats.AchievementsUnlocked,
		AchievementRate:      stats.AchievementRate(),
	}
}

func truncate(summaries []GameSummary, n int) []GameSummary {
	if len(summaries) > n {
		return summaries[:n]
	}
	return summaries
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow10(places)
	return math.Round(v*factor) / factor
}
