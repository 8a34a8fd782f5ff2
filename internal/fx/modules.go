package fx

import (
	"context"
	"database/sql"

	"gamebase/internal/config"
	"gamebase/internal/database"
	"gamebase/internal/logger"
	"gamebase/internal/repository"
	"gamebase/internal/service"
	"gamebase/internal/steam"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module wires everything except config, which the CLI provides with its
// flag overrides applied. The Steam client is constructed lazily, so
// commands that never touch the API run without a key.
var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewAccountRepository),
	fx.Provide(repository.NewGameRepository),
	fx.Provide(repository.NewStatsRepository),
	// api client
	fx.Provide(steam.NewClient),
	fx.Provide(func(c *steam.Client) service.SteamAPI { return c }),
	// svc
	fx.Provide(service.NewTracker),
	fx.Provide(service.NewScraper),
	fx.Provide(service.NewAnalyser),
	fx.Invoke(registerDBClose),
)

// provideLogger builds the shared logger at the configured level. An
// unparseable LOG_LEVEL falls back to warn.
func provideLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	return logger.SetLevel(level)
}

func registerDBClose(lc fx.Lifecycle, db *sql.DB, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database")
				return err
			}
			return nil
		},
	})
}
