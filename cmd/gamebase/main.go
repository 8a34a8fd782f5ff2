package main

import (
	"context"
	"os"

	"gamebase/internal/config"
	"gamebase/internal/constants"
	fxmodules "gamebase/internal/fx"
	"gamebase/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	rootCmd = &cobra.Command{
		Use:          "gamebase",
		Short:        "Track your Steam library and achievement progress",
		SilenceUsage: true,
	}

	// Flags
	dbPath string
	apiKey string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database file (default: ~/.gamebase/gamebase.db)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Steam Web API key (overrides STEAM_API_KEY)")
	rootCmd.AddCommand(accountCmd, gamesCmd, scrapeCmd, analyseCmd)
}

// provideConfig loads the configuration with the CLI flag overrides applied.
// The shared logger's level comes from the config, so loading itself uses a
// bootstrap logger.
func provideConfig() (*config.Config, error) {
	cfg, err := config.Load(logger.New())
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if apiKey != "" {
		cfg.SteamAPIKey = apiKey
	}
	return cfg, nil
}

// runApp builds the fx graph and runs invoke against it. Construction or
// invoke errors surface as the command error.
func runApp(invoke any) error {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(provideConfig),
		fxmodules.Module,
		fx.Invoke(invoke),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer stopCancel()
	return app.Stop(stopCtx)
}
