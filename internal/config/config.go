package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	SteamAPIKey string
	DBPath      string
	LogLevel    string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		SteamAPIKey: getEnv("STEAM_API_KEY", ""),
		DBPath:      getEnv("GAMEBASE_DB", defaultDBPath()),
		LogLevel:    getEnv("LOG_LEVEL", "warn"),
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Bool("api_key_set", cfg.SteamAPIKey != "").
		Msg("configuration loaded")

	return cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gamebase.db"
	}
	return filepath.Join(home, ".gamebase", "gamebase.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
