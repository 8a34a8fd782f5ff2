package config

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "")
	t.Setenv("GAMEBASE_DB", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SteamAPIKey != "" {
		t.Fatalf("api key = %q, want empty", cfg.SteamAPIKey)
	}
	if cfg.DBPath == "" {
		t.Fatal("db path was not defaulted")
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("log level = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "secret")
	t.Setenv("GAMEBASE_DB", "/tmp/custom.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SteamAPIKey != "secret" {
		t.Fatalf("api key = %q, want secret", cfg.SteamAPIKey)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("db path = %q, want /tmp/custom.db", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.LogLevel)
	}
}
