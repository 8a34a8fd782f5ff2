package steam

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamebase/internal/config"
	"gamebase/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Config{SteamAPIKey: "test-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(&config.Config{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestGetPlayerSummary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("steamids") != "76561198000000001" {
			t.Errorf("steamids = %q", r.URL.Query().Get("steamids"))
		}
		w.Write([]byte(`{"response":{"players":[{
			"steamid":"76561198000000001",
			"personaname":"Alice",
			"profileurl":"https://steamcommunity.com/id/alice/",
			"avatarfull":"https://example.com/avatar_full.jpg",
			"loccountrycode":"US"
		}]}}`))
	})

	summary, err := client.GetPlayerSummary(context.Background(), "76561198000000001")
	if err != nil {
		t.Fatalf("get player summary: %v", err)
	}
	if summary.PersonaName != "Alice" {
		t.Fatalf("persona_name = %q, want Alice", summary.PersonaName)
	}
	if summary.CountryCode != "US" {
		t.Fatalf("country_code = %q, want US", summary.CountryCode)
	}
}

func TestGetPlayerSummaryNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"players":[]}}`))
	})

	_, err := client.GetPlayerSummary(context.Background(), "99999")
	var extErr *domain.ExternalDataError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v, want ExternalDataError", err)
	}
}

func TestGetOwnedGames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"game_count":2,"games":[
			{"appid":570,"name":"Dota 2","playtime_forever":600,"rtime_last_played":1700000000,"img_icon_url":"hash"},
			{"appid":730,"name":"CS2","playtime_forever":0}
		]}}`))
	})

	games, err := client.GetOwnedGames(context.Background(), "76561198000000001")
	if err != nil {
		t.Fatalf("get owned games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len = %d, want 2", len(games))
	}
	if games[0].AppID != 570 || games[0].PlaytimeForever != 600 {
		t.Fatalf("games[0] = %+v", games[0])
	}
}

func TestGetAchievements(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playerstats":{"steamID":"76561198000000001","gameName":"Dota 2","success":true,"achievements":[
			{"apiname":"ACH1","name":"First","achieved":1,"unlocktime":1700000000,"description":"do a thing"},
			{"apiname":"ACH2","name":"Second","achieved":0,"unlocktime":0}
		]}}`))
	})

	achievements, err := client.GetAchievements(context.Background(), "76561198000000001", 570)
	if err != nil {
		t.Fatalf("get achievements: %v", err)
	}
	if len(achievements) != 2 {
		t.Fatalf("len = %d, want 2", len(achievements))
	}
	if achievements[0].Achieved != 1 || achievements[0].UnlockTime != 1700000000 {
		t.Fatalf("achievements[0] = %+v", achievements[0])
	}
}

func TestGetAchievementsHTTPErrorReturnsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"playerstats":{"error":"Requested app has no stats","success":false}}`, http.StatusBadRequest)
	})

	achievements, err := client.GetAchievements(context.Background(), "76561198000000001", 570)
	if err != nil {
		t.Fatalf("get achievements: %v", err)
	}
	if len(achievements) != 0 {
		t.Fatalf("len = %d, want 0", len(achievements))
	}
}

func TestGetAchievementsUnsuccessfulReturnsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playerstats":{"success":false}}`))
	})

	achievements, err := client.GetAchievements(context.Background(), "76561198000000001", 570)
	if err != nil {
		t.Fatalf("get achievements: %v", err)
	}
	if len(achievements) != 0 {
		t.Fatalf("len = %d, want 0", len(achievements))
	}
}

func TestGetUserStatsForGame(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playerstats":{"steamID":"76561198000000001","gameName":"Dota 2","stats":[
			{"name":"total_wins","value":100},
			{"name":"total_kills","value":5000}
		]}}`))
	})

	stats, err := client.GetUserStatsForGame(context.Background(), "76561198000000001", 570)
	if err != nil {
		t.Fatalf("get user stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].Name != "total_wins" || stats[0].Value != 100 {
		t.Fatalf("stats[0] = %+v", stats[0])
	}
}

func TestUnixToTime(t *testing.T) {
	t.Parallel()

	if got := UnixToTime(0); got != nil {
		t.Fatalf("UnixToTime(0) = %v, want nil", got)
	}
	got := UnixToTime(1700000000)
	if got == nil || got.Unix() != 1700000000 {
		t.Fatalf("UnixToTime(1700000000) = %v", got)
	}
}
