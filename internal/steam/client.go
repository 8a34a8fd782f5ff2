package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gamebase/internal/config"
	"gamebase/internal/domain"

	"github.com/valyala/fasthttp"
)

const defaultBaseURL = "https://api.steampowered.com"

// StatusError is returned when the Steam API answers with a non-200 status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("steam api returned status %d", e.Code)
}

type Client struct {
	apiKey  string
	baseURL string
	client  *fasthttp.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.SteamAPIKey == "" {
		return nil, errors.New("steam api key is required: set STEAM_API_KEY or use --api-key")
	}
	return &Client{
		apiKey:  cfg.SteamAPIKey,
		baseURL: defaultBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}, nil
}

// GetPlayerSummary returns the raw player summary for steamID. It fails with
// a domain.ExternalDataError when the response carries no player.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	params := url.Values{}
	params.Set("steamids", steamID)

	resp, err := doRequest[playerSummariesResponse](ctx, c, "ISteamUser/GetPlayerSummaries/v2/", params)
	if err != nil {
		return nil, err
	}
	if len(resp.Response.Players) == 0 {
		return nil, &domain.ExternalDataError{Op: "get player summary", Msg: "no player found for steam id " + steamID}
	}
	return &resp.Response.Players[0], nil
}

// GetOwnedGames returns the raw owned-games list for steamID, including
// played free games.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("include_appinfo", "1")
	params.Set("include_played_free_games", "1")

	resp, err := doRequest[ownedGamesResponse](ctx, c, "IPlayerService/GetOwnedGames/v1/", params)
	if err != nil {
		return nil, err
	}
	return resp.Response.Games, nil
}

// GetAchievements returns the raw achievement list for one game. It returns
// an empty list, never an error, when the game has no achievements or the
// profile is private (Steam answers those with a non-200 status or
// success=false).
func (c *Client) GetAchievements(ctx context.Context, steamID string, appID int) ([]PlayerAchievement, error) {
	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("appid", fmt.Sprintf("%d", appID))
	params.Set("l", "english")

	resp, err := doRequest[playerAchievementsResponse](ctx, c, "ISteamUserStats/GetPlayerAchievements/v1/", params)
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !resp.PlayerStats.Success {
		return nil, nil
	}
	return resp.PlayerStats.Achievements, nil
}

// GetUserStatsForGame returns the raw numeric stats for one game, or an
// empty list when unavailable.
func (c *Client) GetUserStatsForGame(ctx context.Context, steamID string, appID int) ([]UserGameStat, error) {
	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("appid", fmt.Sprintf("%d", appID))

	resp, err := doRequest[userStatsResponse](ctx, c, "ISteamUserStats/GetUserStatsForGame/v2/", params)
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.PlayerStats.Stats, nil
}

func doRequest[T any](ctx context.Context, client *Client, path string, params url.Values) (*T, error) {
	params.Set("key", client.apiKey)
	params.Set("format", "json")

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + "/" + path + "?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode()}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnixToTime converts a Unix timestamp to a UTC time, or nil when the value
// is absent or zero.
func UnixToTime(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

type PlayerSummary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	ProfileURL  string `json:"profileurl"`
	Avatar      string `json:"avatar"`
	AvatarFull  string `json:"avatarfull"`
	RealName    string `json:"realname"`
	CountryCode string `json:"loccountrycode"`
}

type playerSummariesResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	RtimeLastPlayed int64  `json:"rtime_last_played"`
	ImgIconURL      string `json:"img_icon_url"`
}

type ownedGamesResponse struct {
	Response struct {
		GameCount int         `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}

type PlayerAchievement struct {
	APIName     string `json:"apiname"`
	Name        string `json:"name"`
	Achieved    int    `json:"achieved"`
	UnlockTime  int64  `json:"unlocktime"`
	Description string `json:"description"`
}

type playerAchievementsResponse struct {
	PlayerStats struct {
		SteamID      string              `json:"steamID"`
		GameName     string              `json:"gameName"`
		Success      bool                `json:"success"`
		Achievements []PlayerAchievement `json:"achievements"`
	} `json:"playerstats"`
}

type UserGameStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type userStatsResponse struct {
	PlayerStats struct {
		SteamID  string         `json:"steamID"`
		GameName string         `json:"gameName"`
		Stats    []UserGameStat `json:"stats"`
	} `json:"playerstats"`
}
