// Package espn fetches live scoreboards from the ESPN site API and turns
// them into gamestate snapshots. It covers every sport except professional
// hockey, which comes from the NHL stats API instead.
//
// Rate limiting is handled via a token bucket limiter shared by all
// endpoints.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// Client is the shared HTTP client for all ESPN scoreboard endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an ESPN scoreboard client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// scoreboardPath maps a sport to its ESPN scoreboard endpoint, relative to
// the base URL.
func scoreboardPath(sport gamestate.Sport) (string, error) {
	switch {
	case sport.SportType == gamestate.SportBaseball:
		return "/baseball/mlb/scoreboard", nil
	case sport.SportType == gamestate.SportFootball && sport.Level == gamestate.LevelProfessional:
		return "/football/nfl/scoreboard", nil
	case sport.SportType == gamestate.SportFootball && sport.Level == gamestate.LevelCollegiate:
		return "/football/college-football/scoreboard?groups=80", nil
	case sport.SportType == gamestate.SportBasketball && sport.Level == gamestate.LevelProfessional:
		return "/basketball/nba/scoreboard", nil
	case sport.SportType == gamestate.SportBasketball && sport.Level == gamestate.LevelCollegiate:
		return "/basketball/mens-college-basketball/scoreboard?groups=50", nil
	case sport.SportType == gamestate.SportGolf:
		return "/golf/leaderboard?league=pga", nil
	default:
		return "", fmt.Errorf("espn: no scoreboard endpoint for %s/%s", sport.SportType, sport.Level)
	}
}

// get performs a rate-limited GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ESPN %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
