// Package nhl fetches the day's professional hockey slate from the NHL
// stats API. The schedule endpoint lists games; a per-game linescore call
// fills in score, period, and strength state.
package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/scorewire/gamefeed/internal/teams"
	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// Client is the NHL stats API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an NHL stats API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		logger:     logger,
	}
}

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk   uint64         `json:"gamePk"`
	GameDate string         `json:"gameDate"`
	Status   scheduleStatus `json:"status"`
	Teams    scheduleTeams  `json:"teams"`
}

type scheduleStatus struct {
	DetailedState string `json:"detailedState"`
}

type scheduleTeams struct {
	Home scheduleSide `json:"home"`
	Away scheduleSide `json:"away"`
}

type scheduleSide struct {
	Team struct {
		ID uint64 `json:"id"`
	} `json:"team"`
}

type linescoreResponse struct {
	CurrentPeriod              uint64         `json:"currentPeriod"`
	CurrentPeriodOrdinal       string         `json:"currentPeriodOrdinal"`
	CurrentPeriodTimeRemaining string         `json:"currentPeriodTimeRemaining"`
	Teams                      linescoreTeams `json:"teams"`
}

type linescoreTeams struct {
	Home linescoreSide `json:"home"`
	Away linescoreSide `json:"away"`
}

type linescoreSide struct {
	Goals      uint64 `json:"goals"`
	PowerPlay  bool   `json:"powerPlay"`
	NumSkaters uint32 `json:"numSkaters"`
}

// Scoreboard fetches today's schedule and enriches every game with its
// linescore. Games run concurrently; one failed linescore fails the fetch,
// matching the all-or-nothing contract of the other providers.
func (c *Client) Scoreboard(ctx context.Context, sport gamestate.Sport) ([]gamestate.Game, error) {
	var sched scheduleResponse
	if err := c.get(ctx, "/schedule", &sched); err != nil {
		return nil, err
	}
	if len(sched.Dates) == 0 {
		return []gamestate.Game{}, nil
	}

	registryGames := make([]gamestate.Game, 0, len(sched.Dates[0].Games))
	for _, sg := range sched.Dates[0].Games {
		if sg.Status.DetailedState == "Postponed" {
			continue
		}
		start, err := time.Parse(time.RFC3339, sg.GameDate)
		if err != nil {
			return nil, fmt.Errorf("nhl: parse game date %q: %w", sg.GameDate, err)
		}

		home, ok := teams.Lookup(sport, sg.Teams.Home.Team.ID)
		if !ok {
			return nil, fmt.Errorf("nhl: home team %d not in registry", sg.Teams.Home.Team.ID)
		}
		away, ok := teams.Lookup(sport, sg.Teams.Away.Team.ID)
		if !ok {
			return nil, fmt.Errorf("nhl: away team %d not in registry", sg.Teams.Away.Team.ID)
		}

		registryGames = append(registryGames, gamestate.Game{
			GameID:    sg.GamePk,
			Sport:     &gamestate.Sport{SportType: sport.SportType, Level: sport.Level},
			HomeTeam:  &home,
			AwayTeam:  &away,
			Status:    gamestate.StatusActive, // corrected by the linescore
			StartTime: start.UnixNano(),
		})
	}

	games := make([]gamestate.Game, len(registryGames))
	errs := make([]error, len(registryGames))
	var wg sync.WaitGroup
	for i := range registryGames {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			games[i], errs[i] = c.enrich(ctx, registryGames[i])
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return games, nil
}

// enrich fills score, period, strength state, and the real status from the
// game's linescore.
func (c *Client) enrich(ctx context.Context, game gamestate.Game) (gamestate.Game, error) {
	var ls linescoreResponse
	if err := c.get(ctx, fmt.Sprintf("/game/%d/linescore", game.GameID), &ls); err != nil {
		return game, err
	}

	game.HomeTeamScore = ls.Teams.Home.Goals
	game.AwayTeamScore = ls.Teams.Away.Goals
	game.Period = ls.CurrentPeriod

	ordinal := ls.CurrentPeriodOrdinal
	if ordinal == "" && ls.CurrentPeriod >= 1 {
		ordinal = "1st"
	}

	remaining := ls.CurrentPeriodTimeRemaining
	if remaining == "" {
		remaining = "20:00"
	}
	status, ordinal := deriveStatus(remaining, ls.CurrentPeriod, game.HomeTeamScore, game.AwayTeamScore, ordinal)
	game.Status = status
	game.Ordinal = ordinal

	homeSkaters := ls.Teams.Home.NumSkaters
	if homeSkaters == 0 {
		homeSkaters = 5
	}
	awaySkaters := ls.Teams.Away.NumSkaters
	if awaySkaters == 0 {
		awaySkaters = 5
	}
	game.SportData = &gamestate.HockeyData{
		HomeTeam: &gamestate.HockeyTeamData{Powerplay: ls.Teams.Home.PowerPlay, NumSkaters: homeSkaters},
		AwayTeam: &gamestate.HockeyTeamData{Powerplay: ls.Teams.Away.PowerPlay, NumSkaters: awaySkaters},
	}
	return game, nil
}

// deriveStatus turns the linescore clock into a Status, tagging intermission
// ordinals with " INT". A tied game at the end of the third is an
// intermission before overtime, not a final.
func deriveStatus(remaining string, period, homeScore, awayScore uint64, ordinal string) (gamestate.Status, string) {
	switch {
	case remaining == "Final":
		return gamestate.StatusEnd, ordinal
	case strings.EqualFold(remaining, "END"):
		if period >= 3 && homeScore != awayScore {
			return gamestate.StatusEnd, ordinal
		}
		return gamestate.StatusIntermission, ordinal + " INT"
	case remaining == "20:00" && period > 1:
		return gamestate.StatusIntermission, ordinal + " INT"
	case remaining == "20:00" && period >= 1:
		return gamestate.StatusActive, ordinal
	case period >= 1:
		return gamestate.StatusActive, ordinal
	default:
		return gamestate.StatusPregame, ordinal
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
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
		return fmt.Errorf("NHL %s returned %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
