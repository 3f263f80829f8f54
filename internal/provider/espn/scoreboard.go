package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/scorewire/gamefeed/internal/teams"
	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// recencyWindow filters out games more than this far from now in either
// direction; the scoreboard endpoint returns the whole slate.
const recencyWindow = 12 * time.Hour

// espnTimeLayout is the minute-resolution UTC format scoreboard dates use.
const espnTimeLayout = "2006-01-02T15:04Z"

type scoreboardResponse struct {
	Events []event `json:"events"`
}

type event struct {
	ShortName    string        `json:"shortName"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Competitors []competitor `json:"competitors"`
	Status      statusInfo   `json:"status"`
	Situation   *situation   `json:"situation"`

	// Golf only.
	ScoringSystem *scoringSystem `json:"scoringSystem"`
	RawData       string         `json:"rawData"`
}

type statusInfo struct {
	Period       uint64     `json:"period"`
	DisplayClock string     `json:"displayClock"`
	Type         statusType `json:"type"`
}

type statusType struct {
	Name        string `json:"name"`
	ShortDetail string `json:"shortDetail"`
}

type competitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     teamInfo `json:"team"`

	// Golf only.
	Athlete    *athlete       `json:"athlete"`
	Statistics []statistic    `json:"statistics"`
	Roster     []rosterEntry  `json:"roster"`
	Status     *golfPosStatus `json:"status"`
}

type teamInfo struct {
	// The feed sends ids as numbers on some endpoints and strings on
	// others.
	ID             json.Number `json:"id"`
	Location       string      `json:"location"`
	Name           string      `json:"name"`
	Abbreviation   string      `json:"abbreviation"`
	Color          string      `json:"color"`
	AlternateColor string      `json:"alternateColor"`
}

type situation struct {
	Balls   json.Number `json:"balls"`
	Strikes json.Number `json:"strikes"`
	Outs    json.Number `json:"outs"`

	OnFirst  bool `json:"onFirst"`
	OnSecond bool `json:"onSecond"`
	OnThird  bool `json:"onThird"`

	DisplayClock          string      `json:"displayClock"`
	PossessionText        string      `json:"possessionText"`
	ShortDownDistanceText string      `json:"shortDownDistanceText"`
	Possession            json.Number `json:"possession"`
}

// statusFromESPN maps a feed status name to the schema's Status. Names the
// mapping has never seen decode as INVALID so one odd event cannot take the
// whole scoreboard down.
func statusFromESPN(name string) gamestate.Status {
	switch name {
	case "STATUS_IN_PROGRESS":
		return gamestate.StatusActive
	case "STATUS_FINAL", "STATUS_PLAY_COMPLETE":
		return gamestate.StatusEnd
	case "STATUS_SCHEDULED", "STATUS_RAIN_DELAY":
		return gamestate.StatusPregame
	case "STATUS_END_PERIOD", "STATUS_HALFTIME", "STATUS_DELAYED":
		return gamestate.StatusIntermission
	case "STATUS_POSTPONED", "STATUS_CANCELED":
		return gamestate.StatusInvalid
	default:
		return gamestate.StatusInvalid
	}
}

// ordinal renders 1 -> "1st", 2 -> "2nd", 11 -> "11th".
func ordinal(n uint64) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.FormatUint(n, 10) + suffix
}

// Scoreboard fetches the current slate for a sport and converts every
// relevant event into a Game snapshot.
func (c *Client) Scoreboard(ctx context.Context, sport gamestate.Sport) ([]gamestate.Game, error) {
	path, err := scoreboardPath(sport)
	if err != nil {
		return nil, err
	}

	var resp scoreboardResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	c.logger.Info("fetched scoreboard", "sport", sport.SportType, "level", sport.Level, "events", len(resp.Events))

	if sport.SportType == gamestate.SportGolf {
		return c.processGolf(resp.Events, time.Now().UTC())
	}
	return c.processEvents(sport, resp.Events, time.Now().UTC())
}

func (c *Client) processEvents(sport gamestate.Sport, events []event, now time.Time) ([]gamestate.Game, error) {
	games := make([]gamestate.Game, 0, len(events))
	for _, ev := range events {
		if len(ev.Competitions) == 0 {
			return nil, fmt.Errorf("espn: event %q has no competitions", ev.ShortName)
		}
		comp := ev.Competitions[0]

		espnStatus := comp.Status.Type.Name
		status := statusFromESPN(espnStatus)
		if status == gamestate.StatusInvalid {
			continue
		}

		start, err := time.Parse(espnTimeLayout, comp.Date)
		if err != nil {
			return nil, fmt.Errorf("espn: parse event date %q: %w", comp.Date, err)
		}
		if delta := now.Sub(start); delta > recencyWindow || delta < -recencyWindow {
			continue
		}

		home, away, err := splitCompetitors(comp.Competitors)
		if err != nil {
			return nil, err
		}

		gameID, err := parseUint(comp.ID)
		if err != nil {
			return nil, fmt.Errorf("espn: parse game id: %w", err)
		}
		homeScore, _ := parseUint(home.Score)
		awayScore, _ := parseUint(away.Score)

		homeTeam, err := resolveTeam(sport, home)
		if err != nil {
			return nil, err
		}
		awayTeam, err := resolveTeam(sport, away)
		if err != nil {
			return nil, err
		}

		ord := ordinal(comp.Status.Period)
		if status == gamestate.StatusIntermission {
			ord += " INT"
		}
		if espnStatus == "STATUS_HALFTIME" {
			ord = "HALFTIME"
		}

		g := gamestate.Game{
			GameID:        gameID,
			Sport:         &gamestate.Sport{SportType: sport.SportType, Level: sport.Level},
			HomeTeam:      &homeTeam,
			AwayTeam:      &awayTeam,
			HomeTeamScore: homeScore,
			AwayTeamScore: awayScore,
			Status:        status,
			Period:        comp.Status.Period,
			Ordinal:       ord,
			StartTime:     start.UnixNano(),
		}
		g.SportData = situationData(sport, comp, &g)
		games = append(games, g)
	}
	return games, nil
}

// splitCompetitors finds the home and away sides; the feed lists exactly two
// competitors per competition.
func splitCompetitors(cs []competitor) (home, away competitor, err error) {
	if len(cs) != 2 {
		return home, away, fmt.Errorf("espn: want 2 competitors, got %d", len(cs))
	}
	for _, comp := range cs {
		switch comp.HomeAway {
		case "home":
			home = comp
		case "away":
			away = comp
		}
	}
	if home.HomeAway == "" || away.HomeAway == "" {
		// Older payloads omit homeAway; they list home first.
		home, away = cs[0], cs[1]
	}
	return home, away, nil
}

// resolveTeam prefers the registry entry and falls back to building a team
// from the competitor payload (collegiate teams, expansion teams).
func resolveTeam(sport gamestate.Sport, comp competitor) (gamestate.Team, error) {
	id, err := parseUint(comp.Team.ID.String())
	if err != nil {
		return gamestate.Team{}, fmt.Errorf("espn: parse team id %q: %w", comp.Team.ID, err)
	}
	if t, ok := teams.Lookup(sport, id); ok {
		return t, nil
	}
	primary := comp.Team.Color
	if primary == "" {
		primary = "000000"
	}
	secondary := comp.Team.AlternateColor
	if secondary == "" {
		secondary = primary
	}
	t, err := teams.Build(id, comp.Team.Location, comp.Team.Name, comp.Team.Abbreviation, primary, secondary)
	if err != nil {
		return gamestate.Team{}, fmt.Errorf("espn: build team %d: %w", id, err)
	}
	return t, nil
}

// situationData extracts the sport-specific payload from a competition.
func situationData(sport gamestate.Sport, comp competition, g *gamestate.Game) gamestate.SportData {
	switch sport.SportType {
	case gamestate.SportBaseball:
		return baseballData(comp)
	case gamestate.SportFootball:
		return footballData(comp, g)
	case gamestate.SportBasketball:
		return &gamestate.BasketballData{}
	default:
		return nil
	}
}

func baseballData(comp competition) *gamestate.BaseballData {
	d := &gamestate.BaseballData{
		IsInningTop: strings.Contains(comp.Status.Type.ShortDetail, "Top"),
	}
	if s := comp.Situation; s != nil {
		d.Balls = parseUint32(s.Balls)
		d.Strikes = parseUint32(s.Strikes)
		d.Outs = parseUint32(s.Outs)
		d.OnFirst = s.OnFirst
		d.OnSecond = s.OnSecond
		d.OnThird = s.OnThird
	}
	return d
}

func footballData(comp competition, g *gamestate.Game) *gamestate.FootballData {
	d := &gamestate.FootballData{Possession: gamestate.PossessionNone}
	if g.Status == gamestate.StatusActive {
		d.TimeRemaining = comp.Status.DisplayClock
	}
	s := comp.Situation
	if s == nil {
		return d
	}
	d.BallPosition = s.PossessionText
	d.DownString = strings.ReplaceAll(s.ShortDownDistanceText, "&", "+")
	if possID, err := parseUint(s.Possession.String()); err == nil {
		switch {
		case g.HomeTeam != nil && g.HomeTeam.ID == possID:
			d.Possession = gamestate.PossessionHome
		case g.AwayTeam != nil && g.AwayTeam.ID == possID:
			d.Possession = gamestate.PossessionAway
		}
	}
	return d
}

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	return strconv.ParseUint(s, 10, 64)
}

func parseUint32(n json.Number) uint32 {
	v, err := parseUint(n.String())
	if err != nil {
		return 0
	}
	return uint32(v)
}
