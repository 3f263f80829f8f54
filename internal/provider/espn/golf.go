package espn

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// golfRecencyWindow is wider than the team-sport window: tournaments span
// days and stay interesting while play is underway or freshly finished.
const golfRecencyWindow = 24 * time.Hour

type scoringSystem struct {
	Name string `json:"name"`
}

type athlete struct {
	DisplayName string `json:"displayName"`
	LastName    string `json:"lastName"`
}

type statistic struct {
	DisplayValue string `json:"displayValue"`
}

type rosterEntry struct {
	Athlete athlete `json:"athlete"`
}

type golfPosStatus struct {
	TeeTime  string       `json:"teeTime"`
	Position golfPosition `json:"position"`
}

type golfPosition struct {
	ID string `json:"id"`
}

// eventNameMap shortens sponsor-heavy tournament names to fit a scoreboard.
var eventNameMap = map[string]string{
	"SHRINERS CHILDREN'S OPEN":                       "SHRINERS OPEN",
	"BUTTERFIELD BERMUDA CHAMPIONSHIP":               "BERMUDA CHAMP",
	"WORLD WIDE TECHNOLOGY CHAMPIONSHIP AT MAYAKOBA": "WWT CHAMP",
	"FARMERS INSURANCE OPEN":                         "FARMERS OPEN",
	"SONY OPEN IN HAWAII":                            "SONY OPEN",
	"AT&T PEBBLE BEACH PRO-AM":                       "PEBBLE BEACH",
	"WASTE MANAGEMENT PHOENIX OPEN":                  "WM PHOENIX",
	"CORALES PUNTACANA CHAMPIONSHIP":                 "PUTACANA CHAMP",
	"VALERO TEXAS OPEN":                              "VALERO OPEN",
	"RBC CANADIAN OPEN":                              "RBC CANADIAN",
	"GENESIS SCOTTISH OPEN":                          "SCOTTISH OPEN",
	"THE CJ CUP IN SOUTH CAROLINA":                   "CJ CUP",
	"CADENCE BANK HOUSTON OPEN":                      "HOUSTON OPEN",
}

// fillerWords add nothing on a narrow display.
var fillerWords = map[string]bool{
	"TOURNAMENT":   true,
	"CHAMPIONSHIP": true,
	"CHALLENGE":    true,
	"CLASSIC":      true,
	"INVITATIONAL": true,
}

// suffixNames are generational suffixes that are not last names.
var suffixNames = map[string]bool{
	"JR.": true, "JR": true, "SR.": true, "SR": true,
	"II": true, "III": true, "IV": true, "V": true, "VI": true,
}

// teamstrokeLineRE matches one leaderboard line of teamstroke raw data:
// two player names separated by a slash, then the score token.
var teamstrokeLineRE = regexp.MustCompile(`.*\s([a-zA-Z ]+)/([a-zA-Z ]+)\s*([^\s]+)`)

// processGolf converts leaderboard events into Game snapshots. A golf game
// has no teams and no score; the leaderboard rides in GolfData.
func (c *Client) processGolf(events []event, now time.Time) ([]gamestate.Game, error) {
	games := make([]gamestate.Game, 0, len(events))
	for _, ev := range events {
		if len(ev.Competitions) == 0 {
			c.logger.Warn("golf event has no competitions", "event", ev.ShortName)
			continue
		}
		comp := ev.Competitions[0]

		espnStatus := comp.Status.Type.Name
		status := statusFromESPN(espnStatus)
		if status == gamestate.StatusInvalid {
			c.logger.Error("invalid golf status", "status", espnStatus)
			continue
		}

		gameID, err := parseUint(comp.ID)
		if err != nil {
			c.logger.Warn("golf event with bad id", "id", comp.ID, "error", err)
			continue
		}

		start := golfStartTime(comp)
		if start.IsZero() {
			if start, err = time.Parse(espnTimeLayout, comp.Date); err != nil {
				c.logger.Warn("golf event with bad date", "date", comp.Date, "error", err)
				continue
			}
		}

		delta := now.Sub(start)
		if delta < 0 {
			delta = -delta
		}
		if delta > golfRecencyWindow && status != gamestate.StatusActive && status != gamestate.StatusEnd {
			c.logger.Info("skipping stale golf event", "game_id", gameID, "status", status)
			continue
		}

		// A tee time in the future while "in progress" means the day's
		// play has ended.
		if status == gamestate.StatusActive && start.After(now) {
			status = gamestate.StatusEnd
		}

		var players []gamestate.GolfPlayer
		if comp.ScoringSystem != nil && comp.ScoringSystem.Name == "Teamstroke" {
			if comp.RawData != "" {
				if status == gamestate.StatusActive && strings.Contains(comp.RawData, "COMPLETE") {
					status = gamestate.StatusEnd
				}
				players = playersFromRawData(comp.RawData)
			} else {
				players = topPlayers(comp.Competitors, playerFromTeamstroke)
			}
		} else {
			players = topPlayers(comp.Competitors, playerFromCompetitor)
		}

		games = append(games, gamestate.Game{
			GameID:    gameID,
			Sport:     &gamestate.Sport{SportType: gamestate.SportGolf, Level: gamestate.LevelProfessional},
			Status:    status,
			Ordinal:   strconv.FormatUint(comp.Status.Period, 10),
			StartTime: start.UnixNano(),
			SportData: &gamestate.GolfData{
				EventName: shortEventName(ev.ShortName),
				Players:   players,
			},
		})
	}
	return games, nil
}

// golfStartTime is the earliest tee time across the field, or zero when no
// competitor carries one.
func golfStartTime(comp competition) time.Time {
	var earliest time.Time
	for _, player := range comp.Competitors {
		if player.Status == nil || player.Status.TeeTime == "" {
			continue
		}
		t, err := time.Parse(espnTimeLayout, player.Status.TeeTime)
		if err != nil {
			continue
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	return earliest
}

// topPlayers builds leaderboard entries, orders them by position, and keeps
// the top five.
func topPlayers(cs []competitor, build func(competitor) (gamestate.GolfPlayer, bool)) []gamestate.GolfPlayer {
	candidates := make([]gamestate.GolfPlayer, 0, len(cs))
	for _, comp := range cs {
		if p, ok := build(comp); ok {
			candidates = append(candidates, p)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Position < candidates[j].Position
	})
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	return candidates
}

func golfScore(stats []statistic) string {
	if len(stats) > 0 && stats[0].DisplayValue != "" {
		return stats[0].DisplayValue
	}
	return "E"
}

// playerFromCompetitor builds an individual-stroke leaderboard entry. The
// display name is the athlete's last name, skipping generational suffixes.
func playerFromCompetitor(comp competitor) (gamestate.GolfPlayer, bool) {
	if comp.Athlete == nil || comp.Status == nil {
		return gamestate.GolfPlayer{}, false
	}
	fullName := strings.ToUpper(comp.Athlete.DisplayName)

	lastName := fullName
	words := strings.Fields(fullName)
	for i := len(words) - 1; i >= 0; i-- {
		if !suffixNames[words[i]] {
			lastName = words[i]
			break
		}
	}

	position, err := parseUint(comp.Status.Position.ID)
	if err != nil {
		return gamestate.GolfPlayer{}, false
	}
	return gamestate.GolfPlayer{
		Name:        fullName,
		DisplayName: lastName,
		Score:       golfScore(comp.Statistics),
		Position:    uint32(position),
	}, true
}

// playerFromTeamstroke builds a team entry named after the roster's
// truncated last names, "SCHEF/FITZP" style.
func playerFromTeamstroke(comp competitor) (gamestate.GolfPlayer, bool) {
	if comp.Status == nil || len(comp.Roster) == 0 {
		return gamestate.GolfPlayer{}, false
	}
	names := make([]string, 0, len(comp.Roster))
	for _, entry := range comp.Roster {
		last := entry.Athlete.LastName
		if len(last) > 5 {
			last = last[:5]
		}
		names = append(names, last)
	}
	displayName := strings.ToUpper(strings.Join(names, "/"))

	position, err := parseUint(comp.Status.Position.ID)
	if err != nil {
		return gamestate.GolfPlayer{}, false
	}
	return gamestate.GolfPlayer{
		Name:        displayName,
		DisplayName: displayName,
		Score:       golfScore(comp.Statistics),
		Position:    uint32(position),
	}, true
}

// playersFromRawData parses a teamstroke raw-data blob, one leaderboard line
// per row. Line order is the leaderboard order.
func playersFromRawData(raw string) []gamestate.GolfPlayer {
	players := make([]gamestate.GolfPlayer, 0, 5)
	for i, line := range strings.Split(raw, "\n") {
		m := teamstrokeLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		a, b := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if len(a) > 5 {
			a = a[:5]
		}
		if len(b) > 5 {
			b = b[:5]
		}
		displayName := a + "/" + b
		players = append(players, gamestate.GolfPlayer{
			Name:        displayName,
			DisplayName: displayName,
			Score:       m[3],
			Position:    uint32(i),
		})
		if len(players) == 5 {
			break
		}
	}
	return players
}

// shortEventName compacts a tournament name: known names map to fixed short
// forms, everything else just loses filler words.
func shortEventName(raw string) string {
	name := strings.ToUpper(raw)
	if short, ok := eventNameMap[name]; ok {
		return short
	}
	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		if !fillerWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
