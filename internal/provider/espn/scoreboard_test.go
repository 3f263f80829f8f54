package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 600, nil)
}

func TestStatusFromESPN(t *testing.T) {
	tests := []struct {
		name string
		want gamestate.Status
	}{
		{"STATUS_IN_PROGRESS", gamestate.StatusActive},
		{"STATUS_FINAL", gamestate.StatusEnd},
		{"STATUS_PLAY_COMPLETE", gamestate.StatusEnd},
		{"STATUS_SCHEDULED", gamestate.StatusPregame},
		{"STATUS_RAIN_DELAY", gamestate.StatusPregame},
		{"STATUS_HALFTIME", gamestate.StatusIntermission},
		{"STATUS_END_PERIOD", gamestate.StatusIntermission},
		{"STATUS_POSTPONED", gamestate.StatusInvalid},
		{"STATUS_SOMETHING_NEW", gamestate.StatusInvalid},
	}
	for _, tt := range tests {
		if got := statusFromESPN(tt.name); got != tt.want {
			t.Errorf("statusFromESPN(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{1, "1st"}, {2, "2nd"}, {3, "3rd"}, {4, "4th"},
		{11, "11th"}, {12, "12th"}, {13, "13th"},
		{21, "21st"}, {22, "22nd"}, {23, "23rd"}, {100, "100th"},
	}
	for _, tt := range tests {
		if got := ordinal(tt.n); got != tt.want {
			t.Errorf("ordinal(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func scoreboardJSON(date, statusName string, extra string) string {
	return fmt.Sprintf(`{
		"events": [{
			"shortName": "NYY @ BOS",
			"competitions": [{
				"id": "401581234",
				"date": %q,
				"status": {"period": 7, "displayClock": "0:00", "type": {"name": %q, "shortDetail": "Top 7th"}},
				"competitors": [
					{"homeAway": "home", "score": "3", "team": {"id": "2", "location": "Boston", "name": "Red Sox", "abbreviation": "BOS", "color": "bd3039", "alternateColor": "0c2340"}},
					{"homeAway": "away", "score": "5", "team": {"id": "10", "location": "New York", "name": "Yankees", "abbreviation": "NYY", "color": "132448", "alternateColor": "c4ced4"}}
				]%s
			}]
		}]
	}`, date, statusName, extra)
}

func TestScoreboardBaseball(t *testing.T) {
	date := time.Now().UTC().Format(espnTimeLayout)
	situation := `,
		"situation": {"balls": 2, "strikes": 1, "outs": 2, "onFirst": false, "onSecond": true, "onThird": false}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/baseball/mlb/scoreboard" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, scoreboardJSON(date, "STATUS_IN_PROGRESS", situation))
	})

	sport := gamestate.Sport{SportType: gamestate.SportBaseball, Level: gamestate.LevelProfessional}
	games, err := c.Scoreboard(context.Background(), sport)
	if err != nil {
		t.Fatalf("Scoreboard: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}

	g := games[0]
	if g.GameID != 401581234 {
		t.Errorf("GameID = %d", g.GameID)
	}
	if g.HomeTeamScore != 3 || g.AwayTeamScore != 5 {
		t.Errorf("score = %d-%d, want 3-5", g.HomeTeamScore, g.AwayTeamScore)
	}
	if g.Status != gamestate.StatusActive {
		t.Errorf("Status = %v", g.Status)
	}
	if g.Ordinal != "7th" {
		t.Errorf("Ordinal = %q", g.Ordinal)
	}
	if g.HomeTeam.Name != "Red Sox" || g.AwayTeam.Name != "Yankees" {
		t.Errorf("teams = %s vs %s", g.HomeTeam.Name, g.AwayTeam.Name)
	}

	bb, ok := g.SportData.(*gamestate.BaseballData)
	if !ok {
		t.Fatalf("SportData = %T, want *BaseballData", g.SportData)
	}
	if bb.Balls != 2 || bb.Strikes != 1 || bb.Outs != 2 {
		t.Errorf("count = %d-%d, %d outs", bb.Balls, bb.Strikes, bb.Outs)
	}
	if bb.OnFirst || !bb.OnSecond || bb.OnThird {
		t.Errorf("bases = %v %v %v, want runner on second only", bb.OnFirst, bb.OnSecond, bb.OnThird)
	}
	if !bb.IsInningTop {
		t.Error("IsInningTop should follow the Top shortDetail")
	}
}

func TestScoreboardSkipsPostponed(t *testing.T) {
	date := time.Now().UTC().Format(espnTimeLayout)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scoreboardJSON(date, "STATUS_POSTPONED", ""))
	})
	sport := gamestate.Sport{SportType: gamestate.SportBaseball, Level: gamestate.LevelProfessional}
	games, err := c.Scoreboard(context.Background(), sport)
	if err != nil {
		t.Fatalf("Scoreboard: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("got %d games, want postponed game skipped", len(games))
	}
}

func TestScoreboardSkipsStale(t *testing.T) {
	date := time.Now().UTC().Add(-48 * time.Hour).Format(espnTimeLayout)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scoreboardJSON(date, "STATUS_FINAL", ""))
	})
	sport := gamestate.Sport{SportType: gamestate.SportBaseball, Level: gamestate.LevelProfessional}
	games, err := c.Scoreboard(context.Background(), sport)
	if err != nil {
		t.Fatalf("Scoreboard: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("got %d games, want two-day-old game filtered", len(games))
	}
}

func TestFootballSituation(t *testing.T) {
	home := gamestate.Team{ID: 12}
	away := gamestate.Team{ID: 21}
	g := gamestate.Game{
		Status:   gamestate.StatusActive,
		HomeTeam: &home,
		AwayTeam: &away,
	}
	comp := competition{
		Status: statusInfo{DisplayClock: "8:52"},
		Situation: &situation{
			PossessionText:        "KC 35",
			ShortDownDistanceText: "3rd & 4",
			Possession:            "12",
		},
	}
	d := footballData(comp, &g)
	if d.TimeRemaining != "8:52" {
		t.Errorf("TimeRemaining = %q", d.TimeRemaining)
	}
	if d.DownString != "3rd + 4" {
		t.Errorf("DownString = %q, want ampersand replaced", d.DownString)
	}
	if d.Possession != gamestate.PossessionHome {
		t.Errorf("Possession = %v, want home", d.Possession)
	}

	// Clock only shown while the game runs.
	g.Status = gamestate.StatusPregame
	if d := footballData(comp, &g); d.TimeRemaining != "" {
		t.Errorf("pregame TimeRemaining = %q, want empty", d.TimeRemaining)
	}

	// No situation payload means no possession.
	comp.Situation = nil
	if d := footballData(comp, &g); d.Possession != gamestate.PossessionNone {
		t.Errorf("Possession = %v, want none", d.Possession)
	}
}

func TestScoreboardUnregisteredTeamFallback(t *testing.T) {
	date := time.Now().UTC().Format(espnTimeLayout)
	body := fmt.Sprintf(`{
		"events": [{
			"shortName": "UGA @ MICH",
			"competitions": [{
				"id": "401520999",
				"date": %q,
				"status": {"period": 2, "displayClock": "3:10", "type": {"name": "STATUS_IN_PROGRESS", "shortDetail": "2nd"}},
				"competitors": [
					{"homeAway": "home", "score": "14", "team": {"id": 130, "location": "Michigan", "name": "Wolverines", "abbreviation": "MICH", "color": "00274c", "alternateColor": "ffcb05"}},
					{"homeAway": "away", "score": "10", "team": {"id": 61, "location": "Georgia", "name": "Bulldogs", "abbreviation": "UGA", "color": "ba0c2f", "alternateColor": "000000"}}
				]
			}]
		}]
	}`, date)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	sport := gamestate.Sport{SportType: gamestate.SportFootball, Level: gamestate.LevelCollegiate}
	games, err := c.Scoreboard(context.Background(), sport)
	if err != nil {
		t.Fatalf("Scoreboard: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	g := games[0]
	if g.HomeTeam.Name != "Wolverines" || g.HomeTeam.Abbreviation != "MICH" {
		t.Errorf("home team = %+v", g.HomeTeam)
	}
	if g.HomeTeam.PrimaryColor == nil || g.HomeTeam.SecondaryColor == nil {
		t.Fatal("fallback team missing colors")
	}
	if _, ok := g.SportData.(*gamestate.FootballData); !ok {
		t.Errorf("SportData = %T, want *FootballData", g.SportData)
	}
}

func TestSplitCompetitorsOrderFallback(t *testing.T) {
	cs := []competitor{
		{Score: "7", Team: teamInfo{Name: "First"}},
		{Score: "3", Team: teamInfo{Name: "Second"}},
	}
	home, away, err := splitCompetitors(cs)
	if err != nil {
		t.Fatalf("splitCompetitors: %v", err)
	}
	if home.Team.Name != "First" || away.Team.Name != "Second" {
		t.Errorf("order fallback got home=%s away=%s", home.Team.Name, away.Team.Name)
	}

	if _, _, err := splitCompetitors(cs[:1]); err == nil {
		t.Error("expected error for one competitor")
	}
}
