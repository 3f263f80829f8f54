package espn

import (
	"testing"
	"time"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

func golfClient(t *testing.T) *Client {
	t.Helper()
	return NewClient("http://unused.invalid", 600, nil)
}

func golfEvent(name, status, date string, competitors []competitor) event {
	return event{
		ShortName: name,
		Competitions: []competition{{
			ID:          "401580330",
			Date:        date,
			Status:      statusInfo{Period: 3, Type: statusType{Name: status}},
			Competitors: competitors,
		}},
	}
}

func strokePlayer(name, last, score, position string) competitor {
	return competitor{
		Athlete:    &athlete{DisplayName: name, LastName: last},
		Statistics: []statistic{{DisplayValue: score}},
		Status:     &golfPosStatus{Position: golfPosition{ID: position}},
	}
}

func TestProcessGolfLeaderboard(t *testing.T) {
	now := time.Date(2026, 4, 11, 20, 0, 0, 0, time.UTC)
	date := now.Add(-2 * time.Hour).Format(espnTimeLayout)

	ev := golfEvent("Masters Tournament", "STATUS_IN_PROGRESS", date, []competitor{
		strokePlayer("Scottie Scheffler", "Scheffler", "-7", "1"),
		strokePlayer("Rory McIlroy", "McIlroy", "-5", "2"),
		strokePlayer("Collin Morikawa", "Morikawa", "-4", "3"),
		strokePlayer("Ludvig Aberg", "Aberg", "-3", "4"),
		strokePlayer("Justin Thomas Jr.", "Thomas", "-2", "5"),
		strokePlayer("Max Homa", "Homa", "-1", "6"),
	})

	games, err := golfClient(t).processGolf([]event{ev}, now)
	if err != nil {
		t.Fatalf("processGolf: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}

	g := games[0]
	if g.Status != gamestate.StatusActive {
		t.Errorf("Status = %v", g.Status)
	}
	if g.Ordinal != "3" {
		t.Errorf("Ordinal = %q, want round number", g.Ordinal)
	}

	golf, ok := g.SportData.(*gamestate.GolfData)
	if !ok {
		t.Fatalf("SportData = %T, want *GolfData", g.SportData)
	}
	if golf.EventName != "MASTERS" {
		t.Errorf("EventName = %q", golf.EventName)
	}
	if len(golf.Players) != 5 {
		t.Fatalf("got %d players, want top five", len(golf.Players))
	}
	lead := golf.Players[0]
	if lead.DisplayName != "SCHEFFLER" || lead.Score != "-7" || lead.Position != 1 {
		t.Errorf("leader = %+v", lead)
	}
	// Generational suffix is not a last name.
	if golf.Players[4].DisplayName != "THOMAS" {
		t.Errorf("suffixed player display = %q", golf.Players[4].DisplayName)
	}
}

func TestProcessGolfFutureTeeTimeEndsDay(t *testing.T) {
	now := time.Date(2026, 4, 11, 23, 0, 0, 0, time.UTC)
	teeTomorrow := now.Add(10 * time.Hour).Format(espnTimeLayout)

	p := strokePlayer("Scottie Scheffler", "Scheffler", "-7", "1")
	p.Status.TeeTime = teeTomorrow

	ev := golfEvent("Masters Tournament", "STATUS_IN_PROGRESS", teeTomorrow, []competitor{p})
	games, err := golfClient(t).processGolf([]event{ev}, now)
	if err != nil {
		t.Fatalf("processGolf: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	if games[0].Status != gamestate.StatusEnd {
		t.Errorf("Status = %v, want END when play resumes tomorrow", games[0].Status)
	}
}

func TestProcessGolfSkipsStale(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)
	lastWeek := now.Add(-7 * 24 * time.Hour).Format(espnTimeLayout)

	ev := golfEvent("Masters Tournament", "STATUS_SCHEDULED", lastWeek, []competitor{
		strokePlayer("Scottie Scheffler", "Scheffler", "-7", "1"),
	})
	games, err := golfClient(t).processGolf([]event{ev}, now)
	if err != nil {
		t.Fatalf("processGolf: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("got %d games, want stale event skipped", len(games))
	}
}

func TestPlayersFromRawData(t *testing.T) {
	raw := "1 -12 Scheffler/Fitzpatrick -12\n" +
		"2 -10 McIlroy/Lowry -10\n" +
		"garbage line\n" +
		"3 -8 Thomas/Spieth -8\n"
	players := playersFromRawData(raw)
	if len(players) != 3 {
		t.Fatalf("got %d players, want 3", len(players))
	}
	if players[0].DisplayName != "Schef/Fitzp" {
		t.Errorf("first pair = %q", players[0].DisplayName)
	}
	if players[0].Score != "-12" {
		t.Errorf("first score = %q", players[0].Score)
	}
	if players[1].Position >= players[2].Position {
		t.Error("raw data order should be preserved as position")
	}
}

func TestPlayerFromTeamstroke(t *testing.T) {
	comp := competitor{
		Roster: []rosterEntry{
			{Athlete: athlete{LastName: "Scheffler"}},
			{Athlete: athlete{LastName: "Fitzpatrick"}},
		},
		Statistics: []statistic{{DisplayValue: "-9"}},
		Status:     &golfPosStatus{Position: golfPosition{ID: "2"}},
	}
	p, ok := playerFromTeamstroke(comp)
	if !ok {
		t.Fatal("playerFromTeamstroke rejected valid competitor")
	}
	if p.DisplayName != "SCHEF/FITZP" {
		t.Errorf("DisplayName = %q", p.DisplayName)
	}
	if p.Score != "-9" || p.Position != 2 {
		t.Errorf("player = %+v", p)
	}
}

func TestShortEventName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Farmers Insurance Open", "FARMERS OPEN"},
		{"Waste Management Phoenix Open", "WM PHOENIX"},
		{"Masters Tournament", "MASTERS"},
		{"The Genesis Invitational", "THE GENESIS"},
		{"RBC Heritage", "RBC HERITAGE"},
	}
	for _, tt := range tests {
		if got := shortEventName(tt.in); got != tt.want {
			t.Errorf("shortEventName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGolfScoreDefault(t *testing.T) {
	if got := golfScore(nil); got != "E" {
		t.Errorf("golfScore(nil) = %q, want E", got)
	}
	if got := golfScore([]statistic{{DisplayValue: "+2"}}); got != "+2" {
		t.Errorf("golfScore = %q, want +2", got)
	}
}
