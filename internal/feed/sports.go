package feed

import (
	"fmt"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// Sport ids are the stable string names clients use in URLs and requests.
var sportIDs = []struct {
	id    string
	sport gamestate.Sport
}{
	{"hockey", gamestate.Sport{SportType: gamestate.SportHockey, Level: gamestate.LevelProfessional}},
	{"baseball", gamestate.Sport{SportType: gamestate.SportBaseball, Level: gamestate.LevelProfessional}},
	{"golf", gamestate.Sport{SportType: gamestate.SportGolf, Level: gamestate.LevelProfessional}},
	{"basketball", gamestate.Sport{SportType: gamestate.SportBasketball, Level: gamestate.LevelProfessional}},
	{"college-basketball", gamestate.Sport{SportType: gamestate.SportBasketball, Level: gamestate.LevelCollegiate}},
	{"football", gamestate.Sport{SportType: gamestate.SportFootball, Level: gamestate.LevelProfessional}},
	{"college-football", gamestate.Sport{SportType: gamestate.SportFootball, Level: gamestate.LevelCollegiate}},
}

// AllSports lists every sport the feed serves, in a stable order.
func AllSports() []gamestate.Sport {
	out := make([]gamestate.Sport, len(sportIDs))
	for i, e := range sportIDs {
		out[i] = e.sport
	}
	return out
}

// AllSportIDs lists the string ids for every served sport.
func AllSportIDs() []string {
	out := make([]string, len(sportIDs))
	for i, e := range sportIDs {
		out[i] = e.id
	}
	return out
}

// ParseSport resolves a string id like "college-basketball".
func ParseSport(id string) (gamestate.Sport, error) {
	for _, e := range sportIDs {
		if e.id == id {
			return e.sport, nil
		}
	}
	return gamestate.Sport{}, fmt.Errorf("unknown sport %q", id)
}

// SportID formats a sport as its string id. Sports outside the served set
// come back empty.
func SportID(s gamestate.Sport) string {
	for _, e := range sportIDs {
		if e.sport == s {
			return e.id
		}
	}
	return ""
}
