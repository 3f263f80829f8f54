// Package teams holds the embedded professional team registries and the
// color/display-name rules used when a team has to be built from feed data.
//
// Registries are keyed by the upstream feed's team id (NHL statsapi ids for
// hockey, ESPN ids elsewhere). Collegiate sports have no registry; their
// teams are constructed from the scoreboard payload on the fly.
package teams

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

//go:embed data/hockey.json
var hockeyJSON []byte

//go:embed data/baseball.json
var baseballJSON []byte

//go:embed data/basketball.json
var basketballJSON []byte

//go:embed data/football.json
var footballJSON []byte

// registryEntry is the on-disk registry row. Colors are hex strings; the
// secondary is re-checked for contrast at load so a bad data edit can never
// produce an illegible pairing.
type registryEntry struct {
	ID           uint64 `json:"id"`
	Location     string `json:"location"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Primary      string `json:"primary_color"`
	Secondary    string `json:"secondary_color"`
}

var loadOnce sync.Once
var registries map[gamestate.SportType]map[uint64]gamestate.Team

func load() {
	registries = map[gamestate.SportType]map[uint64]gamestate.Team{
		gamestate.SportHockey:     mustParse("hockey", hockeyJSON),
		gamestate.SportBaseball:   mustParse("baseball", baseballJSON),
		gamestate.SportBasketball: mustParse("basketball", basketballJSON),
		gamestate.SportFootball:   mustParse("football", footballJSON),
	}
}

func mustParse(name string, raw []byte) map[uint64]gamestate.Team {
	var entries []registryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		panic(fmt.Sprintf("teams: corrupt embedded registry %s: %v", name, err))
	}
	m := make(map[uint64]gamestate.Team, len(entries))
	for _, e := range entries {
		t, err := Build(e.ID, e.Location, e.Name, e.Abbreviation, e.Primary, e.Secondary)
		if err != nil {
			panic(fmt.Sprintf("teams: bad registry entry %s/%d: %v", name, e.ID, err))
		}
		m[e.ID] = t
	}
	return m
}

// ForSport returns the registry for a sport, or ok=false when the sport has
// none (collegiate play, golf).
func ForSport(s gamestate.Sport) (map[uint64]gamestate.Team, bool) {
	loadOnce.Do(load)
	if s.Level == gamestate.LevelCollegiate {
		return nil, false
	}
	m, ok := registries[s.SportType]
	return m, ok
}

// Lookup finds a registered team by feed id.
func Lookup(s gamestate.Sport, id uint64) (gamestate.Team, bool) {
	m, ok := ForSport(s)
	if !ok {
		return gamestate.Team{}, false
	}
	t, ok := m[id]
	return t, ok
}

// Build assembles a Team from raw feed values, deriving the display name and
// a legible secondary color.
func Build(id uint64, location, name, abbreviation, primaryHex, secondaryHex string) (gamestate.Team, error) {
	primary, err := ParseHexColor(primaryHex)
	if err != nil {
		return gamestate.Team{}, err
	}
	if secondaryHex == "" {
		secondaryHex = "000000"
	}
	secondary, err := SecondaryForPrimary(primaryHex, secondaryHex)
	if err != nil {
		return gamestate.Team{}, err
	}
	return gamestate.Team{
		ID:             id,
		Location:       location,
		Name:           name,
		DisplayName:    ShortDisplayName(name),
		Abbreviation:   abbreviation,
		PrimaryColor:   &primary,
		SecondaryColor: &secondary,
	}, nil
}

// ShortDisplayName compacts long team names for narrow displays. Names of
// eleven characters or fewer pass through untouched.
func ShortDisplayName(raw string) string {
	if len(raw) <= 11 {
		return raw
	}
	words := strings.Split(raw, " ")
	if last := len(words) - 1; last >= 0 && words[last] == "State" {
		words[last] = "St"
	}
	if len(words) > 0 {
		switch words[0] {
		case "North":
			words[0] = "N"
		case "South":
			words[0] = "S"
		case "West":
			words[0] = "W"
		case "East":
			words[0] = "E"
		case "Central":
			words[0] = "C"
		}
	}
	return strings.Join(words, " ")
}
