// Package gamestate defines the wire-level data contract for live sporting
// event snapshots: teams, score, clock/period, and sport-specific situational
// detail. Producers emit complete Game snapshots; consumers decode them.
//
// The binary encoding is the protobuf wire format, maintained by hand over
// google.golang.org/protobuf/encoding/protowire. Field tags are declared in
// wire.go and documented in gamestate.proto; they are the sole determinant of
// wire identity and must never be reused or renumbered. Unknown fields and
// unknown enum values decode without error, so old consumers can read new
// producer output.
//
// The package carries no validation and no game logic. Semantic consistency
// (for example Sport.SportType matching the active SportData variant) is the
// producer's responsibility.
package gamestate

// SportType identifies the sport an event belongs to. It determines which
// SportData variant a producer attaches to a Game.
type SportType int32

const (
	SportFootball   SportType = 0
	SportHockey     SportType = 1
	SportBasketball SportType = 2
	SportBaseball   SportType = 3
	SportGolf       SportType = 4
)

func (s SportType) String() string {
	switch s {
	case SportFootball:
		return "FOOTBALL"
	case SportHockey:
		return "HOCKEY"
	case SportBasketball:
		return "BASKETBALL"
	case SportBaseball:
		return "BASEBALL"
	case SportGolf:
		return "GOLF"
	default:
		return "UNKNOWN"
	}
}

// Level distinguishes professional from collegiate play.
type Level int32

const (
	LevelProfessional Level = 0
	LevelCollegiate   Level = 1
)

func (l Level) String() string {
	switch l {
	case LevelProfessional:
		return "PROFESSIONAL"
	case LevelCollegiate:
		return "COLLEGIATE"
	default:
		return "UNKNOWN"
	}
}

// Sport identifies the domain of a Game.
type Sport struct {
	SportType SportType `json:"sport_type"`
	Level     Level     `json:"level"`
}

// Color is an RGB triple. Channels are carried as uint32 on the wire; the
// schema does not enforce a 0-255 range, producers in this repository only
// ever emit 8-bit channel values.
type Color struct {
	R uint32 `json:"r"`
	G uint32 `json:"g"`
	B uint32 `json:"b"`
}

// Team describes one side of a game. Two Team values with the same ID denote
// the same team; uniqueness of IDs is owned by the producer.
type Team struct {
	ID             uint64 `json:"id"`
	Location       string `json:"location"`
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	Abbreviation   string `json:"abbreviation"`
	PrimaryColor   *Color `json:"primary_color,omitempty"`
	SecondaryColor *Color `json:"secondary_color,omitempty"`
}

// Status is the lifecycle phase of a game.
type Status int32

const (
	StatusPregame      Status = 0
	StatusActive       Status = 1
	StatusIntermission Status = 2
	StatusEnd          Status = 3
	StatusInvalid      Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusPregame:
		return "PREGAME"
	case StatusActive:
		return "ACTIVE"
	case StatusIntermission:
		return "INTERMISSION"
	case StatusEnd:
		return "END"
	case StatusInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Game is a complete snapshot of one event at a point in time. Every field
// is filled fresh by the producer on each emit; there is no delta encoding.
type Game struct {
	GameID        uint64 `json:"game_id"`
	Sport         *Sport `json:"sport,omitempty"`
	HomeTeam      *Team  `json:"home_team,omitempty"`
	AwayTeam      *Team  `json:"away_team,omitempty"`
	HomeTeamScore uint64 `json:"home_team_score"`
	AwayTeamScore uint64 `json:"away_team_score"`
	Status        Status `json:"status"`
	Period        uint64 `json:"period"`
	Ordinal       string `json:"ordinal"`
	// StartTime is UTC epoch nanoseconds. Signed so pre-epoch and relative
	// times stay representable.
	StartTime int64 `json:"start_time"`
	// SportData holds at most one sport-specific payload. nil means no
	// variant is present (a valid state, e.g. before situational data is
	// known). The active variant should correspond to Sport.SportType; the
	// codec does not check that.
	SportData SportData `json:"sport_data,omitempty"`
}

// SportData is the closed tagged union of sport-specific payloads. Exactly
// the five concrete types in this package implement it.
type SportData interface {
	sportData()
}

// BasketballData carries no extra fields; score, period and status suffice.
type BasketballData struct{}

// BaseballData is the count and base state of a baseball game. Ranges
// (balls 0-3, strikes/outs 0-2) are conventions, not enforced here.
type BaseballData struct {
	Balls       uint32 `json:"balls"`
	Outs        uint32 `json:"outs"`
	Strikes     uint32 `json:"strikes"`
	IsInningTop bool   `json:"is_inning_top"`
	OnFirst     bool   `json:"on_first"`
	OnSecond    bool   `json:"on_second"`
	OnThird     bool   `json:"on_third"`
}

// Possession indicates which side has the ball in a football game.
type Possession int32

const (
	PossessionHome Possession = 0
	PossessionAway Possession = 1
	PossessionNone Possession = 2
)

func (p Possession) String() string {
	switch p {
	case PossessionHome:
		return "HOME"
	case PossessionAway:
		return "AWAY"
	case PossessionNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// FootballData is the situational state of a football game. All clock and
// field-position values are display strings taken from the feed.
type FootballData struct {
	TimeRemaining string     `json:"time_remaining"`
	BallPosition  string     `json:"ball_position"`
	DownString    string     `json:"down_string"`
	Possession    Possession `json:"possession"`
}

// HockeyTeamData is per-side hockey strength state.
type HockeyTeamData struct {
	Powerplay  bool   `json:"powerplay"`
	NumSkaters uint32 `json:"num_skaters"`
}

// HockeyData carries strength state for both sides.
type HockeyData struct {
	HomeTeam *HockeyTeamData `json:"home_team,omitempty"`
	AwayTeam *HockeyTeamData `json:"away_team,omitempty"`
}

// GolfPlayer is one leaderboard entry. Score is a display string ("-4",
// "E", "+2") so the wire format never encodes par-relative arithmetic.
type GolfPlayer struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Score       string `json:"score"`
	Position    uint32 `json:"position"`
}

// GolfData is a tournament leaderboard. Player order is preserved on the
// wire.
type GolfData struct {
	EventName string       `json:"event_name"`
	Players   []GolfPlayer `json:"players"`
}

func (*BasketballData) sportData() {}
func (*BaseballData) sportData()   {}
func (*FootballData) sportData()   {}
func (*HockeyData) sportData()     {}
func (*GolfData) sportData()       {}
