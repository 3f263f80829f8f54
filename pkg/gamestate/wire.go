package gamestate

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Field tags. These numbers are the wire contract; renumbering or reusing
// one breaks every deployed consumer. Keep in sync with gamestate.proto.
const (
	sportTagSportType = 1
	sportTagLevel     = 2

	colorTagR = 1
	colorTagG = 2
	colorTagB = 3

	teamTagID             = 1
	teamTagLocation       = 2
	teamTagName           = 3
	teamTagDisplayName    = 4
	teamTagAbbreviation   = 5
	teamTagPrimaryColor   = 6
	teamTagSecondaryColor = 7

	gameTagGameID        = 1
	gameTagSport         = 2
	gameTagHomeTeam      = 3
	gameTagAwayTeam      = 4
	gameTagHomeTeamScore = 5
	gameTagAwayTeamScore = 6
	gameTagStatus        = 7
	gameTagPeriod        = 8
	gameTagOrdinal       = 9
	gameTagStartTime     = 10
	gameTagBasketball    = 11
	gameTagBaseball      = 12
	gameTagFootball      = 13
	gameTagHockey        = 14
	gameTagGolf          = 15

	baseballTagBalls       = 1
	baseballTagOuts        = 2
	baseballTagStrikes     = 3
	baseballTagIsInningTop = 4
	baseballTagOnFirst     = 5
	baseballTagOnSecond    = 6
	baseballTagOnThird     = 7

	footballTagTimeRemaining = 1
	footballTagBallPosition  = 2
	footballTagDownString    = 3
	footballTagPossession    = 4

	hockeyTagHomeTeam = 1
	hockeyTagAwayTeam = 2

	hockeyTeamTagPowerplay  = 1
	hockeyTeamTagNumSkaters = 2

	golfTagEventName = 1
	golfTagPlayers   = 2

	golfPlayerTagName        = 1
	golfPlayerTagDisplayName = 2
	golfPlayerTagScore       = 3
	golfPlayerTagPosition    = 4
)

// MarshalBinary encodes the snapshot using the protobuf wire format with
// proto3 semantics: zero-valued scalars and nil messages are omitted, and at
// most one SportData variant is emitted. It never fails; the error return
// satisfies encoding.BinaryMarshaler.
func (g *Game) MarshalBinary() ([]byte, error) {
	return appendGame(nil, g), nil
}

func appendGame(b []byte, g *Game) []byte {
	b = appendUint(b, gameTagGameID, g.GameID)
	if g.Sport != nil {
		b = appendSubmessage(b, gameTagSport, appendSport(nil, g.Sport))
	}
	if g.HomeTeam != nil {
		b = appendSubmessage(b, gameTagHomeTeam, appendTeam(nil, g.HomeTeam))
	}
	if g.AwayTeam != nil {
		b = appendSubmessage(b, gameTagAwayTeam, appendTeam(nil, g.AwayTeam))
	}
	b = appendUint(b, gameTagHomeTeamScore, g.HomeTeamScore)
	b = appendUint(b, gameTagAwayTeamScore, g.AwayTeamScore)
	b = appendUint(b, gameTagStatus, uint64(uint32(g.Status)))
	b = appendUint(b, gameTagPeriod, g.Period)
	b = appendString(b, gameTagOrdinal, g.Ordinal)
	b = appendUint(b, gameTagStartTime, uint64(g.StartTime))

	switch d := g.SportData.(type) {
	case *BasketballData:
		b = appendSubmessage(b, gameTagBasketball, nil)
	case *BaseballData:
		b = appendSubmessage(b, gameTagBaseball, appendBaseball(nil, d))
	case *FootballData:
		b = appendSubmessage(b, gameTagFootball, appendFootball(nil, d))
	case *HockeyData:
		b = appendSubmessage(b, gameTagHockey, appendHockey(nil, d))
	case *GolfData:
		b = appendSubmessage(b, gameTagGolf, appendGolf(nil, d))
	case nil:
		// No variant present; valid, nothing on the wire.
	}
	return b
}

func appendSport(b []byte, s *Sport) []byte {
	b = appendUint(b, sportTagSportType, uint64(uint32(s.SportType)))
	b = appendUint(b, sportTagLevel, uint64(uint32(s.Level)))
	return b
}

func appendColor(b []byte, c *Color) []byte {
	b = appendUint(b, colorTagR, uint64(c.R))
	b = appendUint(b, colorTagG, uint64(c.G))
	b = appendUint(b, colorTagB, uint64(c.B))
	return b
}

func appendTeam(b []byte, t *Team) []byte {
	b = appendUint(b, teamTagID, t.ID)
	b = appendString(b, teamTagLocation, t.Location)
	b = appendString(b, teamTagName, t.Name)
	b = appendString(b, teamTagDisplayName, t.DisplayName)
	b = appendString(b, teamTagAbbreviation, t.Abbreviation)
	if t.PrimaryColor != nil {
		b = appendSubmessage(b, teamTagPrimaryColor, appendColor(nil, t.PrimaryColor))
	}
	if t.SecondaryColor != nil {
		b = appendSubmessage(b, teamTagSecondaryColor, appendColor(nil, t.SecondaryColor))
	}
	return b
}

func appendBaseball(b []byte, d *BaseballData) []byte {
	b = appendUint(b, baseballTagBalls, uint64(d.Balls))
	b = appendUint(b, baseballTagOuts, uint64(d.Outs))
	b = appendUint(b, baseballTagStrikes, uint64(d.Strikes))
	b = appendBool(b, baseballTagIsInningTop, d.IsInningTop)
	b = appendBool(b, baseballTagOnFirst, d.OnFirst)
	b = appendBool(b, baseballTagOnSecond, d.OnSecond)
	b = appendBool(b, baseballTagOnThird, d.OnThird)
	return b
}

func appendFootball(b []byte, d *FootballData) []byte {
	b = appendString(b, footballTagTimeRemaining, d.TimeRemaining)
	b = appendString(b, footballTagBallPosition, d.BallPosition)
	b = appendString(b, footballTagDownString, d.DownString)
	b = appendUint(b, footballTagPossession, uint64(uint32(d.Possession)))
	return b
}

func appendHockey(b []byte, d *HockeyData) []byte {
	if d.HomeTeam != nil {
		b = appendSubmessage(b, hockeyTagHomeTeam, appendHockeyTeam(nil, d.HomeTeam))
	}
	if d.AwayTeam != nil {
		b = appendSubmessage(b, hockeyTagAwayTeam, appendHockeyTeam(nil, d.AwayTeam))
	}
	return b
}

func appendHockeyTeam(b []byte, d *HockeyTeamData) []byte {
	b = appendBool(b, hockeyTeamTagPowerplay, d.Powerplay)
	b = appendUint(b, hockeyTeamTagNumSkaters, uint64(d.NumSkaters))
	return b
}

func appendGolf(b []byte, d *GolfData) []byte {
	b = appendString(b, golfTagEventName, d.EventName)
	for i := range d.Players {
		b = appendSubmessage(b, golfTagPlayers, appendGolfPlayer(nil, &d.Players[i]))
	}
	return b
}

func appendGolfPlayer(b []byte, p *GolfPlayer) []byte {
	b = appendString(b, golfPlayerTagName, p.Name)
	b = appendString(b, golfPlayerTagDisplayName, p.DisplayName)
	b = appendString(b, golfPlayerTagScore, p.Score)
	b = appendUint(b, golfPlayerTagPosition, uint64(p.Position))
	return b
}

// appendUint emits a varint field, skipping the proto3 zero value.
func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendSubmessage emits a length-delimited field even when the payload is
// empty: message presence is meaningful (BasketballData, empty Color).
func appendSubmessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}
