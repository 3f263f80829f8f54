package gamestate

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// UnmarshalBinary decodes a snapshot encoded by MarshalBinary or any other
// producer of the gamestate.proto contract. Absent fields keep their zero
// values, unknown fields are skipped, unknown enum values are retained as
// their raw numerics, and a later SportData variant replaces an earlier one
// (standard oneof last-wins). Malformed bytes fail the whole decode; the
// receiver is left partially filled and must be discarded on error.
func (g *Game) UnmarshalBinary(data []byte) error {
	*g = Game{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode game: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == gameTagGameID && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "game_id")
			if err != nil {
				return err
			}
			g.GameID = v
			data = data[n:]
		case num == gameTagSport && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "sport")
			if err != nil {
				return err
			}
			g.Sport = new(Sport)
			if err := unmarshalSport(msg, g.Sport); err != nil {
				return err
			}
			data = data[n:]
		case num == gameTagHomeTeam && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "home_team")
			if err != nil {
				return err
			}
			g.HomeTeam = new(Team)
			if err := unmarshalTeam(msg, g.HomeTeam); err != nil {
				return err
			}
			data = data[n:]
		case num == gameTagAwayTeam && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "away_team")
			if err != nil {
				return err
			}
			g.AwayTeam = new(Team)
			if err := unmarshalTeam(msg, g.AwayTeam); err != nil {
				return err
			}
			data = data[n:]
		case num == gameTagHomeTeamScore && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "home_team_score")
			if err != nil {
				return err
			}
			g.HomeTeamScore = v
			data = data[n:]
		case num == gameTagAwayTeamScore && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "away_team_score")
			if err != nil {
				return err
			}
			g.AwayTeamScore = v
			data = data[n:]
		case num == gameTagStatus && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "status")
			if err != nil {
				return err
			}
			g.Status = Status(int32(v))
			data = data[n:]
		case num == gameTagPeriod && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "period")
			if err != nil {
				return err
			}
			g.Period = v
			data = data[n:]
		case num == gameTagOrdinal && typ == protowire.BytesType:
			s, n, err := consumeString(data, "ordinal")
			if err != nil {
				return err
			}
			g.Ordinal = s
			data = data[n:]
		case num == gameTagStartTime && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "start_time")
			if err != nil {
				return err
			}
			g.StartTime = int64(v)
			data = data[n:]
		case num == gameTagBasketball && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "basketball")
			if err != nil {
				return err
			}
			if err := skipUnknown(msg, "basketball"); err != nil {
				return err
			}
			g.SportData = &BasketballData{}
			data = data[n:]
		case num == gameTagBaseball && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "baseball")
			if err != nil {
				return err
			}
			d := new(BaseballData)
			if err := unmarshalBaseball(msg, d); err != nil {
				return err
			}
			g.SportData = d
			data = data[n:]
		case num == gameTagFootball && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "football")
			if err != nil {
				return err
			}
			d := new(FootballData)
			if err := unmarshalFootball(msg, d); err != nil {
				return err
			}
			g.SportData = d
			data = data[n:]
		case num == gameTagHockey && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "hockey")
			if err != nil {
				return err
			}
			d := new(HockeyData)
			if err := unmarshalHockey(msg, d); err != nil {
				return err
			}
			g.SportData = d
			data = data[n:]
		case num == gameTagGolf && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "golf")
			if err != nil {
				return err
			}
			d := new(GolfData)
			if err := unmarshalGolf(msg, d); err != nil {
				return err
			}
			g.SportData = d
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode game field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalSport(data []byte, s *Sport) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode sport: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == sportTagSportType && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "sport_type")
			if err != nil {
				return err
			}
			s.SportType = SportType(int32(v))
			data = data[n:]
		case num == sportTagLevel && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "level")
			if err != nil {
				return err
			}
			s.Level = Level(int32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode sport field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalColor(data []byte, c *Color) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode color: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == colorTagR && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "r")
			if err != nil {
				return err
			}
			c.R = uint32(v)
			data = data[n:]
		case num == colorTagG && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "g")
			if err != nil {
				return err
			}
			c.G = uint32(v)
			data = data[n:]
		case num == colorTagB && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "b")
			if err != nil {
				return err
			}
			c.B = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode color field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalTeam(data []byte, t *Team) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode team: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == teamTagID && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "id")
			if err != nil {
				return err
			}
			t.ID = v
			data = data[n:]
		case num == teamTagLocation && typ == protowire.BytesType:
			s, n, err := consumeString(data, "location")
			if err != nil {
				return err
			}
			t.Location = s
			data = data[n:]
		case num == teamTagName && typ == protowire.BytesType:
			s, n, err := consumeString(data, "name")
			if err != nil {
				return err
			}
			t.Name = s
			data = data[n:]
		case num == teamTagDisplayName && typ == protowire.BytesType:
			s, n, err := consumeString(data, "display_name")
			if err != nil {
				return err
			}
			t.DisplayName = s
			data = data[n:]
		case num == teamTagAbbreviation && typ == protowire.BytesType:
			s, n, err := consumeString(data, "abbreviation")
			if err != nil {
				return err
			}
			t.Abbreviation = s
			data = data[n:]
		case num == teamTagPrimaryColor && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "primary_color")
			if err != nil {
				return err
			}
			t.PrimaryColor = new(Color)
			if err := unmarshalColor(msg, t.PrimaryColor); err != nil {
				return err
			}
			data = data[n:]
		case num == teamTagSecondaryColor && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "secondary_color")
			if err != nil {
				return err
			}
			t.SecondaryColor = new(Color)
			if err := unmarshalColor(msg, t.SecondaryColor); err != nil {
				return err
			}
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode team field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalBaseball(data []byte, d *BaseballData) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode baseball: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == baseballTagBalls && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "balls")
			if err != nil {
				return err
			}
			d.Balls = uint32(v)
			data = data[n:]
		case num == baseballTagOuts && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "outs")
			if err != nil {
				return err
			}
			d.Outs = uint32(v)
			data = data[n:]
		case num == baseballTagStrikes && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "strikes")
			if err != nil {
				return err
			}
			d.Strikes = uint32(v)
			data = data[n:]
		case num == baseballTagIsInningTop && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "is_inning_top")
			if err != nil {
				return err
			}
			d.IsInningTop = v != 0
			data = data[n:]
		case num == baseballTagOnFirst && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "on_first")
			if err != nil {
				return err
			}
			d.OnFirst = v != 0
			data = data[n:]
		case num == baseballTagOnSecond && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "on_second")
			if err != nil {
				return err
			}
			d.OnSecond = v != 0
			data = data[n:]
		case num == baseballTagOnThird && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "on_third")
			if err != nil {
				return err
			}
			d.OnThird = v != 0
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode baseball field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalFootball(data []byte, d *FootballData) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode football: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == footballTagTimeRemaining && typ == protowire.BytesType:
			s, n, err := consumeString(data, "time_remaining")
			if err != nil {
				return err
			}
			d.TimeRemaining = s
			data = data[n:]
		case num == footballTagBallPosition && typ == protowire.BytesType:
			s, n, err := consumeString(data, "ball_position")
			if err != nil {
				return err
			}
			d.BallPosition = s
			data = data[n:]
		case num == footballTagDownString && typ == protowire.BytesType:
			s, n, err := consumeString(data, "down_string")
			if err != nil {
				return err
			}
			d.DownString = s
			data = data[n:]
		case num == footballTagPossession && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "possession")
			if err != nil {
				return err
			}
			d.Possession = Possession(int32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode football field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalHockey(data []byte, d *HockeyData) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode hockey: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == hockeyTagHomeTeam && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "home_team")
			if err != nil {
				return err
			}
			d.HomeTeam = new(HockeyTeamData)
			if err := unmarshalHockeyTeam(msg, d.HomeTeam); err != nil {
				return err
			}
			data = data[n:]
		case num == hockeyTagAwayTeam && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "away_team")
			if err != nil {
				return err
			}
			d.AwayTeam = new(HockeyTeamData)
			if err := unmarshalHockeyTeam(msg, d.AwayTeam); err != nil {
				return err
			}
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode hockey field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalHockeyTeam(data []byte, d *HockeyTeamData) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode hockey team: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == hockeyTeamTagPowerplay && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "powerplay")
			if err != nil {
				return err
			}
			d.Powerplay = v != 0
			data = data[n:]
		case num == hockeyTeamTagNumSkaters && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "num_skaters")
			if err != nil {
				return err
			}
			d.NumSkaters = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode hockey team field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalGolf(data []byte, d *GolfData) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode golf: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == golfTagEventName && typ == protowire.BytesType:
			s, n, err := consumeString(data, "event_name")
			if err != nil {
				return err
			}
			d.EventName = s
			data = data[n:]
		case num == golfTagPlayers && typ == protowire.BytesType:
			msg, n, err := consumeBytes(data, "players")
			if err != nil {
				return err
			}
			var p GolfPlayer
			if err := unmarshalGolfPlayer(msg, &p); err != nil {
				return err
			}
			d.Players = append(d.Players, p)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode golf field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalGolfPlayer(data []byte, p *GolfPlayer) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode golf player: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == golfPlayerTagName && typ == protowire.BytesType:
			s, n, err := consumeString(data, "name")
			if err != nil {
				return err
			}
			p.Name = s
			data = data[n:]
		case num == golfPlayerTagDisplayName && typ == protowire.BytesType:
			s, n, err := consumeString(data, "display_name")
			if err != nil {
				return err
			}
			p.DisplayName = s
			data = data[n:]
		case num == golfPlayerTagScore && typ == protowire.BytesType:
			s, n, err := consumeString(data, "score")
			if err != nil {
				return err
			}
			p.Score = s
			data = data[n:]
		case num == golfPlayerTagPosition && typ == protowire.VarintType:
			v, n, err := consumeVarint(data, "position")
			if err != nil {
				return err
			}
			p.Position = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("gamestate: decode golf player field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

// skipUnknown walks a submessage, validating structure while discarding
// every field. Used for payloads that currently define no fields.
func skipUnknown(data []byte, what string) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode %s: %w", what, protowire.ParseError(n))
		}
		data = data[n:]
		n = protowire.ConsumeFieldValue(num, typ, data)
		if n < 0 {
			return fmt.Errorf("gamestate: decode %s field %d: %w", what, num, protowire.ParseError(n))
		}
		data = data[n:]
	}
	return nil
}

func consumeVarint(data []byte, field string) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, 0, fmt.Errorf("gamestate: decode %s: %w", field, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeBytes(data []byte, field string) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, fmt.Errorf("gamestate: decode %s: %w", field, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeString(data []byte, field string) (string, int, error) {
	v, n := protowire.ConsumeString(data)
	if n < 0 {
		return "", 0, fmt.Errorf("gamestate: decode %s: %w", field, protowire.ParseError(n))
	}
	return v, n, nil
}
