package gamestate

import (
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func roundTrip(t *testing.T, in *Game) *Game {
	t.Helper()
	b, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	out := new(Game)
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	return out
}

func TestRoundTrip_FullGame(t *testing.T) {
	in := &Game{
		GameID: 401547,
		Sport:  &Sport{SportType: SportHockey, Level: LevelProfessional},
		HomeTeam: &Team{
			ID:             6,
			Location:       "Boston",
			Name:           "Bruins",
			DisplayName:    "Bruins",
			Abbreviation:   "BOS",
			PrimaryColor:   &Color{R: 252, G: 181, B: 20},
			SecondaryColor: &Color{R: 0, G: 0, B: 0},
		},
		AwayTeam: &Team{
			ID:           8,
			Location:     "Montreal",
			Name:         "Canadiens",
			DisplayName:  "Canadiens",
			Abbreviation: "MTL",
			PrimaryColor: &Color{R: 175, G: 30, B: 45},
		},
		HomeTeamScore: 3,
		AwayTeamScore: 2,
		Status:        StatusActive,
		Period:        2,
		Ordinal:       "2nd",
		StartTime:     1700000000000000000,
		SportData: &HockeyData{
			HomeTeam: &HockeyTeamData{Powerplay: true, NumSkaters: 5},
			AwayTeam: &HockeyTeamData{Powerplay: false, NumSkaters: 4},
		},
	}

	out := roundTrip(t, in)
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch\n in: %+v\nout: %+v", in, out)
	}
}

func TestRoundTrip_NegativeStartTime(t *testing.T) {
	in := &Game{GameID: 1, StartTime: -100}
	out := roundTrip(t, in)
	if out.StartTime != -100 {
		t.Errorf("StartTime = %d, want -100", out.StartTime)
	}
}

func TestRoundTrip_BasketballPregame(t *testing.T) {
	in := &Game{
		GameID:        42,
		Sport:         &Sport{SportType: SportBasketball, Level: LevelProfessional},
		Status:        StatusPregame,
		HomeTeamScore: 0,
		AwayTeamScore: 0,
		SportData:     &BasketballData{},
	}

	out := roundTrip(t, in)
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch\n in: %+v\nout: %+v", in, out)
	}
	if _, ok := out.SportData.(*BasketballData); !ok {
		t.Errorf("SportData variant = %T, want *BasketballData", out.SportData)
	}
}

func TestRoundTrip_BaseballMidGame(t *testing.T) {
	in := &Game{
		GameID: 7,
		Sport:  &Sport{SportType: SportBaseball},
		Status: StatusActive,
		SportData: &BaseballData{
			Balls:       2,
			Strikes:     1,
			Outs:        2,
			IsInningTop: true,
			OnSecond:    true,
		},
	}

	out := roundTrip(t, in)
	d, ok := out.SportData.(*BaseballData)
	if !ok {
		t.Fatalf("SportData variant = %T, want *BaseballData", out.SportData)
	}
	want := BaseballData{Balls: 2, Strikes: 1, Outs: 2, IsInningTop: true, OnSecond: true}
	if *d != want {
		t.Errorf("BaseballData = %+v, want %+v", *d, want)
	}
	if d.OnFirst || d.OnThird {
		t.Errorf("absent runners decoded true: on_first=%v on_third=%v", d.OnFirst, d.OnThird)
	}
}

func TestRoundTrip_GolfLeaderboard(t *testing.T) {
	in := &Game{
		GameID: 9,
		Sport:  &Sport{SportType: SportGolf},
		Status: StatusActive,
		SportData: &GolfData{
			EventName: "Masters",
			Players: []GolfPlayer{
				{Name: "A", DisplayName: "A", Score: "-4", Position: 1},
				{Name: "B", DisplayName: "B", Score: "E", Position: 2},
			},
		},
	}

	out := roundTrip(t, in)
	d, ok := out.SportData.(*GolfData)
	if !ok {
		t.Fatalf("SportData variant = %T, want *GolfData", out.SportData)
	}
	if d.EventName != "Masters" {
		t.Errorf("EventName = %q, want Masters", d.EventName)
	}
	if len(d.Players) != 2 {
		t.Fatalf("len(Players) = %d, want 2", len(d.Players))
	}
	if d.Players[0].Score != "-4" || d.Players[1].Score != "E" {
		t.Errorf("scores = %q, %q, want -4, E", d.Players[0].Score, d.Players[1].Score)
	}
	if d.Players[0].Position != 1 || d.Players[1].Position != 2 {
		t.Errorf("order not preserved: %+v", d.Players)
	}
}

func TestRoundTrip_FootballSituation(t *testing.T) {
	in := &Game{
		GameID: 11,
		Sport:  &Sport{SportType: SportFootball, Level: LevelCollegiate},
		Status: StatusActive,
		SportData: &FootballData{
			TimeRemaining: "8:45",
			BallPosition:  "NE 35",
			DownString:    "3rd + 4",
			Possession:    PossessionAway,
		},
	}

	out := roundTrip(t, in)
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch\n in: %+v\nout: %+v", in, out)
	}
}

func TestUnmarshal_Empty(t *testing.T) {
	g := new(Game)
	if err := g.UnmarshalBinary(nil); err != nil {
		t.Fatalf("UnmarshalBinary(nil) error = %v", err)
	}
	if g.GameID != 0 || g.Status != StatusPregame || g.HomeTeamScore != 0 {
		t.Errorf("zero-value defaults not honored: %+v", g)
	}
	if g.SportData != nil {
		t.Errorf("SportData = %T, want absent", g.SportData)
	}
	if g.Sport != nil || g.HomeTeam != nil || g.AwayTeam != nil {
		t.Errorf("absent submessages decoded non-nil: %+v", g)
	}
}

func TestUnmarshal_UnknownFieldIgnored(t *testing.T) {
	in := &Game{GameID: 42, HomeTeamScore: 10, Ordinal: "3rd"}
	b, _ := in.MarshalBinary()

	// Append fields a future producer might emit: a varint at tag 90 and a
	// length-delimited blob at tag 91.
	b = protowire.AppendTag(b, 90, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)
	b = protowire.AppendTag(b, 91, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future payload"))

	out := new(Game)
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary() with unknown fields error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("known fields changed by unknown tags\n in: %+v\nout: %+v", in, out)
	}
}

func TestUnmarshal_UnknownEnumRetained(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, gameTagStatus, protowire.VarintType)
	b = protowire.AppendVarint(b, 99)

	g := new(Game)
	if err := g.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary() with out-of-range status error = %v", err)
	}
	if g.Status != Status(99) {
		t.Errorf("Status = %d, want raw 99", g.Status)
	}
	if got := g.Status.String(); got != "UNKNOWN" {
		t.Errorf("Status.String() = %q, want UNKNOWN", got)
	}
}

func TestMarshal_ExclusiveVariant(t *testing.T) {
	games := []*Game{
		{SportData: &BasketballData{}},
		{SportData: &BaseballData{Balls: 1}},
		{SportData: &FootballData{DownString: "1st + 10"}},
		{SportData: &HockeyData{}},
		{SportData: &GolfData{EventName: "OPEN"}},
		{},
	}
	variantTags := map[protowire.Number]bool{
		gameTagBasketball: true,
		gameTagBaseball:   true,
		gameTagFootball:   true,
		gameTagHockey:     true,
		gameTagGolf:       true,
	}

	for _, g := range games {
		b, _ := g.MarshalBinary()
		variants := 0
		for len(b) > 0 {
			num, typ, n := protowire.ConsumeTag(b)
			if n < 0 {
				t.Fatalf("bad tag in encoding: %v", protowire.ParseError(n))
			}
			b = b[n:]
			if variantTags[num] {
				variants++
			}
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				t.Fatalf("bad field in encoding: %v", protowire.ParseError(n))
			}
			b = b[n:]
		}
		want := 0
		if g.SportData != nil {
			want = 1
		}
		if variants != want {
			t.Errorf("%T: %d variant fields on the wire, want %d", g.SportData, variants, want)
		}
	}
}

func TestUnmarshal_LastVariantWins(t *testing.T) {
	var b []byte
	b = appendSubmessage(b, gameTagBasketball, nil)
	b = appendSubmessage(b, gameTagBaseball, appendBaseball(nil, &BaseballData{Outs: 2}))

	g := new(Game)
	if err := g.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	d, ok := g.SportData.(*BaseballData)
	if !ok {
		t.Fatalf("SportData variant = %T, want *BaseballData", g.SportData)
	}
	if d.Outs != 2 {
		t.Errorf("Outs = %d, want 2", d.Outs)
	}
}

func TestUnmarshal_Truncated(t *testing.T) {
	in := &Game{
		GameID:   3,
		Sport:    &Sport{SportType: SportBaseball},
		HomeTeam: &Team{ID: 1, Name: "Braves", Abbreviation: "ATL"},
		Ordinal:  "7th",
	}
	b, _ := in.MarshalBinary()

	for cut := 1; cut < len(b); cut++ {
		g := new(Game)
		err := g.UnmarshalBinary(b[:cut])
		// Some prefixes happen to be well formed messages; those must
		// decode. The rest must fail as structural errors, never panic.
		_ = err
	}

	// A tag with no value following it is always malformed.
	bad := protowire.AppendTag(nil, gameTagOrdinal, protowire.BytesType)
	if err := new(Game).UnmarshalBinary(bad); err == nil {
		t.Error("UnmarshalBinary() of dangling tag succeeded, want error")
	}
}

func TestUnmarshal_ZeroScoreIndistinguishableFromAbsent(t *testing.T) {
	in := &Game{GameID: 5, HomeTeamScore: 0}
	b, _ := in.MarshalBinary()
	out := new(Game)
	if err := out.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if out.HomeTeamScore != 0 {
		t.Errorf("HomeTeamScore = %d, want 0", out.HomeTeamScore)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{SportBasketball.String(), "BASKETBALL"},
		{SportGolf.String(), "GOLF"},
		{LevelCollegiate.String(), "COLLEGIATE"},
		{StatusIntermission.String(), "INTERMISSION"},
		{PossessionNone.String(), "NONE"},
		{SportType(42).String(), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
