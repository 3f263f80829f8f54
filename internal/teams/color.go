package teams

import (
	"fmt"
	"math"
	"strconv"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

var (
	black = gamestate.Color{R: 0, G: 0, B: 0}
	white = gamestate.Color{R: 255, G: 255, B: 255}
)

// ParseHexColor converts an "rrggbb" string into a Color.
func ParseHexColor(s string) (gamestate.Color, error) {
	if len(s) < 6 {
		return gamestate.Color{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return gamestate.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return gamestate.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return gamestate.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return gamestate.Color{R: uint32(r), G: uint32(g), B: uint32(b)}, nil
}

// Luminance returns the relative luminance of a color, weighting channels by
// human eye sensitivity.
func Luminance(c gamestate.Color) float64 {
	linear := func(ch uint32) float64 {
		v := float64(uint8(ch)) / 255.0
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

// Contrast returns the contrast ratio between two colors, always >= 1.
func Contrast(a, b gamestate.Color) float64 {
	la, lb := Luminance(a), Luminance(b)
	max, min := la, lb
	if min > max {
		max, min = min, max
	}
	return (max + 0.05) / (min + 0.05)
}

// SecondaryForPrimary picks a secondary color legible against the primary.
// The candidate is kept when its contrast ratio exceeds 3.5; otherwise
// whichever of white or black contrasts more with the primary wins.
func SecondaryForPrimary(primary, candidate string) (gamestate.Color, error) {
	p, err := ParseHexColor(primary)
	if err != nil {
		return gamestate.Color{}, err
	}
	s, err := ParseHexColor(candidate)
	if err != nil {
		return gamestate.Color{}, err
	}

	if Contrast(p, s) > 3.5 {
		return s, nil
	}
	if Contrast(p, white) > Contrast(p, black) {
		return white, nil
	}
	return black, nil
}
