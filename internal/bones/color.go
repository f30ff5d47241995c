package bones

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a normalized color; every component is expected in [0,1].
type RGBA struct {
	R float32
	G float32
	B float32
	A float32
}

// Clamp limits every component to [0,1].
func (c RGBA) Clamp() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Hex renders the color as #rrggbbaa.
func (c RGBA) Hex() string {
	c = c.Clamp()
	rgb := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	return fmt.Sprintf("%s%02x", rgb.Hex(), uint8(math.Round(float64(c.A)*255)))
}

// RGBHex renders the color without its alpha channel, as terminals expect.
func (c RGBA) RGBHex() string {
	c = c.Clamp()
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Hex()
}

func (c RGBA) String() string { return c.Hex() }

// ParseHex accepts #rgb, #rrggbb and #rrggbbaa. The leading # is optional.
func ParseHex(s string) (RGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(s)), "#")
	alpha := float32(1)
	switch len(raw) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(raw[6:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float32(a) / 255
		raw = raw[:6]
	default:
		return RGBA{}, fmt.Errorf("parse color %q: expected #rgb, #rrggbb or #rrggbbaa", s)
	}
	c, err := colorful.Hex("#" + raw)
	if err != nil {
		return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGBA{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

// MustParseHex is ParseHex for literals known to be valid.
func MustParseHex(s string) RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
