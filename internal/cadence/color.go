package cadence

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fixed presentation colours.
const (
	ColorNeutral = "#aaa"
	ColorDoubled = "#f00"
	ColorSkipped = "#00f"
)

// Color is a CSS colour: either a hex literal or a fully saturated,
// half-lightness HSL hue.
type Color struct {
	hex   string
	hue   float64
	isHSL bool
}

// Hex wraps a CSS hex literal such as "#aaa" or "#ff8800".
func Hex(value string) Color {
	return Color{hex: value}
}

// HSL returns hsl(hue, 100%, 50%).
func HSL(hue float64) Color {
	return Color{hue: hue, isHSL: true}
}

// KindColor returns the fixed colour for a kind. Partial frames carry a
// computed hue instead; KindColor falls back to neutral for them.
func KindColor(k Kind) Color {
	switch k {
	case Doubled:
		return Hex(ColorDoubled)
	case Skipped:
		return Hex(ColorSkipped)
	default:
		return Hex(ColorNeutral)
	}
}

// String renders the colour as CSS.
func (c Color) String() string {
	if c.isHSL {
		return "hsl(" + strconv.FormatFloat(c.hue, 'f', -1, 64) + "deg, 100%, 50%)"
	}
	return c.hex
}

// MarshalText encodes the colour as its CSS string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// RGB converts the colour to 8-bit channels for terminal rendering.
func (c Color) RGB() (r, g, b uint8) {
	if c.isHSL {
		return hslToRGB(c.hue, 1, 0.5)
	}
	r, g, b, err := parseHex(c.hex)
	if err != nil {
		return 0xaa, 0xaa, 0xaa
	}
	return r, g, b
}

func parseHex(value string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("parse colour %q: want 3 or 6 hex digits", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse colour %q: %w", value, err)
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), nil
}

func hslToRGB(hue, saturation, lightness float64) (r, g, b uint8) {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	chroma := (1 - math.Abs(2*lightness-1)) * saturation
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := lightness - chroma/2

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = chroma, x, 0
	case h < 120:
		rf, gf, bf = x, chroma, 0
	case h < 180:
		rf, gf, bf = 0, chroma, x
	case h < 240:
		rf, gf, bf = 0, x, chroma
	case h < 300:
		rf, gf, bf = x, 0, chroma
	default:
		rf, gf, bf = chroma, 0, x
	}
	return channel(rf + m), channel(gf + m), channel(bf + m)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
