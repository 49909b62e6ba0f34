package framerate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidRate reports a rate the analyzer cannot work with.
var ErrInvalidRate = errors.New("invalid frame rate")

// Rational is a frame rate expressed as a fraction, as ffprobe reports it.
type Rational struct {
	Numerator   int `json:"numerator,omitempty"`
	Denominator int `json:"denominator,omitempty"`
}

// Empty reports whether either side of the fraction is zero.
func (r Rational) Empty() bool {
	return r.Denominator == 0 || r.Numerator == 0
}

// Float returns the rate as frames per second, or 0 when empty.
func (r Rational) Float() float64 {
	if r.Empty() {
		return 0
	}
	return float64(r.Numerator) / float64(r.Denominator)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Numerator, r.Denominator)
}

// ParseRational parses "num/den". A bare integer is treated as num/1.
func ParseRational(value string) (Rational, error) {
	trimmed := strings.TrimSpace(value)
	num, den, found := strings.Cut(trimmed, "/")
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return Rational{}, fmt.Errorf("parse rational %q: %w", value, err)
	}
	d := 1
	if found {
		if d, err = strconv.Atoi(strings.TrimSpace(den)); err != nil {
			return Rational{}, fmt.Errorf("parse rational %q: %w", value, err)
		}
	}
	return Rational{Numerator: n, Denominator: d}, nil
}

// aliases map broadcast names to the decimal rates used across the tool.
var aliases = map[string]float64{
	"film":      24,
	"ntsc-film": 23.976,
	"pal":       25,
	"ntsc":      29.97,
	"ntsc-hd":   59.94,
	"pal-hd":    50,
	"hfr":       120,
}

// Parse converts a user or tool supplied rate to frames per second and
// validates it.
func Parse(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidRate)
	}
	key := cases.Fold().String(trimmed)
	key = strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(key, "fps")), "p")

	var fps float64
	switch alias, ok := aliases[strings.TrimSpace(key)]; {
	case ok:
		fps = alias
	case strings.Contains(key, "/"):
		r, err := ParseRational(key)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidRate, err)
		}
		if r.Denominator == 0 {
			return 0, fmt.Errorf("%w: %q has a zero denominator", ErrInvalidRate, value)
		}
		fps = r.Float()
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRate, value)
		}
		fps = parsed
	}

	if err := Validate(fps); err != nil {
		return 0, err
	}
	return fps, nil
}

// Validate rejects rates that are not finite or would show no frames in a
// second.
func Validate(fps float64) error {
	switch {
	case math.IsNaN(fps) || math.IsInf(fps, 0):
		return fmt.Errorf("%w: %v is not finite", ErrInvalidRate, fps)
	case fps <= 0:
		return fmt.Errorf("%w: %v must be positive", ErrInvalidRate, fps)
	case fps < 1:
		return fmt.Errorf("%w: %v shows no whole frame per second", ErrInvalidRate, fps)
	}
	return nil
}

// Round trims float noise so rates from rationals compare equal to their
// usual decimal spelling (24000/1001 -> 23.976).
func Round(fps float64) float64 {
	return math.Round(fps*1000) / 1000
}

// Format renders a rate without trailing zeros, e.g. "23.976" or "24".
func Format(fps float64) string {
	return strconv.FormatFloat(Round(fps), 'f', -1, 64)
}

// Label renders a rate for display, e.g. "23.976 fps (Ntsc-Film)".
func Label(fps float64) string {
	label := Format(fps) + " fps"
	if name := Name(fps); name != "" {
		label += " (" + cases.Title(language.Und).String(name) + ")"
	}
	return label
}

// Name returns the broadcast name for a rate, or "" when it has none.
func Name(fps float64) string {
	rounded := Round(fps)
	best := ""
	for name, rate := range aliases {
		if rate != rounded {
			continue
		}
		// Map iteration order is random; pick the shortest, then lowest name.
		if best == "" || len(name) < len(best) || (len(name) == len(best) && name < best) {
			best = name
		}
	}
	return best
}

// Defaults is the rate set offered on first run.
func Defaults() []float64 {
	return []float64{23.976, 24, 25, 29.97, 30, 50, 59.94, 60, 120}
}
