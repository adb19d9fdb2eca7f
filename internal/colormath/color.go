package colormath

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a string is not a "#RRGGBB" hex color.
var ErrInvalidFormat = errors.New("invalid hex color format")

// Hex is a canonical "#RRGGBB" color string.
//
// Values produced by this package are always upper case and always match the
// hex pattern. A Hex converted from arbitrary user text is not validated; use
// Canonical for that.
type Hex string

const (
	// Black is pure black, one of the two candidate text colors.
	Black Hex = "#000000"
	// White is pure white, the other candidate text color.
	White Hex = "#FFFFFF"
)

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// RGB represents a color with 8-bit components.
//
// Each component ranges from 0 to 255. Use ClampRGB to build an RGB from
// arbitrary floating-point channels.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSL represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// H is conceptually circular in [0,360). Values outside that range are
// accepted by HSLToRGB and normalized there. S and L are percentages.
type HSL struct {
	H float64 `json:"h"` // Hue in degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation percent (0=gray, 100=vivid)
	L float64 `json:"l"` // Lightness percent (0=black, 50=normal, 100=white)
}

// Result is the serializable outcome of a fallible conversion.
//
// Callers must check OK before reading Value. On failure Error holds a
// human-readable reason and Value is the zero value.
type Result[T any] struct {
	OK    bool   `json:"ok"`
	Value T      `json:"value"`
	Error string `json:"error,omitempty"`
}

// NewResult wraps a (value, error) pair as a Result.
func NewResult[T any](v T, err error) Result[T] {
	if err != nil {
		var zero T
		return Result[T]{OK: false, Value: zero, Error: err.Error()}
	}
	return Result[T]{OK: true, Value: v}
}

// IsHex reports whether s is exactly "#" followed by six hex digits.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Canonical validates s and returns it upper-cased.
func Canonical(s string) (Hex, error) {
	if !IsHex(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return Hex(strings.ToUpper(s)), nil
}

// RandomHex returns a uniformly distributed random color over all 16^6 values.
func RandomHex() Hex {
	n := rand.IntN(1 << 24)
	return Hex(fmt.Sprintf("#%06X", n))
}

// HexToRGB parses a "#RRGGBB" string into its 8-bit channels.
//
// Returns an error wrapping ErrInvalidFormat if s does not match the hex
// pattern. Both upper- and lower-case digits are accepted.
func HexToRGB(s string) (RGB, error) {
	if !IsHex(s) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	r, _ := strconv.ParseUint(s[1:3], 16, 8)
	g, _ := strconv.ParseUint(s[3:5], 16, 8)
	b, _ := strconv.ParseUint(s[5:7], 16, 8)
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// RGBToHex formats c as an upper-case "#RRGGBB" string.
func RGBToHex(c RGB) Hex {
	return Hex(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

// ClampRGB builds an RGB from floating-point channels.
//
// Each channel is rounded to the nearest integer (half away from zero) and
// clamped to [0,255]. NaN maps to 0.
func ClampRGB(r, g, b float64) RGB {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func clampChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
