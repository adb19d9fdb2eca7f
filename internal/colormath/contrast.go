package colormath

import "math"

// Level is a WCAG conformance level for normal-size text.
type Level string

const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelFail Level = "Fail"
)

// Contrast thresholds for normal-size text.
const (
	RatioAAA = 7.0
	RatioAA  = 4.5
)

// DefaultDigits is the precision used for displayed contrast ratios.
const DefaultDigits = 2

var (
	blackRGB = RGB{R: 0, G: 0, B: 0}
	whiteRGB = RGB{R: 255, G: 255, B: 255}
)

// srgbToLinear linearizes one 8-bit sRGB channel.
func srgbToLinear(v uint8) float64 {
	s := float64(v) / 255
	if s <= 0.03928 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// Luminance returns the WCAG relative luminance of c, in [0,1].
func Luminance(c RGB) float64 {
	return 0.2126*srgbToLinear(c.R) + 0.7152*srgbToLinear(c.G) + 0.0722*srgbToLinear(c.B)
}

// Contrast returns the WCAG contrast ratio between a and b.
//
// The result is in [1,21] and does not depend on argument order.
func Contrast(a, b RGB) float64 {
	hi, lo := Luminance(a), Luminance(b)
	if lo > hi {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// BestTextOn returns Black or White, whichever contrasts more with bg.
//
// Ties favour Black. A malformed bg also yields Black.
func BestTextOn(bg string) Hex {
	c, err := HexToRGB(bg)
	if err != nil {
		return Black
	}
	return bestText(c)
}

func bestText(c RGB) Hex {
	if Contrast(c, blackRGB) >= Contrast(c, whiteRGB) {
		return Black
	}
	return White
}

// TextContrast returns the contrast ratio between bg and its best text color.
func TextContrast(bg string) (float64, error) {
	c, err := HexToRGB(bg)
	if err != nil {
		return 0, err
	}
	txt := whiteRGB
	if bestText(c) == Black {
		txt = blackRGB
	}
	return Contrast(c, txt), nil
}

// LevelFor classifies a contrast ratio.
func LevelFor(ratio float64) Level {
	switch {
	case ratio >= RatioAAA:
		return LevelAAA
	case ratio >= RatioAA:
		return LevelAA
	default:
		return LevelFail
	}
}

// WCAGLevel classifies bg by the contrast it achieves with its best text
// color. Malformed input yields LevelFail.
func WCAGLevel(bg string) Level {
	ratio, err := TextContrast(bg)
	if err != nil {
		return LevelFail
	}
	return LevelFor(ratio)
}

// Round rounds n to digits decimal places, halves away from zero.
func Round(n float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(n*p) / p
}
