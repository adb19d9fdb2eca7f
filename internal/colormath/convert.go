package colormath

import "math"

// RGBToHSL converts 8-bit RGB values to HSL color space.
//
// The conversion follows the standard min/max algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Calculate Lightness as (max + min) / 2
//  4. Calculate Saturation as d / (1 - |2L - 1|), where d = max - min
//  5. Calculate Hue based on which component is max
//
// Achromatic colors (max == min) have H = 0 and S = 0. Otherwise H lies in
// [0,360). S and L are returned as percentages without rounding.
func RGBToHSL(c RGB) HSL {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}

	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	d := max - min
	l := (max + min) / 2.0

	if d == 0 {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	var h float64
	switch max {
	case rf:
		h = math.Mod((gf-bf)/d, 6)
	case gf:
		h = (bf-rf)/d + 2
	case bf:
		h = (rf-gf)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}

	s := d / (1 - math.Abs(2*l-1))

	return HSL{H: h, S: s * 100, L: l * 100}
}

// HSLToRGB converts an HSL color back to 8-bit RGB.
//
// Saturation and lightness are clamped to [0,100] first and the hue is
// normalized into [0,360), so any finite input yields a valid color. The
// result is the inverse of RGBToHSL up to rounding.
//
// # Algorithm
//
// Chroma C = (1 - |2L - 1|) * S selects the spread between the strongest and
// weakest channel. The hue picks one of six 60 degree sectors; within the
// sector the middle channel gets X = C * (1 - |H' mod 2 - 1|). Every channel is
// then offset by m = L - C/2 and scaled to 0-255.
func HSLToRGB(c HSL) RGB {
	s := clampPercent(c.S) / 100
	l := clampPercent(c.L) / 100

	chroma := (1 - math.Abs(2*l-1)) * s
	hp := normalizeHue(c.H) / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r1, g1, b1 float64
	switch {
	case 0 <= hp && hp < 1:
		r1, g1, b1 = chroma, x, 0
	case 1 <= hp && hp < 2:
		r1, g1, b1 = x, chroma, 0
	case 2 <= hp && hp < 3:
		r1, g1, b1 = 0, chroma, x
	case 3 <= hp && hp < 4:
		r1, g1, b1 = 0, x, chroma
	case 4 <= hp && hp < 5:
		r1, g1, b1 = x, 0, chroma
	default:
		r1, g1, b1 = chroma, 0, x
	}

	m := l - chroma/2
	return ClampRGB((r1+m)*255, (g1+m)*255, (b1+m)*255)
}

// HexToHSL parses s and converts it to HSL.
func HexToHSL(s string) (HSL, error) {
	c, err := HexToRGB(s)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(c), nil
}

// HSLToHex converts c to RGB and formats it as hex.
func HSLToHex(c HSL) Hex {
	return RGBToHex(HSLToRGB(c))
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// normalizeHue maps any finite angle into [0,360).
func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(math.Mod(h, 360)+360, 360)
	if h >= 360 {
		h = 0
	}
	return h
}
