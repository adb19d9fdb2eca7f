package colormath

import "math"

// Bounds applied to the number of gradient steps.
const (
	MinSteps = 2
	MaxSteps = 64
)

// ClampSteps limits n to [MinSteps, MaxSteps].
func ClampSteps(n int) int {
	if n < MinSteps {
		return MinSteps
	}
	if n > MaxSteps {
		return MaxSteps
	}
	return n
}

// FloorSteps floors a fractional step count and clamps it like ClampSteps.
// NaN yields MinSteps.
func FloorSteps(f float64) int {
	switch {
	case math.IsNaN(f), f < MinSteps:
		return MinSteps
	case f > MaxSteps:
		return MaxSteps
	}
	return ClampSteps(int(math.Floor(f)))
}

// InterpolateHSL returns steps colors from from to to, both inclusive.
//
// Hue follows the shorter arc of the hue circle, saturation and lightness
// interpolate linearly. steps is clamped to [2,64]. If either endpoint is not
// a valid hex color the result is []Hex{from, to} unchanged, without an
// error; use InterpolateHSLStrict to detect that case.
func InterpolateHSL(from, to string, steps int) []Hex {
	out, err := InterpolateHSLStrict(from, to, steps)
	if err != nil {
		return []Hex{Hex(from), Hex(to)}
	}
	return out
}

// InterpolateHSLStrict is InterpolateHSL but returns an error wrapping
// ErrInvalidFormat when an endpoint is malformed.
func InterpolateHSLStrict(from, to string, steps int) ([]Hex, error) {
	fr, err := HexToRGB(from)
	if err != nil {
		return nil, err
	}
	tr, err := HexToRGB(to)
	if err != nil {
		return nil, err
	}
	return interpolate(RGBToHSL(fr), RGBToHSL(tr), ClampSteps(steps)), nil
}

// interpolate assumes n >= 2.
func interpolate(a, b HSL, n int) []Hex {
	h1 := normalizeHue(a.H)
	h2 := normalizeHue(b.H)
	dh := h2 - h1
	// Exactly 180 degrees is left alone: either arc is as short.
	if math.Abs(dh) > 180 {
		if dh > 0 {
			h2 -= 360
		} else {
			h2 += 360
		}
		dh = h2 - h1
	}

	out := make([]Hex, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out = append(out, HSLToHex(HSL{
			H: h1 + dh*t,
			S: a.S + (b.S-a.S)*t,
			L: a.L + (b.L-a.L)*t,
		}))
	}
	return out
}
