// Package colormath implements the color arithmetic behind the colorlab tools.
//
// Every function in this package is pure: inputs are plain values, results are
// freshly allocated, and there is no package-level mutable state apart from the
// compiled hex pattern. All functions are safe for concurrent use.
//
// # Color Representation
//
// Three encodings are supported, all in 8-bit sRGB:
//   - Hex: 7-character string "#RRGGBB". Input is case-insensitive; output is
//     always upper case.
//   - RGB: 8-bit channels (0-255).
//   - HSL: Hue in degrees (0-360, circular), Saturation and Lightness in
//     percent (0-100).
//
// # Contrast
//
// Luminance and contrast follow WCAG 2.x: channels are linearized with the
// piecewise sRGB transfer function (threshold 0.03928), relative luminance is
// 0.2126 R + 0.7152 G + 0.0722 B, and the contrast ratio is
// (L_hi + 0.05) / (L_lo + 0.05), ranging from 1:1 to 21:1.
//
// # Error Handling
//
// Only text input can be malformed. Functions that parse hex strings return
// an error wrapping ErrInvalidFormat; Result carries the same outcome in a
// serializable form. Functions over typed values (RGB, HSL) are total.
//
// # Gradients
//
// InterpolateHSL walks the hue circle along the shorter arc between the two
// endpoints and interpolates saturation and lightness linearly. When the two
// hues are exactly 180 degrees apart no adjustment is made, so the walk goes
// from the first hue towards the second through the numerically intermediate
// hues (0 to 180 passes 90, and so does 180 to 0).
package colormath
