package soft3d

import (
	"image/color"
	"math"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is nominally in the range [0, 1]; lighting math may push
// components above 1, which Pack clamps.
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(math.Round(c.R * 255))),
		G: uint8(clamp255(math.Round(c.G * 255))),
		B: uint8(clamp255(math.Round(c.B * 255))),
		A: uint8(clamp255(math.Round(c.A * 255))),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without '#'.
// Unparseable input yields opaque black.
func Hex(hex string) RGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Black
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// Pack converts the color to a 32-bit ARGB value (A in the top byte).
//
// Each channel is scaled by 255, rounded and clamped to [0, 255]. Channels
// that are zero or negative contribute no bits at all.
func (c RGBA) Pack() uint32 {
	var out uint32
	out |= packChannel(c.A) << 24
	out |= packChannel(c.R) << 16
	out |= packChannel(c.G) << 8
	out |= packChannel(c.B)
	return out
}

func packChannel(v float64) uint32 {
	if !(v > 0) {
		return 0
	}
	return uint32(clamp255(math.Round(v * 255)))
}

// Unpack converts a packed ARGB value back to a normalized color.
// The value 0 maps to the zero RGBA rather than going through the
// per-channel division.
func Unpack(argb uint32) RGBA {
	if argb == 0 {
		return RGBA{}
	}
	return RGBA{
		R: float64((argb>>16)&0xFF) / 255,
		G: float64((argb>>8)&0xFF) / 255,
		B: float64(argb&0xFF) / 255,
		A: float64((argb>>24)&0xFF) / 255,
	}
}

// Lerp performs linear interpolation between two colors.
// Lerp(c, other, 0) == c and Lerp(c, other, 1) == other exactly.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: Lerp(c.R, other.R, t),
		G: Lerp(c.G, other.G, t),
		B: Lerp(c.B, other.B, t),
		A: Lerp(c.A, other.A, t),
	}
}

// Add returns the component-wise sum of the RGB channels; alpha is kept
// from c.
func (c RGBA) Add(other RGBA) RGBA {
	return RGBA{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B, A: c.A}
}

// Mul returns the component-wise product of the RGB channels; alpha is
// kept from c.
func (c RGBA) Mul(other RGBA) RGBA {
	return RGBA{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B, A: c.A}
}

// Scale multiplies the RGB channels by s; alpha is kept.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Clamp restricts every channel to [0, 1].
func (c RGBA) Clamp() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = RGBA{}
)
