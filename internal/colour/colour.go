// Package colour implements the colour pipeline at the heart of Chromaflow:
// parsing sRGB hex strings, converting them to HSL, and deriving the
// hue/saturation pair consumed by the Marble theme installer.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGB represents an sRGB colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String formats the colour as "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats the colour as a lowercase hex string (e.g. "#1a2b3c").
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a colour of the form "RRGGBB" or "#RRGGBB".
// Exactly six hex digits are required after the optional leading hash;
// anything else fails with a *MalformedColourError.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGB{}, &MalformedColourError{Input: s}
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, &MalformedColourError{Input: s}
		}
		channels[i] = uint8(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// ToRGB reduces any color.Color to 8-bit sRGB channels, discarding alpha.
func ToRGB(c color.Color) RGB {
	// RGBA reports 16-bit channels; keep the high byte of each.
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Color converts an RGB value to a color.Color (RGBA, fully opaque).
func (c RGB) Color() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Luminance reports the WCAG 2.0 relative luminance of the colour, from 0
// (black) to 1 (white). See
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	r := linearise(float64(c.R) / 255.0)
	g := linearise(float64(c.G) / 255.0)
	b := linearise(float64(c.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearise undoes the sRGB transfer curve for one channel.
func linearise(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
