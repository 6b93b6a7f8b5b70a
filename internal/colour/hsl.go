package colour

import (
	"fmt"
	"math"
)

// HSL represents a colour as integer hue, saturation and lightness.
// Hue is in degrees [0, 360] (0 and 360 are equivalent; rounding can
// produce 360 for hues just below a full turn). Saturation and lightness
// are percentages in [0, 100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String returns the HSL value in CSS-like notation, e.g. "hsl(210, 68%, 80%)".
func (hsl HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L)
}

// MalformedColourError reports a hex colour string that is not of the
// form "RRGGBB" or "#RRGGBB".
type MalformedColourError struct {
	Input string
}

func (e *MalformedColourError) Error() string {
	return fmt.Sprintf("malformed colour %q (expected [#]RRGGBB)", e.Input)
}

// Convert parses a hex colour string and converts it to integer HSL.
// Fractional hue, saturation and lightness are scaled to degrees and
// percentages and rounded half away from zero.
func Convert(hex string) (HSL, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}

	h, s, l := rgbToHSL(rgb)
	return HSL{
		H: int(math.Round(h)),
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}, nil
}

// rgbToHSL converts RGB to HSL colour space.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	// Achromatic: saturation and hue are zero.
	if delta == 0 {
		s = 0
		h = 0
		return
	}

	// Saturation.
	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	// Hue.
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return
}
