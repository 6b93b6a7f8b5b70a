package colour

import "fmt"

const (
	// MinSaturation is the floor applied to derived saturation so accents
	// stay visible even for washed-out picks.
	MinSaturation = 30

	// MaxSaturation caps derived saturation. HSL saturation never exceeds
	// 100, so this only matters for out-of-range inputs.
	MaxSaturation = 100
)

// ThemeParams is the hue/saturation pair handed to the Marble installer.
type ThemeParams struct {
	Hue        int `json:"hue"`
	Saturation int `json:"saturation"`
}

// String returns the parameters in the installer's flag notation.
func (p ThemeParams) String() string {
	return fmt.Sprintf("hue=%d sat=%d", p.Hue, p.Saturation)
}

// Derive produces theme parameters from an HSL value. The hue passes
// through unchanged; saturation is clamped to [MinSaturation, MaxSaturation].
// Lightness is ignored, the installer derives its own shades.
func Derive(hsl HSL) ThemeParams {
	return ThemeParams{
		Hue:        hsl.H,
		Saturation: clamp(hsl.S, MinSaturation, MaxSaturation),
	}
}

// HSL reinterprets the parameters as an HSL-shaped value with zero
// lightness, which is how re-derivation and persistence see them.
func (p ThemeParams) HSL() HSL {
	return HSL{H: p.Hue, S: p.Saturation}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
