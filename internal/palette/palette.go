// Package palette extracts colour palettes from wallpaper images, either by
// shelling out to pywal or with the builtin k-means extractor.
package palette

import (
	"encoding/json"
	"fmt"

	"chromaflow/internal/colour"
)

// Size is the number of colours a full palette holds.
// Matches the pywal cache layout (color0 through color15).
const Size = 16

// Palette represents a collection of colours extracted from a wallpaper.
type Palette struct {
	Colours []colour.RGB

	// Weights holds the relative dominance of each colour, parallel to
	// Colours. Nil when the backend does not report dominance.
	Weights []float64
}

// New creates a new Palette with the given colours.
func New(colours []colour.RGB) *Palette {
	return &Palette{
		Colours: colours,
	}
}

// NewWithWeights creates a new Palette with colours and their relative weights.
func NewWithWeights(colours []colour.RGB, weights []float64) *Palette {
	return &Palette{
		Colours: colours,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (colour.RGB, error) {
	if index < 0 || index >= len(p.Colours) {
		return colour.RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}

// Dominant returns the most dominant colour in the palette.
// With weights present that is the heaviest cluster, otherwise the first entry.
func (p *Palette) Dominant() (colour.RGB, error) {
	if len(p.Colours) == 0 {
		return colour.RGB{}, fmt.Errorf("palette is empty")
	}
	if len(p.Weights) != len(p.Colours) {
		return p.Colours[0], nil
	}

	best := 0
	for i, w := range p.Weights {
		if w > p.Weights[best] {
			best = i
		}
	}
	return p.Colours[best], nil
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// ColourJSON represents a single palette colour in JSON output format.
type ColourJSON struct {
	Hex    string     `json:"hex"`
	RGB    colour.RGB `json:"rgb"`
	Weight float64    `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		colours[i] = ColourJSON{
			Hex: c.Hex(),
			RGB: c,
		}
		if len(p.Weights) == len(p.Colours) {
			colours[i].Weight = p.Weights[i]
		}
	}

	paletteJSON := PaletteJSON{
		Count:   len(p.Colours),
		Colours: colours,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colours))
	for i, c := range p.Colours {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return result
}
