// Package marble integrates with the Marble shell theme: it persists
// extracted theme parameters into the theme's colors.json and drives the
// Marble install script.
package marble

import (
	"encoding/json"
	"fmt"
	"os"

	"chromaflow/internal/colour"
)

// DefaultColorsPath is the default location of the Marble colors.json,
// relative to the working directory.
const DefaultColorsPath = "./colors.json"

// Config manages the Marble theme colors.json configuration file.
type Config struct {
	path string
}

// NewConfig creates a Config for the colors.json at path.
func NewConfig(path string) *Config {
	if path == "" {
		path = DefaultColorsPath
	}
	return &Config{path: path}
}

// Path returns the colors.json location this Config manages.
func (c *Config) Path() string {
	return c.path
}

// extractedColours is the payload stored under the colors.extracted key.
type extractedColours struct {
	H int `json:"h"`
	S int `json:"s"`
}

// Update rewrites the colors key of the Marble colors.json with the given
// theme parameters, preserving every sibling key. The file must already
// exist; a missing colors.json means Marble is not set up at that path.
func (c *Config) Update(params colour.ThemeParams) error {
	data, err := os.ReadFile(c.path) // #nosec G304 - User-specified theme configuration path
	if err != nil {
		return fmt.Errorf("failed to read theme colours: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse theme colours: %w", err)
	}

	colours := map[string]extractedColours{
		"extracted": {H: params.Hue, S: params.Saturation},
	}
	encoded, err := json.Marshal(colours)
	if err != nil {
		return fmt.Errorf("failed to encode theme colours: %w", err)
	}
	doc["colors"] = encoded

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode theme configuration: %w", err)
	}

	if err := os.WriteFile(c.path, out, 0o644); err != nil { // #nosec G306 - Theme configuration needs standard read permissions
		return fmt.Errorf("failed to write theme colours: %w", err)
	}

	return nil
}

// Read returns the currently stored extracted theme parameters.
// Returns an error if the file is missing or holds no extracted colours.
func (c *Config) Read() (colour.ThemeParams, error) {
	data, err := os.ReadFile(c.path) // #nosec G304 - User-specified theme configuration path
	if err != nil {
		return colour.ThemeParams{}, fmt.Errorf("failed to read theme colours: %w", err)
	}

	var doc struct {
		Colors struct {
			Extracted *extractedColours `json:"extracted"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return colour.ThemeParams{}, fmt.Errorf("failed to parse theme colours: %w", err)
	}
	if doc.Colors.Extracted == nil {
		return colour.ThemeParams{}, fmt.Errorf("no extracted colours stored in %s", c.path)
	}

	return colour.ThemeParams{
		Hue:        doc.Colors.Extracted.H,
		Saturation: doc.Colors.Extracted.S,
	}, nil
}
