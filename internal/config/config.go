// Package config loads the chromaflow configuration file.
// Settings follow XDG conventions and overlay onto built-in defaults, so a
// missing or partial config.yml is never an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Marble holds settings for the Marble shell theme integration.
type Marble struct {
	// ColorsPath is the colors.json the installer reads.
	ColorsPath string `yaml:"colors_path"`

	// SourcesDir is where the Marble sources live. Empty selects
	// ~/.local/share/chromaflow/marble.
	SourcesDir string `yaml:"sources_dir"`

	// Python is the interpreter used to run install.py.
	Python string `yaml:"python"`
}

// Theme holds default installation options.
type Theme struct {
	Mode   string `yaml:"mode"`
	Filled bool   `yaml:"filled"`
	Opaque bool   `yaml:"opaque"`
}

// Palette holds palette extraction settings.
type Palette struct {
	// Backend selects the extractor: auto, pywal or builtin.
	Backend string `yaml:"backend"`
}

// Config is the chromaflow configuration.
type Config struct {
	// WallpaperDir is scanned when a command is run without a wallpaper
	// argument. Empty disables the fallback.
	WallpaperDir string `yaml:"wallpaper_dir"`

	Marble  Marble  `yaml:"marble"`
	Theme   Theme   `yaml:"theme"`
	Palette Palette `yaml:"palette"`

	// NoNotify disables the desktop notification after a successful apply.
	NoNotify bool `yaml:"no_notify"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Marble: Marble{
			ColorsPath: "./colors.json",
			Python:     "python",
		},
		Theme: Theme{
			Mode: "dark",
		},
		Palette: Palette{
			Backend: "auto",
		},
		LogLevel: "info",
	}
}

// Path returns the config file location, honouring XDG_CONFIG_HOME.
func Path() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine config directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "chromaflow", "config.yml"), nil
}

// Load reads the config file from the default location.
// A missing file yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path and overlays it onto the defaults.
// A missing file yields the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	// Overlay: unmarshal and merge onto defaults
	merge := cfg
	if user.WallpaperDir != "" {
		merge.WallpaperDir = ExpandUser(user.WallpaperDir)
	}
	if user.Marble.ColorsPath != "" {
		merge.Marble.ColorsPath = ExpandUser(user.Marble.ColorsPath)
	}
	if user.Marble.SourcesDir != "" {
		merge.Marble.SourcesDir = ExpandUser(user.Marble.SourcesDir)
	}
	if user.Marble.Python != "" {
		merge.Marble.Python = user.Marble.Python
	}
	if user.Theme.Mode != "" {
		merge.Theme.Mode = user.Theme.Mode
	}
	merge.Theme.Filled = user.Theme.Filled
	merge.Theme.Opaque = user.Theme.Opaque
	if user.Palette.Backend != "" {
		merge.Palette.Backend = user.Palette.Backend
	}
	merge.NoNotify = user.NoNotify
	if user.LogLevel != "" {
		merge.LogLevel = user.LogLevel
	}

	return merge, nil
}

// ExpandUser expands a path starting with ~ to the user's home.
func ExpandUser(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
