package palette

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"chromaflow/internal/colour"
)

// PywalExtractor extracts palettes by shelling out to pywal.
// It runs "wal -i <wallpaper> -n" and reads the generated colour cache.
type PywalExtractor struct {
	logger hclog.Logger

	// cachePath overrides the pywal cache location. Empty means the
	// default ~/.cache/wal/colors.json.
	cachePath string
}

// NewPywalExtractor creates a new PywalExtractor.
func NewPywalExtractor(logger hclog.Logger) *PywalExtractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PywalExtractor{
		logger: logger,
	}
}

// PywalAvailable reports whether the wal binary is on PATH.
func PywalAvailable() bool {
	_, err := exec.LookPath("wal")
	return err == nil
}

// DefaultWalCachePath returns the pywal colour cache location.
func DefaultWalCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "wal", "colors.json"), nil
}

// Extract runs pywal against the wallpaper and parses its colour cache.
// The -n flag stops pywal from setting the wallpaper itself.
func (e *PywalExtractor) Extract(ctx context.Context, path string) (*Palette, error) {
	cachePath := e.cachePath
	if cachePath == "" {
		defaultPath, err := DefaultWalCachePath()
		if err != nil {
			return nil, err
		}
		cachePath = defaultPath
	}

	e.logger.Debug("running pywal", "wallpaper", path)

	cmd := exec.CommandContext(ctx, "wal", "-i", path, "-n")
	output, err := cmd.CombinedOutput()
	if err != nil {
		e.logger.Debug("pywal output", "output", string(output))
		return nil, fmt.Errorf("pywal failed: %w", err)
	}

	return readWalCache(cachePath)
}

// walCache mirrors the layout of pywal's colors.json cache.
type walCache struct {
	Colors map[string]string `json:"colors"`
}

// readWalCache parses a pywal colour cache into a palette.
// Expects the full color0 through color15 set.
func readWalCache(path string) (*Palette, error) {
	data, err := os.ReadFile(path) // #nosec G304 - pywal cache path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read pywal cache: %w", err)
	}

	var cache walCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed to parse pywal cache: %w", err)
	}

	colours := make([]colour.RGB, 0, Size)
	for i := 0; i < Size; i++ {
		key := fmt.Sprintf("color%d", i)
		hex, ok := cache.Colors[key]
		if !ok {
			return nil, fmt.Errorf("pywal cache missing %s", key)
		}
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("pywal cache %s: %w", key, err)
		}
		colours = append(colours, rgb)
	}

	return New(colours), nil
}
