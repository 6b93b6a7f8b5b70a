package palette

import (
	"context"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"chromaflow/internal/wallpaper"
)

// Extractor defines the interface for palette extraction backends.
type Extractor interface {
	// Extract extracts a colour palette from the wallpaper at path.
	Extract(ctx context.Context, path string) (*Palette, error)
}

// Backend represents the palette extraction backend type.
type Backend string

const (
	// BackendAuto picks pywal when installed, the builtin extractor otherwise.
	BackendAuto Backend = "auto"

	// BackendPywal shells out to pywal for palette generation.
	BackendPywal Backend = "pywal"

	// BackendBuiltin uses the builtin k-means extractor, no external tools.
	BackendBuiltin Backend = "builtin"
)

// ValidBackends returns a list of valid backend names.
func ValidBackends() []Backend {
	return []Backend{
		BackendAuto,
		BackendPywal,
		BackendBuiltin,
	}
}

// IsValidBackend checks if the given backend name is valid.
func IsValidBackend(b Backend) bool {
	for _, valid := range ValidBackends() {
		if b == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor for the specified backend.
// Returns an error if the backend is not recognized.
func NewExtractor(backend Backend, logger hclog.Logger) (Extractor, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch backend {
	case BackendPywal:
		if !PywalAvailable() {
			return nil, fmt.Errorf("pywal backend requested but wal not found on PATH")
		}
		return NewPywalExtractor(logger), nil
	case BackendBuiltin:
		return NewBuiltinExtractor(logger), nil
	case BackendAuto, "":
		if PywalAvailable() {
			logger.Debug("palette backend selected", "backend", BackendPywal)
			return NewPywalExtractor(logger), nil
		}
		logger.Debug("wal not found on PATH, falling back", "backend", BackendBuiltin)
		return NewBuiltinExtractor(logger), nil
	default:
		return nil, fmt.Errorf("unknown palette backend: %s (valid backends: %v)", backend, ValidBackends())
	}
}

// BuiltinExtractor extracts palettes with the builtin k-means extractor.
type BuiltinExtractor struct {
	loader wallpaper.Loader
	kmeans *KMeansExtractor
	logger hclog.Logger
	count  int
}

// NewBuiltinExtractor creates a new BuiltinExtractor.
func NewBuiltinExtractor(logger hclog.Logger) *BuiltinExtractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &BuiltinExtractor{
		loader: wallpaper.NewFileLoader(),
		kmeans: NewKMeansExtractor(),
		logger: logger,
		count:  Size,
	}
}

// Extract loads the wallpaper and clusters its pixels into a palette.
func (e *BuiltinExtractor) Extract(ctx context.Context, path string) (*Palette, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := e.loader.Load(path)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("extracting palette", "wallpaper", path, "colours", e.count)
	return e.ExtractFromImage(img)
}

// ExtractFromImage clusters an already decoded image into a palette.
func (e *BuiltinExtractor) ExtractFromImage(img image.Image) (*Palette, error) {
	return e.kmeans.Extract(img, e.count)
}
