package marble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"chromaflow/internal/compression"
	"chromaflow/internal/security"
	httputil "chromaflow/internal/util/http"
)

// installScript is the entry point of the Marble theme sources.
const installScript = "install.py"

// DefaultDistributionDir returns where the Marble theme sources live.
func DefaultDistributionDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "chromaflow", "marble"), nil
}

// Distribution manages a local copy of the Marble shell theme sources.
type Distribution struct {
	dir    string
	logger hclog.Logger
}

// NewDistribution creates a Distribution rooted at dir.
// An empty dir selects the default location.
func NewDistribution(dir string, logger hclog.Logger) (*Distribution, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if dir == "" {
		defaultDir, err := DefaultDistributionDir()
		if err != nil {
			return nil, err
		}
		dir = defaultDir
	}
	return &Distribution{
		dir:    dir,
		logger: logger,
	}, nil
}

// Dir returns the distribution root directory.
func (d *Distribution) Dir() string {
	return d.dir
}

// Installed reports whether the Marble install script is present.
func (d *Distribution) Installed() bool {
	_, err := d.ScriptDir()
	return err == nil
}

// ScriptDir locates the directory holding install.py. Archives from
// GitHub unpack into a single top-level directory, so the search covers
// the root and one level down.
func (d *Distribution) ScriptDir() (string, error) {
	if _, err := os.Stat(filepath.Join(d.dir, installScript)); err == nil {
		return d.dir, nil
	}

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return "", fmt.Errorf("marble theme sources not found at %s: %w", d.dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		nested := filepath.Join(d.dir, entry.Name())
		if _, err := os.Stat(filepath.Join(nested, installScript)); err == nil {
			return nested, nil
		}
	}

	return "", fmt.Errorf("%s not found under %s", installScript, d.dir)
}

// InstallFromURL downloads a Marble source archive and unpacks it into the
// distribution directory. Only HTTPS URLs from public hosts are allowed.
func (d *Distribution) InstallFromURL(ctx context.Context, url string) error {
	if err := security.ValidateHTTPURL(url); err != nil {
		return fmt.Errorf("invalid theme archive URL: %w", err)
	}

	filename := filepath.Base(url)
	if !compression.IsArchive(filename) {
		return fmt.Errorf("unsupported theme archive: %s", filename)
	}

	d.logger.Debug("downloading marble sources", "url", url)
	data, err := httputil.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to download theme archive: %w", err)
	}

	return d.unpack(data, filename)
}

// InstallFromArchive unpacks a local Marble source archive into the
// distribution directory.
func (d *Distribution) InstallFromArchive(path string) error {
	filename := filepath.Base(path)
	if !compression.IsArchive(filename) {
		return fmt.Errorf("unsupported theme archive: %s", filename)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified archive path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read theme archive: %w", err)
	}

	return d.unpack(data, filename)
}

// unpack extracts archive data into the distribution directory and checks
// that the install script arrived.
func (d *Distribution) unpack(data []byte, filename string) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create distribution directory: %w", err)
	}

	if err := compression.ExtractArchive(data, filename, d.dir); err != nil {
		return fmt.Errorf("failed to extract theme archive: %w", err)
	}

	scriptDir, err := d.ScriptDir()
	if err != nil {
		return fmt.Errorf("archive does not look like Marble sources: %w", err)
	}

	d.logger.Debug("marble sources installed", "dir", scriptDir)
	return nil
}
