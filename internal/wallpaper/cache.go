package wallpaper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chromaflow/internal/security"
	httputil "chromaflow/internal/util/http"
)

// cacheDir returns the directory downloaded wallpapers are kept in.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "chromaflow", "wallpapers"), nil
}

// generateFilename names a cached download after its source URL: half the
// URL's sha256 plus the original extension, so the same URL always lands
// on the same file.
func generateFilename(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:16])

	ext := filepath.Ext(url)
	if i := strings.IndexByte(ext, '?'); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return name + ext
}

// DownloadAndCache fetches a remote wallpaper into the cache and returns
// the local path. A URL downloaded before is reused without touching the
// network. Downloads only land in the cache once they decode as an image,
// so a failed or bogus fetch cannot poison later runs.
func DownloadAndCache(ctx context.Context, url string) (string, error) {
	if err := security.ValidateHTTPURL(url); err != nil {
		return "", fmt.Errorf("invalid wallpaper URL: %w", err)
	}

	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cached := filepath.Join(dir, generateFilename(url))
	if _, err := os.Stat(cached); err == nil {
		return cached, nil
	}

	data, err := httputil.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to download wallpaper: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to stage download: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write download: %w", err)
	}

	if err := ValidatePath(tmp.Name()); err != nil {
		return "", fmt.Errorf("downloaded wallpaper is not a usable image: %w", err)
	}

	if err := os.Rename(tmp.Name(), cached); err != nil {
		return "", fmt.Errorf("failed to cache wallpaper: %w", err)
	}
	return cached, nil
}
