// Package wallpaper locates, caches and decodes wallpaper images before
// colour extraction.
package wallpaper

import (
	"context"
	"crypto/rand"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // register decoder
	_ "golang.org/x/image/webp"   // register decoder
)

// supportedExtensions are the file extensions directory scans treat as
// wallpapers. Decoding accepts whatever the registered formats accept.
var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}

// Loader decodes wallpaper images.
type Loader interface {
	Load(path string) (image.Image, error)
}

// FileLoader decodes wallpapers from the local filesystem.
type FileLoader struct{}

// NewFileLoader returns a filesystem-backed Loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes the image at path. The registered formats cover JPEG,
// PNG, GIF, WebP and AVIF.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("wallpaper path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("wallpaper file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat wallpaper file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified wallpaper path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open wallpaper file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wallpaper (format: %s): %w", format, err)
	}
	return img, nil
}

// ValidatePath reports whether path could serve as a wallpaper source.
// Files must exist and decode; directories only need to exist, scanning
// happens later; URLs are taken on faith until download time.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("wallpaper path cannot be empty")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("wallpaper file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access wallpaper path: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - User-specified wallpaper path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open wallpaper file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// ScanDirectory lists the wallpapers directly inside dirPath. Symlinked
// files count, subdirectories are not entered.
func ScanDirectory(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		full := filepath.Join(dirPath, entry.Name())

		// Stat follows symlinks; broken or unreadable entries are skipped.
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slices.Contains(supportedExtensions, ext) {
			files = append(files, full)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	return files, nil
}

// SelectRandom picks one wallpaper from the list.
func SelectRandom(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("wallpaper list is empty")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(paths))))
	if err != nil {
		return "", fmt.Errorf("failed to pick a wallpaper: %w", err)
	}
	return paths[n.Int64()], nil
}

// Resolve turns a wallpaper argument into a local file path.
// HTTP(S) URLs are downloaded into the wallpaper cache, directories are
// scanned and a random wallpaper selected, and plain files pass through.
// Downstream consumers (pywal, the Marble installer) need a real file,
// so remote wallpapers always land on disk first.
func Resolve(ctx context.Context, path string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return DownloadAndCache(ctx, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	files, err := ScanDirectory(path)
	if err != nil {
		return "", err
	}
	return SelectRandom(files)
}

// Dimensions reads the pixel size of a wallpaper without decoding it fully.
func Dimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - User-specified wallpaper path, intended to be read
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open wallpaper: %w", err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}
	return config.Width, config.Height, nil
}
