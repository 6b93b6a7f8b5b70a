package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"chromaflow/internal/security"
)

// extractZip unpacks a zip archive into destDir.
func extractZip(data []byte, destDir string) error {
	reader := bytes.NewReader(data)
	zr, err := zip.NewReader(reader, int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to create zip reader: %w", err)
	}

	remaining := int64(maxDecompressedSize)
	entries := 0

	for _, f := range zr.File {
		entries++
		if entries > maxFileCount {
			return fmt.Errorf("archive holds too many entries (limit %d)", maxFileCount)
		}

		if err := security.ValidateFilePath(f.Name, destDir); err != nil {
			return fmt.Errorf("unsafe path in archive: %w", err)
		}
		destPath := filepath.Join(destDir, f.Name) // #nosec G305 - Path validated above

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open file in archive: %w", err)
		}

		written, writeErr := writeEntry(destPath, rc, remaining, f.FileInfo().Mode())
		closeErr := rc.Close()
		remaining -= written

		if writeErr != nil {
			return fmt.Errorf("failed to extract %s: %w", f.Name, writeErr)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close file in archive: %w", closeErr)
		}
	}

	return nil
}
