package compression

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"chromaflow/internal/security"
)

// extractTarGz unpacks a tar.gz archive into destDir.
func extractTarGz(data []byte, destDir string) error {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	return extractTar(tar.NewReader(gzr), destDir)
}

// extractTarXz unpacks a tar.xz archive into destDir.
func extractTarXz(data []byte, destDir string) error {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create xz reader: %w", err)
	}

	return extractTar(tar.NewReader(xzr), destDir)
}

// extractTarBz2 unpacks a tar.bz2 archive into destDir.
func extractTarBz2(data []byte, destDir string) error {
	bzr := bzip2.NewReader(bytes.NewReader(data))
	return extractTar(tar.NewReader(bzr), destDir)
}

// extractTar walks a tar stream writing every directory and regular file
// under destDir. A shared decompression budget spans the whole archive.
func extractTar(tr *tar.Reader, destDir string) error {
	remaining := int64(maxDecompressedSize)
	entries := 0

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar archive: %w", err)
		}

		entries++
		if entries > maxFileCount {
			return fmt.Errorf("archive holds too many entries (limit %d)", maxFileCount)
		}

		if err := security.ValidateFilePath(header.Name, destDir); err != nil {
			return fmt.Errorf("unsafe path in archive: %w", err)
		}
		destPath := filepath.Join(destDir, header.Name) // #nosec G305 - Path validated above

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		case tar.TypeReg:
			written, err := writeEntry(destPath, tr, remaining, header.FileInfo().Mode())
			if err != nil {
				return fmt.Errorf("failed to extract %s: %w", header.Name, err)
			}
			remaining -= written
		default:
			// Skip symlinks and special files.
			continue
		}
	}

	return nil
}

// writeEntry writes one archive entry to disk with a decompression limit.
// Executable entries keep their execute bit.
func writeEntry(destPath string, r io.Reader, limit int64, mode os.FileMode) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(destPath) // #nosec G304 - Destination path controlled by application
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	limitedReader := security.NewLimitedReader(r, limit)
	written, copyErr := io.Copy(out, limitedReader)
	closeErr := out.Close() // Close immediately instead of defer

	if copyErr != nil {
		return written, copyErr
	}
	if closeErr != nil {
		return written, fmt.Errorf("failed to close file: %w", closeErr)
	}

	if mode&0o111 != 0 {
		if err := os.Chmod(destPath, 0o755); err != nil { // #nosec G302 - Install scripts need execute permission
			return written, fmt.Errorf("failed to set execute permission: %w", err)
		}
	}

	return written, nil
}
