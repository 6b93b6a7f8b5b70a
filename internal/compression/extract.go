// Package compression provides utilities for extracting theme archives.
package compression

import (
	"fmt"
	"strings"
)

// maxDecompressedSize caps the total decompressed output of one archive
// to guard against decompression bombs.
const maxDecompressedSize = 256 * 1024 * 1024

// maxFileCount caps the number of entries extracted from one archive.
const maxFileCount = 10000

// IsArchive reports whether the filename looks like a supported archive.
func IsArchive(filename string) bool {
	for _, ext := range []string{".tar.gz", ".tgz", ".tar.xz", ".txz", ".tar.bz2", ".tbz", ".tbz2", ".zip"} {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

// ExtractArchive detects the archive format from the filename and unpacks
// the full tree into destDir. Entry paths are validated against directory
// traversal, symlinks and special files are skipped.
//
// Supported formats: .tar.gz/.tgz, .tar.xz/.txz, .tar.bz2/.tbz/.tbz2, .zip.
func ExtractArchive(data []byte, filename, destDir string) error {
	switch {
	case strings.HasSuffix(filename, ".tar.gz"), strings.HasSuffix(filename, ".tgz"):
		return extractTarGz(data, destDir)
	case strings.HasSuffix(filename, ".tar.xz"), strings.HasSuffix(filename, ".txz"):
		return extractTarXz(data, destDir)
	case strings.HasSuffix(filename, ".tar.bz2"), strings.HasSuffix(filename, ".tbz"), strings.HasSuffix(filename, ".tbz2"):
		return extractTarBz2(data, destDir)
	case strings.HasSuffix(filename, ".zip"):
		return extractZip(data, destDir)
	}
	return fmt.Errorf("unsupported archive format: %s", filename)
}
