package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ulikunitz/xz"
)

type archiveEntry struct {
	name string
	body string
	mode int64
	dir  bool
}

// buildTarGz builds a tar.gz archive in memory from the given entries.
func buildTarGz(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	for _, e := range entries {
		header := &tar.Header{
			Name: e.name,
			Mode: e.mode,
		}
		if e.dir {
			header.Typeflag = tar.TypeDir
		} else {
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.body))
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("failed to write tar header: %v", err)
		}
		if !e.dir {
			if _, err := tw.Write([]byte(e.body)); err != nil {
				t.Fatalf("failed to write tar body: %v", err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// buildTarXz builds a tar.xz archive in memory from the given entries.
func buildTarXz(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	xzw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("failed to create xz writer: %v", err)
	}
	tw := tar.NewWriter(xzw)

	for _, e := range entries {
		header := &tar.Header{
			Name:     e.name,
			Mode:     e.mode,
			Typeflag: tar.TypeReg,
			Size:     int64(len(e.body)),
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("failed to write tar header: %v", err)
		}
		if _, err := tw.Write([]byte(e.body)); err != nil {
			t.Fatalf("failed to write tar body: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := xzw.Close(); err != nil {
		t.Fatalf("failed to close xz writer: %v", err)
	}
	return buf.Bytes()
}

// buildZip builds a zip archive in memory from the given entries.
func buildZip(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func TestExtractArchiveTarGz(t *testing.T) {
	data := buildTarGz(t, []archiveEntry{
		{name: "Marble-main/", mode: 0o755, dir: true},
		{name: "Marble-main/install.py", body: "#!/usr/bin/env python3\n", mode: 0o755},
		{name: "Marble-main/colors.json", body: "{}", mode: 0o644},
	})

	dest := t.TempDir()
	if err := ExtractArchive(data, "Marble-main.tar.gz", dest); err != nil {
		t.Fatalf("ExtractArchive() error = %v", err)
	}

	script := filepath.Join(dest, "Marble-main", "install.py")
	content, err := os.ReadFile(script)
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(content) != "#!/usr/bin/env python3\n" {
		t.Errorf("extracted content = %q, want script body", content)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(script)
		if err != nil {
			t.Fatalf("failed to stat extracted file: %v", err)
		}
		if info.Mode()&0o111 == 0 {
			t.Error("install.py lost its execute bit")
		}
	}

	if _, err := os.Stat(filepath.Join(dest, "Marble-main", "colors.json")); err != nil {
		t.Errorf("colors.json missing after extraction: %v", err)
	}
}

func TestExtractArchiveTarXz(t *testing.T) {
	data := buildTarXz(t, []archiveEntry{
		{name: "theme/readme.md", body: "marble", mode: 0o644},
	})

	dest := t.TempDir()
	if err := ExtractArchive(data, "theme.tar.xz", dest); err != nil {
		t.Fatalf("ExtractArchive() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dest, "theme", "readme.md"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(content) != "marble" {
		t.Errorf("extracted content = %q, want %q", content, "marble")
	}
}

func TestExtractArchiveZip(t *testing.T) {
	data := buildZip(t, []archiveEntry{
		{name: "Marble-main/install.py", body: "print('hi')\n"},
		{name: "Marble-main/gtk/theme.css", body: "body {}"},
	})

	dest := t.TempDir()
	if err := ExtractArchive(data, "Marble-main.zip", dest); err != nil {
		t.Fatalf("ExtractArchive() error = %v", err)
	}

	for _, name := range []string{
		filepath.Join("Marble-main", "install.py"),
		filepath.Join("Marble-main", "gtk", "theme.css"),
	} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Errorf("expected %s after extraction: %v", name, err)
		}
	}
}

func TestExtractArchiveTraversal(t *testing.T) {
	data := buildTarGz(t, []archiveEntry{
		{name: "../escape.txt", body: "nope", mode: 0o644},
	})

	dest := t.TempDir()
	if err := ExtractArchive(data, "evil.tar.gz", dest); err == nil {
		t.Fatal("ExtractArchive() with traversal entry expected error, got nil")
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "escape.txt")); err == nil {
		t.Error("traversal entry escaped the destination directory")
	}
}

func TestExtractArchiveUnsupported(t *testing.T) {
	if err := ExtractArchive([]byte("data"), "theme.rar", t.TempDir()); err == nil {
		t.Error("ExtractArchive() with unsupported format expected error, got nil")
	}
}

func TestIsArchive(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"theme.tar.gz", true},
		{"theme.tgz", true},
		{"theme.tar.xz", true},
		{"theme.tar.bz2", true},
		{"theme.zip", true},
		{"theme.rar", false},
		{"wallpaper.png", false},
		{"install.py", false},
	}

	for _, tt := range tests {
		if got := IsArchive(tt.filename); got != tt.want {
			t.Errorf("IsArchive(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
