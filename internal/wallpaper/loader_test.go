package wallpaper

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestPNG writes a small solid-colour PNG into dir and returns its path.
func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "wall.png")

	loader := NewFileLoader()
	img, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 4 {
		t.Errorf("Load() bounds = %dx%d, want 4x4", bounds.Dx(), bounds.Dy())
	}
}

func TestFileLoaderLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "nope.png")},
		{"directory", dir},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Load(tt.path); err == nil {
				t.Errorf("Load(%q) expected error, got nil", tt.path)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "wall.png")

	notImage := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid png", path, false},
		{"directory", dir, false},
		{"url deferred", "https://example.com/wall.png", false},
		{"empty", "", true},
		{"missing", filepath.Join(dir, "nope.png"), true},
		{"not an image", notImage, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png")
	writeTestPNG(t, dir, "b.png")
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	files, err := ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("ScanDirectory() found %d files, want 2", len(files))
	}
}

func TestScanDirectoryEmpty(t *testing.T) {
	dir := t.TempDir()
	if _, err := ScanDirectory(dir); err == nil {
		t.Error("ScanDirectory() on empty directory expected error, got nil")
	}
}

func TestSelectRandom(t *testing.T) {
	paths := []string{"/a.png", "/b.png", "/c.png"}
	got, err := SelectRandom(paths)
	if err != nil {
		t.Fatalf("SelectRandom() error = %v", err)
	}

	found := false
	for _, p := range paths {
		if got == p {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("SelectRandom() = %q, not in input list", got)
	}

	if _, err := SelectRandom(nil); err == nil {
		t.Error("SelectRandom(nil) expected error, got nil")
	}
}

func TestResolveFilePassThrough(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "wall.png")

	got, err := Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", path, err)
	}
	if got != path {
		t.Errorf("Resolve(%q) = %q, want same path", path, got)
	}
}

func TestResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "only.png")

	got, err := Resolve(context.Background(), dir)
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", dir, err)
	}
	if filepath.Dir(got) != dir {
		t.Errorf("Resolve() = %q, want file inside %q", got, dir)
	}
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "wall.png")

	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 4 || h != 4 {
		t.Errorf("Dimensions() = %dx%d, want 4x4", w, h)
	}
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantExt string
	}{
		{"png extension", "https://example.com/wall.png", ".png"},
		{"query stripped", "https://example.com/wall.jpg?size=big", ".jpg"},
		{"no extension", "https://example.com/wall", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateFilename(tt.url)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("generateFilename(%q) = %q, want suffix %q", tt.url, got, tt.wantExt)
			}
		})
	}

	// Same URL must always map to the same cache filename.
	a := generateFilename("https://example.com/wall.png")
	b := generateFilename("https://example.com/wall.png")
	if a != b {
		t.Errorf("generateFilename() not deterministic: %q != %q", a, b)
	}
}
