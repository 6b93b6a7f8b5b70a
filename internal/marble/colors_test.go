package marble

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chromaflow/internal/colour"
)

// writeColorsFile writes a colors.json with the given content and returns its path.
func writeColorsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "colors.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write colors.json: %v", err)
	}
	return path
}

func TestConfigUpdate(t *testing.T) {
	path := writeColorsFile(t, `{"name": "Marble", "version": 2, "colors": {"old": {"h": 1, "s": 2}}}`)

	cfg := NewConfig(path)
	params := colour.ThemeParams{Hue: 210, Saturation: 64}
	if err := cfg.Update(params); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read updated file: %v", err)
	}

	var doc struct {
		Name    string `json:"name"`
		Version int    `json:"version"`
		Colors  map[string]struct {
			H int `json:"h"`
			S int `json:"s"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("updated file is not valid JSON: %v", err)
	}

	// Sibling keys survive the rewrite.
	if doc.Name != "Marble" {
		t.Errorf("name = %q, want %q", doc.Name, "Marble")
	}
	if doc.Version != 2 {
		t.Errorf("version = %d, want 2", doc.Version)
	}

	// The colors key is replaced wholesale.
	if len(doc.Colors) != 1 {
		t.Fatalf("colors holds %d keys, want only extracted", len(doc.Colors))
	}
	extracted, ok := doc.Colors["extracted"]
	if !ok {
		t.Fatal("colors.extracted missing after Update()")
	}
	if extracted.H != 210 || extracted.S != 64 {
		t.Errorf("colors.extracted = {h: %d, s: %d}, want {h: 210, s: 64}", extracted.H, extracted.S)
	}

	// Output keeps the 4-space indentation Marble ships with.
	if !strings.Contains(string(data), "\n    \"") {
		t.Error("Update() output lost 4-space indentation")
	}
}

func TestConfigUpdateMissingFile(t *testing.T) {
	cfg := NewConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err := cfg.Update(colour.ThemeParams{Hue: 1, Saturation: 30}); err == nil {
		t.Error("Update() on missing file expected error, got nil")
	}
}

func TestConfigUpdateInvalidJSON(t *testing.T) {
	path := writeColorsFile(t, "{broken")
	cfg := NewConfig(path)
	if err := cfg.Update(colour.ThemeParams{Hue: 1, Saturation: 30}); err == nil {
		t.Error("Update() on invalid JSON expected error, got nil")
	}
}

func TestConfigRead(t *testing.T) {
	path := writeColorsFile(t, `{"colors": {"extracted": {"h": 42, "s": 77}}}`)

	cfg := NewConfig(path)
	params, err := cfg.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if params.Hue != 42 || params.Saturation != 77 {
		t.Errorf("Read() = %+v, want {Hue: 42, Saturation: 77}", params)
	}
}

func TestConfigReadNoExtracted(t *testing.T) {
	path := writeColorsFile(t, `{"colors": {}}`)
	cfg := NewConfig(path)
	if _, err := cfg.Read(); err == nil {
		t.Error("Read() without extracted colours expected error, got nil")
	}
}

func TestConfigUpdateReadRoundTrip(t *testing.T) {
	path := writeColorsFile(t, `{"colors": {}}`)

	cfg := NewConfig(path)
	want := colour.ThemeParams{Hue: 360, Saturation: 30}
	if err := cfg.Update(want); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := cfg.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != want {
		t.Errorf("Read() after Update() = %+v, want %+v", got, want)
	}
}

func TestNewConfigDefaultPath(t *testing.T) {
	cfg := NewConfig("")
	if cfg.Path() != DefaultColorsPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), DefaultColorsPath)
	}
}
