package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"chromaflow/internal/colour"
	"chromaflow/internal/palette"
)

// testPalette builds a palette of n distinct greys.
func testPalette(n int) *palette.Palette {
	colours := make([]colour.RGB, n)
	for i := range colours {
		v := uint8(i * 16)
		colours[i] = colour.RGB{R: v, G: v, B: v}
	}
	return palette.New(colours)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up", "down", "left", "right":
		types := map[string]tea.KeyType{
			"up":    tea.KeyUp,
			"down":  tea.KeyDown,
			"left":  tea.KeyLeft,
			"right": tea.KeyRight,
		}
		return tea.KeyMsg{Type: types[s]}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func sendKeys(t *testing.T, m tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func TestPickerNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"start", nil, 0},
		{"right", []string{"l"}, 1},
		{"down to second row", []string{"j"}, 8},
		{"down then up", []string{"j", "k"}, 0},
		{"left clamps at start", []string{"h", "h"}, 0},
		{"up clamps on first row", []string{"l", "k"}, 1},
		{"right clamps at end", []string{"j", "l", "l", "l", "l", "l", "l", "l", "l"}, 15},
		{"down clamps on last row", []string{"j", "j"}, 8},
		{"arrow keys", []string{"right", "down", "left", "up"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sendKeys(t, NewPicker(testPalette(16)), tt.keys...)
			pm, ok := m.(PickerModel)
			if !ok {
				t.Fatalf("Update() returned %T, want PickerModel", m)
			}
			if pm.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", pm.cursor, tt.want)
			}
		})
	}
}

func TestPickerSelect(t *testing.T) {
	m := sendKeys(t, NewPicker(testPalette(16)), "l", "l", "j")
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("Update(enter) returned nil cmd, want quit")
	}

	got, ok := m.(PickerModel).Choice()
	if !ok {
		t.Fatal("Choice() ok = false, want true")
	}
	want := colour.RGB{R: 160, G: 160, B: 160}
	if got != want {
		t.Errorf("Choice() = %v, want %v", got, want)
	}
}

func TestPickerAbort(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		t.Run(key, func(t *testing.T) {
			m, cmd := NewPicker(testPalette(16)).Update(keyMsg(key))
			if cmd == nil {
				t.Fatal("Update() returned nil cmd, want quit")
			}
			if _, ok := m.(PickerModel).Choice(); ok {
				t.Error("Choice() ok = true after abort, want false")
			}
		})
	}
}

func TestPickerEnterOnEmptyPalette(t *testing.T) {
	m, cmd := NewPicker(testPalette(0)).Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("Update(enter) returned nil cmd, want quit")
	}
	if _, ok := m.(PickerModel).Choice(); ok {
		t.Error("Choice() ok = true for empty palette, want false")
	}
}

func TestPickerView(t *testing.T) {
	m := sendKeys(t, NewPicker(testPalette(16)), "j", "l")
	view := m.(PickerModel).View()

	if !strings.Contains(view, "> 9") {
		t.Errorf("View() missing cursor marker on index 9:\n%s", view)
	}
	if !strings.Contains(view, "#909090") {
		t.Errorf("View() missing cursor colour hex:\n%s", view)
	}
	if !strings.Contains(view, "hsl(") {
		t.Error("View() missing HSL preview")
	}
	if !strings.Contains(view, "hue=") {
		t.Error("View() missing derived parameter preview")
	}
}
