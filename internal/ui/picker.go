// Package ui implements the interactive terminal front end: the palette
// picker shown during apply and the wallpaper browser behind the pick
// command. Both are bubbletea models and neither starts on a non-terminal.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"chromaflow/internal/colour"
	"chromaflow/internal/palette"
)

// gridColumns is the number of swatches per picker row, so a full
// sixteen-colour palette lays out as two rows of eight.
const gridColumns = 8

// PickerModel is the palette picker. It shows the extracted colours as a
// swatch grid and resolves to the colour under the cursor on enter.
type PickerModel struct {
	pal    *palette.Palette
	cursor int
	chosen bool
	status string
	width  int
}

// NewPicker creates a picker over the given palette.
func NewPicker(p *palette.Palette) PickerModel {
	return PickerModel{pal: p}
}

// Choice returns the selected colour and whether a selection was made.
// Aborting with q or escape leaves the picker without a choice.
func (m PickerModel) Choice() (colour.RGB, bool) {
	if !m.chosen {
		return colour.RGB{}, false
	}
	c, err := m.pal.Get(m.cursor)
	if err != nil {
		return colour.RGB{}, false
	}
	return c, true
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			if m.pal.Len() > 0 {
				m.chosen = true
			}
			return m, tea.Quit
		case "h", "left":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "l", "right":
			if m.cursor < m.pal.Len()-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor >= gridColumns {
				m.cursor -= gridColumns
			}
			return m, nil
		case "j", "down":
			if m.cursor+gridColumns < m.pal.Len() {
				m.cursor += gridColumns
			}
			return m, nil
		case "c":
			if c, err := m.pal.Get(m.cursor); err == nil {
				if err := copyClipboard(c.Hex()); err != nil {
					m.status = "clipboard: " + err.Error()
				} else {
					m.status = "copied " + c.Hex()
				}
			}
			return m, nil
		}
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render("Pick a colour for the theme"))
	fmt.Fprintln(&b)

	rows := (m.pal.Len() + gridColumns - 1) / gridColumns
	for row := 0; row < rows; row++ {
		cells := make([]string, 0, gridColumns)
		for col := 0; col < gridColumns; col++ {
			i := row*gridColumns + col
			if i >= m.pal.Len() {
				break
			}
			c, _ := m.pal.Get(i)
			marker := " "
			if i == m.cursor {
				marker = ">"
			}
			cells = append(cells, swatchStyle(c).Render(fmt.Sprintf("%s%2d ", marker, i)))
		}
		fmt.Fprintln(&b, strings.Join(cells, " "))
	}

	if c, err := m.pal.Get(m.cursor); err == nil {
		hsl, _ := colour.Convert(c.Hex())
		params := colour.Derive(hsl)
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "%s  %s  %s\n", c.Hex(), hsl, params)
	}

	if m.status != "" {
		fmt.Fprintln(&b, statusStyle.Render(m.status))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, helpStyle.Render("h/j/k/l move  enter select  c copy hex  q quit"))
	return b.String()
}

// RunPicker runs the picker and returns the chosen colour. The second
// return is false when the user quit without selecting.
func RunPicker(p *palette.Palette) (colour.RGB, bool, error) {
	prog := tea.NewProgram(NewPicker(p))
	final, err := prog.Run()
	if err != nil {
		return colour.RGB{}, false, fmt.Errorf("palette picker failed: %w", err)
	}
	m, ok := final.(PickerModel)
	if !ok {
		return colour.RGB{}, false, fmt.Errorf("palette picker returned unexpected model")
	}
	c, chosen := m.Choice()
	return c, chosen, nil
}
