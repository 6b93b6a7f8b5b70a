package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// BrowserModel is the wallpaper browser. It lists candidate images in a
// directory and narrows the list with a fuzzy filter as the user types.
type BrowserModel struct {
	dir       string
	files     []string // absolute paths
	names     []string // basenames, parallel to files
	matches   []int    // indices into files, in display order
	cursor    int
	filtering bool
	query     string
	chosen    string
	width     int
}

// NewBrowser creates a browser over the image files found in dir.
func NewBrowser(dir string, files []string) BrowserModel {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return BrowserModel{
		dir:     dir,
		files:   files,
		names:   names,
		matches: allIndices(len(files)),
	}
}

// Choice returns the selected wallpaper path and whether one was chosen.
func (m BrowserModel) Choice() (string, bool) {
	return m.chosen, m.chosen != ""
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// applyFilter recomputes the match list for the current query. Fuzzy
// matches come back best-first, an empty query restores file order.
func (m *BrowserModel) applyFilter() {
	if m.query == "" {
		m.matches = allIndices(len(m.files))
	} else {
		found := fuzzy.Find(m.query, m.names)
		m.matches = make([]int, len(found))
		for i, f := range found {
			m.matches[i] = f.Index
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
			case "esc":
				m.filtering = false
				m.query = ""
				m.applyFilter()
			case "backspace":
				if len(m.query) > 0 {
					m.query = m.query[:len(m.query)-1]
					m.applyFilter()
				}
			default:
				if msg.Type == tea.KeyRunes {
					m.query += string(msg.Runes)
					m.applyFilter()
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			if i, ok := m.current(); ok {
				m.chosen = m.files[i]
			}
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "/":
			m.filtering = true
			return m, nil
		}
	}
	return m, nil
}

func (m BrowserModel) current() (int, bool) {
	if len(m.matches) == 0 || m.cursor < 0 || m.cursor >= len(m.matches) {
		return 0, false
	}
	return m.matches[m.cursor], true
}

func (m BrowserModel) View() string {
	var b strings.Builder

	title := "wallpapers in " + m.dir
	if m.filtering || m.query != "" {
		title += fmt.Sprintf("  [/%s]", m.query)
	}
	fmt.Fprintln(&b, titleStyle.Render(title))
	fmt.Fprintln(&b)

	if len(m.matches) == 0 {
		fmt.Fprintln(&b, "no matching wallpapers")
	}
	for pos, i := range m.matches {
		cursor := " "
		name := m.names[i]
		if pos == m.cursor {
			cursor = ">"
			name = selectedStyle.Render(name)
		}
		fmt.Fprintf(&b, "%s %s\n", cursor, name)
	}

	fmt.Fprintln(&b)
	if m.filtering {
		fmt.Fprintln(&b, helpStyle.Render("type to filter  enter keep  esc clear"))
	} else {
		fmt.Fprintln(&b, helpStyle.Render("j/k move  enter select  / filter  q quit"))
	}
	return b.String()
}

// RunBrowser runs the wallpaper browser over the given files. The second
// return is false when the user quit without selecting.
func RunBrowser(dir string, files []string) (string, bool, error) {
	prog := tea.NewProgram(NewBrowser(dir, files))
	final, err := prog.Run()
	if err != nil {
		return "", false, fmt.Errorf("wallpaper browser failed: %w", err)
	}
	m, ok := final.(BrowserModel)
	if !ok {
		return "", false, fmt.Errorf("wallpaper browser returned unexpected model")
	}
	path, chosen := m.Choice()
	return path, chosen, nil
}
