package cli

import (
	"strings"
)

// Table is a column-aligned text table with optional per-column width
// caps. Cells longer than a capped column wrap onto extra lines.
type Table struct {
	headers   []string
	rows      [][]string
	gutter    int
	maxWidths map[int]int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		gutter:    2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth caps a column's width; longer cells wrap.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow adds a row, padded or truncated to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// naturalWidths returns the widest cell per column, ignoring caps.
func (t *Table) naturalWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// FitWidth caps columns, widest first, until the rendered table fits in
// total character columns. Tables that already fit are left alone. A cap
// never drops below 10, so extremely narrow terminals may still overflow.
func (t *Table) FitWidth(total int) {
	if total <= 0 {
		return
	}

	for {
		widths := t.naturalWidths()
		used := t.gutter * (len(widths) - 1)
		for i, w := range widths {
			if maxWidth, ok := t.maxWidths[i]; ok && maxWidth < w {
				w = maxWidth
			}
			used += w
		}
		over := used - total
		if over <= 0 {
			return
		}

		// Take the overflow out of the widest flexible column.
		widest := -1
		for i, w := range widths {
			if _, capped := t.maxWidths[i]; capped {
				continue
			}
			if widest < 0 || w > widths[widest] {
				widest = i
			}
		}
		if widest < 0 {
			return
		}

		capTo := widths[widest] - over
		if capTo < 10 {
			capTo = 10
		}
		t.maxWidths[widest] = capTo
	}
}

// Render formats the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap capped cells and settle the final column widths.
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}

	wrapped := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		wrapped[r] = make([][]string, len(row))
		for c, cell := range row {
			lines := []string{cell}
			if maxWidth, ok := t.maxWidths[c]; ok && maxWidth > 0 {
				lines = wrapText(cell, maxWidth)
			}
			wrapped[r][c] = lines
			for _, line := range lines {
				if len(line) > widths[c] {
					widths[c] = len(line)
				}
			}
		}
	}

	gutter := strings.Repeat(" ", t.gutter)
	var b strings.Builder
	cells := make([]string, len(t.headers))

	for i, h := range t.headers {
		cells[i] = padRight(h, widths[i])
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, gutter), " "))
	b.WriteString("\n")

	for i, w := range widths {
		cells[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(cells, gutter))
	b.WriteString("\n")

	for _, row := range wrapped {
		height := 1
		for _, lines := range row {
			if len(lines) > height {
				height = len(lines)
			}
		}
		for line := 0; line < height; line++ {
			for c := range t.headers {
				text := ""
				if c < len(row) && line < len(row[c]) {
					text = row[c][line]
				}
				cells[c] = padRight(text, widths[c])
			}
			b.WriteString(strings.TrimRight(strings.Join(cells, gutter), " "))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// padRight pads s with spaces to width. Longer strings pass through.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText wraps text to width, breaking at word boundaries where it can
// and inside words longer than a whole line where it must.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}

		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
