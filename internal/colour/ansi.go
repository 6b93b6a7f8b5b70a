package colour

import (
	"strconv"
	"strings"
)

// ansiReset clears all terminal attributes.
const ansiReset = "\033[0m"

// contrastThreshold is the relative luminance above which overlay text
// switches from white to black.
const contrastThreshold = 0.5

// sgr builds a truecolour SGR escape. Plane 38 selects the foreground,
// 48 the background.
func sgr(plane int, c RGB) string {
	var b strings.Builder
	b.WriteString("\033[")
	b.WriteString(strconv.Itoa(plane))
	b.WriteString(";2;")
	b.WriteString(strconv.Itoa(int(c.R)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.G)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.B)))
	b.WriteByte('m')
	return b.String()
}

// ColourPreview renders a solid swatch block of the given width. A width
// of zero or less falls back to eight columns.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = 8
	}
	return sgr(48, c) + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText renders a swatch with text centred on it, in
// black or white depending on which contrasts better with the colour.
// Text longer than the swatch is truncated.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = 8
	}

	fg := RGB{R: 255, G: 255, B: 255}
	if Luminance(c) > contrastThreshold {
		fg = RGB{}
	}

	if len(text) > width {
		text = text[:width]
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	text = strings.Repeat(" ", left) + text + strings.Repeat(" ", right)

	return sgr(48, c) + sgr(38, fg) + text + ansiReset
}

// FormatColourWithPreview pairs a swatch with the colour's hex code, the
// line shape palette listings print per colour.
func FormatColourWithPreview(c RGB, width int) string {
	return ColourPreview(c, width) + " " + c.Hex()
}
