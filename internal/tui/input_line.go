package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a form field or search box as one shaded line of
// exactly width columns. The focused field gets a pointer in the gutter.
func renderInputLine(width int, inputView string, focused bool) string {
	if width < 4 {
		width = 4
	}

	// Newlines in the view would wrap and look like inserted lines while typing.
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)

	gutter := " "
	if focused {
		gutter = lipgloss.NewStyle().Foreground(colorBorderFocused).Render(glyphPointer())
	}
	line := lipgloss.PlaceHorizontal(
		width,
		lipgloss.Left,
		gutter+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > width {
		line = xansi.Cut(line, 0, width) + "\x1b[0m"
	}
	return line
}
