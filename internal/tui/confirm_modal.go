package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusConfirm
)

// renderConfirm draws a confirmation prompt. The buttons sit on the last
// line; confirmButtonAt maps a column on that line back to a button.
func renderConfirm(width int, title, body, confirmLabel, cancelLabel string, focus confirmFocus) string {
	// No borders: nesting bordered boxes inside a window leaves background
	// artifacts in some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := confirm + " " + cancel

	lines := []string{
		styleHeading().Render(title),
		"",
		lipgloss.NewStyle().Width(width).Render(body),
		"",
		styleMuted().Render("tab: focus   enter: select   esc: cancel"),
		controls,
	}
	return strings.Join(lines, "\n")
}

func confirmButtonAt(x int, confirmLabel, cancelLabel string) (confirmFocus, bool) {
	cw := xansi.StringWidth(confirmLabel) + 2
	kw := xansi.StringWidth(cancelLabel) + 2
	switch {
	case x >= 0 && x < cw:
		return confirmFocusConfirm, true
	case x > cw && x <= cw+kw:
		return confirmFocusCancel, true
	}
	return 0, false
}
