package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"deskfolio/internal/wm"
)

// window is the content of one desktop window. Points handed to it are
// relative to its content area (inside the border, below the title bar).
type window interface {
	View(width, height int) string
	Update(msg tea.Msg) tea.Cmd
	// Click handles a press. capture asks for the following motion and
	// release events, e.g. while a sidebar splitter is dragged.
	Click(p wm.Point, width, height int) (cmd tea.Cmd, capture bool)
	Scroll(delta int)
	// Typing reports whether a text input has the keyboard.
	Typing() bool
}

type dragger interface {
	Drag(p wm.Point, width int)
	Release()
}

// tabber lets a window use tab before it cycles focus.
type tabber interface {
	Tab() bool
}

// escaper lets a window consume esc before the desktop takes focus back.
type escaper interface {
	Esc() bool
}

type closer interface {
	OnClose()
}

type baseWindow struct{}

func (baseWindow) Update(tea.Msg) tea.Cmd                   { return nil }
func (baseWindow) Click(wm.Point, int, int) (tea.Cmd, bool) { return nil, false }
func (baseWindow) Scroll(int)                               {}
func (baseWindow) Typing() bool                             { return false }

// contentArea is where a window's content goes inside its frame rect.
func contentArea(r wm.Rect) wm.Rect {
	a := wm.Rect{X: r.X + 1, Y: r.Y + 2, W: r.W - 2, H: r.H - 3}
	if a.W < 0 {
		a.W = 0
	}
	if a.H < 0 {
		a.H = 0
	}
	return a
}

// sidebar is a draggable splitter between a list and the main pane.
type sidebar struct {
	width    int
	dragging bool
}

const (
	sidebarDefault = 22
	sidebarMin     = 14
	sidebarMax     = 36
)

func (s sidebar) widthFor(total int) int {
	w := s.width
	if w == 0 {
		w = sidebarDefault
	}
	if max := s.maxFor(total); w > max {
		w = max
	}
	if w < 0 {
		w = 0
	}
	return w
}

func (s sidebar) maxFor(total int) int {
	max := total / 2
	if max > sidebarMax {
		max = sidebarMax
	}
	return max
}

// onSplitter reports whether x is the splitter column.
func (s sidebar) onSplitter(x, total int) bool {
	return x == s.widthFor(total)
}

// drag follows the pointer. Out of range widths are ignored rather than
// clamped, so the splitter stops at its limits.
func (s *sidebar) drag(x, total int) {
	if x >= sidebarMin && x <= s.maxFor(total) {
		s.width = x
	}
}
