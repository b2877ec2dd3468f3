package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"deskfolio/internal/model"
	"deskfolio/internal/wm"
)

const clockLayout = "Mon 2 Jan 3:04:05 PM"

func (d *desktop) View() string {
	if d.width <= 0 || d.height <= 0 {
		return ""
	}
	if d.loading {
		return d.splashView()
	}

	screen := make([]string, d.height)
	screen[0] = d.navbarView()
	body := d.body()
	bg := lipgloss.NewStyle().Background(colorDesktopBg).Render(strings.Repeat(" ", d.width))
	for y := body.Y; y < body.Y+body.H; y++ {
		screen[y] = bg
	}
	if d.height > navbarHeight {
		screen[d.height-1] = d.dockView()
	}

	iconStyle := lipgloss.NewStyle().Background(colorDesktopBg).Foreground(colorDesktopFg)
	for _, ic := range d.homeIcons() {
		overlay(screen, d.width, iconStyle.Render(fitWidth(folderGlyph, ic.rect.W)), ic.rect.X, ic.rect.Y)
		overlay(screen, d.width, iconStyle.Render(centerLabel(ic.node.Name, ic.rect.W)), ic.rect.X, ic.rect.Y+1)
	}

	stack := d.wm.Stack()
	for i, w := range stack {
		r := d.frames[w.Key].Rect()
		focused := d.inWindow && i == len(stack)-1
		overlay(screen, d.width, d.renderWindow(w, r, focused), r.X, r.Y)
	}
	return strings.Join(screen, "\n")
}

func (d *desktop) splashView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("◆ Deskfolio")
	sub := styleMuted().Render("Loading desktop…")
	block := lipgloss.JoinVertical(lipgloss.Center, title, "", sub)
	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, block)
}

type navLink struct {
	label string
	key   wm.Key
}

var navLinks = []navLink{
	{"Projects", wm.KeyFinder},
	{"Contact", wm.KeyContact},
	{"Resume", wm.KeyResume},
}

const navBrand = " ◆ Deskfolio "

// navLinkSpans returns the [start, end) columns of each nav link.
func navLinkSpans() [][2]int {
	spans := make([][2]int, 0, len(navLinks))
	x := xansi.StringWidth(navBrand) + 1
	for _, l := range navLinks {
		w := xansi.StringWidth(l.label)
		spans = append(spans, [2]int{x, x + w})
		x += w + 2
	}
	return spans
}

func (d *desktop) navbarView() string {
	st := lipgloss.NewStyle().Background(colorNavBg).Foreground(colorNavFg)
	var b strings.Builder
	b.WriteString(st.Bold(true).Render(navBrand))
	b.WriteString(st.Render(" "))
	for i, l := range navLinks {
		if i > 0 {
			b.WriteString(st.Render("  "))
		}
		b.WriteString(st.Render(l.label))
	}
	left := b.String()

	clock := st.Render(d.now.Format(clockLayout) + " ")
	mid := ""
	if d.flash != "" {
		fs := lipgloss.NewStyle().Background(colorFlashBg).Foreground(colorFlashFg)
		if d.flashErr {
			fs = fs.Background(colorFlashErrorBg)
		}
		mid = fs.Render(" " + d.flash + " ")
	}

	gap := d.width - xansi.StringWidth(left) - xansi.StringWidth(clock) - xansi.StringWidth(mid)
	if gap < 2 && mid != "" {
		mid = ""
		gap = d.width - xansi.StringWidth(left) - xansi.StringWidth(clock)
	}
	if gap < 0 {
		return fitWidth(left+clock, d.width)
	}
	leftGap := gap / 2
	return left + st.Render(strings.Repeat(" ", leftGap)) + mid + st.Render(strings.Repeat(" ", gap-leftGap)) + clock
}

func (d *desktop) navbarClick(x int) tea.Cmd {
	for i, sp := range navLinkSpans() {
		if x >= sp[0] && x < sp[1] {
			if navLinks[i].key == wm.KeyFinder {
				d.openProject(d.locs.Work)
			} else {
				d.activateDock(navLinks[i].key)
			}
			return nil
		}
	}
	return nil
}

type dockItem struct {
	key    wm.Key
	label  string
	x0, x1 int
}

var dockApps = []wm.Key{
	wm.KeyFinder,
	wm.KeySafari,
	wm.KeyPhotos,
	wm.KeyContact,
	wm.KeyTerminal,
	wm.KeyResume,
	wm.KeyAdmin,
}

// dockItems lays out the dock centered on the bottom row. File viewers only
// appear while open.
func (d *desktop) dockItems() []dockItem {
	keys := append([]wm.Key(nil), dockApps...)
	for _, k := range []wm.Key{wm.KeyTxtFile, wm.KeyImgFile} {
		if w, ok := d.wm.Get(k); ok && w.IsOpen {
			keys = append(keys, k)
		}
	}

	items := make([]dockItem, 0, len(keys))
	total := 0
	for i, k := range keys {
		label := dockLabel(i, k)
		if w, ok := d.wm.Get(k); ok && w.IsOpen {
			label += "•"
		} else {
			label += " "
		}
		items = append(items, dockItem{key: k, label: label})
		total += xansi.StringWidth(label) + 2
	}
	x := (d.width - total) / 2
	if x < 0 {
		x = 0
	}
	for i := range items {
		w := xansi.StringWidth(items[i].label) + 2
		items[i].x0, items[i].x1 = x, x+w
		x += w
	}
	return items
}

func dockLabel(i int, k wm.Key) string {
	name := k.Title()
	switch k {
	case wm.KeyResume:
		name = "Resume"
	case wm.KeyTxtFile:
		name = "Text"
	case wm.KeyImgFile:
		name = "Preview"
	case wm.KeyAdmin:
		name = "Admin"
	}
	if i < 9 {
		return string(rune('1'+i)) + " " + name
	}
	return name
}

func (d *desktop) dockAt(x int) (wm.Key, bool) {
	for _, it := range d.dockItems() {
		if x >= it.x0 && x < it.x1 {
			return it.key, true
		}
	}
	return "", false
}

func (d *desktop) dockView() string {
	base := lipgloss.NewStyle().Background(colorDockBg).Foreground(colorDockFg)
	items := d.dockItems()
	var b strings.Builder
	x := 0
	if len(items) > 0 && items[0].x0 > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", items[0].x0)))
		x = items[0].x0
	}
	for _, it := range items {
		st := base
		if w, ok := d.wm.Get(it.key); ok && w.IsOpen {
			st = st.Foreground(colorDockActive).Bold(true)
			if w.IsMinimized {
				st = st.Bold(false).Italic(true)
			}
		}
		b.WriteString(st.Render(" " + it.label + " "))
		x = it.x1
	}
	if x < d.width {
		b.WriteString(base.Render(strings.Repeat(" ", d.width-x)))
	}
	return fitWidth(b.String(), d.width)
}

const (
	folderGlyph     = "   ▄▄▄▄▄▄"
	homeIconW       = 14
	homeIconH       = 3
	homeIconsPerCol = 5
)

type homeIcon struct {
	node model.Node
	rect wm.Rect
}

// homeIcons places project folders in columns of five, filling from the
// right edge of the desktop.
func (d *desktop) homeIcons() []homeIcon {
	body := d.body()
	projects := d.locs.Work.Children
	out := make([]homeIcon, 0, len(projects))
	for i, n := range projects {
		col, row := i/homeIconsPerCol, i%homeIconsPerCol
		r := wm.Rect{
			X: body.X + body.W - (col+1)*(homeIconW+1) - 1,
			Y: body.Y + 1 + row*homeIconH,
			W: homeIconW,
			H: 2,
		}
		if r.X < body.X || r.Y+r.H > body.Y+body.H {
			continue
		}
		out = append(out, homeIcon{node: n, rect: r})
	}
	return out
}

func centerLabel(s string, w int) string {
	s = xansi.Truncate(s, w, "…")
	pad := w - xansi.StringWidth(s)
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// renderWindow draws the frame, title bar and content of one window at the
// size of r.
func (d *desktop) renderWindow(w wm.Window, r wm.Rect, focused bool) string {
	if r.W < 4 || r.H < 3 {
		return ""
	}
	innerW, innerH := r.W-2, r.H-2

	bar := titleBar(d.titleFor(w), innerW, focused)
	var body string
	if app := d.apps[w.Key]; app != nil {
		body = app.View(innerW, innerH-1)
	}
	inner := bar + "\n" + normalizePane(body, innerW, innerH-1)

	border := colorBorder
	if focused {
		border = colorBorderFocused
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(inner)
}

// titleBar puts the close, minimize and maximize buttons at columns 1, 3
// and 5, matching wm.Frame.Buttons.
func titleBar(title string, width int, focused bool) string {
	buttons := " " +
		lipgloss.NewStyle().Foreground(colorClose).Render("●") + " " +
		lipgloss.NewStyle().Foreground(colorMinimize).Render("●") + " " +
		lipgloss.NewStyle().Foreground(colorMaximize).Render("●") + " "
	const buttonsW = 7
	if width <= buttonsW {
		return fitWidth(buttons, width)
	}
	ts := lipgloss.NewStyle().Bold(focused)
	if !focused {
		ts = styleMuted()
	}
	avail := width - buttonsW*2
	if avail < 1 {
		avail = width - buttonsW
	}
	label := centerLabel(title, avail)
	return fitWidth(buttons+ts.Render(label), width)
}
