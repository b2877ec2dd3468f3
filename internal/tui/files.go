package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/wm"
)

// txtFileApp shows a text file payload as rendered markdown.
type txtFileApp struct {
	d      *desktop
	scroll int

	cacheMD string
	cacheW  int
	cache   []string
}

func newTxtFileApp(d *desktop) *txtFileApp { return &txtFileApp{d: d} }

func (t *txtFileApp) payload() (wm.TxtFilePayload, bool) {
	w, ok := t.d.wm.Get(wm.KeyTxtFile)
	if !ok {
		return wm.TxtFilePayload{}, false
	}
	p, ok := w.Data.(wm.TxtFilePayload)
	return p, ok
}

func txtMarkdown(p wm.TxtFilePayload) string {
	var b strings.Builder
	b.WriteString("# " + p.Name + "\n\n")
	if p.Subtitle != "" {
		b.WriteString("## " + p.Subtitle + "\n\n")
	}
	if p.Image != "" {
		b.WriteString("Image: <" + p.Image + ">\n\n")
	}
	for _, para := range p.Description {
		b.WriteString(para + "\n\n")
	}
	return b.String()
}

func (t *txtFileApp) View(width, height int) string {
	p, ok := t.payload()
	if !ok {
		return styleMuted().Render("No file open")
	}
	md := txtMarkdown(p)
	if md != t.cacheMD || width != t.cacheW {
		t.cacheMD, t.cacheW = md, width
		t.cache = strings.Split(renderMarkdown(md, width), "\n")
	}
	visible, off := scrollWindow(t.cache, t.scroll, height)
	t.scroll = off
	return strings.Join(visible, "\n")
}

func (t *txtFileApp) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "up", "k":
		t.Scroll(-1)
	case "down", "j":
		t.Scroll(1)
	case "pgup":
		t.Scroll(-10)
	case "pgdown", " ":
		t.Scroll(10)
	case "home", "g":
		t.scroll = 0
	}
	return nil
}

func (t *txtFileApp) Click(wm.Point, int, int) (tea.Cmd, bool) { return nil, false }

func (t *txtFileApp) Scroll(delta int) { t.scroll = max(0, t.scroll+delta) }

func (t *txtFileApp) Typing() bool { return false }

func (t *txtFileApp) OnClose() {
	t.scroll = 0
	t.cacheMD, t.cache = "", nil
}

// imgFileApp previews an image payload. Terminals can't show the picture,
// so it offers the link instead.
type imgFileApp struct {
	baseWindow
	d *desktop
}

func newImgFileApp(d *desktop) *imgFileApp { return &imgFileApp{d: d} }

func (a *imgFileApp) payload() (wm.ImgFilePayload, bool) {
	w, ok := a.d.wm.Get(wm.KeyImgFile)
	if !ok {
		return wm.ImgFilePayload{}, false
	}
	p, ok := w.Data.(wm.ImgFilePayload)
	return p, ok
}

func (a *imgFileApp) View(width, height int) string {
	p, ok := a.payload()
	if !ok {
		return styleMuted().Render("No image open")
	}
	frameW := min(width-2, 30)
	frameH := min(height-5, 8)
	var art string
	if frameW > 2 && frameH > 2 {
		art = lipgloss.NewStyle().
			Width(frameW-2).
			Height(frameH-2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorMuted).
			Render(glyphImage() + " " + p.Name)
	}
	lines := []string{
		styleHeading().Render(p.Name),
		"",
	}
	if art != "" {
		lines = append(lines, strings.Split(art, "\n")...)
		lines = append(lines, "")
	}
	lines = append(lines,
		fitWidth(p.ImageURL, width),
		styleMuted().Render("enter or click: open link"),
	)
	return strings.Join(lines, "\n")
}

func (a *imgFileApp) open() tea.Cmd {
	if p, ok := a.payload(); ok {
		return openLinkCmd(p.ImageURL)
	}
	return nil
}

func (a *imgFileApp) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "enter" || km.String() == "o") {
		return a.open()
	}
	return nil
}

func (a *imgFileApp) Click(wm.Point, int, int) (tea.Cmd, bool) { return a.open(), false }
