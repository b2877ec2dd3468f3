package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/wm"
)

type contactApp struct {
	d      *desktop
	sel    int
	scroll int
	rows   rows
}

func newContactApp(d *desktop) *contactApp { return &contactApp{d: d} }

func (c *contactApp) View(width, height int) string {
	socials := c.d.content.Socials
	c.rows = rows{}
	c.rows.add(styleHeading().Render("Let's Connect"), -1)
	c.rows.add(styleMuted().Render("Got an idea, a bug to squash, or just want to talk tech? I'm in."), -1)
	c.rows.blank()
	if len(socials) == 0 {
		c.rows.add(styleMuted().Render("No contact links yet."), -1)
	}
	for i, sp := range socials {
		dot := "●"
		if sp.Bg != "" {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(sp.Bg)).Render(dot)
		}
		ln := " " + dot + " " + lipgloss.NewStyle().Bold(true).Render(sp.Text) + styleMuted().Render("  "+sp.Link)
		if i == c.sel && c.d.inWindow {
			ln = styleSelected().Render(fitWidth(" ● "+sp.Text+"  "+sp.Link, width))
		}
		c.rows.add(ln, i)
	}
	if c.sel >= len(socials) {
		c.sel = max(0, len(socials)-1)
	}
	out, off := c.rows.render(width, height, c.scroll, c.rows.lineOf(c.sel))
	c.scroll = off
	return out
}

func (c *contactApp) open(i int) tea.Cmd {
	socials := c.d.content.Socials
	if i < 0 || i >= len(socials) {
		return nil
	}
	return openLinkCmd(socials[i].Link)
}

func (c *contactApp) Click(p wm.Point, width, height int) (tea.Cmd, bool) {
	i, ok := c.rows.itemAt(p.Y, c.scroll)
	if !ok {
		return nil, false
	}
	c.sel = i
	return c.open(i), false
}

func (c *contactApp) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "up", "k":
		c.sel = max(0, c.sel-1)
	case "down", "j":
		c.sel = min(max(0, len(c.d.content.Socials)-1), c.sel+1)
	case "enter", " ":
		return c.open(c.sel)
	}
	return nil
}

func (c *contactApp) Scroll(delta int) { c.scroll = max(0, c.scroll+delta) }

func (c *contactApp) Typing() bool { return false }

const defaultResumeURL = "https://deskfolio.dev/files/resume.pdf"

// resumeApp stands in for the PDF preview, which a terminal can't embed.
type resumeApp struct {
	baseWindow
	d *desktop
}

func newResumeApp(d *desktop) *resumeApp { return &resumeApp{d: d} }

func (r *resumeApp) url() string {
	if u := strings.TrimSpace(r.d.opts.Config.ResumeURL); u != "" {
		return u
	}
	return defaultResumeURL
}

// Row of the download button.
const resumeButtonRow = 4

func (r *resumeApp) View(width, height int) string {
	btn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true).
		Render("Download Resume")
	lines := []string{
		styleHeading().Render("Resume.pdf"),
		"",
		"The preview can't be shown in a terminal.",
		styleMuted().Render(r.url()),
		btn,
		"",
		styleMuted().Render("enter or d: download"),
	}
	return strings.Join(lines, "\n")
}

func (r *resumeApp) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "enter" || km.String() == "d") {
		return openLinkCmd(r.url())
	}
	return nil
}

func (r *resumeApp) Click(p wm.Point, width, height int) (tea.Cmd, bool) {
	if p.Y == resumeButtonRow {
		return openLinkCmd(r.url()), false
	}
	return nil, false
}
