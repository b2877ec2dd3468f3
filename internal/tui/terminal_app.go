package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/terminal"
	"deskfolio/internal/wm"
)

type terminalApp struct {
	d     *desktop
	shell *terminal.Shell
	input textinput.Model
	// back is how many lines the view is scrolled up from the prompt.
	back int
}

func newTerminalApp(d *desktop) *terminalApp {
	sh := terminal.New(d)
	sh.Now = d.opts.Now
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Focus()
	return &terminalApp{d: d, shell: sh, input: ti}
}

func (t *terminalApp) lines(width int) []string {
	prompt := lipgloss.NewStyle().Foreground(colorPrompt).Bold(true)
	wrap := lipgloss.NewStyle().Width(width)
	user := t.shell.User + "@" + t.shell.Host

	var out []string
	for _, e := range t.shell.Entries() {
		switch e.Kind {
		case terminal.EntryCommand:
			out = append(out, prompt.Render(user+":"+e.Path+"$")+" "+e.Command)
		default:
			for _, ln := range e.Lines {
				if ln == "" {
					out = append(out, "")
					continue
				}
				out = append(out, strings.Split(wrap.Render(ln), "\n")...)
			}
		}
	}
	out = append(out, prompt.Render(t.shell.Prompt())+" "+t.input.View())
	return out
}

func (t *terminalApp) View(width, height int) string {
	lines := t.lines(width)
	maxBack := max(0, len(lines)-height)
	t.back = min(max(t.back, 0), maxBack)
	visible, _ := scrollWindow(lines, len(lines)-height-t.back, height)
	return strings.Join(normalizeLines(visible, width, height), "\n")
}

func (t *terminalApp) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}
	switch km.String() {
	case "enter":
		res := t.shell.Exec(t.input.Value())
		t.input.SetValue("")
		t.back = 0
		t.d.dirty = true
		if res.Link != "" {
			return openLinkCmd(res.Link)
		}
		return nil
	case "up":
		if v, ok := t.shell.Prev(); ok {
			t.setInput(v)
		}
		return nil
	case "down":
		if v, ok := t.shell.Next(); ok {
			t.setInput(v)
		}
		return nil
	case "pgup":
		t.back += 10
		return nil
	case "pgdown":
		t.back -= 10
		return nil
	}
	t.back = 0
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *terminalApp) setInput(v string) {
	t.input.SetValue(v)
	t.input.CursorEnd()
}

func (t *terminalApp) Click(wm.Point, int, int) (tea.Cmd, bool) {
	return t.input.Focus(), false
}

func (t *terminalApp) Scroll(delta int) { t.back -= delta }

func (t *terminalApp) Typing() bool { return true }

// Tab completes the command name being typed.
func (t *terminalApp) Tab() bool {
	v := t.input.Value()
	c := terminal.Complete(v)
	if v == "" || c == v {
		return false
	}
	t.setInput(c)
	return true
}

// Esc clears a half-typed command before giving focus back.
func (t *terminalApp) Esc() bool {
	if t.input.Value() == "" {
		return false
	}
	t.input.SetValue("")
	return true
}
