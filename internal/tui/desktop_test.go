package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/store"
	"deskfolio/internal/wm"
)

var testNow = time.Date(2026, 3, 4, 9, 5, 6, 0, time.UTC)

// newTestDesktop returns a 120x40 desktop over a seeded data dir, past the
// splash screen.
func newTestDesktop(t *testing.T) *desktop {
	t.Helper()
	dir := t.TempDir()
	return newTestDesktopIn(t, dir)
}

func newTestDesktopIn(t *testing.T, dir string) *desktop {
	t.Helper()
	src := content.NewStoreSource(dir)
	seed, err := store.DefaultSeed()
	if err != nil {
		t.Fatalf("DefaultSeed: %v", err)
	}
	if _, err := src.Seed(context.Background(), seed); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	d := newDesktop(Options{Dir: dir, Backend: src, Now: func() time.Time { return testNow }})
	t.Cleanup(func() { d.quit() })
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	d.Update(d.loadCmd(false)())
	if d.loading {
		t.Fatalf("desktop still loading")
	}
	return d
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+w":
		return tea.KeyMsg{Type: tea.KeyCtrlW}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	if rest, ok := strings.CutPrefix(s, "alt+"); ok {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(rest), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(d *desktop, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = d.Update(keyMsg(k))
	}
	return cmd
}

func typeText(d *desktop, s string) {
	for _, r := range s {
		d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func click(d *desktop, x, y int) tea.Cmd {
	_, cmd := d.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return cmd
}

func mouse(d *desktop, x, y int, action tea.MouseAction) {
	d.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

// drain runs cmd and feeds mutation and content results back in, following
// batches. Commands that don't answer quickly (ticks, cursor blinks) are
// dropped.
func drain(d *desktop, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(200 * time.Millisecond):
		return
	}
	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			drain(d, c)
		}
	case mutationMsg, contentMsg:
		_, next := d.Update(m)
		drain(d, next)
	}
}

func topKey(t *testing.T, d *desktop) wm.Key {
	t.Helper()
	top, ok := d.wm.Top()
	if !ok {
		t.Fatalf("no window open")
	}
	return top.Key
}

func TestDesktop_DockKeysOpenAndFocus(t *testing.T) {
	d := newTestDesktop(t)

	press(d, "1")
	if got := topKey(t, d); got != wm.KeyFinder || !d.inWindow {
		t.Fatalf("1 should open finder with focus; top=%s inWindow=%v", got, d.inWindow)
	}

	press(d, "esc")
	if d.inWindow {
		t.Fatalf("esc should hand keys back to the desktop")
	}

	press(d, "5")
	if got := topKey(t, d); got != wm.KeyTerminal {
		t.Fatalf("5 should open the terminal; top=%s", got)
	}

	press(d, "tab")
	if got := topKey(t, d); got != wm.KeyFinder {
		t.Fatalf("tab should raise the bottom window; top=%s", got)
	}
	press(d, "shift+tab")
	if got := topKey(t, d); got != wm.KeyTerminal {
		t.Fatalf("shift+tab should sink the top window; top=%s", got)
	}
}

func TestDesktop_WindowShortcuts(t *testing.T) {
	d := newTestDesktop(t)
	press(d, "1")

	press(d, "alt+f")
	if w, _ := d.wm.Get(wm.KeyFinder); !w.IsMaximized {
		t.Fatalf("alt+f should maximize")
	}
	if r := d.frames[wm.KeyFinder].Rect(); r != d.body() {
		t.Fatalf("maximized rect %+v want body %+v", r, d.body())
	}

	press(d, "alt+m")
	if w, _ := d.wm.Get(wm.KeyFinder); !w.IsMinimized || !w.IsOpen {
		t.Fatalf("alt+m should minimize: %+v", w)
	}
	if d.inWindow {
		t.Fatalf("no visible window should leave desktop focus")
	}

	press(d, "1")
	if w, _ := d.wm.Get(wm.KeyFinder); w.IsMinimized {
		t.Fatalf("dock should restore a minimized window")
	}

	press(d, "ctrl+w")
	if isOpen(d, wm.KeyFinder) {
		t.Fatalf("ctrl+w should close the top window")
	}
}

func TestDesktop_DragTitleBarMovesWindow(t *testing.T) {
	d := newTestDesktop(t)
	press(d, "1")
	start := d.frames[wm.KeyFinder].Rect()

	grab := wm.Point{X: start.X + 20, Y: start.Y + 1}
	click(d, grab.X, grab.Y)
	if d.pressed != wm.KeyFinder {
		t.Fatalf("title bar press should start a drag")
	}
	mouse(d, grab.X+10, grab.Y+4, tea.MouseActionMotion)
	mouse(d, grab.X+10, grab.Y+4, tea.MouseActionRelease)

	got := d.frames[wm.KeyFinder].Rect()
	if got.X != start.X+10 || got.Y != start.Y+4 || got.W != start.W || got.H != start.H {
		t.Fatalf("rect after drag %+v (start %+v)", got, start)
	}
	if d.pressed != "" {
		t.Fatalf("release should end the drag")
	}
}

func TestDesktop_ResizeFromCornerCommitsSize(t *testing.T) {
	d := newTestDesktop(t)
	press(d, "1")
	r := d.frames[wm.KeyFinder].Rect()

	corner := wm.Point{X: r.X + r.W - 1, Y: r.Y + r.H - 1}
	click(d, corner.X, corner.Y)
	mouse(d, corner.X+6, corner.Y+2, tea.MouseActionMotion)
	mouse(d, corner.X+6, corner.Y+2, tea.MouseActionRelease)

	w, _ := d.wm.Get(wm.KeyFinder)
	if w.Width != r.W+6 || w.Height != r.H+2 {
		t.Fatalf("size after resize %dx%d, want %dx%d", w.Width, w.Height, r.W+6, r.H+2)
	}
}

func TestDesktop_TitleBarButtons(t *testing.T) {
	d := newTestDesktop(t)
	press(d, "1")
	buttons := func() (closeBtn, minBtn, maxBtn wm.Point) {
		f := d.frames[wm.KeyFinder]
		return f.Buttons(f.Rect())
	}

	_, _, maxBtn := buttons()
	click(d, maxBtn.X, maxBtn.Y)
	if w, _ := d.wm.Get(wm.KeyFinder); !w.IsMaximized {
		t.Fatalf("maximize button")
	}
	_, _, maxBtn = buttons()
	click(d, maxBtn.X, maxBtn.Y)
	if w, _ := d.wm.Get(wm.KeyFinder); w.IsMaximized {
		t.Fatalf("maximize button should toggle back")
	}

	_, minBtn, _ := buttons()
	click(d, minBtn.X, minBtn.Y)
	if w, _ := d.wm.Get(wm.KeyFinder); !w.IsMinimized {
		t.Fatalf("minimize button")
	}
	press(d, "1")

	closeBtn, _, _ := buttons()
	click(d, closeBtn.X, closeBtn.Y)
	if isOpen(d, wm.KeyFinder) {
		t.Fatalf("close button")
	}
}

func TestDesktop_DockClickAndView(t *testing.T) {
	d := newTestDesktop(t)

	items := d.dockItems()
	if len(items) != len(dockApps) {
		t.Fatalf("file viewers should stay off the dock until opened: %d items", len(items))
	}
	photos := items[2]
	click(d, photos.x0+1, d.height-1)
	if got := topKey(t, d); got != wm.KeyPhotos {
		t.Fatalf("dock click opened %s", got)
	}

	view := d.View()
	lines := strings.Split(view, "\n")
	if len(lines) != d.height {
		t.Fatalf("view has %d lines, want %d", len(lines), d.height)
	}
	for _, want := range []string{"Deskfolio", "Wed 4 Mar 9:05:06 AM", "Library", "Photos"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestDesktop_HomeIconOpensProject(t *testing.T) {
	d := newTestDesktop(t)
	icons := d.homeIcons()
	if len(icons) != len(d.locs.Work.Children) {
		t.Fatalf("icons: %d", len(icons))
	}
	click(d, icons[1].rect.X+1, icons[1].rect.Y)
	if got := topKey(t, d); got != wm.KeyFinder {
		t.Fatalf("icon opened %s", got)
	}
	if d.finder.location != content.ProjectFolderBase+1 {
		t.Fatalf("finder at %d", d.finder.location)
	}
	if got := d.titleFor(mustGet(t, d, wm.KeyFinder)); got != "Finder - AI Resume Analyzer" {
		t.Fatalf("title %q", got)
	}
}

func mustGet(t *testing.T, d *desktop, k wm.Key) wm.Window {
	t.Helper()
	w, ok := d.wm.Get(k)
	if !ok {
		t.Fatalf("unknown window %s", k)
	}
	return w
}

func TestDesktop_NavbarLinks(t *testing.T) {
	d := newTestDesktop(t)
	spans := navLinkSpans()

	click(d, spans[1][0], 0)
	if got := topKey(t, d); got != wm.KeyContact {
		t.Fatalf("Contact link opened %s", got)
	}
	click(d, spans[0][0], 0)
	if got := topKey(t, d); got != wm.KeyFinder || d.finder.location != content.WorkLocationID {
		t.Fatalf("Projects link: top=%s location=%d", got, d.finder.location)
	}
}

func TestDesktop_TerminalDrivesWindows(t *testing.T) {
	d := newTestDesktop(t)
	press(d, "5")
	typeText(d, "open photos")
	press(d, "enter")
	if got := topKey(t, d); got != wm.KeyPhotos {
		t.Fatalf("open photos: top=%s", got)
	}

	d.wm.Focus(wm.KeyTerminal)
	typeText(d, "close photos")
	press(d, "enter")
	if isOpen(d, wm.KeyPhotos) {
		t.Fatalf("close photos should close it")
	}
	if got := d.terminal.shell.History(); len(got) != 2 {
		t.Fatalf("history: %v", got)
	}

	// q goes to the prompt, not the desktop.
	typeText(d, "q")
	if d.terminal.input.Value() != "q" {
		t.Fatalf("q should be typed while the prompt has focus")
	}
}

func TestDesktop_DeskStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d := newTestDesktopIn(t, dir)
	press(d, "5")
	typeText(d, "whoami")
	press(d, "enter")
	press(d, "esc", "3")
	d.photos.selectAlbumTag("people")
	d.finder.navigate(content.AboutLocationID)
	d.quit()

	again := newTestDesktopIn(t, dir)
	if got := topKey(t, again); got != wm.KeyPhotos {
		t.Fatalf("restored top %s", got)
	}
	if !isOpen(again, wm.KeyTerminal) {
		t.Fatalf("terminal should be restored open")
	}
	if got := again.photos.albumTag(); got != "people" {
		t.Fatalf("album %q", got)
	}
	if again.finder.location != content.AboutLocationID {
		t.Fatalf("finder location %d", again.finder.location)
	}
	if got := again.terminal.shell.History(); len(got) != 1 || got[0] != "whoami" {
		t.Fatalf("history %v", got)
	}
}

func TestDesktop_LoadingOnlyQuits(t *testing.T) {
	d := newDesktop(Options{Now: func() time.Time { return testNow }})
	defer d.quit()
	d.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	press(d, "1")
	if isOpen(d, wm.KeyFinder) {
		t.Fatalf("keys other than q are ignored while loading")
	}
	if !strings.Contains(d.View(), "Loading") {
		t.Fatalf("splash expected")
	}
	if cmd := press(d, "q"); cmd == nil {
		t.Fatalf("q should quit during the splash")
	}
}

func TestDesktop_MutationWithoutBackendFlashes(t *testing.T) {
	d := newDesktop(Options{Now: func() time.Time { return testNow }})
	defer d.quit()
	d.loading = false
	d.mutate("noop", nil)
	if !d.flashErr || d.flash == "" {
		t.Fatalf("expected an error flash, got %q", d.flash)
	}
	d.Update(flashClearMsg{seq: d.flashSeq})
	if d.flash != "" {
		t.Fatalf("flash should clear")
	}
}

// watchingSource is a local backend that also publishes content versions.
type watchingSource struct {
	content.StoreSource
	ch chan int64
}

func (w watchingSource) WatchVersions(context.Context) (<-chan int64, error) {
	return w.ch, nil
}

// runCmd executes cmd and any batch it expands to, collecting the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runCmd(c)...)
	}
	return out
}

func TestDesktop_ReloadsWhenServerVersionMoves(t *testing.T) {
	dir := t.TempDir()
	d := newTestDesktopIn(t, dir)
	src := watchingSource{StoreSource: content.NewStoreSource(dir), ch: make(chan int64, 4)}
	d.backend = src

	_, cmd := d.Update(d.subscribeCmd()())
	if d.events == nil || cmd == nil {
		t.Fatalf("expected a live subscription")
	}

	src.ch <- 1
	_, cmd = d.Update(cmd())
	if d.contentVersion != 1 {
		t.Fatalf("baseline version: %d", d.contentVersion)
	}

	if _, err := src.AddProject(context.Background(), model.Project{Name: "Pushed"}); err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	src.ch <- 2
	close(src.ch)
	_, cmd = d.Update(cmd())

	var ended bool
	for _, msg := range runCmd(cmd) {
		if v, ok := msg.(versionMsg); ok && !v.ok {
			ended = true
		}
		d.Update(msg)
	}
	var names []string
	for _, p := range d.content.Projects {
		names = append(names, p.Name)
	}
	if !strings.Contains(strings.Join(names, ","), "Pushed") {
		t.Fatalf("content was not reloaded: %v", names)
	}
	if !ended || d.events != nil {
		t.Fatalf("closed stream should drop the subscription")
	}
}

func TestDesktop_LocalBackendHasNoEventStream(t *testing.T) {
	d := newTestDesktop(t)
	if d.subscribeCmd() != nil {
		t.Fatalf("local backend should not subscribe")
	}
}

func isOpen(d *desktop, k wm.Key) bool {
	w, ok := d.wm.Get(k)
	return ok && w.IsOpen
}
