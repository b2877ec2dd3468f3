package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"deskfolio/internal/content"
	"deskfolio/internal/model"
	"deskfolio/internal/store"
	"deskfolio/internal/wm"
)

const (
	navbarHeight = 1
	dockHeight   = 1

	flashDuration   = 3 * time.Second
	mutationTimeout = 15 * time.Second
	eventsRetry     = 5 * time.Second
)

// Options configures the desktop.
type Options struct {
	// Dir is the data directory; the window layout is kept there between
	// runs. Empty disables persistence.
	Dir     string
	Backend content.Backend
	Log     *zap.Logger
	Config  store.TUIConfig
	// Now is swapped in tests.
	Now func() time.Time
}

type contentMsg struct {
	snap    content.Snapshot
	initial bool
}

type clockMsg time.Time

type mutationMsg struct {
	label string
	err   error
}

type flashClearMsg struct{ seq int }

// eventsMsg carries a fresh subscription to the server's content versions.
type eventsMsg struct {
	ch     <-chan int64
	cancel context.CancelFunc
	err    error
}

// versionMsg is one published content version; ok is false once the
// stream has ended.
type versionMsg struct {
	version int64
	ok      bool
}

type eventsRetryMsg struct{}

type desktop struct {
	opts    Options
	log     *zap.Logger
	state   store.Store
	backend content.Backend

	wm          *wm.Store
	frames      map[wm.Key]*wm.Frame
	apps        map[wm.Key]window
	unsubscribe func()

	width  int
	height int

	loading bool
	content model.Content
	locs    content.Locations
	now     time.Time

	// inWindow routes keys to the top window instead of the desktop.
	inWindow bool
	// pressed is the window whose frame owns the current pointer drag;
	// capturing is the window whose content does.
	pressed   wm.Key
	capturing wm.Key
	dirty     bool

	flash    string
	flashErr bool
	flashSeq int

	// Live reloads from a server's event stream, when the backend has one.
	events         <-chan int64
	stopEvents     context.CancelFunc
	contentVersion int64

	finder   *finderApp
	terminal *terminalApp
	photos   *photosApp
	admin    *adminApp
}

func newDesktop(opts Options) *desktop {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	d := &desktop{
		opts:    opts,
		log:     opts.Log,
		state:   store.Store{Dir: opts.Dir},
		backend: opts.Backend,
		loading: true,
		now:     opts.Now(),
		content: store.DefaultContent(),
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	d.locs = content.BuildLocations(d.content.Projects)

	d.wm = wm.NewStore(wm.DefaultCatalog())
	cfg := wm.DefaultFrameConfig()
	if opts.Config.MinWidth > 0 {
		cfg.MinSize.W = opts.Config.MinWidth
	}
	if opts.Config.MinHeight > 0 {
		cfg.MinSize.H = opts.Config.MinHeight
	}
	d.frames = map[wm.Key]*wm.Frame{}
	for _, w := range d.wm.Windows() {
		d.frames[w.Key] = wm.NewFrame(d.wm, w.Key, d.body, cfg)
	}

	d.finder = newFinderApp(d)
	d.terminal = newTerminalApp(d)
	d.photos = newPhotosApp(d)
	d.admin = newAdminApp(d)
	d.apps = map[wm.Key]window{
		wm.KeyFinder:   d.finder,
		wm.KeyTerminal: d.terminal,
		wm.KeyPhotos:   d.photos,
		wm.KeyAdmin:    d.admin,
		wm.KeySafari:   newSafariApp(d),
		wm.KeyContact:  newContactApp(d),
		wm.KeyResume:   newResumeApp(d),
		wm.KeyTxtFile:  newTxtFileApp(d),
		wm.KeyImgFile:  newImgFileApp(d),
	}
	d.terminal.shell.SetContent(d.content, d.locs)

	d.unsubscribe = d.wm.Subscribe(d.onChange)
	d.restoreDeskState()
	d.dirty = false
	return d
}

// body is the area windows live in: the screen minus navbar and dock.
func (d *desktop) body() wm.Rect {
	w, h := d.width, d.height
	if w <= 0 || h <= 0 {
		w, h = 120, 40
	}
	r := wm.Rect{X: 0, Y: navbarHeight, W: w, H: h - navbarHeight - dockHeight}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Open and Close make the desktop the terminal's window manager.
func (d *desktop) Open(key wm.Key, data wm.Payload) {
	d.wm.Open(key, data)
	if fp, ok := data.(wm.FinderPayload); ok && key == wm.KeyFinder {
		d.finder.navigate(fp.LocationID)
	}
	if d.wm.Has(key) {
		d.inWindow = true
	}
}

func (d *desktop) Close(key wm.Key) {
	d.wm.Close(key)
}

func (d *desktop) onChange(ch wm.Change) {
	d.dirty = true
	if ch.Op == wm.OpClose {
		if c, ok := d.apps[ch.Key].(closer); ok {
			c.OnClose()
		}
	}
	if !ch.Window.Visible() {
		if d.pressed == ch.Key {
			d.pressed = ""
		}
		if d.capturing == ch.Key {
			d.capturing = ""
		}
	}
	if _, ok := d.wm.Top(); !ok {
		d.inWindow = false
	}
	d.log.Debug("window change",
		zap.String("key", ch.Key.String()),
		zap.String("op", ch.Op.String()),
		zap.Int("z", ch.Window.ZIndex))
}

func (d *desktop) Init() tea.Cmd {
	return tea.Batch(d.loadCmd(true), clockTick(), tea.SetWindowTitle("Deskfolio"), d.subscribeCmd())
}

// subscribeCmd opens the backend's version stream. Backends without one
// (local SQLite) get nil.
func (d *desktop) subscribeCmd() tea.Cmd {
	w, ok := d.backend.(content.Watcher)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		ch, err := w.WatchVersions(ctx)
		if err != nil {
			cancel()
			return eventsMsg{err: err}
		}
		return eventsMsg{ch: ch, cancel: cancel}
	}
}

func (d *desktop) nextVersionCmd() tea.Cmd {
	ch := d.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		return versionMsg{version: v, ok: ok}
	}
}

func (d *desktop) closeEvents() {
	if d.stopEvents != nil {
		d.stopEvents()
		d.stopEvents = nil
	}
	d.events = nil
}

func retryEvents() tea.Cmd {
	return tea.Tick(eventsRetry, func(time.Time) tea.Msg { return eventsRetryMsg{} })
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (d *desktop) loadCmd(initial bool) tea.Cmd {
	l := &content.Loader{Source: d.backend, Log: d.log}
	if initial {
		l.MinSplash = content.DefaultMinSplash
		if ms := d.opts.Config.SplashMs; ms > 0 {
			l.MinSplash = time.Duration(ms) * time.Millisecond
		}
	}
	return func() tea.Msg {
		return contentMsg{snap: l.Load(context.Background()), initial: initial}
	}
}

// mutate runs fn against the backend off the UI loop and reloads content
// when it succeeds.
func (d *desktop) mutate(label string, fn func(ctx context.Context, w content.Writer) error) tea.Cmd {
	backend := d.backend
	if backend == nil {
		return d.setFlash("No content backend configured", true)
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		return mutationMsg{label: label, err: fn(ctx, backend)}
	}
}

func (d *desktop) applyContent(snap content.Snapshot) {
	d.content = snap.Content
	d.locs = snap.Locations
	d.terminal.shell.SetContent(d.content, d.locs)
	d.finder.refresh()
}

func (d *desktop) setFlash(msg string, isErr bool) tea.Cmd {
	d.flash = msg
	d.flashErr = isErr
	d.flashSeq++
	seq := d.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashClearMsg{seq: seq} })
}

func (d *desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case contentMsg:
		d.loading = false
		d.applyContent(msg.snap)
		if msg.snap.Err != nil {
			d.log.Warn("content unavailable", zap.Error(msg.snap.Err))
			if msg.initial {
				return d, d.setFlash("Content unavailable; showing built-in defaults", true)
			}
			return d, d.setFlash("Reload failed: "+msg.snap.Err.Error(), true)
		}
		return d, nil

	case clockMsg:
		d.now = time.Time(msg)
		if d.dirty {
			d.saveDeskState()
		}
		return d, clockTick()

	case mutationMsg:
		if msg.err != nil {
			d.log.Warn("content update failed", zap.String("action", msg.label), zap.Error(msg.err))
			return d, d.setFlash(msg.label+" failed: "+msg.err.Error(), true)
		}
		d.log.Info("content updated", zap.String("action", msg.label))
		return d, tea.Batch(d.setFlash(msg.label, false), d.loadCmd(false))

	case eventsMsg:
		if msg.err != nil {
			d.log.Warn("content events unavailable", zap.Error(msg.err))
			return d, retryEvents()
		}
		d.closeEvents()
		d.events = msg.ch
		d.stopEvents = msg.cancel
		return d, d.nextVersionCmd()

	case versionMsg:
		if !msg.ok {
			d.closeEvents()
			d.log.Debug("content events ended; reconnecting")
			return d, retryEvents()
		}
		// The first version after (re)connecting is a baseline unless it
		// moved while we were away.
		prev := d.contentVersion
		d.contentVersion = msg.version
		if prev != 0 && msg.version != prev {
			d.log.Debug("content changed on server", zap.Int64("version", msg.version))
			return d, tea.Batch(d.loadCmd(false), d.nextVersionCmd())
		}
		return d, d.nextVersionCmd()

	case eventsRetryMsg:
		if d.events != nil {
			return d, nil
		}
		return d, d.subscribeCmd()

	case linkOpenedMsg:
		switch {
		case msg.err != nil:
			return d, d.setFlash("Could not open "+msg.url+": "+msg.err.Error(), true)
		case msg.copied:
			return d, d.setFlash("Copied "+msg.url, false)
		default:
			return d, d.setFlash("Opened "+msg.url, false)
		}

	case flashClearMsg:
		if msg.seq == d.flashSeq {
			d.flash = ""
			d.flashErr = false
		}
		return d, nil

	case tea.MouseMsg:
		if d.loading {
			return d, nil
		}
		return d, d.handleMouse(msg)

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	// Anything else (cursor blink and the like) belongs to the top window.
	if top, ok := d.wm.Top(); ok {
		if app := d.apps[top.Key]; app != nil {
			return d, app.Update(msg)
		}
	}
	return d, nil
}

func (d *desktop) quit() (tea.Model, tea.Cmd) {
	d.saveDeskState()
	d.closeEvents()
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	for _, f := range d.frames {
		f.Close()
	}
	return d, tea.Quit
}

// topApp is the window that receives keys, if any.
func (d *desktop) topApp() (wm.Window, window, bool) {
	top, ok := d.wm.Top()
	if !ok {
		return wm.Window{}, nil, false
	}
	app := d.apps[top.Key]
	return top, app, app != nil
}

func (d *desktop) typing() bool {
	if !d.inWindow {
		return false
	}
	_, app, ok := d.topApp()
	return ok && app.Typing()
}

func (d *desktop) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return d.quit()
	}
	if d.loading {
		if key == "q" {
			return d.quit()
		}
		return d, nil
	}

	top, app, hasTop := d.topApp()
	switch key {
	case "ctrl+w":
		if hasTop {
			d.wm.Close(top.Key)
		}
		return d, nil
	case "alt+m":
		if hasTop {
			d.wm.Minimize(top.Key)
		}
		return d, nil
	case "alt+f":
		if hasTop {
			d.wm.ToggleMaximize(top.Key)
		}
		return d, nil
	case "alt+up", "alt+down", "alt+left", "alt+right":
		if hasTop {
			d.nudge(top.Key, key)
		}
		return d, nil
	case "tab":
		if d.inWindow && hasTop {
			if t, ok := app.(tabber); ok && t.Tab() {
				return d, nil
			}
		}
		d.cycleFocus(false)
		return d, nil
	case "shift+tab":
		d.cycleFocus(true)
		return d, nil
	case "esc":
		if d.inWindow && hasTop {
			if e, ok := app.(escaper); ok && e.Esc() {
				return d, nil
			}
		}
		d.inWindow = false
		return d, nil
	}

	if d.inWindow && hasTop {
		return d, app.Update(msg)
	}

	switch key {
	case "q":
		return d.quit()
	case "enter":
		d.inWindow = hasTop
		return d, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		items := d.dockItems()
		if i := int(key[0] - '1'); i < len(items) {
			d.activateDock(items[i].key)
		}
		return d, nil
	}
	return d, nil
}

// cycleFocus raises the bottom window. Backwards raises everything but the
// top, in stacking order, which sinks the current top to the bottom.
func (d *desktop) cycleFocus(backwards bool) {
	stack := d.wm.Stack()
	if len(stack) == 0 {
		return
	}
	d.inWindow = true
	if len(stack) == 1 {
		return
	}
	if !backwards {
		d.wm.Focus(stack[0].Key)
		return
	}
	for _, w := range stack[:len(stack)-1] {
		d.wm.Focus(w.Key)
	}
}

func (d *desktop) nudge(key wm.Key, dir string) {
	f := d.frames[key]
	r := f.Rect()
	p := r.Origin()
	switch dir {
	case "alt+up":
		p.Y--
	case "alt+down":
		p.Y++
	case "alt+left":
		p.X -= 2
	case "alt+right":
		p.X += 2
	}
	f.MoveTo(p)
}

func (d *desktop) activateDock(key wm.Key) {
	w, ok := d.wm.Get(key)
	switch {
	case !ok:
		return
	case w.IsOpen && w.IsMinimized:
		d.wm.Restore(key)
	case w.IsOpen:
		d.wm.Focus(key)
	default:
		d.wm.Open(key, nil)
	}
	d.inWindow = true
}

func (d *desktop) openProject(n model.Node) {
	d.Open(wm.KeyFinder, wm.FinderPayload{LocationID: n.ID, Name: n.Name})
}

// windowAt returns the topmost visible window under p.
func (d *desktop) windowAt(p wm.Point) (wm.Key, bool) {
	stack := d.wm.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		if d.frames[stack[i].Key].Rect().Contains(p) {
			return stack[i].Key, true
		}
	}
	return "", false
}

func (d *desktop) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := wm.Point{X: msg.X, Y: msg.Y}
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if key, ok := d.windowAt(p); ok {
			delta := 3
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -3
			}
			d.apps[key].Scroll(delta)
		}
		return nil

	case msg.Action == tea.MouseActionMotion:
		switch {
		case d.capturing != "":
			if dr, ok := d.apps[d.capturing].(dragger); ok {
				area := contentArea(d.frames[d.capturing].Rect())
				dr.Drag(wm.Point{X: p.X - area.X, Y: p.Y - area.Y}, area.W)
			}
		case d.pressed != "":
			d.frames[d.pressed].HandleMotion(p)
		}
		return nil

	case msg.Action == tea.MouseActionRelease:
		if d.capturing != "" {
			if dr, ok := d.apps[d.capturing].(dragger); ok {
				dr.Release()
			}
			d.capturing = ""
		}
		if d.pressed != "" {
			d.frames[d.pressed].HandleRelease(p)
			d.pressed = ""
		}
		return nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return d.press(p)
	}
	return nil
}

func (d *desktop) press(p wm.Point) tea.Cmd {
	if p.Y < navbarHeight {
		return d.navbarClick(p.X)
	}
	if p.Y >= d.body().Y+d.body().H {
		if key, ok := d.dockAt(p.X); ok {
			d.activateDock(key)
		}
		return nil
	}

	stack := d.wm.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		key := stack[i].Key
		f := d.frames[key]
		switch f.HandlePress(p) {
		case wm.HitNone:
			continue
		case wm.HitClose, wm.HitMinimize:
			return nil
		case wm.HitDrag, wm.HitResize:
			d.pressed = key
			d.inWindow = true
			return nil
		case wm.HitMaximize:
			d.inWindow = true
			return nil
		}

		d.inWindow = true
		area := contentArea(f.Rect())
		if !area.Contains(p) {
			return nil
		}
		cmd, capture := d.apps[key].Click(wm.Point{X: p.X - area.X, Y: p.Y - area.Y}, area.W, area.H)
		if capture {
			d.capturing = key
		}
		return cmd
	}

	d.inWindow = false
	for _, ic := range d.homeIcons() {
		if ic.rect.Contains(p) {
			d.openProject(ic.node)
			return nil
		}
	}
	return nil
}

func (d *desktop) restoreDeskState() {
	st, err := d.state.LoadDeskState()
	if err != nil {
		d.log.Warn("desk state unavailable", zap.Error(err))
		return
	}
	if st.Windows != nil {
		d.wm.Load(*st.Windows)
	}
	if st.FinderLocationID != 0 {
		d.finder.navigate(st.FinderLocationID)
	}
	if st.PhotosAlbum != "" {
		d.photos.selectAlbumTag(st.PhotosAlbum)
	}
	d.terminal.shell.LoadHistory(st.TerminalHistory)
}

func (d *desktop) saveDeskState() {
	snap := d.wm.Snapshot()
	st := &store.DeskState{
		Windows:          &snap,
		FinderLocationID: d.finder.location,
		PhotosAlbum:      d.photos.albumTag(),
		TerminalHistory:  d.terminal.shell.History(),
	}
	if err := d.state.SaveDeskState(st); err != nil {
		d.log.Warn("save desk state", zap.Error(err))
		return
	}
	d.dirty = false
}

func (d *desktop) titleFor(w wm.Window) string {
	switch p := w.Data.(type) {
	case wm.TxtFilePayload:
		return p.Name
	case wm.ImgFilePayload:
		return p.Name
	}
	if w.Key == wm.KeyFinder {
		if n, ok := d.locs.Folder(d.finder.location); ok {
			return fmt.Sprintf("Finder - %s", n.Name)
		}
	}
	if w.Key == wm.KeyTerminal {
		return "Terminal - " + d.terminal.shell.User + "@" + d.terminal.shell.Host
	}
	return w.Key.Title()
}
