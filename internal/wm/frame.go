package wm

// InteractionScope owns the drag and resize controllers of one visible
// window. A new scope is acquired each time the window becomes visible and
// released when it stops being visible, so controllers never outlive the
// window they were built for.
type InteractionScope struct {
	Drag   *DragController
	Resize *ResizeController

	released bool
}

// Release ends any session in flight. A resize in progress is dropped
// without committing. Safe to call more than once.
func (s *InteractionScope) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.Drag.Release()
	s.Resize.Cancel()
}

func (s *InteractionScope) Released() bool { return s == nil || s.released }

// FrameConfig tunes the chrome geometry of a Frame.
type FrameConfig struct {
	MinSize Size
	// HeaderRows is the height of the title bar drag handle. Zero makes the
	// whole window a drag handle.
	HeaderRows int
	// Border is the width of the border ring that carries resize handles.
	Border int
}

func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		MinSize:    Size{W: DefaultMinWidth, H: DefaultMinHeight},
		HeaderRows: 1,
		Border:     1,
	}
}

// Hit is the outcome of a pointer press routed through a Frame.
type Hit int

const (
	HitNone Hit = iota
	HitBody
	HitDrag
	HitResize
	HitClose
	HitMinimize
	HitMaximize
)

// Frame binds one registry key to its on-screen geometry and pointer
// handling. It holds no state of its own beyond the window position and the
// current interaction scope.
type Frame struct {
	key    Key
	store  *Store
	bounds func() Rect
	cfg    FrameConfig

	pos    Point
	open   bool
	scope  *InteractionScope
	cancel func()
}

// NewFrame subscribes to key in store. Call Close to detach.
func NewFrame(store *Store, key Key, bounds func() Rect, cfg FrameConfig) *Frame {
	f := &Frame{key: key, store: store, bounds: bounds, cfg: cfg}
	if w, ok := store.Get(key); ok {
		f.pos = w.Home
		f.sync(w)
	}
	f.cancel = store.Subscribe(func(ch Change) {
		if ch.Key == key {
			f.sync(ch.Window)
		}
	})
	return f
}

func (f *Frame) sync(w Window) {
	if w.IsOpen && !f.open {
		f.pos = w.Home
	}
	f.open = w.IsOpen
	visible := w.Visible()
	switch {
	case visible && f.scope == nil:
		f.scope = &InteractionScope{
			Drag:   newDragController(f.store, f.key, f.bounds, f.cfg.HeaderRows, f.cfg.Border),
			Resize: newResizeController(f.store, f.key, f.cfg.MinSize, f.bounds),
		}
	case !visible && f.scope != nil:
		f.scope.Release()
		f.scope = nil
	}
}

// Close detaches the frame from the store and releases its scope.
func (f *Frame) Close() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.scope.Release()
	f.scope = nil
}

func (f *Frame) Key() Key { return f.key }

func (f *Frame) Window() (Window, bool) { return f.store.Get(f.key) }

// Visible is the sole render condition: known key, open, not minimized.
func (f *Frame) Visible() bool {
	w, ok := f.store.Get(f.key)
	return ok && w.Visible()
}

// Scope is the current interaction scope, nil while hidden.
func (f *Frame) Scope() *InteractionScope { return f.scope }

func (f *Frame) Dragging() bool { return f.scope != nil && f.scope.Drag.Active() }

func (f *Frame) Resizing() bool { return f.scope != nil && f.scope.Resize.Active() }

// Rect is where the window is drawn right now.
func (f *Frame) Rect() Rect {
	w, ok := f.store.Get(f.key)
	if !ok {
		return Rect{}
	}
	if w.IsMaximized && f.bounds != nil {
		return f.bounds()
	}
	if f.Resizing() {
		return f.scope.Resize.Rect()
	}
	return Rect{X: f.pos.X, Y: f.pos.Y, W: w.Width, H: w.Height}
}

// Buttons returns the close, minimize and maximize button cells for r.
func (f *Frame) Buttons(r Rect) (closeBtn, minimizeBtn, maximizeBtn Point) {
	y := r.Y + f.cfg.Border
	x := r.X + f.cfg.Border + 1
	return Point{X: x, Y: y}, Point{X: x + 2, Y: y}, Point{X: x + 4, Y: y}
}

// HandlePress routes a pointer press. Any press inside a visible window
// raises it, except on the close and minimize buttons.
func (f *Frame) HandlePress(p Point) Hit {
	if f.scope == nil {
		return HitNone
	}
	w, _ := f.store.Get(f.key)
	r := f.Rect()
	if !r.Contains(p) {
		return HitNone
	}

	closeBtn, minBtn, maxBtn := f.Buttons(r)
	switch p {
	case closeBtn:
		f.store.Close(f.key)
		return HitClose
	case minBtn:
		f.store.Minimize(f.key)
		return HitMinimize
	case maxBtn:
		f.store.Focus(f.key)
		f.store.ToggleMaximize(f.key)
		return HitMaximize
	}

	if !w.IsMaximized {
		if f.cfg.Border > 0 && f.scope.Resize.Press(p, r) {
			f.store.Focus(f.key)
			return HitResize
		}
		if f.scope.Drag.Press(p, r) {
			return HitDrag
		}
	}
	f.store.Focus(f.key)
	return HitBody
}

// HandleMotion feeds pointer motion to the active session, if any.
func (f *Frame) HandleMotion(p Point) bool {
	if f.scope == nil {
		return false
	}
	if pos, ok := f.scope.Drag.Move(p); ok {
		f.pos = pos
		return true
	}
	if _, ok := f.scope.Resize.Move(p); ok {
		return true
	}
	return false
}

// HandleRelease ends the active session. A resize commits its size here.
func (f *Frame) HandleRelease(p Point) bool {
	if f.scope == nil {
		return false
	}
	if f.scope.Drag.Active() {
		f.scope.Drag.Move(p)
		pos, _ := f.scope.Drag.Release()
		f.pos = pos
		return true
	}
	if f.scope.Resize.Active() {
		f.scope.Resize.Move(p)
		r, _ := f.scope.Resize.Release()
		f.pos = r.Origin()
		return true
	}
	return false
}

// MoveTo places the window at p, clamped into the bounds. Used for keyboard
// moves.
func (f *Frame) MoveTo(p Point) {
	r := f.Rect()
	r.X, r.Y = p.X, p.Y
	if f.bounds != nil {
		r = r.clampInto(f.bounds())
	}
	f.pos = r.Origin()
}
