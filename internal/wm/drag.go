package wm

// DragSession is the transient state of one pointer drag.
type DragSession struct {
	Active        bool
	OriginRect    Rect
	OriginPointer Point
}

// DragController moves one window with the pointer. Positions are relative:
// new origin = origin at press + pointer delta, clamped into the bounding
// container. Nothing is written to the Store except the focus on press.
type DragController struct {
	key    Key
	store  *Store
	bounds func() Rect
	// header is the number of rows (from the window's top) that act as the
	// drag handle. Zero means the whole window.
	header int
	inset  int

	session DragSession
	current Point
}

func newDragController(store *Store, key Key, bounds func() Rect, header, inset int) *DragController {
	return &DragController{key: key, store: store, bounds: bounds, header: header, inset: inset}
}

// Handle is the region that starts a drag for a window occupying r.
func (d *DragController) Handle(r Rect) Rect {
	if d.header <= 0 {
		return r
	}
	h := Rect{X: r.X + d.inset, Y: r.Y + d.inset, W: r.W - 2*d.inset, H: d.header}
	if h.W < 0 {
		h.W = 0
	}
	return h
}

// Press starts a drag when p is inside the handle of r. It focuses the window
// and reports whether a session began.
func (d *DragController) Press(p Point, r Rect) bool {
	if !d.Handle(r).Contains(p) {
		return false
	}
	d.store.Focus(d.key)
	d.session = DragSession{Active: true, OriginRect: r, OriginPointer: p}
	d.current = r.Origin()
	return true
}

// Move returns the window origin for pointer p. Outside a session it returns
// false.
func (d *DragController) Move(p Point) (Point, bool) {
	if !d.session.Active {
		return Point{}, false
	}
	next := d.session.OriginRect
	next.X += p.X - d.session.OriginPointer.X
	next.Y += p.Y - d.session.OriginPointer.Y
	if d.bounds != nil {
		next = next.clampInto(d.bounds())
	}
	d.current = next.Origin()
	return d.current, true
}

// Release ends the session and returns where the window ended up.
func (d *DragController) Release() (Point, bool) {
	if !d.session.Active {
		return Point{}, false
	}
	d.session = DragSession{}
	return d.current, true
}

func (d *DragController) Active() bool { return d.session.Active }

func (d *DragController) Session() DragSession { return d.session }
