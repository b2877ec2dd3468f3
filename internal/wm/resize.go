package wm

import "strings"

// Direction is the edge or corner being dragged during a resize.
type Direction uint8

const (
	DirNone Direction = iota
	DirN
	DirS
	DirE
	DirW
	DirNE
	DirNW
	DirSE
	DirSW
)

var directionNames = map[Direction]string{
	DirN:  "n",
	DirS:  "s",
	DirE:  "e",
	DirW:  "w",
	DirNE: "ne",
	DirNW: "nw",
	DirSE: "se",
	DirSW: "sw",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return ""
}

func ParseDirection(s string) (Direction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return DirNone, false
}

func (d Direction) north() bool { return d == DirN || d == DirNE || d == DirNW }
func (d Direction) south() bool { return d == DirS || d == DirSE || d == DirSW }
func (d Direction) east() bool  { return d == DirE || d == DirNE || d == DirSE }
func (d Direction) west() bool  { return d == DirW || d == DirNW || d == DirSW }

// cornerReach widens corner handles along each edge; single-cell corners are
// hard to hit with a terminal mouse.
const cornerReach = 2

// HitTest maps a point on r's border ring to a resize handle.
func HitTest(r Rect, p Point) Direction {
	if !r.Contains(p) {
		return DirNone
	}
	n := p.Y == r.Y
	s := p.Y == r.Bottom()
	w := p.X == r.X
	e := p.X == r.Right()
	nearW := p.X < r.X+cornerReach
	nearE := p.X > r.Right()-cornerReach
	nearN := p.Y < r.Y+cornerReach
	nearS := p.Y > r.Bottom()-cornerReach

	switch {
	case (n && nearW) || (w && nearN):
		return DirNW
	case (n && nearE) || (e && nearN):
		return DirNE
	case (s && nearW) || (w && nearS):
		return DirSW
	case (s && nearE) || (e && nearS):
		return DirSE
	case n:
		return DirN
	case s:
		return DirS
	case w:
		return DirW
	case e:
		return DirE
	}
	return DirNone
}

// ResizeSession is the transient state of one resize interaction.
type ResizeSession struct {
	Active        bool
	Direction     Direction
	OriginRect    Rect
	OriginPointer Point
}

// ResizeController resizes one window from its eight border handles. The
// rectangle is tracked locally on every move and committed to the Store once,
// on release.
type ResizeController struct {
	key    Key
	store  *Store
	min    Size
	bounds func() Rect

	session ResizeSession
	rect    Rect
}

func newResizeController(store *Store, key Key, min Size, bounds func() Rect) *ResizeController {
	return &ResizeController{key: key, store: store, min: min, bounds: bounds}
}

// Press starts a session when p hits a handle of r.
func (c *ResizeController) Press(p Point, r Rect) bool {
	dir := HitTest(r, p)
	if dir == DirNone {
		return false
	}
	return c.Begin(dir, p, r)
}

// Begin starts a session for an explicit direction.
func (c *ResizeController) Begin(dir Direction, p Point, r Rect) bool {
	if dir == DirNone {
		return false
	}
	c.session = ResizeSession{Active: true, Direction: dir, OriginRect: r, OriginPointer: p}
	c.rect = r
	return true
}

// Move recomputes the rectangle for pointer p.
//
// East and south follow the pointer and clamp at the minimum. West and north
// also shift the origin; a move that would take the dimension below the
// minimum is rejected for that axis only.
func (c *ResizeController) Move(p Point) (Rect, bool) {
	if !c.session.Active {
		return Rect{}, false
	}
	dir := c.session.Direction
	cur := c.rect
	var b Rect
	hasBounds := c.bounds != nil
	if hasBounds {
		b = c.bounds()
	}

	if dir.east() {
		x := p.X
		if hasBounds && x > b.Right() {
			x = b.Right()
		}
		cur.W = max(x-cur.X+1, c.min.W)
	}
	if dir.south() {
		y := p.Y
		if hasBounds && y > b.Bottom() {
			y = b.Bottom()
		}
		cur.H = max(y-cur.Y+1, c.min.H)
	}
	if dir.west() {
		x := p.X
		if hasBounds && x < b.X {
			x = b.X
		}
		dx := x - cur.X
		if w := cur.W - dx; w >= c.min.W {
			cur.X += dx
			cur.W = w
		}
	}
	if dir.north() {
		y := p.Y
		if hasBounds && y < b.Y {
			y = b.Y
		}
		dy := y - cur.Y
		if h := cur.H - dy; h >= c.min.H {
			cur.Y += dy
			cur.H = h
		}
	}

	c.rect = cur
	return cur, true
}

// Release ends the session and commits the final size to the Store.
func (c *ResizeController) Release() (Rect, bool) {
	if !c.session.Active {
		return Rect{}, false
	}
	r := c.rect
	c.session = ResizeSession{}
	w, h := r.W, r.H
	c.store.SetSize(c.key, &w, &h)
	return r, true
}

// Cancel ends the session without committing.
func (c *ResizeController) Cancel() {
	c.session = ResizeSession{}
}

func (c *ResizeController) Active() bool { return c.session.Active }

func (c *ResizeController) Session() ResizeSession { return c.session }

// Rect is the live rectangle of the current session.
func (c *ResizeController) Rect() Rect { return c.rect }
