package wm

// Point is a terminal cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width/height pair in cells.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Rect is an axis-aligned cell rectangle. W and H are counts, so the last
// column is X+W-1.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Right() int  { return r.X + r.W - 1 }
func (r Rect) Bottom() int { return r.Y + r.H - 1 }

func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// clampInto moves r so it lies inside b. When r is larger than b on an axis
// it is pinned to b's leading edge on that axis.
func (r Rect) clampInto(b Rect) Rect {
	if r.X+r.W > b.X+b.W {
		r.X = b.X + b.W - r.W
	}
	if r.X < b.X {
		r.X = b.X
	}
	if r.Y+r.H > b.Y+b.H {
		r.Y = b.Y + b.H - r.H
	}
	if r.Y < b.Y {
		r.Y = b.Y
	}
	return r
}
