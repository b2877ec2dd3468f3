package wm

const (
	// DefaultBaselineZ is the stacking order of every closed window.
	DefaultBaselineZ = 1000

	// DefaultMinWidth and DefaultMinHeight are the smallest size (in cells)
	// the resize controller will commit.
	DefaultMinWidth  = 40
	DefaultMinHeight = 10
)

// Window is the registry record for one key.
//
// Home is where the window is placed each time it opens; dragging moves the
// window visually but never writes back here.
type Window struct {
	Key         Key     `json:"key"`
	IsOpen      bool    `json:"isOpen"`
	IsMinimized bool    `json:"isMinimized"`
	IsMaximized bool    `json:"isMaximized"`
	ZIndex      int     `json:"zIndex"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Home        Point   `json:"home"`
	Data        Payload `json:"-"`
}

// Visible reports whether the window should be rendered.
func (w Window) Visible() bool {
	return w.IsOpen && !w.IsMinimized
}

// DefaultCatalog is the desktop's window set with initial sizes that fit an
// 120x40 terminal.
func DefaultCatalog() []Window {
	return []Window{
		{Key: KeyFinder, Width: 72, Height: 22, Home: Point{X: 6, Y: 3}},
		{Key: KeySafari, Width: 84, Height: 26, Home: Point{X: 10, Y: 2}},
		{Key: KeyPhotos, Width: 80, Height: 24, Home: Point{X: 14, Y: 4}},
		{Key: KeyContact, Width: 50, Height: 14, Home: Point{X: 30, Y: 6}},
		{Key: KeyTerminal, Width: 76, Height: 20, Home: Point{X: 18, Y: 5}},
		{Key: KeyResume, Width: 64, Height: 24, Home: Point{X: 26, Y: 3}},
		{Key: KeyTxtFile, Width: 64, Height: 22, Home: Point{X: 34, Y: 4}},
		{Key: KeyImgFile, Width: 60, Height: 18, Home: Point{X: 38, Y: 6}},
		{Key: KeyAdmin, Width: 80, Height: 26, Home: Point{X: 12, Y: 2}},
	}
}
