package wm

import "testing"

var testBounds = Rect{X: 0, Y: 1, W: 120, H: 38}

func newFrameFixture(t *testing.T) (*Store, *Frame) {
	t.Helper()
	s := NewStore([]Window{
		{Key: KeyFinder, Width: 50, Height: 20, Home: Point{X: 5, Y: 3}},
		{Key: KeyTerminal, Width: 50, Height: 20, Home: Point{X: 40, Y: 8}},
	})
	f := NewFrame(s, KeyFinder, func() Rect { return testBounds }, DefaultFrameConfig())
	t.Cleanup(f.Close)
	return s, f
}

func TestFrame_HiddenUntilOpen(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	if f.Visible() || f.Scope() != nil {
		t.Fatalf("closed window must be hidden with no scope")
	}
	if hit := f.HandlePress(Point{10, 4}); hit != HitNone {
		t.Fatalf("press on hidden window: %v", hit)
	}

	s.Open(KeyFinder, nil)
	if !f.Visible() || f.Scope() == nil {
		t.Fatalf("open window must be visible with a scope")
	}
	if got := f.Rect(); got != (Rect{X: 5, Y: 3, W: 50, H: 20}) {
		t.Fatalf("rect: %+v", got)
	}
}

func TestFrame_UnknownKeyNeverRenders(t *testing.T) {
	t.Parallel()

	s, _ := newFrameFixture(t)
	f := NewFrame(s, KeyAdmin, nil, DefaultFrameConfig())
	defer f.Close()
	s.Open(KeyAdmin, nil)
	if f.Visible() || f.Scope() != nil || f.Rect() != (Rect{}) {
		t.Fatalf("unknown key must not render")
	}
}

func TestFrame_DragMovesWithoutWritingStore(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyTerminal, nil)
	s.Open(KeyFinder, nil)
	s.Focus(KeyTerminal)

	if hit := f.HandlePress(Point{20, 4}); hit != HitDrag {
		t.Fatalf("title press: got %v want drag", hit)
	}
	if top, _ := s.Top(); top.Key != KeyFinder {
		t.Fatalf("drag press should focus finder; top=%s", top.Key)
	}
	f.HandleMotion(Point{30, 10})
	if got := f.Rect().Origin(); got != (Point{15, 9}) {
		t.Fatalf("after motion: %+v", got)
	}
	f.HandleRelease(Point{30, 10})
	if f.Dragging() {
		t.Fatalf("release should end drag")
	}
	if got := f.Rect().Origin(); got != (Point{15, 9}) {
		t.Fatalf("after release: %+v", got)
	}
	if w, _ := s.Get(KeyFinder); w.Home != (Point{5, 3}) {
		t.Fatalf("drag must not write position to the store: %+v", w.Home)
	}
}

func TestFrame_DragClampedToBounds(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyFinder, nil)
	f.HandlePress(Point{20, 4})
	f.HandleMotion(Point{-100, -100})
	if got := f.Rect().Origin(); got != (Point{0, 1}) {
		t.Fatalf("clamp top-left: %+v", got)
	}
	f.HandleMotion(Point{500, 500})
	r := f.Rect()
	if r.Right() != testBounds.Right() || r.Bottom() != testBounds.Bottom() {
		t.Fatalf("clamp bottom-right: %+v", r)
	}
	f.HandleRelease(Point{500, 500})
}

func TestFrame_BodyPressFocuses(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyFinder, nil)
	s.Open(KeyTerminal, nil)
	before, _ := s.Get(KeyFinder)

	if hit := f.HandlePress(Point{20, 12}); hit != HitBody {
		t.Fatalf("body press: %v", hit)
	}
	after, _ := s.Get(KeyFinder)
	if after.ZIndex <= before.ZIndex {
		t.Fatalf("body press should raise the window")
	}
	if top, _ := s.Top(); top.Key != KeyFinder {
		t.Fatalf("top=%s", top.Key)
	}
}

func TestFrame_CloseReleasesScopeAndReopenResets(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyFinder, nil)
	first := f.Scope()

	f.HandlePress(Point{20, 4})
	f.HandleMotion(Point{30, 10})
	f.HandleRelease(Point{30, 10})

	closeBtn, _, _ := f.Buttons(f.Rect())
	if hit := f.HandlePress(closeBtn); hit != HitClose {
		t.Fatalf("close button: %v", hit)
	}
	if !first.Released() || f.Scope() != nil {
		t.Fatalf("close must release the scope")
	}
	if w, _ := s.Get(KeyFinder); w.IsOpen || w.ZIndex != s.Baseline() {
		t.Fatalf("window not closed: %+v", w)
	}

	s.Open(KeyFinder, nil)
	if f.Scope() == nil || f.Scope() == first {
		t.Fatalf("reopen must acquire a fresh scope")
	}
	if got := f.Rect().Origin(); got != (Point{5, 3}) {
		t.Fatalf("reopen should start at home; got %+v", got)
	}
}

func TestFrame_MinimizeKeepsPosition(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyFinder, nil)
	f.MoveTo(Point{12, 6})

	_, minBtn, _ := f.Buttons(f.Rect())
	if hit := f.HandlePress(minBtn); hit != HitMinimize {
		t.Fatalf("minimize button: %v", hit)
	}
	if f.Visible() || f.Scope() != nil {
		t.Fatalf("minimized window must be hidden with no scope")
	}
	w, _ := s.Get(KeyFinder)
	if !w.IsOpen {
		t.Fatalf("minimize must keep the window open")
	}

	s.Restore(KeyFinder)
	if !f.Visible() || f.Rect().Origin() != (Point{12, 6}) {
		t.Fatalf("restore should keep position; got %+v", f.Rect())
	}
}

func TestFrame_ResizeCommitsOnRelease(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyFinder, nil)

	if hit := f.HandlePress(Point{54, 22}); hit != HitResize {
		t.Fatalf("corner press: %v", hit)
	}
	f.HandleMotion(Point{70, 30})
	if r := f.Rect(); r.W != 66 || r.H != 28 {
		t.Fatalf("live rect: %+v", r)
	}
	if w, _ := s.Get(KeyFinder); w.Width != 50 || w.Height != 20 {
		t.Fatalf("size committed before release: %dx%d", w.Width, w.Height)
	}
	f.HandleRelease(Point{70, 30})
	if w, _ := s.Get(KeyFinder); w.Width != 66 || w.Height != 28 {
		t.Fatalf("size after release: %dx%d", w.Width, w.Height)
	}
	if r := f.Rect(); r != (Rect{X: 5, Y: 3, W: 66, H: 28}) {
		t.Fatalf("rect after release: %+v", r)
	}
}

func TestFrame_CloseDuringResizeDropsSession(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyFinder, nil)
	f.HandlePress(Point{54, 22})
	f.HandleMotion(Point{80, 35})
	s.Close(KeyFinder)

	if f.HandleRelease(Point{80, 35}) {
		t.Fatalf("release after close should be ignored")
	}
	if w, _ := s.Get(KeyFinder); w.Width != 50 || w.Height != 20 {
		t.Fatalf("closed window must keep its size: %dx%d", w.Width, w.Height)
	}
}

func TestFrame_MaximizeFillsBoundsAndDisablesDrag(t *testing.T) {
	t.Parallel()

	s, f := newFrameFixture(t)
	s.Open(KeyFinder, nil)
	_, _, maxBtn := f.Buttons(f.Rect())
	if hit := f.HandlePress(maxBtn); hit != HitMaximize {
		t.Fatalf("maximize button: %v", hit)
	}
	if f.Rect() != testBounds {
		t.Fatalf("maximized rect: %+v", f.Rect())
	}
	if hit := f.HandlePress(Point{40, 2}); hit != HitBody {
		t.Fatalf("title press while maximized: %v", hit)
	}
	if w, _ := s.Get(KeyFinder); w.Width != 50 {
		t.Fatalf("maximize must not touch stored size")
	}
}
