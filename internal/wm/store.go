package wm

import "sort"

// Op names the lifecycle operation that produced a Change.
type Op int

const (
	OpOpen Op = iota
	OpClose
	OpMinimize
	OpToggleMaximize
	OpSetSize
	OpFocus
	OpRestore
	OpLoad
)

func (o Op) String() string {
	switch o {
	case OpOpen:
		return "open"
	case OpClose:
		return "close"
	case OpMinimize:
		return "minimize"
	case OpToggleMaximize:
		return "toggle-maximize"
	case OpSetSize:
		return "set-size"
	case OpFocus:
		return "focus"
	case OpRestore:
		return "restore"
	case OpLoad:
		return "load"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after every effective mutation.
// Window is a copy of the entry after the mutation.
type Change struct {
	Key    Key
	Op     Op
	Window Window
}

// Store is the window registry plus the z-order allocator. It is the only
// writer of registry entries.
//
// Store is not safe for concurrent use; it belongs to the UI event loop.
type Store struct {
	windows  map[Key]*Window
	order    []Key
	baseline int
	nextZ    int

	subs   map[int]func(Change)
	subSeq int
}

type StoreOption func(*Store)

// WithBaseline sets the z-index every closed window resets to. The counter
// starts at baseline+1.
func WithBaseline(z int) StoreOption {
	return func(s *Store) {
		s.baseline = z
	}
}

// NewStore builds a registry from catalog. Later duplicates of a key are
// dropped; the key set is fixed from here on.
func NewStore(catalog []Window, opts ...StoreOption) *Store {
	s := &Store{
		windows:  map[Key]*Window{},
		baseline: DefaultBaselineZ,
		subs:     map[int]func(Change){},
	}
	for _, o := range opts {
		o(s)
	}
	for _, w := range catalog {
		if _, dup := s.windows[w.Key]; dup {
			continue
		}
		w := w
		w.ZIndex = s.baseline
		if !w.Key.Accepts(w.Data) {
			w.Data = nil
		}
		s.windows[w.Key] = &w
		s.order = append(s.order, w.Key)
	}
	s.nextZ = s.baseline + 1
	return s
}

// Open shows the window on top. Data replaces the current payload only when
// non-nil, so reopening without a payload keeps the previous one. A payload
// of the wrong type for key is ignored.
func (s *Store) Open(key Key, data Payload) {
	w := s.windows[key]
	if w == nil {
		return
	}
	w.IsOpen = true
	w.IsMinimized = false
	w.ZIndex = s.allocZ()
	if data != nil && key.Accepts(data) {
		w.Data = data
	}
	s.notify(key, OpOpen)
}

// Close hides the window and resets it to the baseline z-index with no
// payload.
func (s *Store) Close(key Key) {
	w := s.windows[key]
	if w == nil {
		return
	}
	w.IsOpen = false
	w.IsMinimized = false
	w.IsMaximized = false
	w.ZIndex = s.baseline
	w.Data = nil
	s.notify(key, OpClose)
}

// Minimize hides the window without closing it. Its z-index is kept.
func (s *Store) Minimize(key Key) {
	w := s.windows[key]
	if w == nil {
		return
	}
	w.IsMinimized = true
	s.notify(key, OpMinimize)
}

// Restore un-minimizes an open window and raises it. Closed windows are
// left at the baseline.
func (s *Store) Restore(key Key) {
	w := s.windows[key]
	if w == nil || !w.IsOpen {
		return
	}
	w.IsMinimized = false
	w.ZIndex = s.allocZ()
	s.notify(key, OpRestore)
}

func (s *Store) ToggleMaximize(key Key) {
	w := s.windows[key]
	if w == nil {
		return
	}
	w.IsMaximized = !w.IsMaximized
	s.notify(key, OpToggleMaximize)
}

// SetSize updates whichever dimension is non-nil. Values are stored as given;
// enforcing minimum sizes is the caller's job.
func (s *Store) SetSize(key Key, width, height *int) {
	w := s.windows[key]
	if w == nil {
		return
	}
	if width != nil {
		w.Width = *width
	}
	if height != nil {
		w.Height = *height
	}
	s.notify(key, OpSetSize)
}

// Focus raises the window to the top of the stack.
func (s *Store) Focus(key Key) {
	w := s.windows[key]
	if w == nil {
		return
	}
	w.ZIndex = s.allocZ()
	s.notify(key, OpFocus)
}

func (s *Store) allocZ() int {
	z := s.nextZ
	s.nextZ++
	return z
}

// Has reports catalog membership.
func (s *Store) Has(key Key) bool {
	_, ok := s.windows[key]
	return ok
}

func (s *Store) Get(key Key) (Window, bool) {
	w := s.windows[key]
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// Windows returns copies of every entry in catalog order.
func (s *Store) Windows() []Window {
	out := make([]Window, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, *s.windows[k])
	}
	return out
}

// Stack returns the visible windows, bottom first.
func (s *Store) Stack() []Window {
	var out []Window
	for _, k := range s.order {
		w := s.windows[k]
		if w.Visible() {
			out = append(out, *w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Top returns the visible window with the highest z-index.
func (s *Store) Top() (Window, bool) {
	st := s.Stack()
	if len(st) == 0 {
		return Window{}, false
	}
	return st[len(st)-1], true
}

// NextZ is the value the next Open/Focus will assign.
func (s *Store) NextZ() int { return s.nextZ }

func (s *Store) Baseline() int { return s.baseline }

// Subscribe registers fn for every future Change. Calling the returned
// function removes the subscription; it is safe to call more than once.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.subSeq++
	id := s.subSeq
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

func (s *Store) notify(key Key, op Op) {
	if len(s.subs) == 0 {
		return
	}
	ch := Change{Key: key, Op: op, Window: *s.windows[key]}
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn := s.subs[id]; fn != nil {
			fn(ch)
		}
	}
}
