package web

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type contentHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newContentHub() *contentHub {
	return &contentHub{subs: map[chan struct{}]struct{}{}}
}

func (h *contentHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *contentHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *contentHub) subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// contentBroadcaster bumps a version counter and wakes subscribers whenever
// content changes, either through this server or through another process
// writing the same SQLite file.
type contentBroadcaster struct {
	dir string
	log *zap.Logger
	hub *contentHub

	mu      sync.Mutex
	version int64

	watcher  *fsnotify.Watcher
	debounce time.Duration
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newContentBroadcaster(dir string, log *zap.Logger) *contentBroadcaster {
	return &contentBroadcaster{
		dir:      filepath.Clean(strings.TrimSpace(dir)),
		log:      log,
		hub:      newContentHub(),
		version:  1,
		debounce: 250 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins watching the data directory. Without a watcher the
// broadcaster still serves in-process bumps.
func (b *contentBroadcaster) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		close(b.doneCh)
		return err
	}
	if err := w.Add(b.dir); err != nil {
		_ = w.Close()
		close(b.doneCh)
		return err
	}
	b.watcher = w
	go b.watchLoop()
	return nil
}

func (b *contentBroadcaster) Stop() {
	if b == nil {
		return
	}
	b.stopOnce.Do(func() {
		close(b.stopCh)
		if b.watcher != nil {
			<-b.doneCh
			_ = b.watcher.Close()
		}
	})
}

func (b *contentBroadcaster) Version() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

func (b *contentBroadcaster) bump(reason string) {
	b.mu.Lock()
	b.version++
	v := b.version
	b.mu.Unlock()
	b.log.Debug("content changed", zap.String("reason", reason), zap.Int64("version", v))
	b.hub.broadcast()
}

func isContentFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, "content.sqlite")
}

func (b *contentBroadcaster) watchLoop() {
	defer close(b.doneCh)

	var (
		pending bool
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-b.stopCh:
			return
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if !isContentFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !pending {
				pending = true
				if timer == nil {
					timer = time.NewTimer(b.debounce)
				} else {
					timer.Reset(b.debounce)
				}
				fire = timer.C
			}
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.log.Warn("content watcher error", zap.Error(err))
		case <-fire:
			pending = false
			fire = nil
			b.bump("file")
		}
	}
}
