package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher is implemented by backends that can report writes made by other
// processes. Keys arrive on the channel, coalesced per burst of writes; an
// empty key means any key may have changed. The channel closes when ctx is
// done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

const watchDelay = 100 * time.Millisecond

// Watch reports keys whose files changed under the base directory.
func (p *Diskv) Watch(ctx context.Context) (<-chan string, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	keys := make(chan string, 8)
	send := func(key string) {
		select {
		case keys <- key:
		default:
			// The consumer is behind; it reloads on the next burst.
		}
	}

	go func() {
		defer close(keys)
		defer func() { _ = watcher.Close() }()

		throttle := newKeyThrottle(watchDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue("", send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Rename) && !evt.Has(fsnotify.Remove) {
					continue
				}
				if key, ok := p.keyForPath(evt.Name); ok {
					throttle.Enqueue(key, send)
				}
			}
		}
	}()
	return keys, nil
}

func (p *Diskv) keyForPath(path string) (string, bool) {
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(p.basePath) {
		return "", false
	}
	name := filepath.Base(path)
	if !strings.HasSuffix(name, diskvExt) || strings.HasPrefix(name, ".") {
		return "", false
	}
	return strings.TrimSuffix(name, diskvExt), true
}

// keyThrottle collects keys and delivers each once per delay window.
type keyThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newKeyThrottle(delay time.Duration) *keyThrottle {
	return &keyThrottle{delay: delay, pending: make(map[string]struct{})}
}

func (t *keyThrottle) Enqueue(key string, send func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[key] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() { t.flush(send) })
	}
}

// flush sends under the lock so nothing is sent once Stop returns.
func (t *keyThrottle) flush(send func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	if t.stopped {
		return
	}
	for key := range pending {
		send(key)
	}
}

func (t *keyThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
