// Package watcher provides debounced directory watching, used to hot
// reload dashboard preset files.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned for operations on a closed Watcher.
var ErrClosed = errors.New("watcher: closed")

// Handler receives the coalesced set of changed paths.
type Handler func(paths []string)

// Watcher watches directories and invokes the handler once per quiet
// period, with rapid event bursts coalesced into one call.
type Watcher struct {
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	handler   Handler
	match     func(path string) bool

	mu      sync.Mutex
	pending map[string]struct{}
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter limits events to paths the predicate accepts.
func WithFilter(match func(path string) bool) Option {
	return func(w *Watcher) { w.match = match }
}

// New creates a Watcher delivering debounced change sets to handler.
func New(handler Handler, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:        fs,
		debouncer: NewDebouncer(DefaultDebounceDuration),
		handler:   handler,
		pending:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.loop()
	return w, nil
}

// Add watches a directory. The directory must exist.
func (w *Watcher) Add(dir string) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if info, err := os.Stat(dir); err != nil {
		return err
	} else if !info.IsDir() {
		return errors.New("watcher: not a directory: " + dir)
	}
	return w.fs.Add(dir)
}

// Close stops the watcher. Pending debounced deliveries are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	w.debouncer.Cancel()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
				!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if w.match != nil && !w.match(path) {
				continue
			}
			w.mu.Lock()
			w.pending[path] = struct{}{}
			w.mu.Unlock()
			w.debouncer.Trigger(w.flush)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event delivers.
		}
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()
	w.handler(paths)
}
