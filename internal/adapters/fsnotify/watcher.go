// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It watches the config directory (not recursively), passes only app
// definitions through, and debounces bursts of events per file: editors
// often write, truncate and rename several times per save, and a reload
// should see the final content.
package fsnotify

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before onChange fires.
const DefaultDebounce = 50 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw       *fsnotify.Watcher
	accept   func(name string) bool
	debounce time.Duration
	done     chan struct{}
	wg       sync.WaitGroup // event loop + in-flight callbacks

	mu      sync.Mutex
	stopped bool
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher that reports only files whose base name
// passes accept. A nil accept reports every file.
func NewWatcher(accept func(name string) bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if accept == nil {
		accept = func(string) bool { return true }
	}
	return &Watcher{
		fw:       fw,
		accept:   accept,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// SetDebounce overrides DefaultDebounce. Call before Watch.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Watch starts monitoring dir.
// onChange is called with the absolute path of each changed definition.
func (w *Watcher) Watch(dir string, onChange func(filePath string)) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := w.fw.Add(absDir); err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if !w.accept(filepath.Base(event.Name)) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.schedule(event.Name, onChange)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed; fsnotify keeps delivering events

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// schedule (re)starts the quiet-period timer for path.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scheduleLocked(path, onChange)
}

// scheduleLocked replaces any pending timer for path with a fresh one.
// A replaced timer may already have fired and be waiting on w.mu, so each
// callback checks it still owns the pending entry. Caller holds w.mu.
func (w *Watcher) scheduleLocked(path string, onChange func(string)) {
	if w.stopped {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		if w.stopped || w.pending[path] != t {
			w.mu.Unlock()
			return
		}
		delete(w.pending, path)
		w.wg.Add(1)
		w.mu.Unlock()

		defer w.wg.Done()
		onChange(path)
	})
	w.pending[path] = t
}

// Stop ends monitoring and releases all resources. Pending debounced
// events are dropped and in-flight callbacks are waited for.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}
