// Package watch triggers trace reloads when the underlying file changes on
// disk, e.g. when a simulator finishes a new run. It only reports; the
// application layer decides whether to re-ingest.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change is
// reported. Simulators rewrite trace files in many small writes; reporting
// once at the end avoids reload storms.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a single trace file and reports settled changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
	done     chan struct{}
	log      *slog.Logger
}

// New watches path. The parent directory is watched rather than the file
// itself so rename-and-replace writes are seen. A nil logger uses
// slog.Default.
func New(path string, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()

		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		log:      log,
	}
	go w.run()

	return w, nil
}

// Changes delivers one value per settled modification of the watched file.
// The channel is never closed while the watcher is running.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)

	return w.fsw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			w.log.Debug("trace file changed", "path", w.path)
			select {
			case w.changes <- struct{}{}:
			default: // a pending notification already covers this change
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("trace file watch error", "path", w.path, "error", err)
		}
	}
}
