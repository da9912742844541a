// Package watch re-runs work when any of a fixed set of release artifacts changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Event names the artifact whose change triggered a run. When several
// artifacts change within one debounce window only the last is reported.
type Event struct {
	Path string
}

// Watcher monitors a set of files and calls back after they change.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	logger   *slog.Logger
	Ready    chan struct{}
	Debounce time.Duration

	newWatcher func() (*fsnotify.Watcher, error)
}

// New creates a Watcher for the given files. The parent directories are
// watched rather than the files themselves so that editors which save by
// renaming a temporary file are still seen.
func New(paths []string, logger *slog.Logger) *Watcher {
	w := &Watcher{
		files:      make(map[string]struct{}, len(paths)),
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		Debounce:   DefaultDebounce,
		newWatcher: fsnotify.NewWatcher,
	}
	seen := map[string]bool{}
	for _, p := range paths {
		p = filepath.Clean(p)
		w.files[p] = struct{}{}
		if d := filepath.Dir(p); !seen[d] {
			seen[d] = true
			w.dirs = append(w.dirs, d)
		}
	}
	return w
}

// Watch blocks until ctx is cancelled, calling callback once per settled burst
// of changes. Callbacks never overlap; changes made while one is running lead
// to exactly one further call.
func (w *Watcher) Watch(ctx context.Context, callback func(Event)) error {
	fw, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, d := range w.dirs {
		if err = fw.Add(d); err != nil {
			return err
		}
	}

	w.logger.Info("Watching for changes", "files", len(w.files))
	if w.Ready != nil {
		close(w.Ready)
	}

	pending := make(chan Event, 1)
	closed := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(closed)
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case err, ok := <-fw.Errors:
				if !ok {
					return nil
				}
				w.logger.Error("Watcher error", "error", err)
			case event, ok := <-fw.Events:
				if !ok {
					return nil
				}
				if ev, hit := w.match(event); hit {
					replace(pending, ev)
				}
			}
		}
	})

	g.Go(func() error {
		for {
			var ev Event
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-closed:
				return nil
			case ev = <-pending:
			}

			timer := time.NewTimer(w.Debounce)
			select {
			case <-gctx.Done():
				timer.Stop()
				return gctx.Err()
			case <-timer.C:
			}
			select {
			case ev = <-pending:
			default:
			}

			w.logger.Debug("artifact changed", "path", ev.Path)
			callback(ev)
		}
	})

	return g.Wait()
}

// match reports whether event touches a watched file.
func (w *Watcher) match(event fsnotify.Event) (Event, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return Event{}, false
	}
	p := filepath.Clean(event.Name)
	if _, ok := w.files[p]; !ok {
		return Event{}, false
	}
	return Event{Path: p}, true
}

// replace leaves ev as the only value in the single-slot channel c.
func replace(c chan Event, ev Event) {
	for {
		select {
		case c <- ev:
			return
		default:
		}
		select {
		case <-c:
		default:
		}
	}
}
