// Package watch re-applies the theme when a wallpaper file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// DefaultDebounce is how long the watcher waits after the last event
// before re-applying. Image writers emit bursts of partial writes.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-runs a callback when a single wallpaper file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   hclog.Logger
}

// New creates a watcher for the given file.
func New(path string, debounce time.Duration, logger hclog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger,
	}
}

// Run blocks watching the wallpaper until ctx is cancelled. onChange runs
// after each debounced burst of writes; its errors are logged and the
// watch continues.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory rather than the file. Editors and wallpaper
	// rotators typically replace the file with a rename, which drops a
	// watch held on the file itself.
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Debug("watching wallpaper", "path", w.path, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("wallpaper changed", "op", ev.Op.String(), "name", ev.Name)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			if err := onChange(ctx); err != nil {
				w.logger.Error("failed to re-apply theme", "error", err)
			}
		}
	}
}

// relevant reports whether the event concerns the watched file with an
// operation that changes its content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}
