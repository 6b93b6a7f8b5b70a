package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNewDefaults(t *testing.T) {
	w := New("/walls/../walls/current.jpg", 0, nil)

	if w.path != "/walls/current.jpg" {
		t.Errorf("path = %q, want %q", w.path, "/walls/current.jpg")
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
	if w.logger == nil {
		t.Error("logger = nil, want null logger")
	}
}

func TestWatcherRelevant(t *testing.T) {
	w := New("/walls/current.jpg", 0, nil)

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write to watched file", fsnotify.Event{Name: "/walls/current.jpg", Op: fsnotify.Write}, true},
		{"create of watched file", fsnotify.Event{Name: "/walls/current.jpg", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "/walls/current.jpg", Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: "/walls/current.jpg", Op: fsnotify.Remove}, false},
		{"sibling file", fsnotify.Event{Name: "/walls/other.jpg", Op: fsnotify.Write}, false},
		{"unclean path", fsnotify.Event{Name: "/walls/./current.jpg", Op: fsnotify.Write}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%v %v) = %v, want %v", tt.ev.Name, tt.ev.Op, got, tt.want)
			}
		})
	}
}

func TestRunTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wall.jpg")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	done := make(chan error, 1)
	w := New(path, 50*time.Millisecond, nil)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Keep writing until the watcher reports a change, in case the first
	// writes land before the watch is registered.
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(5 * time.Second)

	var called bool
	for !called {
		select {
		case <-fired:
			called = true
		case <-tick.C:
			if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("onChange not called after repeated writes")
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
