// ABOUTME: Watches the config file for edits using fsnotify
// ABOUTME: Debounces bursts of events into single reload notifications

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a single config file. It watches the file's
// directory so editors that replace the file on save are still seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	debugf   func(string, ...interface{})
}

// NewWatcher starts watching the directory that holds path. The directory
// must exist.
func NewWatcher(path string, debugf func(string, ...interface{})) (*Watcher, error) {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{path: abs, watcher: fw, debounce: DefaultDebounce, debugf: debugf}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers a value on changes after each debounced burst of writes to
// the config file. It returns when ctx is done or the watcher is closed.
// Notifications are dropped while a previous one is still pending.
func (w *Watcher) Run(ctx context.Context, changes chan<- struct{}) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.debugf("[WATCHER] %s %s", event.Op, event.Name)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.debugf("[WATCHER] Error: %v", err)
		}
	}
}
