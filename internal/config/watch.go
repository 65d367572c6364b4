package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/muurk/portctl/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of file
// events to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watch reports external edits to the store's file. It watches the parent
// directory so editors that replace the file by rename are still seen.
// Content the store itself wrote or last loaded is not reported. The
// channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) (<-chan struct{}, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	out := make(chan struct{}, 1)
	go s.watchLoop(ctx, w, target, debounce, out)
	return out, nil
}

func (s *Store) watchLoop(ctx context.Context, w *fsnotify.Watcher, target string, debounce time.Duration, out chan<- struct{}) {
	defer close(out)
	defer w.Close()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			pending = true

		case <-timer.C:
			pending = false
			data, err := os.ReadFile(target)
			if err != nil {
				// Mid-rename or deleted; a later event will follow if it comes back.
				logging.Debug("config watcher read failed", zap.Error(err))
				continue
			}
			if s.isKnownContent(data) {
				continue
			}
			select {
			case out <- struct{}{}:
			default:
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logging.Warn("config watcher error", zap.Error(err))
		}
	}
}
