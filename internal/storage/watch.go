package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

// DefaultDebounce coalesces bursts of writes (SQLite touches the db, the
// journal and the wal for one upsert) into a single change signal.
const DefaultDebounce = 200 * time.Millisecond

// Watch reports changes under dir whose base name starts with prefix
// (empty prefix matches every file). The returned channel receives at most
// one pending signal at a time and is closed when ctx is done.
func Watch(ctx context.Context, dir, prefix string, debounce time.Duration, log *logger.Logger) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		var (
			mu     sync.Mutex
			closed bool
			timer  *time.Timer
		)
		// fire may run on a timer goroutine after the loop has exited.
		fire := func() {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case out <- struct{}{}:
			default:
			}
		}
		defer func() {
			_ = watcher.Close()
			mu.Lock()
			closed = true
			close(out)
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				base := filepath.Base(event.Name)
				if strings.HasPrefix(base, ".tmp-") || !strings.HasPrefix(base, prefix) {
					continue
				}
				log.Debug("change: %s (%s)", base, event.Op)
				if debounce <= 0 {
					fire()
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, fire)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error: %v", err)
			}
		}
	}()
	return out, nil
}
