package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ytnotes/tubenotes/internal/config"
	"github.com/ytnotes/tubenotes/internal/logger"
)

// debounce absorbs the burst of events editors emit on a single save.
const debounce = 200 * time.Millisecond

type implWatcher struct {
	configPath string
	handler    ReloadHandler
	logger     logger.Logger
	watcher    *fsnotify.Watcher
}

// Start blocks watching for config changes until the context is cancelled.
// A change that fails to load or validate is logged and ignored; the
// running configuration stays in effect.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Config watcher started. Monitoring: %s", w.configPath)

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Config watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.isConfigEvent(event) {
				continue
			}

			// Collapse rapid successive events into one reload.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cfg, err := config.Load(w.configPath)
			if err != nil {
				w.logger.Warn(ctx, "Ignoring config change, reload failed: %v", err)
				continue
			}
			w.logger.Info(ctx, "Configuration reloaded from %s", w.configPath)
			w.handler(ctx, cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.configPath {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
