package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ytnotes/tubenotes/internal/logger"
)

// New creates a Watcher for the given config file. The parent directory is
// watched rather than the file itself, because editors typically replace
// the file on save.
func New(configPath string, handler ReloadHandler, log logger.Logger) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		configPath: absPath,
		handler:    handler,
		logger:     log,
		watcher:    fsWatcher,
	}, nil
}
