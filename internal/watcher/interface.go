package watcher

import (
	"context"

	"github.com/ytnotes/tubenotes/internal/config"
)

// Watcher monitors the configuration file for changes.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// ReloadHandler receives the freshly loaded configuration after a change.
type ReloadHandler func(ctx context.Context, cfg *config.Config)
