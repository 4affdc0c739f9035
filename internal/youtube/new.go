package youtube

import (
	"net/http"

	"github.com/ytnotes/tubenotes/internal/config"
	"github.com/ytnotes/tubenotes/internal/logger"
	"github.com/ytnotes/tubenotes/pkg/executor"
)

type implFetcher struct {
	client    *http.Client
	baseURL   string
	languages []string
	logger    logger.Logger

	ytdlpFallback bool
	ytdlpPath     string
	executor      executor.Executor
}

// New creates a Fetcher that scrapes caption tracks from the watch page,
// optionally falling back to yt-dlp when scraping finds no captions.
func New(cfg config.YouTubeConfig, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		client:        &http.Client{Timeout: cfg.Timeout},
		baseURL:       "https://www.youtube.com",
		languages:     cfg.Languages,
		logger:        log,
		ytdlpFallback: cfg.YtDlpFallback,
		ytdlpPath:     cfg.YtDlpPath,
		executor:      exec,
	}
}
