package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ytnotes/tubenotes/internal/config"
	"github.com/ytnotes/tubenotes/internal/logger"
	"github.com/ytnotes/tubenotes/internal/server"
	"github.com/ytnotes/tubenotes/internal/session"
	"github.com/ytnotes/tubenotes/internal/summarizer"
	"github.com/ytnotes/tubenotes/internal/watcher"
	"github.com/ytnotes/tubenotes/internal/youtube"
	"github.com/ytnotes/tubenotes/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	ctx := context.Background()

	// A local .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "tubenotes — YouTube transcript summarizer")
	log.Info(ctx, "========================================")

	apiKeys, err := loadAPIKeys()
	if err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Loaded %d Gemini API key(s)", len(apiKeys))

	// Wire dependencies
	store := session.NewStore(cfg.Session)
	exec := executor.New()
	fetcher := youtube.New(cfg.YouTube, exec, log)
	summ := summarizer.New(apiKeys, cfg.Gemini, log)
	srv := server.New(cfg.Server, store, fetcher, summ, log)

	// Config changes retune the model options without a restart.
	w, err := watcher.New(*configPath, func(ctx context.Context, cfg *config.Config) {
		summ.SetOptions(summarizer.Options{
			Model:           cfg.Gemini.Model,
			Temperature:     cfg.Gemini.Temperature,
			TopP:            cfg.Gemini.TopP,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		})
		log.Info(ctx, "Model options updated: %s (temp %.2f)", cfg.Gemini.Model, cfg.Gemini.Temperature)
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to create config watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Config watcher error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info(ctx, "Serving on %s", cfg.Server.Addr)
	log.Info(ctx, "Model: %s | yt-dlp fallback: %v", cfg.Gemini.Model, cfg.YouTube.YtDlpFallback)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}

	log.Info(ctx, "tubenotes stopped")
}

// loadAPIKeys reads GOOGLE_API_KEY from the environment. Multiple keys may
// be supplied comma-separated; they are rotated on quota errors.
func loadAPIKeys() ([]string, error) {
	raw := os.Getenv("GOOGLE_API_KEY")

	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
	}

	return keys, nil
}
