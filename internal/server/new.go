package server

import (
	"context"
	"net/http"

	"github.com/ytnotes/tubenotes/internal/config"
	"github.com/ytnotes/tubenotes/internal/logger"
	"github.com/ytnotes/tubenotes/internal/session"
	"github.com/ytnotes/tubenotes/internal/summarizer"
	"github.com/ytnotes/tubenotes/internal/youtube"
)

type implServer struct {
	httpServer *http.Server
	mux        *http.ServeMux

	store      *session.Store
	fetcher    youtube.Fetcher
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates the web server and registers its routes.
func New(cfg config.ServerConfig, store *session.Store, fetcher youtube.Fetcher, summ summarizer.Summarizer, log logger.Logger) Server {
	s := &implServer{
		mux:        http.NewServeMux(),
		store:      store,
		fetcher:    fetcher,
		summarizer: summ,
		logger:     log,
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /video", s.handleVideo)
	s.mux.HandleFunc("POST /question", s.handleQuestion)
	s.mux.HandleFunc("GET /export", s.handleExport)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.mux,
	}

	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *implServer) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *implServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
