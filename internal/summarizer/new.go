package summarizer

import (
	"sync"

	"github.com/ytnotes/tubenotes/internal/config"
	"github.com/ytnotes/tubenotes/internal/logger"
)

type implSummarizer struct {
	keyMu      sync.Mutex
	apiKeys    []string
	currentKey int

	optMu sync.RWMutex
	opts  Options

	cfg    config.GeminiConfig
	logger logger.Logger
}

// New creates a Summarizer that rotates through the supplied Gemini API
// keys on quota errors. Generation options start from cfg and can be
// swapped at runtime.
func New(apiKeys []string, cfg config.GeminiConfig, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKeys: apiKeys,
		opts: Options{
			Model:           cfg.Model,
			Temperature:     cfg.Temperature,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		cfg:    cfg,
		logger: log,
	}
}

// SetOptions atomically replaces the generation options. In-flight calls
// keep the options they started with.
func (s *implSummarizer) SetOptions(opts Options) {
	s.optMu.Lock()
	s.opts = opts
	s.optMu.Unlock()
}

func (s *implSummarizer) options() Options {
	s.optMu.RLock()
	defer s.optMu.RUnlock()
	return s.opts
}

func (s *implSummarizer) nextKey() (string, int) {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()
	return s.apiKeys[s.currentKey], s.currentKey
}

func (s *implSummarizer) rotateKey() {
	s.keyMu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	s.keyMu.Unlock()
}
