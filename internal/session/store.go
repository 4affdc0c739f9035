package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ytnotes/tubenotes/internal/config"
)

// Store maps session IDs to their in-process state. Sessions are not
// persisted; they live for the duration of the server process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      config.SessionConfig
}

// NewStore creates an empty session store.
func NewStore(cfg config.SessionConfig) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
	}
}

// Get returns the session for id, or nil when unknown.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Create allocates a new session with a fresh ID.
func (st *Store) Create() *Session {
	s := &Session{
		id:           uuid.NewString(),
		maxHistory:   st.cfg.MaxHistory,
		maxVideos:    st.cfg.MaxVideos,
		maxQuestions: st.cfg.MaxQuestions,
	}

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()

	return s
}

// GetOrCreate returns the session for id, creating a fresh one when the id
// is unknown (e.g. a stale cookie after a server restart).
func (st *Store) GetOrCreate(id string) *Session {
	if s := st.Get(id); s != nil {
		return s
	}
	return st.Create()
}
