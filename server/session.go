package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/presencedash/chart"
	"github.com/presencedash/metrics"
	"github.com/presencedash/view"
)

// Session holds the per-view controllers of one browser
type Session struct {
	ID string

	mu          sync.Mutex
	lastSeen    time.Time
	controllers map[string]*view.Controller
	newCtrl     func(view.Config) *view.Controller
}

// Controller returns the session's controller for a view, creating it on first use
func (s *Session) Controller(cfg view.Config) *view.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.controllers[cfg.Name]
	if !ok {
		c = s.newCtrl(cfg)
		s.controllers[cfg.Name] = c
	}
	return c
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionStore maps session ids to sessions and expires idle ones
type SessionStore struct {
	TTL time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	fetcher  view.Fetcher
	assets   string
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration, fetcher view.Fetcher, assetsHost string, m *metrics.Metrics, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		TTL:      ttl,
		sessions: make(map[string]*Session),
		fetcher:  fetcher,
		assets:   assetsHost,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the session for id, creating it when unknown
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	s, ok := st.sessions[id]
	if !ok {
		s = &Session{
			ID:          id,
			controllers: make(map[string]*view.Controller),
			newCtrl:     st.newController,
		}
		st.sessions[id] = s
		st.metrics.SessionStarted()
		st.logger.Debug("session started", "session", id)
	}
	s.touch(now)
	return s
}

// every view of every session loads its own chart library
func (st *SessionStore) newController(cfg view.Config) *view.Controller {
	lib := chart.NewLibrary(st.assets)
	if st.metrics != nil {
		lib.OnLoad = st.metrics.RecordLibraryLoad
	}
	var rec view.Recorder
	if st.metrics != nil {
		rec = st.metrics
	}
	return view.NewController(cfg, st.fetcher, lib,
		view.WithRecorder(rec),
		view.WithLogger(st.logger),
	)
}

// Sweep drops sessions idle for longer than TTL and returns how many went away
func (st *SessionStore) Sweep() int {
	if st.TTL <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.TTL {
			delete(st.sessions, id)
			st.metrics.SessionEnded()
			removed++
		}
	}
	if removed > 0 {
		st.logger.Info("expired sessions", "count", removed)
	}
	return removed
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
