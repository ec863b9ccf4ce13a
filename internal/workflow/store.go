package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"sermon-art-backend/internal/logging"
)

type StoreOptions struct {
	Generator  Generator
	CreditsFor func(userID uuid.UUID) CreditChecker
	Saver      ArtifactSaver
	Logger     *slog.Logger
	Now        func() time.Time
	// IdleTTL is how long an unused session is kept. Zero keeps sessions
	// until Remove.
	IdleTTL time.Duration
}

// Store holds one in-memory session per user.
type Store struct {
	opts StoreOptions

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	lastUsed map[uuid.UUID]time.Time
}

func NewStore(opts StoreOptions) *Store {
	opts.Logger = logging.OrDiscard(opts.Logger)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		opts:     opts,
		sessions: make(map[uuid.UUID]*Session),
		lastUsed: make(map[uuid.UUID]time.Time),
	}
}

// Get returns the user's session, creating an idle one on first use.
func (s *Store) Get(userID uuid.UUID) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed[userID] = s.opts.Now()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}

	var checker CreditChecker
	if s.opts.CreditsFor != nil {
		checker = s.opts.CreditsFor(userID)
	}
	sess := NewSession(Options{
		UserID:    userID,
		Generator: s.opts.Generator,
		Credits:   checker,
		Saver:     s.opts.Saver,
		Logger:    s.opts.Logger,
		Now:       s.opts.Now,
	})
	s.sessions[userID] = sess
	return sess
}

// Remove drops a user's session. A stage still running on it finishes into
// the discarded session and its result is never seen.
func (s *Store) Remove(userID uuid.UUID) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	delete(s.sessions, userID)
	delete(s.lastUsed, userID)
	s.mu.Unlock()
	if ok {
		sess.Reset()
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions that have not been used for IdleTTL. Sessions with a
// stage in flight are kept.
func (s *Store) Sweep() int {
	if s.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := s.opts.Now().Add(-s.opts.IdleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.lastUsed[id].After(cutoff) || sess.Busy() {
			continue
		}
		delete(s.sessions, id)
		delete(s.lastUsed, id)
		removed++
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.opts.IdleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.opts.Logger.Info("Dropped idle sessions", "count", n)
			}
		}
	}
}
