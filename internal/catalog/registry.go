package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/peertutor/backend/internal/models"
	"go.uber.org/zap"
)

// SnapshotLoader is the interface that wraps the method for reading a stored catalog
type SnapshotLoader interface {
	// Method Load retrieve the stored course list of a session.
	//
	// A session without a stored catalog yields an empty list and "nil" error.
	Load(ctx context.Context, sessionID string) ([]models.Course, error)
}

type session struct {
	store    *Store
	lastUsed time.Time
}

// Registry keeps one Store per session, loading the stored catalog on first access
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	loader   SnapshotLoader
	logger   *zap.Logger
	now      func() time.Time
	opts     []Option
}

// NewRegistry creates a new session registry.
//
// The options are applied to every store the registry creates.
func NewRegistry(loader SnapshotLoader, logger *zap.Logger, opts ...Option) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		loader:   loader,
		logger:   logger,
		now:      time.Now,
		opts:     opts,
	}
}

// Get returns the store of a session, creating it from the stored snapshot when needed.
//
// A failed load is not cached, so the next request for the session retries it.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	if store, ok := r.lookup(sessionID); ok {
		return store, nil
	}

	courses, err := r.loader.Load(ctx, sessionID)
	if err != nil {
		r.logger.Error("failed to load catalog snapshot", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have opened the session while the snapshot was read
	if s, ok := r.sessions[sessionID]; ok {
		s.lastUsed = r.now()
		return s.store, nil
	}
	store := NewStore(courses, r.opts...)
	r.sessions[sessionID] = &session{store: store, lastUsed: r.now()}
	r.logger.Debug("catalog session opened", zap.String("session_id", sessionID), zap.Int("courses", len(courses)))

	return store, nil
}

func (r *Registry) lookup(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	s.lastUsed = r.now()
	return s.store, true
}

// EvictIdle drops the sessions not used since before and returns their ids.
//
// A dropped session is reloaded from storage on its next request.
func (r *Registry) EvictIdle(before time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, s := range r.sessions {
		if !s.lastUsed.After(before) {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	if len(evicted) > 0 {
		r.logger.Debug("idle catalog sessions evicted", zap.Int("count", len(evicted)))
	}
	return evicted
}

// SessionIDs returns the ids of the sessions currently held in memory
func (r *Registry) SessionIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of open sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
