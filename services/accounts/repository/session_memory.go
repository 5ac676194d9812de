package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
)

type memorySession struct {
	session   models.Session
	expiresAt time.Time
}

// MemorySessionRepo is an in-process session store with the same sliding
// expiry semantics as the Redis store. It backs tests and single-node
// development setups.
type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
}

// NewMemorySessionRepo creates an in-memory session store
func NewMemorySessionRepo(ttl time.Duration) *MemorySessionRepo {
	return &MemorySessionRepo{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
	}
}

// CreateSession stores the session with the full sliding TTL
func (r *MemorySessionRepo) CreateSession(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = memorySession{
		session:   *session,
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

// GetSession resolves a token and refreshes its expiry
func (r *MemorySessionRepo) GetSession(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[token]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(r.sessions, token)
		return nil, accounts.ErrNotFound
	}

	// Sliding expiry
	entry.expiresAt = time.Now().Add(r.ttl)
	r.sessions[token] = entry

	session := entry.session
	return &session, nil
}

// DeleteSession destroys the session; deleting an absent token is a no-op
func (r *MemorySessionRepo) DeleteSession(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}
