package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/constants"
	"github.com/ordesk/ordesk/internal/pkg/database"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
)

// SessionRepo is the Redis-backed session store. A session key holds only the
// owning user's primary key; the identity is re-resolved on every request.
// The TTL slides: every successful lookup pushes expiry out again.
type SessionRepo struct {
	redisClient *database.RedisClient
	ttl         time.Duration
}

// NewSessionRepo creates a new Redis session store
func NewSessionRepo(cfg *models.Config, redisClient *database.RedisClient) *SessionRepo {
	return &SessionRepo{
		redisClient: redisClient,
		ttl:         time.Duration(cfg.Session.TTLDays) * 24 * time.Hour,
	}
}

// CreateSession stores the session with the full sliding TTL
func (r *SessionRepo) CreateSession(ctx context.Context, session *models.Session) error {
	key := fmt.Sprintf(constants.KeySession, session.Token)
	if err := r.redisClient.Set(ctx, key, session.UserID.String(), r.ttl); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession resolves a token and refreshes its expiry. An absent or expired
// token resolves to ErrNotFound, which callers treat as unauthenticated.
func (r *SessionRepo) GetSession(ctx context.Context, token string) (*models.Session, error) {
	key := fmt.Sprintf(constants.KeySession, token)

	val, err := r.redisClient.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		// Unparseable session payloads are treated as absent
		return nil, accounts.ErrNotFound
	}

	// Sliding expiry
	if err := r.redisClient.Expire(ctx, key, r.ttl); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	return &models.Session{Token: token, UserID: userID}, nil
}

// DeleteSession destroys the session; deleting an absent token is a no-op
func (r *SessionRepo) DeleteSession(ctx context.Context, token string) error {
	key := fmt.Sprintf(constants.KeySession, token)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
