package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zafiro/crm/internal/core/domain"
)

// SessionStore keeps live sessions in Redis.
// Key format: session:<session_id> -> user id, expiring with the session.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Save records the session until its expiry. Already expired sessions are
// rejected.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), session.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// UserID returns the user bound to a live session.
func (s *SessionStore) UserID(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrUnauthenticated
		}
		return "", fmt.Errorf("session lookup: %w", err)
	}
	return userID, nil
}

// Delete removes the session. Unknown sessions are ignored.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
