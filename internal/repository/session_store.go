package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoPlan means the session has not generated a plan yet, or it expired.
var ErrNoPlan = errors.New("no plan stored for session")

// SessionStore keeps the latest generated markdown per anonymous session.
// Entries expire with the session.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func planKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:generatedPlanMarkdown", sessionID)
}

func (s *SessionStore) SaveMarkdown(ctx context.Context, sessionID uuid.UUID, markdown string) error {
	return s.rdb.Set(ctx, planKey(sessionID), markdown, s.ttl).Err()
}

// LoadMarkdown returns the stored markdown byte for byte.
func (s *SessionStore) LoadMarkdown(ctx context.Context, sessionID uuid.UUID) (string, error) {
	markdown, err := s.rdb.Get(ctx, planKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoPlan
	}
	if err != nil {
		return "", err
	}
	return markdown, nil
}
