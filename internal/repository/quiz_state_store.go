package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"skillpath-backend/internal/quizsession"
)

var ErrQuizBusy = errors.New("quiz state is locked by another request")

const (
	quizLockTTL      = 5 * time.Second
	quizLockAttempts = 20
	quizLockBackoff  = 50 * time.Millisecond
)

// QuizKey addresses the presenter of one quiz of one path for one session.
type QuizKey struct {
	SessionID uuid.UUID
	PathID    uuid.UUID
	Index     int
}

func (k QuizKey) stateKey() string {
	return fmt.Sprintf("quiz_state:%s:%s:%d", k.SessionID, k.PathID, k.Index)
}

func (k QuizKey) lockKey() string {
	return fmt.Sprintf("quiz_lock:%s:%s:%d", k.SessionID, k.PathID, k.Index)
}

// releaseLock deletes the lock only while it still holds our token, so a
// request that outlived the TTL cannot free a lock someone else now owns.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type lockClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// QuizStateStore persists presenter snapshots between requests.
type QuizStateStore struct {
	rdb   *redis.Client
	locks lockClient
	ttl   time.Duration
}

func NewQuizStateStore(rdb *redis.Client, ttl time.Duration) *QuizStateStore {
	return &QuizStateStore{rdb: rdb, locks: rdb, ttl: ttl}
}

// Load returns nil when no snapshot exists.
func (s *QuizStateStore) Load(ctx context.Context, key QuizKey) (*quizsession.State, error) {
	raw, err := s.rdb.Get(ctx, key.stateKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state quizsession.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode quiz state: %w", err)
	}
	return &state, nil
}

func (s *QuizStateStore) Save(ctx context.Context, key QuizKey, state quizsession.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key.stateKey(), data, s.ttl).Err()
}

// WithLock runs fn while holding the per-quiz lock so that concurrent
// requests cannot interleave a load and a save.
func (s *QuizStateStore) WithLock(ctx context.Context, key QuizKey, fn func(ctx context.Context) error) error {
	lockKey := key.lockKey()
	token := uuid.NewString()

	acquired := false
	for i := 0; i < quizLockAttempts; i++ {
		ok, err := s.locks.SetNX(ctx, lockKey, token, quizLockTTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire quiz lock: %w", err)
		}
		if ok {
			acquired = true
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(quizLockBackoff):
		}
	}
	if !acquired {
		return ErrQuizBusy
	}
	defer releaseLock.Run(context.Background(), s.locks, []string{lockKey}, token)

	return fn(ctx)
}
