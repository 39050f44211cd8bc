package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"skillpath-backend/internal/logger"
	"skillpath-backend/internal/models"
	"skillpath-backend/internal/quizsession"
	"skillpath-backend/internal/repository"
)

type memoryStateStore struct {
	states map[repository.QuizKey]quizsession.State
	locks  int
}

func (m *memoryStateStore) Load(_ context.Context, key repository.QuizKey) (*quizsession.State, error) {
	s, ok := m.states[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memoryStateStore) Save(_ context.Context, key repository.QuizKey, state quizsession.State) error {
	m.states[key] = state
	return nil
}

func (m *memoryStateStore) WithLock(ctx context.Context, _ repository.QuizKey, fn func(ctx context.Context) error) error {
	m.locks++
	return fn(ctx)
}

type memoryAttempts struct {
	attempts []*models.QuizAttempt
}

func (m *memoryAttempts) Create(_ context.Context, a *models.QuizAttempt) error {
	a.ID = uuid.New()
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memoryAttempts) ListByPath(_ context.Context, pathID uuid.UUID) ([]*models.QuizAttempt, error) {
	var out []*models.QuizAttempt
	for _, a := range m.attempts {
		if a.PathID == pathID {
			out = append(out, a)
		}
	}
	return out, nil
}

type quizFixture struct {
	svc      *QuizService
	states   *memoryStateStore
	attempts *memoryAttempts
	key      repository.QuizKey
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	pf := newPathFixture()
	ctx := context.Background()
	session := uuid.New()

	resp, err := pf.svc.RequestGeneration(ctx, session, validProfile())
	if err != nil {
		t.Fatalf("request generation: %v", err)
	}
	if _, err := pf.svc.ProcessGeneration(ctx, resp.PathID, func(int, string) {}); err != nil {
		t.Fatalf("process generation: %v", err)
	}

	f := &quizFixture{
		states:   &memoryStateStore{states: make(map[repository.QuizKey]quizsession.State)},
		attempts: &memoryAttempts{},
		key:      repository.QuizKey{SessionID: session, PathID: resp.PathID, Index: 0},
	}
	f.svc = NewQuizService(pf.svc, f.states, f.attempts, logger.Nop())
	return f
}

func TestQuizService_FullRound(t *testing.T) {
	f := newQuizFixture(t)
	ctx := context.Background()

	v, err := f.svc.View(ctx, f.key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.TopicTitle != "Go Básico" || len(v.View.Questions) != 2 || v.View.CanSubmit {
		t.Fatalf("unexpected initial view: %+v", v)
	}

	var cerr *ConflictError
	if _, err := f.svc.Submit(ctx, f.key); !errors.As(err, &cerr) {
		t.Fatalf("expected conflict when submitting unanswered quiz, got %v", err)
	}

	if _, err := f.svc.Select(ctx, f.key, 0, 2); err != nil {
		t.Fatalf("select: %v", err)
	}
	v, err = f.svc.Select(ctx, f.key, 1, 1)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !v.View.CanSubmit {
		t.Fatalf("expected quiz to be submittable")
	}

	v, err = f.svc.Submit(ctx, f.key)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if v.View.Result == nil || v.View.Result.CorrectCount != 1 || v.View.Result.Band != "neutral" {
		t.Fatalf("unexpected result: %+v", v.View.Result)
	}
	if len(f.attempts.attempts) != 1 || f.attempts.attempts[0].ScorePercent != 50 {
		t.Fatalf("expected one recorded attempt at 50%%, got %+v", f.attempts.attempts)
	}

	if _, err := f.svc.Select(ctx, f.key, 0, 0); !errors.As(err, &cerr) {
		t.Fatalf("expected conflict when selecting after reveal, got %v", err)
	}

	v, err = f.svc.Reset(ctx, f.key)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if v.View.Phase != "answering" || v.View.Result != nil {
		t.Fatalf("expected fresh quiz after reset, got %+v", v.View)
	}

	attempts, err := f.svc.Attempts(ctx, f.key.SessionID, f.key.PathID)
	if err != nil || len(attempts) != 1 {
		t.Fatalf("expected attempt history, got %v, %v", attempts, err)
	}
}

func TestQuizService_InvalidSelection(t *testing.T) {
	f := newQuizFixture(t)

	var verr *ValidationError
	if _, err := f.svc.Select(context.Background(), f.key, 5, 0); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.states.states) != 0 {
		t.Fatalf("rejected selection must not be saved")
	}
}

func TestQuizService_UnknownQuizIndex(t *testing.T) {
	f := newQuizFixture(t)
	key := f.key
	key.Index = 3

	var nerr *NotFoundError
	if _, err := f.svc.View(context.Background(), key); !errors.As(err, &nerr) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuizService_StaleSnapshotDiscarded(t *testing.T) {
	f := newQuizFixture(t)
	f.states.states[f.key] = quizsession.State{Selected: []int{0, 1, 2}}

	v, err := f.svc.View(context.Background(), f.key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range v.View.Questions {
		for _, o := range q.Options {
			if o.Selected {
				t.Fatalf("expected stale snapshot to be ignored")
			}
		}
	}
}
