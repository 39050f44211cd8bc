package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"skillpath-backend/internal/curriculum"
	"skillpath-backend/internal/logger"
	"skillpath-backend/internal/models"
	"skillpath-backend/internal/quizsession"
	"skillpath-backend/internal/repository"
)

type quizStateRepository interface {
	Load(ctx context.Context, key repository.QuizKey) (*quizsession.State, error)
	Save(ctx context.Context, key repository.QuizKey, state quizsession.State) error
	WithLock(ctx context.Context, key repository.QuizKey, fn func(ctx context.Context) error) error
}

type attemptRepository interface {
	Create(ctx context.Context, a *models.QuizAttempt) error
	ListByPath(ctx context.Context, pathID uuid.UUID) ([]*models.QuizAttempt, error)
}

type documentSource interface {
	Segmented(ctx context.Context, sessionID, pathID uuid.UUID) (curriculum.Document, error)
	Get(ctx context.Context, sessionID, pathID uuid.UUID) (*models.LearningPath, error)
}

// QuizService drives one presenter per (session, path, quiz). The presenter
// is rebuilt from its snapshot on every request.
type QuizService struct {
	docs     documentSource
	states   quizStateRepository
	attempts attemptRepository
	log      *logger.Logger
}

func NewQuizService(docs documentSource, states quizStateRepository, attempts attemptRepository, log *logger.Logger) *QuizService {
	return &QuizService{docs: docs, states: states, attempts: attempts, log: log}
}

type QuizView struct {
	PathID     uuid.UUID        `json:"path_id"`
	Index      int              `json:"index"`
	TopicTitle string           `json:"topic_title"`
	View       quizsession.View `json:"view"`
}

func (s *QuizService) View(ctx context.Context, key repository.QuizKey) (*QuizView, error) {
	quiz, err := s.quiz(ctx, key)
	if err != nil {
		return nil, err
	}
	p, err := s.presenter(ctx, key, quiz)
	if err != nil {
		return nil, err
	}
	return s.render(key, quiz, p), nil
}

func (s *QuizService) Select(ctx context.Context, key repository.QuizKey, question, option int) (*QuizView, error) {
	return s.mutate(ctx, key, func(p *quizsession.Presenter, quiz curriculum.TopicQuiz) error {
		if p.Phase() == quizsession.Revealed {
			return &ConflictError{Message: "Quiz já corrigido. Reinicie para responder de novo"}
		}
		if !p.Select(question, option) {
			return &ValidationError{Details: []models.FieldError{
				{Field: "question", Message: "Pergunta ou alternativa inexistente"},
			}}
		}
		return nil
	})
}

// Submit reveals the result and records the attempt.
func (s *QuizService) Submit(ctx context.Context, key repository.QuizKey) (*QuizView, error) {
	return s.mutate(ctx, key, func(p *quizsession.Presenter, quiz curriculum.TopicQuiz) error {
		if !p.Submit() {
			return &ConflictError{Message: "Responda todas as perguntas antes de enviar"}
		}

		snap := p.Snapshot()
		answers, err := json.Marshal(snap.Selected)
		if err != nil {
			return fmt.Errorf("failed to encode answers: %w", err)
		}
		attempt := &models.QuizAttempt{
			PathID:        key.PathID,
			SessionID:     key.SessionID,
			QuizIndex:     key.Index,
			TopicTitle:    quiz.TopicTitle,
			AnswersJSON:   answers,
			CorrectCount:  p.CorrectCount(),
			QuestionCount: len(quiz.Questions),
			ScorePercent:  p.Percentage(),
			Band:          p.Feedback().String(),
		}
		if err := s.attempts.Create(ctx, attempt); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}
		return nil
	})
}

func (s *QuizService) Reset(ctx context.Context, key repository.QuizKey) (*QuizView, error) {
	return s.mutate(ctx, key, func(p *quizsession.Presenter, _ curriculum.TopicQuiz) error {
		p.Reset()
		return nil
	})
}

func (s *QuizService) Attempts(ctx context.Context, sessionID, pathID uuid.UUID) ([]*models.QuizAttempt, error) {
	if _, err := s.docs.Get(ctx, sessionID, pathID); err != nil {
		return nil, err
	}
	attempts, err := s.attempts.ListByPath(ctx, pathID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	if attempts == nil {
		attempts = []*models.QuizAttempt{}
	}
	return attempts, nil
}

func (s *QuizService) mutate(ctx context.Context, key repository.QuizKey, fn func(p *quizsession.Presenter, quiz curriculum.TopicQuiz) error) (*QuizView, error) {
	quiz, err := s.quiz(ctx, key)
	if err != nil {
		return nil, err
	}

	var view *QuizView
	err = s.states.WithLock(ctx, key, func(ctx context.Context) error {
		p, err := s.presenter(ctx, key, quiz)
		if err != nil {
			return err
		}
		if err := fn(p, quiz); err != nil {
			return err
		}
		if err := s.states.Save(ctx, key, p.Snapshot()); err != nil {
			return fmt.Errorf("failed to save quiz state: %w", err)
		}
		view = s.render(key, quiz, p)
		return nil
	})
	if errors.Is(err, repository.ErrQuizBusy) {
		return nil, &ConflictError{Message: "Quiz em uso por outra requisição"}
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *QuizService) quiz(ctx context.Context, key repository.QuizKey) (curriculum.TopicQuiz, error) {
	doc, err := s.docs.Segmented(ctx, key.SessionID, key.PathID)
	if err != nil {
		return curriculum.TopicQuiz{}, err
	}
	if key.Index < 0 || key.Index >= len(doc.Quizzes) {
		return curriculum.TopicQuiz{}, &NotFoundError{Message: "Quiz não encontrado"}
	}
	return doc.Quizzes[key.Index], nil
}

// presenter restores the saved snapshot. A snapshot that no longer fits
// the questions is discarded.
func (s *QuizService) presenter(ctx context.Context, key repository.QuizKey, quiz curriculum.TopicQuiz) (*quizsession.Presenter, error) {
	state, err := s.states.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz state: %w", err)
	}
	if state == nil {
		return quizsession.New(quiz.Questions), nil
	}

	p, err := quizsession.Restore(quiz.Questions, *state)
	if err != nil {
		s.log.Warn("discarding quiz state", "path_id", key.PathID, "quiz", key.Index, "error", err)
		return quizsession.New(quiz.Questions), nil
	}
	return p, nil
}

func (s *QuizService) render(key repository.QuizKey, quiz curriculum.TopicQuiz, p *quizsession.Presenter) *QuizView {
	return &QuizView{
		PathID:     key.PathID,
		Index:      key.Index,
		TopicTitle: quiz.TopicTitle,
		View:       p.View(),
	}
}
