package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillpath-backend/internal/models"
)

type AttemptRepo struct {
	pool *pgxpool.Pool
}

func NewAttemptRepo(pool *pgxpool.Pool) *AttemptRepo {
	return &AttemptRepo{pool: pool}
}

func (r *AttemptRepo) Create(ctx context.Context, a *models.QuizAttempt) error {
	a.ID = uuid.New()
	answers := []byte(a.AnswersJSON)
	if len(answers) == 0 {
		answers = []byte("[]")
	}

	query := `INSERT INTO quiz_attempts
		(id, path_id, session_id, quiz_index, topic_title, answers_json, correct_count, question_count, score_percent, band)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		a.ID, a.PathID, a.SessionID, a.QuizIndex, a.TopicTitle, answers,
		a.CorrectCount, a.QuestionCount, a.ScorePercent, a.Band,
	).Scan(&a.CreatedAt)
}

func (r *AttemptRepo) ListByPath(ctx context.Context, pathID uuid.UUID) ([]*models.QuizAttempt, error) {
	query := `SELECT id, path_id, session_id, quiz_index, topic_title, answers_json, correct_count, question_count,
		score_percent, band, created_at
		FROM quiz_attempts WHERE path_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, pathID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*models.QuizAttempt
	for rows.Next() {
		a := &models.QuizAttempt{}
		err := rows.Scan(&a.ID, &a.PathID, &a.SessionID, &a.QuizIndex, &a.TopicTitle, &a.AnswersJSON,
			&a.CorrectCount, &a.QuestionCount, &a.ScorePercent, &a.Band, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
