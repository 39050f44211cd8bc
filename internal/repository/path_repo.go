package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillpath-backend/internal/models"
)

type PathRepo struct {
	pool *pgxpool.Pool
}

func NewPathRepo(pool *pgxpool.Pool) *PathRepo {
	return &PathRepo{pool: pool}
}

const pathColumns = `id, session_id, objective, area, level, profile_json, markdown, status, provider, model,
	quiz_count, question_count, error_message, created_at, generated_at`

func scanPath(row pgx.Row) (*models.LearningPath, error) {
	p := &models.LearningPath{}
	err := row.Scan(
		&p.ID, &p.SessionID, &p.Objective, &p.Area, &p.Level, &p.ProfileJSON, &p.Markdown, &p.Status,
		&p.Provider, &p.Model, &p.QuizCount, &p.QuestionCount, &p.ErrorMessage, &p.CreatedAt, &p.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PathRepo) Create(ctx context.Context, p *models.LearningPath) error {
	p.ID = uuid.New()
	p.Status = models.PathStatusPending
	profile := []byte(p.ProfileJSON)
	if len(profile) == 0 {
		profile = []byte("{}")
	}

	query := `INSERT INTO learning_paths (id, session_id, objective, area, level, profile_json, status, provider, model)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		p.ID, p.SessionID, p.Objective, p.Area, p.Level, profile, p.Status, p.Provider, p.Model,
	).Scan(&p.CreatedAt)
}

func (r *PathRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.LearningPath, error) {
	query := `SELECT ` + pathColumns + ` FROM learning_paths WHERE id = $1`
	return scanPath(r.pool.QueryRow(ctx, query, id))
}

// ListBySession omits the markdown body; callers fetch a single path for it.
func (r *PathRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.LearningPath, error) {
	query := `SELECT ` + pathColumns + ` FROM learning_paths WHERE session_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []*models.LearningPath
	for rows.Next() {
		p, err := scanPath(rows)
		if err != nil {
			return nil, err
		}
		p.Markdown = nil
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (r *PathRepo) SaveMarkdown(ctx context.Context, id uuid.UUID, markdown string, quizCount, questionCount int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE learning_paths
		SET markdown = $1, quiz_count = $2, question_count = $3, status = $4, error_message = NULL, generated_at = $5
		WHERE id = $6`,
		markdown, quizCount, questionCount, models.PathStatusReady, time.Now(), id,
	)
	return err
}

func (r *PathRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE learning_paths SET status = $1, error_message = $2 WHERE id = $3",
		models.PathStatusFailed, errMsg, id,
	)
	return err
}
