package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"skillpath-backend/internal/curriculum"
	"skillpath-backend/internal/logger"
	"skillpath-backend/internal/models"
	"skillpath-backend/internal/repository"
)

// isoMillis matches JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type pathRepository interface {
	Create(ctx context.Context, p *models.LearningPath) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LearningPath, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.LearningPath, error)
	SaveMarkdown(ctx context.Context, id uuid.UUID, markdown string, quizCount, questionCount int) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}

type jobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

type jobQueue interface {
	Enqueue(ctx context.Context, job *models.Job) error
}

type planStore interface {
	SaveMarkdown(ctx context.Context, sessionID uuid.UUID, markdown string) error
	LoadMarkdown(ctx context.Context, sessionID uuid.UUID) (string, error)
}

type PathService struct {
	generator Generator
	validator *ProfileValidator
	paths     pathRepository
	jobs      jobRepository
	queue     jobQueue
	plans     planStore
	log       *logger.Logger
	now       func() time.Time
}

func NewPathService(
	generator Generator,
	validator *ProfileValidator,
	paths pathRepository,
	jobs jobRepository,
	queue jobQueue,
	plans planStore,
	log *logger.Logger,
) *PathService {
	return &PathService{
		generator: generator,
		validator: validator,
		paths:     paths,
		jobs:      jobs,
		queue:     queue,
		plans:     plans,
		log:       log,
		now:       time.Now,
	}
}

// GenerateNow validates the profile and calls the provider inline.
func (s *PathService) GenerateNow(ctx context.Context, profile models.LearnerProfile) (*models.GeneratedPlan, error) {
	if err := s.validator.Validate(&profile); err != nil {
		return nil, err
	}

	markdown, err := s.generator.Generate(ctx, systemPrompt, buildUserPrompt(profile))
	if err != nil {
		s.log.Error("learning path generation failed", "provider", s.generator.Provider(), "error", err)
		return nil, &UpstreamError{Message: generationFailedMessage, Err: err}
	}

	return &models.GeneratedPlan{
		Markdown:    markdown,
		GeneratedAt: s.now().UTC().Format(isoMillis),
	}, nil
}

// RequestGeneration stores a pending path and queues the job that fills it.
func (s *PathService) RequestGeneration(ctx context.Context, sessionID uuid.UUID, profile models.LearnerProfile) (*models.GeneratePathResponse, error) {
	if err := s.validator.Validate(&profile); err != nil {
		return nil, err
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	path := &models.LearningPath{
		SessionID:   sessionID,
		Objective:   profile.Objective,
		Area:        profile.Area,
		Level:       profile.Level,
		ProfileJSON: profileJSON,
		Provider:    s.generator.Provider(),
		Model:       s.generator.Model(),
	}
	if err := s.paths.Create(ctx, path); err != nil {
		return nil, fmt.Errorf("failed to create path: %w", err)
	}

	job := &models.Job{
		SessionID:   sessionID,
		Type:        models.JobTypePathGeneration,
		ReferenceID: path.ID,
		ConfigJSON:  profileJSON,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return nil, err
	}

	s.log.Info("path generation queued", "path_id", path.ID, "job_id", job.ID)
	return &models.GeneratePathResponse{JobID: job.ID, PathID: path.ID}, nil
}

// ProcessGeneration runs a queued generation. progress is called before
// each long step.
func (s *PathService) ProcessGeneration(ctx context.Context, pathID uuid.UUID, progress func(step int, name string)) (curriculum.Document, error) {
	path, err := s.paths.GetByID(ctx, pathID)
	if err != nil {
		return curriculum.Document{}, fmt.Errorf("failed to get path: %w", err)
	}

	var profile models.LearnerProfile
	if err := json.Unmarshal(path.ProfileJSON, &profile); err != nil {
		return curriculum.Document{}, fmt.Errorf("failed to decode profile: %w", err)
	}

	progress(2, "Gerando trilha")
	markdown, err := s.generator.Generate(ctx, systemPrompt, buildUserPrompt(profile))
	if err != nil {
		return curriculum.Document{}, &UpstreamError{Message: generationFailedMessage, Err: err}
	}
	if strings.TrimSpace(markdown) == "" {
		return curriculum.Document{}, &UpstreamError{Message: generationFailedMessage, Err: errors.New("empty completion")}
	}

	progress(3, "Extraindo quizzes")
	doc := curriculum.Segment(markdown)
	if doc.SectionCount > len(doc.Quizzes) {
		s.log.Warn("quiz sections dropped", "path_id", pathID, "sections", doc.SectionCount, "quizzes", len(doc.Quizzes))
	}

	if err := s.paths.SaveMarkdown(ctx, pathID, markdown, len(doc.Quizzes), doc.QuestionCount()); err != nil {
		return curriculum.Document{}, fmt.Errorf("failed to save markdown: %w", err)
	}
	if err := s.plans.SaveMarkdown(ctx, path.SessionID, markdown); err != nil {
		s.log.Warn("failed to store plan in session", "session_id", path.SessionID, "error", err)
	}

	return doc, nil
}

func (s *PathService) MarkFailed(ctx context.Context, pathID uuid.UUID, errMsg string) error {
	return s.paths.MarkFailed(ctx, pathID, errMsg)
}

func (s *PathService) List(ctx context.Context, sessionID uuid.UUID) ([]*models.LearningPath, error) {
	paths, err := s.paths.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	if paths == nil {
		paths = []*models.LearningPath{}
	}
	return paths, nil
}

// Get returns a path owned by the session.
func (s *PathService) Get(ctx context.Context, sessionID, pathID uuid.UUID) (*models.LearningPath, error) {
	path, err := s.paths.GetByID(ctx, pathID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Trilha não encontrada"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get path: %w", err)
	}
	if path.SessionID != sessionID {
		return nil, &ForbiddenError{Message: "Trilha pertence a outra sessão"}
	}
	return path, nil
}

// Segmented returns the parsed document of a ready path.
func (s *PathService) Segmented(ctx context.Context, sessionID, pathID uuid.UUID) (curriculum.Document, error) {
	path, err := s.Get(ctx, sessionID, pathID)
	if err != nil {
		return curriculum.Document{}, err
	}
	if path.Status != models.PathStatusReady || path.Markdown == nil {
		return curriculum.Document{}, &ConflictError{Message: "Trilha ainda não foi gerada"}
	}
	return curriculum.Segment(*path.Markdown), nil
}

func (s *PathService) Document(ctx context.Context, sessionID, pathID uuid.UUID) (*models.PathDocument, error) {
	doc, err := s.Segmented(ctx, sessionID, pathID)
	if err != nil {
		return nil, err
	}
	out := BuildDocument(pathID, doc)
	return &out, nil
}

// BuildDocument lays the segmented document out in display order.
func BuildDocument(pathID uuid.UUID, doc curriculum.Document) models.PathDocument {
	pairs := doc.Pairs()
	sections := make([]models.DocumentSection, len(pairs))
	for i, p := range pairs {
		sections[i] = models.DocumentSection{Prose: p.Prose, Quiz: p.Quiz}
		if p.Quiz != nil {
			index := i
			sections[i].QuizIndex = &index
		}
	}
	return models.PathDocument{
		PathID:        pathID,
		Sections:      sections,
		QuizCount:     len(doc.Quizzes),
		QuestionCount: doc.QuestionCount(),
	}
}

// Current returns the session's latest plan exactly as generated.
func (s *PathService) Current(ctx context.Context, sessionID uuid.UUID) (string, error) {
	markdown, err := s.plans.LoadMarkdown(ctx, sessionID)
	if errors.Is(err, repository.ErrNoPlan) {
		return "", &NotFoundError{Message: "Nenhuma trilha gerada nesta sessão"}
	}
	if err != nil {
		return "", fmt.Errorf("failed to load plan: %w", err)
	}
	return markdown, nil
}

func (s *PathService) Job(ctx context.Context, sessionID, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Job não encontrado"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.SessionID != sessionID {
		return nil, &ForbiddenError{Message: "Job pertence a outra sessão"}
	}
	return job, nil
}
