package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"skillpath-backend/internal/curriculum"
	"skillpath-backend/internal/logger"
	"skillpath-backend/internal/models"
	"skillpath-backend/internal/repository"
)

const (
	maxAttempts = 3
	lockTTL     = 10 * time.Minute
	popTimeout  = 30 * time.Second
)

type generationRunner interface {
	ProcessGeneration(ctx context.Context, pathID uuid.UUID, progress func(step int, name string)) (curriculum.Document, error)
	MarkFailed(ctx context.Context, pathID uuid.UUID, errMsg string) error
}

type jobStatusRepository interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateError(ctx context.Context, id uuid.UUID, errMsg string, retryCount int) error
}

type jobRequeuer interface {
	Enqueue(ctx context.Context, job *models.Job) error
}

type updatePublisher interface {
	PublishUpdate(ctx context.Context, sessionID uuid.UUID, msg models.WSMessage)
}

// Pool pops path-generation jobs from Redis and runs them.
type Pool struct {
	redis       *redis.Client
	paths       generationRunner
	jobs        jobStatusRepository
	queue       jobRequeuer
	events      updatePublisher
	log         *logger.Logger
	workerCount int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// after schedules a retry. Replaced in tests.
	after func(d time.Duration, f func())
}

func NewPool(
	redisClient *redis.Client,
	paths generationRunner,
	jobs jobStatusRepository,
	queue jobRequeuer,
	events updatePublisher,
	log *logger.Logger,
	workerCount int,
) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		redis:       redisClient,
		paths:       paths,
		jobs:        jobs,
		queue:       queue,
		events:      events,
		log:         log,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

func (p *Pool) Start() {
	queue := repository.QueueName(models.JobTypePathGeneration)
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i, queue)
	}

	p.log.Info("workers started", "count", p.workerCount, "queue", queue)
}

// Stop cancels in-flight pops and waits for running jobs to finish.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *Pool) worker(id int, queue string) {
	defer p.wg.Done()
	log := p.log.With("worker", id)

	for {
		if p.ctx.Err() != nil {
			log.Info("worker shutting down")
			return
		}

		result, err := p.redis.BLPop(p.ctx, popTimeout, queue).Result()
		if err != nil {
			continue // timeout, shutdown or a transient error
		}
		if len(result) < 2 {
			continue
		}

		var job models.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Error("failed to parse job", "error", err)
			continue
		}

		// Jobs finish even when Stop is called mid-run.
		ctx := context.Background()

		lockKey := fmt.Sprintf("job_lock:%s", job.ID)
		locked, err := p.redis.SetNX(ctx, lockKey, "1", lockTTL).Result()
		if err != nil || !locked {
			continue
		}

		log.Info("processing job", "job_id", job.ID, "type", job.Type)
		p.handle(ctx, &job)

		p.redis.Del(ctx, lockKey)
	}
}

func (p *Pool) handle(ctx context.Context, job *models.Job) {
	p.jobs.UpdateStatus(ctx, job.ID, models.JobStatusProcessing)
	p.publishStep(ctx, job, 1, "Analisando perfil")

	if job.Type != models.JobTypePathGeneration {
		p.handleFailure(ctx, job, fmt.Errorf("unknown job type: %s", job.Type))
		return
	}

	doc, err := p.paths.ProcessGeneration(ctx, job.ReferenceID, func(step int, name string) {
		p.publishStep(ctx, job, step, name)
	})
	if err != nil {
		p.handleFailure(ctx, job, err)
		return
	}
	p.handleSuccess(ctx, job, doc)
}

func (p *Pool) publishStep(ctx context.Context, job *models.Job, step int, name string) {
	p.events.PublishUpdate(ctx, job.SessionID, models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			JobID:    job.ID,
			Step:     step,
			StepName: name,
		},
	})
}

func (p *Pool) handleSuccess(ctx context.Context, job *models.Job, doc curriculum.Document) {
	p.jobs.UpdateStatus(ctx, job.ID, models.JobStatusCompleted)

	p.events.PublishUpdate(ctx, job.SessionID, models.WSMessage{
		Type: "completed",
		Payload: models.CompletedEvent{
			JobID:         job.ID,
			PathID:        job.ReferenceID,
			QuizCount:     len(doc.Quizzes),
			QuestionCount: doc.QuestionCount(),
		},
	})

	p.log.Info("job completed", "job_id", job.ID, "quizzes", len(doc.Quizzes))
}

func (p *Pool) handleFailure(ctx context.Context, job *models.Job, err error) {
	job.RetryCount++
	errMsg := err.Error()

	limit := job.MaxRetries
	if limit <= 0 {
		limit = maxAttempts
	}

	if job.RetryCount < limit {
		p.log.Warn("job failed, retrying", "job_id", job.ID, "attempt", job.RetryCount, "error", errMsg)
		p.jobs.UpdateStatus(ctx, job.ID, models.JobStatusPending)
		p.jobs.UpdateError(ctx, job.ID, errMsg, job.RetryCount)

		retry := *job
		backoff := time.Duration(1<<uint(job.RetryCount)) * time.Second
		p.after(backoff, func() {
			if err := p.queue.Enqueue(context.Background(), &retry); err != nil {
				p.log.Error("failed to requeue job", "job_id", retry.ID, "error", err)
			}
		})
		return
	}

	p.log.Error("job failed permanently", "job_id", job.ID, "error", errMsg)
	p.jobs.UpdateStatus(ctx, job.ID, models.JobStatusFailed)
	p.jobs.UpdateError(ctx, job.ID, errMsg, job.RetryCount)
	if err := p.paths.MarkFailed(ctx, job.ReferenceID, errMsg); err != nil {
		p.log.Error("failed to mark path failed", "path_id", job.ReferenceID, "error", err)
	}

	p.events.PublishUpdate(ctx, job.SessionID, models.WSMessage{
		Type: "error",
		Payload: models.ErrorEvent{
			JobID:        job.ID,
			ErrorCode:    "JOB_FAILED",
			ErrorMessage: errMsg,
		},
	})
}
