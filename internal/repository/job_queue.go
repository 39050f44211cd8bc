package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"skillpath-backend/internal/models"
)

// QueueName is the Redis list a job type is pushed to.
func QueueName(jobType string) string {
	return "queue:" + jobType
}

type JobQueue struct {
	rdb *redis.Client
}

func NewJobQueue(rdb *redis.Client) *JobQueue {
	return &JobQueue{rdb: rdb}
}

func (q *JobQueue) Enqueue(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := q.rdb.LPush(ctx, QueueName(job.Type), data).Err(); err != nil {
		return fmt.Errorf("failed to queue job: %w", err)
	}
	return nil
}
