package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Status is the lifecycle state of a report job.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job is one report request. Its state lives in the job store and is the
// only record of progress; there is no process-wide status flag.
type Job struct {
	ID        string    `json:"id"`
	TeamName  string    `json:"team_name"`
	Status    Status    `json:"status"`
	Report    string    `json:"report,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists job records.
type Store interface {
	Save(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
}

// JobTTL bounds how long finished reports stay retrievable.
const JobTTL = 24 * time.Hour

// RedisStore implements Store on Redis with JSON-marshaled records
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed job store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func jobKey(id string) string {
	return fmt.Sprintf("report:job:%s", id)
}

// Save writes the job record, refreshing its TTL
func (s *RedisStore) Save(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}

	if err := s.client.Set(ctx, jobKey(job.ID), data, JobTTL).Err(); err != nil {
		return fmt.Errorf("saving job %s: %w", job.ID, err)
	}

	return nil
}

// Get fetches a job record; (nil, nil) when the ID is unknown or expired
func (s *RedisStore) Get(ctx context.Context, id string) (*Job, error) {
	data, err := s.client.Get(ctx, jobKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching job %s: %w", id, err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshaling job %s: %w", id, err)
	}

	return &job, nil
}
