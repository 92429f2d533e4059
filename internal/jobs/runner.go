package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportBuilder builds the rendered report for a team name.
type ReportBuilder interface {
	Build(ctx context.Context, teamName string) (string, error)
}

// Notifier receives job status transitions as they happen.
type Notifier interface {
	NotifyJob(update Update)
}

// Update is one job status transition, pushed to subscribed dashboard
// clients.
type Update struct {
	JobID    string `json:"job_id"`
	TeamName string `json:"team_name"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
}

// buildTimeout caps a single report build; every input is a local read so
// this is generous.
const buildTimeout = 30 * time.Second

// Runner executes report jobs from an in-process queue, one at a time.
// Each scoring run is single-threaded and request-scoped; queueing exists
// so the dashboard can poll or subscribe instead of blocking on the build.
type Runner struct {
	store    Store
	builder  ReportBuilder
	notifier Notifier
	queue    chan Job
}

// NewRunner creates a job runner. The notifier may be nil.
func NewRunner(store Store, builder ReportBuilder, notifier Notifier) *Runner {
	return &Runner{
		store:    store,
		builder:  builder,
		notifier: notifier,
		queue:    make(chan Job, 64),
	}
}

// Submit enqueues a report job for a team name and returns its record
func (r *Runner) Submit(ctx context.Context, teamName string) (*Job, error) {
	job := Job{
		ID:        uuid.New().String(),
		TeamName:  teamName,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := r.store.Save(ctx, &job); err != nil {
		return nil, fmt.Errorf("queueing job: %w", err)
	}

	select {
	case r.queue <- job:
	default:
		job.Status = StatusFailed
		job.Error = "job queue is full"
		job.UpdatedAt = time.Now().UTC()
		if err := r.store.Save(ctx, &job); err != nil {
			return nil, fmt.Errorf("recording queue overflow: %w", err)
		}
		return &job, nil
	}

	r.notify(job)
	return &job, nil
}

// Run processes queued jobs until the context is canceled
func (r *Runner) Run(ctx context.Context) {
	fmt.Println("✓ Report job runner started")

	for {
		select {
		case <-ctx.Done():
			return

		case job := <-r.queue:
			r.process(ctx, job)
		}
	}
}

func (r *Runner) process(ctx context.Context, job Job) {
	r.transition(ctx, &job, StatusRunning, "")

	buildCtx, cancel := context.WithTimeout(ctx, buildTimeout)
	report, err := r.builder.Build(buildCtx, job.TeamName)
	cancel()

	if err != nil {
		fmt.Printf("⚠️  Report job %s failed: %v\n", job.ID, err)
		r.transition(ctx, &job, StatusFailed, err.Error())
		return
	}

	job.Report = report
	r.transition(ctx, &job, StatusDone, "")
	fmt.Printf("✓ Report job %s done (team=%s)\n", job.ID, job.TeamName)
}

func (r *Runner) transition(ctx context.Context, job *Job, status Status, errMsg string) {
	job.Status = status
	job.Error = errMsg
	job.UpdatedAt = time.Now().UTC()

	if err := r.store.Save(ctx, job); err != nil {
		fmt.Printf("⚠️  Failed to save job %s: %v\n", job.ID, err)
	}

	r.notify(*job)
}

func (r *Runner) notify(job Job) {
	if r.notifier == nil {
		return
	}
	r.notifier.NotifyJob(Update{
		JobID:    job.ID,
		TeamName: job.TeamName,
		Status:   job.Status,
		Error:    job.Error,
	})
}
