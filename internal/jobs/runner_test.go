package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu   sync.Mutex
	jobs map[string]Job
}

func newMemStore() *memStore {
	return &memStore{jobs: make(map[string]Job)}
}

func (s *memStore) Save(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

func (s *memStore) Get(ctx context.Context, id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		return &job, nil
	}
	return nil, nil
}

type stubBuilder struct {
	report string
	err    error
}

func (b *stubBuilder) Build(ctx context.Context, teamName string) (string, error) {
	return b.report, b.err
}

// recorder captures every job update in order.
type recorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *recorder) NotifyJob(update Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, update)
}

func (r *recorder) statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.updates))
	for i, u := range r.updates {
		out[i] = u.Status
	}
	return out
}

// waitForStatus polls the store until the job reaches the wanted terminal
// status or the deadline passes.
func waitForStatus(t *testing.T, store Store, id string, want Status) *Job {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected store error: %v", err)
		}
		if job != nil && job.Status == want {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("job %s never reached status %s", id, want)
	return nil
}

func TestRunnerCompletesJob(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	runner := NewRunner(store, &stubBuilder{report: "the report"}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	job, err := runner.Submit(ctx, "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != StatusQueued {
		t.Errorf("submitted status = %s, want queued", job.Status)
	}
	if job.ID == "" {
		t.Error("submitted job has no ID")
	}

	done := waitForStatus(t, store, job.ID, StatusDone)
	if done.Report != "the report" {
		t.Errorf("Report = %q", done.Report)
	}
	if done.Error != "" {
		t.Errorf("Error = %q, want empty", done.Error)
	}

	statuses := rec.statuses()
	want := []Status{StatusQueued, StatusRunning, StatusDone}
	if len(statuses) != len(want) {
		t.Fatalf("updates = %v, want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("update %d = %s, want %s", i, statuses[i], want[i])
		}
	}
}

func TestRunnerFailedBuild(t *testing.T) {
	store := newMemStore()
	runner := NewRunner(store, &stubBuilder{err: errors.New("store unreachable")}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	job, err := runner.Submit(ctx, "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failed := waitForStatus(t, store, job.ID, StatusFailed)
	if failed.Error == "" {
		t.Error("failed job should carry the error message")
	}
	if failed.Report != "" {
		t.Errorf("failed job should have no report, got %q", failed.Report)
	}
}

func TestSubmitPersistsBeforeReturning(t *testing.T) {
	store := newMemStore()
	// No Run loop: the job must still be retrievable right after Submit
	runner := NewRunner(store, &stubBuilder{report: "r"}, nil)

	job, err := runner.Submit(context.Background(), "Tampa Bay Lightning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := store.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	if stored == nil || stored.Status != StatusQueued {
		t.Errorf("stored job = %+v, want queued", stored)
	}
	if stored.TeamName != "Tampa Bay Lightning" {
		t.Errorf("TeamName = %q", stored.TeamName)
	}
}
