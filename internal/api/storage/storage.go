package storage

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/automail/automail-be/internal/api/domain"
	"github.com/google/uuid"
)

// JobStore is the in-memory job table. It is the single source of truth
// polled by API clients and lives for the life of the process.
//
// The table itself is guarded by a mutex; each job record is only ever
// written by the one worker goroutine executing it, so no per-job locking
// is needed beyond the table access.
type JobStore struct {
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*domain.Job
}

// NewJobStore creates an empty job store.
func NewJobStore(logger *slog.Logger) *JobStore {
	return &JobStore{
		logger: logger,
		jobs:   make(map[string]*domain.Job),
	}
}

// Create allocates a fresh job id and inserts a RUNNING job record for
// total recipients. It never fails.
func (s *JobStore) Create(total int) string {
	now := time.Now()
	job := &domain.Job{
		JobID:     uuid.New().String(),
		Status:    domain.JobStatusRunning,
		Sent:      0,
		Total:     total,
		Message:   "Starting...",
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.jobs[job.JobID] = job
	s.mu.Unlock()

	s.logger.Info("Job created",
		slog.String("job_id", job.JobID),
		slog.Int("total", total),
	)

	return job.JobID
}

// Get returns a copy of the job record for jobID, or domain.ErrJobNotFound
// if the id is unknown.
func (s *JobStore) Get(jobID string) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}

	return *job, nil
}

// RecordProgress updates the sent counter and status message of a running
// job. Updates for settled or unknown jobs are dropped; the sent counter
// never moves backwards.
func (s *JobStore) RecordProgress(jobID string, sent int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok || job.Settled() {
		return
	}

	if sent > job.Sent {
		job.Sent = sent
	}
	job.Message = message
	job.UpdatedAt = time.Now()
}

// Settle transitions a job out of RUNNING exactly once and records the
// final message. Settling an already-settled job is a caller bug: it is
// logged and reported as domain.ErrJobAlreadySettled, and the record is
// left untouched.
func (s *JobStore) Settle(jobID, status, message string) error {
	if status != domain.JobStatusCompleted && status != domain.JobStatusFailed {
		s.logger.Error("Settle called with invalid status",
			slog.String("job_id", jobID),
			slog.String("status", status),
		)
		return fmt.Errorf("invalid settle status: %s", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		s.logger.Error("Settle called for unknown job",
			slog.String("job_id", jobID),
		)
		return domain.ErrJobNotFound
	}

	if job.Settled() {
		s.logger.Error("Settle called on an already settled job",
			slog.String("job_id", jobID),
			slog.String("current_status", job.Status),
			slog.String("requested_status", status),
		)
		return domain.ErrJobAlreadySettled
	}

	job.Status = status
	job.Message = message
	job.UpdatedAt = time.Now()

	s.logger.Info("Job settled",
		slog.String("job_id", jobID),
		slog.String("status", status),
		slog.Int("sent", job.Sent),
		slog.Int("total", job.Total),
	)

	return nil
}
