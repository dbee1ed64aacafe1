// Package worker executes send jobs in the background, one goroutine per
// job, and reports every step to the job store. The submitting request
// returns immediately; all outcomes are observable only by polling.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/automail/automail-be/internal/api/domain"
	"github.com/automail/automail-be/internal/api/storage"
	"github.com/automail/automail-be/shared/smtp"
)

// DefaultSendInterval is the pause between consecutive sends in individual
// mode, used when no interval is configured.
const DefaultSendInterval = 1 * time.Second

// Dispatcher performs the outbound transport calls for one job. It is
// satisfied by *smtp.Client; tests inject fakes.
type Dispatcher interface {
	Send(ctx context.Context, recipient string, msg smtp.Message) error
	SendBatch(ctx context.Context, recipients []string, msg smtp.Message) error
}

// SendRequest carries everything one job needs to run.
type SendRequest struct {
	Mode       string
	Recipients []string
	Message    smtp.Message
}

// Config holds worker configuration
type Config struct {
	Logger       *slog.Logger
	Jobs         *storage.JobStore
	SendInterval time.Duration
}

// Worker drives send jobs to settlement.
type Worker struct {
	logger       *slog.Logger
	jobs         *storage.JobStore
	sendInterval time.Duration
}

// New creates a new worker instance
func New(cfg *Config) *Worker {
	interval := cfg.SendInterval
	if interval <= 0 {
		interval = DefaultSendInterval
	}

	return &Worker{
		logger:       cfg.Logger,
		jobs:         cfg.Jobs,
		sendInterval: interval,
	}
}

// Run executes one job to settlement. It is meant to be spawned on its own
// goroutine and never reports errors back to the caller; every outcome,
// including panics in the transport, lands in the job store. The staged
// attachment, if any, is removed once the job settles.
func (w *Worker) Run(jobID string, dispatcher Dispatcher, req SendRequest) {
	defer w.cleanupAttachment(jobID, req.Message.AttachmentPath)
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Send job panicked",
				slog.String("job_id", jobID),
				slog.Any("panic", r),
			)
			w.settle(jobID, domain.JobStatusFailed, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	w.logger.Info("Send job started",
		slog.String("job_id", jobID),
		slog.String("mode", req.Mode),
		slog.Int("recipients", len(req.Recipients)),
	)

	ctx := context.Background()

	switch req.Mode {
	case domain.ModeBatch:
		w.runBatch(ctx, jobID, dispatcher, req)
	default:
		w.runIndividual(ctx, jobID, dispatcher, req)
	}
}

// runIndividual sends one email per recipient, in input order, pacing
// consecutive sends by the configured interval. The first delivery failure
// aborts the rest of the job.
func (w *Worker) runIndividual(ctx context.Context, jobID string, dispatcher Dispatcher, req SendRequest) {
	total := len(req.Recipients)

	for i, recipient := range req.Recipients {
		w.jobs.RecordProgress(jobID, i, fmt.Sprintf("Sending to %s...", recipient))

		if err := dispatcher.Send(ctx, recipient, req.Message); err != nil {
			w.logger.Error("Send failed",
				slog.String("job_id", jobID),
				slog.String("recipient", recipient),
				slog.Int("index", i),
				slog.Any("error", err),
			)
			w.settle(jobID, domain.JobStatusFailed, fmt.Sprintf("Failed to send to %s: %v", recipient, err))
			return
		}

		w.jobs.RecordProgress(jobID, i+1, fmt.Sprintf("Sent to %s", recipient))

		// No pause after the final recipient.
		if i < total-1 {
			time.Sleep(w.sendInterval)
		}
	}

	w.settle(jobID, domain.JobStatusCompleted, "All emails sent successfully!")
}

// runBatch makes a single hidden-copy send to every recipient at once.
func (w *Worker) runBatch(ctx context.Context, jobID string, dispatcher Dispatcher, req SendRequest) {
	if err := dispatcher.SendBatch(ctx, req.Recipients, req.Message); err != nil {
		w.logger.Error("Batch send failed",
			slog.String("job_id", jobID),
			slog.Any("error", err),
		)
		w.settle(jobID, domain.JobStatusFailed, fmt.Sprintf("Batch send failed: %v", err))
		return
	}

	w.jobs.RecordProgress(jobID, len(req.Recipients), "Batch email sent")
	w.settle(jobID, domain.JobStatusCompleted, "Batch email sent successfully!")
}

func (w *Worker) settle(jobID, status, message string) {
	if err := w.jobs.Settle(jobID, status, message); err != nil {
		w.logger.Error("Failed to settle job",
			slog.String("job_id", jobID),
			slog.String("status", status),
			slog.Any("error", err),
		)
	}
}

// cleanupAttachment removes the staged attachment file after settlement.
// A file that is already gone is not an error.
func (w *Worker) cleanupAttachment(jobID, path string) {
	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		w.logger.Warn("Failed to remove attachment",
			slog.String("job_id", jobID),
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
