package handler

import (
	"context"
	"log/slog"
	"os"

	"github.com/automail/automail-be/internal/ai"
	"github.com/automail/automail-be/internal/api/storage"
	"github.com/automail/automail-be/internal/worker"
)

// Composer drafts an email from a prompt. Satisfied by *ai.Generator; nil
// when no API key is configured.
type Composer interface {
	Compose(ctx context.Context, prompt, contextText string) (ai.Draft, error)
}

// DispatcherFactory builds an authenticated transport for one send job.
// It fails synchronously, before any job is created, when the credentials
// are missing or rejected.
type DispatcherFactory func(senderEmail, senderPassword string) (worker.Dispatcher, error)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger        *slog.Logger
	Jobs          *storage.JobStore
	Worker        *worker.Worker
	NewDispatcher DispatcherFactory
	Composer      Composer
	AttachmentDir string
}

// EmailHandler handles email-related HTTP requests
type EmailHandler struct {
	logger        *slog.Logger
	jobs          *storage.JobStore
	worker        *worker.Worker
	newDispatcher DispatcherFactory
	composer      Composer
	attachmentDir string
}

// NewEmailHandler creates a new EmailHandler instance
func NewEmailHandler(deps *Dependencies) *EmailHandler {
	attachmentDir := deps.AttachmentDir
	if attachmentDir == "" {
		attachmentDir = os.TempDir()
	}

	return &EmailHandler{
		logger:        deps.Logger,
		jobs:          deps.Jobs,
		worker:        deps.Worker,
		newDispatcher: deps.NewDispatcher,
		composer:      deps.Composer,
		attachmentDir: attachmentDir,
	}
}
