package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/automail/automail-be/internal/api/domain"
	"github.com/automail/automail-be/internal/api/dto"
	"github.com/automail/automail-be/internal/worker"
	"github.com/automail/automail-be/shared/smtp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SendEmail handles POST /api/v1/emails/send
// Validates the request, authenticates the sender, creates a job record and
// spawns the background send. The response carries only the job id; progress
// is observable via GET /api/v1/jobs/:job_id.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req dto.SendEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("Invalid send request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if req.SenderEmail == "" || req.SenderPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Sender credentials are required",
		})
		return
	}

	var recipientList []string
	if err := json.Unmarshal([]byte(req.Recipients), &recipientList); err != nil {
		h.logger.Error("Invalid recipients payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Recipients must be a JSON array of addresses",
		})
		return
	}

	if len(recipientList) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No recipients have been added",
		})
		return
	}

	if req.Subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Email subject is empty",
		})
		return
	}

	if !domain.ValidMode(req.SendingMode) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Sending mode must be %q or %q", domain.ModeIndividual, domain.ModeBatch),
		})
		return
	}

	// Authenticate before any job exists so credential failures stay
	// synchronous.
	dispatcher, err := h.newDispatcher(req.SenderEmail, req.SenderPassword)
	if err != nil {
		var authErr *smtp.AuthError
		if errors.As(err, &authErr) {
			h.logger.Error("Sender authentication failed",
				slog.String("sender", req.SenderEmail),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Sender authentication failed",
			})
			return
		}

		h.logger.Error("Failed to create mail transport", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to connect to mail server",
		})
		return
	}

	attachmentPath, err := h.stageAttachment(c)
	if err != nil {
		h.logger.Error("Failed to stage attachment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store attachment",
		})
		return
	}

	jobID := h.jobs.Create(len(recipientList))

	go h.worker.Run(jobID, dispatcher, worker.SendRequest{
		Mode:       req.SendingMode,
		Recipients: recipientList,
		Message: smtp.Message{
			Subject:        req.Subject,
			HTMLBody:       req.Body,
			AttachmentPath: attachmentPath,
		},
	})

	h.logger.Info("Send job accepted",
		slog.String("job_id", jobID),
		slog.String("mode", req.SendingMode),
		slog.Int("recipients", len(recipientList)),
		slog.Bool("attachment", attachmentPath != ""),
	)

	c.JSON(http.StatusAccepted, dto.SendEmailResponse{
		JobID:   jobID,
		Message: "Email sending started",
	})
}

// stageAttachment writes the uploaded attachment, if any, to a
// collision-resistant path under the attachment dir. The uploaded filename
// contributes only its extension, so two jobs can never clobber each other's
// staging files.
func (h *EmailHandler) stageAttachment(c *gin.Context) (string, error) {
	file, err := c.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}

	name := fmt.Sprintf("attachment-%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	path := filepath.Join(h.attachmentDir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}

	return path, nil
}

// GetJobStatus handles GET /api/v1/jobs/:job_id
// Returns the current progress of a send job.
func (h *EmailHandler) GetJobStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := h.jobs.Get(jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}

		h.logger.Error("Failed to get job", slog.String("job_id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobStatusResponse{
		JobID:   job.JobID,
		Status:  job.Status,
		Sent:    job.Sent,
		Total:   job.Total,
		Message: job.Message,
	})
}
