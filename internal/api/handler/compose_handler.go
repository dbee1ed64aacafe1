package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/automail/automail-be/internal/ai"
	"github.com/automail/automail-be/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// maxContextBytes caps how much of an uploaded supporting document is read
// for drafting context.
const maxContextBytes = 4 << 20

// GenerateEmail handles POST /api/v1/emails/generate
// Drafts a subject and HTML body from a free-text prompt, optionally
// personalized with an uploaded PDF or text document.
func (h *EmailHandler) GenerateEmail(c *gin.Context) {
	if h.composer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "AI generator is not configured. Check the API key.",
		})
		return
	}

	var req dto.GenerateEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Prompt is required",
		})
		return
	}

	contextText := h.readContextFile(c)

	draft, err := h.composer.Compose(c.Request.Context(), req.Prompt, contextText)
	if err != nil {
		h.logger.Error("Email generation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to generate email",
		})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateEmailResponse{
		Subject: draft.Subject,
		Body:    draft.Body,
	})
}

// readContextFile extracts plain text from the optional "context" upload.
// Any failure here degrades to an empty context; it never fails the draft
// request.
func (h *EmailHandler) readContextFile(c *gin.Context) string {
	file, err := c.FormFile("context")
	if err != nil {
		return ""
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Warn("Failed to open context file", slog.String("error", err.Error()))
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxContextBytes))
	if err != nil {
		h.logger.Warn("Failed to read context file", slog.String("error", err.Error()))
		return ""
	}

	return ai.ExtractContext(file.Filename, data, h.logger)
}
