package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/automail/automail-be/internal/api/dto"
	"github.com/automail/automail-be/internal/recipients"
	"github.com/gin-gonic/gin"
)

// ParseRecipients handles POST /api/v1/recipients/parse
// Accepts either a comma-separated "text" form field or a CSV "file" upload
// with an Email column, and returns the normalized recipient list.
func (h *EmailHandler) ParseRecipients(c *gin.Context) {
	if text := c.PostForm("text"); text != "" {
		list := recipients.FromText(text)
		c.JSON(http.StatusOK, dto.ParseRecipientsResponse{
			Recipients: list,
			Count:      len(list),
		})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Provide either a text field or a csv file",
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded csv", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer f.Close()

	list, err := recipients.FromCSV(f)
	if err != nil {
		if errors.Is(err, recipients.ErrMissingEmailColumn) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		h.logger.Error("Failed to parse csv",
			slog.String("filename", file.Filename),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to parse csv file",
		})
		return
	}

	h.logger.Info("Recipients parsed from csv",
		slog.String("filename", file.Filename),
		slog.Int("count", len(list)),
	)

	c.JSON(http.StatusOK, dto.ParseRecipientsResponse{
		Recipients: list,
		Count:      len(list),
	})
}
