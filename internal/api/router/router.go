package router

import (
	"net/http"

	"github.com/automail/automail-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "automail-api",
		})
	})

	emailHandler := handler.NewEmailHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		emails := v1.Group("/emails")
		{
			// POST /api/v1/emails/send - Submit a send job
			emails.POST("/send", emailHandler.SendEmail)

			// POST /api/v1/emails/generate - Draft an email with AI
			emails.POST("/generate", emailHandler.GenerateEmail)
		}

		// GET /api/v1/jobs/:job_id - Poll send job progress
		v1.GET("/jobs/:job_id", emailHandler.GetJobStatus)

		// POST /api/v1/recipients/parse - Normalize recipient input
		v1.POST("/recipients/parse", emailHandler.ParseRecipients)
	}

	return r
}
