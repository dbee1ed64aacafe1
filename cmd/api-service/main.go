package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automail/automail-be/internal/ai"
	"github.com/automail/automail-be/internal/api/handler"
	"github.com/automail/automail-be/internal/api/router"
	"github.com/automail/automail-be/internal/api/storage"
	"github.com/automail/automail-be/internal/config"
	"github.com/automail/automail-be/internal/worker"
	"github.com/automail/automail-be/shared/logger"
	"github.com/automail/automail-be/shared/smtp"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Job store and send worker live in process; jobs are observable only
	// through the status endpoint for the life of the process.
	jobStore := storage.NewJobStore(appLogger.Logger)
	sendWorker := worker.New(&worker.Config{
		Logger:       appLogger.Logger,
		Jobs:         jobStore,
		SendInterval: cfg.Sender.SendInterval,
	})

	// Initialize the AI generator; the service runs without drafting
	// support when no API key is configured.
	composer, err := initGenerator(&cfg.AI, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize ai generator: %w", err)
	}

	// Initialize router
	r := initRouter(cfg, appLogger.Logger, jobStore, sendWorker, composer)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("API service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout. In-flight send jobs are not awaited:
	// the job table is process-local and dies with the process.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initGenerator initializes the Gemini email generator. A missing API key
// is logged and tolerated; the drafting endpoint then reports itself as
// unavailable.
func initGenerator(cfg *config.AIConfig, logger *slog.Logger) (handler.Composer, error) {
	gen, err := ai.NewGenerator(context.Background(), &ai.Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  cfg.Model,
	}, logger)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			logger.Warn("AI generator not configured, drafting endpoint disabled",
				slog.Any("error", err),
			)
			return nil, nil
		}
		return nil, err
	}

	logger.Info("AI generator initialized",
		slog.String("model", cfg.Model),
	)

	return gen, nil
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(cfg *config.Config, logger *slog.Logger, jobStore *storage.JobStore, sendWorker *worker.Worker, composer handler.Composer) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	smtpConfig := &smtp.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		TLSPolicy:   cfg.SMTP.TLSPolicy,
		DialTimeout: cfg.SMTP.DialTimeout,
	}

	// Initialize handler dependencies
	handlerDeps := &handler.Dependencies{
		Logger: logger,
		Jobs:   jobStore,
		Worker: sendWorker,
		NewDispatcher: func(senderEmail, senderPassword string) (worker.Dispatcher, error) {
			return smtp.NewClient(smtpConfig, senderEmail, senderPassword, logger)
		},
		Composer:      composer,
		AttachmentDir: cfg.Sender.AttachmentDir,
	}

	// Setup router
	return router.SetupRouter(handlerDeps)
}
