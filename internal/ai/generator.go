// Package ai drafts email subject and body text with the Gemini API.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrNotConfigured is returned when no Gemini API key is available. The
// service still boots without drafting support.
var ErrNotConfigured = errors.New("ai generator is not configured: missing api key")

// GenerationError wraps a drafting failure: the API call itself, or a
// response that cannot be parsed into subject and body.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "email generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Config holds generator configuration
type Config struct {
	APIKey string
	Model  string
}

// Draft is a generated email, ready for the editor.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Generator produces email drafts from free-text prompts.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
	policy *bluemonday.Policy
}

// NewGenerator creates a Gemini-backed generator. It returns
// ErrNotConfigured when no API key is supplied.
func NewGenerator(ctx context.Context, cfg *Config, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		logger: logger,
		client: client,
		model:  model,
		// The model writes HTML; run it through a UGC policy before it
		// reaches the editor.
		policy: bluemonday.UGCPolicy(),
	}, nil
}

// Compose asks the model for a subject and HTML body matching the user's
// prompt, optionally personalized with extracted document text.
func (g *Generator) Compose(ctx context.Context, prompt, contextText string) (Draft, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(prompt, contextText)), nil)
	if err != nil {
		return Draft{}, &GenerationError{Err: err}
	}

	draft, err := parseDraft(resp.Text())
	if err != nil {
		return Draft{}, err
	}

	draft.Body = g.policy.Sanitize(draft.Body)

	g.logger.Info("Email draft generated",
		slog.String("model", g.model),
		slog.Int("body_len", len(draft.Body)),
	)

	return draft, nil
}

// parseDraft extracts the subject/body JSON object from a model response,
// tolerating markdown code fences around it.
func parseDraft(raw string) (Draft, error) {
	cleaned := stripFences(raw)

	var draft Draft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return Draft{}, &GenerationError{Err: fmt.Errorf("model response is not valid JSON: %w", err)}
	}

	if draft.Subject == "" || draft.Body == "" {
		return Draft{}, &GenerationError{Err: errors.New(`model response is missing "subject" or "body"`)}
	}

	return draft, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
