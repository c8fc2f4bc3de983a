// Package gemini adapts Google Gemini to the domain.Completer port.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/metrics"
)

const provider = "gemini"

// completionMaxTokens caps the reply; the router only needs a single label.
const completionMaxTokens = 8

// generator is the subset of *genai.GenerativeModel the completer calls.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	Info(ctx context.Context) (*genai.ModelInfo, error)
}

// Config holds the Gemini provider settings.
type Config struct {
	APIKey string
	Model  string
	Logger *zap.Logger
}

// Completer generates text with a Gemini model.
type Completer struct {
	client *genai.Client
	model  generator
	name   string
	logger *zap.Logger
}

// NewCompleter dials the Gemini API. Close releases the client.
func NewCompleter(ctx context.Context, cfg *Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty: %w", domain.ErrConfiguration)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(completionMaxTokens)

	c := newCompleter(model, cfg.Model, cfg.Logger)
	c.client = client
	return c, nil
}

func newCompleter(model generator, name string, logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completer{model: model, name: name, logger: logger}
}

// Complete implements domain.Completer. Text parts of the first candidate are concatenated.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	duration := time.Since(start)
	metrics.ClassificationDuration.WithLabelValues(provider, c.name).Observe(duration.Seconds())

	if err != nil {
		metrics.ClassificationRequestsTotal.WithLabelValues(provider, c.name, "error").Inc()
		c.logger.Error("Gemini generation failed",
			zap.String("provider", provider),
			zap.String("model", c.name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", fmt.Errorf("gemini generate: %v: %w", err, domain.ErrClassificationFailed)
	}

	text := firstCandidateText(resp)
	if text == "" {
		metrics.ClassificationRequestsTotal.WithLabelValues(provider, c.name, "error").Inc()
		return "", fmt.Errorf("empty gemini response: %w", domain.ErrClassificationFailed)
	}

	metrics.ClassificationRequestsTotal.WithLabelValues(provider, c.name, "success").Inc()
	return text, nil
}

// HealthCheck fetches the model metadata.
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.model.Info(ctx); err != nil {
		return fmt.Errorf("gemini model info: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Completer) Close() error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close gemini client: %w", err)
	}
	return nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
