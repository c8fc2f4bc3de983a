package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/metrics"
)

// completionMaxTokens caps the reply; the router only needs a single label.
const completionMaxTokens = 8

// Completer is a text completion provider using the OpenAI-compatible chat API.
type Completer struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// NewCompleter creates an OpenAI-compatible chat completer.
func NewCompleter(cfg *Config) *Completer {
	return &Completer{
		client:   newClient(cfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: cfg.Provider,
		logger:   loggerOrNop(cfg.Logger),
	}
}

// Complete implements domain.Completer. The reply text is returned as-is.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   completionMaxTokens,
		Temperature: 0,
		User:        c.user,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)
	metrics.ClassificationDuration.WithLabelValues(c.provider, c.model).Observe(duration.Seconds())

	if err != nil {
		metrics.ClassificationRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		c.logger.Error("Chat completion failed",
			zap.String("provider", c.provider),
			zap.String("model", c.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", parseAPIError("completion", err, domain.ErrClassificationFailed)
	}

	if len(resp.Choices) == 0 {
		metrics.ClassificationRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrClassificationFailed)
	}

	metrics.ClassificationRequestsTotal.WithLabelValues(c.provider, c.model, "success").Inc()
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels.
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
