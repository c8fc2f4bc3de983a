package gemini

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterClassificationMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockGenerator struct {
	resp    *genai.GenerateContentResponse
	err     error
	infoErr error
	prompt  string
}

func (m *mockGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) == 1 {
		if t, ok := parts[0].(genai.Text); ok {
			m.prompt = string(t)
		}
	}
	return m.resp, m.err
}

func (m *mockGenerator) Info(_ context.Context) (*genai.ModelInfo, error) {
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	return &genai.ModelInfo{Name: "models/gemini-test"}, nil
}

func reply(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

// --- Tests ---

func TestComplete(t *testing.T) {
	gen := &mockGenerator{resp: reply(genai.Text("PRODUCT\n"))}
	c := newCompleter(gen, "gemini-test", zap.NewNop())

	got, err := c.Complete(context.Background(), "classify: show me laptops")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "PRODUCT" {
		t.Errorf("expected %q, got %q", "PRODUCT", got)
	}
	if gen.prompt != "classify: show me laptops" {
		t.Errorf("prompt not forwarded, got %q", gen.prompt)
	}
}

func TestComplete_JoinsTextParts(t *testing.T) {
	gen := &mockGenerator{resp: reply(genai.Text("FA"), genai.Blob{MIMEType: "image/png"}, genai.Text("Q"))}
	c := newCompleter(gen, "gemini-test", nil)

	got, err := c.Complete(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "FAQ" {
		t.Errorf("expected %q, got %q", "FAQ", got)
	}
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *mockGenerator
	}{
		{"provider error", &mockGenerator{err: errors.New("quota exhausted")}},
		{"nil response", &mockGenerator{}},
		{"no candidates", &mockGenerator{resp: &genai.GenerateContentResponse{}}},
		{"nil content", &mockGenerator{resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}}},
		{"blank text", &mockGenerator{resp: reply(genai.Text("  \n"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCompleter(tt.gen, "gemini-test", zap.NewNop())
			_, err := c.Complete(context.Background(), "x")
			if !errors.Is(err, domain.ErrClassificationFailed) {
				t.Errorf("expected ErrClassificationFailed, got %v", err)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	c := newCompleter(&mockGenerator{}, "gemini-test", nil)
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	c = newCompleter(&mockGenerator{infoErr: errors.New("not found")}, "gemini-test", nil)
	if err := c.HealthCheck(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestNewCompleter_MissingKey(t *testing.T) {
	_, err := NewCompleter(context.Background(), &Config{Model: "gemini-1.5-flash"})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestClose_WithoutClient(t *testing.T) {
	c := newCompleter(&mockGenerator{}, "gemini-test", nil)
	if err := c.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
