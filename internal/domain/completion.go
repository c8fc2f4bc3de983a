package domain

import "context"

// Completer is the text generation port used for intent classification.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
