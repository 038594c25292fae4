package llm

import (
	"context"
)

// Client generates a completion for a prompt. Triplet extraction, review
// suggestions and sociotype naming all go through this one method.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
