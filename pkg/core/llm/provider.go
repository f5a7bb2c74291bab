// Package llm abstracts the model providers used by the advisory workflow.
package llm

import "context"

// Provider is the interface every model backend implements.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats.
	AdaptInstructions(rawInstructions string) string
}
