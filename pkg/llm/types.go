package llm

import (
	"context"
)

// Client defines the interface for LLM interactions. TranslateQuery sends one
// natural-language request with the schema contract as the system prompt and
// returns the raw JSON answer text.
type Client interface {
	TranslateQuery(ctx context.Context, systemPrompt, userQuery string) (string, error)
	GetModelInfo() ModelInfo
}

// ModelInfo contains information about the LLM model
type ModelInfo struct {
	Name                string
	Provider            string
	MaxCompletionTokens int
	ContextLimit        int
}

// Config holds configuration for LLM clients
type Config struct {
	Provider            string
	Model               string
	APIKey              string
	MaxCompletionTokens int
	Temperature         float64
	ResponseSchema      string
}
