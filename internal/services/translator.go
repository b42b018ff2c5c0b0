package services

import (
	"context"
	"fmt"

	"newsgraph-ai/internal/constants"
	"newsgraph-ai/internal/graph"
	"newsgraph-ai/pkg/llm"
)

// Translator turns a natural language request into a StructuredQuery.
type Translator interface {
	Translate(ctx context.Context, naturalQuery string) (*StructuredQuery, error)
}

// llmTranslator sends the request plus the rendered Schema Grammar to an LLM
// and parses its strict three-field JSON answer. It never retries; on any
// service or parse failure the orchestrator falls back to the deterministic
// translator.
type llmTranslator struct {
	client       llm.Client
	systemPrompt string
}

func NewLLMTranslator(client llm.Client, grammar *graph.Grammar) Translator {
	return &llmTranslator{
		client:       client,
		systemPrompt: constants.GetTranslatorSystemPrompt(grammar.Render()),
	}
}

func (t *llmTranslator) Translate(ctx context.Context, naturalQuery string) (*StructuredQuery, error) {
	if t.client == nil {
		return nil, fmt.Errorf("no LLM client configured")
	}

	raw, err := t.client.TranslateQuery(ctx, t.systemPrompt, naturalQuery)
	if err != nil {
		return nil, fmt.Errorf("LLM translation failed: %v", err)
	}

	sq, err := ParseStructuredQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("LLM answer rejected: %v", err)
	}

	return sq, nil
}
