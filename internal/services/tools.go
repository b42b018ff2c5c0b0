package services

import (
	"context"
	"fmt"

	"newsgraph-ai/internal/apis/dtos"
)

// ToolProperty describes one parameter of a tool, JSON-Schema style.
type ToolProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ToolParameters is the JSON-Schema-like parameter object of a tool.
type ToolParameters struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required,omitempty"`
}

// Tool is one assistant-invocable operation. Its handler produces the same
// Result Envelope as the direct entry point.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  ToolParameters `json:"parameters"`
	Handler     func(ctx context.Context, params map[string]interface{}) (*dtos.QueryResult, error) `json:"-"`
}

// ToolRegistry holds the tools exposed to external assistant integrations.
type ToolRegistry struct {
	tools map[string]Tool
}

func NewToolRegistry(queryService QueryService) *ToolRegistry {
	registry := &ToolRegistry{tools: make(map[string]Tool)}

	registry.Register(Tool{
		Name:        "query_news",
		Description: "Answer a natural language question about the news article corpus",
		Parameters: ToolParameters{
			Type: "object",
			Properties: map[string]ToolProperty{
				"naturalLanguageQuery": {
					Type:        "string",
					Description: "The question to answer, in plain language",
				},
			},
			Required: []string{"naturalLanguageQuery"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (*dtos.QueryResult, error) {
			naturalQuery, ok := params["naturalLanguageQuery"].(string)
			if !ok || naturalQuery == "" {
				return nil, fmt.Errorf("parameter naturalLanguageQuery is required")
			}
			return queryService.ProcessNaturalLanguageQuery(ctx, naturalQuery)
		},
	})

	return registry
}

func (r *ToolRegistry) Register(tool Tool) {
	r.tools[tool.Name] = tool
}

// List returns the tool descriptors for advertisement to integrations.
func (r *ToolRegistry) List() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	return tools
}

// Invoke runs a tool by name with a parameter object.
func (r *ToolRegistry) Invoke(ctx context.Context, name string, params map[string]interface{}) (*dtos.QueryResult, error) {
	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool.Handler(ctx, params)
}
