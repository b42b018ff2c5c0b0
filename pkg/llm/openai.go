package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client              *openai.Client
	model               string
	maxCompletionTokens int
	temperature         float64
	responseSchema      string
}

func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	client := openai.NewClient(config.APIKey)
	model := config.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIClient{
		client:              client,
		model:               model,
		maxCompletionTokens: config.MaxCompletionTokens,
		temperature:         config.Temperature,
		responseSchema:      config.ResponseSchema,
	}, nil
}

func (c *OpenAIClient) TranslateQuery(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userQuery},
		},
		MaxCompletionTokens: c.maxCompletionTokens,
		Temperature:         float32(c.temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        "newsgraph-translation",
				Description: "A GraphQL translation of a natural language request",
				Schema:      json.RawMessage(c.responseSchema),
				Strict:      false,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("TranslateQuery -> err: %v", err)
		return "", fmt.Errorf("OpenAI API error: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GetModelInfo() ModelInfo {
	return ModelInfo{
		Name:                c.model,
		Provider:            "openai",
		MaxCompletionTokens: c.maxCompletionTokens,
		ContextLimit:        getModelContextLimit(c.model),
	}
}

func getModelContextLimit(model string) int {
	switch model {
	case openai.GPT4TurboPreview:
		return 128000 // 128k tokens
	case openai.GPT4:
		return 8192 // 8k tokens
	case openai.GPT3Dot5Turbo:
		return 4096 // 4k tokens
	default:
		return 4096
	}
}
