package dtos

import "newsgraph-ai/internal/models"

type AskRequest struct {
	NaturalLanguageQuery string `json:"naturalLanguageQuery" binding:"required"`
}

// QueryResult is the caller-visible envelope for one translate-and-run call.
type QueryResult struct {
	Query           string      `json:"query"`
	Interpretation  string      `json:"interpretation"`
	StructuredQuery string      `json:"structuredQuery"`
	Results         interface{} `json:"results"`
	ExecutionTimeMs int64       `json:"executionTimeMs"`
}

// GraphQLRequest carries a caller-authored structured query for the raw endpoint.
type GraphQLRequest struct {
	Query     string                 `json:"query" binding:"required"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type ToolInvokeRequest struct {
	Name       string                 `json:"name" binding:"required"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

type HistoryResponse struct {
	Logs  []*models.QueryLog `json:"logs"`
	Total int64              `json:"total"`
}
