package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsgraph-ai/internal/apis/dtos"
	"newsgraph-ai/internal/repositories"
	"newsgraph-ai/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQueryService struct {
	result  *dtos.QueryResult
	data    interface{}
	history *dtos.HistoryResponse
	err     error
}

func (s *stubQueryService) ProcessNaturalLanguageQuery(context.Context, string) (*dtos.QueryResult, error) {
	return s.result, s.err
}

func (s *stubQueryService) RunStructuredQuery(context.Context, string, map[string]interface{}) (interface{}, error) {
	return s.data, s.err
}

func (s *stubQueryService) GetHistory(int, int) (*dtos.HistoryResponse, error) {
	return s.history, s.err
}

type stubStatsService struct {
	stats *repositories.CorpusStats
	err   error
}

func (s *stubStatsService) GetStats(context.Context) (*repositories.CorpusStats, error) {
	return s.stats, s.err
}

func newTestRouter(queryService services.QueryService, statsService services.StatsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewQueryHandler(queryService, statsService, services.NewToolRegistry(queryService))

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/ask", handler.Ask)
		api.POST("/graphql", handler.GraphQL)
		api.GET("/tools", handler.ListTools)
		api.POST("/tools/invoke", handler.InvokeTool)
		api.GET("/history", handler.History)
		api.GET("/stats", handler.Stats)
	}
	return router
}

func performJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAskReturnsEnvelope(t *testing.T) {
	queryService := &stubQueryService{result: &dtos.QueryResult{
		Query:           "Show me trending articles",
		Interpretation:  "Showing trending articles ranked by engagement score.",
		StructuredQuery: "query { trendingArticles(limit: 5) { id title engagementScore } }",
		Results:         map[string]interface{}{"trendingArticles": []interface{}{}},
		ExecutionTimeMs: 12,
	}}
	router := newTestRouter(queryService, &stubStatsService{})

	recorder := performJSON(router, http.MethodPost, "/api/ask", `{"naturalLanguageQuery": "Show me trending articles"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Success bool             `json:"success"`
		Data    dtos.QueryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "Show me trending articles", response.Data.Query)
	assert.Contains(t, response.Data.StructuredQuery, "trendingArticles")
	assert.Equal(t, int64(12), response.Data.ExecutionTimeMs)
}

func TestAskRejectsMissingQueryField(t *testing.T) {
	router := newTestRouter(&stubQueryService{}, &stubStatsService{})

	recorder := performJSON(router, http.MethodPost, "/api/ask", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAskSurfacesPipelineFailure(t *testing.T) {
	queryService := &stubQueryService{err: fmt.Errorf("failed to process request: invalid query: no valid operation found in query")}
	router := newTestRouter(queryService, &stubStatsService{})

	recorder := performJSON(router, http.MethodPost, "/api/ask", `{"naturalLanguageQuery": "nonsense"}`)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var response dtos.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.False(t, response.Success)
	require.NotNil(t, response.Error)
	assert.Contains(t, *response.Error, "failed to process request")
}

func TestGraphQLEndpointRequiresQuery(t *testing.T) {
	router := newTestRouter(&stubQueryService{}, &stubStatsService{})

	recorder := performJSON(router, http.MethodPost, "/api/graphql", `{"variables": {}}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListToolsAdvertisesQueryNews(t *testing.T) {
	router := newTestRouter(&stubQueryService{}, &stubStatsService{})

	recorder := performJSON(router, http.MethodGet, "/api/tools", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "query_news")
	assert.Contains(t, recorder.Body.String(), "naturalLanguageQuery")
}

func TestInvokeUnknownToolReturnsNotFound(t *testing.T) {
	router := newTestRouter(&stubQueryService{}, &stubStatsService{})

	recorder := performJSON(router, http.MethodPost, "/api/tools/invoke", `{"name": "summarize_article"}`)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "tool not found")
}

func TestHistoryEndpoint(t *testing.T) {
	queryService := &stubQueryService{history: &dtos.HistoryResponse{Total: 2}}
	router := newTestRouter(queryService, &stubStatsService{})

	recorder := performJSON(router, http.MethodGet, "/api/history?page=1&page_size=10", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":2`)
}

func TestStatsEndpoint(t *testing.T) {
	statsService := &stubStatsService{stats: &repositories.CorpusStats{TotalArticles: 42, TopCategoryName: "Science"}}
	router := newTestRouter(&stubQueryService{}, statsService)

	recorder := performJSON(router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_articles":42`)
	assert.Contains(t, recorder.Body.String(), "Science")
}
