package handlers

import (
	"net/http"
	"strconv"

	"newsgraph-ai/internal/apis/dtos"
	"newsgraph-ai/internal/services"

	"github.com/gin-gonic/gin"
)

type QueryHandler struct {
	queryService services.QueryService
	statsService services.StatsService
	toolRegistry *services.ToolRegistry
}

func NewQueryHandler(queryService services.QueryService, statsService services.StatsService, toolRegistry *services.ToolRegistry) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
		statsService: statsService,
		toolRegistry: toolRegistry,
	}
}

// Ask is the translate-and-run entry point.
func (h *QueryHandler) Ask(c *gin.Context) {
	var req dtos.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusBadRequest, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	result, err := h.queryService.ProcessNaturalLanguageQuery(c.Request.Context(), req.NaturalLanguageQuery)
	if err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusUnprocessableEntity, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	c.JSON(http.StatusOK, dtos.Response{
		Success: true,
		Data:    result,
	})
}

// GraphQL executes caller-authored query text through the same validated executor.
func (h *QueryHandler) GraphQL(c *gin.Context) {
	var req dtos.GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusBadRequest, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	data, err := h.queryService.RunStructuredQuery(c.Request.Context(), req.Query, req.Variables)
	if err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusUnprocessableEntity, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	c.JSON(http.StatusOK, dtos.Response{
		Success: true,
		Data:    data,
	})
}

// ListTools advertises the tool descriptors for assistant integrations.
func (h *QueryHandler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, dtos.Response{
		Success: true,
		Data:    h.toolRegistry.List(),
	})
}

// InvokeTool runs a registered tool by name with a parameter object.
func (h *QueryHandler) InvokeTool(c *gin.Context) {
	var req dtos.ToolInvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusBadRequest, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	result, err := h.toolRegistry.Invoke(c.Request.Context(), req.Name, req.Parameters)
	if err != nil {
		errorMsg := err.Error()
		status := http.StatusUnprocessableEntity
		if errorMsg == "tool not found: "+req.Name {
			status = http.StatusNotFound
		}
		c.JSON(status, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	c.JSON(http.StatusOK, dtos.Response{
		Success: true,
		Data:    result,
	})
}

// History lists recent pipeline runs from the query log store.
func (h *QueryHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	response, err := h.queryService.GetHistory(page, pageSize)
	if err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusInternalServerError, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	c.JSON(http.StatusOK, dtos.Response{
		Success: true,
		Data:    response,
	})
}

// Stats returns the cached corpus aggregates.
func (h *QueryHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		errorMsg := err.Error()
		c.JSON(http.StatusInternalServerError, dtos.Response{
			Success: false,
			Error:   &errorMsg,
		})
		return
	}

	c.JSON(http.StatusOK, dtos.Response{
		Success: true,
		Data:    stats,
	})
}
