package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"newsgraph-ai/internal/apis/dtos"
	"newsgraph-ai/internal/models"
	"newsgraph-ai/internal/repositories"

	"github.com/google/uuid"
)

// QueryService orchestrates the translate-correct-validate-execute pipeline.
type QueryService interface {
	ProcessNaturalLanguageQuery(ctx context.Context, naturalQuery string) (*dtos.QueryResult, error)
	RunStructuredQuery(ctx context.Context, queryText string, variables map[string]interface{}) (interface{}, error)
	GetHistory(page, pageSize int) (*dtos.HistoryResponse, error)
}

type queryService struct {
	translator   Translator
	fallback     *FallbackTranslator
	corrector    *Corrector
	validator    *Validator
	executor     *Executor
	queryLogRepo repositories.QueryLogRepository
}

func NewQueryService(
	translator Translator,
	fallback *FallbackTranslator,
	corrector *Corrector,
	validator *Validator,
	executor *Executor,
	queryLogRepo repositories.QueryLogRepository,
) QueryService {
	return &queryService{
		translator:   translator,
		fallback:     fallback,
		corrector:    corrector,
		validator:    validator,
		executor:     executor,
		queryLogRepo: queryLogRepo,
	}
}

// ProcessNaturalLanguageQuery runs the whole pipeline: LLM translation with
// silent fallback, textual correction (model path only), whitelist validation,
// then execution with a fresh per-call loader set. A run either yields a
// complete envelope or one uniform error; no partial results.
func (s *queryService) ProcessNaturalLanguageQuery(ctx context.Context, naturalQuery string) (*dtos.QueryResult, error) {
	start := time.Now()
	requestID := uuid.NewString()
	queryLog := models.NewQueryLog(requestID, naturalQuery)

	usedFallback := false
	sq, err := s.translator.Translate(ctx, naturalQuery)
	if err != nil {
		// Translation failures are recovered locally, never surfaced.
		log.Printf("ProcessNaturalLanguageQuery -> translation failed, using fallback: %v", err)
		sq = s.fallback.Translate(naturalQuery)
		usedFallback = true
	} else {
		sq = s.corrector.Correct(sq)
	}

	queryLog.StructuredQuery = sq.Query
	queryLog.Interpretation = sq.Explanation
	queryLog.UsedFallback = usedFallback

	validation := s.validator.Validate(sq.Query)
	if !validation.IsValid {
		failure := fmt.Errorf("failed to process request: invalid query: %s", strings.Join(validation.Errors, "; "))
		s.recordRun(queryLog, start, failure)
		return nil, failure
	}

	data, execErrs := s.executor.Execute(ctx, sq.Query, sq.Variables)
	if len(execErrs) > 0 {
		// Only the first engine error is surfaced, to keep the message single-line.
		failure := fmt.Errorf("failed to process request: %s", execErrs[0].Message)
		s.recordRun(queryLog, start, failure)
		return nil, failure
	}

	result := &dtos.QueryResult{
		Query:           naturalQuery,
		Interpretation:  sq.Explanation,
		StructuredQuery: sq.Query,
		Results:         data,
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}

	s.recordRun(queryLog, start, nil)
	return result, nil
}

// RunStructuredQuery validates and executes caller-authored query text,
// bypassing translation.
func (s *queryService) RunStructuredQuery(ctx context.Context, queryText string, variables map[string]interface{}) (interface{}, error) {
	validation := s.validator.Validate(queryText)
	if !validation.IsValid {
		return nil, fmt.Errorf("invalid query: %s", strings.Join(validation.Errors, "; "))
	}

	data, execErrs := s.executor.Execute(ctx, queryText, variables)
	if len(execErrs) > 0 {
		return nil, fmt.Errorf("%s", execErrs[0].Message)
	}
	return data, nil
}

func (s *queryService) GetHistory(page, pageSize int) (*dtos.HistoryResponse, error) {
	logs, total, err := s.queryLogRepo.FindRecent(page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch query history: %v", err)
	}
	return &dtos.HistoryResponse{Logs: logs, Total: total}, nil
}

// recordRun persists the run to the history store, best effort.
func (s *queryService) recordRun(queryLog *models.QueryLog, start time.Time, failure error) {
	if s.queryLogRepo == nil {
		return
	}

	queryLog.ExecutionTimeMs = time.Since(start).Milliseconds()
	queryLog.Succeeded = failure == nil
	if failure != nil {
		queryLog.Error = failure.Error()
	}

	if err := s.queryLogRepo.Create(queryLog); err != nil {
		log.Printf("recordRun -> failed to persist query log: %v", err)
	}
}
