package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"newsgraph-ai/internal/repositories"
	"newsgraph-ai/pkg/redis"
)

const (
	statsCacheKey = "newsgraph:corpus_stats"
	statsCacheTTL = 60 * time.Second
)

// StatsService computes corpus aggregates with a short-lived Redis cache in
// front of the store; it backs the articleStats operation and the REST
// stats endpoint. Implements graph.StatsProvider.
type StatsService interface {
	GetStats(ctx context.Context) (*repositories.CorpusStats, error)
}

type statsService struct {
	articleRepo repositories.ArticleRepository
	redisRepo   redis.IRedisRepositories
}

func NewStatsService(articleRepo repositories.ArticleRepository, redisRepo redis.IRedisRepositories) StatsService {
	return &statsService{
		articleRepo: articleRepo,
		redisRepo:   redisRepo,
	}
}

func (s *statsService) GetStats(ctx context.Context) (*repositories.CorpusStats, error) {
	if s.redisRepo != nil {
		if cached, err := s.redisRepo.Get(statsCacheKey, ctx); err == nil {
			var stats repositories.CorpusStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.articleRepo.ComputeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisRepo != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.redisRepo.Set(statsCacheKey, data, statsCacheTTL, ctx); err != nil {
				log.Printf("GetStats -> failed to cache stats: %v", err)
			}
		}
	}

	return stats, nil
}
