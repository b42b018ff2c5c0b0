package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"newsgraph-ai/internal/graph"
	"newsgraph-ai/internal/models"
	"newsgraph-ai/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corpusRepo is an in-memory ArticleRepository seeded with a small fixed
// corpus. It counts relational fetches so pipeline tests can assert batching.
type corpusRepo struct {
	mu sync.Mutex

	articles   []*models.Article
	categories map[string]*models.Category
	tags       map[string][]*models.Tag

	categoryFetches int
	computeCalls    int
	lastSearchTerm  string
}

func newCorpusRepo() *corpusRepo {
	return &corpusRepo{
		categories: map[string]*models.Category{
			"cat-politics": {ID: "cat-politics", Name: "Politics", Slug: "politics"},
			"cat-science":  {ID: "cat-science", Name: "Science", Slug: "science"},
		},
		tags: map[string][]*models.Tag{
			"a1": {{ID: "tag-climate", Name: "climate"}},
		},
		articles: []*models.Article{
			{
				ID: "a1", Title: "Climate summit reaches accord", Content: "Delegates agreed on emission cuts.",
				Author: "Dana Whitfield", PublishedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
				ViewCount: 100, LikeCount: 10, CommentCount: 5, CategoryID: "cat-politics",
			},
			{
				ID: "a2", Title: "Election season heats up", Content: "Polling shifts in key districts.",
				Author: "Marcus Obi", PublishedAt: time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
				ViewCount: 50, LikeCount: 4, CommentCount: 1, CategoryID: "cat-politics",
			},
			{
				ID: "a3", Title: "Probe confirms water on lunar pole", Content: "Spectrometer data settles the debate.",
				Author: "Priya Raman", PublishedAt: time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC),
				ViewCount: 300, LikeCount: 30, CommentCount: 12, CategoryID: "cat-science",
			},
		},
	}
}

func (r *corpusRepo) FindRecent(_ context.Context, limit, offset int) ([]*models.Article, error) {
	sorted := r.sortedBy(func(a, b *models.Article) bool { return a.PublishedAt.After(b.PublishedAt) })
	return window(sorted, limit, offset), nil
}

func (r *corpusRepo) FindByID(_ context.Context, id string) (*models.Article, error) {
	for _, a := range r.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *corpusRepo) FindByIDs(_ context.Context, ids []string) ([]*models.Article, error) {
	var found []*models.Article
	for _, id := range ids {
		for _, a := range r.articles {
			if a.ID == id {
				found = append(found, a)
			}
		}
	}
	return found, nil
}

func (r *corpusRepo) Search(_ context.Context, term string, limit int) ([]*models.Article, error) {
	r.mu.Lock()
	r.lastSearchTerm = term
	r.mu.Unlock()

	needle := strings.ToLower(term)
	var found []*models.Article
	for _, a := range r.articles {
		if strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Content), needle) {
			found = append(found, a)
		}
	}
	return window(found, limit, 0), nil
}

func (r *corpusRepo) FindTrending(_ context.Context, limit int) ([]*models.Article, error) {
	sorted := r.sortedBy(func(a, b *models.Article) bool { return a.EngagementScore() > b.EngagementScore() })
	return window(sorted, limit, 0), nil
}

func (r *corpusRepo) FindByCategory(_ context.Context, categoryID string, limit int) ([]*models.Article, error) {
	var found []*models.Article
	for _, a := range r.articles {
		if a.CategoryID == categoryID {
			found = append(found, a)
		}
	}
	return window(found, limit, 0), nil
}

func (r *corpusRepo) FindRelated(ctx context.Context, articleID string, limit int) ([]*models.Article, error) {
	subject, err := r.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, fmt.Errorf("article not found: %s", articleID)
	}

	var found []*models.Article
	for _, a := range r.articles {
		if a.CategoryID == subject.CategoryID && a.ID != subject.ID {
			found = append(found, a)
		}
	}
	return window(found, limit, 0), nil
}

func (r *corpusRepo) FindCategoriesByIDs(_ context.Context, ids []string) ([]*models.Category, error) {
	r.mu.Lock()
	r.categoryFetches++
	r.mu.Unlock()

	var found []*models.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

func (r *corpusRepo) FindTagsByArticleIDs(_ context.Context, articleIDs []string) (map[string][]*models.Tag, error) {
	result := make(map[string][]*models.Tag)
	for _, id := range articleIDs {
		if tags, ok := r.tags[id]; ok {
			result[id] = tags
		}
	}
	return result, nil
}

func (r *corpusRepo) ComputeStats(context.Context) (*repositories.CorpusStats, error) {
	r.mu.Lock()
	r.computeCalls++
	r.mu.Unlock()

	stats := &repositories.CorpusStats{TotalArticles: int64(len(r.articles))}
	for _, a := range r.articles {
		stats.TotalViews += int64(a.ViewCount)
		stats.TotalLikes += int64(a.LikeCount)
		stats.TotalComments += int64(a.CommentCount)
		stats.AvgEngagement += a.EngagementScore()
	}
	if len(r.articles) > 0 {
		stats.AvgEngagement /= float64(len(r.articles))
	}
	stats.TopCategoryName = "Politics"
	return stats, nil
}

func (r *corpusRepo) Create(_ context.Context, article *models.Article) error {
	r.articles = append(r.articles, article)
	return nil
}

func (r *corpusRepo) CreateCategory(_ context.Context, category *models.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *corpusRepo) sortedBy(less func(a, b *models.Article) bool) []*models.Article {
	sorted := make([]*models.Article, len(r.articles))
	copy(sorted, r.articles)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if less(sorted[j], sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return sorted
}

func window(articles []*models.Article, limit, offset int) []*models.Article {
	if offset >= len(articles) {
		return nil
	}
	articles = articles[offset:]
	if limit < len(articles) {
		articles = articles[:limit]
	}
	return articles
}

// memoryQueryLogRepo collects run records in memory.
type memoryQueryLogRepo struct {
	mu   sync.Mutex
	logs []*models.QueryLog
}

func (m *memoryQueryLogRepo) Create(queryLog *models.QueryLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, queryLog)
	return nil
}

func (m *memoryQueryLogRepo) FindRecent(page, pageSize int) ([]*models.QueryLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logs, int64(len(m.logs)), nil
}

func (m *memoryQueryLogRepo) last() *models.QueryLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.logs) == 0 {
		return nil
	}
	return m.logs[len(m.logs)-1]
}

// failingTranslator simulates an unreachable or misbehaving LLM.
type failingTranslator struct{}

func (failingTranslator) Translate(context.Context, string) (*StructuredQuery, error) {
	return nil, fmt.Errorf("LLM translation failed: connection refused")
}

// cannedTranslator replays one fixed model answer.
type cannedTranslator struct{ sq StructuredQuery }

func (c cannedTranslator) Translate(context.Context, string) (*StructuredQuery, error) {
	copied := c.sq
	return &copied, nil
}

func newTestService(t *testing.T, translator Translator, repo *corpusRepo) (QueryService, *memoryQueryLogRepo) {
	t.Helper()

	grammar := graph.NewGrammar()
	schema, err := graph.NewSchema(repo, directStats{repo: repo})
	require.NoError(t, err)

	logRepo := &memoryQueryLogRepo{}
	service := NewQueryService(
		translator,
		NewFallbackTranslator(),
		NewCorrector(grammar),
		NewValidator(grammar),
		NewExecutor(schema, repo),
		logRepo,
	)
	return service, logRepo
}

// directStats adapts the repo directly, bypassing the cache layer.
type directStats struct{ repo *corpusRepo }

func (s directStats) GetStats(ctx context.Context) (*repositories.CorpusStats, error) {
	return s.repo.ComputeStats(ctx)
}

func TestProcessTrendingRequestFallsBackWhenTranslatorFails(t *testing.T) {
	repo := newCorpusRepo()
	service, logRepo := newTestService(t, failingTranslator{}, repo)

	result, err := service.ProcessNaturalLanguageQuery(context.Background(), "Show me trending articles")
	require.NoError(t, err, "a translator outage must never surface to the caller")

	assert.Equal(t, "Show me trending articles", result.Query)
	assert.Contains(t, result.Interpretation, "trending")
	assert.Contains(t, result.StructuredQuery, "trendingArticles(limit: 5)")
	assert.GreaterOrEqual(t, result.ExecutionTimeMs, int64(0))

	data, ok := result.Results.(map[string]interface{})
	require.True(t, ok)
	trending, ok := data["trendingArticles"].([]interface{})
	require.True(t, ok)
	require.Len(t, trending, 3)

	top := trending[0].(map[string]interface{})
	assert.Equal(t, "Probe confirms water on lunar pole", top["title"])
	assert.InDelta(t, 57.0, top["engagementScore"], 0.001)

	record := logRepo.last()
	require.NotNil(t, record)
	assert.True(t, record.UsedFallback)
	assert.True(t, record.Succeeded)
	assert.Contains(t, record.StructuredQuery, "trendingArticles")
}

func TestProcessSearchRequestPassesExtractedTermToStore(t *testing.T) {
	repo := newCorpusRepo()
	service, _ := newTestService(t, failingTranslator{}, repo)

	result, err := service.ProcessNaturalLanguageQuery(context.Background(), "Find articles about climate")
	require.NoError(t, err)

	assert.Equal(t, "climate", repo.lastSearchTerm)
	assert.Contains(t, result.StructuredQuery, "searchArticles")

	data := result.Results.(map[string]interface{})
	found := data["searchArticles"].([]interface{})
	require.Len(t, found, 1)
	assert.Equal(t, "Climate summit reaches accord", found[0].(map[string]interface{})["title"])
}

func TestProcessStatsRequest(t *testing.T) {
	repo := newCorpusRepo()
	service, _ := newTestService(t, failingTranslator{}, repo)

	result, err := service.ProcessNaturalLanguageQuery(context.Background(), "how many articles are there?")
	require.NoError(t, err)

	data := result.Results.(map[string]interface{})
	stats := data["articleStats"].(map[string]interface{})
	assert.Equal(t, 3, stats["totalArticles"])
	assert.Equal(t, "Politics", stats["topCategory"])
}

func TestProcessCorrectsModelQueryBeforeExecution(t *testing.T) {
	repo := newCorpusRepo()
	service, logRepo := newTestService(t, cannedTranslator{sq: StructuredQuery{
		Query:       "query { trendingArticles { id title } }",
		Explanation: "Showing trending articles.",
	}}, repo)

	result, err := service.ProcessNaturalLanguageQuery(context.Background(), "What's hot?")
	require.NoError(t, err)

	assert.Contains(t, result.StructuredQuery, "trendingArticles(limit: 5)")
	assert.Contains(t, result.StructuredQuery, "engagementScore")

	data := result.Results.(map[string]interface{})
	trending := data["trendingArticles"].([]interface{})
	top := trending[0].(map[string]interface{})
	_, hasScore := top["engagementScore"]
	assert.True(t, hasScore, "corrected selection must carry the engagement score")

	record := logRepo.last()
	require.NotNil(t, record)
	assert.False(t, record.UsedFallback)
}

func TestProcessRejectsInvalidModelQueryUniformly(t *testing.T) {
	repo := newCorpusRepo()
	service, logRepo := newTestService(t, cannedTranslator{sq: StructuredQuery{
		Query:       `query { articles(filter: { category: { name: "Politics" } }) { id title } }`,
		Explanation: "Politics articles.",
	}}, repo)

	_, err := service.ProcessNaturalLanguageQuery(context.Background(), "Show politics news")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to process request: invalid query:"), "got: %v", err)
	assert.Contains(t, err.Error(), "deprecated")

	record := logRepo.last()
	require.NotNil(t, record)
	assert.False(t, record.Succeeded)
	assert.NotEmpty(t, record.Error)
}

func TestProcessSurfacesEngineFailureWithUniformPrefix(t *testing.T) {
	repo := newCorpusRepo()
	service, _ := newTestService(t, cannedTranslator{sq: StructuredQuery{
		Query:       `query { articles(limit: "ten") { id title } }`,
		Explanation: "Recent articles.",
	}}, repo)

	_, err := service.ProcessNaturalLanguageQuery(context.Background(), "ten articles please")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to process request:"), "got: %v", err)
}

func TestExecutionBatchesSharedCategoryLookups(t *testing.T) {
	repo := newCorpusRepo()
	// Move every article into one category so the loader cache collapses the
	// relational lookups of the whole list into a single fetch.
	for _, a := range repo.articles {
		a.CategoryID = "cat-politics"
	}
	service, _ := newTestService(t, failingTranslator{}, repo)

	query := "query { articles(limit: 10) { id title category { id name } } }"
	data, err := service.RunStructuredQuery(context.Background(), query, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.categoryFetches, "one execution must fetch a shared category once")

	articles := data.(map[string]interface{})["articles"].([]interface{})
	require.Len(t, articles, 3)
	for _, item := range articles {
		category := item.(map[string]interface{})["category"].(map[string]interface{})
		assert.Equal(t, "Politics", category["name"])
	}

	// A second execution starts with empty loaders and fetches again.
	_, err = service.RunStructuredQuery(context.Background(), query, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.categoryFetches)
}

func TestRunStructuredQueryValidatesWithoutProcessPrefix(t *testing.T) {
	repo := newCorpusRepo()
	service, _ := newTestService(t, failingTranslator{}, repo)

	_, err := service.RunStructuredQuery(context.Background(), "query { dropTables { id } }", nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid query:"), "got: %v", err)
}

func TestRunStructuredQueryWithVariables(t *testing.T) {
	repo := newCorpusRepo()
	service, _ := newTestService(t, failingTranslator{}, repo)

	query := `query ($categoryId: ID!) { articlesByCategory(categoryId: $categoryId, limit: 10) { id title } }`
	data, err := service.RunStructuredQuery(context.Background(), query, map[string]interface{}{"categoryId": "cat-science"})
	require.NoError(t, err)

	articles := data.(map[string]interface{})["articlesByCategory"].([]interface{})
	require.Len(t, articles, 1)
	assert.Equal(t, "a3", articles[0].(map[string]interface{})["id"])
}

func TestGetHistoryReturnsRecordedRuns(t *testing.T) {
	repo := newCorpusRepo()
	service, logRepo := newTestService(t, failingTranslator{}, repo)

	_, err := service.ProcessNaturalLanguageQuery(context.Background(), "Show me trending articles")
	require.NoError(t, err)
	_, err = service.ProcessNaturalLanguageQuery(context.Background(), "good morning")
	require.NoError(t, err)

	history, err := service.GetHistory(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), history.Total)
	require.Len(t, history.Logs, 2)
	assert.Equal(t, logRepo.last().RequestID, history.Logs[1].RequestID)
}
