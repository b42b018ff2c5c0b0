package repositories

import (
	"context"
	"errors"
	"fmt"

	"newsgraph-ai/internal/models"

	"gorm.io/gorm"
)

// engagementExpr mirrors models.Article.EngagementScore so trending can be
// ordered inside PostgreSQL instead of in memory.
const engagementExpr = "(view_count * 0.1 + like_count * 0.5 + comment_count * 1.0)"

// CorpusStats holds aggregate statistics over the article corpus.
type CorpusStats struct {
	TotalArticles   int64   `json:"total_articles"`
	TotalViews      int64   `json:"total_views"`
	TotalLikes      int64   `json:"total_likes"`
	TotalComments   int64   `json:"total_comments"`
	AvgEngagement   float64 `json:"avg_engagement"`
	TopCategoryName string  `json:"top_category_name"`
}

type ArticleRepository interface {
	FindRecent(ctx context.Context, limit, offset int) ([]*models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Article, error)
	Search(ctx context.Context, term string, limit int) ([]*models.Article, error)
	FindTrending(ctx context.Context, limit int) ([]*models.Article, error)
	FindByCategory(ctx context.Context, categoryID string, limit int) ([]*models.Article, error)
	FindRelated(ctx context.Context, articleID string, limit int) ([]*models.Article, error)
	FindCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error)
	FindTagsByArticleIDs(ctx context.Context, articleIDs []string) (map[string][]*models.Tag, error)
	ComputeStats(ctx context.Context) (*CorpusStats, error)
	Create(ctx context.Context, article *models.Article) error
	CreateCategory(ctx context.Context, category *models.Category) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) FindRecent(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) FindByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).Find(&articles, "id IN ?", ids).Error
	return articles, err
}

func (r *articleRepository) Search(ctx context.Context, term string, limit int) ([]*models.Article, error) {
	var articles []*models.Article
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("published_at DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) FindTrending(ctx context.Context, limit int) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Order(engagementExpr + " DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) FindByCategory(ctx context.Context, categoryID string, limit int) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("published_at DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

// FindRelated recommends articles from the same category, most engaged first.
func (r *articleRepository) FindRelated(ctx context.Context, articleID string, limit int) ([]*models.Article, error) {
	subject, err := r.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, fmt.Errorf("article not found: %s", articleID)
	}

	var articles []*models.Article
	err = r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", subject.CategoryID, subject.ID).
		Order(engagementExpr + " DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) FindCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Find(&categories, "id IN ?", ids).Error
	return categories, err
}

func (r *articleRepository) FindTagsByArticleIDs(ctx context.Context, articleIDs []string) (map[string][]*models.Tag, error) {
	type taggedRow struct {
		models.Tag
		ArticleID string
	}

	var rows []taggedRow
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.*, article_tags.article_id AS article_id").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("article_tags.article_id IN ?", articleIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string][]*models.Tag, len(articleIDs))
	for i := range rows {
		tag := rows[i].Tag
		result[rows[i].ArticleID] = append(result[rows[i].ArticleID], &tag)
	}
	return result, nil
}

func (r *articleRepository) ComputeStats(ctx context.Context) (*CorpusStats, error) {
	stats := &CorpusStats{}

	type totalsRow struct {
		Total    int64
		Views    int64
		Likes    int64
		Comments int64
		AvgEng   float64
	}
	var totals totalsRow
	err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("COUNT(*) AS total, COALESCE(SUM(view_count),0) AS views, COALESCE(SUM(like_count),0) AS likes, COALESCE(SUM(comment_count),0) AS comments, COALESCE(AVG" + engagementExpr + ",0) AS avg_eng").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	stats.TotalArticles = totals.Total
	stats.TotalViews = totals.Views
	stats.TotalLikes = totals.Likes
	stats.TotalComments = totals.Comments
	stats.AvgEngagement = totals.AvgEng

	var topCategory struct{ Name string }
	err = r.db.WithContext(ctx).
		Table("articles").
		Select("categories.name AS name").
		Joins("JOIN categories ON categories.id = articles.category_id").
		Group("categories.name").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&topCategory).Error
	if err != nil {
		return nil, err
	}
	stats.TopCategoryName = topCategory.Name

	return stats, nil
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
