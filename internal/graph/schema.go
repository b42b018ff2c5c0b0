package graph

import (
	"context"
	"fmt"
	"time"

	"newsgraph-ai/internal/models"
	"newsgraph-ai/internal/repositories"

	"github.com/graphql-go/graphql"
)

// StatsProvider computes corpus-wide aggregates for the articleStats operation.
type StatsProvider interface {
	GetStats(ctx context.Context) (*repositories.CorpusStats, error)
}

// NewSchema builds the executable GraphQL schema over the article store. The
// schema mirrors the Grammar exactly; relational fields resolve through the
// per-execution loaders injected into the context.
func NewSchema(repo repositories.ArticleRepository, stats StatsProvider) (graphql.Schema, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Category).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Category).Name, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Category).Slug, nil
				},
			},
		},
	})

	tagType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Tag).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Tag).Name, nil
				},
			},
		},
	})

	articleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Article",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).ID, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).Title, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).Content, nil
				},
			},
			"author": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).Author, nil
				},
			},
			"publishedAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).PublishedAt.Format(time.RFC3339), nil
				},
			},
			"viewCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).ViewCount, nil
				},
			},
			"likeCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).LikeCount, nil
				},
			},
			"commentCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).CommentCount, nil
				},
			},
			"engagementScore": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Article).EngagementScore(), nil
				},
			},
			"category": &graphql.Field{
				Type: categoryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					article := p.Source.(*models.Article)
					if article.CategoryID == "" {
						return nil, nil
					}
					loaders, ok := LoadersFrom(p.Context)
					if !ok {
						return nil, fmt.Errorf("no loaders in execution context")
					}
					thunk := loaders.CategoryByID.Load(p.Context, article.CategoryID)
					return func() (interface{}, error) {
						category, err := thunk()
						if err != nil {
							return nil, err
						}
						if category == nil {
							return nil, nil
						}
						return category, nil
					}, nil
				},
			},
			"tags": &graphql.Field{
				Type: graphql.NewList(tagType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					article := p.Source.(*models.Article)
					loaders, ok := LoadersFrom(p.Context)
					if !ok {
						return nil, fmt.Errorf("no loaders in execution context")
					}
					thunk := loaders.TagsByArticleID.Load(p.Context, article.ID)
					return func() (interface{}, error) {
						tags, err := thunk()
						if err != nil {
							return nil, err
						}
						return tags, nil
					}, nil
				},
			},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ArticleStats",
		Fields: graphql.Fields{
			"totalArticles": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*repositories.CorpusStats).TotalArticles, nil
				},
			},
			"totalViews": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*repositories.CorpusStats).TotalViews, nil
				},
			},
			"totalLikes": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*repositories.CorpusStats).TotalLikes, nil
				},
			},
			"totalComments": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*repositories.CorpusStats).TotalComments, nil
				},
			},
			"avgEngagement": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*repositories.CorpusStats).AvgEngagement, nil
				},
			},
			"topCategory": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*repositories.CorpusStats).TopCategoryName, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"articles": &graphql.Field{
				Type: graphql.NewList(articleType),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					limit, _ := p.Args["limit"].(int)
					offset, _ := p.Args["offset"].(int)
					return repo.FindRecent(p.Context, limit, offset)
				},
			},
			"article": &graphql.Field{
				Type: articleType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					article, err := repo.FindByID(p.Context, id)
					if err != nil {
						return nil, err
					}
					if article == nil {
						return nil, nil
					}
					return article, nil
				},
			},
			"searchArticles": &graphql.Field{
				Type: graphql.NewList(articleType),
				Args: graphql.FieldConfigArgument{
					"searchTerm": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					term, _ := p.Args["searchTerm"].(string)
					limit, _ := p.Args["limit"].(int)
					return repo.Search(p.Context, term, limit)
				},
			},
			"trendingArticles": &graphql.Field{
				Type: graphql.NewList(articleType),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					limit, _ := p.Args["limit"].(int)
					return repo.FindTrending(p.Context, limit)
				},
			},
			"articlesByCategory": &graphql.Field{
				Type: graphql.NewList(articleType),
				Args: graphql.FieldConfigArgument{
					"categoryId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					categoryID, _ := p.Args["categoryId"].(string)
					limit, _ := p.Args["limit"].(int)
					return repo.FindByCategory(p.Context, categoryID, limit)
				},
			},
			"recommendArticles": &graphql.Field{
				Type: graphql.NewList(articleType),
				Args: graphql.FieldConfigArgument{
					"articleId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"limit":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					articleID, _ := p.Args["articleId"].(string)
					limit, _ := p.Args["limit"].(int)
					return repo.FindRelated(p.Context, articleID, limit)
				},
			},
			"articleStats": &graphql.Field{
				Type: statsType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return stats.GetStats(p.Context)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}
