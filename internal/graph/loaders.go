package graph

import (
	"context"

	"newsgraph-ai/internal/models"
	"newsgraph-ai/internal/repositories"

	"github.com/graph-gophers/dataloader/v7"
)

type contextKey string

const loadersKey contextKey = "newsgraph_loaders"

// Loaders is the per-execution batching state: one loader per relational edge.
// A fresh set is built for every executed query and discarded with it; the
// loader cache guarantees at most one store round trip per key within a run.
type Loaders struct {
	CategoryByID    *dataloader.Loader[string, *models.Category]
	TagsByArticleID *dataloader.Loader[string, []*models.Tag]
}

// NewLoaders builds a fresh loader set over the given repository. Missing ids
// resolve to nil results, never to errors, so a dangling foreign key renders
// as GraphQL null.
func NewLoaders(repo repositories.ArticleRepository) *Loaders {
	categoryBatch := func(ctx context.Context, ids []string) []*dataloader.Result[*models.Category] {
		results := make([]*dataloader.Result[*models.Category], len(ids))

		categories, err := repo.FindCategoriesByIDs(ctx, ids)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*models.Category]{Error: err}
			}
			return results
		}

		byID := make(map[string]*models.Category, len(categories))
		for _, c := range categories {
			byID[c.ID] = c
		}
		for i, id := range ids {
			results[i] = &dataloader.Result[*models.Category]{Data: byID[id]}
		}
		return results
	}

	tagsBatch := func(ctx context.Context, articleIDs []string) []*dataloader.Result[[]*models.Tag] {
		results := make([]*dataloader.Result[[]*models.Tag], len(articleIDs))

		tagsByArticle, err := repo.FindTagsByArticleIDs(ctx, articleIDs)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[[]*models.Tag]{Error: err}
			}
			return results
		}

		for i, id := range articleIDs {
			results[i] = &dataloader.Result[[]*models.Tag]{Data: tagsByArticle[id]}
		}
		return results
	}

	return &Loaders{
		CategoryByID:    dataloader.NewBatchedLoader(categoryBatch),
		TagsByArticleID: dataloader.NewBatchedLoader(tagsBatch),
	}
}

// WithLoaders attaches a loader set to a context for one execution.
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// LoadersFrom extracts the execution's loader set.
func LoadersFrom(ctx context.Context) (*Loaders, bool) {
	loaders, ok := ctx.Value(loadersKey).(*Loaders)
	return loaders, ok
}
