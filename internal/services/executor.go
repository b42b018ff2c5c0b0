package services

import (
	"context"

	"newsgraph-ai/internal/graph"
	"newsgraph-ai/internal/repositories"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

// Executor submits validated query text to the GraphQL engine. Every call
// gets a fresh loader set from the factory; the loaders live exactly as long
// as the one execution and coalesce all same-typed relational lookups made
// while the result tree is assembled into single batched store calls.
type Executor struct {
	schema     graphql.Schema
	newLoaders func() *graph.Loaders
}

func NewExecutor(schema graphql.Schema, repo repositories.ArticleRepository) *Executor {
	return &Executor{
		schema: schema,
		newLoaders: func() *graph.Loaders {
			return graph.NewLoaders(repo)
		},
	}
}

// Execute runs the query and returns the engine's data, or its error list
// verbatim on failure.
func (e *Executor) Execute(ctx context.Context, queryText string, variables map[string]interface{}) (interface{}, []gqlerrors.FormattedError) {
	execCtx := graph.WithLoaders(ctx, e.newLoaders())

	result := graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  queryText,
		VariableValues: variables,
		Context:        execCtx,
	})

	if len(result.Errors) > 0 {
		return nil, result.Errors
	}
	return result.Data, nil
}
