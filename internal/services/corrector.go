package services

import (
	"fmt"
	"regexp"
	"strings"

	"newsgraph-ai/internal/graph"
)

// Corrector patches known omissions in LLM-generated query text. It works by
// text substitution, not by parsing the query, because generated queries are
// template-shaped; every patch is idempotent. Fallback output is already
// canonical and never passes through here.
type Corrector struct {
	grammar *graph.Grammar

	bareOpPattern      *regexp.Regexp
	trendingOpenBrace  *regexp.Regexp
	defaultLimitByOp   map[string]string
}

func NewCorrector(grammar *graph.Grammar) *Corrector {
	defaults := make(map[string]string)
	for _, op := range grammar.Operations {
		for _, p := range op.Parameters {
			if p.Name == "limit" && p.Default != "" {
				defaults[op.Name] = p.Default
			}
		}
	}

	return &Corrector{
		grammar:           grammar,
		bareOpPattern:     regexp.MustCompile(`\b(articles|trendingArticles)\s*\{`),
		trendingOpenBrace: regexp.MustCompile(`\btrendingArticles\b[^{]*\{`),
		defaultLimitByOp:  defaults,
	}
}

// Correct applies every patch to the query text and returns the same
// StructuredQuery with the patched text.
func (c *Corrector) Correct(sq *StructuredQuery) *StructuredQuery {
	if sq == nil {
		return nil
	}

	text := c.insertDefaultLimit(sq.Query)
	text = c.insertEngagementScore(text)
	sq.Query = text
	return sq
}

// insertDefaultLimit rewrites a parameterless invocation of an operation that
// carries a default limit, e.g. "trendingArticles {" -> "trendingArticles(limit: 5) {".
func (c *Corrector) insertDefaultLimit(query string) string {
	return c.bareOpPattern.ReplaceAllStringFunc(query, func(match string) string {
		opName := strings.TrimRight(strings.TrimSpace(strings.TrimSuffix(match, "{")), " ")
		limit, ok := c.defaultLimitByOp[opName]
		if !ok {
			return match
		}
		return fmt.Sprintf("%s(limit: %s) {", opName, limit)
	})
}

// insertEngagementScore makes sure a trendingArticles selection carries the
// computed engagementScore field the result shape requires.
func (c *Corrector) insertEngagementScore(query string) string {
	if !strings.Contains(query, "trendingArticles") {
		return query
	}
	if strings.Contains(query, "engagementScore") {
		return query
	}
	return c.trendingOpenBrace.ReplaceAllStringFunc(query, func(match string) string {
		return match + " engagementScore"
	})
}
