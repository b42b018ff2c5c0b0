package services

import (
	"fmt"
	"regexp"
	"strings"
)

// FallbackTranslator maps raw text onto canned structured queries with an
// ordered pattern rule list, first match wins. It is pure, does no I/O and
// always returns a query, so the pipeline always has a terminal non-error
// translation path. Rule order matters: trending is checked before the search
// rules so "most popular articles" is not misclassified as a search.
type FallbackTranslator struct {
	rules []fallbackRule
}

type fallbackRule struct {
	name    string
	matches func(lower string) bool
	build   func(original string) *StructuredQuery
}

var (
	aboutPattern     = regexp.MustCompile(`(?i)\b(?:about|on|regarding)\s+(?:the\s+|a\s+|an\s+)?"?([A-Za-z0-9][\w-]*)`)
	categoryPattern  = regexp.MustCompile(`(?i)\b(?:in|from)\s+(?:the\s+)?([A-Za-z0-9-]+)\s+category\b`)
	articleIDPattern = regexp.MustCompile(`(?i)\barticle\s+"?([A-Za-z0-9][\w-]*)`)
	wordPattern      = regexp.MustCompile(`[A-Za-z0-9][\w-]*`)
)

// searchStopwords are skipped when picking a free search term from the text.
var searchStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "me": true, "my": true, "i": true,
	"show": true, "find": true, "search": true, "get": true, "give": true,
	"list": true, "look": true, "for": true, "of": true, "to": true,
	"please": true, "some": true, "all": true, "any": true, "with": true,
	"articles": true, "article": true, "news": true, "stories": true, "story": true,
}

func NewFallbackTranslator() *FallbackTranslator {
	return &FallbackTranslator{
		rules: []fallbackRule{
			{
				name: "trending",
				matches: func(lower string) bool {
					return strings.Contains(lower, "trending") || strings.Contains(lower, "popular")
				},
				build: func(string) *StructuredQuery {
					return &StructuredQuery{
						Query:       "query { trendingArticles(limit: 5) { id title author publishedAt engagementScore } }",
						Explanation: "Showing trending articles ranked by engagement score.",
					}
				},
			},
			{
				name: "stats",
				matches: func(lower string) bool {
					return strings.Contains(lower, "stats") || strings.Contains(lower, "statistic") ||
						strings.Contains(lower, "how many") || strings.Contains(lower, "total")
				},
				build: func(string) *StructuredQuery {
					return &StructuredQuery{
						Query:       "query { articleStats { totalArticles totalViews totalLikes totalComments avgEngagement topCategory } }",
						Explanation: "Showing aggregate statistics for the article corpus.",
					}
				},
			},
			{
				name: "search-about",
				matches: func(lower string) bool {
					return aboutPattern.MatchString(lower)
				},
				build: func(original string) *StructuredQuery {
					term := aboutPattern.FindStringSubmatch(original)[1]
					return searchQuery(term)
				},
			},
			{
				name: "recommend",
				matches: func(lower string) bool {
					related := strings.Contains(lower, "similar") || strings.Contains(lower, "recommend") ||
						strings.Contains(lower, "related") || strings.Contains(lower, "like article")
					return related && articleIDPattern.MatchString(lower)
				},
				build: func(original string) *StructuredQuery {
					articleID := articleIDPattern.FindStringSubmatch(original)[1]
					return &StructuredQuery{
						Query:       "query ($articleId: ID!) { recommendArticles(articleId: $articleId, limit: 5) { id title author publishedAt } }",
						Variables:   map[string]interface{}{"articleId": articleID},
						Explanation: fmt.Sprintf("Recommending articles related to article %s.", articleID),
					}
				},
			},
			{
				name: "category",
				matches: func(lower string) bool {
					return categoryPattern.MatchString(lower)
				},
				build: func(original string) *StructuredQuery {
					name := strings.ToLower(categoryPattern.FindStringSubmatch(original)[1])
					return &StructuredQuery{
						Query:       "query ($categoryId: ID!) { articlesByCategory(categoryId: $categoryId, limit: 10) { id title author publishedAt } }",
						Variables:   map[string]interface{}{"categoryId": "cat-" + name},
						Explanation: fmt.Sprintf("Showing articles from the %s category.", name),
					}
				},
			},
			{
				name: "search-term",
				matches: func(lower string) bool {
					if !strings.Contains(lower, "search") && !strings.Contains(lower, "find") &&
						!strings.Contains(lower, "look for") {
						return false
					}
					return firstContentWord(lower) != ""
				},
				build: func(original string) *StructuredQuery {
					return searchQuery(firstContentWord(original))
				},
			},
		},
	}
}

// Translate applies the rules top to bottom; if none match it falls through to
// the recent-articles default. It never fails.
func (t *FallbackTranslator) Translate(text string) *StructuredQuery {
	lower := strings.ToLower(text)
	for _, rule := range t.rules {
		if rule.matches(lower) {
			return rule.build(text)
		}
	}

	return &StructuredQuery{
		Query:       "query { articles(limit: 10) { id title author publishedAt } }",
		Explanation: "Showing the most recent articles.",
	}
}

func searchQuery(term string) *StructuredQuery {
	return &StructuredQuery{
		Query:       "query ($searchTerm: String!) { searchArticles(searchTerm: $searchTerm, limit: 10) { id title author publishedAt } }",
		Variables:   map[string]interface{}{"searchTerm": term},
		Explanation: fmt.Sprintf("Searching articles about %q.", term),
	}
}

// firstContentWord returns the first word not in the stoplist, case preserved.
func firstContentWord(text string) string {
	for _, word := range wordPattern.FindAllString(text, -1) {
		if !searchStopwords[strings.ToLower(word)] {
			return word
		}
	}
	return ""
}
