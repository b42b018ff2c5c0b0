package graph

import (
	"fmt"
	"strings"
)

// FieldShape classifies how a return field is selected in a query.
type FieldShape string

const (
	ShapeScalar FieldShape = "scalar"
	ShapeObject FieldShape = "object"
	ShapeList   FieldShape = "list"
)

type Field struct {
	Name  string
	Type  string
	Shape FieldShape
}

type Parameter struct {
	Name     string
	Type     string
	Required bool
	Default  string
}

type Operation struct {
	Name        string
	Description string
	Parameters  []Parameter
	Returns     string
	ReturnsList bool
}

// Grammar is the static description of every allowed root operation and
// return type. It is built once at startup, rendered verbatim into the LLM
// prompt and consulted by the validator; it is never mutated afterwards.
type Grammar struct {
	Operations        []Operation
	Types             map[string][]Field
	DeprecatedFilters map[string]string // deprecated key -> replacement key
}

// NewGrammar builds the grammar for the news corpus schema.
func NewGrammar() *Grammar {
	return &Grammar{
		Operations: []Operation{
			{
				Name:        "articles",
				Description: "Most recently published articles",
				Parameters: []Parameter{
					{Name: "limit", Type: "Int", Default: "10"},
					{Name: "offset", Type: "Int", Default: "0"},
				},
				Returns:     "Article",
				ReturnsList: true,
			},
			{
				Name:        "article",
				Description: "A single article by id",
				Parameters: []Parameter{
					{Name: "id", Type: "ID", Required: true},
				},
				Returns: "Article",
			},
			{
				Name:        "searchArticles",
				Description: "Full-text search over titles and content",
				Parameters: []Parameter{
					{Name: "searchTerm", Type: "String", Required: true},
					{Name: "limit", Type: "Int", Default: "10"},
				},
				Returns:     "Article",
				ReturnsList: true,
			},
			{
				Name:        "trendingArticles",
				Description: "Articles ranked by engagement score",
				Parameters: []Parameter{
					{Name: "limit", Type: "Int", Default: "5"},
				},
				Returns:     "Article",
				ReturnsList: true,
			},
			{
				Name:        "articlesByCategory",
				Description: "Articles within one category",
				Parameters: []Parameter{
					{Name: "categoryId", Type: "ID", Required: true},
					{Name: "limit", Type: "Int", Default: "10"},
				},
				Returns:     "Article",
				ReturnsList: true,
			},
			{
				Name:        "recommendArticles",
				Description: "Articles related to a given article",
				Parameters: []Parameter{
					{Name: "articleId", Type: "ID", Required: true},
					{Name: "limit", Type: "Int", Default: "5"},
				},
				Returns:     "Article",
				ReturnsList: true,
			},
			{
				Name:        "articleStats",
				Description: "Aggregate statistics over the whole corpus",
				Returns:     "ArticleStats",
			},
		},
		Types: map[string][]Field{
			"Article": {
				{Name: "id", Type: "ID", Shape: ShapeScalar},
				{Name: "title", Type: "String", Shape: ShapeScalar},
				{Name: "content", Type: "String", Shape: ShapeScalar},
				{Name: "author", Type: "String", Shape: ShapeScalar},
				{Name: "publishedAt", Type: "String", Shape: ShapeScalar},
				{Name: "viewCount", Type: "Int", Shape: ShapeScalar},
				{Name: "likeCount", Type: "Int", Shape: ShapeScalar},
				{Name: "commentCount", Type: "Int", Shape: ShapeScalar},
				{Name: "engagementScore", Type: "Float", Shape: ShapeScalar},
				{Name: "category", Type: "Category", Shape: ShapeObject},
				{Name: "tags", Type: "Tag", Shape: ShapeList},
			},
			"Category": {
				{Name: "id", Type: "ID", Shape: ShapeScalar},
				{Name: "name", Type: "String", Shape: ShapeScalar},
				{Name: "slug", Type: "String", Shape: ShapeScalar},
			},
			"Tag": {
				{Name: "id", Type: "ID", Shape: ShapeScalar},
				{Name: "name", Type: "String", Shape: ShapeScalar},
			},
			"ArticleStats": {
				{Name: "totalArticles", Type: "Int", Shape: ShapeScalar},
				{Name: "totalViews", Type: "Int", Shape: ShapeScalar},
				{Name: "totalLikes", Type: "Int", Shape: ShapeScalar},
				{Name: "totalComments", Type: "Int", Shape: ShapeScalar},
				{Name: "avgEngagement", Type: "Float", Shape: ShapeScalar},
				{Name: "topCategory", Type: "String", Shape: ShapeScalar},
			},
		},
		DeprecatedFilters: map[string]string{
			"category": "categoryId",
		},
	}
}

// Operation returns the named root operation, if known.
func (g *Grammar) Operation(name string) (*Operation, bool) {
	for i := range g.Operations {
		if g.Operations[i].Name == name {
			return &g.Operations[i], true
		}
	}
	return nil, false
}

// RequiredParameter returns the first mandatory parameter of an operation, if any.
func (o *Operation) RequiredParameter() (*Parameter, bool) {
	for i := range o.Parameters {
		if o.Parameters[i].Required {
			return &o.Parameters[i], true
		}
	}
	return nil, false
}

// ScalarFields lists every scalar field across all return types. The validator
// uses this to catch scalar-followed-by-selection-block mistakes.
func (g *Grammar) ScalarFields() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, typeFields := range g.Types {
		for _, f := range typeFields {
			if f.Shape == ShapeScalar && !seen[f.Name] {
				seen[f.Name] = true
				fields = append(fields, f.Name)
			}
		}
	}
	return fields
}

// Render serializes the grammar for the LLM prompt: every operation with its
// parameters and defaults, then every return type with its field shapes.
func (g *Grammar) Render() string {
	var b strings.Builder

	b.WriteString("Root operations:\n")
	for _, op := range g.Operations {
		b.WriteString(fmt.Sprintf("- %s", op.Name))
		if len(op.Parameters) > 0 {
			params := make([]string, 0, len(op.Parameters))
			for _, p := range op.Parameters {
				s := fmt.Sprintf("%s: %s", p.Name, p.Type)
				if p.Required {
					s += "!"
				} else if p.Default != "" {
					s += " = " + p.Default
				}
				params = append(params, s)
			}
			b.WriteString("(" + strings.Join(params, ", ") + ")")
		}
		returns := op.Returns
		if op.ReturnsList {
			returns = "[" + returns + "]"
		}
		b.WriteString(fmt.Sprintf(": %s - %s\n", returns, op.Description))
	}

	b.WriteString("\nReturn types:\n")
	for _, typeName := range []string{"Article", "Category", "Tag", "ArticleStats"} {
		b.WriteString(fmt.Sprintf("- %s:\n", typeName))
		for _, f := range g.Types[typeName] {
			switch f.Shape {
			case ShapeObject:
				b.WriteString(fmt.Sprintf("    %s: %s (object, needs a selection block)\n", f.Name, f.Type))
			case ShapeList:
				b.WriteString(fmt.Sprintf("    %s: [%s] (list of objects, needs a selection block)\n", f.Name, f.Type))
			default:
				b.WriteString(fmt.Sprintf("    %s: %s (scalar, no selection block)\n", f.Name, f.Type))
			}
		}
	}

	if len(g.DeprecatedFilters) > 0 {
		b.WriteString("\nDeprecated filter keys:\n")
		for old, replacement := range g.DeprecatedFilters {
			b.WriteString(fmt.Sprintf("- %q is deprecated, use %q with a plain identifier string\n", old, replacement))
		}
	}

	return b.String()
}
