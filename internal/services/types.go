package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StructuredQuery is a candidate machine query: GraphQL text, an optional flat
// variable mapping and a human explanation of intent. Translators produce it,
// the corrector may rewrite it, the validator and executor consume it.
type StructuredQuery struct {
	Query       string                 `json:"query"`
	Variables   map[string]interface{} `json:"variables,omitempty"`
	Explanation string                 `json:"explanation"`
}

// ValidationResult is the outcome of linting a StructuredQuery. Either every
// check ran and Errors holds the accumulated violations, or Errors is empty
// and IsValid is true.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// ParseStructuredQuery decodes an LLM answer into a StructuredQuery. The
// answer must be a JSON object with exactly the three contract fields; unknown
// keys, missing required fields, null variables and nested variable values all
// fail the parse so the caller can fall back.
func ParseStructuredQuery(raw string) (*StructuredQuery, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	var sq StructuredQuery
	if err := dec.Decode(&sq); err != nil {
		return nil, fmt.Errorf("malformed translation JSON: %v", err)
	}

	if strings.TrimSpace(sq.Query) == "" {
		return nil, fmt.Errorf("translation is missing the query field")
	}
	if strings.TrimSpace(sq.Explanation) == "" {
		return nil, fmt.Errorf("translation is missing the explanation field")
	}

	for key, value := range sq.Variables {
		if value == nil {
			return nil, fmt.Errorf("variable %q is null; absent variables must be omitted", key)
		}
		switch value.(type) {
		case string, float64, bool, []interface{}:
		default:
			return nil, fmt.Errorf("variable %q is not a flat scalar value", key)
		}
	}

	return &sq, nil
}
