package services

import (
	"fmt"
	"regexp"

	"newsgraph-ai/internal/graph"
)

// Validator lints query text against the Schema Grammar whitelist. It never
// parses the query; every check is a literal pattern search, and all checks
// run so violations accumulate.
type Validator struct {
	grammar *graph.Grammar

	opPatterns        map[string]*regexp.Regexp
	paramPatterns     map[string]*regexp.Regexp
	scalarBlocks      map[string]*regexp.Regexp
	deprecatedFilters map[string]*regexp.Regexp
}

func NewValidator(grammar *graph.Grammar) *Validator {
	v := &Validator{
		grammar:           grammar,
		opPatterns:        make(map[string]*regexp.Regexp),
		paramPatterns:     make(map[string]*regexp.Regexp),
		scalarBlocks:      make(map[string]*regexp.Regexp),
		deprecatedFilters: make(map[string]*regexp.Regexp),
	}

	for _, op := range grammar.Operations {
		v.opPatterns[op.Name] = regexp.MustCompile(`\b` + op.Name + `\b`)
		if param, ok := op.RequiredParameter(); ok {
			v.paramPatterns[op.Name] = regexp.MustCompile(`\b` + param.Name + `\s*:`)
		}
	}

	for _, field := range grammar.ScalarFields() {
		v.scalarBlocks[field] = regexp.MustCompile(`\b` + field + `\s*\{`)
	}

	for old := range grammar.DeprecatedFilters {
		v.deprecatedFilters[old] = regexp.MustCompile(`\b` + old + `\s*:`)
	}

	return v
}

// Validate runs the whole check set against the query text.
func (v *Validator) Validate(queryText string) *ValidationResult {
	var errs []string

	// 1. At least one recognized root operation must appear.
	foundOps := make([]string, 0, 1)
	for _, op := range v.grammar.Operations {
		if v.opPatterns[op.Name].MatchString(queryText) {
			foundOps = append(foundOps, op.Name)
		}
	}
	if len(foundOps) == 0 {
		errs = append(errs, "no valid operation found in query")
	}

	// 2. Invoked operations with a mandatory parameter must carry its key.
	for _, opName := range foundOps {
		op, _ := v.grammar.Operation(opName)
		param, required := op.RequiredParameter()
		if !required {
			continue
		}
		if !v.paramPatterns[opName].MatchString(queryText) {
			errs = append(errs, fmt.Sprintf("%s requires a %s parameter", opName, param.Name))
		}
	}

	// 3. A scalar field followed by a selection block is a shape mistake.
	for _, field := range v.grammar.ScalarFields() {
		if v.scalarBlocks[field].MatchString(queryText) {
			errs = append(errs, fmt.Sprintf("field %q is a scalar and cannot have a selection block", field))
		}
	}

	// 4. Deprecated filter keys are rejected by name.
	for old, replacement := range v.grammar.DeprecatedFilters {
		if v.deprecatedFilters[old].MatchString(queryText) {
			errs = append(errs, fmt.Sprintf("filter key %q is deprecated, use %q with an identifier string", old, replacement))
		}
	}

	return &ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
