package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
)

// TableSignaturePrefix distinguishes a table-column-signature pattern from a
// value pattern in the collaborator-facing registration format
// (e.g. "table:name,age" vs "^\d+$").
const TableSignaturePrefix = "table:"

// ValueTransform maps a raw captured string to a replacement value. Transform
// handlers are pure mappings; they must not mutate shared state. Their own
// failures propagate as a Failed classification for the step.
type ValueTransform func(raw string) (any, error)

// TableTransform maps an attached table whose column signature matched to a
// replacement value.
type TableTransform func(table *domain.Table) (any, error)

type valueRule struct {
	pattern string
	re      *regexp.Regexp
	fn      ValueTransform
}

// TransformRegistry stores value-conversion rules, keyed by pattern. Applied
// by the binder after matching and before handler invocation, at most once
// per argument per execution.
type TransformRegistry struct {
	values []*valueRule
	tables map[string]TableTransform
}

// NewTransformRegistry creates a new empty transform registry.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{
		tables: make(map[string]TableTransform),
	}
}

// RegisterValue adds a rule whose pattern is matched against raw captured
// strings. Like step patterns, value patterns carry their own anchors.
func (r *TransformRegistry) RegisterValue(pattern string, fn ValueTransform) error {
	if pattern == "" {
		return gherkiterrors.Wrap(gherkiterrors.ErrEmptyValue, "transform pattern")
	}
	if fn == nil {
		return fmt.Errorf("%w: transform pattern %q", gherkiterrors.ErrNilHandler, pattern)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", gherkiterrors.ErrInvalidPattern, pattern, err)
	}

	for _, rule := range r.values {
		if rule.pattern == pattern {
			return fmt.Errorf("%w: %q", gherkiterrors.ErrDuplicatePattern, pattern)
		}
	}

	r.values = append(r.values, &valueRule{pattern: pattern, re: re, fn: fn})
	return nil
}

// RegisterTable adds a rule keyed by a comma-delimited column-name signature.
// The "table:" registration prefix is accepted and stripped.
func (r *TransformRegistry) RegisterTable(signature string, fn TableTransform) error {
	signature = strings.TrimPrefix(signature, TableSignaturePrefix)
	if signature == "" {
		return gherkiterrors.Wrap(gherkiterrors.ErrEmptyValue, "table signature")
	}
	if fn == nil {
		return fmt.Errorf("%w: table signature %q", gherkiterrors.ErrNilHandler, signature)
	}
	if _, ok := r.tables[signature]; ok {
		return fmt.Errorf("%w: table signature %q", gherkiterrors.ErrDuplicatePattern, signature)
	}
	r.tables[signature] = fn
	return nil
}

// ApplyValue runs the raw captured string through the matching value rule.
//
// Returns (value, true, nil) when exactly one rule matched, (nil, false, nil)
// when none did, and an ErrTransformConflict when two or more rules match the
// same value - conflicting rules are a configuration error and are never
// resolved silently in favor of one of them.
func (r *TransformRegistry) ApplyValue(raw string) (any, bool, error) {
	var matched []*valueRule
	for _, rule := range r.values {
		if rule.re.MatchString(raw) {
			matched = append(matched, rule)
		}
	}

	switch len(matched) {
	case 0:
		return nil, false, nil
	case 1:
		v, err := matched[0].fn(raw)
		if err != nil {
			return nil, false, gherkiterrors.Wrapf(err, "transform %q on %q", matched[0].pattern, raw)
		}
		return v, true, nil
	default:
		patterns := make([]string, len(matched))
		for i, rule := range matched {
			patterns[i] = rule.pattern
		}
		return nil, false, fmt.Errorf("%w: value %q matches %s",
			gherkiterrors.ErrTransformConflict, raw, strings.Join(patterns, ", "))
	}
}

// ApplyTable runs the table through the rule registered for its exact column
// signature. Returns (nil, false, nil) when no rule is registered for the
// signature; the binder then passes the raw table through unchanged.
func (r *TransformRegistry) ApplyTable(table *domain.Table) (any, bool, error) {
	if table == nil {
		return nil, false, nil
	}
	fn, ok := r.tables[table.Signature()]
	if !ok {
		return nil, false, nil
	}
	v, err := fn(table)
	if err != nil {
		return nil, false, gherkiterrors.Wrapf(err, "table transform %q", table.Signature())
	}
	return v, true, nil
}

// Len returns the total number of registered rules.
func (r *TransformRegistry) Len() int {
	return len(r.values) + len(r.tables)
}
