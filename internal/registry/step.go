// Package registry stores step definitions and transform rules.
//
// Both registries are populated once, before a run begins, and are read-only
// for the remainder of the run. Registration is guarded by a mutex so that
// context-loading collaborators may register from init paths; lookups take a
// read lock only.
package registry

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
)

// StepDefinition is a registered, executable step definition. The pattern
// string is its identity: no two definitions in one registry may share it,
// regardless of keyword category.
type StepDefinition struct {
	// Keyword is the registration keyword category. Informational only; it
	// never participates in matching or uniqueness.
	Keyword domain.Keyword

	// Pattern is the unique source pattern string.
	Pattern string

	// Arity is the number of positional argument slots, derived from the
	// pattern's capture-group count.
	Arity int

	// Handler is the executable body.
	Handler domain.StepHandler

	re *regexp.Regexp
}

// Match pairs a definition with the values it captured from a step text.
type Match struct {
	Definition *StepDefinition
	Captures   []string
}

// StepRegistry stores step definitions keyed by their compiled patterns.
// An explicitly constructed registry is passed into the engine, so multiple
// independent runs never share global state.
type StepRegistry struct {
	mu        sync.RWMutex
	defs      []*StepDefinition
	byPattern map[string]*StepDefinition
}

// NewStepRegistry creates a new empty step registry.
func NewStepRegistry() *StepRegistry {
	return &StepRegistry{
		byPattern: make(map[string]*StepDefinition),
	}
}

// Register compiles the pattern and adds a definition for it.
//
// Patterns are full-text patterns: the registry does not impose anchoring,
// so authors write their own ^...$ anchors. Arity is derived from the
// compiled pattern's capture-group count.
//
// Returns ErrDuplicatePattern when the identical pattern string is already
// registered - under any keyword - leaving the registry unchanged. Returns
// ErrInvalidPattern when the pattern does not compile and ErrNilHandler when
// no handler is supplied. Registration errors are fatal to startup; callers
// surface them before any scenario runs.
func (r *StepRegistry) Register(kw domain.Keyword, pattern string, handler domain.StepHandler) (*StepDefinition, error) {
	if pattern == "" {
		return nil, gherkiterrors.Wrap(gherkiterrors.ErrEmptyValue, "step pattern")
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: step pattern %q", gherkiterrors.ErrNilHandler, pattern)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", gherkiterrors.ErrInvalidPattern, pattern, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byPattern[pattern]; ok {
		return nil, fmt.Errorf("%w: %q already registered under %s",
			gherkiterrors.ErrDuplicatePattern, pattern, existing.Keyword)
	}

	def := &StepDefinition{
		Keyword: kw,
		Pattern: pattern,
		Arity:   re.NumSubexp(),
		Handler: handler,
		re:      re,
	}
	r.defs = append(r.defs, def)
	r.byPattern[pattern] = def
	return def, nil
}

// Lookup evaluates every registered pattern against the step text and
// returns all matches with their captures, in registration order. This is a
// pure read operation with no side effects; at-most-one-match policy is
// enforced by the engine, not here.
func (r *StepRegistry) Lookup(text string) []Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Match
	for _, def := range r.defs {
		m := def.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		matches = append(matches, Match{Definition: def, Captures: m[1:]})
	}
	return matches
}

// Len returns the number of registered definitions.
func (r *StepRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Definitions returns a copy of the registered definitions in registration
// order.
func (r *StepRegistry) Definitions() []*StepDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*StepDefinition, len(r.defs))
	copy(defs, r.defs)
	return defs
}
