package engine

import (
	"fmt"

	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
	"github.com/gherkit/gherkit/internal/registry"
)

// resolve finds the single definition for a step text.
//
// Zero matches classifies the step Undefined, with the verbatim step text as
// diagnostic for snippet generation. More than one classifies it Ambiguous,
// with the full list of conflicting definitions. Exactly one match is
// returned for binding. Resolution is a pure read of the registry.
func (e *Engine) resolve(step domain.Step) (registry.Match, *domain.StepResult) {
	matches := e.steps.Lookup(step.Text)

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return registry.Match{}, &domain.StepResult{
			Keyword: step.Keyword,
			Text:    step.Text,
			Status:  domain.StatusUndefined,
			Err:     fmt.Errorf("%w: %s", gherkiterrors.ErrUndefinedStep, step.Text),
		}
	default:
		conflicts := make([]string, len(matches))
		for i, m := range matches {
			conflicts[i] = m.Definition.Pattern
		}
		return registry.Match{}, &domain.StepResult{
			Keyword:   step.Keyword,
			Text:      step.Text,
			Status:    domain.StatusAmbiguous,
			Err:       fmt.Errorf("%w: %q matches %d definitions", gherkiterrors.ErrAmbiguousMatch, step.Text, len(matches)),
			Conflicts: conflicts,
		}
	}
}
