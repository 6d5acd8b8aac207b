package domain

import (
	"context"
	"fmt"

	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
)

// StepHandler is the executable body of a step definition.
//
// The engine classifies the invocation from the returned pair:
//   - nil error with any value → Successful, unless the value is a Chain or
//     ChainedStep, which the engine resolves first (see Chain).
//   - an error wrapping errors.ErrPendingStep (built with Pending/Pendingf)
//     → Pending, with the reminder message as diagnostic.
//   - any other error → Failed, with the error chain as diagnostic.
//
// Handlers may have arbitrary side effects on fixtures outside the engine's
// control. The engine treats the call as opaque and synchronous; timeouts, if
// wanted, are imposed by the caller through ctx.
type StepHandler func(ctx context.Context, args []Arg) (any, error)

// Arg is a single bound argument passed to a step handler. Arguments are
// tagged values: either the raw captured string, a transform rule's output,
// or an attached table/doc string. The engine never coerces values itself.
type Arg struct {
	// Raw is the captured text for positional arguments. Empty for attached
	// table and doc string arguments.
	Raw string

	// Value is the transform rule's output when a rule matched. Nil when the
	// argument passed through untransformed.
	Value any

	// Table is the attached data table when no table transform matched.
	Table *Table

	// DocString is the attached block text.
	DocString *DocString
}

// Transformed reports whether a transform rule replaced this argument.
func (a Arg) Transformed() bool {
	return a.Value != nil
}

// Text returns the argument as a string: the raw capture for positional
// arguments, or the transformed value's string form if the transform produced
// a string.
func (a Arg) Text() string {
	if s, ok := a.Value.(string); ok {
		return s
	}
	return a.Raw
}

// Pending returns the error a handler signals for a step that is not
// implemented yet. The reason is an optional reminder message shown in the
// diagnostic output.
func Pending(reason string) error {
	if reason == "" {
		return gherkiterrors.ErrPendingStep
	}
	return fmt.Errorf("%w: %s", gherkiterrors.ErrPendingStep, reason)
}

// Pendingf is Pending with a formatted reminder message.
func Pendingf(format string, args ...any) error {
	return Pending(fmt.Sprintf(format, args...))
}

// ChainedStep asks the engine to resolve another step through the full
// matching pipeline before the current step is finalized. Handlers return a
// ChainedStep (or a Chain) as their value in lieu of a normal result.
type ChainedStep struct {
	// Keyword is advisory, like any registration keyword.
	Keyword Keyword

	// Text is matched against the registry exactly like a top-level step.
	Text string

	// Table is an optional attached table for the chained step.
	Table *Table
}

// Step converts the request into a Step for the pipeline.
func (c ChainedStep) Step() Step {
	return Step{Keyword: c.Keyword, Text: c.Text, Table: c.Table}
}

// Chain is an ordered list of chained-step requests, resolved in declared
// order. The first non-Successful resolution replaces the outer step's
// outcome and stops the remaining entries.
type Chain []ChainedStep
