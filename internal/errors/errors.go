// Package errors provides centralized error handling for gherkit.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the engine. All error types can be checked using
// errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrDuplicatePattern indicates that two step definitions claim the
	// identical pattern string. The keyword category each was declared under
	// does not participate in uniqueness. Registration errors are fatal
	// before any scenario runs.
	ErrDuplicatePattern = errors.New("duplicate step pattern")

	// ErrUndefinedStep indicates that no registered definition matched a
	// step's text. The scenario continues with remaining steps skipped.
	ErrUndefinedStep = errors.New("undefined step")

	// ErrAmbiguousMatch indicates that more than one registered definition
	// matched a step's text. Same propagation as ErrUndefinedStep.
	ErrAmbiguousMatch = errors.New("ambiguous step match")

	// ErrPendingStep indicates that a handler explicitly signaled the step is
	// not implemented yet. This is an expected, intentional signal, not a
	// defect; handlers construct it via domain.Pending.
	ErrPendingStep = errors.New("step not yet implemented")

	// ErrTransformConflict indicates that more than one transform rule
	// matched the same captured value. Selection is never resolved silently;
	// the step fails fast with this error.
	ErrTransformConflict = errors.New("conflicting transform rules")

	// ErrChainDepthExceeded indicates that chained-step resolution exceeded
	// the configured depth ceiling, guarding against cyclic chains.
	ErrChainDepthExceeded = errors.New("chain too deep")

	// ErrNilHandler indicates that a definition or transform was registered
	// without a handler function.
	ErrNilHandler = errors.New("handler is nil")

	// ErrInvalidPattern indicates that a pattern string failed to compile as
	// a regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrParseFeature indicates that a feature file could not be parsed.
	ErrParseFeature = errors.New("parse feature")

	// ErrNoFeatures indicates that no feature files were found at the
	// requested paths.
	ErrNoFeatures = errors.New("no feature files found")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrRunFailed indicates that a run finished with outcomes the exit-code
	// contract treats as failing. Used by the CLI to exit non-zero without
	// aborting mid-run.
	ErrRunFailed = errors.New("run failed")
)
