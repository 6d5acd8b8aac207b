// Package gherkit is a behavior-driven test runner: it matches Gherkin steps
// to registered handler functions by regular expression, binds captured
// values through transform rules, and executes scenarios with a single
// aggregate outcome each.
//
// The package root re-exports the types a suite author touches; the matching
// and execution machinery lives in internal packages. Typical use is a Suite
// driven from TestMain:
//
//	func TestMain(m *testing.M) {
//		suite := gherkit.NewSuite(gherkit.WithPaths("features"))
//		suite.Given(`^a cart with (\d+) items$`, aCartWithItems)
//		os.Exit(suite.Run(context.Background()))
//	}
package gherkit

import (
	"github.com/gherkit/gherkit/internal/domain"
	"github.com/gherkit/gherkit/internal/registry"
)

// Types a suite author works with, re-exported from the domain layer.
type (
	// Arg is a single bound argument passed to a step handler.
	Arg = domain.Arg

	// StepHandler is the executable body of a step definition.
	StepHandler = domain.StepHandler

	// Keyword is a Gherkin step keyword. Keywords are advisory: they do not
	// participate in matching or pattern uniqueness.
	Keyword = domain.Keyword

	// Step is one step of a scenario as parsed from a feature file.
	Step = domain.Step

	// Scenario is an ordered list of steps under a feature.
	Scenario = domain.Scenario

	// Table is a data table attached to a step.
	Table = domain.Table

	// DocString is a block of literal text attached to a step.
	DocString = domain.DocString

	// ChainedStep asks the engine to resolve another step through the full
	// matching pipeline before the current step is finalized.
	ChainedStep = domain.ChainedStep

	// Chain is an ordered list of chained-step requests.
	Chain = domain.Chain

	// StepStatus is the outcome classification of a processed step.
	StepStatus = domain.StepStatus

	// StepResult is the classification of a single processed step.
	StepResult = domain.StepResult

	// ScenarioResult holds the ordered step results of one scenario.
	ScenarioResult = domain.ScenarioResult

	// RunResult holds the complete results of a run.
	RunResult = domain.RunResult

	// Summary holds aggregate counters for a run.
	Summary = domain.Summary

	// ValueTransform maps a raw captured string to a replacement value.
	ValueTransform = registry.ValueTransform

	// TableTransform maps an attached table whose column signature matched
	// to a replacement value.
	TableTransform = registry.TableTransform
)

// Step keywords.
const (
	Given = domain.Given
	When  = domain.When
	Then  = domain.Then
	And   = domain.And
	But   = domain.But
)

// Step outcome classifications.
const (
	StatusSuccessful = domain.StatusSuccessful
	StatusFailed     = domain.StatusFailed
	StatusPending    = domain.StatusPending
	StatusUndefined  = domain.StatusUndefined
	StatusAmbiguous  = domain.StatusAmbiguous
	StatusSkipped    = domain.StatusSkipped
)

// Pending returns the error a handler signals for a step that is not
// implemented yet.
func Pending(reason string) error {
	return domain.Pending(reason)
}

// Pendingf is Pending with a formatted reminder message.
func Pendingf(format string, args ...any) error {
	return domain.Pendingf(format, args...)
}
