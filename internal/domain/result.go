package domain

import (
	"time"

	"github.com/gherkit/gherkit/internal/constants"
)

// StepResult holds the classification of a single step after the engine
// processed it. Created per step, aggregated into ScenarioResult, and handed
// to the reporting layer; the engine never persists it.
type StepResult struct {
	// Keyword and Text identify the step as written.
	Keyword Keyword
	Text    string

	// Status is the outcome classification.
	Status StepStatus

	// Err carries the diagnostic for Failed and Pending steps, and the
	// sentinel-wrapped step text for Undefined/Ambiguous. Nil for Successful
	// and Skipped.
	Err error

	// Conflicts lists the pattern strings of every conflicting definition
	// when Status is Ambiguous.
	Conflicts []string

	// FromChain is true when the status was escalated from a chained step.
	// Chain-originated Undefined steps never produce snippets.
	FromChain bool

	// StartedAt is when execution began. Zero for steps that were never
	// executed (Skipped, Undefined, Ambiguous).
	StartedAt time.Time

	// Duration is the wall-clock handler execution time, including chained
	// resolution. Zero for steps that were never executed.
	Duration time.Duration
}

// ScenarioResult holds the ordered step results of one scenario.
type ScenarioResult struct {
	// Feature and Name identify the scenario.
	Feature string
	Name    string

	// Tags holds the scenario's tag names.
	Tags []string

	// Steps contains one result per input step, in input order.
	Steps []StepResult

	// StartedAt is when the scenario began executing.
	StartedAt time.Time

	// Duration is the wall-clock time for the whole scenario.
	Duration time.Duration
}

// Status returns the scenario's aggregate classification: the first halting
// step status, or Successful when every step succeeded.
func (r *ScenarioResult) Status() StepStatus {
	for _, step := range r.Steps {
		if constants.IsHaltingStatus(step.Status) {
			return step.Status
		}
	}
	return StatusSuccessful
}

// Passed reports whether every step classified Successful.
func (r *ScenarioResult) Passed() bool {
	return r.Status() == StatusSuccessful
}

// Summary holds aggregate counters for a run.
type Summary struct {
	ScenariosTotal  int
	ScenariosPassed int

	StepsSuccessful int
	StepsFailed     int
	StepsPending    int
	StepsUndefined  int
	StepsAmbiguous  int
	StepsSkipped    int
}

// Add tallies one scenario result into the summary.
func (s *Summary) Add(r *ScenarioResult) {
	s.ScenariosTotal++
	if r.Passed() {
		s.ScenariosPassed++
	}
	for _, step := range r.Steps {
		switch step.Status {
		case StatusSuccessful:
			s.StepsSuccessful++
		case StatusFailed:
			s.StepsFailed++
		case StatusPending:
			s.StepsPending++
		case StatusUndefined:
			s.StepsUndefined++
		case StatusAmbiguous:
			s.StepsAmbiguous++
		case StatusSkipped:
			s.StepsSkipped++
		}
	}
}

// RunResult holds the complete results of a run across all scenarios.
type RunResult struct {
	// ID is a unique identifier for the run.
	ID string

	// Scenarios contains one result per executed scenario, in input order.
	Scenarios []ScenarioResult

	// Summary holds aggregate counters.
	Summary Summary

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the total wall-clock time for the run.
	Duration time.Duration
}

// Passed reports whether every scenario passed.
func (r *RunResult) Passed() bool {
	return r.Summary.ScenariosPassed == r.Summary.ScenariosTotal
}
