package constants

// StepStatus represents the classification of a single step after the engine
// has attempted to resolve and execute it.
// Status values use snake_case-free lowercase words for JSON serialization
// and report output.
type StepStatus string

// Step status constants define the closed set of step classifications.
//
// A step enters execution only when it resolved to exactly one definition and
// no earlier step in the same scenario halted the run:
//
//	(resolved) → Successful, Failed, Pending
//	(unresolved) → Undefined, Ambiguous
//	(prior halt) → Skipped
const (
	// StepStatusSuccessful indicates the handler returned normally, and any
	// chained steps it requested also resolved successfully.
	StepStatusSuccessful StepStatus = "successful"

	// StepStatusFailed indicates the handler signaled an error, panicked, or a
	// chained step failed.
	StepStatusFailed StepStatus = "failed"

	// StepStatusPending indicates the handler explicitly signaled that the
	// step is not implemented yet.
	StepStatusPending StepStatus = "pending"

	// StepStatusUndefined indicates no registered definition matched the step
	// text.
	StepStatusUndefined StepStatus = "undefined"

	// StepStatusAmbiguous indicates two or more registered definitions matched
	// the step text.
	StepStatusAmbiguous StepStatus = "ambiguous"

	// StepStatusSkipped indicates an earlier step in the scenario halted
	// execution, so this step's handler was never invoked.
	StepStatusSkipped StepStatus = "skipped"
)

// haltingStatuses defines the statuses that stop a scenario: every later step
// in the same scenario is marked Skipped without invoking its handler.
// Successful continues the run; Skipped is itself a consequence of a halt and
// never causes one.
//
//nolint:gochecknoglobals // Read-only lookup table for halt checks
var haltingStatuses = map[StepStatus]bool{
	StepStatusFailed:    true,
	StepStatusPending:   true,
	StepStatusUndefined: true,
	StepStatusAmbiguous: true,
}

// IsHaltingStatus returns true for statuses that terminate the remainder of a
// scenario. Halting statuses: Failed, Pending, Undefined, Ambiguous.
func IsHaltingStatus(status StepStatus) bool {
	return haltingStatuses[status]
}

// IsValidStepStatus returns true if the status is one of the defined
// classifications.
func IsValidStepStatus(status StepStatus) bool {
	switch status {
	case StepStatusSuccessful, StepStatusFailed, StepStatusPending,
		StepStatusUndefined, StepStatusAmbiguous, StepStatusSkipped:
		return true
	default:
		return false
	}
}
