// Package domain provides shared domain types for the gherkit engine.
package domain

import "github.com/gherkit/gherkit/internal/constants"

// StepStatus is re-exported from the constants package so consumers can
// import domain types and status values together.
//
// Example usage:
//
//	import "github.com/gherkit/gherkit/internal/domain"
//
//	result := domain.StepResult{
//	    Status: domain.StatusSuccessful,
//	}
type StepStatus = constants.StepStatus

// Re-export step status constants for convenience.
// These mirror the values in internal/constants/status.go.
const (
	// StatusSuccessful indicates the handler returned normally.
	StatusSuccessful = constants.StepStatusSuccessful

	// StatusFailed indicates the handler signaled an error or panicked.
	StatusFailed = constants.StepStatusFailed

	// StatusPending indicates the handler signaled the step is unimplemented.
	StatusPending = constants.StepStatusPending

	// StatusUndefined indicates no definition matched the step text.
	StatusUndefined = constants.StepStatusUndefined

	// StatusAmbiguous indicates multiple definitions matched the step text.
	StatusAmbiguous = constants.StepStatusAmbiguous

	// StatusSkipped indicates an earlier step halted the scenario.
	StatusSkipped = constants.StepStatusSkipped
)
