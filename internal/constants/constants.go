// Package constants defines shared enums, defaults, and paths for gherkit.
//
// This package MUST NOT import any other internal packages. Only standard
// library imports are allowed.
package constants

import "time"

// Application identity constants.
const (
	// AppName is the canonical application name.
	AppName = "gherkit"

	// EnvPrefix is the prefix for environment variable configuration
	// (e.g., GHERKIT_STRICT, GHERKIT_CONCURRENCY).
	EnvPrefix = "GHERKIT"
)

// Execution defaults.
const (
	// DefaultConcurrency is the number of scenarios executed at once.
	// 1 means fully sequential; steps within a scenario are always sequential.
	DefaultConcurrency = 1

	// DefaultChainDepthLimit bounds recursive chained-step resolution.
	// Exceeding it fails the outer step rather than recursing forever.
	DefaultChainDepthLimit = 25

	// DefaultStopOnFailure is false: a halted scenario never prevents other
	// scenarios from running.
	DefaultStopOnFailure = false
)

// Feature file constants.
const (
	// FeatureFileExtension is the expected extension for feature files.
	FeatureFileExtension = ".feature"
)

// Logging defaults.
const (
	// LogMaxSizeMB is the maximum size of a log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of a rotated log file.
	LogMaxAgeDays = 30

	// LogWriteTimeout bounds a single log file write.
	LogWriteTimeout = 5 * time.Second
)
