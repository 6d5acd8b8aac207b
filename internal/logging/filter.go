// Package logging provides logging utilities including sensitive data
// filtering.
//
// Feature files and step captures routinely carry credentials ("When I log
// in with password ..."), and the engine logs step text verbatim. The
// helpers here ensure credential-shaped values are redacted before they
// reach log sinks.
package logging

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns contains compiled regular expressions for detecting
// sensitive values in step text and captured arguments.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// API keys (sk-... style)
	regexp.MustCompile(`sk-[a-zA-Z0-9_-]{16,}`),

	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_)
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_-]{20,}`),

	// Quoted values following password/secret/token words, the common shape
	// of login steps in feature files
	regexp.MustCompile(`(?i)(password|passphrase|secret|token|credential)\s+"[^"]*"`),

	// key=value style secrets
	regexp.MustCompile(`(?i)(api[_-]?key|secret|password|token)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// sensitiveFieldNames contains log field names whose values are always
// redacted. Matching is case-insensitive.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"password",
	"passphrase",
	"secret",
	"token",
	"credential",
	"api_key",
	"apikey",
	"authorization",
}

// StepTextHook is a zerolog hook that flags log events whose message still
// contains credential-shaped content. Zerolog hooks cannot rewrite the
// message, so filtering happens at call sites via FilterSensitiveValue; the
// hook is the safety net that marks anything that slipped through.
type StepTextHook struct{}

// NewStepTextHook creates a hook for flagging unfiltered sensitive content.
func NewStepTextHook() *StepTextHook {
	return &StepTextHook{}
}

// Run implements the zerolog.Hook interface.
func (h *StepTextHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData checks if a string matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces any sensitive matches in the value with
// RedactedValue. Use this when logging step text or captured arguments.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName checks if a field name indicates sensitive data.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if lowerName == sensitive || strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// RedactIfSensitive returns RedactedValue if the field name indicates
// sensitive data, otherwise the value with sensitive matches filtered.
func RedactIfSensitive(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}
