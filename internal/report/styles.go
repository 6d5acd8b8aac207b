// Package report renders run results for the terminal and maps them onto
// the process exit-code contract.
//
// The engine defines only the outcome taxonomy; everything about color,
// icons, and exit codes lives here. All colors use AdaptiveColor for
// light/dark terminal support, and the NO_COLOR environment variable (and
// TERM=dumb) disables styling entirely.
package report

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/gherkit/gherkit/internal/constants"
)

//nolint:gochecknoglobals // Intentional package-level constants for styling
var (
	// ColorSuccess is green, used for successful steps and passing scenarios.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorError is red, used for failed and ambiguous steps.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorWarning is yellow, used for pending and undefined steps.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorMuted is gray, used for skipped steps and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleHeading renders feature and scenario names.
	StyleHeading = lipgloss.NewStyle().Bold(true)

	statusStyles = map[constants.StepStatus]lipgloss.Style{
		constants.StepStatusSuccessful: lipgloss.NewStyle().Foreground(ColorSuccess),
		constants.StepStatusFailed:     lipgloss.NewStyle().Foreground(ColorError),
		constants.StepStatusAmbiguous:  lipgloss.NewStyle().Foreground(ColorError),
		constants.StepStatusPending:    lipgloss.NewStyle().Foreground(ColorWarning),
		constants.StepStatusUndefined:  lipgloss.NewStyle().Foreground(ColorWarning),
		constants.StepStatusSkipped:    lipgloss.NewStyle().Foreground(ColorMuted),
	}

	statusIcons = map[constants.StepStatus]string{
		constants.StepStatusSuccessful: "✓",
		constants.StepStatusFailed:     "✗",
		constants.StepStatusAmbiguous:  "≈",
		constants.StepStatusPending:    "…",
		constants.StepStatusUndefined:  "?",
		constants.StepStatusSkipped:    "-",
	}
)

// StatusIcon returns the icon for a step status. Icon, color, and text are
// kept redundant so no status is distinguishable by color alone.
func StatusIcon(status constants.StepStatus) string {
	if icon, ok := statusIcons[status]; ok {
		return icon
	}
	return "•"
}

// StatusStyle returns the lipgloss style for a step status.
func StatusStyle(status constants.StepStatus) lipgloss.Style {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// CheckNoColor disables color rendering when the NO_COLOR environment
// variable is set or the terminal is dumb. Call once before writing output.
func CheckNoColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
