package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gherkit/gherkit/internal/domain"
)

// timeRounding keeps summary durations readable.
const timeRounding = time.Millisecond

// Exit codes for the run contract.
const (
	// ExitSuccess indicates every outcome was acceptable.
	ExitSuccess = 0
	// ExitFailure indicates the run contained unacceptable outcomes.
	ExitFailure = 1
)

// Writer renders run results as human-readable text.
type Writer struct {
	out   io.Writer
	color bool
}

// NewWriter creates a report writer. When color is false every style is
// rendered as plain text.
func NewWriter(out io.Writer, color bool) *Writer {
	return &Writer{out: out, color: color}
}

// WriteRun renders every scenario followed by the run summary.
func (w *Writer) WriteRun(run *domain.RunResult) error {
	for i := range run.Scenarios {
		if err := w.writeScenario(&run.Scenarios[i]); err != nil {
			return err
		}
	}
	return w.writeSummary(run)
}

func (w *Writer) writeScenario(sc *domain.ScenarioResult) error {
	heading := sc.Name
	if sc.Feature != "" {
		heading = sc.Feature + ": " + sc.Name
	}
	if _, err := fmt.Fprintf(w.out, "%s\n", w.render(StyleHeading, heading)); err != nil {
		return err
	}

	width := 0
	for _, step := range sc.Steps {
		if l := runewidth.StringWidth(string(step.Keyword) + " " + step.Text); l > width {
			width = l
		}
	}

	for _, step := range sc.Steps {
		line := runewidth.FillRight(string(step.Keyword)+" "+step.Text, width)
		style := StatusStyle(step.Status)
		_, err := fmt.Fprintf(w.out, "  %s %s  # %s\n",
			w.render(style, StatusIcon(step.Status)),
			w.render(style, line),
			string(step.Status))
		if err != nil {
			return err
		}

		if step.Err != nil {
			if _, err := fmt.Fprintf(w.out, "      %s\n", w.render(StatusStyle(step.Status), step.Err.Error())); err != nil {
				return err
			}
		}
		for _, conflict := range step.Conflicts {
			if _, err := fmt.Fprintf(w.out, "      matched by: %s\n", conflict); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w.out)
	return err
}

func (w *Writer) writeSummary(run *domain.RunResult) error {
	s := run.Summary

	var steps []string
	appendCount := func(n int, label string, style lipgloss.Style) {
		if n > 0 {
			steps = append(steps, w.render(style, fmt.Sprintf("%d %s", n, label)))
		}
	}
	appendCount(s.StepsSuccessful, "successful", StatusStyle(domain.StatusSuccessful))
	appendCount(s.StepsFailed, "failed", StatusStyle(domain.StatusFailed))
	appendCount(s.StepsAmbiguous, "ambiguous", StatusStyle(domain.StatusAmbiguous))
	appendCount(s.StepsPending, "pending", StatusStyle(domain.StatusPending))
	appendCount(s.StepsUndefined, "undefined", StatusStyle(domain.StatusUndefined))
	appendCount(s.StepsSkipped, "skipped", StatusStyle(domain.StatusSkipped))
	if len(steps) == 0 {
		steps = append(steps, "no steps")
	}

	_, err := fmt.Fprintf(w.out, "%d scenarios (%d passed)\nsteps: %s\nduration: %s\n",
		s.ScenariosTotal, s.ScenariosPassed, strings.Join(steps, ", "), run.Duration.Round(timeRounding))
	return err
}

func (w *Writer) render(style lipgloss.Style, text string) string {
	if !w.color {
		return text
	}
	return style.Render(text)
}

// ExitCode maps a run result onto the process exit-code contract: any Failed
// outcome is a failure, and strict mode additionally treats Undefined,
// Pending, and Ambiguous as failures.
func ExitCode(run *domain.RunResult, strict bool) int {
	s := run.Summary
	if s.StepsFailed > 0 {
		return ExitFailure
	}
	if strict && (s.StepsPending > 0 || s.StepsUndefined > 0 || s.StepsAmbiguous > 0) {
		return ExitFailure
	}
	return ExitSuccess
}
