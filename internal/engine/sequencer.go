package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gherkit/gherkit/internal/constants"
	"github.com/gherkit/gherkit/internal/ctxutil"
	"github.com/gherkit/gherkit/internal/domain"
	"github.com/gherkit/gherkit/internal/logging"
)

// RunScenario drives a scenario's ordered steps through the pipeline and
// returns one result per step, in input order.
//
// This is the sole place that implements skip propagation: once a step
// classifies with a halting status, every later step is marked Skipped
// without invoking its handler. Context cancellation between steps fails the
// current step with the context error, after which skip propagation applies.
// RunScenario never aborts the surrounding process; mapping outcomes to a
// run failure belongs to the reporting layer.
func (e *Engine) RunScenario(ctx context.Context, sc domain.Scenario) domain.ScenarioResult {
	result := domain.ScenarioResult{
		Feature:   sc.Feature,
		Name:      sc.Name,
		Tags:      sc.Tags,
		Steps:     make([]domain.StepResult, 0, len(sc.Steps)),
		StartedAt: time.Now(),
	}

	halted := false
	for _, step := range sc.Steps {
		var stepResult domain.StepResult

		switch {
		case halted:
			stepResult = domain.StepResult{
				Keyword: step.Keyword,
				Text:    step.Text,
				Status:  domain.StatusSkipped,
			}
		default:
			if err := ctxutil.Canceled(ctx); err != nil {
				stepResult = domain.StepResult{
					Keyword: step.Keyword,
					Text:    step.Text,
					Status:  domain.StatusFailed,
					Err:     err,
				}
			} else {
				stepResult = e.executeStep(ctx, step, 0)
			}
			if constants.IsHaltingStatus(stepResult.Status) {
				halted = true
			}
		}

		e.logStep(sc, &stepResult)
		result.Steps = append(result.Steps, stepResult)
	}

	result.Duration = time.Since(result.StartedAt)

	e.logger.Info().
		Str("feature", sc.Feature).
		Str("scenario", sc.Name).
		Str("status", string(result.Status())).
		Int64("duration_ms", result.Duration.Milliseconds()).
		Msg("scenario finished")

	return result
}

// logStep emits one structured event per processed step.
func (e *Engine) logStep(sc domain.Scenario, r *domain.StepResult) {
	level := zerolog.DebugLevel
	if constants.IsHaltingStatus(r.Status) {
		level = zerolog.WarnLevel
	}

	event := e.logger.WithLevel(level). //nolint:zerologlint // event dispatched below
						Str("scenario", sc.Name).
						Str("step_text", logging.FilterSensitiveValue(r.Text)).
						Str("status", string(r.Status))

	if r.Duration > 0 {
		event = event.Int64("duration_ms", r.Duration.Milliseconds())
	}
	if r.Err != nil {
		event = event.Err(r.Err)
	}

	event.Msg("step processed")
}
