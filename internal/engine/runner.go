package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gherkit/gherkit/internal/constants"
	"github.com/gherkit/gherkit/internal/domain"
)

// Runner executes a set of scenarios against one engine. Scenarios may run
// concurrently up to the configured limit; each scenario's own step sequence
// is always driven by a single goroutine, preserving skip propagation and
// chain escalation.
type Runner struct {
	engine      *Engine
	logger      zerolog.Logger
	concurrency int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConcurrency sets how many scenarios execute at once. 1 (the default)
// runs scenarios strictly in sequence. Values below 1 are ignored.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 1 {
			r.concurrency = n
		}
	}
}

// WithRunnerLogger sets the structured logger for run-level events.
func WithRunnerLogger(logger zerolog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a runner over the given engine.
func NewRunner(e *Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:      e,
		logger:      zerolog.Nop(),
		concurrency: constants.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every scenario and returns the aggregated result. Scenario
// results keep the input order regardless of the concurrency limit, and a
// halted scenario never prevents the others from running.
func (r *Runner) Run(ctx context.Context, scenarios []domain.Scenario) *domain.RunResult {
	run := &domain.RunResult{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	r.logger.Info().
		Str("run_id", run.ID).
		Int("scenarios", len(scenarios)).
		Int("concurrency", r.concurrency).
		Msg("starting run")

	results := make([]domain.ScenarioResult, len(scenarios))

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			results[i] = r.engine.RunScenario(ctx, sc)
			return nil
		})
	}
	// Workers never return errors; outcomes live in the results slice.
	_ = g.Wait()

	run.Scenarios = results
	for i := range results {
		run.Summary.Add(&results[i])
	}
	run.Duration = time.Since(run.StartedAt)

	r.logger.Info().
		Str("run_id", run.ID).
		Int("scenarios_passed", run.Summary.ScenariosPassed).
		Int("scenarios_total", run.Summary.ScenariosTotal).
		Int64("duration_ms", run.Duration.Milliseconds()).
		Msg("run finished")

	return run
}
