package gherkit

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/gherkit/gherkit/internal/constants"
	"github.com/gherkit/gherkit/internal/engine"
	"github.com/gherkit/gherkit/internal/gherkin"
	"github.com/gherkit/gherkit/internal/registry"
	"github.com/gherkit/gherkit/internal/report"
	"github.com/gherkit/gherkit/internal/snippet"
)

// Suite collects step definitions and transform rules, then runs feature
// files against them. Registration happens up front; by the time Run is
// called the registries are read-only.
//
// A Suite is not safe for concurrent registration. Scenario execution
// concurrency is controlled with WithConcurrency; steps within a scenario
// always run sequentially.
type Suite struct {
	steps      *registry.StepRegistry
	transforms *registry.TransformRegistry

	strict      bool
	concurrency int
	depthLimit  int
	paths       []string
	output      io.Writer
	color       bool
	logger      zerolog.Logger

	// firstErr holds the first registration error. Registration errors are
	// fatal; Run reports them before any scenario executes.
	firstErr error
}

// SuiteOption configures a Suite.
type SuiteOption func(*Suite)

// WithStrict makes undefined, pending, and ambiguous steps fail the run's
// exit code.
func WithStrict(strict bool) SuiteOption {
	return func(s *Suite) { s.strict = strict }
}

// WithConcurrency sets how many scenarios run at once. Values below 1 are
// ignored.
func WithConcurrency(n int) SuiteOption {
	return func(s *Suite) {
		if n >= 1 {
			s.concurrency = n
		}
	}
}

// WithChainDepthLimit bounds recursive chained-step resolution. Values below
// 1 are ignored.
func WithChainDepthLimit(limit int) SuiteOption {
	return func(s *Suite) {
		if limit >= 1 {
			s.depthLimit = limit
		}
	}
}

// WithPaths sets the feature file paths Run discovers. Directories are
// walked recursively for *.feature files.
func WithPaths(paths ...string) SuiteOption {
	return func(s *Suite) { s.paths = paths }
}

// WithOutput sets the report destination. Defaults to stdout.
func WithOutput(w io.Writer) SuiteOption {
	return func(s *Suite) { s.output = w }
}

// WithColor enables styled report output. Defaults to plain text.
func WithColor(color bool) SuiteOption {
	return func(s *Suite) { s.color = color }
}

// WithLogger sets the structured logger for step-level execution events.
// Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) SuiteOption {
	return func(s *Suite) { s.logger = logger }
}

// NewSuite creates an empty Suite with the given options applied.
func NewSuite(opts ...SuiteOption) *Suite {
	s := &Suite{
		steps:       registry.NewStepRegistry(),
		transforms:  registry.NewTransformRegistry(),
		concurrency: constants.DefaultConcurrency,
		depthLimit:  constants.DefaultChainDepthLimit,
		paths:       []string{"features"},
		output:      os.Stdout,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a step definition. The pattern is a regular expression
// matched against step text; it carries its own anchors. Registering the
// same pattern twice is an error regardless of keyword.
//
// Registration errors are recorded and surfaced by Run; Register returns the
// Suite for chaining.
func (s *Suite) Register(kw Keyword, pattern string, handler StepHandler) *Suite {
	if _, err := s.steps.Register(kw, pattern, handler); err != nil && s.firstErr == nil {
		s.firstErr = err
	}
	return s
}

// Given registers a step definition under the Given keyword.
func (s *Suite) Given(pattern string, handler StepHandler) *Suite {
	return s.Register(Given, pattern, handler)
}

// When registers a step definition under the When keyword.
func (s *Suite) When(pattern string, handler StepHandler) *Suite {
	return s.Register(When, pattern, handler)
}

// Then registers a step definition under the Then keyword.
func (s *Suite) Then(pattern string, handler StepHandler) *Suite {
	return s.Register(Then, pattern, handler)
}

// Transform adds a value-conversion rule matched against raw captured
// strings.
func (s *Suite) Transform(pattern string, fn ValueTransform) *Suite {
	if err := s.transforms.RegisterValue(pattern, fn); err != nil && s.firstErr == nil {
		s.firstErr = err
	}
	return s
}

// TransformTable adds a table-conversion rule keyed by a comma-delimited
// column signature (e.g. "name,age").
func (s *Suite) TransformTable(signature string, fn TableTransform) *Suite {
	if err := s.transforms.RegisterTable(signature, fn); err != nil && s.firstErr == nil {
		s.firstErr = err
	}
	return s
}

// Err returns the first registration error, or nil.
func (s *Suite) Err() error {
	return s.firstErr
}

// Run discovers feature files at the configured paths, executes every
// scenario, writes the report, and returns the process exit code. Failed
// steps always produce a non-zero code; with strict mode, undefined,
// pending, and ambiguous steps do too.
//
// Intended for TestMain: os.Exit(suite.Run(ctx)).
func (s *Suite) Run(ctx context.Context) int {
	if s.firstErr != nil {
		fmt.Fprintf(s.output, "registration error: %v\n", s.firstErr)
		return report.ExitFailure
	}

	scenarios, err := gherkin.Load(s.paths)
	if err != nil {
		fmt.Fprintf(s.output, "error: %v\n", err)
		return report.ExitFailure
	}

	run := s.RunScenarios(ctx, scenarios)

	writer := report.NewWriter(s.output, s.color)
	if err := writer.WriteRun(run); err != nil {
		return report.ExitFailure
	}

	if stubs := snippet.ForRun(run); len(stubs) > 0 {
		fmt.Fprintln(s.output)
		fmt.Fprint(s.output, snippet.Render(stubs))
	}

	return report.ExitCode(run, s.strict)
}

// RunScenarios executes pre-built scenarios against the registered
// definitions and returns the raw results, bypassing feature file discovery
// and reporting. Useful for suites that construct scenarios in code.
func (s *Suite) RunScenarios(ctx context.Context, scenarios []Scenario) *RunResult {
	eng := engine.New(s.steps,
		engine.WithTransforms(s.transforms),
		engine.WithLogger(s.logger),
		engine.WithChainDepthLimit(s.depthLimit),
	)
	runner := engine.NewRunner(eng,
		engine.WithConcurrency(s.concurrency),
		engine.WithRunnerLogger(s.logger),
	)
	return runner.Run(ctx, scenarios)
}
