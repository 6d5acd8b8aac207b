// Package engine is the matching-and-execution core of gherkit.
//
// Given a scenario's ordered steps and a populated step registry, the engine
// resolves each step to exactly one definition, binds and transforms its
// arguments, executes the handler, classifies the outcome, and propagates
// that outcome across the scenario (skip-after-halt) and through chained
// steps (escalation).
//
// The engine holds no mutable shared state of its own: registries are
// read-only once a run begins, and each scenario's step sequence is driven by
// a single goroutine. Scenario-level parallelism lives in Runner, above the
// per-scenario sequencer.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/gherkit/gherkit/internal/constants"
	"github.com/gherkit/gherkit/internal/registry"
)

// Engine executes scenarios against a step registry and an optional
// transform registry.
type Engine struct {
	steps      *registry.StepRegistry
	transforms *registry.TransformRegistry
	logger     zerolog.Logger
	depthLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTransforms sets the transform registry applied during argument binding.
func WithTransforms(t *registry.TransformRegistry) Option {
	return func(e *Engine) { e.transforms = t }
}

// WithLogger sets the structured logger for step and scenario events.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithChainDepthLimit overrides the recursion ceiling for chained-step
// resolution. Values below 1 are ignored.
func WithChainDepthLimit(limit int) Option {
	return func(e *Engine) {
		if limit >= 1 {
			e.depthLimit = limit
		}
	}
}

// New creates an engine over the given step registry. The registry must be
// fully populated before the first run; the engine never mutates it.
func New(steps *registry.StepRegistry, opts ...Option) *Engine {
	e := &Engine{
		steps:      steps,
		transforms: registry.NewTransformRegistry(),
		logger:     zerolog.Nop(),
		depthLimit: constants.DefaultChainDepthLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
