package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
	"github.com/gherkit/gherkit/internal/logging"
)

// executeStep runs one step through the full resolve → bind → invoke →
// classify pipeline. depth is 0 for top-level steps and grows by one per
// chained resolution level.
//
// Classification:
//   - unresolved steps come back from resolve as Undefined or Ambiguous
//   - a binding or transform failure is Failed
//   - a handler error wrapping ErrPendingStep is Pending
//   - any other handler error, or a panic, is Failed
//   - a nil error is Successful, unless the returned value is a chain whose
//     resolution escalates a different status into this step
func (e *Engine) executeStep(ctx context.Context, step domain.Step, depth int) domain.StepResult {
	match, unresolved := e.resolve(step)
	if unresolved != nil {
		unresolved.FromChain = depth > 0
		return *unresolved
	}

	result := domain.StepResult{
		Keyword:   step.Keyword,
		Text:      step.Text,
		StartedAt: time.Now(),
	}

	args, err := e.bind(match, step)
	if err != nil {
		result.Status = domain.StatusFailed
		result.Err = err
		result.Duration = time.Since(result.StartedAt)
		return result
	}

	value, err := invokeHandler(ctx, match.Definition.Handler, args)
	switch {
	case err == nil:
		result.Status = domain.StatusSuccessful
		if escalated := e.resolveChain(ctx, value, depth); escalated != nil {
			result.Status = escalated.Status
			result.Err = escalated.Err
			result.Conflicts = escalated.Conflicts
			result.FromChain = true
		}
	case stderrors.Is(err, gherkiterrors.ErrPendingStep):
		result.Status = domain.StatusPending
		result.Err = err
	default:
		result.Status = domain.StatusFailed
		result.Err = err
	}

	result.Duration = time.Since(result.StartedAt)
	return result
}

// invokeHandler calls the handler, converting a panic into a Failed-class
// error carrying the panic value and stack. A panicking handler must not take
// down the rest of the run.
func invokeHandler(ctx context.Context, handler domain.StepHandler, args []domain.Arg) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step handler panicked: %v\n%s", r, debug.Stack())
		}
	}()
	return handler(ctx, args)
}

// resolveChain recognizes a handler's returned value as zero or more
// chained-step requests and resolves each, in declared order, through the
// full pipeline before the outer step finalizes.
//
// Returns nil when there is nothing to chain or every chained step resolved
// Successful. Otherwise returns the first non-Successful result: its
// classification replaces the outer step's outcome and the remaining entries
// do not execute. A chained step that resolves Undefined never produces a
// snippet; whether to surface it differently is a presentation concern.
func (e *Engine) resolveChain(ctx context.Context, value any, depth int) *domain.StepResult {
	var chain domain.Chain
	switch v := value.(type) {
	case domain.ChainedStep:
		chain = domain.Chain{v}
	case domain.Chain:
		chain = v
	default:
		return nil
	}

	if depth+1 > e.depthLimit {
		return &domain.StepResult{
			Status: domain.StatusFailed,
			Err:    fmt.Errorf("%w: chained resolution exceeded %d levels", gherkiterrors.ErrChainDepthExceeded, e.depthLimit),
		}
	}

	for _, req := range chain {
		e.logger.Debug().
			Str("step_text", logging.FilterSensitiveValue(req.Text)).
			Int("chain_depth", depth+1).
			Msg("resolving chained step")

		sub := e.executeStep(ctx, req.Step(), depth+1)
		if sub.Status != domain.StatusSuccessful {
			return &sub
		}
	}
	return nil
}
