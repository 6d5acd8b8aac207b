package engine

import (
	"github.com/gherkit/gherkit/internal/domain"
	"github.com/gherkit/gherkit/internal/registry"
)

// bind produces the final ordered argument list for a handler: one argument
// per positional capture, in left-to-right group order, followed by the
// attached table or doc string if the step carries one.
//
// Each capture is run through the transform registry: at most one value rule
// may replace it; an untransformed capture stays a raw string. An attached
// table is replaced by a table rule whose signature matches its header,
// otherwise passed through unchanged. Transform failures (including rule
// conflicts) surface as errors here and classify the step Failed upstream.
func (e *Engine) bind(m registry.Match, step domain.Step) ([]domain.Arg, error) {
	args := make([]domain.Arg, 0, len(m.Captures)+1)

	for _, raw := range m.Captures {
		v, ok, err := e.transforms.ApplyValue(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			args = append(args, domain.Arg{Raw: raw, Value: v})
		} else {
			args = append(args, domain.Arg{Raw: raw})
		}
	}

	if step.Table != nil {
		v, ok, err := e.transforms.ApplyTable(step.Table)
		if err != nil {
			return nil, err
		}
		if ok {
			args = append(args, domain.Arg{Value: v})
		} else {
			args = append(args, domain.Arg{Table: step.Table})
		}
	}

	if step.DocString != nil {
		args = append(args, domain.Arg{DocString: step.DocString})
	}

	return args, nil
}
