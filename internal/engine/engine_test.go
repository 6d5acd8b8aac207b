package engine

import (
	"context"
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
	"github.com/gherkit/gherkit/internal/registry"
)

func succeed(_ context.Context, _ []domain.Arg) (any, error) {
	return nil, nil
}

func mustRegister(t *testing.T, reg *registry.StepRegistry, kw domain.Keyword, pattern string, h domain.StepHandler) {
	t.Helper()
	_, err := reg.Register(kw, pattern, h)
	require.NoError(t, err)
}

func steps(texts ...string) []domain.Step {
	out := make([]domain.Step, len(texts))
	for i, text := range texts {
		out[i] = domain.Step{Keyword: domain.Given, Text: text}
	}
	return out
}

func statuses(result domain.ScenarioResult) []domain.StepStatus {
	out := make([]domain.StepStatus, len(result.Steps))
	for i, s := range result.Steps {
		out[i] = s.Status
	}
	return out
}

func TestRunScenario_Successful(t *testing.T) {
	reg := registry.NewStepRegistry()
	mustRegister(t, reg, domain.Given, `^some step with "(.+)" argument$`, succeed)
	mustRegister(t, reg, domain.Given, `^number step with (\d+)$`, succeed)

	e := New(reg)
	result := e.RunScenario(context.Background(), domain.Scenario{
		Name: "two passing steps",
		Steps: []domain.Step{
			{Keyword: domain.Given, Text: `some step with "string" argument`},
			{Keyword: domain.And, Text: `number step with 23`},
		},
	})

	assert.Equal(t, []domain.StepStatus{domain.StatusSuccessful, domain.StatusSuccessful}, statuses(result))
	assert.True(t, result.Passed())
}

func TestRunScenario_Undefined(t *testing.T) {
	e := New(registry.NewStepRegistry())

	result := e.RunScenario(context.Background(), domain.Scenario{
		Steps: steps(`some step with "string" argument`),
	})

	require.Len(t, result.Steps, 1)
	step := result.Steps[0]
	assert.Equal(t, domain.StatusUndefined, step.Status)
	// Diagnostic carries the verbatim step text for snippet generation.
	assert.Equal(t, `some step with "string" argument`, step.Text)
	assert.True(t, stderrors.Is(step.Err, gherkiterrors.ErrUndefinedStep))
	assert.False(t, step.FromChain)
}

func TestRunScenario_Ambiguous(t *testing.T) {
	reg := registry.NewStepRegistry()
	mustRegister(t, reg, domain.Given, `^number step with (\d+)$`, succeed)
	mustRegister(t, reg, domain.Given, `^number step with 23$`, succeed)

	e := New(reg)
	result := e.RunScenario(context.Background(), domain.Scenario{
		Steps: steps("number step with 23"),
	})

	require.Len(t, result.Steps, 1)
	step := result.Steps[0]
	assert.Equal(t, domain.StatusAmbiguous, step.Status)
	assert.True(t, stderrors.Is(step.Err, gherkiterrors.ErrAmbiguousMatch))
	// Diagnostic lists every conflicting definition.
	assert.Equal(t, []string{`^number step with (\d+)$`, `^number step with 23$`}, step.Conflicts)
}

func TestRunScenario_SkipPropagation(t *testing.T) {
	cases := []struct {
		name    string
		handler domain.StepHandler
		want    domain.StepStatus
	}{
		{
			name:    "failed halts",
			handler: func(context.Context, []domain.Arg) (any, error) { return nil, stderrors.New("boom") },
			want:    domain.StatusFailed,
		},
		{
			name:    "pending halts",
			handler: func(context.Context, []domain.Arg) (any, error) { return nil, domain.Pending("later") },
			want:    domain.StatusPending,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			invoked := 0
			reg := registry.NewStepRegistry()
			mustRegister(t, reg, domain.Given, `^halting step$`, tc.handler)
			mustRegister(t, reg, domain.Given, `^later step$`, func(context.Context, []domain.Arg) (any, error) {
				invoked++
				return nil, nil
			})

			e := New(reg)
			result := e.RunScenario(context.Background(), domain.Scenario{
				Steps: steps("halting step", "later step", "later step"),
			})

			assert.Equal(t, []domain.StepStatus{tc.want, domain.StatusSkipped, domain.StatusSkipped}, statuses(result))
			assert.Zero(t, invoked, "skipped handlers must not be invoked")
		})
	}

	t.Run("undefined halts", func(t *testing.T) {
		invoked := 0
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^later step$`, func(context.Context, []domain.Arg) (any, error) {
			invoked++
			return nil, nil
		})

		e := New(reg)
		result := e.RunScenario(context.Background(), domain.Scenario{
			Steps: steps("no such step", "later step"),
		})

		assert.Equal(t, []domain.StepStatus{domain.StatusUndefined, domain.StatusSkipped}, statuses(result))
		assert.Zero(t, invoked)
	})
}

func TestRunScenario_Idempotent(t *testing.T) {
	reg := registry.NewStepRegistry()
	mustRegister(t, reg, domain.Given, `^a passing step$`, succeed)
	mustRegister(t, reg, domain.Given, `^a failing step$`, func(context.Context, []domain.Arg) (any, error) {
		return nil, stderrors.New("always fails")
	})

	e := New(reg)
	sc := domain.Scenario{Steps: steps("a passing step", "a failing step", "a passing step")}

	first := e.RunScenario(context.Background(), sc)
	second := e.RunScenario(context.Background(), sc)

	assert.Equal(t, statuses(first), statuses(second))
	assert.Equal(t, []domain.StepStatus{
		domain.StatusSuccessful, domain.StatusFailed, domain.StatusSkipped,
	}, statuses(first))
}

func TestRunScenario_TransformApplication(t *testing.T) {
	t.Run("matching value transform replaces the raw capture", func(t *testing.T) {
		var got []domain.Arg
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^number step with (\d+)$`, func(_ context.Context, args []domain.Arg) (any, error) {
			got = args
			return nil, nil
		})

		transforms := registry.NewTransformRegistry()
		require.NoError(t, transforms.RegisterValue(`^\d+$`, func(raw string) (any, error) {
			return strconv.Atoi(raw)
		}))

		e := New(reg, WithTransforms(transforms))
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("number step with 23")})

		assert.Equal(t, domain.StatusSuccessful, result.Steps[0].Status)
		require.Len(t, got, 1)
		assert.True(t, got[0].Transformed())
		assert.Equal(t, 23, got[0].Value)
		assert.Equal(t, "23", got[0].Raw)
	})

	t.Run("transform conflict fails the step", func(t *testing.T) {
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^number step with (\d+)$`, succeed)

		transforms := registry.NewTransformRegistry()
		require.NoError(t, transforms.RegisterValue(`^\d+$`, func(raw string) (any, error) { return raw, nil }))
		require.NoError(t, transforms.RegisterValue(`^23$`, func(raw string) (any, error) { return raw, nil }))

		e := New(reg, WithTransforms(transforms))
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("number step with 23")})

		require.Len(t, result.Steps, 1)
		assert.Equal(t, domain.StatusFailed, result.Steps[0].Status)
		assert.True(t, stderrors.Is(result.Steps[0].Err, gherkiterrors.ErrTransformConflict))
	})

	t.Run("transform failure fails the step", func(t *testing.T) {
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^number step with (\d+)$`, succeed)

		transforms := registry.NewTransformRegistry()
		require.NoError(t, transforms.RegisterValue(`^\d+$`, func(string) (any, error) {
			return nil, stderrors.New("conversion exploded")
		}))

		e := New(reg, WithTransforms(transforms))
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("number step with 23")})

		assert.Equal(t, domain.StatusFailed, result.Steps[0].Status)
		assert.Contains(t, result.Steps[0].Err.Error(), "conversion exploded")
	})
}

func TestRunScenario_TableBinding(t *testing.T) {
	userTable := &domain.Table{Rows: [][]string{
		{"name", "age"},
		{"alice", "30"},
	}}

	t.Run("untransformed table passes through raw", func(t *testing.T) {
		var got []domain.Arg
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^the following users$`, func(_ context.Context, args []domain.Arg) (any, error) {
			got = args
			return nil, nil
		})

		e := New(reg)
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: []domain.Step{
			{Keyword: domain.Given, Text: "the following users", Table: userTable},
		}})

		assert.Equal(t, domain.StatusSuccessful, result.Steps[0].Status)
		require.Len(t, got, 1)
		assert.Equal(t, userTable, got[0].Table)
	})

	t.Run("matching table transform replaces the table", func(t *testing.T) {
		type user struct{ name, age string }

		var got []domain.Arg
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^the following users$`, func(_ context.Context, args []domain.Arg) (any, error) {
			got = args
			return nil, nil
		})

		transforms := registry.NewTransformRegistry()
		require.NoError(t, transforms.RegisterTable("name,age", func(tbl *domain.Table) (any, error) {
			users := make([]user, 0, len(tbl.Body()))
			for _, row := range tbl.Body() {
				users = append(users, user{name: row[0], age: row[1]})
			}
			return users, nil
		}))

		e := New(reg, WithTransforms(transforms))
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: []domain.Step{
			{Keyword: domain.Given, Text: "the following users", Table: userTable},
		}})

		assert.Equal(t, domain.StatusSuccessful, result.Steps[0].Status)
		require.Len(t, got, 1)
		assert.True(t, got[0].Transformed())
		assert.Equal(t, []user{{name: "alice", age: "30"}}, got[0].Value)
	})
}

func TestRunScenario_PanicIsFailed(t *testing.T) {
	reg := registry.NewStepRegistry()
	mustRegister(t, reg, domain.Given, `^a panicking step$`, func(context.Context, []domain.Arg) (any, error) {
		panic("fixture gone")
	})

	e := New(reg)
	result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("a panicking step")})

	require.Len(t, result.Steps, 1)
	assert.Equal(t, domain.StatusFailed, result.Steps[0].Status)
	assert.Contains(t, result.Steps[0].Err.Error(), "fixture gone")
}

func TestRunScenario_ContextCancellation(t *testing.T) {
	invoked := 0
	reg := registry.NewStepRegistry()
	mustRegister(t, reg, domain.Given, `^a step$`, func(context.Context, []domain.Arg) (any, error) {
		invoked++
		return nil, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(reg)
	result := e.RunScenario(ctx, domain.Scenario{Steps: steps("a step", "a step")})

	assert.Equal(t, []domain.StepStatus{domain.StatusFailed, domain.StatusSkipped}, statuses(result))
	assert.True(t, stderrors.Is(result.Steps[0].Err, context.Canceled))
	assert.Zero(t, invoked)
}

func TestChainResolution(t *testing.T) {
	t.Run("chained steps execute before the outer step finalizes", func(t *testing.T) {
		var order []string
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^a composite step$`, func(context.Context, []domain.Arg) (any, error) {
			order = append(order, "outer")
			return domain.Chain{
				{Keyword: domain.Given, Text: "part one"},
				{Keyword: domain.Given, Text: "part two"},
			}, nil
		})
		mustRegister(t, reg, domain.Given, `^part one$`, func(context.Context, []domain.Arg) (any, error) {
			order = append(order, "one")
			return nil, nil
		})
		mustRegister(t, reg, domain.Given, `^part two$`, func(context.Context, []domain.Arg) (any, error) {
			order = append(order, "two")
			return nil, nil
		})

		e := New(reg)
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("a composite step")})

		assert.Equal(t, domain.StatusSuccessful, result.Steps[0].Status)
		assert.Equal(t, []string{"outer", "one", "two"}, order)
	})

	t.Run("single chained step value is accepted", func(t *testing.T) {
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^outer$`, func(context.Context, []domain.Arg) (any, error) {
			return domain.ChainedStep{Keyword: domain.Given, Text: "inner"}, nil
		})
		mustRegister(t, reg, domain.Given, `^inner$`, succeed)

		e := New(reg)
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("outer")})
		assert.Equal(t, domain.StatusSuccessful, result.Steps[0].Status)
	})

	t.Run("failed chained step escalates and stops the chain", func(t *testing.T) {
		laterInvoked := false
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^outer$`, func(context.Context, []domain.Arg) (any, error) {
			return domain.Chain{
				{Keyword: domain.Given, Text: "failing part"},
				{Keyword: domain.Given, Text: "later part"},
			}, nil
		})
		mustRegister(t, reg, domain.Given, `^failing part$`, func(context.Context, []domain.Arg) (any, error) {
			return nil, stderrors.New("inner boom")
		})
		mustRegister(t, reg, domain.Given, `^later part$`, func(context.Context, []domain.Arg) (any, error) {
			laterInvoked = true
			return nil, nil
		})

		e := New(reg)
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("outer")})

		require.Len(t, result.Steps, 1)
		step := result.Steps[0]
		assert.Equal(t, domain.StatusFailed, step.Status)
		assert.Contains(t, step.Err.Error(), "inner boom")
		assert.True(t, step.FromChain)
		assert.False(t, laterInvoked, "entries after a failed chained step must not execute")
		// The outer step keeps its own identity in the result.
		assert.Equal(t, "outer", step.Text)
	})

	t.Run("pending and undefined escalate alike", func(t *testing.T) {
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^outer pending$`, func(context.Context, []domain.Arg) (any, error) {
			return domain.ChainedStep{Keyword: domain.Given, Text: "pending part"}, nil
		})
		mustRegister(t, reg, domain.Given, `^pending part$`, func(context.Context, []domain.Arg) (any, error) {
			return nil, domain.Pending("todo")
		})
		mustRegister(t, reg, domain.Given, `^outer undefined$`, func(context.Context, []domain.Arg) (any, error) {
			return domain.ChainedStep{Keyword: domain.Given, Text: "no definition here"}, nil
		})

		e := New(reg)

		pending := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("outer pending")})
		assert.Equal(t, domain.StatusPending, pending.Steps[0].Status)
		assert.True(t, pending.Steps[0].FromChain)

		undefined := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("outer undefined")})
		assert.Equal(t, domain.StatusUndefined, undefined.Steps[0].Status)
		// Chain-originated undefined steps are excluded from snippet
		// generation downstream.
		assert.True(t, undefined.Steps[0].FromChain)
	})

	t.Run("cyclic chain fails at the depth ceiling", func(t *testing.T) {
		depth := 0
		reg := registry.NewStepRegistry()
		mustRegister(t, reg, domain.Given, `^recursive step$`, func(context.Context, []domain.Arg) (any, error) {
			depth++
			return domain.ChainedStep{Keyword: domain.Given, Text: "recursive step"}, nil
		})

		e := New(reg, WithChainDepthLimit(5))
		result := e.RunScenario(context.Background(), domain.Scenario{Steps: steps("recursive step")})

		require.Len(t, result.Steps, 1)
		assert.Equal(t, domain.StatusFailed, result.Steps[0].Status)
		assert.True(t, stderrors.Is(result.Steps[0].Err, gherkiterrors.ErrChainDepthExceeded))
		assert.LessOrEqual(t, depth, 6)
	})
}
