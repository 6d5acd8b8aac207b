package cli

import (
	"context"
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gherkit/gherkit/internal/config"
	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
	"github.com/gherkit/gherkit/internal/registry"
)

const checkoutFeature = `Feature: Checkout
  Scenario: totals add up
    Given a cart with 2 items
    When I check out
    Then the total is "42.00"
`

// checkoutRegistry returns a registry with definitions matching every step in
// checkoutFeature.
func checkoutRegistry(t *testing.T) *registry.StepRegistry {
	t.Helper()
	steps := registry.NewStepRegistry()

	ok := func(_ context.Context, _ []domain.Arg) (any, error) { return nil, nil }
	_, err := steps.Register(domain.Given, `^a cart with (\d+) items$`, ok)
	require.NoError(t, err)
	_, err = steps.Register(domain.When, `^I check out$`, ok)
	require.NoError(t, err)
	_, err = steps.Register(domain.Then, `^the total is "([^"]*)"$`, ok)
	require.NoError(t, err)
	return steps
}

func TestRunCommand_Passing(t *testing.T) {
	dir := writeFeature(t, checkoutFeature)

	out, err := executeCommand(t, checkoutRegistry(t), registry.NewTransformRegistry(),
		"run", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Checkout")
	assert.Contains(t, out, "a cart with 2 items")
	assert.NotContains(t, out, "undefined")
}

func TestRunCommand_UndefinedSteps(t *testing.T) {
	dir := writeFeature(t, checkoutFeature)
	empty := registry.NewStepRegistry()

	t.Run("default mode exits zero and prints stubs", func(t *testing.T) {
		out, err := executeCommand(t, empty, registry.NewTransformRegistry(), "run", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "undefined")
		assert.Contains(t, out, "Paste these stubs")
		assert.Contains(t, out, "aCartWith2Items")
	})

	t.Run("strict mode fails the run", func(t *testing.T) {
		_, err := executeCommand(t, empty, registry.NewTransformRegistry(),
			"run", "--strict", dir)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, gherkiterrors.ErrRunFailed))
		assert.Equal(t, ExitError, ExitCodeForError(err))
	})
}

func TestRunCommand_FailingStep(t *testing.T) {
	dir := writeFeature(t, checkoutFeature)

	steps := registry.NewStepRegistry()
	_, err := steps.Register(domain.Given, `^a cart with (\d+) items$`,
		func(_ context.Context, _ []domain.Arg) (any, error) {
			return nil, stderrors.New("inventory unavailable")
		})
	require.NoError(t, err)

	out, runErr := executeCommand(t, steps, registry.NewTransformRegistry(), "run", dir)
	require.Error(t, runErr)
	assert.True(t, stderrors.Is(runErr, gherkiterrors.ErrRunFailed))
	assert.Contains(t, out, "inventory unavailable")
	assert.Contains(t, out, "skipped")
}

func TestRunCommand_TransformsApplied(t *testing.T) {
	dir := writeFeature(t, checkoutFeature)

	var got int
	steps := checkoutRegistry(t)
	transforms := registry.NewTransformRegistry()
	require.NoError(t, transforms.RegisterValue(`^\d+$`, func(raw string) (any, error) {
		return strconv.Atoi(raw)
	}))

	// Re-register the cart step to observe the transformed capture.
	fresh := registry.NewStepRegistry()
	_, err := fresh.Register(domain.Given, `^a cart with (\d+) items$`,
		func(_ context.Context, args []domain.Arg) (any, error) {
			got = args[0].Value.(int)
			return nil, nil
		})
	require.NoError(t, err)
	for _, def := range steps.Definitions() {
		if def.Pattern == `^a cart with (\d+) items$` {
			continue
		}
		_, err = fresh.Register(def.Keyword, def.Pattern, def.Handler)
		require.NoError(t, err)
	}

	_, err = executeCommand(t, fresh, transforms, "run", dir)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestRunCommand_NoFeatures(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(t, registry.NewStepRegistry(), registry.NewTransformRegistry(),
		"run", dir)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, gherkiterrors.ErrNoFeatures))
}

func TestUseColor(t *testing.T) {
	cases := []struct {
		name  string
		color string
		flags GlobalFlags
		want  bool
	}{
		{"always", config.ColorAlways, GlobalFlags{}, true},
		{"never", config.ColorNever, GlobalFlags{}, false},
		{"no-color flag wins over always", config.ColorAlways, GlobalFlags{NoColor: true}, false},
		// auto resolves to false because test stdout is not a TTY
		{"auto without tty", config.ColorAuto, GlobalFlags{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "")
			cfg := config.DefaultConfig()
			cfg.Color = tc.color
			assert.Equal(t, tc.want, useColor(cfg, &tc.flags))
		})
	}
}
