// Package cli provides the command-line interface for gherkit.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gherkit/gherkit/internal/config"
	"github.com/gherkit/gherkit/internal/engine"
	"github.com/gherkit/gherkit/internal/errors"
	"github.com/gherkit/gherkit/internal/gherkin"
	"github.com/gherkit/gherkit/internal/registry"
	"github.com/gherkit/gherkit/internal/report"
	"github.com/gherkit/gherkit/internal/snippet"
)

// AddRunCommand adds the run command to the parent command. The registries
// carry the step definitions and transform rules compiled into this binary;
// they are read-only by the time the command executes.
func AddRunCommand(parent *cobra.Command, flags *GlobalFlags, steps *registry.StepRegistry, transforms *registry.TransformRegistry) {
	var (
		strict      bool
		concurrency int
		chainDepth  int
	)

	cmd := &cobra.Command{
		Use:   "run [path ...]",
		Short: "Execute feature files against the registered step definitions",
		Long: `Run discovers feature files at the given paths (directories are walked
for *.feature files), executes every scenario against the registered step
definitions, and prints a per-scenario report followed by a summary.

The exit code is non-zero when any step failed. With --strict, undefined,
pending, and ambiguous steps also fail the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			overrides := make(map[string]any)
			if cmd.Flags().Changed("strict") {
				overrides["strict"] = strict
			}
			if cmd.Flags().Changed("concurrency") {
				overrides["concurrency"] = concurrency
			}
			if cmd.Flags().Changed("chain-depth") {
				overrides["chain_depth_limit"] = chainDepth
			}

			cfg, err := config.LoadWithOverrides(cmd.Context(), overrides)
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = cfg.Paths
			}

			scenarios, err := gherkin.Load(paths)
			if err != nil {
				return err
			}

			logger.Info().
				Int("scenarios", len(scenarios)).
				Int("definitions", steps.Len()).
				Bool("strict", cfg.Strict).
				Msg("features loaded")

			eng := engine.New(steps,
				engine.WithTransforms(transforms),
				engine.WithLogger(logger),
				engine.WithChainDepthLimit(cfg.ChainDepthLimit),
			)
			runner := engine.NewRunner(eng,
				engine.WithConcurrency(cfg.Concurrency),
				engine.WithRunnerLogger(logger),
			)

			run := runner.Run(cmd.Context(), scenarios)

			out := cmd.OutOrStdout()
			report.CheckNoColor()
			writer := report.NewWriter(out, useColor(cfg, flags))
			if err := writer.WriteRun(run); err != nil {
				return err
			}

			if stubs := snippet.ForRun(run); len(stubs) > 0 {
				_, _ = fmt.Fprintln(out)
				_, _ = fmt.Fprint(out, snippet.Render(stubs))
			}

			if report.ExitCode(run, cfg.Strict) != report.ExitSuccess {
				return errors.Wrapf(errors.ErrRunFailed,
					"%d of %d scenarios passed",
					run.Summary.ScenariosPassed, run.Summary.ScenariosTotal)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat undefined, pending, and ambiguous steps as failures")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of scenarios to run at once (default from config)")
	cmd.Flags().IntVar(&chainDepth, "chain-depth", 0, "maximum chained-step resolution depth (default from config)")

	parent.AddCommand(cmd)
}

// useColor decides whether report output is styled, combining the --no-color
// flag, the configured color mode, and terminal detection.
func useColor(cfg *config.Config, flags *GlobalFlags) bool {
	if flags.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
