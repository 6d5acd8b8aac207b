// Package cli provides the command-line interface for gherkit.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gherkit/gherkit/internal/registry"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the gherkit CLI.
// This function-based approach avoids package-level globals, making the
// code more testable and avoiding gochecknoglobals linter warnings.
func newRootCmd(flags *GlobalFlags, info BuildInfo, steps *registry.StepRegistry, transforms *registry.TransformRegistry) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "gherkit",
		Short: "gherkit - behavior-driven test runner",
		Long: `gherkit executes Gherkin feature files against registered step
definitions. Step text is matched to definitions by regular expression,
captured values flow through transform rules, and each scenario reports a
single aggregate outcome.

Most projects embed gherkit as a library and drive it from TestMain; the
standalone binary covers feature-file inspection and stub generation.`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without
		// subcommands. This ensures PersistentPreRunE is called for flag
		// validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Bind flags to Viper
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			// Initialize logger based on flags (protected by mutex for
			// thread safety)
			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	// Add global flags
	AddGlobalFlags(cmd, flags)

	// Add subcommands
	AddRunCommand(cmd, flags, steps, transforms)
	AddParseCommand(cmd)
	AddSnippetsCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with empty registries. The standalone binary
// has no step definitions compiled in; run reports every step Undefined and
// prints stubs, which is still the fastest way to bootstrap a new suite.
func Execute(ctx context.Context, info BuildInfo) error {
	return ExecuteWith(ctx, info, registry.NewStepRegistry(), registry.NewTransformRegistry())
}

// ExecuteWith runs the root command against the given registries. Projects
// that build their own binary around gherkit pass their populated registries
// here.
func ExecuteWith(ctx context.Context, info BuildInfo, steps *registry.StepRegistry, transforms *registry.TransformRegistry) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, steps, transforms)
	return cmd.ExecuteContext(ctx)
}
