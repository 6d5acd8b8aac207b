// Package cli provides the command-line interface for gherkit.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gherkit/gherkit/internal/gherkin"
)

// AddParseCommand adds the parse command to the parent command.
func AddParseCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "parse [path ...]",
		Short: "Validate feature files without executing them",
		Long: `Parse discovers and parses feature files at the given paths, reporting
scenario and step counts per feature. A parse error in any file fails the
command; use this in CI to catch malformed features before a run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()

			paths := args
			if len(paths) == 0 {
				paths = []string{"features"}
			}

			files, err := gherkin.Discover(paths)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var scenarios, steps int
			for _, file := range files {
				feature, err := gherkin.ParseFile(file)
				if err != nil {
					return err
				}

				var featureSteps int
				for _, sc := range feature.Scenarios {
					featureSteps += len(sc.Steps)
				}
				scenarios += len(feature.Scenarios)
				steps += featureSteps

				logger.Debug().
					Str("path", file).
					Int("scenarios", len(feature.Scenarios)).
					Msg("parsed feature")
				_, _ = fmt.Fprintf(out, "%s: %d scenarios, %d steps\n",
					feature.Name, len(feature.Scenarios), featureSteps)
			}

			_, _ = fmt.Fprintf(out, "\n%d features, %d scenarios, %d steps\n",
				len(files), scenarios, steps)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
