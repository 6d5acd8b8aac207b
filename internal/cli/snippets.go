// Package cli provides the command-line interface for gherkit.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gherkit/gherkit/internal/domain"
	"github.com/gherkit/gherkit/internal/gherkin"
	"github.com/gherkit/gherkit/internal/snippet"
)

// AddSnippetsCommand adds the snippets command to the parent command.
func AddSnippetsCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "snippets [path ...]",
		Short: "Generate step definition stubs for feature files",
		Long: `Snippets parses feature files at the given paths and prints a compilable
step definition stub for every distinct step, ready to paste into a suite.
Steps sharing a suggested pattern produce a single stub.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"features"}
			}

			scenarios, err := gherkin.Load(paths)
			if err != nil {
				return err
			}

			var steps []domain.Step
			for _, sc := range scenarios {
				steps = append(steps, sc.Steps...)
			}

			stubs := snippet.ForSteps(steps)
			if len(stubs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no steps found")
				return nil
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), snippet.Render(stubs))
			return nil
		},
	}

	parent.AddCommand(cmd)
}
