package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sysarch/pkg/errors"
	"github.com/matzehuels/sysarch/pkg/pipeline"
)

// exportCommand creates the export command for text formats.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		definition string
		direction  string
	)

	cmd := &cobra.Command{
		Use:   "export [dot|mermaid|json]",
		Short: "Print the diagram as DOT, Mermaid or JSON",
		Long: `Print the diagram in a text format on standard output.

  dot      Graphviz source, as fed to the renderer
  mermaid  Mermaid flowchart for Markdown documentation
  json     definition file that "render --from" accepts

The format defaults to dot.`,
		Example: `  sysarch export mermaid >> README.md
  sysarch export json > architecture.json`,
		ValidArgs: []string{pipeline.FormatDOT, pipeline.FormatMermaid, pipeline.FormatJSON},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := pipeline.FormatDOT
			if len(args) == 1 {
				format = args[0]
			}
			if !pipeline.IsText(format) {
				return errors.New(errors.ErrCodeInvalidFormat, "export supports dot, mermaid and json, got %q", format)
			}

			opts := pipeline.Options{
				Definition: definition,
				Direction:  direction,
				Formats:    []string{format},
				Logger:     c.Logger,
			}
			result, err := c.newRunner().Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(result.Artifacts[format]))
			return err
		},
	}

	cmd.Flags().StringVar(&definition, "from", "", "export a definition file instead of the built-in diagram")
	cmd.Flags().StringVar(&direction, "direction", "", "layout direction override: LR, RL, TB, BT")

	return cmd
}
