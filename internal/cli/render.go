package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sysarch/pkg/pipeline"
	"github.com/matzehuels/sysarch/pkg/render"
)

// renderFlags holds the flags shared by the root command and "render".
type renderFlags struct {
	formats     string
	outputDir   string
	name        string
	definition  string
	direction   string
	scale       float64
	transparent bool
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", pipeline.DefaultOutputDir, "directory to write files to")
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.DefaultFormat,
		"output format(s): png (default), svg, pdf, dot, mermaid, json (comma-separated)")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "base file name (default: the diagram's filename)")
	cmd.Flags().StringVar(&f.definition, "from", "", "render a definition file (.json, .toml, .yaml) instead of the built-in diagram")
	cmd.Flags().StringVar(&f.direction, "direction", "", "layout direction override: LR, RL, TB, BT")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor (values other than 1 need rsvg-convert)")
	cmd.Flags().BoolVar(&f.transparent, "transparent", false, "render without a page background")
}

func (f *renderFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Definition:  f.definition,
		Formats:     pipeline.ParseFormats(f.formats),
		Direction:   strings.TrimSpace(f.direction),
		Scale:       f.scale,
		Transparent: f.transparent,
		OutputDir:   f.outputDir,
		Name:        f.name,
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the diagram to image files",
		Long: `Render the diagram to image files.

By default the built-in System Architecture diagram is rendered to
system_architecture.png in the current directory, laid out left to right.
Several formats can be produced in one run; nothing is written unless all
of them render successfully.

PDF output, and PNG at a scale other than 1, need rsvg-convert (librsvg).`,
		Example: `  sysarch render
  sysarch render -f png,svg -o docs/
  sysarch render --from diagram.toml -f svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return c.runRender(cmd, opts)
		},
	}

	flags.bind(cmd)
	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options) error {
	out := cmd.OutOrStdout()
	opts.Logger = c.Logger

	if opts.NeedsConverter() && !render.Available() {
		printWarning(out, "rsvg-convert not found; pdf and scaled png output will fail")
	}

	prog := newProgress(c.Logger)
	runner := c.newRunner()

	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		printError(out, "Rendering failed")
		return err
	}
	paths, err := runner.Write(result, opts)
	if err != nil {
		printError(out, "Writing output failed")
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", result.Diagram.Name()))

	printSuccess(out, "Rendered %s", StyleHighlight.Render(result.Diagram.Name()))
	printStats(out, result.Stats.ClusterCount, result.Stats.NodeCount, result.Stats.EdgeCount)
	for _, p := range paths {
		printFile(out, p)
	}
	return nil
}
