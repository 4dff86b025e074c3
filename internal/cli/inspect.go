package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sysarch/pkg/diagram"
	"github.com/matzehuels/sysarch/pkg/errors"
	"github.com/matzehuels/sysarch/pkg/pipeline"
)

// inspectCommand creates the inspect command, which lists the declaration
// and checks it without rendering.
func (c *CLI) inspectCommand() *cobra.Command {
	var definition string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List clusters, nodes and edges and validate them",
		Long: `List every cluster with its nodes, then every edge, and check that each
edge connects declared nodes. Nothing is rendered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := pipeline.Load(pipeline.Options{Definition: definition})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printDiagram(out, d)
			if err := d.Validate(); err != nil {
				printError(out, "Invalid diagram")
				return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "validate %s", d.Name())
			}
			printSuccess(out, "Diagram is valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&definition, "from", "", "inspect a definition file instead of the built-in diagram")

	return cmd
}

func printDiagram(w io.Writer, d *diagram.Diagram) {
	fmt.Fprintln(w, StyleTitle.Render(d.Name()))
	printKeyValue(w, "file", d.Filename())
	printKeyValue(w, "direction", string(d.Direction()))
	printStats(w, len(d.Clusters()), d.NodeCount(), d.EdgeCount())
	fmt.Fprintln(w)

	for _, c := range d.Clusters() {
		fmt.Fprintln(w, StyleHighlight.Render(c.Title()))
		for _, id := range c.Nodes {
			n, _ := d.Node(id)
			icon := iconRack
			if n.Shape == diagram.ShapeDatabase {
				icon = iconDatabase
			}
			fmt.Fprintln(w, "  "+StyleDim.Render(icon)+" "+StyleValue.Render(n.Label))
		}
	}
	fmt.Fprintln(w)

	for _, e := range d.Edges() {
		from, _ := d.Node(e.From)
		to, _ := d.Node(e.To)
		printDetail(w, "%s %s %s (%s)", from.Label, iconArrow, to.Label, e.Label)
	}
}
