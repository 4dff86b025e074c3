// Package cli implements the sysarch command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sysarch/pkg/buildinfo"
	"github.com/matzehuels/sysarch/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used in help text.
const appName = "sysarch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand, the root renders the diagram exactly like
// "sysarch render".
func (c *CLI) RootCommand() *cobra.Command {
	var flags renderFlags

	root := &cobra.Command{
		Use:   appName,
		Short: "Sysarch renders the System Architecture diagram",
		Long: `Sysarch renders the System Architecture diagram: five layers from the
presentation tier down to the PostgreSQL tables, with the request path
that links them.

Run without arguments it writes system_architecture.png to the current
directory.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return c.runRender(cmd, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	flags.bind(root)

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
