package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kenjiO/repo-activity/pkg/buildinfo"
)

// annotationSkipConfig marks commands that must run even when the config file
// is invalid, such as the ones that rewrite it.
const annotationSkipConfig = "repo-activity/skip-config"

// RootCommand creates the root cobra command with all subcommands registered.
// The logger is attached to the command context and, unless the command is
// marked with annotationSkipConfig, config is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "repo-activity reports when GitHub repositories were last committed to",
		Long: `repo-activity looks up the most recent commit of GitHub repositories
through the commits API, from the command line, over HTTP or as an MCP tool.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if skipsConfig(cmd) {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/repo-activity/config.toml)")

	// Register all subcommands
	root.AddCommand(c.latestCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// SetupTelemetry registers API request logging and, when ENABLE_OTEL is set,
// trace export. Call the returned func before exiting.
func (c *CLI) SetupTelemetry(ctx context.Context) (func(), error) {
	return setupTelemetry(ctx, c.Logger)
}

// skipsConfig reports whether cmd or one of its parents carries
// annotationSkipConfig.
func skipsConfig(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if _, ok := cmd.Annotations[annotationSkipConfig]; ok {
			return true
		}
	}
	return false
}
