package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kenjiO/repo-activity/internal/config"
	"github.com/kenjiO/repo-activity/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		apiBase string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve latest-commit lookups over HTTP",
		Long: `Serve latest-commit lookups over HTTP.

Endpoints:
  GET /healthz
  GET /repos/{owner}/{name}/latest-commit

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				c.Config.ListenAddr = addr
			}
			if flags.Changed("api-base") {
				c.Config.APIBase = apiBase
			}
			if flags.Changed("timeout") {
				c.Config.Timeout = config.Duration{Duration: timeout}
			}
			if err := c.Config.Validate(); err != nil {
				return err
			}

			srv := server.New(c.newClient(), server.Options{
				Addr:    c.Config.ListenAddr,
				Timeout: c.Config.Timeout.Duration,
				Logger:  c.Logger,
			})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&apiBase, "api-base", "", "GitHub API repositories root (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "deadline for each request (0 for none)")

	return cmd
}
