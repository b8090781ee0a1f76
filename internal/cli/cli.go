package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/kenjiO/repo-activity/internal/config"
	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "repo-activity"

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

	// Config is resolved before any subcommand runs.
	Config config.Config

	// configPath overrides the XDG config location when set by --config.
	configPath string

	out    io.Writer
	errOut io.Writer
}

// New creates a new CLI instance with a default logger.
// Command output goes to stdout; logs go to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output and progress indicators.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.out = out
	c.errOut = errOut
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates a GitHub client for the configured API base.
func (c *CLI) newClient() *github.Client {
	return github.NewClient(c.Config.APIBase)
}

// loadConfig resolves c.Config from the .env file, config file and environment.
func (c *CLI) loadConfig() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("No config path", "error", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("Loaded config", "path", path, "api_base", cfg.APIBase)
	return nil
}
