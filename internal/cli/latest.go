package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kenjiO/repo-activity/internal/config"
	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

// latestOptions holds flag values for the latest command.
type latestOptions struct {
	output      string
	apiBase     string
	timeout     time.Duration
	concurrency int
}

// latestCommand creates the latest command.
func (c *CLI) latestCommand() *cobra.Command {
	var opts latestOptions

	cmd := &cobra.Command{
		Use:   "latest <owner/name>...",
		Short: "Print the date of the latest commit of GitHub repositories",
		Long: `Print the author date of the most recent commit of each repository.

Repositories are named owner/name. GitHub URLs (https, git@, git://) are
accepted and converted. Each repository costs exactly one API request.`,
		Example: `  repo-activity latest pallets/flask
  repo-activity latest psf/requests https://github.com/pallets/click -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyLatestFlags(cmd, opts); err != nil {
				return err
			}
			return c.runLatest(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", config.OutputText, "output format (text, json, yaml)")
	cmd.Flags().StringVar(&opts.apiBase, "api-base", github.DefaultAPIBase, "GitHub API repositories root")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "deadline for each lookup (0 for none)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "number of lookups to run at once")

	return cmd
}

// applyLatestFlags overrides the loaded config with explicitly set flags.
func (c *CLI) applyLatestFlags(cmd *cobra.Command, opts latestOptions) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		c.Config.Output = opts.output
	}
	if flags.Changed("api-base") {
		c.Config.APIBase = opts.apiBase
	}
	if flags.Changed("timeout") {
		c.Config.Timeout = config.Duration{Duration: opts.timeout}
	}
	if flags.Changed("concurrency") {
		c.Config.Concurrency = opts.concurrency
	}
	return c.Config.Validate()
}

func (c *CLI) runLatest(ctx context.Context, args []string) error {
	logger := loggerFromContext(ctx)
	client := c.newClient()

	var spinner *Spinner
	if c.Config.Output == config.OutputText && logger.GetLevel() > LogDebug {
		spinner = newSpinner(ctx, c.errOut, fmt.Sprintf("Fetching %d repositories...", len(args)))
		spinner.Start()
	}

	results := make([]github.CommitActivity, len(args))
	errs := make([]error, len(args))

	g := new(errgroup.Group)
	g.SetLimit(c.Config.Concurrency)
	for i, arg := range args {
		repo := arg
		if r, ok := github.RepoFromURL(arg); ok {
			repo = r
		}
		g.Go(func() error {
			date, err := c.lookup(ctx, client, repo)
			results[i] = github.CommitActivity{Repo: repo, LatestCommit: date}
			if err != nil {
				results[i].Error = errors.UserMessage(err)
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	if spinner != nil {
		spinner.Stop()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.writeActivity(results); err != nil {
		return err
	}

	var failed int
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	switch {
	case failed == 0:
		return nil
	case len(args) == 1:
		return errs[0]
	default:
		return fmt.Errorf("%d of %d lookups failed", failed, len(args))
	}
}

// lookup fetches one repository under the configured per-lookup deadline.
func (c *CLI) lookup(ctx context.Context, client *github.Client, repo string) (string, error) {
	if d := c.Config.Timeout.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	date, err := client.LatestCommitDate(ctx, repo)
	if err != nil {
		logger.Debug("Lookup failed", "repo", repo, "code", errors.GetCode(err), "error", err)
		return "", err
	}
	prog.done("Fetched", "repo", repo, "latest_commit", date)
	return date, nil
}

func (c *CLI) writeActivity(results []github.CommitActivity) error {
	switch c.Config.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case config.OutputYAML:
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(results) == 1 {
		r := results[0]
		if r.OK() {
			printSuccess(c.out, "%s", StyleHighlight.Render(r.Repo))
			printKeyValue(c.out, "Latest commit", r.LatestCommit)
		}
		return nil
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		status := StyleSuccess.Render(iconSuccess)
		detail := r.LatestCommit
		if !r.OK() {
			status = StyleError.Render(iconError)
			detail = r.Error
		}
		rows[i] = []string{r.Repo, detail, status}
	}
	fmt.Fprintln(c.out, renderTable([]string{"Repository", "Latest commit", ""}, rows))
	return nil
}
