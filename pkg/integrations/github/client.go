package github

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kenjiO/repo-activity/pkg/buildinfo"
	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/integrations"
)

// DefaultAPIBase is the repositories root of the public GitHub API.
const DefaultAPIBase = "https://api.github.com/repos"

// Client looks up commit activity through the GitHub commits listing.
// It holds no state beyond its base URL and is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client rooted at apiBase.
// Pass an empty string to use [DefaultAPIBase].
func NewClient(apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		Client:  integrations.NewClient(headers),
		baseURL: apiBase,
	}
}

// BaseURL returns the API base the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// CommitsURL returns the commits listing URL for an "owner/name" identifier.
// The identifier is not validated.
func (c *Client) CommitsURL(repo string) string {
	return integrations.JoinURL(c.baseURL, repo, "commits")
}

// LatestCommitDate returns the author date of the most recent commit on the
// first page of the commits listing for repo, exactly as GitHub reports it.
//
// Invalid identifiers fail with INVALID_ARGUMENT before any request is sent.
// Exactly one request is made otherwise; see [Client.CommitDates] and [LatestDate]
// for the remaining failure modes.
func (c *Client) LatestCommitDate(ctx context.Context, repo string) (string, error) {
	ctx, span := tracer.Start(ctx, "github.LatestCommitDate", trace.WithAttributes(
		attribute.String("repo", repo),
	))
	defer span.End()

	dates, err := c.CommitDates(ctx, repo)
	if err == nil {
		var latest string
		latest, err = LatestDate(dates)
		if err == nil {
			span.SetAttributes(attribute.String("latest_commit", latest))
			return latest, nil
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, string(errors.GetCode(err)))
	return "", err
}

// CommitDates fetches the commits listing for repo and returns the author date
// of every commit in response order.
//
// The body must be a JSON array whose every element carries a non-empty
// commit.author.date string; otherwise the call fails with UNEXPECTED_FORMAT.
func (c *Client) CommitDates(ctx context.Context, repo string) ([]string, error) {
	if _, err := CheckRepoName(repo); err != nil {
		return nil, err
	}

	// A null body decodes to a nil slice; an empty listing does not.
	var commits []json.RawMessage
	if err := c.Get(ctx, c.CommitsURL(repo), &commits); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, unexpectedFormat()
	}
	if commits == nil {
		return nil, unexpectedFormat()
	}

	dates := make([]string, 0, len(commits))
	for _, elem := range commits {
		d, ok := commitDate(elem)
		if !ok {
			return nil, unexpectedFormat()
		}
		dates = append(dates, d)
	}
	return dates, nil
}
