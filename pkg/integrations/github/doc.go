// Package github looks up the latest commit of a GitHub repository.
//
// # Overview
//
// The client issues a single GET to the commits listing of a repository
// (https://api.github.com/repos/{owner}/{name}/commits) and returns the most
// recent commit author date found in the response.
//
// # Usage
//
//	client := github.NewClient("")
//
//	date, err := client.LatestCommitDate(ctx, "pallets/flask")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(date) // 2024-05-01T09:12:44Z
//
// # Identifiers
//
// Repositories are named "owner/name". The owner may contain ASCII letters,
// digits and hyphens; the name may additionally contain underscores. Nothing
// else is accepted, including surrounding whitespace. [ValidRepoName] and
// [CheckRepoName] accept any value so that untyped input (JSON, MCP tool
// arguments) can be checked directly. [RepoFromURL] turns repository URLs
// into identifiers.
//
// # Errors
//
// All failures are [errors.Error] values:
//
//   - INVALID_ARGUMENT: "Invalid Argument: Must be called with a valid repo name"
//   - HTTP_ERROR: "<status> <message from GitHub>"
//   - TRANSPORT_ERROR: "A request was made but no response was received: <cause>"
//   - UNEXPECTED_FORMAT: "Data received from Github came in unexpected format"
//
// An empty commits listing is UNEXPECTED_FORMAT.
//
// # Limits
//
// Only the first page of the listing is read. Requests are unauthenticated,
// never retried and never cached.
//
// [errors.Error]: github.com/kenjiO/repo-activity/pkg/errors.Error
package github
