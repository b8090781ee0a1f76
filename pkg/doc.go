// Package pkg holds the public libraries of repo-activity.
//
// # Overview
//
//  1. [github] - Latest-commit lookups against the GitHub commits API
//  2. [integrations] - Shared single-request HTTP client and URL helpers
//  3. [errors] - Coded errors shared by every lookup failure
//  4. [observability] - Hooks for logging and tracing outgoing requests
//  5. [buildinfo] - Version information injected at build time
//
// # Data Flow
//
//	"owner/name"
//	     ↓
//	[github] validates the identifier
//	     ↓
//	[integrations] GET {API_BASE}/owner/name/commits
//	     ↓
//	[github] checks the payload and selects the latest date
//	     ↓
//	"2017-02-09T16:01:33Z" or an [errors.Error]
//
// # Quick Start
//
//	client := github.NewClient("")
//	date, err := client.LatestCommitDate(ctx, "pallets/flask")
//
// [github]: github.com/kenjiO/repo-activity/pkg/integrations/github
// [integrations]: github.com/kenjiO/repo-activity/pkg/integrations
// [errors]: github.com/kenjiO/repo-activity/pkg/errors
// [errors.Error]: github.com/kenjiO/repo-activity/pkg/errors.Error
// [observability]: github.com/kenjiO/repo-activity/pkg/observability
// [buildinfo]: github.com/kenjiO/repo-activity/pkg/buildinfo
package pkg
