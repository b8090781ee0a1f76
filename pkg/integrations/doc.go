// Package integrations provides the shared HTTP layer for hosted Git API clients.
//
// # Overview
//
// API-specific clients live in subpackages:
//
//   - [github]: GitHub commits listing for latest-commit lookups
//
// # Client Pattern
//
// An API client embeds [Client] and builds its request URLs with [JoinURL].
// [Client.Get] decodes the body; a decode failure is a plain error so the
// API client can map it to its own error:
//
//	type Client struct {
//	    *integrations.Client
//	    baseURL string
//	}
//
//	var commits []json.RawMessage
//	err := c.Get(ctx, integrations.JoinURL(c.baseURL, repo, "commits"), &commits)
//
// [Client] sends exactly one request per call. There is no retry, no response
// cache and no client-side timeout; deadlines come from the context.
//
// # Errors
//
// Every failure is an [errors.Error]:
//
//   - the request cannot be built: TRANSPORT_ERROR with the underlying message
//   - the request is sent but no response arrives: TRANSPORT_ERROR with
//     [NoResponseMessage] and the transport error as cause
//   - the status is outside 2xx: HTTP_ERROR with "<status> <message>", where
//     message is the "message" field of the JSON error body
//
// Each request is reported to the hooks registered in [observability].
//
// [github]: github.com/kenjiO/repo-activity/pkg/integrations/github
// [errors.Error]: github.com/kenjiO/repo-activity/pkg/errors.Error
// [observability]: github.com/kenjiO/repo-activity/pkg/observability
package integrations
