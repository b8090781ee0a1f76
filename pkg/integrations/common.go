package integrations

import (
	"net/http"
	"strings"
)

// NoResponseMessage is the message of transport errors raised after a request
// was sent but before a complete response arrived.
const NoResponseMessage = "A request was made but no response was received"

// NewHTTPClient creates an HTTP client without a client-side timeout.
// Deadlines come from the request context so callers control them.
func NewHTTPClient() *http.Client {
	return &http.Client{}
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, and git+ prefixes, and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(s, ".git")
}

// JoinURL joins a base URL and path segments with single slashes.
// Segments are inserted verbatim; callers validate them first.
func JoinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(strings.Trim(s, "/"))
	}
	return b.String()
}
