package github

import (
	"regexp"

	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/integrations"
)

// InvalidRepoMessage is the message of every identifier validation failure.
const InvalidRepoMessage = "Invalid Argument: Must be called with a valid repo name"

var (
	// owner: alphanumerics and hyphens; name: alphanumerics, hyphens and underscores
	repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9-]+/[A-Za-z0-9_-]+$`)

	repoURLPattern = regexp.MustCompile(`^https?://github\.com/([A-Za-z0-9-]+)/([A-Za-z0-9_-]+?)(?:\.git)?/?$`)
)

// ValidRepoName reports whether v is a string of the form "owner/name".
// Values of any other type are never valid.
func ValidRepoName(v any) bool {
	s, ok := v.(string)
	return ok && repoNamePattern.MatchString(s)
}

// CheckRepoName returns v as a repository identifier, or an INVALID_ARGUMENT
// error if it is not one.
func CheckRepoName(v any) (string, error) {
	if !ValidRepoName(v) {
		return "", errors.New(errors.ErrCodeInvalidArgument, InvalidRepoMessage)
	}
	return v.(string), nil
}

// RepoFromURL extracts "owner/name" from a GitHub repository URL in any of
// the forms accepted by [integrations.NormalizeRepoURL]. Identifiers that are
// already in "owner/name" form are returned unchanged.
func RepoFromURL(raw string) (string, bool) {
	if ValidRepoName(raw) {
		return raw, true
	}
	m := repoURLPattern.FindStringSubmatch(integrations.NormalizeRepoURL(raw))
	if m == nil {
		return "", false
	}
	return m[1] + "/" + m[2], true
}
