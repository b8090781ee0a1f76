package github

import "encoding/json"

// commitDate returns the commit.author.date string of one element of the
// commits listing, or false if any level of it is missing. Keys must match
// exactly; the API never varies their case.
func commitDate(elem json.RawMessage) (string, bool) {
	commit, ok := member(elem, "commit")
	if !ok {
		return "", false
	}
	author, ok := member(commit, "author")
	if !ok {
		return "", false
	}
	raw, ok := member(author, "date")
	if !ok {
		return "", false
	}
	var date string
	if err := json.Unmarshal(raw, &date); err != nil {
		return "", false
	}
	return date, date != ""
}

// member returns the value stored under key in the JSON object raw.
func member(raw json.RawMessage, key string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// CommitActivity is the result of one latest-commit lookup as rendered by
// the CLI, HTTP and MCP surfaces. Exactly one of LatestCommit and Error is set.
type CommitActivity struct {
	Repo         string `json:"repo" yaml:"repo"`
	LatestCommit string `json:"latest_commit,omitempty" yaml:"latest_commit,omitempty"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the lookup succeeded.
func (a CommitActivity) OK() bool { return a.Error == "" }
