package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := UserAgent(); got != "repo-activity/v1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "repo-activity/v1.2.3")
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q, want version prefix", tmpl)
	}
	for _, want := range []string{"commit: " + Commit, "built: " + Date} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}
