package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/kenjiO/repo-activity/internal/config"
)

// fakeGitHub serves commit listings for the given repos; others get 404.
type fakeGitHub struct {
	*httptest.Server
	requests atomic.Int32
}

func newFakeGitHub(t *testing.T, repos map[string][]string) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		repo := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/commits")
		dates, ok := repos[repo]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
			return
		}
		items := make([]string, len(dates))
		for i, d := range dates {
			items[i] = fmt.Sprintf(`{"commit":{"author":{"date":%q}}}`, d)
		}
		fmt.Fprint(w, "["+strings.Join(items, ",")+"]")
	}))
	t.Cleanup(f.Close)
	return f
}

// testCLI returns a CLI isolated from the user's config and environment,
// pointed at apiBase.
func testCLI(t *testing.T, apiBase string) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvTimeout, config.EnvConcurrency, config.EnvListenAddr, config.EnvOutput} {
		t.Setenv(k, "")
	}
	t.Setenv(config.EnvAPIBase, apiBase)

	var out bytes.Buffer
	c := New(io.Discard, LogDebug)
	c.SetOutput(&out, io.Discard)
	return c, &out
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}
