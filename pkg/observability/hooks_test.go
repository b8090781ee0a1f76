package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/repos/userX/repoY/commits")
	h.OnResponse(ctx, "GET", "api.github.com", "/repos/userX/repoY/commits", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/repos/userX/repoY/commits", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testHTTPHooks{}
	SetHTTPHooks(custom)

	// Setting nil should be ignored
	SetHTTPHooks(nil)

	if HTTP() != custom {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}

	Reset()
}

func TestMultiHTTPHooks(t *testing.T) {
	ctx := context.Background()
	a, b := &testHTTPHooks{}, &testHTTPHooks{}
	m := MultiHTTPHooks{a, b}

	m.OnRequest(ctx, "GET", "api.github.com", "/repos/userX/repoY/commits")
	m.OnResponse(ctx, "GET", "api.github.com", "/repos/userX/repoY/commits", 404, time.Millisecond)
	m.OnError(ctx, "GET", "api.github.com", "/repos/userX/repoY/commits", errors.New("boom"))

	for i, h := range []*testHTTPHooks{a, b} {
		if h.requests != 1 || h.responses != 1 || h.errors != 1 {
			t.Errorf("hook %d got %d/%d/%d events, want 1/1/1", i, h.requests, h.responses, h.errors)
		}
		if h.lastStatus != 404 {
			t.Errorf("hook %d lastStatus = %d, want 404", i, h.lastStatus)
		}
	}
}

type testHTTPHooks struct {
	requests, responses, errors int
	lastStatus                  int
}

func (h *testHTTPHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *testHTTPHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.responses++
	h.lastStatus = status
}
func (h *testHTTPHooks) OnError(context.Context, string, string, string, error) { h.errors++ }
