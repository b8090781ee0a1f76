package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

type fakeFetcher struct {
	date  string
	err   error
	repos []string
}

func (f *fakeFetcher) LatestCommitDate(_ context.Context, repo string) (string, error) {
	f.repos = append(f.repos, repo)
	return f.date, f.err
}

func testServer(f Fetcher) (*Server, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(f, Options{Addr: "127.0.0.1:0", Logger: log.New(&buf)}), &buf
}

func TestHealthz(t *testing.T) {
	s, _ := testServer(&fakeFetcher{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLatestCommit(t *testing.T) {
	f := &fakeFetcher{date: "2017-02-09T16:01:33Z"}
	s, logs := testServer(f)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/repos/userX/repo-y/latest-commit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"repo":"userX/repo-y","latest_commit":"2017-02-09T16:01:33Z"}`, rec.Body.String())
	assert.Equal(t, []string{"userX/repo-y"}, f.repos)
	assert.Contains(t, logs.String(), "/repos/userX/repo-y/latest-commit")
}

func TestLatestCommitErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "invalid argument",
			err:        errors.New(errors.ErrCodeInvalidArgument, github.InvalidRepoMessage),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
			wantMsg:    github.InvalidRepoMessage,
		},
		{
			name:       "upstream not found",
			err:        &errors.Error{Code: errors.ErrCodeHTTP, Message: "404 Not Found", Status: 404},
			wantStatus: http.StatusNotFound,
			wantCode:   "HTTP_ERROR",
			wantMsg:    "404 Not Found",
		},
		{
			name:       "upstream rate limited",
			err:        &errors.Error{Code: errors.ErrCodeHTTP, Message: "403 API rate limit exceeded", Status: 403},
			wantStatus: http.StatusBadGateway,
			wantCode:   "HTTP_ERROR",
			wantMsg:    "403 API rate limit exceeded",
		},
		{
			name:       "unexpected format",
			err:        errors.New(errors.ErrCodeUnexpectedFormat, github.UnexpectedFormatMessage),
			wantStatus: http.StatusBadGateway,
			wantCode:   "UNEXPECTED_FORMAT",
			wantMsg:    github.UnexpectedFormatMessage,
		},
		{
			name:       "transport deadline",
			err:        errors.Wrap(errors.ErrCodeTransport, context.DeadlineExceeded, "A request was made but no response was received"),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "TRANSPORT_ERROR",
			wantMsg:    "A request was made but no response was received: context deadline exceeded",
		},
		{
			name:       "transport refused",
			err:        errors.Wrap(errors.ErrCodeTransport, fmt.Errorf("connection refused"), "A request was made but no response was received"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "TRANSPORT_ERROR",
			wantMsg:    "A request was made but no response was received: connection refused",
		},
		{
			name:       "uncoded error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantMsg:    "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := testServer(&fakeFetcher{err: tt.err})

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/repos/userX/repoY/latest-commit", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestLatestCommitWithGitHubClient(t *testing.T) {
	var requests int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/userX/repoY/commits" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		w.Write([]byte(`[{"commit":{"author":{"date":"2017-02-06T16:01:33Z"}}},{"commit":{"author":{"date":"2017-02-09T16:01:33Z"}}}]`))
	}))
	defer upstream.Close()

	s, _ := testServer(github.NewClient(upstream.URL))

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/repos/userX/repoY/latest-commit", http.StatusOK, `{"repo":"userX/repoY","latest_commit":"2017-02-09T16:01:33Z"}`},
		{"/repos/userX/missing/latest-commit", http.StatusNotFound, `{"error":"404 Not Found","code":"HTTP_ERROR"}`},
		{"/repos/user_x/repoY/latest-commit", http.StatusBadRequest, `{"error":"Invalid Argument: Must be called with a valid repo name","code":"INVALID_ARGUMENT"}`},
		{"/repos/user$/repoY/latest-commit", http.StatusBadRequest, `{"error":"Invalid Argument: Must be called with a valid repo name","code":"INVALID_ARGUMENT"}`},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

		assert.Equal(t, tt.wantStatus, rec.Code, tt.path)
		assert.JSONEq(t, tt.wantBody, rec.Body.String(), tt.path)
	}
	assert.Equal(t, 2, requests, "invalid identifiers must not reach GitHub")
}

func TestRequestID(t *testing.T) {
	s, logs := testServer(&fakeFetcher{})

	t.Run("echoes client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
		assert.Contains(t, logs.String(), "abc-123")
	})

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Len(t, rec.Header().Get(HeaderRequestID), 36)
	})
}

func TestUnknownRoutes(t *testing.T) {
	s, _ := testServer(&fakeFetcher{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/repos/userX/repoY/extra/latest-commit", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/repos/userX/repoY/latest-commit", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecoversFromPanics(t *testing.T) {
	s, _ := testServer(panicFetcher{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/repos/userX/repoY/latest-commit", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := testServer(&fakeFetcher{date: "2014-02-06T16:01:33Z"})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/repos/userX/repoY/latest-commit")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"repo":"userX/repoY","latest_commit":"2014-02-06T16:01:33Z"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(errors.New(errors.ErrCodeInvalidArgument, "x")))
	assert.Equal(t, http.StatusBadGateway, StatusFor(&errors.Error{Code: errors.ErrCodeHTTP, Status: 500}))
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("lookup: %w", &errors.Error{Code: errors.ErrCodeHTTP, Status: 404})))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New(errors.ErrCodeInvalidConfig, "x")))
}

type panicFetcher struct{}

func (panicFetcher) LatestCommitDate(context.Context, string) (string, error) {
	panic("boom")
}
