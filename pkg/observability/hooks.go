// Package observability provides hooks for tracing and logging of API calls.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about outgoing HTTP requests made by the API clients.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the client packages stay
// free of logging and tracing imports.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(observability.MultiHTTPHooks{logHooks, traceHooks})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.HTTP().OnRequest(ctx, "GET", host, path)
//	// ... do request ...
//	observability.HTTP().OnResponse(ctx, "GET", host, path, status, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response, whatever its status.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// MultiHTTPHooks fans every event out to each of its members in order.
type MultiHTTPHooks []HTTPHooks

func (m MultiHTTPHooks) OnRequest(ctx context.Context, method, host, path string) {
	for _, h := range m {
		h.OnRequest(ctx, method, host, path)
	}
}

func (m MultiHTTPHooks) OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration) {
	for _, h := range m {
		h.OnResponse(ctx, method, host, path, statusCode, duration)
	}
}

func (m MultiHTTPHooks) OnError(ctx context.Context, method, host, path string, err error) {
	for _, h := range m {
		h.OnError(ctx, method, host, path, err)
	}
}

var (
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
}
