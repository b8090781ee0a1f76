package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kenjiO/repo-activity/pkg/buildinfo"
	"github.com/kenjiO/repo-activity/pkg/observability"
)

// EnvEnableOtel turns on trace export when set to any value.
const EnvEnableOtel = "ENABLE_OTEL"

// setupTelemetry registers the HTTP hooks and, when ENABLE_OTEL is set, an
// OTLP/HTTP tracer provider. The returned func flushes and shuts it down.
func setupTelemetry(ctx context.Context, logger *log.Logger) (func(), error) {
	hooks := observability.MultiHTTPHooks{logHooks{logger: logger}}

	if os.Getenv(EnvEnableOtel) == "" {
		observability.SetHTTPHooks(hooks)
		return func() {}, nil
	}

	logger.Debug("Enabling OpenTelemetry")
	res, err := newResource()
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}
	tp, err := initTracer(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("otel tracer: %w", err)
	}
	observability.SetHTTPHooks(append(hooks, traceHooks{}))

	return func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("Error shutting down tracer provider", "error", err)
		}
	}, nil
}

func newResource() (*resource.Resource, error) {
	return resource.Merge(resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(appName),
			semconv.ServiceVersion(buildinfo.Version),
		))
}

func initTracer(ctx context.Context, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	var options []otlptracehttp.Option

	otlpURL := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpURL == "" {
		otlpURL = "http://localhost:4318"
	}

	options = append(options, otlptracehttp.WithEndpointURL(otlpURL))
	if strings.HasPrefix(otlpURL, "http://") {
		options = append(options, otlptracehttp.WithInsecure())
	}

	headers, err := parseOtlpHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	if err != nil {
		return nil, err
	}
	if len(headers) > 0 {
		options = append(options, otlptracehttp.WithHeaders(headers))
	}

	exporter, err := otlptracehttp.New(ctx, options...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp, nil
}

// parseOtlpHeaders parses "k1=v1,k2=v2".
func parseOtlpHeaders(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	headers := make(map[string]string)
	for _, h := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(h, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header format: %s", h)
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers, nil
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// logHooks writes each API request to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("API request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("API response", "method", method, "path", path, "status", status, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("API error", "method", method, "path", path, "error", err)
}

// traceHooks records API requests as events on the active span.
type traceHooks struct{}

func (traceHooks) OnRequest(ctx context.Context, method, host, path string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("http.request", trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("server.address", host),
			attribute.String("url.path", path),
		))
	}
}

func (traceHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("http.response", trace.WithAttributes(
			attribute.Int("http.response.status_code", status),
			attribute.Int64("duration_ms", d.Milliseconds()),
		))
	}
}

func (traceHooks) OnError(ctx context.Context, method, host, path string, err error) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("http.error", trace.WithAttributes(
			attribute.String("error.message", err.Error()),
		))
	}
}
