package middleware

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/http"

// OpenTelemetry opens a server span per request, continuing any W3C trace
// context sent by the client, and records request metrics. The span is
// renamed to "METHOD route" once routing has matched, so every project ID
// shares one span name. The caller account is recorded as enduser.id.
//
// A nil metrics skips metric recording.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx, r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			if caller := CallerFromContext(ctx); caller != "" {
				span.SetAttributes(attribute.String("enduser.id", caller))
			}

			rr := newResponseRecorder(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(rr, r)

			route := routeLabel(r)
			span.SetName(r.Method + " " + route)
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", rr.status),
			)
			if rr.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rr.status))
			}

			recordServerMetrics(ctx, metrics, r.Method, route, start, rr.status)
		})
	}
}

// recordServerMetrics records request duration and count. Safe with nil
// metrics.
func recordServerMetrics(ctx context.Context, metrics *telemetry.Metrics, method, route string, start time.Time, status int) {
	if metrics == nil {
		return
	}

	result := "success"
	if status >= http.StatusBadRequest {
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrResult.String(result),
	)

	metrics.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	metrics.ServerRequestTotal.Add(ctx, 1, attrs)
}
