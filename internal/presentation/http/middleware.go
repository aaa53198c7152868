package httppresentation

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cartpay/internal/observability"
	"cartpay/internal/observability/logctx"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const headerRequestID = "X-Request-ID"

// handle registers route on mux behind the standard middleware stack:
// method check → server span (W3C extraction) → request-scoped logger →
// metrics + access log → handler.
func handle(mux *http.ServeMux, method, route string, base observability.Logger, tel observability.Observability, handler http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Stable route template for low-cardinality labels.
		r = r.WithContext(contextWithRoute(r.Context(), route))

		wrapped := withTrace(
			withRequestLogger(base,
				withMetricsAndAccessLog(base, tel, handler),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

// withTrace opens a server span for the request, honoring inbound W3C
// trace context.
func withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("cartpay.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		spanName := r.Method + " " + route

		ctx, span := tracer.Start(parentCtx, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withRequestLogger injects a request-scoped logger carrying request_id and,
// when present, trace identifiers. Dynamic fields only.
func withRequestLogger(base observability.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rid := r.Header.Get(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(headerRequestID, rid)

		fields := []observability.Field{observability.F("request_id", rid)}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}

		ctx = logctx.With(ctx, base.With(fields...))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withMetricsAndAccessLog records RED metrics and one access-log line per
// request after the handler completes.
func withMetricsAndAccessLog(base observability.Logger, tel observability.Observability, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		route := routeFromContext(r.Context())
		statusLabel := strconv.Itoa(lrw.status)
		elapsed := time.Since(start)

		if tel != nil {
			tel.Metrics().Counter(observability.MHTTPRequests).Add(1,
				observability.L("method", r.Method),
				observability.L("route", route),
				observability.L("status", statusLabel),
			)
			tel.Metrics().Histogram(observability.MHTTPRequestDuration).Observe(elapsed.Seconds(),
				observability.L("method", r.Method),
				observability.L("route", route),
			)
		}

		logctx.FromOr(r.Context(), base).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", route),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", elapsed.Milliseconds()),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

type routeKey struct{}

func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
