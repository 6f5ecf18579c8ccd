package httpserver

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const operatorHeader = "X-Operator"

var errHijackNotSupported = errors.New("underlying ResponseWriter does not support hijacking")

// createOperatorHeaderMiddleware tags the request span with the operator issuing it.
func createOperatorHeaderMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if operator := r.Header.Get(operatorHeader); operator != "" {
				GetSpanFromContext(r).SetAttributes(attribute.String("operator", operator))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// createTracingMiddleware continues b3 traces from the caller and echoes the context back.
// The span is renamed after the matched route once the router has run.
func createTracingMiddleware() func(http.Handler) http.Handler {
	propagator := b3.New()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.Tracer("vehicle-bridge").Start(ctx, "http.request",
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.user_agent", r.UserAgent()),
					attribute.String("http.remote_addr", r.RemoteAddr),
					attribute.String("component", "http-server"),
				),
			)
			defer span.End()

			r = r.WithContext(ctx)
			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			recorder := newStatusRecorder(w)
			next.ServeHTTP(recorder, r)

			if r.Pattern != "" {
				span.SetName(r.Pattern)
			}
			span.SetAttributes(attribute.Int("http.status_code", recorder.statusCode))
		})
	}
}

func GetSpanFromContext(r *http.Request) trace.Span {
	return trace.SpanFromContext(r.Context())
}

// statusRecorder remembers the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *statusRecorder) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working behind the middlewares.
func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, errHijackNotSupported
}
