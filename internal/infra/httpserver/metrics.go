package httpserver

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const unmatchedRoute = "unmatched"

// requestMetrics records one duration sample and one count per request, labelled with the
// route pattern the router matched. Path values such as command ids never become labels.
type requestMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

func newRequestMetrics(meter metric.Meter) (*requestMetrics, error) {
	duration, err := meter.Float64Histogram(
		"vehicle_bridge.http.request.duration.seconds",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter(
		"vehicle_bridge.http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter(
		"vehicle_bridge.http.requests.active",
		metric.WithDescription("Number of HTTP requests currently being processed"),
	)
	if err != nil {
		return nil, err
	}

	return &requestMetrics{duration: duration, total: total, active: active}, nil
}

// MetricsMiddleware must wrap the router directly so that the matched pattern is visible
// once the router returns.
func MetricsMiddleware() func(http.Handler) http.Handler {
	metrics, err := newRequestMetrics(otel.GetMeterProvider().Meter("vehicle-bridge"))
	if err != nil {
		panic(err)
	}
	return metrics.middleware
}

func (m *requestMetrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := metric.WithAttributes(attribute.String("http.method", r.Method))

		m.active.Add(r.Context(), 1, method)
		defer m.active.Add(r.Context(), -1, method)

		wrappedWriter := newStatusRecorder(w)
		next.ServeHTTP(wrappedWriter, r)

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", routeOf(r)),
			attribute.Int("http.status_code", wrappedWriter.statusCode),
		)
		m.duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
		m.total.Add(r.Context(), 1, attrs)
	})
}

func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	return r.Pattern
}
