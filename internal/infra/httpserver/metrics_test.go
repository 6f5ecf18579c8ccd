package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var _ = ginkgo.Describe("Metrics", func() {
	var (
		reader  *sdkmetric.ManualReader
		handler http.Handler
	)

	ginkgo.BeforeEach(func() {
		reader = sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		metrics, err := newRequestMetrics(provider.Meter("vehicle-bridge"))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		router := http.NewServeMux()
		router.HandleFunc("GET /vehicle/commands/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		handler = metrics.middleware(router)
	})

	totals := func() map[string]int64 {
		var rm metricdata.ResourceMetrics
		gomega.Expect(reader.Collect(context.Background(), &rm)).To(gomega.Succeed())

		counts := map[string]int64{}
		for _, scope := range rm.ScopeMetrics {
			for _, m := range scope.Metrics {
				if m.Name != "vehicle_bridge.http.requests.total" {
					continue
				}
				sum, ok := m.Data.(metricdata.Sum[int64])
				gomega.Expect(ok).To(gomega.BeTrue())
				for _, point := range sum.DataPoints {
					route, _ := point.Attributes.Value(attribute.Key("http.route"))
					status, _ := point.Attributes.Value(attribute.Key("http.status_code"))
					counts[route.AsString()+" "+status.Emit()] += point.Value
				}
			}
		}
		return counts
	}

	ginkgo.When("a request matches a route", func() {
		ginkgo.It("labels it with the route pattern, not the path", func() {
			for _, id := range []string{"dispatch-1", "dispatch-2"} {
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicle/commands/"+id, nil))
				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
			}

			gomega.Expect(totals()).To(gomega.Equal(map[string]int64{
				"GET /vehicle/commands/{id} 404": 2,
			}))
		})
	})

	ginkgo.When("no route matches", func() {
		ginkgo.It("uses the unmatched label", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

			gomega.Expect(totals()).To(gomega.HaveKeyWithValue(unmatchedRoute+" 404", int64(1)))
		})
	})

})
