package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type pingController struct{}

func (pingController) AddRoutes(router *http.ServeMux) {
	router.HandleFunc("GET /ping/{name}", func(w http.ResponseWriter, r *http.Request) {
		ReplyJSONResponse(w, http.StatusOK, map[string]any{
			"name":  GetPathParam(r, "name"),
			"times": GetQueryParamInt(r, "times", 1),
		})
	})
}

var _ = ginkgo.Describe("HTTPServer", func() {
	var (
		tp       *trace.TracerProvider
		recorder *tracetest.SpanRecorder
	)

	ginkgo.BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		tp = trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
		otel.SetTracerProvider(tp)
	})

	ginkgo.AfterEach(func() {
		tp.Shutdown(context.Background())
	})

	ginkgo.Context("TracingMiddleware", func() {
		ginkgo.It("should add span to request context", func() {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				span := GetSpanFromContext(r)
				gomega.Expect(span.SpanContext().HasSpanID()).To(gomega.BeTrue())
				w.WriteHeader(http.StatusAccepted)
			})

			req := httptest.NewRequest("GET", "/test", nil)
			rec := httptest.NewRecorder()
			createTracingMiddleware()(testHandler).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusAccepted))
			gomega.Expect(recorder.Ended()).To(gomega.HaveLen(1))
			gomega.Expect(recorder.Ended()[0].Attributes()).To(
				gomega.ContainElement(attribute.Int("http.status_code", http.StatusAccepted)))
		})

		ginkgo.It("should return a span even when no span is in context", func() {
			req := httptest.NewRequest("GET", "/test", nil)
			gomega.Expect(GetSpanFromContext(req)).NotTo(gomega.BeNil())
		})
	})

	ginkgo.Context("OperatorHeaderMiddleware", func() {
		ginkgo.It("should tag the span with the operator", func() {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := createTracingMiddleware()(createOperatorHeaderMiddleware()(testHandler))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("X-Operator", "night-shift")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			gomega.Expect(recorder.Ended()[0].Attributes()).To(
				gomega.ContainElement(attribute.String("operator", "night-shift")))
		})
	})

	ginkgo.Context("NewServer", func() {
		var handler http.Handler

		ginkgo.BeforeEach(func() {
			handler = NewServer(ServerOpts{Address: ":0"}, pingController{}).Handler()
		})

		ginkgo.It("should answer health checks", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("success"))
		})

		ginkgo.It("should name the request span after the matched route", func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ping/vehicle-01", nil))

			gomega.Expect(recorder.Ended()).To(gomega.HaveLen(1))
			gomega.Expect(recorder.Ended()[0].Name()).To(gomega.Equal("GET /ping/{name}"))
		})

		ginkgo.It("should route to controllers with path parameters", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/ping/vehicle-01?times=3", nil))

			var body map[string]any
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("name", "vehicle-01"))
			gomega.Expect(body).To(gomega.HaveKeyWithValue("times", float64(3)))
		})

		ginkgo.It("should expose prometheus metrics", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Context("statusRecorder", func() {
		ginkgo.It("should pass hijacking through", func() {
			wrapped := newStatusRecorder(httptest.NewRecorder())

			_, isHijacker := any(wrapped).(http.Hijacker)
			gomega.Expect(isHijacker).To(gomega.BeTrue())

			_, _, err := wrapped.Hijack()
			gomega.Expect(err).To(gomega.MatchError(errHijackNotSupported))
		})
	})

	ginkgo.Context("DecodeJSONBody", func() {
		ginkgo.It("should reject an empty body", func() {
			var placeholder map[string]any
			req := httptest.NewRequest("POST", "/", http.NoBody)

			gomega.Expect(DecodeJSONBody(req, &placeholder)).To(gomega.MatchError(ErrEmptyBody))
		})

		ginkgo.It("should reject malformed json", func() {
			var placeholder map[string]any
			req := httptest.NewRequest("POST", "/", strings.NewReader("{\"destination\":"))

			gomega.Expect(DecodeJSONBody(req, &placeholder)).To(gomega.MatchError(gomega.ContainSubstring("unmarshaling json")))
		})
	})
})
