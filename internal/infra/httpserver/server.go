package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/attribute"

	_ "net/http/pprof"
)

const (
	_shutdownTimeout   = 10 * time.Second
	_readHeaderTimeout = 5 * time.Second
	_corsMaxAge        = 300
)

type Server interface {
	Run()
	Shutdown()
}

var _ Server = &StandardServer{}

type ServerOpts struct {
	Address        string
	AllowedOrigins []string
}

// StandardServer serves the vehicle API, health and prometheus endpoints.
type StandardServer struct {
	server *http.Server
}

func NewServer(opts ServerOpts, controllers ...Controller) *StandardServer {
	router := http.NewServeMux()
	router.Handle("GET /healthz", healthz())
	router.Handle("GET /metrics", promhttp.Handler())
	for _, controller := range controllers {
		controller.AddRoutes(router)
	}

	corsPolicy := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", operatorHeader},
		MaxAge:         _corsMaxAge,
	})

	handler := corsPolicy.Handler(
		createTracingMiddleware()(
			createOperatorHeaderMiddleware()(
				MetricsMiddleware()(router),
			),
		),
	)

	return &StandardServer{
		server: &http.Server{
			Addr:              opts.Address,
			Handler:           handler,
			ReadHeaderTimeout: _readHeaderTimeout,
		},
	}
}

func (s *StandardServer) Run() {
	slog.Info("http server listening", slog.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func (s *StandardServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown", slog.Any("error", err))
	}
}

// Handler exposes the composed handler, middlewares included.
func (s *StandardServer) Handler() http.Handler {
	return s.server.Handler
}

func healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		GetSpanFromContext(r).SetAttributes(attribute.String("endpoint", "healthz"))
		ReplyJSONResponse(w, http.StatusOK, map[string]string{"status": "success"})
	}
}
