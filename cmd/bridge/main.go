package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"vehicle-bridge/cmd/bridge/wire"
	"vehicle-bridge/cmd/config"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/httpserver"
	"vehicle-bridge/internal/infra/mqtt"
	"vehicle-bridge/internal/infra/node"
	"vehicle-bridge/internal/vehicle/communication"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func main() {
	configPath := pflag.String("config-path", "", "directory holding bridge.yaml")
	pflag.Parse()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	config := config.LoadConfig(paths...)

	level := logLevelMapping[config.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs([]slog.Attr{slog.String("version", node.Version)})
	slog.SetDefault(slog.New(handler))
	slog.Info("vehicle bridge is initializing", slog.String("vehicle", config.Vehicle.Name))
	slog.Debug("config loaded", "data", config)

	shutdownOtel := startOTel()

	internalBroker := async.NewLocalBroker()
	mqttClient := newMQTTClient(config)

	app, cleanup, err := wire.InitializeApplication(internalBroker, mqttClient)
	if err != nil {
		panic(err)
	}
	prometheus.MustRegister(app.Collector)

	httpServer := httpserver.NewServer(
		httpserver.ServerOpts{
			Address:        config.HTTP.Address,
			AllowedOrigins: config.HTTP.AllowedOrigins,
		},
		app.VehicleController,
		app.EventsController,
		app.JournalController,
	)
	go httpServer.Run()

	appCtx, cancelFn := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	workers := []async.Worker{app.SnapshotMirror}
	if mqttClient != nil {
		workers = append(workers, app.StatusPublisher)
	}
	if config.PubSub.Enabled {
		workers = append(workers, app.CommandIntake, app.Replicator)
	}
	for _, worker := range workers {
		wg.Add(1)
		go worker.Run(appCtx, wg.Done)
	}

	if config.Vehicle.EnableOnStart {
		app.Engine.Enable()
		if config.Vehicle.ConnectOnStart {
			app.Engine.Connect()
		}
	}

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	<-signalChannel
	slog.Info("shutting down")

	app.Engine.Disable()
	httpServer.Shutdown()
	app.EventsController.Shutdown()

	cancelFn()
	wg.Wait()
	for _, worker := range workers {
		worker.Shutdown()
	}

	app.Scheduler.Stop()
	app.Executor.Stop()
	cleanup()
	internalBroker.Stop()
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if err := shutdownOtel(); err != nil {
		slog.Error("otel shutdown", slog.Any("error", err))
	}

	slog.Info("good bye!!!")
	os.Exit(0)
}

// newMQTTClient connects to the status broker. The bridge keeps running without status
// publishing when mqtt is disabled or the broker is unreachable.
func newMQTTClient(config config.AppConfig) mqtt.Client {
	if !config.MQTT.Enabled {
		return nil
	}

	client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
		Broker:      config.MQTT.Broker,
		ClientID:    node.GetNodeInfo().ClientID(config.MQTT.ClientIDPrefix),
		Username:    config.MQTT.Username,
		Password:    config.MQTT.Password, //pragma: allowlist secret
		WillTopic:   communication.AvailabilityTopic(config.Vehicle.Name),
		WillPayload: communication.OfflineWillPayload,
	})
	if err != nil {
		slog.Error("mqtt status publishing disabled", slog.Any("error", err))
		return nil
	}
	return client
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

type ShutdownFunc func() error

const (
	_defautlEndpoint = "localhost:4317"
	_collectPeriod   = 30 * time.Second
	_collectTimeout  = 35 * time.Second
	_minimumInterval = time.Minute
)

var (
	_histogramBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}
)

func startOTel() ShutdownFunc {
	slog.Info("starting OTel providers")
	shutdown, err := otelStart(context.Background())
	if err != nil {
		panic(err)
	}

	return shutdown
}

func otelStart(ctx context.Context) (ShutdownFunc, error) {
	metricsShutdownFunc, err := startMetricsProvider(ctx)
	if err != nil {
		return nil, err
	}

	traceShutdownFunc, err := startTraceProvider(ctx)
	if err != nil {
		return nil, err
	}

	return func() error {
		if err := metricsShutdownFunc(); err != nil {
			return err
		}
		return traceShutdownFunc()
	}, nil
}

func otelEndpoint() string {
	if value, ok := os.LookupEnv("VEHICLE_BRIDGE_OTELCOL_ENDPOINT"); ok {
		return value
	}
	return _defautlEndpoint
}

func serviceResource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("vehicle-bridge"),
		semconv.ServiceVersionKey.String(node.Version),
		semconv.ServiceInstanceIDKey.String(node.GetNodeInfo().ID),
	)
}

func startTraceProvider(ctx context.Context) (ShutdownFunc, error) {
	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(otelEndpoint()),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(serviceResource()),
	)
	otel.SetTracerProvider(tp)

	return func() error {
		return tp.Shutdown(ctx)
	}, nil
}

func startMetricsProvider(ctx context.Context) (ShutdownFunc, error) {
	exp, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(otelEndpoint()),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	mp := newMeterProvider(exp)
	otel.SetMeterProvider(mp)

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval))
	if err != nil {
		return nil, err
	}

	return func() error {
		return mp.Shutdown(ctx)
	}, nil
}

func newMeterProvider(metricExporter metric.Exporter) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithResource(serviceResource()),
		metric.WithReader(
			metric.NewPeriodicReader(
				metricExporter,
				metric.WithTimeout(_collectTimeout),
				metric.WithInterval(_collectPeriod))),
		metric.WithView(metric.NewView(
			metric.Instrument{
				Name: "*",
				Kind: metric.InstrumentKindHistogram,
			},
			metric.Stream{
				Aggregation: metric.AggregationExplicitBucketHistogram{
					Boundaries: _histogramBuckets,
				},
			},
		)),
	)
}
