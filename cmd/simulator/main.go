package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"vehicle-bridge/internal/logger"
	"vehicle-bridge/internal/vehicle/simulation"
	"vehicle-bridge/internal/vehicle/telegrams"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	defaults := simulation.DefaultConfig()
	addr := pflag.String("addr", defaults.Addr, "tcp address the simulated vehicle listens on")
	position := pflag.Uint16("position", defaults.InitialPosition, "initial position id")
	load := pflag.String("load", defaults.InitialLoad.String(), "initial load state: empty or full")
	orderDuration := pflag.Duration("order-duration", defaults.OrderDuration, "time spent on each order")
	debug := pflag.Bool("debug", false, "enable debug logging")
	pflag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	zapLogger, err := logger.New(logger.Options{Level: level, Development: *debug})
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()
	slog.SetDefault(slog.New(logger.NewHandler(zapLogger.Core())))
	slog.Info("vehicle simulator starting")

	simulator, err := simulation.NewSimulator(simulation.Config{
		Addr:            *addr,
		InitialPosition: *position,
		InitialLoad:     telegrams.ParseLoadState(*load),
		OrderDuration:   *orderDuration,
	})
	if err != nil {
		zapLogger.Fatal("starting simulator", zap.Error(err))
	}
	slog.Info("listening", slog.String("addr", simulator.Addr().String()))

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go simulator.Run(ctx, func() { close(done) })

	<-signalChannel
	cancel()
	simulator.Shutdown()
	<-done
	slog.Info("good bye!!!")
}
