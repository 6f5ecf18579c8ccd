package driver

import (
	"context"
	"fmt"
	"net"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"time"
	"vehicle-bridge/cmd/bridge/wire"
	"vehicle-bridge/cmd/config"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/httpserver"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/dto"
	"vehicle-bridge/internal/vehicle/simulation"
	"vehicle-bridge/internal/vehicle/telegrams"
)

// Bridge runs a simulated vehicle and a bridge wired against it inside the test process.
type Bridge struct {
	Simulator *simulation.Simulator
	App       *wire.Application

	broker  *async.LocalBroker
	server  *httptest.Server
	cleanup func()
	cancel  context.CancelFunc
	simDone chan struct{}
	workers []async.Worker
	running sync.WaitGroup
}

// StartBridge boots the simulator on a free port and points a bridge configured from
// configPath at it.
func StartBridge(configPath string) (*Bridge, error) {
	simulator, err := simulation.NewSimulator(simulation.Config{
		Addr:            "127.0.0.1:0",
		InitialPosition: 1,
		InitialLoad:     telegrams.LoadEmpty,
		OrderDuration:   300 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	port := simulator.Addr().(*net.TCPAddr).Port
	if err := os.Setenv("VEHICLE_BRIDGE_VEHICLE_HOST", "127.0.0.1"); err != nil {
		return nil, err
	}
	if err := os.Setenv("VEHICLE_BRIDGE_VEHICLE_PORT", strconv.Itoa(port)); err != nil {
		return nil, err
	}
	cfg := config.LoadConfig(configPath)

	broker := async.NewLocalBroker()
	app, cleanup, err := wire.InitializeApplication(broker, nil)
	if err != nil {
		simulator.Shutdown()
		return nil, fmt.Errorf("wiring bridge: %w", err)
	}

	handler := httpserver.NewServer(
		httpserver.ServerOpts{Address: cfg.HTTP.Address, AllowedOrigins: cfg.HTTP.AllowedOrigins},
		app.VehicleController,
		app.EventsController,
		app.JournalController,
	).Handler()

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bridge{
		Simulator: simulator,
		App:       app,
		broker:    broker,
		server:    httptest.NewServer(handler),
		cleanup:   cleanup,
		cancel:    cancel,
		simDone:   make(chan struct{}),
		workers:   []async.Worker{app.SnapshotMirror, app.CommandIntake, app.Replicator},
	}
	go simulator.Run(ctx, func() { close(b.simDone) })
	for _, worker := range b.workers {
		b.running.Add(1)
		go worker.Run(ctx, b.running.Done)
	}

	app.Engine.Enable()
	app.Engine.Connect()
	return b, nil
}

// PublishCommand plays the dispatcher and puts a command on the commands topic.
func (b *Bridge) PublishCommand(ctx context.Context, command dto.Command) error {
	publisher, err := b.App.Publishers.New(dto.TopicVehicleCommands, dto.Command{})
	if err != nil {
		return err
	}
	return publisher.Publish(ctx, pubsub.Key(command.Vehicle), command)
}

func (b *Bridge) URL() string {
	return b.server.URL
}

func (b *Bridge) Stop() {
	b.App.Engine.Disable()
	b.server.Close()
	b.App.EventsController.Shutdown()
	b.cancel()
	b.Simulator.Shutdown()
	<-b.simDone
	b.running.Wait()
	for _, worker := range b.workers {
		worker.Shutdown()
	}
	b.App.Scheduler.Stop()
	b.App.Executor.Stop()
	b.cleanup()
	b.broker.Stop()
}
