package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/dto"
	"vehicle-bridge/internal/vehicle/usecases"
)

func NewCommandIntakeWorker(
	vehicle string,
	service usecases.VehicleService,
	broker async.InternalBroker,
	consumerFactory pubsub.ConsumerFactory,
	publisherFactory pubsub.PublisherFactory,
) (*CommandIntakeWorker, error) {
	publisher, err := publisherFactory.New(dto.TopicCommandResults, dto.CommandResult{})
	if err != nil {
		return nil, fmt.Errorf("creating command results publisher: %w", err)
	}

	return &CommandIntakeWorker{
		vehicle:   vehicle,
		service:   service,
		broker:    broker,
		consumer:  consumerFactory.New(),
		publisher: publisher,
	}, nil
}

var _ async.Worker = &CommandIntakeWorker{}

// CommandIntakeWorker feeds movement commands from the dispatcher into the engine and reports
// back when each command is accepted, rejected and finally executed.
type CommandIntakeWorker struct {
	vehicle   string
	service   usecases.VehicleService
	broker    async.InternalBroker
	consumer  pubsub.Consumer
	publisher pubsub.Publisher
}

func (w *CommandIntakeWorker) Run(ctx context.Context, done func()) {
	slog.Debug("command intake worker started", slog.String("vehicle", w.vehicle))
	defer done()

	subscription, err := w.broker.Subscribe(usecases.VehicleEventsTopic)
	if err != nil {
		slog.Error("subscribing to vehicle events", slog.Any("error", err))
		return
	}
	defer w.broker.Unsubscribe(usecases.VehicleEventsTopic, subscription)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := w.consumer.Consume(ctx, dto.TopicVehicleCommands, w.handleCommand, dto.Command{}); err != nil {
			slog.Error("consuming vehicle commands", slog.Any("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("command intake worker cancelled")
			wg.Wait()
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				wg.Wait()
				return
			}
			if msg.Event != string(domain.AttributeCommandExecuted) {
				continue
			}
			cmd, ok := msg.Value.(domain.MovementCommand)
			if !ok {
				slog.Error("failed to cast executed command",
					slog.String("type", fmt.Sprintf("%T", msg.Value)),
					slog.String("expected", "domain.MovementCommand"))
				continue
			}
			w.publish(ctx, dto.NewCommandResult(w.vehicle, cmd, dto.CommandStatusExecuted))
		}
	}
}

func (w *CommandIntakeWorker) handleCommand(ctx context.Context, key pubsub.Key, message pubsub.Prototype) error {
	command, ok := message.(*dto.Command)
	if !ok {
		return fmt.Errorf("unexpected command message %T", message)
	}
	if command.Vehicle != "" && command.Vehicle != w.vehicle {
		slog.Debug("command for another vehicle skipped",
			slog.String("vehicle", command.Vehicle),
			slog.String("key", string(key)))
		return nil
	}

	cmd, err := command.ToDomain()
	if err != nil {
		w.publish(ctx, dto.NewCommandResult(w.vehicle, domain.MovementCommand{ID: domain.ID(command.ID)}, dto.CommandStatusRejected).
			WithReason(err.Error()))
		return nil
	}

	if err := w.service.SendCommand(ctx, cmd); err != nil {
		w.publish(ctx, dto.NewCommandResult(w.vehicle, cmd, dto.CommandStatusRejected).WithReason(err.Error()))
		if errors.Is(err, domain.ErrInvalidCommand) {
			return nil
		}
		return fmt.Errorf("sending command %s: %w", cmd.ID, err)
	}

	slog.Info("command accepted",
		slog.String("command_id", cmd.ID.String()),
		slog.String("destination", cmd.DestinationPoint))
	w.publish(ctx, dto.NewCommandResult(w.vehicle, cmd, dto.CommandStatusAccepted))
	return nil
}

func (w *CommandIntakeWorker) publish(ctx context.Context, result dto.CommandResult) {
	if err := w.publisher.Publish(ctx, pubsub.Key(w.vehicle), result); err != nil {
		slog.Error("publishing command result",
			slog.String("command_id", result.CommandID),
			slog.String("status", string(result.Status)),
			slog.Any("error", err))
	}
}

func (w *CommandIntakeWorker) Shutdown() {
	slog.Debug("command intake worker shutdown", slog.String("vehicle", w.vehicle))
}
