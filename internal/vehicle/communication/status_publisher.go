package communication

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/mqtt"
	"vehicle-bridge/internal/infra/node"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/usecases"
)

const (
	AvailabilityOnline  = "online"
	AvailabilityOffline = "offline"

	// OfflineWillPayload is AvailabilityOffline as the JSON published by mqtt.Client.
	OfflineWillPayload = `"` + AvailabilityOffline + `"`
)

func StatusTopic(vehicle string) string {
	return fmt.Sprintf("vehicles/%s/status", vehicle)
}

func EventsTopic(vehicle string) string {
	return fmt.Sprintf("vehicles/%s/events", vehicle)
}

// AvailabilityTopic carries the retained online/offline marker, also used as the MQTT will.
func AvailabilityTopic(vehicle string) string {
	return fmt.Sprintf("vehicles/%s/availability", vehicle)
}

type StatusMessage struct {
	Bridge     node.Node              `json:"bridge"`
	Connection domain.ConnectionState `json:"connection"`
	Vehicle    domain.VehicleSnapshot `json:"vehicle"`
}

type CommandExecutedMessage struct {
	Event       string    `json:"event"`
	CommandID   string    `json:"command_id"`
	Destination string    `json:"destination"`
	Operation   string    `json:"operation"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewStatusPublisher(vehicle string, service usecases.VehicleService, client mqtt.Client, broker async.InternalBroker) *StatusPublisher {
	return &StatusPublisher{
		vehicle: vehicle,
		service: service,
		client:  client,
		broker:  broker,
	}
}

var _ async.Worker = (*StatusPublisher)(nil)

// StatusPublisher mirrors the vehicle on MQTT: a retained status document refreshed on every
// model change and one event per executed command. Bursts of changes produce one status.
type StatusPublisher struct {
	vehicle string
	service usecases.VehicleService
	client  mqtt.Client
	broker  async.InternalBroker
}

func (p *StatusPublisher) Run(ctx context.Context, done func()) {
	defer done()

	subscription, err := p.broker.Subscribe(usecases.VehicleEventsTopic)
	if err != nil {
		slog.Error("subscribing to vehicle events", slog.Any("error", err))
		return
	}
	defer func() {
		if err := p.broker.Unsubscribe(usecases.VehicleEventsTopic, subscription); err != nil {
			slog.Warn("unsubscribing from vehicle events", slog.Any("error", err))
		}
	}()

	p.publishAvailability(AvailabilityOnline)
	p.publishStatus()

	for {
		select {
		case <-ctx.Done():
			p.publishAvailability(AvailabilityOffline)
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				return
			}
			p.handle(msg)
			if p.drain(subscription.Receiver) {
				p.publishStatus()
			}
		}
	}
}

// drain handles the messages already queued and reports whether the status must be refreshed.
func (p *StatusPublisher) drain(receiver <-chan async.BrokerMessage) bool {
	for {
		select {
		case msg, ok := <-receiver:
			if !ok {
				return false
			}
			p.handle(msg)
		default:
			return true
		}
	}
}

func (p *StatusPublisher) handle(msg async.BrokerMessage) {
	if msg.Event != string(domain.AttributeCommandExecuted) {
		return
	}
	cmd, ok := msg.Value.(domain.MovementCommand)
	if !ok {
		slog.Warn("unexpected command executed payload", slog.String("type", fmt.Sprintf("%T", msg.Value)))
		return
	}

	event := CommandExecutedMessage{
		Event:       msg.Event,
		CommandID:   cmd.ID.String(),
		Destination: cmd.DestinationPoint,
		Operation:   cmd.Operation,
		Timestamp:   time.Now(),
	}
	if err := p.client.Publish(EventsTopic(p.vehicle), event); err != nil {
		slog.Error("publishing command executed",
			slog.String("vehicle", p.vehicle),
			slog.String("command_id", event.CommandID),
			slog.Any("error", err))
	}
}

func (p *StatusPublisher) publishStatus() {
	status := StatusMessage{
		Bridge:     node.GetNodeInfo(),
		Connection: p.service.ConnectionState(),
		Vehicle:    p.service.Snapshot(),
	}
	if err := p.client.PublishRetained(StatusTopic(p.vehicle), status); err != nil {
		slog.Error("publishing vehicle status",
			slog.String("vehicle", p.vehicle),
			slog.Any("error", err))
	}
}

func (p *StatusPublisher) publishAvailability(availability string) {
	if err := p.client.PublishRetained(AvailabilityTopic(p.vehicle), availability); err != nil {
		slog.Error("publishing availability",
			slog.String("vehicle", p.vehicle),
			slog.String("availability", availability),
			slog.Any("error", err))
	}
}

func (p *StatusPublisher) Shutdown() {
	slog.Debug("status publisher shutdown", slog.String("vehicle", p.vehicle))
}
