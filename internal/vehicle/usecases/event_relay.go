package usecases

import (
	"context"
	"errors"
	"log/slog"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/vehicle/domain"
)

const VehicleEventsTopic async.BrokerTopicName = "vehicle_events"

// EventRelay forwards every process model change to the internal broker.
type EventRelay struct {
	broker async.InternalBroker
}

func NewEventRelay(model *domain.ProcessModel, broker async.InternalBroker) *EventRelay {
	relay := &EventRelay{broker: broker}
	model.AddListener(relay.onModelEvent)
	return relay
}

func (r *EventRelay) onModelEvent(event domain.ModelEvent) {
	err := r.broker.Publish(context.Background(), VehicleEventsTopic, async.BrokerMessage{
		Event: string(event.Attribute),
		Value: event.Value,
	})
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		slog.Error("failed to relay vehicle event",
			slog.String("event", string(event.Attribute)),
			slog.Any("error", err))
	}
}
