package workers

import (
	"context"
	"log/slog"
	"time"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/vehicle/usecases"
)

func NewSnapshotMirrorWorker(
	ticker *time.Ticker,
	service usecases.VehicleService,
	stateCache usecases.VehicleStateCache,
	broker async.InternalBroker,
) *SnapshotMirrorWorker {
	return &SnapshotMirrorWorker{
		ticker:     ticker,
		service:    service,
		stateCache: stateCache,
		broker:     broker,
	}
}

var _ async.Worker = &SnapshotMirrorWorker{}

// SnapshotMirrorWorker keeps the state cache in line with the process model. Queued model
// changes are written as one snapshot; the ticker refreshes the entry before it expires.
type SnapshotMirrorWorker struct {
	ticker     *time.Ticker
	service    usecases.VehicleService
	stateCache usecases.VehicleStateCache
	broker     async.InternalBroker
}

func (w *SnapshotMirrorWorker) Run(ctx context.Context, done func()) {
	defer done()

	subscription, err := w.broker.Subscribe(usecases.VehicleEventsTopic)
	if err != nil {
		slog.Error("subscribing to vehicle events", slog.Any("error", err))
		return
	}
	defer w.broker.Unsubscribe(usecases.VehicleEventsTopic, subscription)

	w.mirror(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("snapshot mirror worker cancelled")
			return
		case <-w.ticker.C:
			w.mirror(ctx)
		case _, ok := <-subscription.Receiver:
			if !ok {
				return
			}
			drain(subscription.Receiver)
			w.mirror(ctx)
		}
	}
}

func drain(receiver <-chan async.BrokerMessage) {
	for {
		select {
		case _, ok := <-receiver:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (w *SnapshotMirrorWorker) mirror(ctx context.Context) {
	snapshot := w.service.Snapshot()
	if err := w.stateCache.SetSnapshot(ctx, snapshot); err != nil {
		slog.Error("mirroring vehicle snapshot",
			slog.String("vehicle", snapshot.Settings.Name),
			slog.Any("error", err))
	}
}

func (w *SnapshotMirrorWorker) Shutdown() {
	w.ticker.Stop()
}
