package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	_metricKeyTelegramsSent      = "telegrams.sent"
	_metricKeyTelegramsReceived  = "telegrams.received"
	_metricKeyTelegramsUnmatched = "telegrams.unmatched"
	_metricKeyCommandsEnqueued   = "commands.enqueued"
	_metricKeyCommandsRejected   = "commands.rejected"
	_metricKeyCommandsExecuted   = "commands.executed"
)

// Engine drives a single vehicle. Every operation and every channel event is handled under
// one lock; state updates derived from responses run on the kernel executor.
type Engine struct {
	mu sync.Mutex

	model          *domain.ProcessModel
	channels       ChannelManagerFactory
	channel        ChannelManager
	queue          RequestQueue
	mapper         OrderMapper
	executor       KernelExecutor
	poller         *Poller
	tracker        *CommandTracker
	requestCounter *telegrams.BoundedCounter
	connection     domain.ConnectionState

	metricCounters map[string]metric.Int64Counter
}

var _ VehicleService = (*Engine)(nil)
var _ ConnectionEventListener = (*Engine)(nil)

func NewEngine(
	model *domain.ProcessModel,
	channels ChannelManagerFactory,
	queues RequestQueueFactory,
	mapper OrderMapper,
	executor KernelExecutor,
	scheduler Scheduler,
	tracker *CommandTracker,
) *Engine {
	e := &Engine{
		model:          model,
		channels:       channels,
		mapper:         mapper,
		executor:       executor,
		tracker:        tracker,
		requestCounter: telegrams.NewRequestCounter(),
		connection:     domain.ConnectionDisabled,
		metricCounters: make(map[string]metric.Int64Counter),
	}
	e.queue = queues.New(lockedSender{e})
	e.poller = NewPoller(scheduler, &e.mu, e.requestState)
	e.setupOtelCounters()
	model.AddListener(e.onModelChange)
	return e
}

func (e *Engine) setupOtelCounters() {
	meter := otel.Meter("vehicle_bridge")
	for _, key := range []string{
		_metricKeyTelegramsSent,
		_metricKeyTelegramsReceived,
		_metricKeyTelegramsUnmatched,
		_metricKeyCommandsEnqueued,
		_metricKeyCommandsRejected,
		_metricKeyCommandsExecuted,
	} {
		counter, _ := meter.Int64Counter(
			fmt.Sprintf("%s.%s", "vehicle_bridge", key),
			metric.WithDescription(fmt.Sprintf("vehicle_bridge %s counter", key)),
		)
		e.metricCounters[key] = counter
	}
}

func (e *Engine) count(key string, attrs ...attribute.KeyValue) {
	attrs = append(attrs, attribute.String("vehicle", e.model.Name()))
	e.metricCounters[key].Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

// SendCommand maps cmd to an order telegram and queues it. Commands that cannot be mapped are
// dropped and reported with ErrInvalidCommand.
func (e *Engine) SendCommand(ctx context.Context, cmd domain.MovementCommand) error {
	_, span := otel.Tracer("vehicle_bridge").Start(ctx, "engine.send_command",
		trace.WithAttributes(
			attribute.String("command.id", cmd.ID.String()),
			attribute.String("command.destination", cmd.DestinationPoint),
			attribute.String("command.operation", cmd.Operation),
		),
	)
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	order, err := e.mapper.MapToOrder(cmd)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCommand) {
			err = fmt.Errorf("%w: %w", domain.ErrInvalidCommand, err)
		}
		slog.Error("failed to enqueue command",
			slog.String("vehicle", e.model.Name()),
			slog.String("command_id", cmd.ID.String()),
			slog.Any("error", err))
		span.RecordError(err)
		e.count(_metricKeyCommandsRejected)
		return fmt.Errorf("mapping command %s: %w", cmd.ID, err)
	}

	orderID := e.tracker.Track(cmd)
	order = order.WithOrderID(orderID)
	slog.Debug("enqueuing order request",
		slog.String("vehicle", e.model.Name()),
		slog.Int("order_id", int(order.OrderID())),
		slog.Int("destination_id", int(order.DestinationID())),
		slog.String("destination_action", order.DestinationAction().String()))

	e.queue.Enqueue(order)
	e.count(_metricKeyCommandsEnqueued)
	return nil
}

// SendRequest queues a raw request, as an operator would from a control panel.
func (e *Engine) SendRequest(req telegrams.Request) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue.Enqueue(req)
}

// ClearQueue forgets every command sent to the vehicle.
func (e *Engine) ClearQueue() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.Clear()
}

func (e *Engine) CanExecute(operations []string) domain.Explanation {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.model.IsEnabled() {
		return domain.Rejected(ReasonNotEnabled)
	}
	if !e.isVehicleConnectedLocked() {
		return domain.Rejected(ReasonNotConnected)
	}
	return CanExecute(e.model.Snapshot().LoadState(), operations)
}

func (e *Engine) Snapshot() domain.VehicleSnapshot {
	return e.model.Snapshot()
}

func (e *Engine) ConnectionState() domain.ConnectionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connection
}

func (e *Engine) PendingCommands() []PendingCommand {
	return e.tracker.Pending()
}

// PollingActive reports whether periodic state requests are scheduled.
func (e *Engine) PollingActive() bool {
	return e.poller.Running()
}

// AwaitingStateResponse reports whether a periodic state request is still unanswered.
func (e *Engine) AwaitingStateResponse() bool {
	return e.poller.ExpectingStateResponse()
}

func (e *Engine) UpdateSettings(update SettingsUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if update.Host != nil {
		e.model.SetVehicleHost(*update.Host)
	}
	if update.Port != nil {
		e.model.SetVehiclePort(*update.Port)
	}
	if update.IdleTimeout != nil {
		e.model.SetIdleTimeout(*update.IdleTimeout)
	}
	if update.ReconnectDelay != nil {
		e.model.SetReconnectDelay(*update.ReconnectDelay)
	}
	if update.ReconnectOnConnectionLoss != nil {
		e.model.SetReconnectOnConnectionLoss(*update.ReconnectOnConnectionLoss)
	}
	if update.DisconnectOnVehicleIdle != nil {
		e.model.SetDisconnectOnVehicleIdle(*update.DisconnectOnVehicleIdle)
	}
	if update.LoggingEnabled != nil {
		e.model.SetLoggingEnabled(*update.LoggingEnabled)
	}
	if update.PeriodicStateRequestsEnabled != nil {
		e.model.SetPeriodicStateRequestsEnabled(*update.PeriodicStateRequestsEnabled)
	}
	if update.StateRequestInterval != nil {
		e.model.SetStateRequestInterval(*update.StateRequestInterval)
	}
}

// onModelChange runs on the goroutine that changed the model. Every attribute handled here
// is only changed by the engine with e.mu held.
func (e *Engine) onModelChange(event domain.ModelEvent) {
	switch event.Attribute {
	case domain.AttributeConnected:
		if e.model.IsConnected() && e.channel != nil {
			e.channel.SetLoggingEnabled(e.model.Settings().LoggingEnabled)
		}
		e.updatePollingLocked()
	case domain.AttributePeriodicStateRequestsEnabled:
		e.updatePollingLocked()
	case domain.AttributeStateRequestInterval:
		if e.poller.Running() {
			e.poller.Stop()
			e.poller.Start(e.model.Settings().StateRequestInterval)
		}
	case domain.AttributeLoggingEnabled:
		if e.channel != nil {
			e.channel.SetLoggingEnabled(e.model.Settings().LoggingEnabled)
		}
	}
}

func (e *Engine) updatePollingLocked() {
	settings := e.model.Settings()
	if e.model.IsConnected() && settings.PeriodicStateRequestsEnabled {
		if !e.poller.Running() {
			e.poller.Start(settings.StateRequestInterval)
		}
		return
	}
	if e.poller.Running() {
		e.poller.Stop()
	}
}

// requestState is the poller's emission. It runs with e.mu held.
func (e *Engine) requestState() {
	e.queue.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))
}

func (e *Engine) isVehicleConnectedLocked() bool {
	return e.channel != nil && e.channel.IsConnected()
}

// sendTelegramLocked stamps req with a fresh request id and writes it to the channel.
func (e *Engine) sendTelegramLocked(req telegrams.Request) (telegrams.Request, bool) {
	if !e.isVehicleConnectedLocked() {
		slog.Debug("not connected, not sending request",
			slog.String("vehicle", e.model.Name()),
			slog.String("request", req.String()))
		return req, false
	}

	stamped := req.WithRequestID(e.requestCounter.Next())
	e.channel.Send(stamped)
	e.count(_metricKeyTelegramsSent)

	if order, ok := stamped.(telegrams.OrderRequest); ok {
		e.model.SetLastOrderSent(order)
	}
	return stamped, true
}

// lockedSender is handed to the request queue, which only calls it from engine methods
// already holding e.mu.
type lockedSender struct {
	e *Engine
}

func (s lockedSender) SendTelegram(req telegrams.Request) (telegrams.Request, bool) {
	return s.e.sendTelegramLocked(req)
}
