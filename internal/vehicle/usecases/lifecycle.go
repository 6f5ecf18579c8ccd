package usecases

import (
	"log/slog"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

// Enable creates the channel to the vehicle. Enabling an enabled engine does nothing.
func (e *Engine) Enable() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model.IsEnabled() {
		return
	}

	settings := e.model.Settings()
	e.channel = e.channels.New(e)
	e.channel.Initialize(settings.IdleTimeout, settings.LoggingEnabled)
	e.connection = domain.ConnectionDisconnected
	e.model.SetEnabled(true)
	slog.Info("vehicle driver enabled", slog.String("vehicle", settings.Name))
}

// Disable stops polling, drops every queued request and tracked command and terminates the
// channel. The vehicle is left idle in an unknown state. Disabling a disabled engine does nothing.
func (e *Engine) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.model.IsEnabled() {
		return
	}

	if e.poller.Running() {
		e.poller.Stop()
	}
	e.poller.Reset()
	e.tracker.Clear()
	e.queue.Clear()

	if e.channel != nil {
		e.channel.Terminate()
		e.channel = nil
	}
	e.connection = domain.ConnectionDisabled
	e.model.SetEnabled(false)
	e.model.SetConnected(false)
	e.model.SetVehicleIdle(true)
	e.model.SetVehicleState(domain.VehicleStateUnknown)
	slog.Info("vehicle driver disabled", slog.String("vehicle", e.model.Name()))
}

func (e *Engine) Connect() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.channel == nil {
		slog.Warn("channel manager not present, not connecting", slog.String("vehicle", e.model.Name()))
		return
	}

	if e.connection == domain.ConnectionConnected || e.connection == domain.ConnectionConnecting || e.isVehicleConnectedLocked() {
		slog.Debug("already connected or connecting, not connecting",
			slog.String("vehicle", e.model.Name()),
			slog.String("connection", string(e.connection)))
		return
	}

	settings := e.model.Settings()
	slog.Info("connecting to vehicle",
		slog.String("vehicle", settings.Name),
		slog.String("host", settings.Host),
		slog.Int("port", settings.Port))
	e.connection = domain.ConnectionConnecting
	e.channel.Connect(settings.Host, settings.Port)
}

func (e *Engine) Disconnect() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.channel == nil {
		slog.Warn("channel manager not present, not disconnecting", slog.String("vehicle", e.model.Name()))
		return
	}
	e.channel.Disconnect()
}

func (e *Engine) OnConnect() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.model.IsEnabled() {
		return
	}

	slog.Info("connected to vehicle", slog.String("vehicle", e.model.Name()))
	e.connection = domain.ConnectionConnected
	e.model.SetConnected(true)

	// A request left over from the previous connection is sent again before the initial
	// state request is queued behind it.
	e.queue.TrySendNext()
	e.queue.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))
}

func (e *Engine) OnFailedConnectionAttempt() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.model.IsEnabled() {
		return
	}

	settings := e.model.Settings()
	slog.Warn("connection attempt failed",
		slog.String("vehicle", settings.Name),
		slog.String("host", settings.Host),
		slog.Int("port", settings.Port))
	e.connection = domain.ConnectionDisconnected
	e.model.SetConnected(false)

	if settings.ReconnectOnConnectionLoss && e.channel != nil {
		e.channel.ScheduleConnect(settings.Host, settings.Port, settings.ReconnectDelay)
	}
}

func (e *Engine) OnDisconnect() {
	e.mu.Lock()
	defer e.mu.Unlock()

	settings := e.model.Settings()
	slog.Info("disconnected from vehicle", slog.String("vehicle", settings.Name))

	enabled := e.model.IsEnabled()
	if enabled {
		e.connection = domain.ConnectionDisconnected
	}
	e.model.SetConnected(false)
	e.model.SetVehicleIdle(true)
	e.model.SetVehicleState(domain.VehicleStateUnknown)

	if enabled && settings.ReconnectOnConnectionLoss && e.channel != nil {
		e.channel.ScheduleConnect(settings.Host, settings.Port, settings.ReconnectDelay)
	}
}

func (e *Engine) OnIdle() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.model.IsEnabled() {
		return
	}

	settings := e.model.Settings()
	slog.Info("vehicle idle", slog.String("vehicle", settings.Name))
	e.model.SetVehicleIdle(true)
	if settings.DisconnectOnVehicleIdle && e.channel != nil {
		e.channel.Disconnect()
	}
}

func (e *Engine) OnIncomingTelegram(resp telegrams.Response) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.model.IsEnabled() {
		return
	}

	e.model.SetVehicleIdle(false)
	e.count(_metricKeyTelegramsReceived)

	if !e.queue.TryMatch(resp) {
		e.count(_metricKeyTelegramsUnmatched)
		return
	}

	if state, ok := resp.(telegrams.StateResponse); ok {
		e.poller.ResponseReceived()
		e.executor.Submit(func() { e.applyStateUpdate(state) })
	}

	e.queue.TrySendNext()
}
