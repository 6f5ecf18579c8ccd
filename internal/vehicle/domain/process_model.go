package domain

import (
	"log/slog"
	"sync"
	"time"
	"vehicle-bridge/internal/vehicle/telegrams"
)

// Attribute names a property of the process model. Every change is announced to listeners
// under its attribute name.
type Attribute string

const (
	AttributeVehicleHost                  Attribute = "VEHICLE_HOST"
	AttributeVehiclePort                  Attribute = "VEHICLE_PORT"
	AttributeIdleTimeout                  Attribute = "VEHICLE_IDLE_TIMEOUT"
	AttributeReconnectDelay               Attribute = "RECONNECT_DELAY"
	AttributeReconnectOnConnectionLoss    Attribute = "RECONNECTING_ON_CONNECTION_LOSS"
	AttributeDisconnectOnVehicleIdle      Attribute = "DISCONNECTING_ON_VEHICLE_IDLE"
	AttributeLoggingEnabled               Attribute = "LOGGING_ENABLED"
	AttributePeriodicStateRequestsEnabled Attribute = "PERIODIC_STATE_REQUESTS_ENABLED"
	AttributeStateRequestInterval         Attribute = "STATE_REQUEST_INTERVAL"
	AttributeEnabled                      Attribute = "COMM_ADAPTER_ENABLED"
	AttributeConnected                    Attribute = "COMM_ADAPTER_CONNECTED"
	AttributeVehicleIdle                  Attribute = "VEHICLE_IDLE"
	AttributeVehicleState                 Attribute = "VEHICLE_STATE"
	AttributeVehiclePosition              Attribute = "VEHICLE_POSITION"
	AttributeCurrentState                 Attribute = "CURRENT_STATE"
	AttributePreviousState                Attribute = "PREVIOUS_STATE"
	AttributeLastOrderSent                Attribute = "LAST_ORDER_SENT"
	AttributeCommandExecuted              Attribute = "COMMAND_EXECUTED"
)

type ModelEvent struct {
	Attribute Attribute
	Value     any
	Timestamp time.Time
}

// ModelListener is called synchronously, on the goroutine that changed the model.
type ModelListener func(ModelEvent)

// VehicleSettings are the user adjustable connection and polling parameters.
type VehicleSettings struct {
	Name                         string        `json:"name"`
	Host                         string        `json:"host"`
	Port                         int           `json:"port"`
	IdleTimeout                  time.Duration `json:"idle_timeout"`
	ReconnectDelay               time.Duration `json:"reconnect_delay"`
	ReconnectOnConnectionLoss    bool          `json:"reconnect_on_connection_loss"`
	DisconnectOnVehicleIdle      bool          `json:"disconnect_on_vehicle_idle"`
	LoggingEnabled               bool          `json:"logging_enabled"`
	PeriodicStateRequestsEnabled bool          `json:"periodic_state_requests_enabled"`
	StateRequestInterval         time.Duration `json:"state_request_interval"`
}

func DefaultVehicleSettings() VehicleSettings {
	return VehicleSettings{
		Name:                         "vehicle",
		Host:                         "localhost",
		Port:                         2000,
		IdleTimeout:                  10 * time.Second,
		ReconnectDelay:               time.Second,
		ReconnectOnConnectionLoss:    true,
		DisconnectOnVehicleIdle:      true,
		LoggingEnabled:               false,
		PeriodicStateRequestsEnabled: true,
		StateRequestInterval:         500 * time.Millisecond,
	}
}

type OrderSummary struct {
	RequestID     uint16 `json:"request_id"`
	OrderID       uint16 `json:"order_id"`
	DestinationID uint16 `json:"destination_id"`
	Action        string `json:"action"`
}

func NewOrderSummary(order telegrams.OrderRequest) OrderSummary {
	return OrderSummary{
		RequestID:     order.RequestID(),
		OrderID:       order.OrderID(),
		DestinationID: order.DestinationID(),
		Action:        order.DestinationAction().String(),
	}
}

// VehicleSnapshot is a consistent copy of the process model.
type VehicleSnapshot struct {
	Settings      VehicleSettings          `json:"settings"`
	Enabled       bool                     `json:"enabled"`
	Connected     bool                     `json:"connected"`
	Idle          bool                     `json:"idle"`
	State         VehicleState             `json:"state"`
	Position      string                   `json:"position,omitempty"`
	CurrentState  *telegrams.StateResponse `json:"current_state,omitempty"`
	PreviousState *telegrams.StateResponse `json:"previous_state,omitempty"`
	LastOrderSent *OrderSummary            `json:"last_order_sent,omitempty"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// LoadState is the cargo state from the latest state response, unknown before the first one.
func (s VehicleSnapshot) LoadState() telegrams.LoadState {
	if s.CurrentState == nil {
		return telegrams.LoadUnknown
	}
	return s.CurrentState.LoadState
}

func NewProcessModel(settings VehicleSettings) *ProcessModel {
	return &ProcessModel{
		settings:  settings,
		state:     VehicleStateUnknown,
		idle:      true,
		updatedAt: time.Now(),
	}
}

// ProcessModel is the observable model of the vehicle. The engine reacts to changes of
// connected, logging and polling attributes, so those must be changed through the engine.
type ProcessModel struct {
	mu        sync.RWMutex
	settings  VehicleSettings
	enabled   bool
	connected bool
	idle      bool
	state     VehicleState
	position  string
	current   *telegrams.StateResponse
	previous  *telegrams.StateResponse
	lastOrder *OrderSummary
	updatedAt time.Time

	listenersMu sync.RWMutex
	listeners   []ModelListener
}

func (m *ProcessModel) AddListener(listener ModelListener) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()
	m.listeners = append(m.listeners, listener)
}

func (m *ProcessModel) notify(attribute Attribute, value any) {
	event := ModelEvent{Attribute: attribute, Value: value, Timestamp: time.Now()}
	m.listenersMu.RLock()
	listeners := make([]ModelListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.listenersMu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// update applies fn under the write lock and announces attribute when fn reports a change.
func (m *ProcessModel) update(attribute Attribute, fn func() (any, bool)) {
	m.mu.Lock()
	value, changed := fn()
	if changed {
		m.updatedAt = time.Now()
	}
	m.mu.Unlock()

	if changed {
		m.notify(attribute, value)
	}
}

func setField[T comparable](m *ProcessModel, attribute Attribute, field *T, value T) {
	m.update(attribute, func() (any, bool) {
		if *field == value {
			return value, false
		}
		*field = value
		return value, true
	})
}

func (m *ProcessModel) Snapshot() VehicleSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := VehicleSnapshot{
		Settings:  m.settings,
		Enabled:   m.enabled,
		Connected: m.connected,
		Idle:      m.idle,
		State:     m.state,
		Position:  m.position,
		UpdatedAt: m.updatedAt,
	}
	if m.current != nil {
		current := *m.current
		snapshot.CurrentState = &current
	}
	if m.previous != nil {
		previous := *m.previous
		snapshot.PreviousState = &previous
	}
	if m.lastOrder != nil {
		lastOrder := *m.lastOrder
		snapshot.LastOrderSent = &lastOrder
	}
	return snapshot
}

func (m *ProcessModel) Settings() VehicleSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

func (m *ProcessModel) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Name
}

func (m *ProcessModel) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

func (m *ProcessModel) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *ProcessModel) IsIdle() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idle
}

func (m *ProcessModel) VehicleState() VehicleState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *ProcessModel) Position() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

// CurrentState returns the latest state response, or nil before the first one.
func (m *ProcessModel) CurrentState() *telegrams.StateResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	current := *m.current
	return &current
}

func (m *ProcessModel) SetVehicleHost(host string) {
	setField(m, AttributeVehicleHost, &m.settings.Host, host)
}

func (m *ProcessModel) SetVehiclePort(port int) {
	setField(m, AttributeVehiclePort, &m.settings.Port, port)
}

func (m *ProcessModel) SetIdleTimeout(timeout time.Duration) {
	setField(m, AttributeIdleTimeout, &m.settings.IdleTimeout, timeout)
}

func (m *ProcessModel) SetReconnectDelay(delay time.Duration) {
	setField(m, AttributeReconnectDelay, &m.settings.ReconnectDelay, delay)
}

func (m *ProcessModel) SetReconnectOnConnectionLoss(value bool) {
	setField(m, AttributeReconnectOnConnectionLoss, &m.settings.ReconnectOnConnectionLoss, value)
}

func (m *ProcessModel) SetDisconnectOnVehicleIdle(value bool) {
	setField(m, AttributeDisconnectOnVehicleIdle, &m.settings.DisconnectOnVehicleIdle, value)
}

func (m *ProcessModel) SetLoggingEnabled(value bool) {
	setField(m, AttributeLoggingEnabled, &m.settings.LoggingEnabled, value)
}

func (m *ProcessModel) SetPeriodicStateRequestsEnabled(value bool) {
	setField(m, AttributePeriodicStateRequestsEnabled, &m.settings.PeriodicStateRequestsEnabled, value)
}

func (m *ProcessModel) SetStateRequestInterval(interval time.Duration) {
	setField(m, AttributeStateRequestInterval, &m.settings.StateRequestInterval, interval)
}

func (m *ProcessModel) SetEnabled(value bool) {
	setField(m, AttributeEnabled, &m.enabled, value)
}

func (m *ProcessModel) SetConnected(value bool) {
	setField(m, AttributeConnected, &m.connected, value)
}

func (m *ProcessModel) SetVehicleIdle(value bool) {
	setField(m, AttributeVehicleIdle, &m.idle, value)
}

func (m *ProcessModel) SetVehicleState(state VehicleState) {
	setField(m, AttributeVehicleState, &m.state, state)
}

func (m *ProcessModel) SetVehiclePosition(position string) {
	setField(m, AttributeVehiclePosition, &m.position, position)
}

func (m *ProcessModel) SetCurrentState(state telegrams.StateResponse) {
	m.update(AttributeCurrentState, func() (any, bool) {
		m.current = &state
		return state, true
	})
}

func (m *ProcessModel) SetPreviousState(state telegrams.StateResponse) {
	m.update(AttributePreviousState, func() (any, bool) {
		m.previous = &state
		return state, true
	})
}

func (m *ProcessModel) SetLastOrderSent(order telegrams.OrderRequest) {
	summary := NewOrderSummary(order)
	m.update(AttributeLastOrderSent, func() (any, bool) {
		m.lastOrder = &summary
		return summary, true
	})
}

// CommandExecuted reports a command as finished by the vehicle.
func (m *ProcessModel) CommandExecuted(cmd MovementCommand) {
	slog.Debug("command executed",
		slog.String("vehicle", m.Name()),
		slog.String("command_id", cmd.ID.String()),
		slog.String("destination", cmd.DestinationPoint))
	m.notify(AttributeCommandExecuted, cmd)
}
