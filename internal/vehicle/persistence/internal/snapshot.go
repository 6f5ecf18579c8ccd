package internal

import (
	"time"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

const SnapshotVersion = 1

// Snapshot is the cached form of domain.VehicleSnapshot.
type Snapshot struct {
	Version       int            `msgpack:"ver"`
	Settings      Settings       `msgpack:"cfg"`
	Enabled       bool           `msgpack:"en"`
	Connected     bool           `msgpack:"con"`
	Idle          bool           `msgpack:"idle"`
	State         string         `msgpack:"st"`
	Position      string         `msgpack:"pos,omitempty"`
	CurrentState  *StateResponse `msgpack:"cur,omitempty"`
	PreviousState *StateResponse `msgpack:"prev,omitempty"`
	LastOrderSent *OrderSummary  `msgpack:"last,omitempty"`
	UpdatedAt     time.Time      `msgpack:"at"`
}

type Settings struct {
	Name                         string        `msgpack:"name"`
	Host                         string        `msgpack:"host"`
	Port                         int           `msgpack:"port"`
	IdleTimeout                  time.Duration `msgpack:"idle_timeout"`
	ReconnectDelay               time.Duration `msgpack:"reconnect_delay"`
	ReconnectOnConnectionLoss    bool          `msgpack:"reconnect"`
	DisconnectOnVehicleIdle      bool          `msgpack:"disconnect_idle"`
	LoggingEnabled               bool          `msgpack:"logging"`
	PeriodicStateRequestsEnabled bool          `msgpack:"polling"`
	StateRequestInterval         time.Duration `msgpack:"poll_interval"`
}

type StateResponse struct {
	ID                  uint16 `msgpack:"id"`
	PositionID          uint16 `msgpack:"pos"`
	OperationState      byte   `msgpack:"op"`
	LoadState           byte   `msgpack:"load"`
	LastReceivedOrderID uint16 `msgpack:"recv"`
	CurrentOrderID      uint16 `msgpack:"cur"`
	LastFinishedOrderID uint16 `msgpack:"done"`
}

type OrderSummary struct {
	RequestID     uint16 `msgpack:"id"`
	OrderID       uint16 `msgpack:"order"`
	DestinationID uint16 `msgpack:"dest"`
	Action        string `msgpack:"action"`
}

func FromSnapshot(s domain.VehicleSnapshot) Snapshot {
	record := Snapshot{
		Version: SnapshotVersion,
		Settings: Settings{
			Name:                         s.Settings.Name,
			Host:                         s.Settings.Host,
			Port:                         s.Settings.Port,
			IdleTimeout:                  s.Settings.IdleTimeout,
			ReconnectDelay:               s.Settings.ReconnectDelay,
			ReconnectOnConnectionLoss:    s.Settings.ReconnectOnConnectionLoss,
			DisconnectOnVehicleIdle:      s.Settings.DisconnectOnVehicleIdle,
			LoggingEnabled:               s.Settings.LoggingEnabled,
			PeriodicStateRequestsEnabled: s.Settings.PeriodicStateRequestsEnabled,
			StateRequestInterval:         s.Settings.StateRequestInterval,
		},
		Enabled:       s.Enabled,
		Connected:     s.Connected,
		Idle:          s.Idle,
		State:         string(s.State),
		Position:      s.Position,
		CurrentState:  fromStateResponse(s.CurrentState),
		PreviousState: fromStateResponse(s.PreviousState),
		UpdatedAt:     s.UpdatedAt,
	}
	if s.LastOrderSent != nil {
		record.LastOrderSent = &OrderSummary{
			RequestID:     s.LastOrderSent.RequestID,
			OrderID:       s.LastOrderSent.OrderID,
			DestinationID: s.LastOrderSent.DestinationID,
			Action:        s.LastOrderSent.Action,
		}
	}
	return record
}

func (r Snapshot) ToDomain() domain.VehicleSnapshot {
	snapshot := domain.VehicleSnapshot{
		Settings: domain.VehicleSettings{
			Name:                         r.Settings.Name,
			Host:                         r.Settings.Host,
			Port:                         r.Settings.Port,
			IdleTimeout:                  r.Settings.IdleTimeout,
			ReconnectDelay:               r.Settings.ReconnectDelay,
			ReconnectOnConnectionLoss:    r.Settings.ReconnectOnConnectionLoss,
			DisconnectOnVehicleIdle:      r.Settings.DisconnectOnVehicleIdle,
			LoggingEnabled:               r.Settings.LoggingEnabled,
			PeriodicStateRequestsEnabled: r.Settings.PeriodicStateRequestsEnabled,
			StateRequestInterval:         r.Settings.StateRequestInterval,
		},
		Enabled:       r.Enabled,
		Connected:     r.Connected,
		Idle:          r.Idle,
		State:         domain.VehicleState(r.State),
		Position:      r.Position,
		CurrentState:  r.CurrentState.toDomain(),
		PreviousState: r.PreviousState.toDomain(),
		UpdatedAt:     r.UpdatedAt,
	}
	if r.LastOrderSent != nil {
		snapshot.LastOrderSent = &domain.OrderSummary{
			RequestID:     r.LastOrderSent.RequestID,
			OrderID:       r.LastOrderSent.OrderID,
			DestinationID: r.LastOrderSent.DestinationID,
			Action:        r.LastOrderSent.Action,
		}
	}
	return snapshot
}

func fromStateResponse(resp *telegrams.StateResponse) *StateResponse {
	if resp == nil {
		return nil
	}
	return &StateResponse{
		ID:                  resp.ID,
		PositionID:          resp.PositionID,
		OperationState:      byte(resp.OperationState),
		LoadState:           byte(resp.LoadState),
		LastReceivedOrderID: resp.LastReceivedOrderID,
		CurrentOrderID:      resp.CurrentOrderID,
		LastFinishedOrderID: resp.LastFinishedOrderID,
	}
}

func (r *StateResponse) toDomain() *telegrams.StateResponse {
	if r == nil {
		return nil
	}
	return &telegrams.StateResponse{
		ID:                  r.ID,
		PositionID:          r.PositionID,
		OperationState:      telegrams.OperationState(r.OperationState),
		LoadState:           telegrams.LoadState(r.LoadState),
		LastReceivedOrderID: r.LastReceivedOrderID,
		CurrentOrderID:      r.CurrentOrderID,
		LastFinishedOrderID: r.LastFinishedOrderID,
	}
}
