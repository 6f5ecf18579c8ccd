package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"vehicle-bridge/internal/infra/utils"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
	"vehicle-bridge/internal/vehicle/usecases"
)

type CommandRequest struct {
	DestinationPoint string            `json:"destination_point"`
	Operation        string            `json:"operation"`
	FinalMovement    bool              `json:"final_movement"`
	Properties       map[string]string `json:"properties,omitempty"`
}

type CommandResponse struct {
	ID string `json:"id"`
}

type PendingCommandResponse struct {
	ID               string `json:"id"`
	DestinationPoint string `json:"destination_point"`
	Operation        string `json:"operation"`
	OrderID          uint16 `json:"order_id"`
}

func ToPendingCommandResponses(pending []usecases.PendingCommand) []PendingCommandResponse {
	result := make([]PendingCommandResponse, 0, len(pending))
	for _, p := range pending {
		result = append(result, PendingCommandResponse{
			ID:               p.Command.ID.String(),
			DestinationPoint: p.Command.DestinationPoint,
			Operation:        p.Command.Operation,
			OrderID:          p.OrderID,
		})
	}
	return result
}

const (
	TelegramTypeState = "state"
	TelegramTypeOrder = "order"
)

// TelegramRequest describes a telegram built by hand. Request ids are assigned on send.
type TelegramRequest struct {
	Type          string `json:"type"`
	OrderID       uint16 `json:"order_id"`
	DestinationID uint16 `json:"destination_id"`
	Action        string `json:"action"`
}

var actions = map[string]telegrams.OrderAction{
	"":       telegrams.ActionNone,
	"none":   telegrams.ActionNone,
	"load":   telegrams.ActionLoad,
	"unload": telegrams.ActionUnload,
	"charge": telegrams.ActionCharge,
}

func (r TelegramRequest) ToRequest() (telegrams.Request, error) {
	switch strings.ToLower(r.Type) {
	case TelegramTypeState:
		return telegrams.NewStateRequest(telegrams.DefaultID), nil
	case TelegramTypeOrder:
		action, ok := actions[strings.ToLower(r.Action)]
		if !ok {
			return nil, fmt.Errorf("unknown action %q", r.Action)
		}
		return telegrams.NewOrderRequest(telegrams.DefaultID, r.OrderID, r.DestinationID, action), nil
	default:
		return nil, fmt.Errorf("unknown telegram type %q", r.Type)
	}
}

type CapabilityRequest struct {
	Operations []string `json:"operations"`
}

// SettingsRequest leaves out settings that should not change.
type SettingsRequest struct {
	Host                         *string         `json:"host,omitempty"`
	Port                         *int            `json:"port,omitempty"`
	IdleTimeout                  *utils.Duration `json:"idle_timeout,omitempty"`
	ReconnectDelay               *utils.Duration `json:"reconnect_delay,omitempty"`
	ReconnectOnConnectionLoss    *bool           `json:"reconnect_on_connection_loss,omitempty"`
	DisconnectOnVehicleIdle      *bool           `json:"disconnect_on_vehicle_idle,omitempty"`
	LoggingEnabled               *bool           `json:"logging_enabled,omitempty"`
	PeriodicStateRequestsEnabled *bool           `json:"periodic_state_requests_enabled,omitempty"`
	StateRequestInterval         *utils.Duration `json:"state_request_interval,omitempty"`
}

func (r SettingsRequest) Validate() error {
	var errs []error
	if r.Host != nil && strings.TrimSpace(*r.Host) == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if r.Port != nil && (*r.Port <= 0 || *r.Port > 65535) {
		errs = append(errs, fmt.Errorf("port %d out of range", *r.Port))
	}
	if r.IdleTimeout != nil && r.IdleTimeout.Std() < 0 {
		errs = append(errs, errors.New("idle_timeout must not be negative"))
	}
	if r.ReconnectDelay != nil && r.ReconnectDelay.Std() < 0 {
		errs = append(errs, errors.New("reconnect_delay must not be negative"))
	}
	if r.StateRequestInterval != nil && r.StateRequestInterval.Std() <= 0 {
		errs = append(errs, errors.New("state_request_interval must be positive"))
	}
	return errors.Join(errs...)
}

func (r SettingsRequest) ToUpdate() usecases.SettingsUpdate {
	return usecases.SettingsUpdate{
		Host:                         r.Host,
		Port:                         r.Port,
		IdleTimeout:                  durationPtr(r.IdleTimeout),
		ReconnectDelay:               durationPtr(r.ReconnectDelay),
		ReconnectOnConnectionLoss:    r.ReconnectOnConnectionLoss,
		DisconnectOnVehicleIdle:      r.DisconnectOnVehicleIdle,
		LoggingEnabled:               r.LoggingEnabled,
		PeriodicStateRequestsEnabled: r.PeriodicStateRequestsEnabled,
		StateRequestInterval:         durationPtr(r.StateRequestInterval),
	}
}

func durationPtr(d *utils.Duration) *time.Duration {
	if d == nil {
		return nil
	}
	return utils.Ptr(d.Std())
}

type SettingsResponse struct {
	Name                         string         `json:"name"`
	Host                         string         `json:"host"`
	Port                         int            `json:"port"`
	IdleTimeout                  utils.Duration `json:"idle_timeout"`
	ReconnectDelay               utils.Duration `json:"reconnect_delay"`
	ReconnectOnConnectionLoss    bool           `json:"reconnect_on_connection_loss"`
	DisconnectOnVehicleIdle      bool           `json:"disconnect_on_vehicle_idle"`
	LoggingEnabled               bool           `json:"logging_enabled"`
	PeriodicStateRequestsEnabled bool           `json:"periodic_state_requests_enabled"`
	StateRequestInterval         utils.Duration `json:"state_request_interval"`
}

type VehicleResponse struct {
	Connection    domain.ConnectionState   `json:"connection"`
	Settings      SettingsResponse         `json:"settings"`
	Enabled       bool                     `json:"enabled"`
	Connected     bool                     `json:"connected"`
	Idle          bool                     `json:"idle"`
	State         domain.VehicleState      `json:"state"`
	Position      string                   `json:"position,omitempty"`
	LoadState     telegrams.LoadState      `json:"load_state"`
	CurrentState  *telegrams.StateResponse `json:"current_state,omitempty"`
	PreviousState *telegrams.StateResponse `json:"previous_state,omitempty"`
	LastOrderSent *domain.OrderSummary     `json:"last_order_sent,omitempty"`
	UpdatedAt     utils.Time               `json:"updated_at"`
}

func ToVehicleResponse(snapshot domain.VehicleSnapshot, connection domain.ConnectionState) VehicleResponse {
	s := snapshot.Settings
	return VehicleResponse{
		Connection: connection,
		Settings: SettingsResponse{
			Name:                         s.Name,
			Host:                         s.Host,
			Port:                         s.Port,
			IdleTimeout:                  utils.Duration(s.IdleTimeout),
			ReconnectDelay:               utils.Duration(s.ReconnectDelay),
			ReconnectOnConnectionLoss:    s.ReconnectOnConnectionLoss,
			DisconnectOnVehicleIdle:      s.DisconnectOnVehicleIdle,
			LoggingEnabled:               s.LoggingEnabled,
			PeriodicStateRequestsEnabled: s.PeriodicStateRequestsEnabled,
			StateRequestInterval:         utils.Duration(s.StateRequestInterval),
		},
		Enabled:       snapshot.Enabled,
		Connected:     snapshot.Connected,
		Idle:          snapshot.Idle,
		State:         snapshot.State,
		Position:      snapshot.Position,
		LoadState:     snapshot.LoadState(),
		CurrentState:  snapshot.CurrentState,
		PreviousState: snapshot.PreviousState,
		LastOrderSent: snapshot.LastOrderSent,
		UpdatedAt:     utils.Time{Time: snapshot.UpdatedAt},
	}
}
