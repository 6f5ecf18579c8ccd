package usecases

import (
	"context"
	"time"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/vehicle/usecases/api_mock.go -package=usecases

type VehicleService interface {
	Enable()
	Disable()
	Connect()
	Disconnect()
	SendCommand(context.Context, domain.MovementCommand) error
	SendRequest(telegrams.Request)
	CanExecute(operations []string) domain.Explanation
	ClearQueue()
	UpdateSettings(SettingsUpdate)
	Snapshot() domain.VehicleSnapshot
	ConnectionState() domain.ConnectionState
	PendingCommands() []PendingCommand
}

// SettingsUpdate changes only the settings that are set.
type SettingsUpdate struct {
	Host                         *string
	Port                         *int
	IdleTimeout                  *time.Duration
	ReconnectDelay               *time.Duration
	ReconnectOnConnectionLoss    *bool
	DisconnectOnVehicleIdle      *bool
	LoggingEnabled               *bool
	PeriodicStateRequestsEnabled *bool
	StateRequestInterval         *time.Duration
}

type PendingCommand struct {
	Command domain.MovementCommand
	OrderID uint16
}
