package dto

import (
	"time"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/domain"
)

const (
	TopicVehicleCommands pubsub.Topic = "vehicle_commands"
	TopicCommandResults  pubsub.Topic = "vehicle_command_results"
)

// Command is a movement command received from the dispatcher over pub/sub.
type Command struct {
	ID               string            `json:"id,omitempty"`
	Vehicle          string            `json:"vehicle"`
	DestinationPoint string            `json:"destination_point"`
	Operation        string            `json:"operation,omitempty"`
	FinalMovement    bool              `json:"final_movement"`
	Properties       map[string]string `json:"properties,omitempty"`
}

// ToDomain builds the movement command. A missing id gets a fresh one.
func (c Command) ToDomain() (domain.MovementCommand, error) {
	builder := domain.NewMovementCommandBuilder().
		WithDestinationPoint(c.DestinationPoint).
		WithFinalMovement(c.FinalMovement).
		WithProperties(c.Properties)
	if c.ID != "" {
		builder = builder.WithID(domain.ID(c.ID))
	}
	if c.Operation != "" {
		builder = builder.WithOperation(c.Operation)
	}
	return builder.Build()
}

type CommandStatus string

const (
	CommandStatusAccepted CommandStatus = "accepted"
	CommandStatusRejected CommandStatus = "rejected"
	CommandStatusExecuted CommandStatus = "executed"
)

// CommandResult tells the dispatcher what became of a command.
type CommandResult struct {
	CommandID   string        `json:"command_id"`
	Vehicle     string        `json:"vehicle"`
	Status      CommandStatus `json:"status"`
	Destination string        `json:"destination,omitempty"`
	Operation   string        `json:"operation,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

func NewCommandResult(vehicle string, cmd domain.MovementCommand, status CommandStatus) CommandResult {
	return CommandResult{
		CommandID:   cmd.ID.String(),
		Vehicle:     vehicle,
		Status:      status,
		Destination: cmd.DestinationPoint,
		Operation:   cmd.Operation,
		Timestamp:   time.Now(),
	}
}

func (r CommandResult) WithReason(reason string) CommandResult {
	r.Reason = reason
	return r
}
