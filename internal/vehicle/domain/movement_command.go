package domain

import (
	"errors"
	"maps"
	"vehicle-bridge/internal/infra/utils"
)

type ID string

func (vo ID) String() string {
	return string(vo)
}

// Operation names understood by the vehicle. Operations are matched by prefix, so
// "load-cargo" counts as a load.
const (
	OperationLoad   = "load"
	OperationUnload = "unload"
	OperationPark   = "park"
	OperationCharge = "charge"
	OperationNone   = "nop"
)

// MovementCommand is a single step of a transport order as issued by the dispatcher.
type MovementCommand struct {
	ID               ID
	DestinationPoint string
	Operation        string
	FinalMovement    bool
	Properties       map[string]string
}

func NewMovementCommandBuilder() *movementCommandBuilder {
	return &movementCommandBuilder{}
}

type movementCommandBuilder struct {
	actions []movementCommandHandler
}

type movementCommandHandler func(v *MovementCommand) error

func (b *movementCommandBuilder) WithID(id ID) *movementCommandBuilder {
	b.actions = append(b.actions, func(d *MovementCommand) error {
		d.ID = id
		return nil
	})
	return b
}

func (b *movementCommandBuilder) WithDestinationPoint(point string) *movementCommandBuilder {
	b.actions = append(b.actions, func(d *MovementCommand) error {
		d.DestinationPoint = point
		return nil
	})
	return b
}

func (b *movementCommandBuilder) WithOperation(operation string) *movementCommandBuilder {
	b.actions = append(b.actions, func(d *MovementCommand) error {
		d.Operation = operation
		return nil
	})
	return b
}

func (b *movementCommandBuilder) WithFinalMovement(final bool) *movementCommandBuilder {
	b.actions = append(b.actions, func(d *MovementCommand) error {
		d.FinalMovement = final
		return nil
	})
	return b
}

func (b *movementCommandBuilder) WithProperties(properties map[string]string) *movementCommandBuilder {
	b.actions = append(b.actions, func(d *MovementCommand) error {
		d.Properties = maps.Clone(properties)
		return nil
	})
	return b
}

func (b *movementCommandBuilder) Build() (MovementCommand, error) {
	result := MovementCommand{
		ID:        ID(utils.GenerateUUID()),
		Operation: OperationNone,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return MovementCommand{}, err
		}
	}

	if result.DestinationPoint == "" {
		return MovementCommand{}, errors.New("destination point is required")
	}

	return result, nil
}
