package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

// NewOrderMapper creates a mapper that resolves destination points through points first and
// falls back to reading the point name as a number. Point names are matched ignoring case.
func NewOrderMapper(points map[string]uint16) *OrderMapper {
	resolved := make(map[string]uint16, len(points))
	for name, id := range points {
		resolved[strings.ToLower(name)] = id
	}
	return &OrderMapper{points: resolved}
}

type OrderMapper struct {
	points map[string]uint16
}

// MapToOrder builds the order telegram for cmd. The request id and the order id are left at
// their defaults and are assigned later.
func (m *OrderMapper) MapToOrder(cmd domain.MovementCommand) (telegrams.OrderRequest, error) {
	destinationID, err := m.destinationID(cmd.DestinationPoint)
	if err != nil {
		return telegrams.OrderRequest{}, err
	}

	return telegrams.NewOrderRequest(
		telegrams.DefaultID,
		0,
		destinationID,
		ActionFor(cmd.Operation),
	), nil
}

func (m *OrderMapper) destinationID(point string) (uint16, error) {
	if id, ok := m.points[strings.ToLower(point)]; ok {
		return id, nil
	}

	id, err := strconv.Atoi(point)
	if err != nil {
		return 0, fmt.Errorf("destination point %q has no numeric id: %w", point, domain.ErrInvalidCommand)
	}
	if id < 0 || id > math.MaxUint16 {
		return 0, fmt.Errorf("destination point %q out of range: %w", point, domain.ErrInvalidCommand)
	}
	return uint16(id), nil
}

// ActionFor translates an operation name into the action byte of an order telegram.
func ActionFor(operation string) telegrams.OrderAction {
	op := strings.ToLower(operation)
	switch {
	case strings.HasPrefix(op, domain.OperationUnload):
		return telegrams.ActionUnload
	case strings.HasPrefix(op, domain.OperationLoad):
		return telegrams.ActionLoad
	case strings.HasPrefix(op, domain.OperationCharge):
		return telegrams.ActionCharge
	default:
		return telegrams.ActionNone
	}
}
