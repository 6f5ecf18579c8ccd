package telegrams

import "fmt"

const (
	StateResponseType byte = 1
	OrderResponseType byte = 2

	OrderResponseLength = 9
	StateResponseLength = 17
)

// OperationState is what the vehicle reports it is currently doing.
type OperationState byte

const (
	OperationUnknown  OperationState = 0
	OperationIdle     OperationState = 'I'
	OperationMoving   OperationState = 'M'
	OperationActing   OperationState = 'A'
	OperationCharging OperationState = 'C'
	OperationError    OperationState = 'E'
)

func decodeOperationState(b byte) OperationState {
	switch s := OperationState(b); s {
	case OperationIdle, OperationMoving, OperationActing, OperationCharging, OperationError:
		return s
	default:
		return OperationUnknown
	}
}

func (s OperationState) String() string {
	switch s {
	case OperationIdle:
		return "idle"
	case OperationMoving:
		return "moving"
	case OperationActing:
		return "acting"
	case OperationCharging:
		return "charging"
	case OperationError:
		return "error"
	default:
		return "unknown"
	}
}

func (s OperationState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OperationState) UnmarshalText(text []byte) error {
	*s = ParseOperationState(string(text))
	return nil
}

func ParseOperationState(value string) OperationState {
	for _, s := range []OperationState{OperationIdle, OperationMoving, OperationActing, OperationCharging, OperationError} {
		if s.String() == value {
			return s
		}
	}
	return OperationUnknown
}

// LoadState is the cargo state reported by the vehicle.
type LoadState byte

const (
	LoadUnknown LoadState = 0
	LoadEmpty   LoadState = 'E'
	LoadFull    LoadState = 'F'
)

func decodeLoadState(b byte) LoadState {
	switch s := LoadState(b); s {
	case LoadEmpty, LoadFull:
		return s
	default:
		return LoadUnknown
	}
}

func (s LoadState) String() string {
	switch s {
	case LoadEmpty:
		return "empty"
	case LoadFull:
		return "full"
	default:
		return "unknown"
	}
}

func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LoadState) UnmarshalText(text []byte) error {
	*s = ParseLoadState(string(text))
	return nil
}

func ParseLoadState(value string) LoadState {
	switch value {
	case LoadEmpty.String():
		return LoadEmpty
	case LoadFull.String():
		return LoadFull
	default:
		return LoadUnknown
	}
}

// OrderResponse acknowledges an order request.
type OrderResponse struct {
	id      uint16
	orderID uint16
}

var _ Response = OrderResponse{}

func NewOrderResponse(id, orderID uint16) OrderResponse {
	return OrderResponse{id: id, orderID: orderID}
}

// IsOrderResponse is the validity predicate used by the frame discriminator.
func IsOrderResponse(raw []byte) bool {
	return validFrame(raw, OrderResponseLength, OrderResponseType)
}

func DecodeOrderResponse(raw []byte) (OrderResponse, error) {
	if len(raw) != OrderResponseLength {
		return OrderResponse{}, fmt.Errorf("order response of %d bytes: %w", len(raw), ErrInvalidLength)
	}
	if !IsOrderResponse(raw) {
		return OrderResponse{}, fmt.Errorf("order response %s: %w", Hex(raw), ErrInvalidTelegram)
	}
	return OrderResponse{
		id:      readUint16(raw, idOffset),
		orderID: readUint16(raw, 5),
	}, nil
}

func (r OrderResponse) RequestID() uint16 { return r.id }
func (r OrderResponse) OrderID() uint16   { return r.orderID }

func (r OrderResponse) IsResponseTo(req Request) bool {
	order, ok := req.(OrderRequest)
	return ok && order.RequestID() == r.id
}

func (r OrderResponse) Bytes() []byte {
	payload := make([]byte, OrderResponseLength-framingLength)
	payload[0] = OrderResponseType
	putUint16(payload, idOffset, r.id)
	putUint16(payload, 5, r.orderID)
	return frame(payload)
}

func (r OrderResponse) String() string {
	return fmt.Sprintf("OrderResponse{id=%d, orderId=%d}", r.id, r.orderID)
}

func (OrderResponse) response() {}

// StateResponse carries the vehicle's reported state.
type StateResponse struct {
	ID                  uint16         `json:"id"`
	PositionID          uint16         `json:"position_id"`
	OperationState      OperationState `json:"operation_state"`
	LoadState           LoadState      `json:"load_state"`
	LastReceivedOrderID uint16         `json:"last_received_order_id"`
	CurrentOrderID      uint16         `json:"current_order_id"`
	LastFinishedOrderID uint16         `json:"last_finished_order_id"`
}

var _ Response = StateResponse{}

// IsStateResponse is the validity predicate used by the frame discriminator.
func IsStateResponse(raw []byte) bool {
	return validFrame(raw, StateResponseLength, StateResponseType)
}

func DecodeStateResponse(raw []byte) (StateResponse, error) {
	if len(raw) != StateResponseLength {
		return StateResponse{}, fmt.Errorf("state response of %d bytes: %w", len(raw), ErrInvalidLength)
	}
	if !IsStateResponse(raw) {
		return StateResponse{}, fmt.Errorf("state response %s: %w", Hex(raw), ErrInvalidTelegram)
	}
	return StateResponse{
		ID:                  readUint16(raw, idOffset),
		PositionID:          readUint16(raw, 5),
		OperationState:      decodeOperationState(raw[7]),
		LoadState:           decodeLoadState(raw[8]),
		LastReceivedOrderID: readUint16(raw, 9),
		CurrentOrderID:      readUint16(raw, 11),
		LastFinishedOrderID: readUint16(raw, 13),
	}, nil
}

func (r StateResponse) RequestID() uint16 { return r.ID }

func (r StateResponse) IsResponseTo(req Request) bool {
	state, ok := req.(StateRequest)
	return ok && state.RequestID() == r.ID
}

func (r StateResponse) Bytes() []byte {
	payload := make([]byte, StateResponseLength-framingLength)
	payload[0] = StateResponseType
	putUint16(payload, idOffset, r.ID)
	putUint16(payload, 5, r.PositionID)
	payload[7-headerLength] = byte(r.OperationState)
	payload[8-headerLength] = byte(r.LoadState)
	putUint16(payload, 9, r.LastReceivedOrderID)
	putUint16(payload, 11, r.CurrentOrderID)
	putUint16(payload, 13, r.LastFinishedOrderID)
	return frame(payload)
}

func (r StateResponse) String() string {
	return fmt.Sprintf("StateResponse{id=%d, position=%d, operation=%s, load=%s, lastReceived=%d, current=%d, lastFinished=%d}",
		r.ID, r.PositionID, r.OperationState, r.LoadState, r.LastReceivedOrderID, r.CurrentOrderID, r.LastFinishedOrderID)
}

func (StateResponse) response() {}
