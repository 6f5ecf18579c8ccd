package telegrams

import "fmt"

const (
	StateRequestType byte = 1
	OrderRequestType byte = 2

	StateRequestLength = 7
	OrderRequestLength = 12
)

// OrderAction is the action the vehicle performs at the destination of an order.
type OrderAction byte

const (
	ActionNone   OrderAction = 'N'
	ActionLoad   OrderAction = 'L'
	ActionUnload OrderAction = 'U'
	ActionCharge OrderAction = 'C'
)

func (a OrderAction) String() string {
	switch a {
	case ActionLoad:
		return "load"
	case ActionUnload:
		return "unload"
	case ActionCharge:
		return "charge"
	default:
		return "none"
	}
}

// StateRequest asks the vehicle for its current state.
type StateRequest struct {
	id uint16
}

var _ Request = StateRequest{}

func NewStateRequest(id uint16) StateRequest {
	return StateRequest{id: id}
}

func (r StateRequest) RequestID() uint16 { return r.id }

func (r StateRequest) WithRequestID(id uint16) Request {
	r.id = id
	return r
}

func (r StateRequest) Bytes() []byte {
	payload := make([]byte, StateRequestLength-framingLength)
	payload[0] = StateRequestType
	putUint16(payload, idOffset, r.id)
	return frame(payload)
}

func (r StateRequest) String() string {
	return fmt.Sprintf("StateRequest{id=%d}", r.id)
}

func (StateRequest) request() {}

// OrderRequest sends the vehicle to a destination point and optionally triggers an action there.
type OrderRequest struct {
	id            uint16
	orderID       uint16
	destinationID uint16
	action        OrderAction
}

var _ Request = OrderRequest{}

func NewOrderRequest(id, orderID, destinationID uint16, action OrderAction) OrderRequest {
	return OrderRequest{
		id:            id,
		orderID:       orderID,
		destinationID: destinationID,
		action:        action,
	}
}

func (r OrderRequest) RequestID() uint16              { return r.id }
func (r OrderRequest) OrderID() uint16                { return r.orderID }
func (r OrderRequest) DestinationID() uint16          { return r.destinationID }
func (r OrderRequest) DestinationAction() OrderAction { return r.action }

func (r OrderRequest) WithRequestID(id uint16) Request {
	r.id = id
	return r
}

// WithOrderID returns a copy carrying the given order id.
func (r OrderRequest) WithOrderID(orderID uint16) OrderRequest {
	r.orderID = orderID
	return r
}

func (r OrderRequest) Bytes() []byte {
	payload := make([]byte, OrderRequestLength-framingLength)
	payload[0] = OrderRequestType
	putUint16(payload, idOffset, r.id)
	putUint16(payload, 5, r.orderID)
	putUint16(payload, 7, r.destinationID)
	payload[9-headerLength] = byte(r.action)
	return frame(payload)
}

func (r OrderRequest) String() string {
	return fmt.Sprintf("OrderRequest{id=%d, orderId=%d, destinationId=%d, action=%s}",
		r.id, r.orderID, r.destinationID, r.action)
}

func (OrderRequest) request() {}

// DecodeStateRequest parses a framed state request. Used by the vehicle simulator.
func DecodeStateRequest(raw []byte) (StateRequest, error) {
	if len(raw) != StateRequestLength {
		return StateRequest{}, fmt.Errorf("state request of %d bytes: %w", len(raw), ErrInvalidLength)
	}
	if !validFrame(raw, StateRequestLength, StateRequestType) {
		return StateRequest{}, fmt.Errorf("state request %s: %w", Hex(raw), ErrInvalidTelegram)
	}
	return StateRequest{id: readUint16(raw, idOffset)}, nil
}

// DecodeOrderRequest parses a framed order request. Used by the vehicle simulator.
func DecodeOrderRequest(raw []byte) (OrderRequest, error) {
	if len(raw) != OrderRequestLength {
		return OrderRequest{}, fmt.Errorf("order request of %d bytes: %w", len(raw), ErrInvalidLength)
	}
	if !validFrame(raw, OrderRequestLength, OrderRequestType) {
		return OrderRequest{}, fmt.Errorf("order request %s: %w", Hex(raw), ErrInvalidTelegram)
	}
	return OrderRequest{
		id:            readUint16(raw, idOffset),
		orderID:       readUint16(raw, 5),
		destinationID: readUint16(raw, 7),
		action:        OrderAction(raw[9]),
	}, nil
}
