package telegrams

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
)

const (
	STX byte = 0x02
	ETX byte = 0x03

	// DefaultID is used for requests that are not matched against a prior sequence.
	// The real id is stamped when the request goes over the wire.
	DefaultID uint16 = 0

	// LengthFieldOffset is the position of the one byte payload length.
	LengthFieldOffset = 1
	// LengthAdjustment counts the checksum and ETX bytes that follow the payload.
	LengthAdjustment = 2

	headerLength  = 2
	trailerLength = 2
	framingLength = headerLength + trailerLength

	typeOffset = 2
	idOffset   = 3
)

var (
	ErrInvalidLength   = errors.New("invalid telegram length")
	ErrInvalidTelegram = errors.New("invalid telegram")
)

// Telegram is a fixed length binary message exchanged with the vehicle.
type Telegram interface {
	RequestID() uint16
	Bytes() []byte
	String() string
}

// Request is a telegram sent to the vehicle. The set of implementations is closed:
// OrderRequest and StateRequest.
type Request interface {
	Telegram
	WithRequestID(id uint16) Request
	request()
}

// Response is a telegram received from the vehicle. The set of implementations is closed:
// OrderResponse and StateResponse.
type Response interface {
	Telegram
	IsResponseTo(req Request) bool
	response()
}

// Checksum XORs the payload bytes of a framed telegram.
func Checksum(raw []byte) byte {
	if len(raw) < headerLength {
		return 0
	}
	payloadLength := int(raw[LengthFieldOffset])
	var cs byte
	for i := 0; i < payloadLength && headerLength+i < len(raw); i++ {
		cs ^= raw[headerLength+i]
	}
	return cs
}

func frame(payload []byte) []byte {
	raw := make([]byte, len(payload)+framingLength)
	raw[0] = STX
	raw[LengthFieldOffset] = byte(len(payload))
	copy(raw[headerLength:], payload)
	raw[len(raw)-2] = Checksum(raw)
	raw[len(raw)-1] = ETX
	return raw
}

// validFrame checks the fixed structure shared by all telegrams: markers, payload
// length, type byte and checksum.
func validFrame(raw []byte, length int, telegramType byte) bool {
	if len(raw) != length {
		return false
	}
	if raw[0] != STX || raw[length-1] != ETX {
		return false
	}
	if int(raw[LengthFieldOffset]) != length-framingLength {
		return false
	}
	if raw[typeOffset] != telegramType {
		return false
	}
	return raw[length-2] == Checksum(raw)
}

func putUint16(payload []byte, offset int, value uint16) {
	binary.BigEndian.PutUint16(payload[offset-headerLength:], value)
}

func readUint16(raw []byte, offset int) uint16 {
	return binary.BigEndian.Uint16(raw[offset:])
}

// Hex renders raw telegram bytes for logging.
func Hex(raw []byte) string {
	return hex.EncodeToString(raw)
}
