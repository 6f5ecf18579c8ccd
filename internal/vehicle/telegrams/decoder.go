package telegrams

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FramingPolicy decides what happens to bytes that match no known response.
type FramingPolicy int

const (
	// DiscardOnAmbiguity drops the whole trial frame and keeps going from the next byte
	// after it. Framing may be lost until the link is reset.
	DiscardOnAmbiguity FramingPolicy = iota
	// ResyncByteByByte drops a single byte and retries at the next offset.
	ResyncByteByByte
)

func (p FramingPolicy) String() string {
	switch p {
	case ResyncByteByByte:
		return "resync_byte_by_byte"
	default:
		return "discard_on_ambiguity"
	}
}

// ParseFramingPolicy reads the name produced by String.
func ParseFramingPolicy(value string) (FramingPolicy, error) {
	switch value {
	case DiscardOnAmbiguity.String():
		return DiscardOnAmbiguity, nil
	case ResyncByteByByte.String():
		return ResyncByteByByte, nil
	default:
		return DiscardOnAmbiguity, fmt.Errorf("unknown framing policy %q", value)
	}
}

// MinResponseLength is the number of bytes needed before decoding is attempted.
var MinResponseLength = min(OrderResponseLength, StateResponseLength)

// MaxResponseLength bounds the buffer needed for one frame.
var MaxResponseLength = max(OrderResponseLength, StateResponseLength)

// Decoder recovers typed responses from a byte stream. The protocol carries no type tag at a
// fixed position that would tell the lengths apart, so each candidate length is tried in turn.
type Decoder struct {
	policy    FramingPolicy
	malformed metric.Int64Counter
}

func NewDecoder(policy FramingPolicy) *Decoder {
	meter := otel.Meter("vehicle_bridge")
	malformed, _ := meter.Int64Counter(
		fmt.Sprintf("%s.%s", "vehicle_bridge", "telegrams.malformed"),
		metric.WithDescription("frames that matched no known response telegram"),
	)
	return &Decoder{policy: policy, malformed: malformed}
}

func (d *Decoder) Policy() FramingPolicy {
	return d.policy
}

// Decode returns every response found at the start of buf and how many bytes were consumed.
// Unconsumed bytes must be passed again, with more data appended, on the next call.
func (d *Decoder) Decode(buf []byte) ([]Response, int) {
	var (
		out      []Response
		consumed int
	)
	for {
		response, n := d.decodeOne(buf[consumed:])
		if n == 0 {
			return out, consumed
		}
		consumed += n
		if response != nil {
			out = append(out, response)
		}
	}
}

func (d *Decoder) decodeOne(buf []byte) (Response, int) {
	if len(buf) < MinResponseLength {
		return nil, 0
	}

	if len(buf) >= OrderResponseLength {
		slog.Debug("checking if it's an order response", slog.String("data", Hex(buf[:OrderResponseLength])))
		if response, err := DecodeOrderResponse(buf[:OrderResponseLength]); err == nil {
			return response, OrderResponseLength
		}
	}

	if len(buf) < StateResponseLength {
		return nil, 0
	}

	slog.Debug("checking if it's a state response", slog.String("data", Hex(buf[:StateResponseLength])))
	if response, err := DecodeStateResponse(buf[:StateResponseLength]); err == nil {
		return response, StateResponseLength
	}

	d.malformed.Add(context.Background(), 1, metric.WithAttributes(attribute.String("policy", d.policy.String())))
	if d.policy == ResyncByteByByte {
		slog.Warn("not a valid telegram, skipping one byte", slog.String("data", Hex(buf[:StateResponseLength])))
		return nil, 1
	}
	slog.Warn("not a valid telegram", slog.String("data", Hex(buf[:StateResponseLength])))
	return nil, StateResponseLength
}
