package pubsub

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Codec matches goka.Codec so a single implementation serves kafka and memory topics.
type Codec interface {
	Encode(value any) (data []byte, err error)
	Decode(data []byte) (value any, err error)
}

// CodecFactory builds the codec for one topic. Codecs decode into an Envelope whose Payload
// is a pointer to the prototype type.
type CodecFactory func(topic Topic, prototype any) Codec

// JSONCodecs is the default CodecFactory.
func JSONCodecs(_ Topic, prototype any) Codec {
	return NewJSONCodec(prototype)
}

type options struct {
	codecs CodecFactory
}

type Option func(*options)

// WithCodec replaces the JSON codec used for every topic.
func WithCodec(codecs CodecFactory) Option {
	return func(o *options) {
		if codecs != nil {
			o.codecs = codecs
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{codecs: JSONCodecs}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Envelope wraps every message on the wire with the trace of its publisher.
type Envelope struct {
	Trace   TraceHeaders `json:"trace"`
	Payload any          `json:"payload"`
}

type wireEnvelope struct {
	Trace   TraceHeaders    `json:"trace"`
	Payload json.RawMessage `json:"payload"`
}

var _ Codec = &JSONCodec{}

// JSONCodec encodes envelopes and decodes their payload into a new value of the prototype type.
type JSONCodec struct {
	prototype reflect.Type
}

func NewJSONCodec(prototype any) *JSONCodec {
	pt := reflect.TypeOf(prototype)
	if pt != nil && pt.Kind() == reflect.Pointer {
		pt = pt.Elem()
	}
	return &JSONCodec{prototype: pt}
}

func (c *JSONCodec) Encode(value any) ([]byte, error) {
	envelope, ok := value.(Envelope)
	if !ok {
		envelope = Envelope{Payload: value}
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshaling data: %w", err)
	}

	return data, nil
}

// Decode returns an Envelope whose Payload is a pointer to the prototype type.
func (c *JSONCodec) Decode(data []byte) (any, error) {
	var wire wireEnvelope
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshaling envelope: %w", err)
	}

	payload, err := c.decodePayload(wire.Payload)
	if err != nil {
		return nil, err
	}

	return Envelope{Trace: wire.Trace, Payload: payload}, nil
}

func (c *JSONCodec) decodePayload(data []byte) (any, error) {
	if c.prototype == nil {
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("unmarshaling data: %w", err)
		}
		return value, nil
	}

	instance := reflect.New(c.prototype).Interface()
	if err := json.Unmarshal(data, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}
	return instance, nil
}
