package avro

import (
	"fmt"
	"vehicle-bridge/internal/infra/pubsub"

	"github.com/hamba/avro/v2"
)

var _ pubsub.Codec = (*AvroCodec)(nil)

// AvroCodec encodes the envelopes of one message type as plain Avro binary with a schema
// known to both ends.
type AvroCodec struct {
	binding binding
	schema  avro.Schema
}

func NewAvroCodec(prototype any) (*AvroCodec, error) {
	b, err := bindingFor(prototype)
	if err != nil {
		return nil, err
	}

	schema, err := avro.Parse(b.schema)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}

	return &AvroCodec{binding: b, schema: schema}, nil
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	trace, payload := splitEnvelope(value)
	envelope, err := c.binding.wrap(trace, payload)
	if err != nil {
		return nil, err
	}

	data, err := avro.Marshal(c.schema, envelope)
	if err != nil {
		return nil, fmt.Errorf("marshaling to avro: %w", err)
	}
	return data, nil
}

// Decode returns a pubsub.Envelope whose Payload is a pointer to the message type.
func (c *AvroCodec) Decode(data []byte) (any, error) {
	envelope := c.binding.newEnvelope()
	if err := avro.Unmarshal(c.schema, data, envelope); err != nil {
		return nil, fmt.Errorf("unmarshaling from avro: %w", err)
	}
	return c.binding.unwrap(envelope), nil
}
