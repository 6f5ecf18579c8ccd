package avro

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
	"vehicle-bridge/internal/infra/cache"
	"vehicle-bridge/internal/infra/pubsub"

	"github.com/linkedin/goavro/v2"
)

const (
	magicByte     byte = 0
	headerLength       = 5
	subjectSuffix      = "-value"

	_defaultSchemaCacheTTL = 5 * time.Minute
)

var ErrInvalidWireFormat = errors.New("invalid confluent wire format")

var _ pubsub.Codec = (*ConfluentAvroCodec)(nil)

// ConfluentAvroCodec writes the Confluent wire format: a zero magic byte, the big endian
// schema id and the Avro binary. The schema is registered under "<topic>-value" on first use.
type ConfluentAvroCodec struct {
	binding  binding
	subject  string
	registry SchemaRegistry
	schemas  cache.Cache

	mu     sync.Mutex
	codecs map[int]*goavro.Codec
}

func NewConfluentAvroCodec(topic pubsub.Topic, prototype any, registry SchemaRegistry, schemas cache.Cache) (*ConfluentAvroCodec, error) {
	b, err := bindingFor(prototype)
	if err != nil {
		return nil, err
	}

	return &ConfluentAvroCodec{
		binding:  b,
		subject:  string(topic) + subjectSuffix,
		registry: registry,
		schemas:  schemas,
		codecs:   make(map[int]*goavro.Codec),
	}, nil
}

func (c *ConfluentAvroCodec) Encode(value any) ([]byte, error) {
	trace, payload := splitEnvelope(value)
	envelope, err := c.binding.wrap(trace, payload)
	if err != nil {
		return nil, err
	}

	schemaID, err := c.schemaID()
	if err != nil {
		return nil, err
	}
	codec, err := c.codec(schemaID)
	if err != nil {
		return nil, err
	}

	textual, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshaling envelope: %w", err)
	}
	native, _, err := codec.NativeFromTextual(textual)
	if err != nil {
		return nil, fmt.Errorf("converting to avro native: %w", err)
	}

	result := make([]byte, headerLength, headerLength+len(textual))
	result[0] = magicByte
	binary.BigEndian.PutUint32(result[1:headerLength], uint32(schemaID))
	result, err = codec.BinaryFromNative(result, native)
	if err != nil {
		return nil, fmt.Errorf("encoding to avro: %w", err)
	}
	return result, nil
}

// Decode resolves the writer schema by the id in the header.
func (c *ConfluentAvroCodec) Decode(data []byte) (any, error) {
	if len(data) < headerLength {
		return nil, fmt.Errorf("%d bytes: %w", len(data), ErrInvalidWireFormat)
	}
	if data[0] != magicByte {
		return nil, fmt.Errorf("magic byte %d: %w", data[0], ErrInvalidWireFormat)
	}

	schemaID := int(binary.BigEndian.Uint32(data[1:headerLength]))
	codec, err := c.codec(schemaID)
	if err != nil {
		return nil, err
	}

	native, _, err := codec.NativeFromBinary(data[headerLength:])
	if err != nil {
		return nil, fmt.Errorf("decoding avro data: %w", err)
	}
	textual, err := codec.TextualFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("converting avro native: %w", err)
	}

	envelope := c.binding.newEnvelope()
	if err := json.Unmarshal(textual, envelope); err != nil {
		return nil, fmt.Errorf("unmarshaling envelope: %w", err)
	}
	return c.binding.unwrap(envelope), nil
}

// schemaID looks the subject up in the registry and registers the local schema when the
// subject is unknown.
func (c *ConfluentAvroCodec) schemaID() (int, error) {
	data, err := c.schemas.GetOrLoad(context.Background(), "subject:"+c.subject, _defaultSchemaCacheTTL,
		func(context.Context) ([]byte, error) {
			id, err := c.registry.LatestSchemaID(c.subject)
			if err != nil {
				id, err = c.registry.Register(c.subject, c.binding.schema)
				if err != nil {
					return nil, err
				}
			}
			return []byte(strconv.Itoa(id)), nil
		})
	if err != nil {
		return 0, fmt.Errorf("schema id of %s: %w", c.subject, err)
	}

	return strconv.Atoi(string(data))
}

func (c *ConfluentAvroCodec) codec(schemaID int) (*goavro.Codec, error) {
	c.mu.Lock()
	codec, ok := c.codecs[schemaID]
	c.mu.Unlock()
	if ok {
		return codec, nil
	}

	schema, err := c.schemas.GetOrLoad(context.Background(), "schema:"+strconv.Itoa(schemaID), _defaultSchemaCacheTTL,
		func(context.Context) ([]byte, error) {
			text, err := c.registry.SchemaByID(schemaID)
			if err != nil {
				return nil, err
			}
			return []byte(text), nil
		})
	if err != nil {
		return nil, fmt.Errorf("fetching schema %d: %w", schemaID, err)
	}

	codec, err = goavro.NewCodec(string(schema))
	if err != nil {
		return nil, fmt.Errorf("creating codec for schema %d: %w", schemaID, err)
	}

	c.mu.Lock()
	c.codecs[schemaID] = codec
	c.mu.Unlock()
	return codec, nil
}
