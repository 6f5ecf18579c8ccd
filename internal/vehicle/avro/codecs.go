package avro

import (
	"fmt"
	"log/slog"
	"vehicle-bridge/internal/infra/cache"
	"vehicle-bridge/internal/infra/pubsub"
)

const (
	FormatJSON      = "json"
	FormatAvro      = "avro"
	FormatConfluent = "confluent"
)

// NewCodecFactory selects the wire format of the pub/sub topics. Message types without an
// Avro schema stay on json.
func NewCodecFactory(format string, registry SchemaRegistry, schemas cache.Cache) (pubsub.CodecFactory, error) {
	switch format {
	case "", FormatJSON:
		return pubsub.JSONCodecs, nil
	case FormatAvro:
		return func(topic pubsub.Topic, prototype any) pubsub.Codec {
			codec, err := NewAvroCodec(prototype)
			if err != nil {
				return fallback(topic, prototype, err)
			}
			return codec
		}, nil
	case FormatConfluent:
		if registry == nil {
			return nil, fmt.Errorf("format %s needs a schema registry", format)
		}
		return func(topic pubsub.Topic, prototype any) pubsub.Codec {
			codec, err := NewConfluentAvroCodec(topic, prototype, registry, schemas)
			if err != nil {
				return fallback(topic, prototype, err)
			}
			return codec
		}, nil
	default:
		return nil, fmt.Errorf("unknown message format %q", format)
	}
}

func fallback(topic pubsub.Topic, prototype any, err error) pubsub.Codec {
	slog.Warn("topic stays on json",
		slog.String("topic", string(topic)),
		slog.String("type", fmt.Sprintf("%T", prototype)),
		slog.Any("error", err))
	return pubsub.NewJSONCodec(prototype)
}
