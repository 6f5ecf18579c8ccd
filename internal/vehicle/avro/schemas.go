package avro

import (
	"errors"
	"fmt"
	"reflect"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/dto"
)

var ErrUnsupportedMessage = errors.New("no avro schema for message type")

const traceSchema = `{
	"type": "record",
	"name": "Trace",
	"fields": [
		{"name": "trace_id", "type": "string"},
		{"name": "span_id", "type": "string"},
		{"name": "trace_flags", "type": "string"}
	]
}`

var commandEnvelopeSchema = `{
	"type": "record",
	"name": "VehicleCommandEnvelope",
	"namespace": "vehicle_bridge",
	"fields": [
		{"name": "trace", "type": ` + traceSchema + `},
		{"name": "payload", "type": {
			"type": "record",
			"name": "VehicleCommand",
			"fields": [
				{"name": "id", "type": "string"},
				{"name": "vehicle", "type": "string"},
				{"name": "destination_point", "type": "string"},
				{"name": "operation", "type": "string"},
				{"name": "final_movement", "type": "boolean"},
				{"name": "properties", "type": {"type": "map", "values": "string"}}
			]
		}}
	]
}`

var commandResultEnvelopeSchema = `{
	"type": "record",
	"name": "VehicleCommandResultEnvelope",
	"namespace": "vehicle_bridge",
	"fields": [
		{"name": "trace", "type": ` + traceSchema + `},
		{"name": "payload", "type": {
			"type": "record",
			"name": "VehicleCommandResult",
			"fields": [
				{"name": "command_id", "type": "string"},
				{"name": "vehicle", "type": "string"},
				{"name": "status", "type": "string"},
				{"name": "destination", "type": "string"},
				{"name": "operation", "type": "string"},
				{"name": "reason", "type": "string"},
				{"name": "timestamp", "type": {"type": "long", "logicalType": "timestamp-millis"}}
			]
		}}
	]
}`

// binding ties a message type to its envelope schema and the conversions in both directions.
type binding struct {
	schema      string
	newEnvelope func() any
	wrap        func(trace pubsub.TraceHeaders, payload any) (any, error)
	unwrap      func(envelope any) pubsub.Envelope
}

var bindings = map[reflect.Type]binding{
	reflect.TypeOf(dto.Command{}): {
		schema:      commandEnvelopeSchema,
		newEnvelope: func() any { return &AvroCommandEnvelope{} },
		wrap: func(trace pubsub.TraceHeaders, payload any) (any, error) {
			cmd, ok := deref[dto.Command](payload)
			if !ok {
				return nil, fmt.Errorf("%T: %w", payload, ErrUnsupportedMessage)
			}
			return AvroCommandEnvelope{Trace: toAvroTrace(trace), Payload: ToAvroCommand(cmd)}, nil
		},
		unwrap: func(envelope any) pubsub.Envelope {
			e := envelope.(*AvroCommandEnvelope)
			cmd := FromAvroCommand(e.Payload)
			return pubsub.Envelope{Trace: fromAvroTrace(e.Trace), Payload: &cmd}
		},
	},
	reflect.TypeOf(dto.CommandResult{}): {
		schema:      commandResultEnvelopeSchema,
		newEnvelope: func() any { return &AvroCommandResultEnvelope{} },
		wrap: func(trace pubsub.TraceHeaders, payload any) (any, error) {
			result, ok := deref[dto.CommandResult](payload)
			if !ok {
				return nil, fmt.Errorf("%T: %w", payload, ErrUnsupportedMessage)
			}
			return AvroCommandResultEnvelope{Trace: toAvroTrace(trace), Payload: ToAvroCommandResult(result)}, nil
		},
		unwrap: func(envelope any) pubsub.Envelope {
			e := envelope.(*AvroCommandResultEnvelope)
			result := FromAvroCommandResult(e.Payload)
			return pubsub.Envelope{Trace: fromAvroTrace(e.Trace), Payload: &result}
		},
	},
}

func bindingFor(prototype any) (binding, error) {
	t := reflect.TypeOf(prototype)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	b, ok := bindings[t]
	if !ok {
		return binding{}, fmt.Errorf("%v: %w", t, ErrUnsupportedMessage)
	}
	return b, nil
}

func deref[T any](value any) (T, bool) {
	switch v := value.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// splitEnvelope accepts an Envelope or a bare payload.
func splitEnvelope(value any) (pubsub.TraceHeaders, any) {
	if envelope, ok := value.(pubsub.Envelope); ok {
		return envelope.Trace, envelope.Payload
	}
	return pubsub.TraceHeaders{}, value
}
