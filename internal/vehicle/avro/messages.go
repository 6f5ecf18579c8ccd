package avro

import (
	"time"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/dto"
)

// Avro-compatible envelopes for the vehicle topics. Field tags carry the same names for the
// avro and json encoders so that the textual Avro form is plain json.

type AvroTrace struct {
	TraceID    string `avro:"trace_id" json:"trace_id"`
	SpanID     string `avro:"span_id" json:"span_id"`
	TraceFlags string `avro:"trace_flags" json:"trace_flags"`
}

type AvroCommand struct {
	ID               string            `avro:"id" json:"id"`
	Vehicle          string            `avro:"vehicle" json:"vehicle"`
	DestinationPoint string            `avro:"destination_point" json:"destination_point"`
	Operation        string            `avro:"operation" json:"operation"`
	FinalMovement    bool              `avro:"final_movement" json:"final_movement"`
	Properties       map[string]string `avro:"properties" json:"properties"`
}

type AvroCommandEnvelope struct {
	Trace   AvroTrace   `avro:"trace" json:"trace"`
	Payload AvroCommand `avro:"payload" json:"payload"`
}

type AvroCommandResult struct {
	CommandID   string `avro:"command_id" json:"command_id"`
	Vehicle     string `avro:"vehicle" json:"vehicle"`
	Status      string `avro:"status" json:"status"`
	Destination string `avro:"destination" json:"destination"`
	Operation   string `avro:"operation" json:"operation"`
	Reason      string `avro:"reason" json:"reason"`
	// Timestamp is in unix milliseconds.
	Timestamp int64 `avro:"timestamp" json:"timestamp"`
}

type AvroCommandResultEnvelope struct {
	Trace   AvroTrace         `avro:"trace" json:"trace"`
	Payload AvroCommandResult `avro:"payload" json:"payload"`
}

func toAvroTrace(t pubsub.TraceHeaders) AvroTrace {
	return AvroTrace{TraceID: t.TraceID, SpanID: t.SpanID, TraceFlags: t.TraceFlags}
}

func fromAvroTrace(t AvroTrace) pubsub.TraceHeaders {
	return pubsub.TraceHeaders{TraceID: t.TraceID, SpanID: t.SpanID, TraceFlags: t.TraceFlags}
}

func ToAvroCommand(c dto.Command) AvroCommand {
	properties := make(map[string]string, len(c.Properties))
	for k, v := range c.Properties {
		properties[k] = v
	}
	return AvroCommand{
		ID:               c.ID,
		Vehicle:          c.Vehicle,
		DestinationPoint: c.DestinationPoint,
		Operation:        c.Operation,
		FinalMovement:    c.FinalMovement,
		Properties:       properties,
	}
}

func FromAvroCommand(c AvroCommand) dto.Command {
	var properties map[string]string
	if len(c.Properties) > 0 {
		properties = c.Properties
	}
	return dto.Command{
		ID:               c.ID,
		Vehicle:          c.Vehicle,
		DestinationPoint: c.DestinationPoint,
		Operation:        c.Operation,
		FinalMovement:    c.FinalMovement,
		Properties:       properties,
	}
}

func ToAvroCommandResult(r dto.CommandResult) AvroCommandResult {
	return AvroCommandResult{
		CommandID:   r.CommandID,
		Vehicle:     r.Vehicle,
		Status:      string(r.Status),
		Destination: r.Destination,
		Operation:   r.Operation,
		Reason:      r.Reason,
		Timestamp:   r.Timestamp.UnixMilli(),
	}
}

func FromAvroCommandResult(r AvroCommandResult) dto.CommandResult {
	return dto.CommandResult{
		CommandID:   r.CommandID,
		Vehicle:     r.Vehicle,
		Status:      dto.CommandStatus(r.Status),
		Destination: r.Destination,
		Operation:   r.Operation,
		Reason:      r.Reason,
		Timestamp:   time.UnixMilli(r.Timestamp).UTC(),
	}
}
