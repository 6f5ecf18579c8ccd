package avro_test

import (
	"time"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/avro"
	"vehicle-bridge/internal/vehicle/dto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AvroCodec", func() {
	var (
		trace = pubsub.TraceHeaders{
			TraceID:    "4bf92f3577b34da6a3ce929d0e0e4736",
			SpanID:     "00f067aa0ba902b7",
			TraceFlags: "1",
		}
		command = dto.Command{
			ID:               "5f0f7c1e-8c1a-4a53-9d6f-0a6f3c0f2a11",
			Vehicle:          "agv-01",
			DestinationPoint: "point-b",
			Operation:        "unload",
			FinalMovement:    true,
			Properties:       map[string]string{"priority": "high"},
		}
	)

	It("round trips a command envelope", func() {
		codec, err := avro.NewAvroCodec(dto.Command{})
		Expect(err).ToNot(HaveOccurred())

		data, err := codec.Encode(pubsub.Envelope{Trace: trace, Payload: command})
		Expect(err).ToNot(HaveOccurred())

		decoded, err := codec.Decode(data)
		Expect(err).ToNot(HaveOccurred())
		envelope, ok := decoded.(pubsub.Envelope)
		Expect(ok).To(BeTrue())
		Expect(envelope.Trace).To(Equal(trace))
		Expect(envelope.Payload).To(Equal(&command))
	})

	It("accepts bare and pointer payloads", func() {
		codec, err := avro.NewAvroCodec(&dto.Command{})
		Expect(err).ToNot(HaveOccurred())

		data, err := codec.Encode(&command)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := codec.Decode(data)
		Expect(err).ToNot(HaveOccurred())
		envelope := decoded.(pubsub.Envelope)
		Expect(envelope.Trace).To(Equal(pubsub.TraceHeaders{}))
		Expect(envelope.Payload).To(Equal(&command))
	})

	It("keeps empty properties empty", func() {
		codec, err := avro.NewAvroCodec(dto.Command{})
		Expect(err).ToNot(HaveOccurred())

		bare := dto.Command{Vehicle: "agv-01", DestinationPoint: "7"}
		data, err := codec.Encode(bare)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := codec.Decode(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.(pubsub.Envelope).Payload).To(Equal(&bare))
	})

	It("round trips a command result with millisecond timestamps", func() {
		codec, err := avro.NewAvroCodec(dto.CommandResult{})
		Expect(err).ToNot(HaveOccurred())

		result := dto.CommandResult{
			CommandID:   "c-1",
			Vehicle:     "agv-01",
			Status:      dto.CommandStatusRejected,
			Destination: "nowhere",
			Operation:   "nop",
			Reason:      "destination point \"nowhere\" has no numeric id",
			Timestamp:   time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC),
		}
		data, err := codec.Encode(pubsub.Envelope{Trace: trace, Payload: result})
		Expect(err).ToNot(HaveOccurred())

		decoded, err := codec.Decode(data)
		Expect(err).ToNot(HaveOccurred())
		payload := decoded.(pubsub.Envelope).Payload.(*dto.CommandResult)
		Expect(payload.Timestamp).To(Equal(result.Timestamp.Truncate(time.Millisecond)))
		payload.Timestamp = result.Timestamp
		Expect(*payload).To(Equal(result))
	})

	It("rejects message types without a schema", func() {
		_, err := avro.NewAvroCodec(map[string]string{})
		Expect(err).To(MatchError(avro.ErrUnsupportedMessage))
	})

	It("rejects payloads of another type", func() {
		codec, err := avro.NewAvroCodec(dto.Command{})
		Expect(err).ToNot(HaveOccurred())

		_, err = codec.Encode(dto.CommandResult{})
		Expect(err).To(MatchError(avro.ErrUnsupportedMessage))
	})

	It("fails on truncated data", func() {
		codec, err := avro.NewAvroCodec(dto.Command{})
		Expect(err).ToNot(HaveOccurred())

		data, err := codec.Encode(command)
		Expect(err).ToNot(HaveOccurred())

		_, err = codec.Decode(data[:len(data)/2])
		Expect(err).To(HaveOccurred())
	})
})
