package avro_test

import (
	"context"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/avro"
	"vehicle-bridge/internal/vehicle/dto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewCodecFactory", func() {
	It("defaults to json", func() {
		codecs, err := avro.NewCodecFactory("", nil, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(codecs("vehicle_commands", dto.Command{})).To(BeAssignableToTypeOf(&pubsub.JSONCodec{}))
	})

	It("builds avro codecs for known message types", func() {
		codecs, err := avro.NewCodecFactory(avro.FormatAvro, nil, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(codecs("vehicle_commands", dto.Command{})).To(BeAssignableToTypeOf(&avro.AvroCodec{}))
	})

	It("keeps other message types on json", func() {
		codecs, err := avro.NewCodecFactory(avro.FormatAvro, nil, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(codecs("other", map[string]string{})).To(BeAssignableToTypeOf(&pubsub.JSONCodec{}))
	})

	It("needs a registry for the confluent format", func() {
		_, err := avro.NewCodecFactory(avro.FormatConfluent, nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown formats", func() {
		_, err := avro.NewCodecFactory("protobuf", nil, nil)
		Expect(err).To(MatchError(ContainSubstring("protobuf")))
	})

	It("carries commands over the memory broker", func(ctx SpecContext) {
		codecs, err := avro.NewCodecFactory(avro.FormatAvro, nil, nil)
		Expect(err).ToNot(HaveOccurred())

		broker := pubsub.NewMemoryBroker()
		received := make(chan dto.Command, 1)
		consumeCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		consumer := pubsub.NewMemoryConsumerFactory(broker, "bridge", pubsub.WithCodec(codecs)).New()
		go func() {
			defer GinkgoRecover()
			_ = consumer.Consume(consumeCtx, "vehicle_commands", func(_ context.Context, _ pubsub.Key, msg pubsub.Prototype) error {
				received <- *msg.(*dto.Command)
				return nil
			}, dto.Command{})
		}()
		Eventually(func() int { return broker.Subscribers("vehicle_commands") }).Should(Equal(1))

		publisher, err := pubsub.NewMemoryPublisherFactory(broker, pubsub.WithCodec(codecs)).New("vehicle_commands", dto.Command{})
		Expect(err).ToNot(HaveOccurred())

		command := dto.Command{Vehicle: "agv-01", DestinationPoint: "point-a", Operation: "load"}
		Expect(publisher.Publish(ctx, "agv-01", command)).To(Succeed())
		Eventually(received).Should(Receive(Equal(command)))
	})
})
