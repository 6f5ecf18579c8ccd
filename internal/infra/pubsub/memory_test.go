package pubsub_test

import (
	"context"
	"errors"
	"time"
	"vehicle-bridge/internal/infra/pubsub"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type commandMessage struct {
	VehicleName string `json:"vehicle_name"`
	Destination string `json:"destination"`
}

type received struct {
	key   pubsub.Key
	value pubsub.Prototype
	ctx   context.Context
}

var _ = ginkgo.Describe("MemoryBroker", func() {
	var (
		broker    *pubsub.MemoryBroker
		publisher pubsub.Publisher
		ctx       context.Context
		cancel    context.CancelFunc
	)

	const topic pubsub.Topic = "vehicle_commands"

	consume := func(group string, out chan<- received) {
		consumer := pubsub.NewMemoryConsumerFactory(broker, group).New()
		go func() {
			defer ginkgo.GinkgoRecover()
			err := consumer.Consume(ctx, topic, func(hctx context.Context, key pubsub.Key, msg pubsub.Prototype) error {
				out <- received{key: key, value: msg, ctx: hctx}
				return nil
			}, commandMessage{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		}()
	}

	ginkgo.BeforeEach(func() {
		broker = pubsub.NewMemoryBroker()
		ctx, cancel = context.WithCancel(context.Background())

		var err error
		publisher, err = pubsub.NewMemoryPublisherFactory(broker).New(topic, commandMessage{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.AfterEach(func() {
		cancel()
	})

	ginkgo.It("decodes messages into a pointer of the prototype type", func() {
		out := make(chan received, 1)
		consume("bridge", out)
		gomega.Eventually(func() int { return broker.Subscribers(topic) }).Should(gomega.Equal(1))

		err := publisher.Publish(context.Background(), "agv-01", commandMessage{VehicleName: "agv-01", Destination: "Point-A"})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		var msg received
		gomega.Eventually(out).Should(gomega.Receive(&msg))
		gomega.Expect(msg.key).To(gomega.Equal(pubsub.Key("agv-01")))
		gomega.Expect(msg.value).To(gomega.Equal(&commandMessage{VehicleName: "agv-01", Destination: "Point-A"}))
	})

	ginkgo.It("delivers each message once per group", func() {
		first := make(chan received, 4)
		second := make(chan received, 4)
		other := make(chan received, 4)
		consume("bridge", first)
		consume("bridge", second)
		consume("audit", other)
		gomega.Eventually(func() int { return broker.Subscribers(topic) }).Should(gomega.Equal(3))

		for i := 0; i < 2; i++ {
			gomega.Expect(publisher.Publish(context.Background(), "agv-01", commandMessage{Destination: "Point-A"})).To(gomega.Succeed())
		}

		gomega.Eventually(func() int { return len(other) }).Should(gomega.Equal(2))
		gomega.Eventually(func() int { return len(first) + len(second) }).Should(gomega.Equal(2))
		gomega.Consistently(func() int { return len(first) + len(second) }, 100*time.Millisecond).Should(gomega.Equal(2))
	})

	ginkgo.It("drops messages nobody consumes", func() {
		gomega.Expect(publisher.Publish(context.Background(), "agv-01", commandMessage{})).To(gomega.Succeed())
	})

	ginkgo.It("keeps consuming after a handler error", func() {
		calls := make(chan struct{}, 2)
		consumer := pubsub.NewMemoryConsumerFactory(broker, "bridge").New()
		go consumer.Consume(ctx, topic, func(context.Context, pubsub.Key, pubsub.Prototype) error {
			calls <- struct{}{}
			return errors.New("rejected")
		}, commandMessage{})
		gomega.Eventually(func() int { return broker.Subscribers(topic) }).Should(gomega.Equal(1))

		gomega.Expect(publisher.Publish(context.Background(), "agv-01", commandMessage{})).To(gomega.Succeed())
		gomega.Expect(publisher.Publish(context.Background(), "agv-01", commandMessage{})).To(gomega.Succeed())

		gomega.Eventually(func() int { return len(calls) }).Should(gomega.Equal(2))
	})

	ginkgo.It("unregisters the consumer when its context ends", func() {
		out := make(chan received, 1)
		consume("bridge", out)
		gomega.Eventually(func() int { return broker.Subscribers(topic) }).Should(gomega.Equal(1))

		cancel()

		gomega.Eventually(func() int { return broker.Subscribers(topic) }).Should(gomega.Equal(0))
	})

	ginkgo.Context("Factory", func() {
		ginkgo.It("uses the memory broker for local runs", func() {
			factory := pubsub.NewFactory(pubsub.FactoryOptions{
				Environment:   pubsub.EnvironmentLocal,
				ConsumerGroup: "bridge",
			})

			gomega.Expect(factory.GetPublisherFactory()).To(gomega.BeAssignableToTypeOf(&pubsub.MemoryPublisherFactory{}))
			gomega.Expect(factory.GetConsumerFactory()).To(gomega.BeAssignableToTypeOf(&pubsub.MemoryConsumerFactory{}))
		})

		ginkgo.It("uses kafka otherwise", func() {
			factory := pubsub.NewFactory(pubsub.FactoryOptions{
				Environment:   "production",
				KafkaBrokers:  []string{"localhost:9092"},
				ConsumerGroup: "bridge",
			})

			gomega.Expect(factory.GetPublisherFactory()).To(gomega.BeAssignableToTypeOf(&pubsub.KafkaPublisherFactory{}))
			gomega.Expect(factory.GetConsumerFactory()).To(gomega.BeAssignableToTypeOf(&pubsub.KafkaConsumerFactory{}))
			gomega.Expect(factory.GetGroupConsumerFactory("replicator")).To(gomega.BeAssignableToTypeOf(&pubsub.KafkaConsumerFactory{}))
		})

		ginkgo.It("delivers to every group of a local factory", func() {
			factory := pubsub.NewFactory(pubsub.FactoryOptions{
				Environment:   pubsub.EnvironmentLocal,
				ConsumerGroup: "bridge",
			})
			publisher, err := factory.GetPublisherFactory().New(topic, commandMessage{})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			out := make(chan string, 64)
			for group, consumers := range map[string]pubsub.ConsumerFactory{
				"bridge":     factory.GetConsumerFactory(),
				"replicator": factory.GetGroupConsumerFactory("replicator"),
			} {
				consumer := consumers.New()
				go func() {
					defer ginkgo.GinkgoRecover()
					err := consumer.Consume(ctx, topic, func(context.Context, pubsub.Key, pubsub.Prototype) error {
						out <- group
						return nil
					}, commandMessage{})
					gomega.Expect(err).NotTo(gomega.HaveOccurred())
				}()
			}

			seen := map[string]bool{}
			gomega.Eventually(func() map[string]bool {
				gomega.Expect(publisher.Publish(ctx, "agv-01", commandMessage{VehicleName: "agv-01"})).To(gomega.Succeed())
				for {
					select {
					case group := <-out:
						seen[group] = true
					case <-time.After(20 * time.Millisecond):
						return seen
					}
				}
			}).Should(gomega.HaveLen(2))
		})
	})
})
