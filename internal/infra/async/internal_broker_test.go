package async_test

import (
	"context"

	"vehicle-bridge/internal/infra/async"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Local Broker", func() {
	var broker *async.LocalBroker
	var topic async.BrokerTopicName
	var subscription async.Subscription
	var message async.BrokerMessage
	var ctx context.Context

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		ctx = context.TODO()
		topic = "vehicle_events"
		message = async.BrokerMessage{
			Event: "VEHICLE_POSITION",
			Value: "42",
		}
	})

	Context("Subscribe", func() {
		When("add a new subscriber for a topic", func() {
			It("should deliver published messages", func() {
				subscription, _ = broker.Subscribe(topic)

				Expect(broker.Publish(ctx, topic, message)).To(Succeed())

				Eventually(subscription.Receiver).Should(Receive(And(
					HaveField("Event", "VEHICLE_POSITION"),
					HaveField("Value", "42"),
				)))
			})
		})

		When("multiple subscriptor", func() {
			It("should deliver to every subscriber", func() {
				subscription, _ = broker.Subscribe(topic)
				subscription2, _ := broker.Subscribe(topic)

				broker.Publish(ctx, topic, message)

				Eventually(subscription.Receiver).Should(Receive())
				Eventually(subscription2.Receiver).Should(Receive())
			})
		})

		When("stop broker", func() {
			It("should close every receiver", func() {
				subscription, _ = broker.Subscribe(topic)

				broker.Stop()

				Eventually(subscription.Receiver).Should(BeClosed())
			})
		})
	})

	Context("Unsubscribe", func() {
		When("there is no subscriptor", func() {
			It("should report the topic as unknown", func() {
				err := broker.Unsubscribe(topic, async.Subscription{ID: "2d582ce4-88e1-40a8-bc14-5cf0311943fd"})

				Expect(err).Should(MatchError(async.ErrTopicNotFound))
			})
		})

		When("subscriptor doesn't exists", func() {
			It("should report the subscriptor as unknown", func() {
				broker.Subscribe(topic)

				err := broker.Unsubscribe(topic, async.Subscription{ID: "2d582ce4-88e1-40a8-bc14-5cf0311943fd"})

				Expect(err).Should(MatchError(async.ErrSubscriptorNotFound))
			})
		})

		When("subscriptor does exists", func() {
			It("should close its receiver", func() {
				subscription, _ = broker.Subscribe(topic)

				Expect(broker.Unsubscribe(topic, subscription)).To(Succeed())

				Expect(broker.Publish(ctx, topic, message)).To(Succeed())
				Eventually(subscription.Receiver).Should(BeClosed())
			})
		})

		When("is called twice", func() {
			It("should not panic", func() {
				subscription, _ = broker.Subscribe(topic)
				broker.Unsubscribe(topic, subscription)

				Expect(func() { broker.Unsubscribe(topic, subscription) }).NotTo(Panic())
			})
		})
	})

	Context("Publish", func() {
		When("topic doesn't exists", func() {
			It("should return an error", func() {
				err := broker.Publish(ctx, "unknown", async.BrokerMessage{})

				Expect(err).Should(MatchError(async.ErrTopicNotFound))
			})
		})

		When("the subscriber does not keep up", func() {
			It("should drop messages instead of blocking", func() {
				broker = async.NewLocalBrokerWithBuffer(2)
				subscription, _ = broker.Subscribe(topic)

				for i := 0; i < 5; i++ {
					Expect(broker.Publish(ctx, topic, message)).To(Succeed())
				}

				Expect(subscription.Receiver).To(HaveLen(2))
			})
		})
	})
})
