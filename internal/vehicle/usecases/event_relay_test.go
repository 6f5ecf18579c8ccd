package usecases_test

import (
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventRelay", func() {
	var (
		broker       *async.LocalBroker
		model        *domain.ProcessModel
		subscription async.Subscription
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		model = domain.NewProcessModel(domain.DefaultVehicleSettings())
		usecases.NewEventRelay(model, broker)
		subscription, _ = broker.Subscribe(usecases.VehicleEventsTopic)
	})

	AfterEach(func() {
		broker.Stop()
	})

	It("should publish model changes by attribute name", func() {
		model.SetVehiclePosition("12")

		Eventually(subscription.Receiver).Should(Receive(And(
			HaveField("Event", string(domain.AttributeVehiclePosition)),
			HaveField("Value", "12"),
		)))
	})

	It("should publish executed commands", func() {
		cmd := domain.MovementCommand{ID: "c-1", DestinationPoint: "3"}

		model.CommandExecuted(cmd)

		Eventually(subscription.Receiver).Should(Receive(HaveField("Value", cmd)))
	})

	It("should not publish unchanged values", func() {
		model.SetVehicleIdle(true)

		Consistently(subscription.Receiver).ShouldNot(Receive())
	})
})
