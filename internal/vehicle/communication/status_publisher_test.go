package communication_test

import (
	"context"
	"time"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/vehicle/communication"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/usecases"
	mockmqtt "vehicle-bridge/test/unit/doubles/infra/mqtt"
	mockusecases "vehicle-bridge/test/unit/doubles/vehicle/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("StatusPublisher", func() {
	var (
		ctrl      *gomock.Controller
		client    *mockmqtt.MockClient
		service   *mockusecases.MockVehicleService
		broker    *async.LocalBroker
		publisher *communication.StatusPublisher
		ctx       context.Context
		cancel    context.CancelFunc
		finished  chan struct{}
		snapshot  domain.VehicleSnapshot
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		client = mockmqtt.NewMockClient(ctrl)
		service = mockusecases.NewMockVehicleService(ctrl)
		broker = async.NewLocalBroker()
		publisher = communication.NewStatusPublisher("agv-01", service, client, broker)
		ctx, cancel = context.WithCancel(context.Background())
		finished = make(chan struct{})

		snapshot = domain.VehicleSnapshot{Settings: domain.DefaultVehicleSettings(), Enabled: true}
		service.EXPECT().Snapshot().Return(snapshot).AnyTimes()
		service.EXPECT().ConnectionState().Return(domain.ConnectionConnected).AnyTimes()
	})

	ginkgo.AfterEach(func() {
		cancel()
		gomega.Eventually(finished).Should(gomega.BeClosed())
		broker.Stop()
		ctrl.Finish()
	})

	start := func() {
		go publisher.Run(ctx, func() { close(finished) })
	}

	ginkgo.It("announces itself and the current status on start", func() {
		online := make(chan struct{})
		status := make(chan communication.StatusMessage, 1)
		client.EXPECT().PublishRetained("vehicles/agv-01/availability", communication.AvailabilityOnline).
			Do(func(string, any) { close(online) })
		client.EXPECT().PublishRetained("vehicles/agv-01/status", gomock.Any()).
			Do(func(_ string, msg any) { status <- msg.(communication.StatusMessage) })
		client.EXPECT().PublishRetained("vehicles/agv-01/availability", communication.AvailabilityOffline)

		start()

		gomega.Eventually(online).Should(gomega.BeClosed())
		var published communication.StatusMessage
		gomega.Eventually(status).Should(gomega.Receive(&published))
		gomega.Expect(published.Connection).To(gomega.Equal(domain.ConnectionConnected))
		gomega.Expect(published.Vehicle).To(gomega.Equal(snapshot))
		gomega.Expect(published.Bridge.ID).NotTo(gomega.BeEmpty())
	})

	ginkgo.It("refreshes the status and reports executed commands", func() {
		statuses := make(chan struct{}, 8)
		events := make(chan communication.CommandExecutedMessage, 1)
		client.EXPECT().PublishRetained("vehicles/agv-01/availability", gomock.Any()).AnyTimes()
		client.EXPECT().PublishRetained("vehicles/agv-01/status", gomock.Any()).
			Do(func(string, any) { statuses <- struct{}{} }).MinTimes(2)
		client.EXPECT().Publish("vehicles/agv-01/events", gomock.Any()).
			Do(func(_ string, msg any) { events <- msg.(communication.CommandExecutedMessage) })

		start()
		gomega.Eventually(statuses).Should(gomega.Receive())
		gomega.Eventually(func() error {
			return broker.Publish(ctx, usecases.VehicleEventsTopic, async.BrokerMessage{
				Event: string(domain.AttributeCommandExecuted),
				Value: domain.MovementCommand{ID: "cmd-1", DestinationPoint: "Point-A", Operation: "load"},
			})
		}).Should(gomega.Succeed())

		var event communication.CommandExecutedMessage
		gomega.Eventually(events).Should(gomega.Receive(&event))
		gomega.Expect(event.CommandID).To(gomega.Equal("cmd-1"))
		gomega.Expect(event.Destination).To(gomega.Equal("Point-A"))
		gomega.Expect(event.Operation).To(gomega.Equal("load"))
		gomega.Eventually(statuses).Should(gomega.Receive())
	})

	ginkgo.It("does not publish events for plain model changes", func() {
		statuses := make(chan struct{}, 8)
		client.EXPECT().PublishRetained("vehicles/agv-01/availability", gomock.Any()).AnyTimes()
		client.EXPECT().PublishRetained("vehicles/agv-01/status", gomock.Any()).
			Do(func(string, any) { statuses <- struct{}{} }).AnyTimes()
		client.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		start()
		gomega.Eventually(statuses).Should(gomega.Receive())
		gomega.Eventually(func() error {
			return broker.Publish(ctx, usecases.VehicleEventsTopic, async.BrokerMessage{
				Event: string(domain.AttributeVehicleIdle),
				Value: true,
			})
		}).Should(gomega.Succeed())

		gomega.Eventually(statuses, time.Second).Should(gomega.Receive())
	})
})
