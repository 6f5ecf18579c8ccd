package workers_test

import (
	"context"
	"errors"
	"fmt"
	"time"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/dto"
	"vehicle-bridge/internal/vehicle/usecases"
	"vehicle-bridge/internal/vehicle/workers"
	mockusecases "vehicle-bridge/test/unit/doubles/vehicle/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("CommandIntakeWorker", func() {
	var (
		ctrl         *gomock.Controller
		mockService  *mockusecases.MockVehicleService
		broker       *async.LocalBroker
		pubsubBroker *pubsub.MemoryBroker
		commands     pubsub.Publisher
		results      chan dto.CommandResult
		ctx          context.Context
		cancel       context.CancelFunc
		stopped      chan struct{}
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockService = mockusecases.NewMockVehicleService(ctrl)
		broker = async.NewLocalBroker()
		pubsubBroker = pubsub.NewMemoryBroker()
		ctx, cancel = context.WithCancel(context.Background())

		var err error
		commands, err = pubsub.NewMemoryPublisherFactory(pubsubBroker).New(dto.TopicVehicleCommands, dto.Command{})
		Expect(err).NotTo(HaveOccurred())

		results = make(chan dto.CommandResult, 10)
		resultConsumer := pubsub.NewMemoryConsumerFactory(pubsubBroker, "dispatcher").New()
		go resultConsumer.Consume(ctx, dto.TopicCommandResults, func(_ context.Context, _ pubsub.Key, msg pubsub.Prototype) error {
			results <- *msg.(*dto.CommandResult)
			return nil
		}, dto.CommandResult{})
		Eventually(func() int { return pubsubBroker.Subscribers(dto.TopicCommandResults) }).Should(Equal(1))

		worker, err := workers.NewCommandIntakeWorker("agv-01", mockService, broker,
			pubsub.NewMemoryConsumerFactory(pubsubBroker, "vehicle-bridge"),
			pubsub.NewMemoryPublisherFactory(pubsubBroker))
		Expect(err).NotTo(HaveOccurred())

		stopped = make(chan struct{})
		go worker.Run(ctx, func() { close(stopped) })
		Eventually(func() int { return pubsubBroker.Subscribers(dto.TopicVehicleCommands) }).Should(Equal(1))
	})

	AfterEach(func() {
		cancel()
		Eventually(stopped).Should(BeClosed())
		broker.Stop()
		ctrl.Finish()
	})

	publishCommand := func(command dto.Command) {
		Expect(commands.Publish(context.Background(), pubsub.Key(command.Vehicle), command)).To(Succeed())
	}

	It("sends commands to the engine and reports them accepted", func() {
		sent := make(chan domain.MovementCommand, 1)
		mockService.EXPECT().SendCommand(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd domain.MovementCommand) error {
				sent <- cmd
				return nil
			})

		publishCommand(dto.Command{ID: "cmd-1", Vehicle: "agv-01", DestinationPoint: "Point-A", Operation: "load"})

		var cmd domain.MovementCommand
		Eventually(sent).Should(Receive(&cmd))
		Expect(cmd.ID).To(Equal(domain.ID("cmd-1")))
		Expect(cmd.Operation).To(Equal("load"))

		var result dto.CommandResult
		Eventually(results).Should(Receive(&result))
		Expect(result.CommandID).To(Equal("cmd-1"))
		Expect(result.Status).To(Equal(dto.CommandStatusAccepted))
	})

	It("rejects commands the vehicle cannot express", func() {
		mockService.EXPECT().SendCommand(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("mapping command: %w", domain.ErrInvalidCommand))

		publishCommand(dto.Command{ID: "cmd-2", Vehicle: "agv-01", DestinationPoint: "Nowhere"})

		var result dto.CommandResult
		Eventually(results).Should(Receive(&result))
		Expect(result.Status).To(Equal(dto.CommandStatusRejected))
		Expect(result.Reason).To(ContainSubstring("invalid movement command"))
	})

	It("rejects commands without destination", func() {
		publishCommand(dto.Command{ID: "cmd-3", Vehicle: "agv-01"})

		var result dto.CommandResult
		Eventually(results).Should(Receive(&result))
		Expect(result.CommandID).To(Equal("cmd-3"))
		Expect(result.Status).To(Equal(dto.CommandStatusRejected))
	})

	It("reports engine failures as rejections", func() {
		mockService.EXPECT().SendCommand(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		publishCommand(dto.Command{ID: "cmd-4", Vehicle: "agv-01", DestinationPoint: "Point-A"})

		var result dto.CommandResult
		Eventually(results).Should(Receive(&result))
		Expect(result.Status).To(Equal(dto.CommandStatusRejected))
		Expect(result.Reason).To(Equal("boom"))
	})

	It("skips commands for other vehicles", func() {
		publishCommand(dto.Command{ID: "cmd-5", Vehicle: "agv-02", DestinationPoint: "Point-A"})

		Consistently(results, 200*time.Millisecond).ShouldNot(Receive())
	})

	It("reports executed commands", func() {
		executed := async.BrokerMessage{
			Event: string(domain.AttributeCommandExecuted),
			Value: domain.MovementCommand{ID: "cmd-6", DestinationPoint: "Point-B", Operation: "unload"},
		}
		Eventually(func() error {
			return broker.Publish(context.Background(), usecases.VehicleEventsTopic, executed)
		}).Should(Succeed())

		var result dto.CommandResult
		Eventually(results).Should(Receive(&result))
		Expect(result.CommandID).To(Equal("cmd-6"))
		Expect(result.Status).To(Equal(dto.CommandStatusExecuted))
		Expect(result.Destination).To(Equal("Point-B"))
	})

	It("ignores other model changes", func() {
		Eventually(func() error {
			return broker.Publish(context.Background(), usecases.VehicleEventsTopic, async.BrokerMessage{
				Event: string(domain.AttributeVehiclePosition),
				Value: "Point-C",
			})
		}).Should(Succeed())

		Consistently(results, 200*time.Millisecond).ShouldNot(Receive())
	})
})
