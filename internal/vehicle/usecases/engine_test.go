package usecases_test

import (
	"context"
	"time"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/mapper"
	"vehicle-bridge/internal/vehicle/requests"
	"vehicle-bridge/internal/vehicle/telegrams"
	"vehicle-bridge/internal/vehicle/usecases"
	mockusecases "vehicle-bridge/test/unit/doubles/vehicle/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Engine", func() {
	var (
		ctrl      *gomock.Controller
		factory   *mockusecases.MockChannelManagerFactory
		channel   *mockusecases.MockChannelManager
		scheduler *manualScheduler
		model     *domain.ProcessModel
		engine    *usecases.Engine
		connected bool
		sent      []telegrams.Request
		executed  []domain.MovementCommand
	)

	expectChannel := func(ch *mockusecases.MockChannelManager) {
		factory.EXPECT().New(gomock.Any()).Return(ch)
		ch.EXPECT().Initialize(10*time.Second, false)
		ch.EXPECT().IsConnected().DoAndReturn(func() bool { return connected }).AnyTimes()
		ch.EXPECT().Send(gomock.Any()).Do(func(req telegrams.Request) { sent = append(sent, req) }).AnyTimes()
		ch.EXPECT().SetLoggingEnabled(gomock.Any()).AnyTimes()
	}

	connect := func() {
		channel.EXPECT().Connect("localhost", 2000)
		engine.Connect()
		connected = true
		engine.OnConnect()
	}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		factory = mockusecases.NewMockChannelManagerFactory(ctrl)
		channel = mockusecases.NewMockChannelManager(ctrl)
		scheduler = &manualScheduler{}
		connected = false
		sent = nil
		executed = nil

		model = domain.NewProcessModel(domain.DefaultVehicleSettings())
		model.AddListener(func(event domain.ModelEvent) {
			if event.Attribute == domain.AttributeCommandExecuted {
				executed = append(executed, event.Value.(domain.MovementCommand))
			}
		})

		engine = usecases.NewEngine(
			model,
			factory,
			requests.NewMatcherFactory(),
			mapper.NewOrderMapper(map[string]uint16{"Point-A": 5}),
			inlineExecutor{},
			scheduler,
			usecases.NewCommandTracker(nil),
		)
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Context("while disabled", func() {
		It("should report the driver as not enabled", func() {
			Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisabled))
			Expect(engine.CanExecute([]string{"park"})).To(Equal(domain.Rejected(usecases.ReasonNotEnabled)))
		})

		It("should not connect without a channel", func() {
			engine.Connect()
			Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisabled))
		})
	})

	Context("Enable", func() {
		BeforeEach(func() {
			expectChannel(channel)
			engine.Enable()
		})

		It("should create and initialize a channel once", func() {
			engine.Enable()

			Expect(model.IsEnabled()).To(BeTrue())
			Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisconnected))
		})

		It("should be connecting after Connect", func() {
			channel.EXPECT().Connect("localhost", 2000)
			engine.Connect()

			Expect(engine.ConnectionState()).To(Equal(domain.ConnectionConnecting))
		})

		It("should not dial again while connecting", func() {
			channel.EXPECT().Connect("localhost", 2000).Times(1)
			engine.Connect()
			engine.Connect()

			Expect(engine.ConnectionState()).To(Equal(domain.ConnectionConnecting))
		})

		It("should reject operations while not connected", func() {
			Expect(engine.CanExecute([]string{"park"})).To(Equal(domain.Rejected(usecases.ReasonNotConnected)))
		})

		When("the connection attempt fails", func() {
			It("should schedule a reconnect", func() {
				channel.EXPECT().ScheduleConnect("localhost", 2000, time.Second)

				engine.OnFailedConnectionAttempt()

				Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisconnected))
			})
		})
	})

	Context("connected", func() {
		BeforeEach(func() {
			expectChannel(channel)
			engine.Enable()
			connect()
		})

		It("should request the vehicle state right away", func() {
			Expect(engine.ConnectionState()).To(Equal(domain.ConnectionConnected))
			Expect(sent).To(HaveLen(1))
			Expect(sent[0]).To(Equal(telegrams.NewStateRequest(0)))
		})

		It("should stay connected when Connect is called on a live link", func() {
			engine.OnIncomingTelegram(telegrams.StateResponse{ID: 0, OperationState: telegrams.OperationIdle})

			engine.Connect()

			Expect(engine.ConnectionState()).To(Equal(domain.ConnectionConnected))
			Expect(engine.Snapshot().Connected).To(BeTrue())
		})

		It("should leave the vehicle idle and unknown once disabled", func() {
			engine.OnIncomingTelegram(telegrams.StateResponse{ID: 0, OperationState: telegrams.OperationMoving})
			Expect(engine.Snapshot().State).To(Equal(domain.VehicleStateExecuting))
			Expect(engine.Snapshot().Idle).To(BeFalse())

			channel.EXPECT().Terminate()
			connected = false
			engine.Disable()

			snapshot := engine.Snapshot()
			Expect(snapshot.Idle).To(BeTrue())
			Expect(snapshot.State).To(Equal(domain.VehicleStateUnknown))
			Expect(snapshot.Connected).To(BeFalse())
		})

		It("should start periodic state requests", func() {
			Expect(engine.PollingActive()).To(BeTrue())
			Expect(scheduler.active()).To(HaveLen(1))
			Expect(scheduler.active()[0].interval).To(Equal(500 * time.Millisecond))
		})

		It("should apply a matching state response to the model", func() {
			engine.OnIncomingTelegram(telegrams.StateResponse{
				ID:             0,
				PositionID:     5,
				OperationState: telegrams.OperationIdle,
				LoadState:      telegrams.LoadEmpty,
			})

			snapshot := engine.Snapshot()
			Expect(snapshot.Position).To(Equal("5"))
			Expect(snapshot.State).To(Equal(domain.VehicleStateIdle))
			Expect(snapshot.Idle).To(BeFalse())
			Expect(snapshot.CurrentState).NotTo(BeNil())
			Expect(snapshot.PreviousState).To(BeNil())
			Expect(engine.CanExecute([]string{"load", "unload"})).To(Equal(domain.Accepted()))
		})

		It("should ignore a response that does not match", func() {
			engine.OnIncomingTelegram(telegrams.StateResponse{ID: 42, PositionID: 5})

			Expect(engine.Snapshot().CurrentState).To(BeNil())
			Expect(sent).To(HaveLen(1))
		})

		It("should not stack periodic state requests", func() {
			engine.OnIncomingTelegram(telegrams.StateResponse{ID: 0})

			scheduler.fire()
			scheduler.fire()

			Expect(sent).To(HaveLen(2))
			Expect(engine.AwaitingStateResponse()).To(BeTrue())
		})

		It("should report a command as executed once its order is finished", func() {
			engine.OnIncomingTelegram(telegrams.StateResponse{ID: 0, LoadState: telegrams.LoadEmpty})

			cmd := domain.MovementCommand{ID: "cmd-1", DestinationPoint: "Point-A", Operation: domain.OperationLoad}
			Expect(engine.SendCommand(context.Background(), cmd)).To(Succeed())

			Expect(sent).To(HaveLen(2))
			Expect(sent[1]).To(Equal(telegrams.NewOrderRequest(1, 1, 5, telegrams.ActionLoad)))
			Expect(engine.PendingCommands()).To(HaveLen(1))
			Expect(engine.Snapshot().LastOrderSent.OrderID).To(Equal(uint16(1)))

			engine.OnIncomingTelegram(telegrams.NewOrderResponse(1, 1))
			scheduler.fire()
			Expect(sent).To(HaveLen(3))
			Expect(sent[2]).To(Equal(telegrams.NewStateRequest(2)))

			engine.OnIncomingTelegram(telegrams.StateResponse{
				ID:                  2,
				PositionID:          5,
				OperationState:      telegrams.OperationIdle,
				LoadState:           telegrams.LoadFull,
				LastReceivedOrderID: 1,
				LastFinishedOrderID: 1,
			})

			Expect(executed).To(Equal([]domain.MovementCommand{cmd}))
			Expect(engine.PendingCommands()).To(BeEmpty())
			Expect(engine.Snapshot().PreviousState).NotTo(BeNil())
		})

		It("should reject a command for an unknown point", func() {
			cmd := domain.MovementCommand{ID: "cmd-2", DestinationPoint: "Nowhere"}

			err := engine.SendCommand(context.Background(), cmd)

			Expect(err).To(MatchError(domain.ErrInvalidCommand))
			Expect(engine.PendingCommands()).To(BeEmpty())
			Expect(sent).To(HaveLen(1))
		})

		It("should restart polling when the interval changes", func() {
			interval := time.Second
			engine.UpdateSettings(usecases.SettingsUpdate{StateRequestInterval: &interval})

			Expect(scheduler.active()).To(HaveLen(1))
			Expect(scheduler.active()[0].interval).To(Equal(time.Second))
		})

		It("should stop polling when periodic requests are turned off", func() {
			off := false
			engine.UpdateSettings(usecases.SettingsUpdate{PeriodicStateRequestsEnabled: &off})

			Expect(engine.PollingActive()).To(BeFalse())
		})

		When("the connection is lost", func() {
			It("should reset the vehicle and reconnect", func() {
				channel.EXPECT().ScheduleConnect("localhost", 2000, time.Second)
				engine.OnIncomingTelegram(telegrams.StateResponse{ID: 0, OperationState: telegrams.OperationIdle})

				connected = false
				engine.OnDisconnect()

				snapshot := engine.Snapshot()
				Expect(snapshot.Connected).To(BeFalse())
				Expect(snapshot.Idle).To(BeTrue())
				Expect(snapshot.State).To(Equal(domain.VehicleStateUnknown))
				Expect(engine.PollingActive()).To(BeFalse())
				Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisconnected))
			})
		})

		When("the vehicle goes idle", func() {
			It("should disconnect", func() {
				channel.EXPECT().Disconnect()

				engine.OnIdle()

				Expect(engine.Snapshot().Idle).To(BeTrue())
			})
		})

		It("should drop tracked commands on ClearQueue", func() {
			engine.OnIncomingTelegram(telegrams.StateResponse{ID: 0})
			Expect(engine.SendCommand(context.Background(), domain.MovementCommand{ID: "c", DestinationPoint: "7"})).To(Succeed())

			engine.ClearQueue()

			Expect(engine.PendingCommands()).To(BeEmpty())
		})

		Context("Disable", func() {
			BeforeEach(func() {
				Expect(engine.SendCommand(context.Background(), domain.MovementCommand{ID: "c", DestinationPoint: "7"})).To(Succeed())
				channel.EXPECT().Terminate()
				connected = false
				engine.Disable()
			})

			It("should drop everything and stop polling", func() {
				Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisabled))
				Expect(engine.PendingCommands()).To(BeEmpty())
				Expect(engine.PollingActive()).To(BeFalse())
				Expect(engine.AwaitingStateResponse()).To(BeFalse())
				Expect(model.IsConnected()).To(BeFalse())
			})

			It("should ignore late channel events", func() {
				engine.OnConnect()
				engine.OnIncomingTelegram(telegrams.StateResponse{ID: 0, PositionID: 9})

				Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisabled))
				Expect(engine.Snapshot().Position).To(BeEmpty())
			})

			It("should be disconnected with nothing queued when enabled again", func() {
				second := mockusecases.NewMockChannelManager(ctrl)
				expectChannel(second)
				engine.Enable()

				Expect(engine.ConnectionState()).To(Equal(domain.ConnectionDisconnected))
				Expect(engine.PendingCommands()).To(BeEmpty())
				Expect(engine.AwaitingStateResponse()).To(BeFalse())

				sentBefore := len(sent)
				channel = second
				connect()

				Expect(sent[sentBefore:]).To(HaveLen(1))
				Expect(sent[sentBefore]).To(BeAssignableToTypeOf(telegrams.StateRequest{}))
				for _, req := range sent[sentBefore:] {
					Expect(req).NotTo(BeAssignableToTypeOf(telegrams.OrderRequest{}))
				}
			})

			It("should start from scratch when enabled again", func() {
				second := mockusecases.NewMockChannelManager(ctrl)
				expectChannel(second)
				engine.Enable()
				channel = second
				connect()

				Expect(sent[len(sent)-1]).To(Equal(telegrams.NewStateRequest(1)))
				Expect(engine.PendingCommands()).To(BeEmpty())
				Expect(engine.PollingActive()).To(BeTrue())
			})
		})
	})
})
