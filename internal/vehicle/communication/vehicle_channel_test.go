package communication_test

import (
	"io"
	"net"
	"time"
	"vehicle-bridge/internal/vehicle/communication"
	"vehicle-bridge/internal/vehicle/telegrams"
	"vehicle-bridge/internal/vehicle/usecases"
	mockusecases "vehicle-bridge/test/unit/doubles/vehicle/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("VehicleChannel", func() {
	var (
		ctrl     *gomock.Controller
		listener *mockusecases.MockConnectionEventListener
		server   net.Listener
		channel  usecases.ChannelManager
		port     int
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		listener = mockusecases.NewMockConnectionEventListener(ctrl)

		var err error
		server, err = net.Listen("tcp", "127.0.0.1:0")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		port = server.Addr().(*net.TCPAddr).Port

		factory := communication.NewVehicleChannelFactory("agv-01", telegrams.DiscardOnAmbiguity)
		channel = factory.New(listener)
		channel.Initialize(time.Minute, true)
	})

	ginkgo.AfterEach(func() {
		channel.Terminate()
		server.Close()
		ctrl.Finish()
	})

	accept := func() net.Conn {
		accepted := make(chan net.Conn, 1)
		go func() {
			defer ginkgo.GinkgoRecover()
			conn, err := server.Accept()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			accepted <- conn
		}()
		var conn net.Conn
		gomega.Eventually(accepted, 2*time.Second).Should(gomega.Receive(&conn))
		return conn
	}

	connect := func() net.Conn {
		connected := make(chan struct{})
		listener.EXPECT().OnConnect().Do(func() { close(connected) })
		channel.Connect("127.0.0.1", port)
		conn := accept()
		gomega.Eventually(connected, 2*time.Second).Should(gomega.BeClosed())
		return conn
	}

	ginkgo.It("writes framed requests to the vehicle", func() {
		conn := connect()
		defer conn.Close()
		listener.EXPECT().OnDisconnect().AnyTimes()

		gomega.Expect(channel.IsConnected()).To(gomega.BeTrue())
		request := telegrams.NewOrderRequest(3, 1, 5, telegrams.ActionLoad)
		channel.Send(request)

		raw := make([]byte, telegrams.OrderRequestLength)
		gomega.Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(gomega.Succeed())
		_, err := io.ReadFull(conn, raw)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(raw).To(gomega.Equal(request.Bytes()))
	})

	ginkgo.It("reassembles responses split across reads", func() {
		conn := connect()
		defer conn.Close()
		listener.EXPECT().OnDisconnect().AnyTimes()

		response := telegrams.StateResponse{
			ID:             4,
			PositionID:     5,
			OperationState: telegrams.OperationIdle,
			LoadState:      telegrams.LoadEmpty,
		}
		incoming := make(chan telegrams.Response, 1)
		listener.EXPECT().OnIncomingTelegram(gomock.Any()).Do(func(resp telegrams.Response) {
			incoming <- resp
		})

		raw := response.Bytes()
		_, err := conn.Write(raw[:6])
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		time.Sleep(20 * time.Millisecond)
		_, err = conn.Write(raw[6:])
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		var received telegrams.Response
		gomega.Eventually(incoming, 2*time.Second).Should(gomega.Receive(&received))
		gomega.Expect(received).To(gomega.Equal(response))
	})

	ginkgo.It("reports a connection closed by the vehicle", func() {
		conn := connect()

		disconnected := make(chan struct{})
		listener.EXPECT().OnDisconnect().Do(func() { close(disconnected) })
		conn.Close()

		gomega.Eventually(disconnected, 2*time.Second).Should(gomega.BeClosed())
		gomega.Eventually(channel.IsConnected).Should(gomega.BeFalse())
	})

	ginkgo.It("reports a failed connection attempt", func() {
		server.Close()

		failed := make(chan struct{})
		listener.EXPECT().OnFailedConnectionAttempt().Do(func() { close(failed) })
		channel.Connect("127.0.0.1", port)

		gomega.Eventually(failed, 5*time.Second).Should(gomega.BeClosed())
		gomega.Expect(channel.IsConnected()).To(gomega.BeFalse())
	})

	ginkgo.It("reports an idle vehicle", func() {
		channel.Initialize(100*time.Millisecond, false)
		conn := connect()
		defer conn.Close()
		listener.EXPECT().OnDisconnect().AnyTimes()

		idle := make(chan struct{}, 1)
		listener.EXPECT().OnIdle().Do(func() {
			select {
			case idle <- struct{}{}:
			default:
			}
		}).MinTimes(1)

		gomega.Eventually(idle, 2*time.Second).Should(gomega.Receive())
	})
})
