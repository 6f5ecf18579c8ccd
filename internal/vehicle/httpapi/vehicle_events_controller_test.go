package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/httpapi"
	"vehicle-bridge/internal/vehicle/usecases"
	mockusecases "vehicle-bridge/test/unit/doubles/vehicle/usecases"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("VehicleEventsController", func() {
	var (
		ctrl        *gomock.Controller
		mockService *mockusecases.MockVehicleService
		broker      *async.LocalBroker
		controller  *httpapi.VehicleEventsController
		server      *httptest.Server
		conn        *websocket.Conn
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockService = mockusecases.NewMockVehicleService(ctrl)
		broker = async.NewLocalBroker()

		settings := domain.DefaultVehicleSettings()
		settings.Name = "agv-01"
		mockService.EXPECT().Snapshot().Return(domain.VehicleSnapshot{
			Settings: settings,
			Enabled:  true,
			State:    domain.VehicleStateIdle,
		}).AnyTimes()

		controller = httpapi.NewVehicleEventsController("agv-01", mockService, broker)
		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/vehicle/events"
		var err error
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		conn.Close()
		controller.Shutdown()
		server.Close()
		broker.Stop()
		ctrl.Finish()
	})

	read := func() httpapi.VehicleEventMessage {
		var message httpapi.VehicleEventMessage
		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		Expect(conn.ReadJSON(&message)).To(Succeed())
		return message
	}

	It("sends the current snapshot first", func() {
		message := read()

		Expect(message.Type).To(Equal(httpapi.EventTypeSnapshot))
		Expect(message.Vehicle).To(Equal("agv-01"))
		Expect(message.Data).To(HaveKeyWithValue("state", "IDLE"))
	})

	It("forwards model changes to connected clients", func() {
		read()

		err := broker.Publish(context.Background(), usecases.VehicleEventsTopic, async.BrokerMessage{
			Event: string(domain.AttributeVehiclePosition),
			Value: "Point-B",
		})
		Expect(err).NotTo(HaveOccurred())

		message := read()
		Expect(message.Type).To(Equal("VEHICLE_POSITION"))
		Expect(message.Data).To(Equal("Point-B"))
	})

	It("closes client connections on shutdown", func() {
		read()

		controller.Shutdown()

		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		_, _, err := conn.ReadMessage()
		Expect(err).To(HaveOccurred())
	})
})
