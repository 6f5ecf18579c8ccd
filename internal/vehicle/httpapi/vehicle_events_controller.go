package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/httpserver"
	"vehicle-bridge/internal/vehicle/usecases"

	"github.com/gorilla/websocket"
)

const (
	EventTypeSnapshot = "SNAPSHOT"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// VehicleEventMessage is one model change pushed to websocket clients.
type VehicleEventMessage struct {
	Type      string    `json:"type"`
	Vehicle   string    `json:"vehicle"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// VehicleEventsController streams process model changes over websockets. A new client first
// receives the current snapshot.
type VehicleEventsController struct {
	vehicle    string
	service    usecases.VehicleService
	broker     async.InternalBroker
	clients    map[*websocket.Conn]struct{}
	clientsMux sync.Mutex
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewVehicleEventsController(vehicle string, service usecases.VehicleService, broker async.InternalBroker) *VehicleEventsController {
	ctx, cancel := context.WithCancel(context.Background())

	c := &VehicleEventsController{
		vehicle:    vehicle,
		service:    service,
		broker:     broker,
		clients:    make(map[*websocket.Conn]struct{}),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	subscription, err := broker.Subscribe(usecases.VehicleEventsTopic)
	if err != nil {
		slog.Error("subscribing to vehicle events", slog.Any("error", err))
		close(c.done)
		return c
	}

	go c.run(subscription)
	return c
}

var _ httpserver.Controller = (*VehicleEventsController)(nil)

func (c *VehicleEventsController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /vehicle/events", c.handleWebSocket())
}

func (c *VehicleEventsController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.Any("error", err))
			return
		}

		slog.Info("vehicle events client connected", slog.String("remote_addr", r.RemoteAddr))

		select {
		case c.register <- conn:
		case <-c.done:
			conn.Close()
			return
		}

		go c.keepAlive(conn)
		go c.readUntilClosed(conn)
	}
}

func (c *VehicleEventsController) run(subscription async.Subscription) {
	defer close(c.done)
	defer c.broker.Unsubscribe(usecases.VehicleEventsTopic, subscription)

	for {
		select {
		case <-c.ctx.Done():
			c.closeAll()
			return

		case conn := <-c.register:
			snapshot := VehicleEventMessage{
				Type:      EventTypeSnapshot,
				Vehicle:   c.vehicle,
				Timestamp: time.Now(),
				Data:      c.service.Snapshot(),
			}
			if c.write(conn, snapshot) {
				c.clientsMux.Lock()
				c.clients[conn] = struct{}{}
				c.clientsMux.Unlock()
			}

		case conn := <-c.unregister:
			c.remove(conn)

		case msg, ok := <-subscription.Receiver:
			if !ok {
				c.closeAll()
				return
			}
			c.broadcast(VehicleEventMessage{
				Type:      msg.Event,
				Vehicle:   c.vehicle,
				Timestamp: time.Now(),
				Data:      msg.Value,
			})
		}
	}
}

func (c *VehicleEventsController) broadcast(message VehicleEventMessage) {
	c.clientsMux.Lock()
	conns := make([]*websocket.Conn, 0, len(c.clients))
	for conn := range c.clients {
		conns = append(conns, conn)
	}
	c.clientsMux.Unlock()

	for _, conn := range conns {
		if !c.write(conn, message) {
			c.remove(conn)
		}
	}
}

func (c *VehicleEventsController) write(conn *websocket.Conn, message VehicleEventMessage) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(message); err != nil {
		slog.Debug("writing to vehicle events client", slog.Any("error", err))
		conn.Close()
		return false
	}
	return true
}

func (c *VehicleEventsController) remove(conn *websocket.Conn) {
	c.clientsMux.Lock()
	defer c.clientsMux.Unlock()
	if _, ok := c.clients[conn]; ok {
		delete(c.clients, conn)
		conn.Close()
		slog.Info("vehicle events client disconnected", slog.Int("total_clients", len(c.clients)))
	}
}

func (c *VehicleEventsController) closeAll() {
	c.clientsMux.Lock()
	defer c.clientsMux.Unlock()
	for conn := range c.clients {
		conn.Close()
		delete(c.clients, conn)
	}
}

// readUntilClosed consumes control frames. Clients are not expected to send data.
func (c *VehicleEventsController) readUntilClosed(conn *websocket.Conn) {
	defer func() {
		select {
		case c.unregister <- conn:
		case <-c.done:
		}
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("vehicle events read error", slog.Any("error", err))
			}
			return
		}
	}
}

func (c *VehicleEventsController) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *VehicleEventsController) Shutdown() {
	slog.Info("shutting down vehicle events controller")
	c.cancel()
	<-c.done
}
