package simulation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/vehicle/telegrams"
)

const orderQueueSize = 64

type Config struct {
	Addr            string
	InitialPosition uint16
	InitialLoad     telegrams.LoadState
	// OrderDuration is how long the vehicle takes to reach a destination and finish its action.
	OrderDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:2000",
		InitialPosition: 1,
		InitialLoad:     telegrams.LoadEmpty,
		OrderDuration:   2 * time.Second,
	}
}

// VehicleState is what the simulated vehicle reports in its state responses.
type VehicleState struct {
	PositionID          uint16
	OperationState      telegrams.OperationState
	LoadState           telegrams.LoadState
	LastReceivedOrderID uint16
	CurrentOrderID      uint16
	LastFinishedOrderID uint16
}

// Simulator is a vehicle controller speaking the telegram protocol over TCP. It acknowledges
// orders right away and works through them one at a time.
type Simulator struct {
	cfg      Config
	listener net.Listener
	orders   chan telegrams.OrderRequest

	mu     sync.Mutex
	state  VehicleState
	conns  map[net.Conn]struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ async.Worker = (*Simulator)(nil)

// NewSimulator binds the listener so that Addr is known before Run.
func NewSimulator(cfg Config) (*Simulator, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", cfg.Addr, err)
	}

	return &Simulator{
		cfg:      cfg,
		listener: listener,
		orders:   make(chan telegrams.OrderRequest, orderQueueSize),
		state: VehicleState{
			PositionID:     cfg.InitialPosition,
			OperationState: telegrams.OperationIdle,
			LoadState:      cfg.InitialLoad,
		},
		conns: make(map[net.Conn]struct{}),
	}, nil
}

func (s *Simulator) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Simulator) State() VehicleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Simulator) Run(ctx context.Context, done func()) {
	defer done()
	slog.Info("vehicle simulator listening", slog.String("addr", s.listener.Addr().String()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.driveOrders(ctx)

	go func() {
		<-ctx.Done()
		s.listener.Close()
		s.closeConnections()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				slog.Error("accepting connection", slog.Any("error", err))
			}
			s.wg.Wait()
			return
		}

		s.mu.Lock()
		if ctx.Err() != nil {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *Simulator) Shutdown() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.listener.Close()
	s.closeConnections()
}

// DropConnections closes every client connection while the simulator keeps listening.
func (s *Simulator) DropConnections() {
	s.closeConnections()
}

func (s *Simulator) closeConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
		delete(s.conns, conn)
	}
}

func (s *Simulator) serve(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	remote := conn.RemoteAddr().String()
	slog.Info("bridge connected", slog.String("remote_addr", remote))

	reader := bufio.NewReader(conn)
	for {
		raw, err := readFrame(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				slog.Warn("reading request", slog.String("remote_addr", remote), slog.Any("error", err))
			}
			slog.Info("bridge disconnected", slog.String("remote_addr", remote))
			return
		}

		response, err := s.handle(raw)
		if err != nil {
			slog.Warn("dropping request", slog.String("raw", telegrams.Hex(raw)), slog.Any("error", err))
			continue
		}
		if _, err := conn.Write(response.Bytes()); err != nil {
			slog.Warn("writing response", slog.String("remote_addr", remote), slog.Any("error", err))
			return
		}
	}
}

// readFrame reads one telegram using the payload length in its header.
func readFrame(reader *bufio.Reader) ([]byte, error) {
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == telegrams.STX {
			break
		}
	}

	length, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}

	raw := make([]byte, int(length)+4)
	raw[0] = telegrams.STX
	raw[telegrams.LengthFieldOffset] = length
	if _, err := io.ReadFull(reader, raw[2:]); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *Simulator) handle(raw []byte) (telegrams.Response, error) {
	switch len(raw) {
	case telegrams.StateRequestLength:
		req, err := telegrams.DecodeStateRequest(raw)
		if err != nil {
			return nil, err
		}
		return s.stateResponse(req.RequestID()), nil

	case telegrams.OrderRequestLength:
		req, err := telegrams.DecodeOrderRequest(raw)
		if err != nil {
			return nil, err
		}
		s.acceptOrder(req)
		return telegrams.NewOrderResponse(req.RequestID(), req.OrderID()), nil

	default:
		return nil, fmt.Errorf("request of %d bytes: %w", len(raw), telegrams.ErrInvalidLength)
	}
}

func (s *Simulator) stateResponse(id uint16) telegrams.StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return telegrams.StateResponse{
		ID:                  id,
		PositionID:          s.state.PositionID,
		OperationState:      s.state.OperationState,
		LoadState:           s.state.LoadState,
		LastReceivedOrderID: s.state.LastReceivedOrderID,
		CurrentOrderID:      s.state.CurrentOrderID,
		LastFinishedOrderID: s.state.LastFinishedOrderID,
	}
}

func (s *Simulator) acceptOrder(order telegrams.OrderRequest) {
	s.mu.Lock()
	s.state.LastReceivedOrderID = order.OrderID()
	s.mu.Unlock()

	slog.Info("order received",
		slog.Int("order_id", int(order.OrderID())),
		slog.Int("destination_id", int(order.DestinationID())),
		slog.String("action", order.DestinationAction().String()))

	select {
	case s.orders <- order:
	default:
		slog.Warn("order queue full, order dropped", slog.Int("order_id", int(order.OrderID())))
	}
}

func (s *Simulator) driveOrders(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order := <-s.orders:
			if !s.execute(ctx, order) {
				return
			}
		}
	}
}

func (s *Simulator) execute(ctx context.Context, order telegrams.OrderRequest) bool {
	s.mu.Lock()
	s.state.CurrentOrderID = order.OrderID()
	s.state.OperationState = telegrams.OperationMoving
	s.mu.Unlock()

	timer := time.NewTimer(s.cfg.OrderDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PositionID = order.DestinationID()
	switch order.DestinationAction() {
	case telegrams.ActionLoad:
		s.state.LoadState = telegrams.LoadFull
	case telegrams.ActionUnload:
		s.state.LoadState = telegrams.LoadEmpty
	}
	s.state.CurrentOrderID = 0
	s.state.LastFinishedOrderID = order.OrderID()
	s.state.OperationState = telegrams.OperationIdle
	if order.DestinationAction() == telegrams.ActionCharge {
		s.state.OperationState = telegrams.OperationCharging
	}

	slog.Info("order finished",
		slog.Int("order_id", int(order.OrderID())),
		slog.Int("position_id", int(s.state.PositionID)),
		slog.String("load_state", s.state.LoadState.String()))
	return true
}
