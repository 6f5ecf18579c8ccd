package communication

import (
	"log/slog"
	"sync/atomic"
	"time"
	"vehicle-bridge/internal/infra/tcp"
	"vehicle-bridge/internal/vehicle/telegrams"
	"vehicle-bridge/internal/vehicle/usecases"
)

// NewVehicleChannelFactory creates channels that frame telegrams over TCP.
func NewVehicleChannelFactory(vehicle string, policy telegrams.FramingPolicy, opts ...tcp.Option) *VehicleChannelFactory {
	return &VehicleChannelFactory{
		vehicle: vehicle,
		policy:  policy,
		opts:    opts,
	}
}

type VehicleChannelFactory struct {
	vehicle string
	policy  telegrams.FramingPolicy
	opts    []tcp.Option
}

var _ usecases.ChannelManagerFactory = (*VehicleChannelFactory)(nil)

func (f *VehicleChannelFactory) New(listener usecases.ConnectionEventListener) usecases.ChannelManager {
	return NewVehicleChannel(f.vehicle, listener, telegrams.NewDecoder(f.policy), f.opts...)
}

func NewVehicleChannel(
	vehicle string,
	listener usecases.ConnectionEventListener,
	decoder *telegrams.Decoder,
	opts ...tcp.Option,
) *VehicleChannel {
	channel := &VehicleChannel{
		vehicle:  vehicle,
		listener: listener,
		decoder:  decoder,
	}
	channel.client = tcp.NewClient(channel, opts...)
	return channel
}

// VehicleChannel is the channel manager of one vehicle: a TCP client whose byte stream is
// split into response telegrams.
type VehicleChannel struct {
	vehicle        string
	listener       usecases.ConnectionEventListener
	decoder        *telegrams.Decoder
	client         *tcp.Client
	loggingEnabled atomic.Bool
}

var _ usecases.ChannelManager = (*VehicleChannel)(nil)
var _ tcp.Handler = (*VehicleChannel)(nil)

func (c *VehicleChannel) Initialize(idleTimeout time.Duration, loggingEnabled bool) {
	c.client.SetIdleTimeout(idleTimeout)
	c.loggingEnabled.Store(loggingEnabled)
}

func (c *VehicleChannel) Connect(host string, port int) {
	c.client.Connect(host, port)
}

func (c *VehicleChannel) ScheduleConnect(host string, port int, delay time.Duration) {
	c.client.ScheduleConnect(host, port, delay)
}

func (c *VehicleChannel) Disconnect() {
	c.client.Disconnect()
}

func (c *VehicleChannel) Terminate() {
	c.client.Terminate()
}

func (c *VehicleChannel) IsConnected() bool {
	return c.client.IsConnected()
}

func (c *VehicleChannel) Send(req telegrams.Request) {
	raw := req.Bytes()
	if c.loggingEnabled.Load() {
		slog.Info("sending telegram",
			slog.String("vehicle", c.vehicle),
			slog.String("telegram", req.String()),
			slog.String("raw", telegrams.Hex(raw)))
	}
	if err := c.client.Send(raw); err != nil {
		slog.Warn("failed to send telegram",
			slog.String("vehicle", c.vehicle),
			slog.String("telegram", req.String()),
			slog.Any("error", err))
	}
}

func (c *VehicleChannel) SetLoggingEnabled(enabled bool) {
	c.loggingEnabled.Store(enabled)
}

func (c *VehicleChannel) OnConnect() {
	c.listener.OnConnect()
}

func (c *VehicleChannel) OnFailedConnectionAttempt() {
	c.listener.OnFailedConnectionAttempt()
}

func (c *VehicleChannel) OnDisconnect() {
	c.listener.OnDisconnect()
}

func (c *VehicleChannel) OnIdle() {
	c.listener.OnIdle()
}

func (c *VehicleChannel) OnData(buf []byte) int {
	responses, consumed := c.decoder.Decode(buf)
	for _, resp := range responses {
		if c.loggingEnabled.Load() {
			slog.Info("received telegram",
				slog.String("vehicle", c.vehicle),
				slog.String("telegram", resp.String()),
				slog.String("raw", telegrams.Hex(resp.Bytes())))
		}
		c.listener.OnIncomingTelegram(resp)
	}
	return consumed
}
