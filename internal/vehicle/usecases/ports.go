package usecases

import (
	"time"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

//go:generate mockgen -source=ports.go -destination=../../../test/unit/doubles/vehicle/usecases/ports_mock.go -package=usecases

// ConnectionEventListener receives the events of a channel manager. Events are delivered
// from the channel manager's own goroutines.
type ConnectionEventListener interface {
	OnConnect()
	OnFailedConnectionAttempt()
	OnDisconnect()
	OnIdle()
	OnIncomingTelegram(resp telegrams.Response)
}

// ChannelManager owns the transport to the vehicle. Connect, ScheduleConnect and Disconnect
// return immediately and report their outcome through the ConnectionEventListener.
type ChannelManager interface {
	Initialize(idleTimeout time.Duration, loggingEnabled bool)
	Connect(host string, port int)
	ScheduleConnect(host string, port int, delay time.Duration)
	Disconnect()
	Terminate()
	IsConnected() bool
	Send(req telegrams.Request)
	SetLoggingEnabled(enabled bool)
}

type ChannelManagerFactory interface {
	New(listener ConnectionEventListener) ChannelManager
}

type TelegramSender interface {
	SendTelegram(req telegrams.Request) (telegrams.Request, bool)
}

// RequestQueue holds the requests for the vehicle and allows a single one to await a response.
type RequestQueue interface {
	Enqueue(req telegrams.Request)
	TrySendNext()
	TryMatch(resp telegrams.Response) bool
	Clear()
}

type RequestQueueFactory interface {
	New(sender TelegramSender) RequestQueue
}

type OrderMapper interface {
	MapToOrder(cmd domain.MovementCommand) (telegrams.OrderRequest, error)
}

// KernelExecutor runs jobs one after another in submission order.
type KernelExecutor interface {
	Submit(job func())
}

type Scheduler interface {
	ScheduleAtFixedRate(interval time.Duration, job func()) (ScheduledTask, error)
}

type ScheduledTask interface {
	Cancel()
}
