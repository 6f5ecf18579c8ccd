package usecases

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type pollTask struct {
	interval time.Duration
	handle   ScheduledTask
}

// Poller emits state requests at a fixed rate, at most one unanswered at a time. Ticks run
// with locker held, the same lock the engine uses for every other change.
type Poller struct {
	mu        sync.Mutex
	scheduler Scheduler
	locker    sync.Locker
	emit      func()
	active    *pollTask

	expectingStateResponse atomic.Bool
}

func NewPoller(scheduler Scheduler, locker sync.Locker, emit func()) *Poller {
	return &Poller{
		scheduler: scheduler,
		locker:    locker,
		emit:      emit,
	}
}

func (p *Poller) Start(interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active != nil {
		slog.Warn("periodic state requesting already running, not started again")
		return
	}

	slog.Debug("starting periodic state requests", slog.Duration("interval", interval))
	task := &pollTask{interval: interval}
	handle, err := p.scheduler.ScheduleAtFixedRate(interval, func() { p.scheduledTick(task) })
	if err != nil {
		slog.Error("scheduling periodic state requests", slog.Any("error", err))
		return
	}
	task.handle = handle
	p.active = task
}

func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active == nil {
		slog.Warn("periodic state requesting not running, not stopped")
		return
	}

	slog.Debug("stopping periodic state requests")
	p.active.handle.Cancel()
	p.active = nil
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != nil
}

// Interval returns the interval of the running task, zero when stopped.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return 0
	}
	return p.active.interval
}

// Tick emits a state request unless the previous one is still unanswered. The caller holds
// the locker.
func (p *Poller) Tick() bool {
	if p.expectingStateResponse.Load() {
		slog.Warn("no response to previous state request yet, not sending another one")
		return false
	}
	p.expectingStateResponse.Store(true)
	p.emit()
	return true
}

// ResponseReceived marks the outstanding state request as answered.
func (p *Poller) ResponseReceived() {
	p.expectingStateResponse.Store(false)
}

func (p *Poller) ExpectingStateResponse() bool {
	return p.expectingStateResponse.Load()
}

func (p *Poller) Reset() {
	p.expectingStateResponse.Store(false)
}

func (p *Poller) scheduledTick(task *pollTask) {
	p.locker.Lock()
	defer p.locker.Unlock()

	p.mu.Lock()
	current := p.active
	p.mu.Unlock()
	if current != task {
		return
	}
	p.Tick()
}
