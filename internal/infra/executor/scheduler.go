package executor

import (
	"errors"
	"log/slog"
	"time"
	"vehicle-bridge/internal/vehicle/usecases"

	"github.com/robfig/cron/v3"
)

var ErrInvalidInterval = errors.New("interval must be positive")

// fixedRate fires every interval. cron.Every truncates to whole seconds, state polling needs
// sub-second rates.
type fixedRate struct {
	interval time.Duration
}

func (s fixedRate) Next(t time.Time) time.Time {
	return t.Add(s.interval)
}

// CronScheduler fires fixed rate jobs from a robfig/cron scheduler and runs them on the given
// executor. Without an executor a job runs on the cron goroutine and is skipped while its
// previous run is still going.
type CronScheduler struct {
	cron     *cron.Cron
	executor usecases.KernelExecutor
}

var _ usecases.Scheduler = (*CronScheduler)(nil)

func NewCronScheduler(executor usecases.KernelExecutor) *CronScheduler {
	logger := slogCronLogger{}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Start()
	return &CronScheduler{cron: c, executor: executor}
}

func (s *CronScheduler) ScheduleAtFixedRate(interval time.Duration, job func()) (usecases.ScheduledTask, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	run := job
	if s.executor != nil {
		run = func() { s.executor.Submit(job) }
	}
	id := s.cron.Schedule(fixedRate{interval: interval}, cron.FuncJob(run))
	return &cronTask{cron: s.cron, id: id}, nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
}

type cronTask struct {
	cron *cron.Cron
	id   cron.EntryID
}

func (t *cronTask) Cancel() {
	t.cron.Remove(t.id)
}

type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
