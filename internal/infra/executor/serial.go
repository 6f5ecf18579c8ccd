package executor

import (
	"log/slog"
	"sync"
)

// Serial runs submitted jobs one at a time, in submission order, on a single goroutine.
// Submit never blocks.
type Serial struct {
	mu      sync.Mutex
	cond    *sync.Cond
	jobs    []func()
	stopped bool
	done    chan struct{}
}

func NewSerial() *Serial {
	s := &Serial{done: make(chan struct{})}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

func (s *Serial) Submit(job func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		slog.Warn("executor stopped, job discarded")
		return
	}
	s.jobs = append(s.jobs, job)
	s.cond.Signal()
}

// Stop runs the jobs already submitted and waits for them to finish.
func (s *Serial) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.stopped = true
	s.cond.Signal()
	s.mu.Unlock()
	<-s.done
}

func (s *Serial) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.jobs) == 0 && !s.stopped {
			s.cond.Wait()
		}
		if len(s.jobs) == 0 {
			s.mu.Unlock()
			return
		}
		job := s.jobs[0]
		s.jobs[0] = nil
		s.jobs = s.jobs[1:]
		s.mu.Unlock()

		s.runJob(job)
	}
}

func (s *Serial) runJob(job func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("executor job panicked", slog.Any("panic", r))
		}
	}()
	job()
}

// Inline runs jobs on the caller's goroutine.
type Inline struct{}

func (Inline) Submit(job func()) { job() }
