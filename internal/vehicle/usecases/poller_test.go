package usecases_test

import (
	"bytes"
	"log/slog"
	"sync"
	"time"
	"vehicle-bridge/internal/vehicle/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Poller", func() {
	var (
		scheduler *manualScheduler
		poller    *usecases.Poller
		emitted   int
		logs      *bytes.Buffer
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		slog.SetDefault(slog.New(slog.NewTextHandler(logs, nil)))

		emitted = 0
		scheduler = &manualScheduler{}
		poller = usecases.NewPoller(scheduler, &sync.Mutex{}, func() { emitted++ })
	})

	It("should schedule at the given interval", func() {
		poller.Start(250 * time.Millisecond)

		Expect(poller.Running()).To(BeTrue())
		Expect(poller.Interval()).To(Equal(250 * time.Millisecond))
		Expect(scheduler.active()).To(HaveLen(1))
	})

	It("should emit one request until it is answered", func() {
		poller.Start(100 * time.Millisecond)

		scheduler.fire()
		scheduler.fire()

		Expect(emitted).To(Equal(1))
		Expect(poller.ExpectingStateResponse()).To(BeTrue())
		Expect(logs.String()).To(ContainSubstring("no response to previous state request yet"))

		poller.ResponseReceived()
		scheduler.fire()

		Expect(emitted).To(Equal(2))
	})

	It("should not be started twice", func() {
		poller.Start(100 * time.Millisecond)
		poller.Start(100 * time.Millisecond)

		Expect(scheduler.tasks).To(HaveLen(1))
		Expect(logs.String()).To(ContainSubstring("already running"))
	})

	It("should cancel the task on Stop", func() {
		poller.Start(100 * time.Millisecond)
		poller.Stop()

		Expect(poller.Running()).To(BeFalse())
		Expect(poller.Interval()).To(BeZero())
		Expect(scheduler.active()).To(BeEmpty())

		poller.Stop()
		Expect(logs.String()).To(ContainSubstring("not running"))
	})

	It("should ignore ticks of a stopped task", func() {
		poller.Start(100 * time.Millisecond)
		stale := scheduler.tasks[0]
		poller.Stop()

		stale.job()

		Expect(emitted).To(BeZero())
	})

	It("should forget the outstanding request on Reset", func() {
		Expect(poller.Tick()).To(BeTrue())
		Expect(poller.Tick()).To(BeFalse())

		poller.Reset()

		Expect(poller.Tick()).To(BeTrue())
		Expect(emitted).To(Equal(2))
	})
})
