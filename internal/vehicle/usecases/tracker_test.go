package usecases_test

import (
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
	"vehicle-bridge/internal/vehicle/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CommandTracker", func() {
	var (
		tracker    *usecases.CommandTracker
		c1, c2, c3 domain.MovementCommand
	)

	BeforeEach(func() {
		tracker = usecases.NewCommandTracker(telegrams.NewBoundedCounterAt(1, telegrams.Uint16MaxValue, 10))
		c1 = domain.MovementCommand{ID: "c1", DestinationPoint: "1"}
		c2 = domain.MovementCommand{ID: "c2", DestinationPoint: "2"}
		c3 = domain.MovementCommand{ID: "c3", DestinationPoint: "3"}

		Expect(tracker.Track(c1)).To(Equal(uint16(10)))
		Expect(tracker.Track(c2)).To(Equal(uint16(11)))
		Expect(tracker.Track(c3)).To(Equal(uint16(12)))
	})

	It("should keep the commands in send order", func() {
		pending := tracker.Pending()
		Expect(pending).To(HaveLen(3))
		Expect(pending[0].OrderID).To(Equal(uint16(10)))
		Expect(pending[2].Command.ID).To(Equal(domain.ID("c3")))
	})

	When("the vehicle finished an order in the middle of the queue", func() {
		It("should report every command up to and including it", func() {
			finished := tracker.Reconcile(
				telegrams.StateResponse{LastFinishedOrderID: usecases.NoOrderID},
				telegrams.StateResponse{LastFinishedOrderID: 11},
			)

			Expect(finished).To(Equal([]domain.MovementCommand{c1, c2}))
			Expect(tracker.Len()).To(Equal(1))
		})

		It("should not report them again for a repeated id", func() {
			tracker.Reconcile(telegrams.StateResponse{}, telegrams.StateResponse{LastFinishedOrderID: 11})

			finished := tracker.Reconcile(
				telegrams.StateResponse{LastFinishedOrderID: 11},
				telegrams.StateResponse{LastFinishedOrderID: 11},
			)

			Expect(finished).To(BeEmpty())
			Expect(tracker.Len()).To(Equal(1))
		})
	})

	When("the finished order id is unknown", func() {
		It("should leave the queue untouched", func() {
			finished := tracker.Reconcile(telegrams.StateResponse{}, telegrams.StateResponse{LastFinishedOrderID: 99})

			Expect(finished).To(BeEmpty())
			Expect(tracker.Len()).To(Equal(3))
		})
	})

	When("no order was finished yet", func() {
		It("should report nothing", func() {
			Expect(tracker.Reconcile(telegrams.StateResponse{}, telegrams.StateResponse{})).To(BeEmpty())
		})
	})

	It("should forget everything on Clear", func() {
		tracker.Clear()

		Expect(tracker.Len()).To(BeZero())
		Expect(tracker.Reconcile(telegrams.StateResponse{}, telegrams.StateResponse{LastFinishedOrderID: 10})).To(BeEmpty())
	})
})
