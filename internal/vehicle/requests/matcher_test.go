package requests_test

import (
	"vehicle-bridge/internal/vehicle/requests"
	"vehicle-bridge/internal/vehicle/telegrams"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingSender struct {
	connected bool
	nextID    uint16
	sent      []telegrams.Request
}

func (s *recordingSender) SendTelegram(req telegrams.Request) (telegrams.Request, bool) {
	if !s.connected {
		return req, false
	}
	stamped := req.WithRequestID(s.nextID)
	s.nextID++
	s.sent = append(s.sent, stamped)
	return stamped, true
}

var _ = Describe("Matcher", func() {
	var (
		sender  *recordingSender
		matcher *requests.Matcher
	)

	BeforeEach(func() {
		sender = &recordingSender{connected: true, nextID: 100}
		matcher = requests.NewMatcher(sender)
	})

	Context("Enqueue", func() {
		When("the queue is empty", func() {
			It("should send the request right away", func() {
				matcher.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))

				Expect(sender.sent).To(HaveLen(1))
				Expect(sender.sent[0].RequestID()).To(Equal(uint16(100)))
			})
		})

		When("a request is already awaiting a response", func() {
			It("should hold the new request back", func() {
				matcher.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))
				matcher.Enqueue(telegrams.NewOrderRequest(telegrams.DefaultID, 1, 2, telegrams.ActionNone))

				Expect(sender.sent).To(HaveLen(1))
				Expect(matcher.Len()).To(Equal(2))
			})
		})
	})

	Context("TryMatch", func() {
		BeforeEach(func() {
			matcher.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))
			matcher.Enqueue(telegrams.NewOrderRequest(telegrams.DefaultID, 1, 2, telegrams.ActionLoad))
		})

		It("should match against the id stamped at send time", func() {
			Expect(matcher.TryMatch(telegrams.StateResponse{ID: telegrams.DefaultID})).To(BeFalse())
			Expect(matcher.TryMatch(telegrams.StateResponse{ID: 100})).To(BeTrue())
			Expect(matcher.Len()).To(Equal(1))
		})

		It("should reject responses of the wrong type", func() {
			Expect(matcher.TryMatch(telegrams.NewOrderResponse(100, 1))).To(BeFalse())
			Expect(matcher.Len()).To(Equal(2))
		})

		It("should send the next request only when asked to", func() {
			Expect(matcher.TryMatch(telegrams.StateResponse{ID: 100})).To(BeTrue())
			Expect(sender.sent).To(HaveLen(1))

			matcher.TrySendNext()

			Expect(sender.sent).To(HaveLen(2))
			Expect(sender.sent[1]).To(BeAssignableToTypeOf(telegrams.OrderRequest{}))
			Expect(matcher.TryMatch(telegrams.NewOrderResponse(101, 1))).To(BeTrue())
			Expect(matcher.Len()).To(BeZero())
		})
	})

	Context("TrySendNext", func() {
		When("the sender was not connected", func() {
			It("should send the head once connected", func() {
				sender.connected = false
				matcher.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))
				Expect(sender.sent).To(BeEmpty())

				sender.connected = true
				matcher.TrySendNext()

				Expect(sender.sent).To(HaveLen(1))
				Expect(matcher.TryMatch(telegrams.StateResponse{ID: 100})).To(BeTrue())
			})
		})

		When("the queue is empty", func() {
			It("should do nothing", func() {
				matcher.TrySendNext()

				Expect(sender.sent).To(BeEmpty())
			})
		})
	})

	Context("Clear", func() {
		It("should drop every pending request", func() {
			matcher.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))
			matcher.Enqueue(telegrams.NewStateRequest(telegrams.DefaultID))

			matcher.Clear()

			Expect(matcher.Len()).To(BeZero())
			Expect(matcher.TryMatch(telegrams.StateResponse{ID: 100})).To(BeFalse())
		})
	})
})
