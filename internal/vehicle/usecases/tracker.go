package usecases

import (
	"log/slog"
	"sync"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

// NoOrderID is what the vehicle reports while it has not finished any order.
const NoOrderID uint16 = 0

// CommandTracker remembers which order id was given to each command sent to the vehicle and
// reports commands as finished, in the order they were sent, once the vehicle says so.
type CommandTracker struct {
	mu       sync.Mutex
	counter  *telegrams.BoundedCounter
	orderIDs map[domain.ID]uint16
	sent     []PendingCommand
}

// NewCommandTracker uses counter for order ids. A nil counter starts at 1.
func NewCommandTracker(counter *telegrams.BoundedCounter) *CommandTracker {
	if counter == nil {
		counter = telegrams.NewOrderCounter()
	}
	return &CommandTracker{
		counter:  counter,
		orderIDs: make(map[domain.ID]uint16),
	}
}

// Track assigns the next order id to cmd and appends it to the sent queue.
func (t *CommandTracker) Track(cmd domain.MovementCommand) uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()

	orderID := t.counter.Next()
	t.orderIDs[cmd.ID] = orderID
	t.sent = append(t.sent, PendingCommand{Command: cmd, OrderID: orderID})
	return orderID
}

// Reconcile returns the commands finished according to current, oldest first.
func (t *CommandTracker) Reconcile(previous, current telegrams.StateResponse) []domain.MovementCommand {
	finishedID := current.LastFinishedOrderID
	if finishedID == NoOrderID || finishedID == previous.LastFinishedOrderID {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isTrackedLocked(finishedID) {
		slog.Debug("ignored finished order id, not found in sent queue",
			slog.Int("order_id", int(finishedID)))
		return nil
	}

	var finished []domain.MovementCommand
	for len(t.sent) > 0 {
		head := t.sent[0]
		t.sent = t.sent[1:]
		if t.orderIDs[head.Command.ID] == head.OrderID {
			delete(t.orderIDs, head.Command.ID)
		}

		slog.Debug("reporting command as executed",
			slog.Int("order_id", int(head.OrderID)),
			slog.String("command_id", head.Command.ID.String()))
		finished = append(finished, head.Command)

		if head.OrderID == finishedID {
			break
		}
	}
	return finished
}

func (t *CommandTracker) isTrackedLocked(orderID uint16) bool {
	for _, id := range t.orderIDs {
		if id == orderID {
			return true
		}
	}
	return false
}

func (t *CommandTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.orderIDs = make(map[domain.ID]uint16)
	t.sent = nil
}

func (t *CommandTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

// Pending returns the tracked commands in send order.
func (t *CommandTracker) Pending() []PendingCommand {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := make([]PendingCommand, len(t.sent))
	copy(pending, t.sent)
	return pending
}
