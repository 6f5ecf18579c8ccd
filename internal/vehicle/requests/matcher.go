package requests

import (
	"log/slog"
	"sync"
	"vehicle-bridge/internal/vehicle/telegrams"
)

// Sender puts a request on the wire. It returns the request as sent, carrying the request
// id stamped at send time, and whether it was actually sent.
type Sender interface {
	SendTelegram(req telegrams.Request) (telegrams.Request, bool)
}

func NewMatcher(sender Sender) *Matcher {
	return &Matcher{sender: sender}
}

// Matcher keeps the requests waiting to be sent and makes sure only the head of the queue
// is ever awaiting a response.
type Matcher struct {
	mu     sync.Mutex
	sender Sender
	queue  []telegrams.Request
}

// Enqueue appends a request and sends it right away when nothing else is pending.
func (m *Matcher) Enqueue(req telegrams.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasEmpty := len(m.queue) == 0
	m.queue = append(m.queue, req)
	if wasEmpty {
		m.sendHeadLocked()
	}
}

// TrySendNext (re)sends the request at the head of the queue, if any.
func (m *Matcher) TrySendNext() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		slog.Debug("no requests to be sent")
		return
	}
	m.sendHeadLocked()
}

// TryMatch removes the head of the queue when resp answers it.
func (m *Matcher) TryMatch(resp telegrams.Response) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		slog.Warn("no request waiting for a response", slog.String("response", resp.String()))
		return false
	}

	current := m.queue[0]
	if !resp.IsResponseTo(current) {
		slog.Warn("response does not match the current request",
			slog.String("request", current.String()),
			slog.String("response", resp.String()))
		return false
	}

	m.queue[0] = nil
	m.queue = m.queue[1:]
	return true
}

func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = nil
}

func (m *Matcher) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Current returns the request at the head of the queue.
func (m *Matcher) Current() (telegrams.Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, false
	}
	return m.queue[0], true
}

func (m *Matcher) sendHeadLocked() {
	sent, ok := m.sender.SendTelegram(m.queue[0])
	if ok {
		m.queue[0] = sent
	}
}
