package async

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// DefaultReceiverBuffer is how many messages a subscriber may fall behind before messages
// for it are dropped.
const DefaultReceiverBuffer = 64

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

type InternalBrokerSubscriptor interface {
	AddSubscription(b InternalBroker)
}

//go:generate mockgen -source=internal_broker.go -destination=../../../test/unit/doubles/infra/async/internal_broker_mock.go -package=async

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

func NewLocalBroker() *LocalBroker {
	return NewLocalBrokerWithBuffer(DefaultReceiverBuffer)
}

func NewLocalBrokerWithBuffer(buffer int) *LocalBroker {
	return &LocalBroker{
		buffer:       buffer,
		subscriptors: make(map[BrokerTopicName][]*subscriptor),
	}
}

// LocalBroker fans messages out to in-process subscribers. Publish never blocks: a
// subscriber whose receiver is full misses the message.
type LocalBroker struct {
	mu           sync.RWMutex
	buffer       int
	subscriptors map[BrokerTopicName][]*subscriptor
}

type subscriptor struct {
	active       bool
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscription := Subscription{
		ID:       uuid.NewString(),
		Receiver: make(chan BrokerMessage, b.buffer),
	}
	b.subscriptors[topic] = append(b.subscriptors[topic], &subscriptor{subscription: subscription, active: true})
	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptors, ok := b.subscriptors[topic]
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].close()
	b.subscriptors[topic] = slices.Delete(subscriptors, index, index+1)
	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	defer b.mu.RUnlock()

	subscriptors, ok := b.subscriptors[topic]
	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range subscriptors {
		if !s.active {
			continue
		}
		select {
		case s.subscription.Receiver <- msg:
		default:
			slog.Warn("subscriber receiver full, message dropped",
				slog.String("topic", string(topic)),
				slog.String("subscription", s.subscription.ID),
				slog.String("event", msg.Event))
		}
	}
	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subscriptors := range b.subscriptors {
		for _, s := range subscriptors {
			s.close()
		}
		delete(b.subscriptors, topic)
	}
}

func (s *subscriptor) close() {
	if !s.active {
		return
	}
	s.active = false
	close(s.subscription.Receiver)
}
