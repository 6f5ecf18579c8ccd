package pubsub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

const memorySubscriptionBuffer = 256

var ErrBufferFull = errors.New("subscription buffer full")

type MemoryPublisherFactory struct {
	broker *MemoryBroker
	codecs CodecFactory
}

var _ PublisherFactory = (*MemoryPublisherFactory)(nil)

func NewMemoryPublisherFactory(broker *MemoryBroker, opts ...Option) *MemoryPublisherFactory {
	return &MemoryPublisherFactory{broker: broker, codecs: applyOptions(opts).codecs}
}

func (f *MemoryPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	return &MemoryPublisher{
		broker: f.broker,
		topic:  topic,
		codec:  f.codecs(topic, prototype),
	}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
	codec  Codec
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	data, err := p.codec.Encode(envelopeFor(ctx, message))
	if err != nil {
		return err
	}
	return p.broker.publish(p.topic, key, data)
}

type MemoryConsumerFactory struct {
	broker *MemoryBroker
	group  string
	codecs CodecFactory
}

var _ ConsumerFactory = (*MemoryConsumerFactory)(nil)

func NewMemoryConsumerFactory(broker *MemoryBroker, group string, opts ...Option) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{broker: broker, group: group, codecs: applyOptions(opts).codecs}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{broker: f.broker, group: f.group, codecs: f.codecs}
}

type MemoryConsumer struct {
	broker *MemoryBroker
	group  string
	codecs CodecFactory
}

func (c *MemoryConsumer) Consume(ctx context.Context, topic Topic, handler MessageHandler, prototype Prototype) error {
	sub := c.broker.subscribe(topic, c.group)
	defer c.broker.unsubscribe(topic, c.group, sub)

	codec := c.codecs(topic, prototype)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-sub.messages:
			dispatch(ctx, topic, codec, handler, msg.key, msg.data)
		}
	}
}

// dispatch decodes one message and hands it to handler inside a consumer span.
func dispatch(ctx context.Context, topic Topic, codec Codec, handler MessageHandler, key Key, data []byte) {
	decoded, err := codec.Decode(data)
	if err != nil {
		slog.Error("decoding message",
			slog.String("topic", string(topic)),
			slog.String("key", string(key)),
			slog.Any("error", err))
		return
	}
	envelope := decoded.(Envelope)

	spanCtx, span := startConsumeSpan(ctx, topic, envelope.Trace)
	defer span.End()

	if err := handler(spanCtx, key, envelope.Payload); err != nil {
		span.RecordError(err)
		slog.Error("handling message",
			slog.String("topic", string(topic)),
			slog.String("key", string(key)),
			slog.Any("error", err))
	}
}

// MemoryBroker delivers each message to one consumer of every group subscribed to the topic.
type MemoryBroker struct {
	mu     sync.Mutex
	topics map[Topic]map[string]*memoryGroup
}

type memoryGroup struct {
	subscriptions []*memorySubscription
	next          int
}

type memorySubscription struct {
	messages chan memoryMessage
}

type memoryMessage struct {
	key  Key
	data []byte
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{topics: make(map[Topic]map[string]*memoryGroup)}
}

func (b *MemoryBroker) publish(topic Topic, key Key, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	groups := b.topics[topic]
	if len(groups) == 0 {
		slog.Debug("message without consumers dropped", slog.String("topic", string(topic)))
		return nil
	}

	var errs []error
	for name, group := range groups {
		sub := group.subscriptions[group.next%len(group.subscriptions)]
		group.next++
		select {
		case sub.messages <- memoryMessage{key: key, data: data}:
		default:
			errs = append(errs, fmt.Errorf("topic %s group %s: %w", topic, name, ErrBufferFull))
		}
	}
	return errors.Join(errs...)
}

func (b *MemoryBroker) subscribe(topic Topic, group string) *memorySubscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	groups, ok := b.topics[topic]
	if !ok {
		groups = make(map[string]*memoryGroup)
		b.topics[topic] = groups
	}
	g, ok := groups[group]
	if !ok {
		g = &memoryGroup{}
		groups[group] = g
	}

	sub := &memorySubscription{messages: make(chan memoryMessage, memorySubscriptionBuffer)}
	g.subscriptions = append(g.subscriptions, sub)
	return sub
}

func (b *MemoryBroker) unsubscribe(topic Topic, group string, sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	g, ok := b.topics[topic][group]
	if !ok {
		return
	}
	for i, s := range g.subscriptions {
		if s == sub {
			g.subscriptions = append(g.subscriptions[:i], g.subscriptions[i+1:]...)
			break
		}
	}
	if len(g.subscriptions) == 0 {
		delete(b.topics[topic], group)
	}
}

// Subscribers counts the active consumers of a topic across all groups.
func (b *MemoryBroker) Subscribers(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := 0
	for _, g := range b.topics[topic] {
		count += len(g.subscriptions)
	}
	return count
}
