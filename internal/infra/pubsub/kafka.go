package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lovoo/goka"
)

const (
	maxRetries    int = 10
	retryInterval     = 5 * time.Second
)

type publisherKey struct {
	brokers string
	topic   string
}

type publisherInstance struct {
	publisher *KafkaPublisher
	once      sync.Once
	err       error
}

// Emitters are shared per broker list and topic.
var (
	publishersMap   = make(map[publisherKey]*publisherInstance)
	publishersMutex sync.Mutex
)

func NewKafkaPublisher(brokers []string, topic Topic, codec Codec) (*KafkaPublisher, error) {
	key := publisherKey{
		brokers: strings.Join(brokers, ","),
		topic:   string(topic),
	}

	publishersMutex.Lock()
	instance, exists := publishersMap[key]
	if !exists {
		instance = &publisherInstance{}
		publishersMap[key] = instance
	}
	publishersMutex.Unlock()

	instance.once.Do(func() {
		slog.Debug("creating kafka publisher",
			slog.String("topic", string(topic)),
			slog.String("brokers", key.brokers))

		var err error
		for try := 0; try < maxRetries; try++ {
			var emitter *goka.Emitter
			emitter, err = goka.NewEmitter(brokers, goka.Stream(topic), codec)
			if err == nil {
				instance.publisher = &KafkaPublisher{emitter: emitter}
				return
			}
			slog.Warn("connecting to kafka brokers",
				slog.String("brokers", key.brokers),
				slog.Int("try", try+1),
				slog.Any("error", err))
			time.Sleep(retryInterval)
		}

		instance.err = fmt.Errorf("connecting to kafka brokers after %d retries: %w", maxRetries, err)
	})

	if instance.err != nil {
		return nil, instance.err
	}

	return instance.publisher, nil
}

type KafkaPublisher struct {
	emitter *goka.Emitter
}

func (p *KafkaPublisher) Publish(ctx context.Context, key Key, message Message) error {
	slog.Debug("publishing message", slog.String("key", string(key)))
	if err := p.emitter.EmitSync(string(key), envelopeFor(ctx, message)); err != nil {
		return fmt.Errorf("emitting message: %w", err)
	}
	return nil
}

var _ Consumer = (*KafkaConsumer)(nil)

type KafkaConsumer struct {
	brokers []string
	group   goka.Group
	codecs  CodecFactory
}

func NewKafkaConsumer(brokers []string, group string, opts ...Option) *KafkaConsumer {
	return &KafkaConsumer{brokers: brokers, group: goka.Group(group), codecs: applyOptions(opts).codecs}
}

// Consume runs a goka processor for the topic until ctx is done.
func (c *KafkaConsumer) Consume(ctx context.Context, topic Topic, handler MessageHandler, prototype Prototype) error {
	codec := c.codecs(topic, prototype)
	cb := func(gctx goka.Context, msg any) {
		envelope, ok := msg.(Envelope)
		if !ok {
			slog.Error("unexpected message type", slog.String("type", fmt.Sprintf("%T", msg)))
			return
		}

		spanCtx, span := startConsumeSpan(ctx, topic, envelope.Trace)
		defer span.End()

		if err := handler(spanCtx, Key(gctx.Key()), envelope.Payload); err != nil {
			span.RecordError(err)
			slog.Error("handling message",
				slog.String("topic", string(topic)),
				slog.String("key", gctx.Key()),
				slog.Any("error", err))
		}
	}

	graph := goka.DefineGroup(c.group, goka.Input(goka.Stream(topic), codec, cb))
	processor, err := goka.NewProcessor(c.brokers, graph)
	if err != nil {
		return fmt.Errorf("creating processor for %s: %w", topic, err)
	}

	slog.Info("consuming topic",
		slog.String("topic", string(topic)),
		slog.String("group", string(c.group)))
	return processor.Run(ctx)
}

type KafkaPublisherFactory struct {
	brokers []string
	codecs  CodecFactory
}

var _ PublisherFactory = (*KafkaPublisherFactory)(nil)

func NewKafkaPublisherFactory(brokers []string, opts ...Option) *KafkaPublisherFactory {
	return &KafkaPublisherFactory{brokers: brokers, codecs: applyOptions(opts).codecs}
}

func (f *KafkaPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	publisher, err := NewKafkaPublisher(f.brokers, topic, f.codecs(topic, prototype))
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}
	return publisher, nil
}

type KafkaConsumerFactory struct {
	brokers []string
	group   string
	opts    []Option
}

var _ ConsumerFactory = (*KafkaConsumerFactory)(nil)

func NewKafkaConsumerFactory(brokers []string, group string, opts ...Option) *KafkaConsumerFactory {
	return &KafkaConsumerFactory{brokers: brokers, group: group, opts: opts}
}

func (f *KafkaConsumerFactory) New() Consumer {
	return NewKafkaConsumer(f.brokers, f.group, f.opts...)
}
