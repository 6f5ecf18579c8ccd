package replication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"vehicle-bridge/internal/infra/async"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/infra/sql"
)

var _ async.Worker = (*Replicator)(nil)

// Replicator copies the messages of the registered topics into the database. Each topic
// gets its own consumer.
type Replicator struct {
	consumerFactory pubsub.ConsumerFactory
	handlers        map[pubsub.Topic]TopicHandler
	mu              sync.RWMutex
}

func NewReplicator(consumerFactory pubsub.ConsumerFactory) *Replicator {
	return &Replicator{
		consumerFactory: consumerFactory,
		handlers:        make(map[pubsub.Topic]TopicHandler),
	}
}

func (r *Replicator) RegisterHandler(handler TopicHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	topic := handler.TopicName()
	if _, exists := r.handlers[topic]; exists {
		return fmt.Errorf("handler already registered for topic: %s", topic)
	}

	r.handlers[topic] = handler
	slog.Debug("registered topic handler", slog.String("topic", string(topic)))

	return nil
}

// Run consumes every registered topic until ctx is done.
func (r *Replicator) Run(ctx context.Context, done func()) {
	defer done()

	r.mu.RLock()
	handlers := make(map[pubsub.Topic]TopicHandler, len(r.handlers))
	for topic, handler := range r.handlers {
		handlers[topic] = handler
	}
	r.mu.RUnlock()

	if len(handlers) == 0 {
		slog.Warn("no topic handlers registered, replication not started")
		return
	}

	slog.Info("starting replication", slog.Int("topics", len(handlers)))

	var wg sync.WaitGroup
	for topic, handler := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.replicateTopic(ctx, topic, handler)
		}()
	}
	wg.Wait()
}

func (r *Replicator) Shutdown() {
	slog.Info("replication stopped")
}

func (r *Replicator) replicateTopic(ctx context.Context, topic pubsub.Topic, handler TopicHandler) {
	consumer := r.consumerFactory.New()
	messageHandler := func(ctx context.Context, key pubsub.Key, msg pubsub.Prototype) error {
		return r.handleMessage(ctx, topic, handler, key, msg)
	}

	slog.Debug("starting topic replication", slog.String("topic", string(topic)))

	err := consumer.Consume(ctx, topic, messageHandler, handler.Prototype())
	if err != nil && ctx.Err() == nil {
		slog.Error("error consuming topic",
			slog.String("topic", string(topic)),
			slog.Any("error", err))
	}
}

func (r *Replicator) handleMessage(ctx context.Context, topic pubsub.Topic, handler TopicHandler, key pubsub.Key, msg pubsub.Message) error {
	id, err := handler.RecordID(key, msg)
	if err != nil {
		return fmt.Errorf("resolving record id: %w", err)
	}
	recordKey := pubsub.Key(id)

	slog.Debug("replicating message",
		slog.String("topic", string(topic)),
		slog.String("key", string(key)),
		slog.String("record", id))

	_, err = handler.GetByID(ctx, id)
	switch {
	case errors.Is(err, sql.ErrRecordNotFound):
		if err := handler.Create(ctx, recordKey, msg); err != nil {
			return fmt.Errorf("creating record: %w", err)
		}
		slog.Debug("created new record",
			slog.String("topic", string(topic)),
			slog.String("record", id))

	case err != nil:
		return fmt.Errorf("reading record: %w", err)

	default:
		if err := handler.Update(ctx, recordKey, msg); err != nil {
			return fmt.Errorf("updating record: %w", err)
		}
		slog.Debug("updated existing record",
			slog.String("topic", string(topic)),
			slog.String("record", id))
	}

	return nil
}
