package replication

import (
	"context"
	"vehicle-bridge/internal/infra/pubsub"
)

// TopicHandler keeps a table in step with the messages of one topic.
type TopicHandler interface {
	TopicName() pubsub.Topic

	// Prototype is the message type the topic carries.
	Prototype() pubsub.Prototype

	// RecordID returns the id of the record a message belongs to.
	RecordID(key pubsub.Key, message pubsub.Message) (string, error)

	// GetByID returns an error matching sql.ErrRecordNotFound when the record does not exist.
	GetByID(ctx context.Context, id string) (pubsub.Message, error)

	Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error

	Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error
}
