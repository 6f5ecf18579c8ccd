package pubsub

const EnvironmentLocal = "local"

// Factory selects the in-memory broker for local runs and kafka otherwise.
type Factory struct {
	publisherFactory PublisherFactory
	consumerFactory  ConsumerFactory
	newGroup         func(group string) ConsumerFactory
}

type FactoryOptions struct {
	Environment   string
	KafkaBrokers  []string
	ConsumerGroup string
	// Codecs defaults to JSON.
	Codecs CodecFactory
}

func NewFactory(opts FactoryOptions) *Factory {
	codec := WithCodec(opts.Codecs)
	if opts.Environment == EnvironmentLocal {
		broker := NewMemoryBroker()
		return &Factory{
			publisherFactory: NewMemoryPublisherFactory(broker, codec),
			consumerFactory:  NewMemoryConsumerFactory(broker, opts.ConsumerGroup, codec),
			newGroup: func(group string) ConsumerFactory {
				return NewMemoryConsumerFactory(broker, group, codec)
			},
		}
	}

	return &Factory{
		publisherFactory: NewKafkaPublisherFactory(opts.KafkaBrokers, codec),
		consumerFactory:  NewKafkaConsumerFactory(opts.KafkaBrokers, opts.ConsumerGroup, codec),
		newGroup: func(group string) ConsumerFactory {
			return NewKafkaConsumerFactory(opts.KafkaBrokers, group, codec)
		},
	}
}

func (f *Factory) GetPublisherFactory() PublisherFactory {
	return f.publisherFactory
}

func (f *Factory) GetConsumerFactory() ConsumerFactory {
	return f.consumerFactory
}

// GetGroupConsumerFactory returns consumers that join group instead of the default one.
// Each group receives its own copy of every message.
func (f *Factory) GetGroupConsumerFactory(group string) ConsumerFactory {
	return f.newGroup(group)
}
