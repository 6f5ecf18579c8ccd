package wire

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"vehicle-bridge/cmd/config"
	"vehicle-bridge/internal/infra/cache"
	"vehicle-bridge/internal/infra/executor"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/infra/replication"
	"vehicle-bridge/internal/infra/sql"
	"vehicle-bridge/internal/infra/tcp"
	"vehicle-bridge/internal/vehicle/avro"
	"vehicle-bridge/internal/vehicle/communication"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/httpapi"
	"vehicle-bridge/internal/vehicle/mapper"
	"vehicle-bridge/internal/vehicle/persistence"
	"vehicle-bridge/internal/vehicle/telegrams"
	"vehicle-bridge/internal/vehicle/usecases"
	"vehicle-bridge/internal/vehicle/workers"
)

// Application holds the bridge for one vehicle. Every component shares the one engine.
type Application struct {
	Config            config.AppConfig
	Engine            *usecases.Engine
	Executor          *executor.Serial
	Scheduler         *executor.CronScheduler
	Relay             *usecases.EventRelay
	Collector         *usecases.EngineCollector
	VehicleController *httpapi.VehicleController
	EventsController  *httpapi.VehicleEventsController
	JournalController *httpapi.CommandJournalController
	StatusPublisher   *communication.StatusPublisher
	CommandIntake     *workers.CommandIntakeWorker
	SnapshotMirror    *workers.SnapshotMirrorWorker
	Replicator        *replication.Replicator
	Publishers        pubsub.PublisherFactory
}

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideVehicleName(cfg config.AppConfig) string {
	return cfg.Vehicle.Name
}

func provideVehicleSettings(cfg config.AppConfig) domain.VehicleSettings {
	v := cfg.Vehicle
	return domain.VehicleSettings{
		Name:                         v.Name,
		Host:                         v.Host,
		Port:                         v.Port,
		IdleTimeout:                  v.IdleTimeout,
		ReconnectDelay:               v.ReconnectDelay,
		ReconnectOnConnectionLoss:    v.ReconnectOnConnectionLoss,
		DisconnectOnVehicleIdle:      v.DisconnectOnVehicleIdle,
		LoggingEnabled:               v.LoggingEnabled,
		PeriodicStateRequestsEnabled: v.PeriodicStateRequestsEnabled,
		StateRequestInterval:         v.StateRequestInterval,
	}
}

func provideChannelFactory(cfg config.AppConfig) (*communication.VehicleChannelFactory, error) {
	policy, err := telegrams.ParseFramingPolicy(cfg.Vehicle.FramingPolicy)
	if err != nil {
		return nil, err
	}

	return communication.NewVehicleChannelFactory(
		cfg.Vehicle.Name,
		policy,
		tcp.WithDialTimeout(cfg.Vehicle.DialTimeout),
		tcp.WithWriteTimeout(cfg.Vehicle.WriteTimeout),
	), nil
}

func provideOrderMapper(cfg config.AppConfig) *mapper.OrderMapper {
	return mapper.NewOrderMapper(cfg.Vehicle.Points)
}

func provideCommandTracker() *usecases.CommandTracker {
	return usecases.NewCommandTracker(telegrams.NewOrderCounter())
}

func provideCache(cfg config.AppConfig) (cache.Cache, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisConfig := cache.DefaultRedisConfig()
		redisConfig.Addr = cfg.Redis.Addr
		redisConfig.Password = cfg.Redis.Password
		redisConfig.DB = cfg.Redis.DB
		redisConfig.PoolSize = cfg.Redis.PoolSize
		redisConfig.KeyPrefix = cfg.Redis.KeyPrefix

		c, err := cache.NewRedisCache(context.Background(), redisConfig)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {
			if err := c.Close(); err != nil {
				slog.Error("closing redis cache", slog.Any("error", err))
			}
		}, nil

	case config.CacheBackendMemory:
		c, err := cache.NewMemoryCache(cache.MemoryCacheConfig{
			MaxCost:     cfg.Cache.MaxCost,
			NumCounters: cfg.Cache.NumCounters,
			BufferItems: cfg.Cache.BufferItems,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	default:
		return nil, nil, fmt.Errorf("cache backend %q not supported", cfg.Cache.Backend)
	}
}

func provideVehicleStateCache(cfg config.AppConfig, c cache.Cache) *persistence.VehicleStateCache {
	return persistence.NewVehicleStateCache(c, cfg.Cache.TTL)
}

func provideMirrorTicker(cfg config.AppConfig) *time.Ticker {
	return time.NewTicker(cfg.Cache.MirrorEvery)
}

func provideSchemaRegistry(cfg config.AppConfig) avro.SchemaRegistry {
	if cfg.Kafka.Format != config.MessageFormatConfluent {
		return nil
	}
	return avro.NewConfluentSchemaRegistry(cfg.Kafka.SchemaRegistryURL)
}

func provideCodecFactory(cfg config.AppConfig, registry avro.SchemaRegistry, schemas cache.Cache) (pubsub.CodecFactory, error) {
	return avro.NewCodecFactory(cfg.Kafka.Format, registry, schemas)
}

func providePubSubFactory(cfg config.AppConfig, codecs pubsub.CodecFactory) *pubsub.Factory {
	return pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:   cfg.General.Environment,
		KafkaBrokers:  cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.Group,
		Codecs:        codecs,
	})
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}

func provideConsumerFactory(factory *pubsub.Factory) pubsub.ConsumerFactory {
	return factory.GetConsumerFactory()
}

func provideORM(cfg config.AppConfig) (sql.ORM, error) {
	return sql.Open(sql.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		QueryTimeout: cfg.Database.QueryTimeout,
	})
}

// provideReplicator feeds the journal from its own consumer group so that it sees every
// result regardless of the other consumers.
func provideReplicator(cfg config.AppConfig, factory *pubsub.Factory, journal *persistence.CommandJournal) (*replication.Replicator, error) {
	replicator := replication.NewReplicator(factory.GetGroupConsumerFactory(cfg.Kafka.Group + "-journal"))
	if err := replicator.RegisterHandler(journal); err != nil {
		return nil, err
	}
	return replicator, nil
}
