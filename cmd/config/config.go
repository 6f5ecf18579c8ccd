package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"

	MessageFormatJSON      = "json"
	MessageFormatAvro      = "avro"
	MessageFormatConfluent = "confluent"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

// LoadConfig reads bridge.yaml from the given paths, then config and /config. Environment
// variables prefixed with VEHICLE_BRIDGE_ override file values. Later calls return the first
// result.
func LoadConfig(paths ...string) AppConfig {
	loadConfigOnce.Do(func() {
		v := viper.GetViper()
		v.SetEnvPrefix("vehicle_bridge")
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.SetConfigName("bridge")
		for _, path := range paths {
			v.AddConfigPath(path)
		}
		v.AddConfigPath("config")
		v.AddConfigPath("/config")
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}

		cfg, err := ReadConfig(v)
		if err != nil {
			panic(fmt.Errorf("fatal error config values: %w", err))
		}
		configInstance = cfg
	})

	return configInstance
}

// ReadConfig builds the configuration from v, filling in defaults for missing keys.
func ReadConfig(v *viper.Viper) (AppConfig, error) {
	setDefaults(v)

	var points map[string]uint16
	if err := v.UnmarshalKey("vehicle.points", &points); err != nil {
		return AppConfig{}, fmt.Errorf("vehicle.points: %w", err)
	}

	cfg := AppConfig{
		General: GeneralConfig{
			LogLevel:    v.GetString("general.log_level"),
			Environment: v.GetString("general.environment"),
		},
		HTTP: HTTPConfig{
			Address:        v.GetString("http.address"),
			AllowedOrigins: v.GetStringSlice("http.allowed_origins"),
		},
		Vehicle: VehicleConfig{
			Name:                         v.GetString("vehicle.name"),
			Host:                         v.GetString("vehicle.host"),
			Port:                         v.GetInt("vehicle.port"),
			IdleTimeout:                  v.GetDuration("vehicle.idle_timeout"),
			ReconnectDelay:               v.GetDuration("vehicle.reconnect_delay"),
			ReconnectOnConnectionLoss:    v.GetBool("vehicle.reconnect_on_connection_loss"),
			DisconnectOnVehicleIdle:      v.GetBool("vehicle.disconnect_on_vehicle_idle"),
			LoggingEnabled:               v.GetBool("vehicle.logging_enabled"),
			PeriodicStateRequestsEnabled: v.GetBool("vehicle.periodic_state_requests_enabled"),
			StateRequestInterval:         v.GetDuration("vehicle.state_request_interval"),
			EnableOnStart:                v.GetBool("vehicle.enable_on_start"),
			ConnectOnStart:               v.GetBool("vehicle.connect_on_start"),
			FramingPolicy:                v.GetString("vehicle.framing_policy"),
			DialTimeout:                  v.GetDuration("vehicle.dial_timeout"),
			WriteTimeout:                 v.GetDuration("vehicle.write_timeout"),
			Points:                       points,
		},
		MQTT: MQTTConfig{
			Enabled:        v.GetBool("mqtt.enabled"),
			Broker:         v.GetString("mqtt.broker"),
			ClientIDPrefix: v.GetString("mqtt.client_id_prefix"),
			Username:       v.GetString("mqtt.username"),
			Password:       v.GetString("mqtt.password"),
		},
		Cache: CacheConfig{
			Backend:     v.GetString("cache.backend"),
			TTL:         v.GetDuration("cache.ttl"),
			NumCounters: v.GetInt64("cache.num_counters"),
			MaxCost:     v.GetInt64("cache.max_cost"),
			BufferItems: v.GetInt64("cache.buffer_items"),
			MirrorEvery: v.GetDuration("cache.mirror_every"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			PoolSize:  v.GetInt("redis.pool_size"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Kafka: KafkaConfig{
			Brokers:           v.GetStringSlice("kafka.brokers"),
			Group:             v.GetString("kafka.group"),
			Format:            v.GetString("kafka.format"),
			SchemaRegistryURL: v.GetString("kafka.schema_registry_url"),
		},
		Database: DatabaseConfig{
			Driver:       v.GetString("database.driver"),
			DSN:          v.GetString("database.dsn"),
			QueryTimeout: v.GetDuration("database.query_timeout"),
		},
		PubSub: PubSubConfig{
			Enabled: v.GetBool("pubsub.enabled"),
		},
	}

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.environment", "production")
	v.SetDefault("http.address", ":3000")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("vehicle.name", "vehicle")
	v.SetDefault("vehicle.host", "localhost")
	v.SetDefault("vehicle.port", 2000)
	v.SetDefault("vehicle.idle_timeout", 10*time.Second)
	v.SetDefault("vehicle.reconnect_delay", time.Second)
	v.SetDefault("vehicle.reconnect_on_connection_loss", true)
	v.SetDefault("vehicle.disconnect_on_vehicle_idle", true)
	v.SetDefault("vehicle.logging_enabled", false)
	v.SetDefault("vehicle.periodic_state_requests_enabled", true)
	v.SetDefault("vehicle.state_request_interval", 500*time.Millisecond)
	v.SetDefault("vehicle.enable_on_start", true)
	v.SetDefault("vehicle.connect_on_start", true)
	v.SetDefault("vehicle.framing_policy", "discard_on_ambiguity")
	v.SetDefault("vehicle.dial_timeout", 5*time.Second)
	v.SetDefault("vehicle.write_timeout", 5*time.Second)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.client_id_prefix", "vehicle_bridge")
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.num_counters", 100000)
	v.SetDefault("cache.max_cost", 64<<20)
	v.SetDefault("cache.buffer_items", 64)
	v.SetDefault("cache.mirror_every", time.Hour)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.key_prefix", "vehicle_bridge:")
	v.SetDefault("kafka.group", "vehicle-bridge")
	v.SetDefault("kafka.format", MessageFormatJSON)
	v.SetDefault("database.driver", DatabaseDriverSQLite)
	v.SetDefault("database.dsn", "vehicle_bridge")
	v.SetDefault("database.query_timeout", 5*time.Second)
	v.SetDefault("pubsub.enabled", false)
}

type AppConfig struct {
	General  GeneralConfig
	HTTP     HTTPConfig
	Vehicle  VehicleConfig
	MQTT     MQTTConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	PubSub   PubSubConfig
	Database DatabaseConfig
}

func (c AppConfig) Validate() error {
	if c.Vehicle.Name == "" {
		return fmt.Errorf("vehicle.name is required")
	}
	if c.Vehicle.Port <= 0 || c.Vehicle.Port > 65535 {
		return fmt.Errorf("vehicle.port %d out of range", c.Vehicle.Port)
	}
	if c.Vehicle.StateRequestInterval <= 0 {
		return fmt.Errorf("vehicle.state_request_interval must be positive")
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("cache.backend %q not supported", c.Cache.Backend)
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
	}
	switch c.Kafka.Format {
	case MessageFormatJSON, MessageFormatAvro:
	case MessageFormatConfluent:
		if c.Kafka.SchemaRegistryURL == "" {
			return fmt.Errorf("kafka.schema_registry_url is required for the %s format", c.Kafka.Format)
		}
	default:
		return fmt.Errorf("kafka.format %q not supported", c.Kafka.Format)
	}
	switch c.Database.Driver {
	case DatabaseDriverSQLite, DatabaseDriverPostgres:
	default:
		return fmt.Errorf("database.driver %q not supported", c.Database.Driver)
	}
	return nil
}

type GeneralConfig struct {
	LogLevel string
	// Environment "local" swaps kafka for the in-memory broker.
	Environment string
}

type HTTPConfig struct {
	Address        string
	AllowedOrigins []string
}

type VehicleConfig struct {
	Name                         string
	Host                         string
	Port                         int
	IdleTimeout                  time.Duration
	ReconnectDelay               time.Duration
	ReconnectOnConnectionLoss    bool
	DisconnectOnVehicleIdle      bool
	LoggingEnabled               bool
	PeriodicStateRequestsEnabled bool
	StateRequestInterval         time.Duration
	EnableOnStart                bool
	ConnectOnStart               bool
	FramingPolicy                string
	DialTimeout                  time.Duration
	WriteTimeout                 time.Duration
	// Points maps destination point names to the ids the vehicle knows.
	Points map[string]uint16
}

type MQTTConfig struct {
	Enabled        bool
	Broker         string
	ClientIDPrefix string
	Username       string
	Password       string
}

type CacheConfig struct {
	Backend     string
	TTL         time.Duration
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	MirrorEvery time.Duration
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
}

type KafkaConfig struct {
	Brokers []string
	Group   string
	// Format is json, avro or confluent. Confluent frames avro with a schema registry id.
	Format            string
	SchemaRegistryURL string
}

type DatabaseConfig struct {
	Driver string
	// DSN names the in-memory sqlite database or holds the postgres connection string.
	DSN          string
	QueryTimeout time.Duration
}

type PubSubConfig struct {
	Enabled bool
}
