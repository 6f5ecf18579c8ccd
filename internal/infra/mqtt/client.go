package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	_statusQoS        = 0
	_operationTimeout = 5 * time.Second
	_connectTimeout   = 5 * time.Second
	_keepAlive        = 10 * time.Second
	_quiesce          = 250 * time.Millisecond
)

var (
	ErrConnectTimeout = errors.New("timed out connecting to MQTT broker")
	ErrTimeout        = errors.New("timed out waiting for MQTT broker")
)

//go:generate mockgen -source=client.go -destination=../../../test/unit/doubles/infra/mqtt/client_mock.go -package=mqtt

// Client publishes vehicle status and availability. Payloads are JSON encoded.
type Client interface {
	Subscribe(topic string, qos byte, callback MessageHandler) error
	Publish(topic string, msg any) error
	PublishRetained(topic string, msg any) error

	Disconnect()
}

type MessageHandler func(Client, Message)

type Message interface {
	Topic() string
	MessageID() uint16
	Payload() []byte
	Ack()
}

type SimpleClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
	// WillTopic, when set, gets WillPayload retained if the connection drops unexpectedly.
	WillTopic   string
	WillPayload string
}

// SimpleClient wraps a paho client and replays its subscriptions after every reconnect.
type SimpleClient struct {
	client paho.Client

	mu            sync.RWMutex
	subscriptions map[string]subscription
}

type subscription struct {
	qos      byte
	callback MessageHandler
}

var _ Client = (*SimpleClient)(nil)

func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	c := &SimpleClient{subscriptions: make(map[string]subscription)}

	client := paho.NewClient(c.pahoOptions(opts))
	token := client.Connect()
	if !token.WaitTimeout(_connectTimeout) {
		return nil, ErrConnectTimeout
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.Broker, err)
	}

	c.client = client
	return c, nil
}

func (c *SimpleClient) pahoOptions(opts SimpleClientOpts) *paho.ClientOptions {
	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetAutoReconnect(true).
		SetKeepAlive(_keepAlive).
		SetConnectTimeout(_connectTimeout).
		SetOnConnectHandler(func(client paho.Client) {
			slog.Info("connected to MQTT broker", slog.String("broker", opts.Broker))
			c.restore(client)
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			slog.Warn("lost connection to MQTT broker", slog.String("broker", opts.Broker), slog.Any("error", err))
		})

	if opts.WillTopic != "" {
		pahoOpts.SetWill(opts.WillTopic, opts.WillPayload, _statusQoS, true)
	}
	return pahoOpts
}

func (c *SimpleClient) restore(client paho.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for topic, sub := range c.subscriptions {
		if err := await(client.Subscribe(topic, sub.qos, c.adapt(sub.callback))); err != nil {
			slog.Error("restoring MQTT subscription", slog.String("topic", topic), slog.Any("error", err))
		}
	}
}

func (c *SimpleClient) adapt(callback MessageHandler) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		callback(c, msg)
	}
}

func (c *SimpleClient) Subscribe(topic string, qos byte, callback MessageHandler) error {
	if err := await(c.client.Subscribe(topic, qos, c.adapt(callback))); err != nil {
		return fmt.Errorf("subscribing to topic %s: %w", topic, err)
	}

	c.mu.Lock()
	c.subscriptions[topic] = subscription{qos: qos, callback: callback}
	c.mu.Unlock()

	slog.Debug("subscribed to MQTT topic", slog.String("topic", topic), slog.Int("qos", int(qos)))
	return nil
}

func (c *SimpleClient) Publish(topic string, msg any) error {
	return c.publish(topic, msg, false)
}

// PublishRetained publishes msg so that late subscribers receive it on subscription.
func (c *SimpleClient) PublishRetained(topic string, msg any) error {
	return c.publish(topic, msg, true)
}

func (c *SimpleClient) publish(topic string, msg any, retained bool) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message for %s: %w", topic, err)
	}
	if err := await(c.client.Publish(topic, _statusQoS, retained, payload)); err != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, err)
	}
	return nil
}

func (c *SimpleClient) Disconnect() {
	c.mu.Lock()
	clear(c.subscriptions)
	c.mu.Unlock()

	c.client.Disconnect(uint(_quiesce.Milliseconds()))
}

func await(token paho.Token) error {
	if !token.WaitTimeout(_operationTimeout) {
		return ErrTimeout
	}
	return token.Error()
}
