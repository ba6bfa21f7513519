// Package mqtt wraps the Paho client behind a small publish/subscribe
// connector.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	defaultBrokerURL       = "tcp://localhost:1883"
	defaultClientID        = "connector-go"
	defaultQoS             = 1
	defaultConnectTimeout  = 10 * time.Second
	defaultDisconnectGrace = 250 * time.Millisecond
)

// ErrConnectTimeout indicates the broker did not answer within the
// configured connect timeout.
var ErrConnectTimeout = errors.New("timed out connecting to MQTT broker")

// Config configures an MQTT connection.
type Config struct {
	// BrokerURL is the tcp:// or ssl:// broker address.
	BrokerURL string
	// ClientID identifies this client to the broker.
	ClientID string
	// Username and Password authenticate the connection when set.
	Username string
	Password string
	// QoS is the quality-of-service level for publish and subscribe.
	QoS byte
	// ConnectTimeout bounds connection establishment.
	ConnectTimeout time.Duration
	// DisconnectGrace is how long Close waits for in-flight work.
	DisconnectGrace time.Duration
}

func (c Config) withDefaults() Config {
	if c.BrokerURL == "" {
		c.BrokerURL = defaultBrokerURL
	}

	if c.ClientID == "" {
		c.ClientID = defaultClientID
	}

	if c.QoS == 0 {
		c.QoS = defaultQoS
	}

	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}

	if c.DisconnectGrace <= 0 {
		c.DisconnectGrace = defaultDisconnectGrace
	}

	return c
}

// Connector owns a connected MQTT client.
type Connector struct {
	client paho.Client
	qos    byte
	grace  time.Duration
}

// Connect dials the broker and waits for the connection to settle.
func Connect(cfg Config) (*Connector, error) {
	cfg = cfg.withDefaults()

	options := paho.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(cfg.ConnectTimeout)

	if cfg.Username != "" {
		options.SetUsername(cfg.Username)
		options.SetPassword(cfg.Password)
	}

	client := paho.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, ErrConnectTimeout
	}

	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Connector{
		client: client,
		qos:    cfg.QoS,
		grace:  cfg.DisconnectGrace,
	}, nil
}

// Publish sends payload to topic and waits for the broker acknowledgement
// or ctx cancellation, whichever comes first.
func (c *Connector) Publish(ctx context.Context, topic string, payload []byte) error {
	token := c.client.Publish(topic, c.qos, false, payload)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
	}

	if token.Error() != nil {
		return fmt.Errorf("publishing to topic %q: %w", topic, token.Error())
	}

	return nil
}

// Subscribe invokes handler for every message on topic. Delivery runs on the
// Paho client's goroutines; handler must be safe for concurrent calls.
func (c *Connector) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := c.client.Subscribe(topic, c.qos, func(_ paho.Client, message paho.Message) {
		handler(message.Topic(), message.Payload())
	})

	token.Wait()

	if token.Error() != nil {
		return fmt.Errorf("subscribing to topic %q: %w", topic, token.Error())
	}

	return nil
}

// Close disconnects from the broker after the configured grace period.
func (c *Connector) Close() {
	c.client.Disconnect(uint(c.grace.Milliseconds()))
}
