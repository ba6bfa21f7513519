// Package nats wraps the NATS client behind a small publish/subscribe and
// request/reply connector.
package nats

import (
	"context"
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
)

const (
	defaultName           = "connector-go"
	defaultConnectTimeout = 5 * time.Second
)

// Config configures a NATS connection.
type Config struct {
	// URL is the nats:// server address.
	URL string
	// Name identifies this connection on the server.
	Name string
	// ConnectTimeout bounds connection establishment.
	ConnectTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = natsgo.DefaultURL
	}

	if c.Name == "" {
		c.Name = defaultName
	}

	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}

	return c
}

// Connector owns a NATS connection.
type Connector struct {
	conn *natsgo.Conn
}

// Connect dials the NATS server.
func Connect(cfg Config) (*Connector, error) {
	cfg = cfg.withDefaults()

	conn, err := natsgo.Connect(cfg.URL,
		natsgo.Name(cfg.Name),
		natsgo.Timeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return &Connector{conn: conn}, nil
}

// Publish sends data to subject.
func (c *Connector) Publish(subject string, data []byte) error {
	err := c.conn.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("publishing to subject %q: %w", subject, err)
	}

	return nil
}

// Subscribe invokes handler for every message on subject. The returned
// subscription can be drained or unsubscribed independently of Close.
func (c *Connector) Subscribe(subject string, handler func(subject string, data []byte)) (*natsgo.Subscription, error) {
	subscription, err := c.conn.Subscribe(subject, func(message *natsgo.Msg) {
		handler(message.Subject, message.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to subject %q: %w", subject, err)
	}

	return subscription, nil
}

// Request sends data to subject and waits for a single reply.
func (c *Connector) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	message, err := c.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, fmt.Errorf("requesting on subject %q: %w", subject, err)
	}

	return message.Data, nil
}

// Close drains the connection, flushing buffered messages before closing.
func (c *Connector) Close() error {
	err := c.conn.Drain()
	if err != nil {
		return fmt.Errorf("draining connection: %w", err)
	}

	return nil
}
