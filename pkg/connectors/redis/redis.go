// Package redis wraps go-redis behind a small key/value and
// publish/subscribe connector.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAddr        = "localhost:6379"
	defaultDialTimeout = 5 * time.Second
)

// Config configures a Redis connection.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string
	// Password authenticates the connection; empty means no auth.
	Password string
	// DB selects the logical database.
	DB int
	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}

	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}

	return c
}

// Connector owns a Redis client.
type Connector struct {
	client *redis.Client
}

// Connect creates a Redis client and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*Connector, error) {
	cfg = cfg.withDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	err := client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Connector{client: client}, nil
}

// Publish sends message to every subscriber of channel.
func (c *Connector) Publish(ctx context.Context, channel string, message interface{}) error {
	err := c.client.Publish(ctx, channel, message).Err()
	if err != nil {
		return fmt.Errorf("publishing to channel %q: %w", channel, err)
	}

	return nil
}

// Subscribe invokes handler for every message on channel. It blocks until
// ctx is cancelled and returns the context's error.
func (c *Connector) Subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := c.client.Subscribe(ctx, channel)
	defer func() { _ = pubsub.Close() }()

	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case message, ok := <-messages:
			if !ok {
				return nil
			}

			handler(message.Payload)
		}
	}
}

// Set stores value under key with an optional TTL; 0 means no expiry.
func (c *Connector) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	err := c.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("setting key %q: %w", key, err)
	}

	return nil
}

// Get returns the string value stored under key.
func (c *Connector) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("getting key %q: %w", key, err)
	}

	return value, nil
}

// Close releases the client and its pooled connections.
func (c *Connector) Close() error {
	err := c.client.Close()
	if err != nil {
		return fmt.Errorf("closing redis client: %w", err)
	}

	return nil
}
