// Package kafka wraps segmentio/kafka-go behind a small publish/subscribe
// connector.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	defaultBroker       = "localhost:9092"
	defaultBatchTimeout = 100 * time.Millisecond
)

// ErrTopicRequired indicates Config.Topic was left empty.
var ErrTopicRequired = errors.New("topic is required")

// Config configures Kafka producers and consumers.
type Config struct {
	// Brokers lists bootstrap broker addresses.
	Brokers []string
	// Topic is the topic all operations target. Required.
	Topic string
	// GroupID names the consumer group used by Subscribe.
	GroupID string
	// BatchTimeout is how long the writer buffers before flushing.
	BatchTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if len(c.Brokers) == 0 {
		c.Brokers = []string{defaultBroker}
	}

	if c.BatchTimeout <= 0 {
		c.BatchTimeout = defaultBatchTimeout
	}

	return c
}

// Connector owns a Kafka writer and the configuration for readers.
type Connector struct {
	writer *kafkago.Writer
	cfg    Config
}

// Connect builds a connector for the configured topic. kafka-go dials
// lazily, so broker reachability surfaces on first use.
func Connect(cfg Config) (*Connector, error) {
	cfg = cfg.withDefaults()

	if cfg.Topic == "" {
		return nil, ErrTopicRequired
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: cfg.BatchTimeout,
	}

	return &Connector{
		writer: writer,
		cfg:    cfg,
	}, nil
}

// Publish writes one message to the topic.
func (c *Connector) Publish(ctx context.Context, key, value []byte) error {
	err := c.writer.WriteMessages(ctx, kafkago.Message{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("writing to topic %q: %w", c.cfg.Topic, err)
	}

	return nil
}

// Subscribe reads the topic as part of the configured consumer group and
// invokes handler for every message. It blocks until ctx is cancelled.
func (c *Connector) Subscribe(ctx context.Context, handler func(key, value []byte)) error {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: c.cfg.Brokers,
		GroupID: c.cfg.GroupID,
		Topic:   c.cfg.Topic,
	})
	defer func() { _ = reader.Close() }()

	for {
		message, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return fmt.Errorf("reading from topic %q: %w", c.cfg.Topic, err)
		}

		handler(message.Key, message.Value)
	}
}

// Close flushes and closes the writer.
func (c *Connector) Close() error {
	err := c.writer.Close()
	if err != nil {
		return fmt.Errorf("closing writer: %w", err)
	}

	return nil
}
