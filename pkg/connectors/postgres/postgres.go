// Package postgres wraps a pgx connection pool behind a small connector,
// including LISTEN/NOTIFY pub/sub.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultConnectTimeout = 10 * time.Second

// ErrURLRequired indicates Config.URL was left empty.
var ErrURLRequired = errors.New("connection URL is required")

// Config configures a PostgreSQL connection pool.
type Config struct {
	// URL is the postgres:// connection string. Required.
	URL string
	// MaxConns caps the pool size; 0 keeps the pgx default.
	MaxConns int32
	// ConnectTimeout bounds the initial connect and ping.
	ConnectTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}

	return c
}

// Connector owns a pgx connection pool.
type Connector struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*Connector, error) {
	cfg = cfg.withDefaults()

	if cfg.URL == "" {
		return nil, ErrURLRequired
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing connection URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	err = pool.Ping(pingCtx)
	if err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Connector{pool: pool}, nil
}

// Exec runs a statement and returns the number of affected rows.
func (c *Connector) Exec(ctx context.Context, sql string, args ...interface{}) (int64, error) {
	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("executing statement: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Query runs a query returning multiple rows. The caller must close the rows.
func (c *Connector) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}

	return rows, nil
}

// QueryRow runs a query expected to return at most one row.
func (c *Connector) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return c.pool.QueryRow(ctx, sql, args...)
}

// Publish sends payload to every listener on channel via pg_notify.
func (c *Connector) Publish(ctx context.Context, channel, payload string) error {
	_, err := c.pool.Exec(ctx, "SELECT pg_notify($1, $2)", channel, payload)
	if err != nil {
		return fmt.Errorf("notifying channel %q: %w", channel, err)
	}

	return nil
}

// Subscribe listens on channel and invokes handler for every notification.
// It blocks until ctx is cancelled and returns the context's error.
func (c *Connector) Subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize())
	if err != nil {
		return fmt.Errorf("listening on channel %q: %w", channel, err)
	}

	for {
		var notification *pgconn.Notification

		notification, err = conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return fmt.Errorf("waiting for notification: %w", err)
		}

		handler(notification.Payload)
	}
}

// Close shuts the pool down, waiting for checked-out connections to return.
func (c *Connector) Close() {
	c.pool.Close()
}
