// Package mongodb wraps the official MongoDB driver behind a small
// connector with config-driven defaults.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	defaultURI            = "mongodb://localhost:27017"
	defaultConnectTimeout = 10 * time.Second
)

// ErrDatabaseRequired indicates Config.Database was left empty.
var ErrDatabaseRequired = errors.New("database name is required")

// Config configures a MongoDB connection.
type Config struct {
	// URI is the MongoDB connection string.
	URI string
	// Database is the database all operations target. Required.
	Database string
	// ConnectTimeout bounds the initial connect and ping.
	ConnectTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.URI == "" {
		c.URI = defaultURI
	}

	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}

	return c
}

// Connector owns a MongoDB client scoped to one database.
type Connector struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*Connector, error) {
	cfg = cfg.withDefaults()

	if cfg.Database == "" {
		return nil, ErrDatabaseRequired
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		_ = client.Disconnect(ctx)

		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &Connector{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// InsertOne inserts a document and returns its generated ID.
func (c *Connector) InsertOne(ctx context.Context, collection string, document interface{}) (interface{}, error) {
	result, err := c.database.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	return result.InsertedID, nil
}

// FindOne decodes the first document matching filter into out.
func (c *Connector) FindOne(ctx context.Context, collection string, filter, out interface{}) error {
	err := c.database.Collection(collection).FindOne(ctx, filter).Decode(out)
	if err != nil {
		return fmt.Errorf("finding document: %w", err)
	}

	return nil
}

// Find decodes all documents matching filter into out, which must be a
// pointer to a slice.
func (c *Connector) Find(ctx context.Context, collection string, filter, out interface{}) error {
	cursor, err := c.database.Collection(collection).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("finding documents: %w", err)
	}

	err = cursor.All(ctx, out)
	if err != nil {
		return fmt.Errorf("decoding documents: %w", err)
	}

	return nil
}

// UpdateOne applies update to the first document matching filter and returns
// the number of modified documents.
func (c *Connector) UpdateOne(ctx context.Context, collection string, filter, update interface{}) (int64, error) {
	result, err := c.database.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("updating document: %w", err)
	}

	return result.ModifiedCount, nil
}

// DeleteOne removes the first document matching filter and returns the number
// of deleted documents.
func (c *Connector) DeleteOne(ctx context.Context, collection string, filter interface{}) (int64, error) {
	result, err := c.database.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("deleting document: %w", err)
	}

	return result.DeletedCount, nil
}

// Close disconnects from MongoDB.
func (c *Connector) Close(ctx context.Context) error {
	err := c.client.Disconnect(ctx)
	if err != nil {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}

	return nil
}
