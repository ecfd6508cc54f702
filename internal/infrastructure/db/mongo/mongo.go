package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second

	// DefaultDatabase is the logical database holding the users and messages collections.
	DefaultDatabase = "nocturnal"

	usersCollection    = "users"
	messagesCollection = "messages"
)

// Config captures the settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	// CollectionSuffix is appended to every collection name ("-test" selects
	// users-test and messages-test).
	CollectionSuffix string
	Timeout          time.Duration
}

// Connection owns the client and the two collection handles. It is created
// once at startup and shared, read-only, by every repository.
type Connection struct {
	client   *mongo.Client
	db       *mongo.Database
	users    *mongo.Collection
	messages *mongo.Collection
}

// Connect establishes a MongoDB client with Server API version 1, verifies
// connectivity with a ping, and resolves the users and messages collections.
// A default timeout is applied to the handshake when none is provided.
func Connect(ctx context.Context, cfg Config) (*Connection, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo connect: uri is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	database := cfg.Database
	if database == "" {
		database = DefaultDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	return &Connection{
		client:   client,
		db:       db,
		users:    db.Collection(usersCollection + cfg.CollectionSuffix),
		messages: db.Collection(messagesCollection + cfg.CollectionSuffix),
	}, nil
}

// Ping issues a lightweight {ping: 1} command against the logical database.
func (c *Connection) Ping(ctx context.Context) error {
	return c.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Close disconnects the underlying client.
func (c *Connection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Database returns the logical database handle.
func (c *Connection) Database() *mongo.Database {
	return c.db
}
