// Package store contains the MongoDB-backed player storage shared by the
// query and synchronization paths.
package store

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/scoutline/player-catalog-server/internal/config"
	"github.com/scoutline/player-catalog-server/internal/logger"
)

const (
	defaultMaxPoolSize    = 25
	defaultConnectTimeout = 10 * time.Second
)

// Connection wraps the long-lived MongoDB client and the players
// collection handle. It is opened once at startup and shared by both
// engines; neither of them mutates connection state.
type Connection struct {
	Client  *mongo.Client
	Players *mongo.Collection
}

// NewConnection opens a MongoDB connection from the provided configuration
// and verifies it with a ping.
func NewConnection(ctx context.Context, cfg *config.DatabaseConfig) (*Connection, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}

	uri, err := connectionURI(cfg)
	if err != nil {
		return nil, err
	}

	maxPoolSize := cfg.MaxPoolSize
	if maxPoolSize == 0 {
		maxPoolSize = defaultMaxPoolSize
	}

	connectTimeout := defaultConnectTimeout
	if cfg.ConnectTimeout != "" {
		duration, err := time.ParseDuration(cfg.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid connect timeout: %w", err)
		}
		connectTimeout = duration
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetConnectTimeout(connectTimeout)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		if disconnectErr := client.Disconnect(context.Background()); disconnectErr != nil {
			logger.Errorf("Failed to disconnect after ping failure: %v", disconnectErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = "players"
	}

	logger.Infof("Database connection established: %s/%s", cfg.Database, collection)

	return &Connection{
		Client:  client,
		Players: client.Database(cfg.Database).Collection(collection),
	}, nil
}

// connectionURI builds the MongoDB URI: an explicit URI wins, otherwise one
// is assembled from host, port, and credentials.
func connectionURI(cfg *config.DatabaseConfig) (string, error) {
	if cfg.URI != "" {
		return cfg.URI, nil
	}
	if cfg.Host == "" {
		return "", fmt.Errorf("database host or uri is required")
	}

	port := cfg.Port
	if port == 0 {
		port = 27017
	}

	credentials := ""
	if cfg.User != "" {
		password, err := cfg.GetPassword()
		if err != nil {
			return "", fmt.Errorf("failed to get database password: %w", err)
		}
		credentials = url.UserPassword(cfg.User, password).String() + "@"
	}

	return fmt.Sprintf("mongodb://%s%s:%d", credentials, cfg.Host, port), nil
}

// Close disconnects the underlying client.
func (c *Connection) Close(ctx context.Context) error {
	if c.Client != nil {
		logger.Info("Closing database connection")
		return c.Client.Disconnect(ctx)
	}
	return nil
}

// Ping verifies the database connection is still alive.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Client == nil {
		return fmt.Errorf("database connection is nil")
	}
	return c.Client.Ping(ctx, readpref.Primary())
}
