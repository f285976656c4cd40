package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/finflow/backend/config"
)

// MongoDatabase wraps the MongoDB client and the application database handle.
type MongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoConnection creates a new MongoDB connection and verifies it with a ping.
func NewMongoConnection(cfg *config.MongoConfig) (*MongoDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	slog.Info("MongoDB connection established", "database", cfg.Database)

	return &MongoDatabase{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Database returns the application database handle.
func (m *MongoDatabase) Database() *mongo.Database {
	return m.db
}

// Close disconnects the MongoDB client.
func (m *MongoDatabase) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb client: %w", err)
	}

	slog.Info("MongoDB connection closed")
	return nil
}
