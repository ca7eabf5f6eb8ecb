package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusshield/config"
	"campusshield/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	ComplaintsCollection = "complaints"
	AdminsCollection     = "admins"
)

// ErrNotFound is returned by stores when no document matches.
var ErrNotFound = errors.New("not found")

type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect dials MongoDB, pings it and ensures the lookup indexes exist.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	m := &Mongo{Client: client, Database: client.Database(cfg.Database)}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.Log.Info("connected to MongoDB", zap.String("database", cfg.Database))
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.Collection(ComplaintsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ticketId", Value: 1}}},
		{Keys: bson.D{{Key: "ticketID", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create complaint indexes: %w", err)
	}

	_, err = m.Collection(AdminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create admin indexes: %w", err)
	}
	return nil
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

func (m *Mongo) Disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		logger.Log.Warn("failed to disconnect MongoDB", zap.Error(err))
		return
	}
	logger.Log.Info("disconnected from MongoDB")
}
