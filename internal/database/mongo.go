package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cookmate/cookmate/backend/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// NewMongo connects to MONGO_URI and returns the configured database. The
// caller disconnects db.Client() on shutdown.
func NewMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Info("connected to mongo", zap.String("database", cfg.MongoDatabase))
	return client.Database(cfg.MongoDatabase), nil
}
