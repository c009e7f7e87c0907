// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	activitystore "github.com/mytripteam/mytrip/internal/app/store/activities"
	invitestore "github.com/mytripteam/mytrip/internal/app/store/invites"
	"github.com/mytripteam/mytrip/internal/app/store/oauthstate"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the collections, schema validators and indexes every
// collection relies on. It runs on each startup; every step is idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := validators.EnsureAll(ctx, db); err != nil {
		return fmt.Errorf("collection validators: %w", err)
	}

	if err := tripstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("viagens indexes: %w", err)
	}
	if err := activitystore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("atividades indexes: %w", err)
	}
	if err := invitestore.New(db, logger).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("convites indexes: %w", err)
	}
	if err := oauthstate.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("oauth_states indexes: %w", err)
	}

	logger.Info("database indexes ensured")
	return nil
}
