// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	draftstore "github.com/dalemusser/workbookhub/internal/app/store/drafts"
	"github.com/dalemusser/workbookhub/internal/app/system/refcache"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB (draft store) and, when configured, to the
// Redis reference-data cache. A Redis failure is logged and the app runs
// without the cache; a MongoDB failure aborts startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetAppName("workbookhub").
		SetServerSelectionTimeout(10 * time.Second)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	if appCfg.MongoMinPoolSize > 0 {
		opts.SetMinPoolSize(appCfg.MongoMinPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB ping failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize),
	)

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Drafts:        draftstore.New(db, appCfg.DraftTTL),
	}

	if appCfg.RefCacheAddr != "" {
		cache, err := refcache.Open(ctx, refcache.Options{
			Addr:     appCfg.RefCacheAddr,
			Password: appCfg.RefCachePassword,
			DB:       appCfg.RefCacheDB,
			Prefix:   "workbookhub:ref:",
			TTL:      appCfg.RefCacheTTL,
		}, logger)
		if err != nil {
			logger.Warn("reference cache unavailable; continuing without it", zap.Error(err))
		} else {
			deps.RefCache = cache
		}
	}

	return deps, nil
}

// EnsureSchema creates the draft collection's indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Drafts == nil {
		return nil
	}
	if err := deps.Drafts.EnsureIndexes(ctx); err != nil {
		logger.Error("draft index setup failed", zap.Error(err))
		return err
	}
	logger.Info("draft indexes ensured")
	return nil
}
