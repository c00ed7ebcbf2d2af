package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookmate/cookmate/backend/config"
	"github.com/cookmate/cookmate/backend/internal/store"
)

// OpenCatalogStore builds the catalog store selected by cfg.StoreDriver,
// migrating SQL backends first. The returned close func releases the
// underlying connection.
func OpenCatalogStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.CatalogStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("using in-memory catalog store, data is lost on restart")
		return store.NewMemoryStore(), noop, nil

	case config.DriverSQLite, config.DriverPostgres:
		var (
			db  *gorm.DB
			err error
		)
		if cfg.StoreDriver == config.DriverSQLite {
			db, err = NewSQLite(cfg.SQLitePath, log)
		} else {
			db, err = NewPostgres(ctx, cfg, log)
		}
		if err != nil {
			return nil, nil, err
		}
		if err := RunMigrations(db, cfg.MigrationsDir, log, &store.DocumentRecord{}); err != nil {
			_ = Close(db)
			return nil, nil, err
		}
		return store.NewGormStore(db), func() error { return Close(db) }, nil

	case config.DriverMongo:
		db, err := NewMongo(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return store.NewMongoStore(db), func() error {
			return db.Client().Disconnect(context.Background())
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
