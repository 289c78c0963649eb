package bootstrap

import (
	"context"
	"fmt"

	"github.com/octabyte/campus-portal/config"
	dbredis "github.com/octabyte/campus-portal/db/redis"
	"github.com/octabyte/campus-portal/session"
	"github.com/octabyte/campus-portal/utils/logger"
)

// NewStore opens the session store selected by cfg.Session.Store. The
// returned func releases it.
func NewStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.StoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	case config.StoreFile:
		return session.NewFileStore(cfg.Session.File), func() {}, nil
	case config.StoreRedis:
		rdb, err := dbredis.NewRedisClient(ctx, dbredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: session store: %w", err)
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				logger.LogErrorf("closing redis: %v", err)
			}
		}
		return session.NewRedisStore(rdb, cfg.Redis.KeyPrefix), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("bootstrap: unknown session store %q", cfg.Session.Store)
	}
}
