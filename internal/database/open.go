package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"property-storefront/internal/config"
	"property-storefront/internal/storage"
)

// Open returns the port selected by cfg.Backend and a function releasing it.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (storage.Port, func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}
	noop := func() error { return nil }

	var (
		port  storage.Port
		closer func() error
	)
	switch cfg.Backend {
	case "memory":
		port, closer = storage.NewMemoryPort(), noop
	case "", "file":
		fp, err := storage.NewFilePort(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		port, closer = fp, noop
	case "sqlite":
		p, err := OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		port, closer = p, p.Close
	case "postgres":
		p, err := OpenPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, err
		}
		port, closer = p, p.Close
	case "mysql":
		p, err := OpenMySQL(cfg.MySQL.DSN())
		if err != nil {
			return nil, nil, err
		}
		port, closer = p, p.Close
	case "redis":
		p, err := OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		port, closer = p, p.Close
	case "mongo":
		p, err := OpenMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, err
		}
		port, closer = p, p.Close
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	log.Info("storage opened", zap.String("backend", cfg.Backend))
	return port, closer, nil
}
