package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/config"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/db"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/migrate"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/redis"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage/file"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage/memory"
)

// backend is the cart persistence selected by ELEX_STORAGE_DRIVER.
type backend struct {
	kv      storage.KV
	pingers map[string]storage.Pinger
	closers []io.Closer
}

func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*backend, error) {
	driver := cfg.Storage.NormalizedDriver()
	b := &backend{pingers: map[string]storage.Pinger{}}

	switch driver {
	case config.StorageMemory:
		b.kv = memory.New()

	case config.StorageFile:
		kv, err := file.New(cfg.Storage.FileDir)
		if err != nil {
			return nil, fmt.Errorf("file storage: %w", err)
		}
		b.kv = kv

	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("redis storage: %w", err)
		}
		b.kv = redis.NewKV(client, cfg.Redis.CartTTL)
		b.pingers[config.StorageRedis] = client
		b.closers = append(b.closers, client)

	case config.StorageSQLite, config.StoragePostgres:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("%s storage: %w", driver, err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%s migrations: %w", driver, err)
		}
		b.kv = db.NewKV(client.DB())
		b.closers = append(b.closers, client)
		b.pingers[driver] = client

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "storage_driver", driver), "cart storage ready")
	}
	return b, nil
}
