package storage

import (
	"context"
	"fmt"

	"statelab/internal/config"
)

// Open builds the Backend named by STORAGE_BACKEND. Unknown names are an
// error rather than a silent fallback.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StorageBackend {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.StorageDir)
	case "bolt":
		return NewBolt(cfg.BoltPath)
	case "redis":
		return NewRedis(ctx, cfg.RedisURL, cfg.RedisPoolSize)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires DATABASE_URL")
		}
		return NewPostgres(ctx, cfg.DatabaseURL, cfg.DBPoolSize)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
