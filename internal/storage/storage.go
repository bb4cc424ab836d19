package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/escala/internal/config"
	"github.com/jakechorley/escala/pkg/bolt"
	"github.com/jakechorley/escala/pkg/db"
	"github.com/jakechorley/escala/pkg/postgres"
	"github.com/jakechorley/escala/pkg/sqlite"
)

// Open returns the KV backend selected by cfg
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (db.KV, error) {
	logger.Debug("Opening storage", zap.String("backend", cfg.Backend), zap.String("path", cfg.Path))

	switch cfg.Backend {
	case "memory":
		return db.NewMemoryKV(), nil
	case "bolt":
		kv, err := bolt.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "sqlite":
		kv, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "postgres":
		kv, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
