package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jakechorley/escala/internal/config"
	"github.com/jakechorley/escala/pkg/db"
)

func TestOpen_FileBackends(t *testing.T) {
	tests := []struct {
		backend string
		file    string
	}{
		{"memory", ""},
		{"bolt", "escala.db"},
		{"sqlite", "escala.sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.StorageConfig{Backend: tt.backend}
			if tt.file != "" {
				cfg.Path = filepath.Join(t.TempDir(), tt.file)
			}

			kv, err := Open(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			defer kv.Close()

			require.NoError(t, kv.Set(ctx, db.KeyManagerMode, "true"))
			value, ok, err := kv.Get(ctx, db.KeyManagerMode)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", value)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Backend: "redis"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestOpen_LogsBackendOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	kv, err := Open(context.Background(), config.StorageConfig{Backend: "memory"}, zap.New(core))
	require.NoError(t, err)
	defer kv.Close()

	entries := logs.FilterMessage("Opening storage").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "memory", entries[0].ContextMap()["backend"])
}
