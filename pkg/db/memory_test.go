package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_MissingKey(t *testing.T) {
	kv := NewMemoryKV()

	v, ok, err := kv.Get(context.Background(), KeyVolunteers)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestMemoryKV_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	require.NoError(t, kv.Set(ctx, KeyManagerMode, "false"))
	require.NoError(t, kv.Set(ctx, KeyManagerMode, "true"))

	v, ok, err := kv.Get(ctx, KeyManagerMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}
