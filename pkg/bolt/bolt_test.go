package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escala/pkg/db"
)

func TestBolt_SetGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "escala.db")

	kv, err := Open(path)
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(ctx, db.KeyAssignments)
	require.NoError(t, err)
	assert.False(t, ok, "fresh database should have no assignments key")

	require.NoError(t, kv.Set(ctx, db.KeyAssignments, `[{"id":"a-1"}]`))

	v, ok, err := kv.Get(ctx, db.KeyAssignments)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a-1"}]`, v)
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "escala.db")

	kv, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, db.KeyManagerMode, "true"))
	require.NoError(t, kv.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, db.KeyManagerMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}
