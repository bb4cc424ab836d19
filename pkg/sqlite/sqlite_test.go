package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escala/pkg/db"
)

func TestSQLite_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(filepath.Join(t.TempDir(), "escala.sqlite"))
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(ctx, db.KeyVolunteers)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, db.KeyVolunteers, "[]"))
	require.NoError(t, kv.Set(ctx, db.KeyVolunteers, `[{"id":"v-1"}]`))

	v, ok, err := kv.Get(ctx, db.KeyVolunteers)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"v-1"}]`, v)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "escala.sqlite")

	kv, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, db.KeyManagerMode, "false"))
	require.NoError(t, kv.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, path, reopened.Path())
	v, ok, err := reopened.Get(ctx, db.KeyManagerMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}
