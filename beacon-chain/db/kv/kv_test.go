package kv

import (
	"context"
	"os"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
)

// setupDB instantiates and returns a Store instance.
func setupDB(t testing.TB) *Store {
	db, err := NewKVStore(context.Background(), t.TempDir(), &Config{})
	require.NoError(t, err, "Failed to instantiate DB")
	t.Cleanup(func() {
		require.NoError(t, db.Close(), "Failed to close database")
	})
	return db
}

func TestStore_OpensExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := NewKVStore(context.Background(), dir, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewKVStore(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, db.DatabasePath())
	require.NoError(t, db.Close())
}

func TestStore_ClearDB(t *testing.T) {
	dir := t.TempDir()
	db, err := NewKVStore(context.Background(), dir, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, db.ClearDB())
	_, err = os.Stat(StoreDatafilePath(dir))
	assert.Equal(t, true, os.IsNotExist(err), "database file should have been removed")
}
