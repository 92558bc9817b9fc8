package database

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVersion(t *testing.T) {
	db := NewMemDB()
	defer db.Close()
	store := db.NewStore()

	require.NoError(t, CheckVersion(store))
	require.NoError(t, CheckVersion(store))

	require.NoError(t, store.Set(versionKey, kvstore.Value{Version + 1}))
	assert.True(t, errors.Is(CheckVersion(store), ErrVersionIncompatible))
}

func TestNewDB(t *testing.T) {
	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	assert.True(t, db.RequiresGC())

	store := db.NewStore()
	require.NoError(t, CheckVersion(store))
	require.NoError(t, store.Set(kvstore.Key{PrefixArchive, 1}, kvstore.Value("value")))

	value, err := store.Get(kvstore.Key{PrefixArchive, 1})
	require.NoError(t, err)
	assert.Equal(t, kvstore.Value("value"), value)

	require.NoError(t, db.GC())
	require.NoError(t, db.Close())
}

func TestNewMemDB(t *testing.T) {
	db := NewMemDB()
	assert.False(t, db.RequiresGC())

	require.NoError(t, db.NewStore().Set(kvstore.Key{PrefixArchive, 1}, kvstore.Value("value")))
	value, err := db.NewStore().Get(kvstore.Key{PrefixArchive, 1})
	require.NoError(t, err)
	assert.Equal(t, kvstore.Value("value"), value)

	require.NoError(t, db.GC())
	require.NoError(t, db.Close())
}
