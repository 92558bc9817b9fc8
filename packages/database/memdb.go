package database

import (
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
)

// memDB keeps all archived snapshots in memory. It is used by tests and by the diagnostic mode of the tool.
type memDB struct {
	store kvstore.KVStore
}

// NewMemDB returns a new in-memory (not persisted) DB object.
func NewMemDB() DB {
	return &memDB{store: mapdb.NewMapDB()}
}

func (db *memDB) NewStore() kvstore.KVStore {
	return db.store
}

func (db *memDB) Close() error {
	db.store = nil
	return nil
}

func (db *memDB) RequiresGC() bool {
	return false
}

func (db *memDB) GC() error {
	return nil
}
