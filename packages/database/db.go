package database

import (
	"github.com/iotaledger/hive.go/kvstore"
)

const (
	// PrefixVersion is the prefix of the key that holds the schema version of the database.
	PrefixVersion byte = iota

	// PrefixArchive is the prefix of all keys of the snapshot archive.
	PrefixArchive
)

// DB represents a database abstraction.
type DB interface {
	// NewStore creates a new KVStore backed by the database.
	NewStore() kvstore.KVStore
	// Close closes a DB.
	Close() error

	// RequiresGC returns whether the database requires a call of GC() to clean deleted items.
	RequiresGC() bool
	// GC runs the garbage collection to clean deleted database items.
	GC() error
}
