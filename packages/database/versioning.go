package database

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
)

// Version defines the version of the database schema. Every breaking change of the stored data needs to increase it.
const Version byte = 1

// ErrVersionIncompatible is returned when a database was written with a different schema version.
var ErrVersionIncompatible = errors.New("database version is not compatible, please delete the database folder")

var versionKey = kvstore.Key{PrefixVersion}

// CheckVersion checks whether the database is compatible with the current schema version. The version is stored
// when the database is new.
func CheckVersion(store kvstore.KVStore) error {
	value, err := store.Get(versionKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		if err = store.Set(versionKey, kvstore.Value{Version}); err != nil {
			return errors.Wrap(err, "unable to persist database version")
		}

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read database version")
	}

	if len(value) != 1 || value[0] != Version {
		return errors.Wrapf(ErrVersionIncompatible, "supported version %d, database version %v", Version, value)
	}

	return nil
}
