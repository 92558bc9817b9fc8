package archive

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"

	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/database"
	"github.com/iotaledger/banksnapshot/packages/snapshot"
)

// ErrSnapshotNotFound is returned when no snapshot is archived for the requested slot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// realm is the prefix of all keys that are written by the Archive.
var realm = []byte{database.PrefixArchive}

// region Archive //////////////////////////////////////////////////////////////////////////////////////////////////////

// Archive keeps snapshot files in a KVStore, keyed by the slot of the snapshot.
type Archive struct {
	store kvstore.KVStore
	mutex sync.RWMutex
}

// New returns an Archive that uses the given KVStore.
func New(store kvstore.KVStore) *Archive {
	return &Archive{
		store: store,
	}
}

// Store archives the given snapshot file. An existing file of the same slot is replaced.
func (a *Archive) Store(file *snapshot.File) (err error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err = a.store.Set(slotKey(file.Slot), file.Bytes()); err != nil {
		return errors.Wrapf(err, "failed to store snapshot of slot %d", file.Slot)
	}

	return nil
}

// Load returns the archived snapshot file of the given slot.
func (a *Archive) Load(slot bank.Slot) (file *snapshot.File, err error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	data, err := a.store.Get(slotKey(slot))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, errors.Wrapf(ErrSnapshotNotFound, "no snapshot for slot %d", slot)
		}

		return nil, errors.Wrapf(err, "failed to load snapshot of slot %d", slot)
	}

	if file, err = snapshot.FileFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse archived snapshot of slot %d", slot)
	}

	return file, nil
}

// Latest returns the archived snapshot file with the highest slot.
func (a *Archive) Latest() (file *snapshot.File, err error) {
	slots, err := a.Slots()
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, errors.Wrap(ErrSnapshotNotFound, "archive is empty")
	}

	return a.Load(slots[len(slots)-1])
}

// Slots returns the slots of all archived snapshots in ascending order.
func (a *Archive) Slots() (slots []bank.Slot, err error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if err = a.store.Iterate(realm, func(key kvstore.Key, _ kvstore.Value) bool {
		if len(key) == len(realm)+8 {
			slots = append(slots, binary.BigEndian.Uint64(key[len(realm):]))
		}

		return true
	}); err != nil {
		return nil, errors.Wrap(err, "failed to iterate archived snapshots")
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	return slots, nil
}

// Delete removes the archived snapshot of the given slot.
func (a *Archive) Delete(slot bank.Slot) (err error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err = a.store.Delete(slotKey(slot)); err != nil {
		return errors.Wrapf(err, "failed to delete snapshot of slot %d", slot)
	}

	return nil
}

// Prune removes all archived snapshots except for the newest ones and returns the number of removed snapshots.
func (a *Archive) Prune(keep int) (pruned int, err error) {
	if keep < 0 {
		return 0, errors.Errorf("number of kept snapshots must not be negative: %d", keep)
	}

	slots, err := a.Slots()
	if err != nil {
		return 0, err
	}

	for i := 0; i < len(slots)-keep; i++ {
		if err = a.Delete(slots[i]); err != nil {
			return pruned, err
		}
		pruned++
	}

	return pruned, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// slotKey returns the key of the snapshot of the given slot. Slots are big endian so that keys sort by slot.
func slotKey(slot bank.Slot) kvstore.Key {
	key := make([]byte, len(realm)+8)
	copy(key, realm)
	binary.BigEndian.PutUint64(key[len(realm):], slot)

	return key
}
