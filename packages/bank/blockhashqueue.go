package bank

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
)

// HashAge contains the metadata of a blockhash in the BlockhashQueue.
type HashAge struct {
	HashIndex     uint64
	Timestamp     uint64
	FeeCalculator *FeeCalculator
}

// BlockhashQueue is the bounded history of recent blockhashes that is used to reject duplicate and expired
// transactions.
type BlockhashQueue struct {
	// LastHashIndex is the index that was assigned to the most recently registered hash.
	LastHashIndex uint64
	// LastHash is the most recently registered hash (nil before the first hash is registered).
	LastHash *Hash
	// MaxAge is the amount of hash indexes that a hash stays valid for.
	MaxAge uint64
	// Ages maps the registered hashes to their metadata.
	Ages map[Hash]HashAge
}

// NewBlockhashQueue creates an empty BlockhashQueue that keeps hashes for maxAge indexes.
func NewBlockhashQueue(maxAge uint64) *BlockhashQueue {
	return &BlockhashQueue{
		MaxAge: maxAge,
		Ages:   make(map[Hash]HashAge),
	}
}

// RegisterHash adds a new hash to the queue and evicts the hashes that fell out of the valid age range.
func (b *BlockhashQueue) RegisterHash(hash Hash, lamportsPerSignature, timestamp uint64) {
	b.LastHashIndex++
	if uint64(len(b.Ages)) >= b.MaxAge {
		for ageHash, age := range b.Ages {
			if b.LastHashIndex-age.HashIndex > b.MaxAge {
				delete(b.Ages, ageHash)
			}
		}
	}

	b.Ages[hash] = HashAge{
		HashIndex:     b.LastHashIndex,
		Timestamp:     timestamp,
		FeeCalculator: &FeeCalculator{LamportsPerSignature: lamportsPerSignature},
	}
	b.LastHash = &hash
}

// HashAge returns the metadata of the given hash.
func (b *BlockhashQueue) HashAge(hash Hash) (age HashAge, exists bool) {
	age, exists = b.Ages[hash]
	return age, exists
}

// IsHashValidForAge returns true if the given hash was registered at most maxAge indexes ago.
func (b *BlockhashQueue) IsHashValidForAge(hash Hash, maxAge uint64) bool {
	age, exists := b.Ages[hash]
	return exists && b.LastHashIndex-age.HashIndex <= maxAge
}

// CheckCapacity returns an error if the queue holds more than MaxAge + 1 entries.
func (b *BlockhashQueue) CheckCapacity() error {
	if entries := uint64(len(b.Ages)); entries > 0 && entries-1 > b.MaxAge {
		return errors.Wrapf(ErrQueueCapacityExceeded, "%d entries with max age %d", entries, b.MaxAge)
	}

	return nil
}

// Clone returns a deep copy of the BlockhashQueue.
func (b *BlockhashQueue) Clone() *BlockhashQueue {
	cloned := &BlockhashQueue{
		LastHashIndex: b.LastHashIndex,
		MaxAge:        b.MaxAge,
		Ages:          make(map[Hash]HashAge, len(b.Ages)),
	}
	if b.LastHash != nil {
		lastHash := *b.LastHash
		cloned.LastHash = &lastHash
	}
	for hash, age := range b.Ages {
		if age.FeeCalculator != nil {
			feeCalculator := *age.FeeCalculator
			age.FeeCalculator = &feeCalculator
		}
		cloned.Ages[hash] = age
	}

	return cloned
}

// String returns a human-readable version of the BlockhashQueue.
func (b *BlockhashQueue) String() string {
	lastHash := "<nil>"
	if b.LastHash != nil {
		lastHash = b.LastHash.String()
	}

	return stringify.Struct("BlockhashQueue",
		stringify.StructField("LastHashIndex", b.LastHashIndex),
		stringify.StructField("LastHash", lastHash),
		stringify.StructField("MaxAge", b.MaxAge),
		stringify.StructField("Entries", len(b.Ages)),
	)
}
