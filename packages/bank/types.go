package bank

import (
	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"
)

const (
	// PubkeyLength contains the amount of bytes that a marshaled version of a Pubkey contains.
	PubkeyLength = 32

	// HashLength contains the amount of bytes that a marshaled version of a Hash contains.
	HashLength = 32
)

// Slot is the index of a discrete time unit of the ledger.
type Slot = uint64

// Epoch is the index of a fixed-length run of slots.
type Epoch = uint64

// UnixTimestamp is a point in time expressed in seconds since the unix epoch.
type UnixTimestamp = int64

// region Pubkey ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Pubkey is the public key that identifies an account.
type Pubkey [PubkeyLength]byte

// PubkeyFromBytes unmarshals a Pubkey from a sequence of bytes of exactly PubkeyLength bytes.
func PubkeyFromBytes(bytes []byte) (pubkey Pubkey, err error) {
	if len(bytes) != PubkeyLength {
		return pubkey, errors.Wrapf(ErrInvalidKeyLength, "pubkey must be %d bytes long, got %d", PubkeyLength, len(bytes))
	}
	copy(pubkey[:], bytes)

	return pubkey, nil
}

// PubkeyFromBase58 creates a Pubkey from its base58 encoded string representation.
func PubkeyFromBase58(base58String string) (pubkey Pubkey, err error) {
	bytes, err := base58.Decode(base58String)
	if err != nil {
		return pubkey, errors.Errorf("failed to decode base58 encoded pubkey %s: %w", base58String, err)
	}

	return PubkeyFromBytes(bytes)
}

// Bytes returns a marshaled version of the Pubkey.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

// Base58 returns a base58 encoded version of the Pubkey.
func (p Pubkey) Base58() string {
	return base58.Encode(p[:])
}

// String returns a human-readable version of the Pubkey.
func (p Pubkey) String() string {
	return p.Base58()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Hash /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Hash is a content hash (block hash, bank hash, accounts hash).
type Hash [HashLength]byte

// HashFromBytes unmarshals a Hash from a sequence of bytes of exactly HashLength bytes.
func HashFromBytes(bytes []byte) (hash Hash, err error) {
	if len(bytes) != HashLength {
		return hash, errors.Wrapf(ErrInvalidKeyLength, "hash must be %d bytes long, got %d", HashLength, len(bytes))
	}
	copy(hash[:], bytes)

	return hash, nil
}

// HashFromBase58 creates a Hash from its base58 encoded string representation.
func HashFromBase58(base58String string) (hash Hash, err error) {
	bytes, err := base58.Decode(base58String)
	if err != nil {
		return hash, errors.Errorf("failed to decode base58 encoded hash %s: %w", base58String, err)
	}

	return HashFromBytes(bytes)
}

// Bytes returns a marshaled version of the Hash.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Base58 returns a base58 encoded version of the Hash.
func (h Hash) Base58() string {
	return base58.Encode(h[:])
}

// String returns a human-readable version of the Hash.
func (h Hash) String() string {
	return h.Base58()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
