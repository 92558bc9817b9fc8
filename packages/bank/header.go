package bank

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
	"lukechampine.com/uint128"
)

// Header contains the scalar fields of a Bank.
type Header struct {
	Epoch               Epoch
	BlockHeight         uint64
	Slot                Slot
	ParentSlot          Slot
	Hash                Hash
	ParentHash          Hash
	EpochAccountsHash   *Hash
	TickHeight          uint64
	MaxTickHeight       uint64
	SignatureCount      uint64
	TransactionCount    uint64
	Capitalization      uint64
	TicksPerSlot        uint64
	HashesPerTick       *uint64
	NsPerSlot           uint128.Uint128
	SlotsPerYear        float64
	GenesisCreationTime UnixTimestamp
	CollectorID         Pubkey
	CollectorFees       uint64
	CollectedRent       uint64
	IsDelta             bool
	AccountsDataSize    uint64
}

// Clone returns a deep copy of the Header.
func (h Header) Clone() Header {
	if h.EpochAccountsHash != nil {
		epochAccountsHash := *h.EpochAccountsHash
		h.EpochAccountsHash = &epochAccountsHash
	}
	if h.HashesPerTick != nil {
		hashesPerTick := *h.HashesPerTick
		h.HashesPerTick = &hashesPerTick
	}

	return h
}

// IsRoot returns true if the Header belongs to a bank without a meaningful parent.
func (h Header) IsRoot() bool {
	return h.Slot == 0
}

// Validate checks that the parent slot of a non-root bank does not lie after its slot.
func (h Header) Validate() error {
	if !h.IsRoot() && h.ParentSlot > h.Slot {
		return errors.Wrapf(ErrParentSlotAfterSlot, "parent slot %d > slot %d", h.ParentSlot, h.Slot)
	}

	return nil
}

// String returns a human-readable version of the Header.
func (h Header) String() string {
	return stringify.Struct("Header",
		stringify.StructField("Epoch", h.Epoch),
		stringify.StructField("BlockHeight", h.BlockHeight),
		stringify.StructField("Slot", h.Slot),
		stringify.StructField("ParentSlot", h.ParentSlot),
		stringify.StructField("Hash", h.Hash),
		stringify.StructField("ParentHash", h.ParentHash),
		stringify.StructField("TickHeight", h.TickHeight),
		stringify.StructField("SignatureCount", h.SignatureCount),
		stringify.StructField("TransactionCount", h.TransactionCount),
		stringify.StructField("Capitalization", h.Capitalization),
		stringify.StructField("NsPerSlot", h.NsPerSlot.String()),
		stringify.StructField("CollectorID", h.CollectorID),
		stringify.StructField("IsDelta", h.IsDelta),
	)
}
