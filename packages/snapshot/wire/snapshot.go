package wire

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// CurrentVersion is the newest version of the schema that this package implements.
const CurrentVersion uint32 = 1

// region Snapshot /////////////////////////////////////////////////////////////////////////////////////////////////////

// Snapshot is the top-level record of the wire format.
type Snapshot struct {
	Version uint32 // 1
	Bank    *Bank  // 2
}

// Marshal returns the wire representation of the Snapshot.
func (m *Snapshot) Marshal() []byte {
	return m.appendTo(nil)
}

// Unmarshal parses the Snapshot from its wire representation.
func (m *Snapshot) Unmarshal(data []byte) error {
	return m.unmarshal(data)
}

func (m *Snapshot) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, uint64(m.Version))
	if m.Bank != nil {
		buffer = appendMessage(buffer, 2, m.Bank)
	}

	return buffer
}

func (m *Snapshot) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeUint32(&m.Version)
		case f.is(2, protowire.BytesType):
			return consumeOptional(f, &m.Bank)
		}

		return f.skip()
	})
}

// PeekVersion returns the schema version of an encoded Snapshot without parsing the rest of the record.
func PeekVersion(data []byte) (version uint32, err error) {
	if err = walkFields(data, func(f field) (int, error) {
		if f.is(1, protowire.VarintType) {
			return f.consumeUint32(&version)
		}

		return f.skip()
	}); err != nil {
		return 0, errors.Wrap(err, "failed to read snapshot version")
	}

	return version, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Bank /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Bank is the record of the ledger state at a single slot.
type Bank struct {
	Epoch                          uint64                          // 1
	BlockHeight                    uint64                          // 2
	Slot                           uint64                          // 3
	Hash                           []byte                          // 4
	EpochAccountsHash              []byte                          // 5, optional
	SignatureCount                 uint64                          // 6
	Capitalization                 uint64                          // 7
	ParentSlot                     uint64                          // 8
	ParentHash                     []byte                          // 9
	TransactionCount               uint64                          // 10
	TickHeight                     uint64                          // 11
	MaxTickHeight                  uint64                          // 12
	HashesPerTick                  *uint64                         // 13, optional
	TicksPerSlot                   uint64                          // 14
	NsPerSlot                      uint64                          // 15
	SlotsPerYear                   float64                         // 16
	CollectorID                    []byte                          // 17
	CollectorFees                  uint64                          // 18
	CollectedRent                  uint64                          // 19
	AccountsDataSize               uint64                          // 20
	IsDelta                        bool                            // 21
	Ancestors                      []uint64                        // 22, packed
	GenesisCreationTime            int64                           // 23
	Inflation                      *Inflation                      // 24
	HardForks                      []HardFork                      // 25
	FeeRateGovernor                *FeeRateGovernor                // 26
	IncrementalSnapshotPersistence *IncrementalSnapshotPersistence // 27, optional
	RentCollector                  *RentCollector                  // 28
	EpochSchedule                  *EpochSchedule                  // 29
	BlockhashQueue                 *BlockhashQueue                 // 30
	Stakes                         *Stakes                         // 31
	EpochStakes                    []EpochStake                    // 32
	EpochRewards                   *EpochRewards                   // 33, optional
}

func (m *Bank) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.Epoch)
	buffer = appendVarint(buffer, 2, m.BlockHeight)
	buffer = appendVarint(buffer, 3, m.Slot)
	buffer = appendBytes(buffer, 4, m.Hash)
	buffer = appendOptionalBytes(buffer, 5, m.EpochAccountsHash)
	buffer = appendVarint(buffer, 6, m.SignatureCount)
	buffer = appendVarint(buffer, 7, m.Capitalization)
	buffer = appendVarint(buffer, 8, m.ParentSlot)
	buffer = appendBytes(buffer, 9, m.ParentHash)
	buffer = appendVarint(buffer, 10, m.TransactionCount)
	buffer = appendVarint(buffer, 11, m.TickHeight)
	buffer = appendVarint(buffer, 12, m.MaxTickHeight)
	buffer = appendOptionalVarint(buffer, 13, m.HashesPerTick)
	buffer = appendVarint(buffer, 14, m.TicksPerSlot)
	buffer = appendVarint(buffer, 15, m.NsPerSlot)
	buffer = appendDouble(buffer, 16, m.SlotsPerYear)
	buffer = appendBytes(buffer, 17, m.CollectorID)
	buffer = appendVarint(buffer, 18, m.CollectorFees)
	buffer = appendVarint(buffer, 19, m.CollectedRent)
	buffer = appendVarint(buffer, 20, m.AccountsDataSize)
	buffer = appendBool(buffer, 21, m.IsDelta)
	buffer = appendPackedVarints(buffer, 22, m.Ancestors)
	buffer = appendInt64(buffer, 23, m.GenesisCreationTime)
	if m.Inflation != nil {
		buffer = appendMessage(buffer, 24, m.Inflation)
	}
	buffer = appendRepeated(buffer, 25, m.HardForks)
	if m.FeeRateGovernor != nil {
		buffer = appendMessage(buffer, 26, m.FeeRateGovernor)
	}
	if m.IncrementalSnapshotPersistence != nil {
		buffer = appendMessage(buffer, 27, m.IncrementalSnapshotPersistence)
	}
	if m.RentCollector != nil {
		buffer = appendMessage(buffer, 28, m.RentCollector)
	}
	if m.EpochSchedule != nil {
		buffer = appendMessage(buffer, 29, m.EpochSchedule)
	}
	if m.BlockhashQueue != nil {
		buffer = appendMessage(buffer, 30, m.BlockhashQueue)
	}
	if m.Stakes != nil {
		buffer = appendMessage(buffer, 31, m.Stakes)
	}
	buffer = appendRepeated(buffer, 32, m.EpochStakes)
	if m.EpochRewards != nil {
		buffer = appendMessage(buffer, 33, m.EpochRewards)
	}

	return buffer
}

func (m *Bank) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.Epoch)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.BlockHeight)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.Slot)
		case f.is(4, protowire.BytesType):
			return f.consumeBytes(&m.Hash)
		case f.is(5, protowire.BytesType):
			return f.consumeBytes(&m.EpochAccountsHash)
		case f.is(6, protowire.VarintType):
			return f.consumeVarint(&m.SignatureCount)
		case f.is(7, protowire.VarintType):
			return f.consumeVarint(&m.Capitalization)
		case f.is(8, protowire.VarintType):
			return f.consumeVarint(&m.ParentSlot)
		case f.is(9, protowire.BytesType):
			return f.consumeBytes(&m.ParentHash)
		case f.is(10, protowire.VarintType):
			return f.consumeVarint(&m.TransactionCount)
		case f.is(11, protowire.VarintType):
			return f.consumeVarint(&m.TickHeight)
		case f.is(12, protowire.VarintType):
			return f.consumeVarint(&m.MaxTickHeight)
		case f.is(13, protowire.VarintType):
			return f.consumeOptionalVarint(&m.HashesPerTick)
		case f.is(14, protowire.VarintType):
			return f.consumeVarint(&m.TicksPerSlot)
		case f.is(15, protowire.VarintType):
			return f.consumeVarint(&m.NsPerSlot)
		case f.is(16, protowire.Fixed64Type):
			return f.consumeDouble(&m.SlotsPerYear)
		case f.is(17, protowire.BytesType):
			return f.consumeBytes(&m.CollectorID)
		case f.is(18, protowire.VarintType):
			return f.consumeVarint(&m.CollectorFees)
		case f.is(19, protowire.VarintType):
			return f.consumeVarint(&m.CollectedRent)
		case f.is(20, protowire.VarintType):
			return f.consumeVarint(&m.AccountsDataSize)
		case f.is(21, protowire.VarintType):
			return f.consumeBool(&m.IsDelta)
		case f.is(22, protowire.VarintType), f.is(22, protowire.BytesType):
			return f.consumeVarints(&m.Ancestors)
		case f.is(23, protowire.VarintType):
			return f.consumeInt64(&m.GenesisCreationTime)
		case f.is(24, protowire.BytesType):
			return consumeOptional(f, &m.Inflation)
		case f.is(25, protowire.BytesType):
			return consumeRepeated(f, &m.HardForks)
		case f.is(26, protowire.BytesType):
			return consumeOptional(f, &m.FeeRateGovernor)
		case f.is(27, protowire.BytesType):
			return consumeOptional(f, &m.IncrementalSnapshotPersistence)
		case f.is(28, protowire.BytesType):
			return consumeOptional(f, &m.RentCollector)
		case f.is(29, protowire.BytesType):
			return consumeOptional(f, &m.EpochSchedule)
		case f.is(30, protowire.BytesType):
			return consumeOptional(f, &m.BlockhashQueue)
		case f.is(31, protowire.BytesType):
			return consumeOptional(f, &m.Stakes)
		case f.is(32, protowire.BytesType):
			return consumeRepeated(f, &m.EpochStakes)
		case f.is(33, protowire.BytesType):
			return consumeOptional(f, &m.EpochRewards)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
