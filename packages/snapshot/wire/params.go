package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// region Account //////////////////////////////////////////////////////////////////////////////////////////////////////

// Account is the record of a single account.
type Account struct {
	Lamports   uint64 // 1
	Data       []byte // 2
	Owner      []byte // 3
	Executable bool   // 4
	RentEpoch  uint64 // 5
}

func (m *Account) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.Lamports)
	buffer = appendBytes(buffer, 2, m.Data)
	buffer = appendBytes(buffer, 3, m.Owner)
	buffer = appendBool(buffer, 4, m.Executable)

	return appendVarint(buffer, 5, m.RentEpoch)
}

func (m *Account) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.Lamports)
		case f.is(2, protowire.BytesType):
			return f.consumeBytes(&m.Data)
		case f.is(3, protowire.BytesType):
			return f.consumeBytes(&m.Owner)
		case f.is(4, protowire.VarintType):
			return f.consumeBool(&m.Executable)
		case f.is(5, protowire.VarintType):
			return f.consumeVarint(&m.RentEpoch)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region FeeCalculator ////////////////////////////////////////////////////////////////////////////////////////////////

// FeeCalculator is the record of the fee parameters of a blockhash.
type FeeCalculator struct {
	LamportsPerSignature uint64 // 1
}

func (m *FeeCalculator) appendTo(buffer []byte) []byte {
	return appendVarint(buffer, 1, m.LamportsPerSignature)
}

func (m *FeeCalculator) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		if f.is(1, protowire.VarintType) {
			return f.consumeVarint(&m.LamportsPerSignature)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region FeeRateGovernor //////////////////////////////////////////////////////////////////////////////////////////////

// FeeRateGovernor is the record of the dynamic fee parameters.
type FeeRateGovernor struct {
	LamportsPerSignature       uint64 // 1
	TargetLamportsPerSignature uint64 // 2
	TargetSignaturesPerSlot    uint64 // 3
	MinLamportsPerSignature    uint64 // 4
	MaxLamportsPerSignature    uint64 // 5
	BurnPercent                uint32 // 6
}

func (m *FeeRateGovernor) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.LamportsPerSignature)
	buffer = appendVarint(buffer, 2, m.TargetLamportsPerSignature)
	buffer = appendVarint(buffer, 3, m.TargetSignaturesPerSlot)
	buffer = appendVarint(buffer, 4, m.MinLamportsPerSignature)
	buffer = appendVarint(buffer, 5, m.MaxLamportsPerSignature)

	return appendVarint(buffer, 6, uint64(m.BurnPercent))
}

func (m *FeeRateGovernor) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.LamportsPerSignature)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.TargetLamportsPerSignature)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.TargetSignaturesPerSlot)
		case f.is(4, protowire.VarintType):
			return f.consumeVarint(&m.MinLamportsPerSignature)
		case f.is(5, protowire.VarintType):
			return f.consumeVarint(&m.MaxLamportsPerSignature)
		case f.is(6, protowire.VarintType):
			return f.consumeUint32(&m.BurnPercent)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Inflation ////////////////////////////////////////////////////////////////////////////////////////////////////

// Inflation is the record of the inflation curve.
type Inflation struct {
	Initial        float64 // 1
	Terminal       float64 // 2
	Taper          float64 // 3
	Foundation     float64 // 4
	FoundationTerm float64 // 5
}

func (m *Inflation) appendTo(buffer []byte) []byte {
	buffer = appendDouble(buffer, 1, m.Initial)
	buffer = appendDouble(buffer, 2, m.Terminal)
	buffer = appendDouble(buffer, 3, m.Taper)
	buffer = appendDouble(buffer, 4, m.Foundation)

	return appendDouble(buffer, 5, m.FoundationTerm)
}

func (m *Inflation) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.Fixed64Type):
			return f.consumeDouble(&m.Initial)
		case f.is(2, protowire.Fixed64Type):
			return f.consumeDouble(&m.Terminal)
		case f.is(3, protowire.Fixed64Type):
			return f.consumeDouble(&m.Taper)
		case f.is(4, protowire.Fixed64Type):
			return f.consumeDouble(&m.Foundation)
		case f.is(5, protowire.Fixed64Type):
			return f.consumeDouble(&m.FoundationTerm)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Rent /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Rent is the record of the rent parameters.
type Rent struct {
	LamportsPerByteYear uint64  // 1
	ExemptionThreshold  float64 // 2
	BurnPercent         uint32  // 3
}

func (m *Rent) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.LamportsPerByteYear)
	buffer = appendDouble(buffer, 2, m.ExemptionThreshold)

	return appendVarint(buffer, 3, uint64(m.BurnPercent))
}

func (m *Rent) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.LamportsPerByteYear)
		case f.is(2, protowire.Fixed64Type):
			return f.consumeDouble(&m.ExemptionThreshold)
		case f.is(3, protowire.VarintType):
			return f.consumeUint32(&m.BurnPercent)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region RentCollector ////////////////////////////////////////////////////////////////////////////////////////////////

// RentCollector is the record of the rent parameters and the epoch schedule they were captured with.
type RentCollector struct {
	Epoch         uint64         // 1
	EpochSchedule *EpochSchedule // 2
	SlotsPerYear  float64        // 3
	Rent          *Rent          // 4
}

func (m *RentCollector) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.Epoch)
	if m.EpochSchedule != nil {
		buffer = appendMessage(buffer, 2, m.EpochSchedule)
	}
	buffer = appendDouble(buffer, 3, m.SlotsPerYear)
	if m.Rent != nil {
		buffer = appendMessage(buffer, 4, m.Rent)
	}

	return buffer
}

func (m *RentCollector) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.Epoch)
		case f.is(2, protowire.BytesType):
			return consumeOptional(f, &m.EpochSchedule)
		case f.is(3, protowire.Fixed64Type):
			return f.consumeDouble(&m.SlotsPerYear)
		case f.is(4, protowire.BytesType):
			return consumeOptional(f, &m.Rent)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EpochSchedule ////////////////////////////////////////////////////////////////////////////////////////////////

// EpochSchedule is the record of the epoch length and the warm-up period.
type EpochSchedule struct {
	SlotsPerEpoch            uint64 // 1
	LeaderScheduleSlotOffset uint64 // 2
	Warmup                   bool   // 3
	FirstNormalEpoch         uint64 // 4
	FirstNormalSlot          uint64 // 5
}

func (m *EpochSchedule) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.SlotsPerEpoch)
	buffer = appendVarint(buffer, 2, m.LeaderScheduleSlotOffset)
	buffer = appendBool(buffer, 3, m.Warmup)
	buffer = appendVarint(buffer, 4, m.FirstNormalEpoch)

	return appendVarint(buffer, 5, m.FirstNormalSlot)
}

func (m *EpochSchedule) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.SlotsPerEpoch)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.LeaderScheduleSlotOffset)
		case f.is(3, protowire.VarintType):
			return f.consumeBool(&m.Warmup)
		case f.is(4, protowire.VarintType):
			return f.consumeVarint(&m.FirstNormalEpoch)
		case f.is(5, protowire.VarintType):
			return f.consumeVarint(&m.FirstNormalSlot)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region HardFork /////////////////////////////////////////////////////////////////////////////////////////////////////

// HardFork is the record of a hard fork.
type HardFork struct {
	Slot  uint64 // 1
	Count uint64 // 2
}

func (m *HardFork) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.Slot)

	return appendVarint(buffer, 2, m.Count)
}

func (m *HardFork) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.Slot)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.Count)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region IncrementalSnapshotPersistence ///////////////////////////////////////////////////////////////////////////////

// IncrementalSnapshotPersistence is the record of the full snapshot that an incremental snapshot is layered on.
type IncrementalSnapshotPersistence struct {
	FullSlot                  uint64 // 1
	FullHash                  []byte // 2
	FullCapitalization        uint64 // 3
	IncrementalHash           []byte // 4
	IncrementalCapitalization uint64 // 5
}

func (m *IncrementalSnapshotPersistence) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.FullSlot)
	buffer = appendBytes(buffer, 2, m.FullHash)
	buffer = appendVarint(buffer, 3, m.FullCapitalization)
	buffer = appendBytes(buffer, 4, m.IncrementalHash)

	return appendVarint(buffer, 5, m.IncrementalCapitalization)
}

func (m *IncrementalSnapshotPersistence) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.FullSlot)
		case f.is(2, protowire.BytesType):
			return f.consumeBytes(&m.FullHash)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.FullCapitalization)
		case f.is(4, protowire.BytesType):
			return f.consumeBytes(&m.IncrementalHash)
		case f.is(5, protowire.VarintType):
			return f.consumeVarint(&m.IncrementalCapitalization)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BlockhashQueue ///////////////////////////////////////////////////////////////////////////////////////////////

// BlockhashQueue is the record of the recent blockhashes.
type BlockhashQueue struct {
	LastHashIndex uint64 // 1
	LastHash      []byte // 2, optional
	MaxAge        uint64 // 3
	Ages          []Age  // 4
}

func (m *BlockhashQueue) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.LastHashIndex)
	buffer = appendOptionalBytes(buffer, 2, m.LastHash)
	buffer = appendVarint(buffer, 3, m.MaxAge)

	return appendRepeated(buffer, 4, m.Ages)
}

func (m *BlockhashQueue) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.LastHashIndex)
		case f.is(2, protowire.BytesType):
			return f.consumeBytes(&m.LastHash)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.MaxAge)
		case f.is(4, protowire.BytesType):
			return consumeRepeated(f, &m.Ages)
		}

		return f.skip()
	})
}

// Age is the record of a blockhash and its metadata.
type Age struct {
	Hash          []byte         // 1
	HashIndex     uint64         // 2
	Timestamp     uint64         // 3
	FeeCalculator *FeeCalculator // 4, optional
}

func (m *Age) appendTo(buffer []byte) []byte {
	buffer = appendBytes(buffer, 1, m.Hash)
	buffer = appendVarint(buffer, 2, m.HashIndex)
	buffer = appendVarint(buffer, 3, m.Timestamp)
	if m.FeeCalculator != nil {
		buffer = appendMessage(buffer, 4, m.FeeCalculator)
	}

	return buffer
}

func (m *Age) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return f.consumeBytes(&m.Hash)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.HashIndex)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.Timestamp)
		case f.is(4, protowire.BytesType):
			return consumeOptional(f, &m.FeeCalculator)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
