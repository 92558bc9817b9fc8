package bank

import (
	"github.com/iotaledger/hive.go/stringify"
)

// Fields is the complete, lock-free state of a Bank. It is what a snapshot captures and what a Bank is rebuilt from.
type Fields struct {
	Header              Header
	Ancestors           Ancestors
	HardForks           HardForks
	BlockhashQueue      *BlockhashQueue
	FeeRateGovernor     FeeRateGovernor
	Inflation           Inflation
	RentCollector       RentCollector
	EpochSchedule       EpochSchedule
	Stakes              *Stakes
	EpochStakes         map[Epoch]*EpochStakes
	EpochRewardStatus   EpochRewardStatus
	SnapshotPersistence SnapshotPersistence
}

// Clone returns a deep copy of the Fields.
func (f *Fields) Clone() *Fields {
	cloned := &Fields{
		Header:              f.Header.Clone(),
		Ancestors:           f.Ancestors.Clone(),
		HardForks:           f.HardForks.Clone(),
		FeeRateGovernor:     f.FeeRateGovernor,
		Inflation:           f.Inflation,
		RentCollector:       f.RentCollector,
		EpochSchedule:       f.EpochSchedule,
		EpochStakes:         CloneEpochStakes(f.EpochStakes),
		SnapshotPersistence: f.SnapshotPersistence,
	}
	if f.BlockhashQueue != nil {
		cloned.BlockhashQueue = f.BlockhashQueue.Clone()
	}
	if f.Stakes != nil {
		cloned.Stakes = f.Stakes.Clone()
	}
	if f.EpochRewardStatus != nil {
		cloned.EpochRewardStatus = f.EpochRewardStatus.Clone()
	}

	return cloned
}

// String returns a human-readable version of the Fields.
func (f *Fields) String() string {
	return stringify.Struct("Fields",
		stringify.StructField("Header", f.Header),
		stringify.StructField("Ancestors", len(f.Ancestors)),
		stringify.StructField("HardForks", f.HardForks),
		stringify.StructField("BlockhashQueue", f.BlockhashQueue),
		stringify.StructField("Stakes", f.Stakes),
		stringify.StructField("EpochStakes", len(f.EpochStakes)),
		stringify.StructField("EpochRewardStatus", f.EpochRewardStatus),
		stringify.StructField("SnapshotPersistence", f.SnapshotPersistence),
	)
}
