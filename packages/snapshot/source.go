package snapshot

import (
	"github.com/iotaledger/banksnapshot/packages/bank"
)

// Source is the read-only view of a Bank that a snapshot is captured from.
type Source interface {
	IsFrozen() bool
	Header() bank.Header
	Ancestors() bank.Ancestors
	FeeRateGovernor() bank.FeeRateGovernor
	Inflation() bank.Inflation
	RentCollector() bank.RentCollector
	EpochSchedule() bank.EpochSchedule
	EpochStakes() map[bank.Epoch]*bank.EpochStakes
	SnapshotPersistence() bank.SnapshotPersistence

	BlockhashQueue() *bank.Guarded[*bank.BlockhashQueue]
	StakesCache() *bank.Guarded[*bank.StakesCache]
	HardForks() *bank.Guarded[bank.HardForks]
	EpochRewardStatus() *bank.Guarded[bank.EpochRewardStatus]
}

// code contract (make sure the type implements all required methods).
var _ Source = &bank.Bank{}
