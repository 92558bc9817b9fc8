package bank

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
	"go.uber.org/atomic"
)

// region Bank /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Bank is the live ledger state at a single slot. The blockhash queue, the stakes cache, the hard forks and the epoch
// reward status are guarded individually, all other components are fixed when the Bank is created.
type Bank struct {
	header              Header
	ancestors           Ancestors
	feeRateGovernor     FeeRateGovernor
	inflation           Inflation
	rentCollector       RentCollector
	epochSchedule       EpochSchedule
	epochStakes         map[Epoch]*EpochStakes
	snapshotPersistence SnapshotPersistence

	blockhashQueue    *Guarded[*BlockhashQueue]
	stakesCache       *Guarded[*StakesCache]
	hardForks         *Guarded[HardForks]
	epochRewardStatus *Guarded[EpochRewardStatus]

	frozen  *atomic.Bool
	options *options
}

// New creates a Bank from the given Fields and takes ownership of them. Delegations to unknown vote accounts are
// accepted and reported.
func New(fields *Fields, opts ...Option) (bank *Bank, err error) {
	if err = checkFields(fields); err != nil {
		return nil, err
	}

	bank = &Bank{
		header:              fields.Header,
		ancestors:           fields.Ancestors,
		feeRateGovernor:     fields.FeeRateGovernor,
		inflation:           fields.Inflation,
		rentCollector:       fields.RentCollector,
		epochSchedule:       fields.EpochSchedule,
		epochStakes:         fields.EpochStakes,
		snapshotPersistence: fields.SnapshotPersistence,
		blockhashQueue:      NewGuarded(fields.BlockhashQueue),
		stakesCache:         NewGuarded(NewStakesCache(fields.Stakes)),
		hardForks:           NewGuarded(fields.HardForks),
		epochRewardStatus:   NewGuarded(fields.EpochRewardStatus),
		frozen:              atomic.NewBool(false),
		options:             newOptions(opts...),
	}
	if bank.ancestors == nil {
		bank.ancestors = NewAncestors()
	}
	if bank.epochStakes == nil {
		bank.epochStakes = make(map[Epoch]*EpochStakes)
	}

	if dangling := fields.Stakes.DanglingDelegations(); len(dangling) > 0 {
		bank.options.log.Warnf("bank at slot %d holds %d delegations to unknown vote accounts", fields.Header.Slot, len(dangling))
	}

	return bank, nil
}

// checkFields makes sure that the Fields are complete and that they respect the invariants of a Bank.
func checkFields(fields *Fields) error {
	switch {
	case fields == nil:
		return errors.Wrap(ErrIncompleteFields, "fields are nil")
	case fields.BlockhashQueue == nil:
		return errors.Wrap(ErrIncompleteFields, "blockhash queue is missing")
	case fields.Stakes == nil:
		return errors.Wrap(ErrIncompleteFields, "stakes are missing")
	case fields.EpochRewardStatus == nil:
		return errors.Wrap(ErrIncompleteFields, "epoch reward status is missing")
	case fields.SnapshotPersistence == nil:
		return errors.Wrap(ErrIncompleteFields, "snapshot persistence is missing")
	}

	for epoch, epochStakes := range fields.EpochStakes {
		if epochStakes == nil || epochStakes.Stakes == nil {
			return errors.Wrapf(ErrIncompleteFields, "stakes of epoch %d are missing", epoch)
		}
	}

	if err := fields.Header.Validate(); err != nil {
		return err
	}

	return fields.BlockhashQueue.CheckCapacity()
}

// Freeze marks the Bank as complete. A frozen Bank rejects all further mutations. The write locks of the guarded
// components are taken in the order in which they are captured, so every mutation either completes before Freeze
// returns or fails.
func (b *Bank) Freeze() {
	b.blockhashQueue.mutex.Lock()
	defer b.blockhashQueue.mutex.Unlock()
	b.stakesCache.mutex.Lock()
	defer b.stakesCache.mutex.Unlock()
	b.hardForks.mutex.Lock()
	defer b.hardForks.mutex.Unlock()
	b.epochRewardStatus.mutex.Lock()
	defer b.epochRewardStatus.mutex.Unlock()

	b.frozen.Store(true)
}

// IsFrozen returns true if the Bank was frozen.
func (b *Bank) IsFrozen() bool {
	return b.frozen.Load()
}

// RegisterHardFork records a hard fork at the given slot.
func (b *Bank) RegisterHardFork(slot Slot) error {
	return b.hardForks.UpdateIf(b.checkNotFrozen("failed to register hard fork"), func(hardForks HardForks) HardForks {
		return hardForks.Register(slot)
	})
}

// RegisterBlockhash adds a blockhash to the BlockhashQueue using the current signature fee.
func (b *Bank) RegisterBlockhash(hash Hash, timestamp uint64) error {
	return b.blockhashQueue.UpdateIf(b.checkNotFrozen("failed to register blockhash"), func(queue *BlockhashQueue) *BlockhashQueue {
		queue.RegisterHash(hash, b.feeRateGovernor.LamportsPerSignature, timestamp)
		return queue
	})
}

// StoreVoteAccount adds or replaces a vote account in the stakes cache.
func (b *Bank) StoreVoteAccount(pubkey Pubkey, voteAccount VoteAccount) error {
	return b.stakesCache.UpdateIf(b.checkNotFrozen("failed to store vote account"), func(stakesCache *StakesCache) *StakesCache {
		stakesCache.StoreVoteAccount(pubkey, voteAccount)
		return stakesCache
	})
}

// Delegate adds or replaces the delegation of a stake account in the stakes cache.
func (b *Bank) Delegate(stakePubkey Pubkey, delegation Delegation) error {
	return b.stakesCache.UpdateIf(b.checkNotFrozen("failed to delegate stake"), func(stakesCache *StakesCache) *StakesCache {
		stakesCache.Delegate(stakePubkey, delegation)
		return stakesCache
	})
}

// SetEpochRewardStatus replaces the status of the reward distribution.
func (b *Bank) SetEpochRewardStatus(status EpochRewardStatus) error {
	if status == nil {
		return errors.New("epoch reward status must not be nil")
	}
	return b.epochRewardStatus.UpdateIf(b.checkNotFrozen("failed to set epoch reward status"), func(EpochRewardStatus) EpochRewardStatus {
		return status
	})
}

// checkNotFrozen returns a check that fails with ErrBankFrozen once the Bank is frozen. It is evaluated under the write
// lock of the mutated component.
func (b *Bank) checkNotFrozen(operation string) func() error {
	return func() error {
		if b.IsFrozen() {
			return errors.Wrap(ErrBankFrozen, operation)
		}

		return nil
	}
}

// Header returns the scalar fields of the Bank.
func (b *Bank) Header() Header {
	return b.header.Clone()
}

// Slot returns the slot of the Bank.
func (b *Bank) Slot() Slot {
	return b.header.Slot
}

// Ancestors returns the ancestor slots of the Bank.
func (b *Bank) Ancestors() Ancestors {
	return b.ancestors.Clone()
}

// FeeRateGovernor returns the fee parameters of the Bank.
func (b *Bank) FeeRateGovernor() FeeRateGovernor {
	return b.feeRateGovernor
}

// Inflation returns the inflation parameters of the Bank.
func (b *Bank) Inflation() Inflation {
	return b.inflation
}

// RentCollector returns the rent parameters of the Bank.
func (b *Bank) RentCollector() RentCollector {
	return b.rentCollector
}

// EpochSchedule returns the epoch schedule of the Bank.
func (b *Bank) EpochSchedule() EpochSchedule {
	return b.epochSchedule
}

// EpochStakes returns the retained stake distributions per epoch.
func (b *Bank) EpochStakes() map[Epoch]*EpochStakes {
	return CloneEpochStakes(b.epochStakes)
}

// SnapshotPersistence tells if the Bank was restored from a full or from an incremental snapshot.
func (b *Bank) SnapshotPersistence() SnapshotPersistence {
	return b.snapshotPersistence
}

// BlockhashQueue returns the guarded BlockhashQueue.
func (b *Bank) BlockhashQueue() *Guarded[*BlockhashQueue] {
	return b.blockhashQueue
}

// StakesCache returns the guarded StakesCache.
func (b *Bank) StakesCache() *Guarded[*StakesCache] {
	return b.stakesCache
}

// HardForks returns the guarded HardForks.
func (b *Bank) HardForks() *Guarded[HardForks] {
	return b.hardForks
}

// EpochRewardStatus returns the guarded EpochRewardStatus.
func (b *Bank) EpochRewardStatus() *Guarded[EpochRewardStatus] {
	return b.epochRewardStatus
}

// StakedNodes returns the stake per validator node.
func (b *Bank) StakedNodes() map[Pubkey]uint64 {
	return b.stakesCache.Read().StakedNodes()
}

// String returns a human-readable version of the Bank.
func (b *Bank) String() string {
	return stringify.Struct("Bank",
		stringify.StructField("Header", b.header),
		stringify.StructField("Frozen", b.IsFrozen()),
		stringify.StructField("Ancestors", len(b.ancestors)),
		stringify.StructField("HardForks", b.hardForks.Read()),
		stringify.StructField("BlockhashQueue", b.blockhashQueue.Read()),
		stringify.StructField("Stakes", b.stakesCache.Read().Stakes()),
		stringify.StructField("EpochStakes", len(b.epochStakes)),
		stringify.StructField("EpochRewardStatus", b.epochRewardStatus.Read()),
		stringify.StructField("SnapshotPersistence", b.snapshotPersistence),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
