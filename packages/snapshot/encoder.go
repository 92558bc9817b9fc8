package snapshot

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/banksnapshot/packages/app/metrics"
	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/snapshot/wire"
)

// region Encoder //////////////////////////////////////////////////////////////////////////////////////////////////////

// Encoder turns the state of frozen Banks into encoded snapshots.
type Encoder struct {
	options *options
}

// NewEncoder returns a new Encoder that is configured by the given options.
func NewEncoder(opts ...Option) (encoder *Encoder) {
	return &Encoder{
		options: newOptions(opts...),
	}
}

// Encode captures the state of the given frozen Bank and returns its encoded snapshot.
func (e *Encoder) Encode(source Source) (encoded []byte, err error) {
	fields, err := e.Capture(source)
	if err != nil {
		e.options.metrics.Observe(metrics.OperationEncode, 0, 0, err)

		return nil, err
	}

	return e.EncodeFields(fields)
}

// Capture takes a consistent copy of the state of the given frozen Bank. The guarded parts of the Bank are read one
// at a time and always in the same order: blockhash queue, stakes cache, hard forks and epoch reward status.
func (e *Encoder) Capture(source Source) (fields *bank.Fields, err error) {
	if !source.IsFrozen() {
		return nil, errors.Wrapf(ErrBankNotFrozen, "failed to capture bank at slot %d", source.Header().Slot)
	}

	fields = &bank.Fields{
		Header:              source.Header(),
		Ancestors:           source.Ancestors(),
		FeeRateGovernor:     source.FeeRateGovernor(),
		Inflation:           source.Inflation(),
		RentCollector:       source.RentCollector(),
		EpochSchedule:       source.EpochSchedule(),
		EpochStakes:         source.EpochStakes(),
		SnapshotPersistence: source.SnapshotPersistence(),
	}
	fields.BlockhashQueue = source.BlockhashQueue().Read()
	fields.Stakes = source.StakesCache().Read().Stakes()
	fields.HardForks = source.HardForks().Read()
	fields.EpochRewardStatus = source.EpochRewardStatus().Read()

	return fields, nil
}

// EncodeFields encodes the given Fields into a snapshot of the current schema version.
func (e *Encoder) EncodeFields(fields *bank.Fields) (encoded []byte, err error) {
	defer func() {
		e.options.metrics.Observe(metrics.OperationEncode, len(encoded), fields.Header.Slot, err)
	}()

	record, err := bankToWire(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode bank at slot %d", fields.Header.Slot)
	}

	encoded = (&wire.Snapshot{
		Version: wire.CurrentVersion,
		Bank:    record,
	}).Marshal()

	e.options.log.Debugw("encoded snapshot", "slot", fields.Header.Slot, "bytes", len(encoded))

	return encoded, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
