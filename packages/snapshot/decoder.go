package snapshot

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/banksnapshot/packages/app/metrics"
	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/snapshot/wire"
)

// region Decoder //////////////////////////////////////////////////////////////////////////////////////////////////////

// Decoder turns encoded snapshots back into live Banks.
type Decoder struct {
	options *options
}

// NewDecoder returns a new Decoder that is configured by the given options.
func NewDecoder(opts ...Option) (decoder *Decoder) {
	decoder = &Decoder{
		options: newOptions(opts...),
	}
	if decoder.options.constructor == nil {
		log := decoder.options.log
		decoder.options.constructor = func(fields *bank.Fields) (*bank.Bank, error) {
			return bank.New(fields, bank.WithLogger(log))
		}
	}

	return decoder
}

// Decode validates the given snapshot and reconstructs the Bank that it was captured from.
func (d *Decoder) Decode(encoded []byte) (decoded *bank.Bank, err error) {
	var slot bank.Slot
	defer func() {
		d.options.metrics.Observe(metrics.OperationDecode, len(encoded), slot, err)
	}()

	fields, err := d.decodeFields(encoded)
	if err != nil {
		return nil, err
	}
	slot = fields.Header.Slot

	if decoded, err = d.options.constructor(fields); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to construct bank at slot %d", slot), ErrInvariantViolation)
	}

	return decoded, nil
}

// DecodeFields validates the given snapshot and returns the Fields of the Bank that it was captured from.
func (d *Decoder) DecodeFields(encoded []byte) (fields *bank.Fields, err error) {
	return d.decodeFields(encoded)
}

func (d *Decoder) decodeFields(encoded []byte) (fields *bank.Fields, err error) {
	version, err := wire.PeekVersion(encoded)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse snapshot"), ErrMalformedSnapshot)
	}
	switch {
	case version == 0:
		return nil, missing("version")
	case version > wire.CurrentVersion:
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d is newer than %d", version, wire.CurrentVersion)
	}

	snapshot := new(wire.Snapshot)
	if err = snapshot.Unmarshal(encoded); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse snapshot"), ErrMalformedSnapshot)
	}
	if snapshot.Bank == nil {
		return nil, missing("bank")
	}

	if fields, err = bankFromWire(snapshot.Bank); err != nil {
		return nil, err
	}

	if dangling := fields.Stakes.DanglingDelegations(); len(dangling) > 0 {
		d.options.log.Debugw("decoded delegations to unknown vote accounts", "slot", fields.Header.Slot, "count", len(dangling))
	}
	d.options.log.Debugw("decoded snapshot", "slot", fields.Header.Slot, "bytes", len(encoded))

	return fields, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
