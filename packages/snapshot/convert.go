package snapshot

import (
	"math"

	"github.com/cockroachdb/errors"
	"lukechampine.com/uint128"

	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/snapshot/wire"
)

// region Bank /////////////////////////////////////////////////////////////////////////////////////////////////////////

// bankToWire converts the captured Fields of a Bank into their record.
func bankToWire(fields *bank.Fields) (record *wire.Bank, err error) {
	header := fields.Header
	if header.NsPerSlot.Hi != 0 {
		return nil, errors.Wrapf(ErrRangeOverflow, "ns per slot %s exceeds 64 bits", header.NsPerSlot)
	}

	record = &wire.Bank{
		Epoch:               header.Epoch,
		BlockHeight:         header.BlockHeight,
		Slot:                header.Slot,
		Hash:                header.Hash.Bytes(),
		SignatureCount:      header.SignatureCount,
		Capitalization:      header.Capitalization,
		ParentSlot:          header.ParentSlot,
		ParentHash:          header.ParentHash.Bytes(),
		TransactionCount:    header.TransactionCount,
		TickHeight:          header.TickHeight,
		MaxTickHeight:       header.MaxTickHeight,
		TicksPerSlot:        header.TicksPerSlot,
		NsPerSlot:           header.NsPerSlot.Lo,
		SlotsPerYear:        header.SlotsPerYear,
		CollectorID:         header.CollectorID.Bytes(),
		CollectorFees:       header.CollectorFees,
		CollectedRent:       header.CollectedRent,
		AccountsDataSize:    header.AccountsDataSize,
		IsDelta:             header.IsDelta,
		Ancestors:           fields.Ancestors.Slots(),
		GenesisCreationTime: header.GenesisCreationTime,
		Inflation:           inflationToWire(fields.Inflation),
		HardForks:           hardForksToWire(fields.HardForks),
		FeeRateGovernor:     feeRateGovernorToWire(fields.FeeRateGovernor),
		RentCollector:       rentCollectorToWire(fields.RentCollector),
		EpochSchedule:       epochScheduleToWire(fields.EpochSchedule),
		BlockhashQueue:      blockhashQueueToWire(fields.BlockhashQueue),
		Stakes:              stakesToWire(fields.Stakes),
		EpochStakes:         epochStakesToWire(fields.EpochStakes),
	}
	if header.EpochAccountsHash != nil {
		record.EpochAccountsHash = header.EpochAccountsHash.Bytes()
	}
	if header.HashesPerTick != nil {
		hashesPerTick := *header.HashesPerTick
		record.HashesPerTick = &hashesPerTick
	}
	if record.IncrementalSnapshotPersistence, err = persistenceToWire(fields.SnapshotPersistence); err != nil {
		return nil, err
	}
	if record.EpochRewards, err = epochRewardsToWire(fields.EpochRewardStatus); err != nil {
		return nil, err
	}

	return record, nil
}

// bankFromWire converts a record into the Fields of a Bank.
func bankFromWire(record *wire.Bank) (fields *bank.Fields, err error) {
	fields = new(bank.Fields)
	if fields.Header, err = headerFromWire(record); err != nil {
		return nil, err
	}
	if fields.Ancestors, err = ancestorsFromWire(record.Ancestors); err != nil {
		return nil, err
	}
	fields.HardForks = hardForksFromWire(record.HardForks)

	if record.Inflation == nil {
		return nil, missing("bank.inflation")
	}
	fields.Inflation = inflationFromWire(record.Inflation)

	if record.FeeRateGovernor == nil {
		return nil, missing("bank.fee_rate_governor")
	}
	if fields.FeeRateGovernor, err = feeRateGovernorFromWire(record.FeeRateGovernor); err != nil {
		return nil, err
	}

	if record.RentCollector == nil {
		return nil, missing("bank.rent_collector")
	}
	if fields.RentCollector, err = rentCollectorFromWire(record.RentCollector); err != nil {
		return nil, err
	}

	if record.EpochSchedule == nil {
		return nil, missing("bank.epoch_schedule")
	}
	fields.EpochSchedule = epochScheduleFromWire(record.EpochSchedule)

	if record.BlockhashQueue == nil {
		return nil, missing("bank.blockhash_queue")
	}
	if fields.BlockhashQueue, err = blockhashQueueFromWire(record.BlockhashQueue); err != nil {
		return nil, err
	}

	if record.Stakes == nil {
		return nil, missing("bank.stakes")
	}
	if fields.Stakes, err = stakesFromWire("bank.stakes", record.Stakes); err != nil {
		return nil, err
	}

	if fields.EpochStakes, err = epochStakesFromWire(record.EpochStakes); err != nil {
		return nil, err
	}
	if fields.EpochRewardStatus, err = epochRewardsFromWire(record.EpochRewards); err != nil {
		return nil, err
	}
	if fields.SnapshotPersistence, err = persistenceFromWire(record.IncrementalSnapshotPersistence); err != nil {
		return nil, err
	}

	return fields, nil
}

// headerFromWire converts the scalar fields of a record into a Header.
func headerFromWire(record *wire.Bank) (header bank.Header, err error) {
	header = bank.Header{
		Epoch:               record.Epoch,
		BlockHeight:         record.BlockHeight,
		Slot:                record.Slot,
		ParentSlot:          record.ParentSlot,
		TickHeight:          record.TickHeight,
		MaxTickHeight:       record.MaxTickHeight,
		SignatureCount:      record.SignatureCount,
		TransactionCount:    record.TransactionCount,
		Capitalization:      record.Capitalization,
		TicksPerSlot:        record.TicksPerSlot,
		NsPerSlot:           uint128.From64(record.NsPerSlot),
		SlotsPerYear:        record.SlotsPerYear,
		GenesisCreationTime: record.GenesisCreationTime,
		CollectorFees:       record.CollectorFees,
		CollectedRent:       record.CollectedRent,
		IsDelta:             record.IsDelta,
		AccountsDataSize:    record.AccountsDataSize,
	}
	if header.Hash, err = hashFromWire("bank.hash", record.Hash); err != nil {
		return header, err
	}
	if header.ParentHash, err = hashFromWire("bank.parent_hash", record.ParentHash); err != nil {
		return header, err
	}
	if header.CollectorID, err = pubkeyFromWire("bank.collector_id", record.CollectorID); err != nil {
		return header, err
	}
	if record.EpochAccountsHash != nil {
		epochAccountsHash, hashErr := hashFromWire("bank.epoch_accounts_hash", record.EpochAccountsHash)
		if hashErr != nil {
			return header, hashErr
		}
		header.EpochAccountsHash = &epochAccountsHash
	}
	if record.HashesPerTick != nil {
		hashesPerTick := *record.HashesPerTick
		header.HashesPerTick = &hashesPerTick
	}

	if err = header.Validate(); err != nil {
		return header, errors.Mark(errors.Wrap(err, "invalid header"), ErrInvariantViolation)
	}

	return header, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region keys /////////////////////////////////////////////////////////////////////////////////////////////////////////

func pubkeyFromWire(fieldName string, bytes []byte) (pubkey bank.Pubkey, err error) {
	if pubkey, err = bank.PubkeyFromBytes(bytes); err != nil {
		return pubkey, errors.Mark(errors.Wrap(err, fieldName), ErrMalformedSnapshot)
	}

	return pubkey, nil
}

func hashFromWire(fieldName string, bytes []byte) (hash bank.Hash, err error) {
	if hash, err = bank.HashFromBytes(bytes); err != nil {
		return hash, errors.Mark(errors.Wrap(err, fieldName), ErrMalformedSnapshot)
	}

	return hash, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Ancestors and HardForks //////////////////////////////////////////////////////////////////////////////////////

func ancestorsFromWire(slots []uint64) (ancestors bank.Ancestors, err error) {
	ancestors = make(bank.Ancestors, len(slots))
	for _, slot := range slots {
		if ancestors.Contains(slot) {
			return nil, malformed("bank.ancestors contains slot %d twice", slot)
		}
		ancestors[slot] = struct{}{}
	}

	return ancestors, nil
}

func hardForksToWire(hardForks bank.HardForks) (records []wire.HardFork) {
	records = make([]wire.HardFork, len(hardForks))
	for i, hardFork := range hardForks {
		records[i] = wire.HardFork{Slot: hardFork.Slot, Count: hardFork.Count}
	}

	return records
}

func hardForksFromWire(records []wire.HardFork) (hardForks bank.HardForks) {
	if len(records) == 0 {
		return nil
	}

	hardForks = make(bank.HardForks, len(records))
	for i, record := range records {
		hardForks[i] = bank.HardFork{Slot: record.Slot, Count: record.Count}
	}

	return hardForks
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region parameters ///////////////////////////////////////////////////////////////////////////////////////////////////

func inflationToWire(inflation bank.Inflation) *wire.Inflation {
	return &wire.Inflation{
		Initial:        inflation.Initial,
		Terminal:       inflation.Terminal,
		Taper:          inflation.Taper,
		Foundation:     inflation.Foundation,
		FoundationTerm: inflation.FoundationTerm,
	}
}

func inflationFromWire(record *wire.Inflation) bank.Inflation {
	return bank.Inflation{
		Initial:        record.Initial,
		Terminal:       record.Terminal,
		Taper:          record.Taper,
		Foundation:     record.Foundation,
		FoundationTerm: record.FoundationTerm,
	}
}

func feeRateGovernorToWire(feeRateGovernor bank.FeeRateGovernor) *wire.FeeRateGovernor {
	return &wire.FeeRateGovernor{
		LamportsPerSignature:       feeRateGovernor.LamportsPerSignature,
		TargetLamportsPerSignature: feeRateGovernor.TargetLamportsPerSignature,
		TargetSignaturesPerSlot:    feeRateGovernor.TargetSignaturesPerSlot,
		MinLamportsPerSignature:    feeRateGovernor.MinLamportsPerSignature,
		MaxLamportsPerSignature:    feeRateGovernor.MaxLamportsPerSignature,
		BurnPercent:                uint32(feeRateGovernor.BurnPercent),
	}
}

func feeRateGovernorFromWire(record *wire.FeeRateGovernor) (feeRateGovernor bank.FeeRateGovernor, err error) {
	if record.BurnPercent > bank.MaxBurnPercent {
		return feeRateGovernor, malformed("bank.fee_rate_governor.burn_percent %d exceeds %d", record.BurnPercent, bank.MaxBurnPercent)
	}

	return bank.FeeRateGovernor{
		LamportsPerSignature:       record.LamportsPerSignature,
		TargetLamportsPerSignature: record.TargetLamportsPerSignature,
		TargetSignaturesPerSlot:    record.TargetSignaturesPerSlot,
		MinLamportsPerSignature:    record.MinLamportsPerSignature,
		MaxLamportsPerSignature:    record.MaxLamportsPerSignature,
		BurnPercent:                uint8(record.BurnPercent),
	}, nil
}

func rentCollectorToWire(rentCollector bank.RentCollector) *wire.RentCollector {
	return &wire.RentCollector{
		Epoch:         rentCollector.Epoch,
		EpochSchedule: epochScheduleToWire(rentCollector.EpochSchedule),
		SlotsPerYear:  rentCollector.SlotsPerYear,
		Rent: &wire.Rent{
			LamportsPerByteYear: rentCollector.Rent.LamportsPerByteYear,
			ExemptionThreshold:  rentCollector.Rent.ExemptionThreshold,
			BurnPercent:         uint32(rentCollector.Rent.BurnPercent),
		},
	}
}

func rentCollectorFromWire(record *wire.RentCollector) (rentCollector bank.RentCollector, err error) {
	if record.EpochSchedule == nil {
		return rentCollector, missing("bank.rent_collector.epoch_schedule")
	}
	if record.Rent == nil {
		return rentCollector, missing("bank.rent_collector.rent")
	}
	if record.Rent.BurnPercent > bank.MaxBurnPercent {
		return rentCollector, malformed("bank.rent_collector.rent.burn_percent %d exceeds %d", record.Rent.BurnPercent, bank.MaxBurnPercent)
	}

	return bank.RentCollector{
		Epoch:         record.Epoch,
		EpochSchedule: epochScheduleFromWire(record.EpochSchedule),
		SlotsPerYear:  record.SlotsPerYear,
		Rent: bank.Rent{
			LamportsPerByteYear: record.Rent.LamportsPerByteYear,
			ExemptionThreshold:  record.Rent.ExemptionThreshold,
			BurnPercent:         uint8(record.Rent.BurnPercent),
		},
	}, nil
}

func epochScheduleToWire(epochSchedule bank.EpochSchedule) *wire.EpochSchedule {
	return &wire.EpochSchedule{
		SlotsPerEpoch:            epochSchedule.SlotsPerEpoch,
		LeaderScheduleSlotOffset: epochSchedule.LeaderScheduleSlotOffset,
		Warmup:                   epochSchedule.Warmup,
		FirstNormalEpoch:         epochSchedule.FirstNormalEpoch,
		FirstNormalSlot:          epochSchedule.FirstNormalSlot,
	}
}

func epochScheduleFromWire(record *wire.EpochSchedule) bank.EpochSchedule {
	return bank.EpochSchedule{
		SlotsPerEpoch:            record.SlotsPerEpoch,
		LeaderScheduleSlotOffset: record.LeaderScheduleSlotOffset,
		Warmup:                   record.Warmup,
		FirstNormalEpoch:         record.FirstNormalEpoch,
		FirstNormalSlot:          record.FirstNormalSlot,
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SnapshotPersistence //////////////////////////////////////////////////////////////////////////////////////////

func persistenceToWire(persistence bank.SnapshotPersistence) (*wire.IncrementalSnapshotPersistence, error) {
	switch typedPersistence := persistence.(type) {
	case nil, bank.FullSnapshot:
		return nil, nil
	case bank.IncrementalSnapshot:
		return &wire.IncrementalSnapshotPersistence{
			FullSlot:                  typedPersistence.FullSlot,
			FullHash:                  typedPersistence.FullHash.Bytes(),
			FullCapitalization:        typedPersistence.FullCapitalization,
			IncrementalHash:           typedPersistence.IncrementalHash.Bytes(),
			IncrementalCapitalization: typedPersistence.IncrementalCapitalization,
		}, nil
	default:
		return nil, errors.Errorf("unknown snapshot persistence %T", persistence)
	}
}

func persistenceFromWire(record *wire.IncrementalSnapshotPersistence) (persistence bank.SnapshotPersistence, err error) {
	if record == nil {
		return bank.FullSnapshot{}, nil
	}

	incremental := bank.IncrementalSnapshot{
		FullSlot:                  record.FullSlot,
		FullCapitalization:        record.FullCapitalization,
		IncrementalCapitalization: record.IncrementalCapitalization,
	}
	if incremental.FullHash, err = hashFromWire("bank.incremental_snapshot_persistence.full_hash", record.FullHash); err != nil {
		return nil, err
	}
	if incremental.IncrementalHash, err = hashFromWire("bank.incremental_snapshot_persistence.incremental_hash", record.IncrementalHash); err != nil {
		return nil, err
	}

	return incremental, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Account //////////////////////////////////////////////////////////////////////////////////////////////////////

func accountToWire(account bank.Account) *wire.Account {
	return &wire.Account{
		Lamports:   account.Lamports,
		Data:       account.Data,
		Owner:      account.Owner.Bytes(),
		Executable: account.Executable,
		RentEpoch:  account.RentEpoch,
	}
}

func accountFromWire(fieldName string, record *wire.Account) (account bank.Account, err error) {
	if record == nil {
		return account, missing(fieldName)
	}
	if account.Owner, err = pubkeyFromWire(fieldName+".owner", record.Owner); err != nil {
		return account, err
	}
	account.Lamports = record.Lamports
	account.Executable = record.Executable
	account.RentEpoch = record.RentEpoch
	if len(record.Data) > 0 {
		account.Data = append(make([]byte, 0, len(record.Data)), record.Data...)
	}

	return account, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BlockhashQueue ///////////////////////////////////////////////////////////////////////////////////////////////

func blockhashQueueToWire(queue *bank.BlockhashQueue) *wire.BlockhashQueue {
	record := &wire.BlockhashQueue{
		LastHashIndex: queue.LastHashIndex,
		MaxAge:        queue.MaxAge,
		Ages:          make([]wire.Age, 0, len(queue.Ages)),
	}
	if queue.LastHash != nil {
		record.LastHash = queue.LastHash.Bytes()
	}

	hashes := make([]bank.Hash, 0, len(queue.Ages))
	for hash := range queue.Ages {
		hashes = append(hashes, hash)
	}
	bank.SortHashes(hashes)

	for _, hash := range hashes {
		age := queue.Ages[hash]
		ageRecord := wire.Age{
			Hash:      hash.Bytes(),
			HashIndex: age.HashIndex,
			Timestamp: age.Timestamp,
		}
		if age.FeeCalculator != nil {
			ageRecord.FeeCalculator = &wire.FeeCalculator{LamportsPerSignature: age.FeeCalculator.LamportsPerSignature}
		}
		record.Ages = append(record.Ages, ageRecord)
	}

	return record
}

func blockhashQueueFromWire(record *wire.BlockhashQueue) (queue *bank.BlockhashQueue, err error) {
	queue = bank.NewBlockhashQueue(record.MaxAge)
	queue.LastHashIndex = record.LastHashIndex
	if record.LastHash != nil {
		lastHash, hashErr := hashFromWire("bank.blockhash_queue.last_hash", record.LastHash)
		if hashErr != nil {
			return nil, hashErr
		}
		queue.LastHash = &lastHash
	}

	for i, ageRecord := range record.Ages {
		hash, hashErr := hashFromWire("bank.blockhash_queue.ages.hash", ageRecord.Hash)
		if hashErr != nil {
			return nil, hashErr
		}
		if _, exists := queue.Ages[hash]; exists {
			return nil, malformed("bank.blockhash_queue.ages contains hash %s twice (entry %d)", hash, i)
		}

		age := bank.HashAge{
			HashIndex: ageRecord.HashIndex,
			Timestamp: ageRecord.Timestamp,
		}
		if ageRecord.FeeCalculator != nil {
			age.FeeCalculator = &bank.FeeCalculator{LamportsPerSignature: ageRecord.FeeCalculator.LamportsPerSignature}
		}
		queue.Ages[hash] = age
	}

	if err = queue.CheckCapacity(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "bank.blockhash_queue"), ErrInvariantViolation)
	}

	return queue, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region narrowing ////////////////////////////////////////////////////////////////////////////////////////////////////

// lamportsToWire converts the signed lamports of a reward into the unsigned width of the wire.
func lamportsToWire(lamports int64) (uint64, error) {
	if lamports < 0 {
		return 0, errors.Wrapf(ErrRangeOverflow, "negative reward lamports %d", lamports)
	}

	return uint64(lamports), nil
}

// lamportsFromWire converts the lamports of a reward record into their signed width.
func lamportsFromWire(lamports uint64) (int64, error) {
	if lamports > math.MaxInt64 {
		return 0, malformed("reward lamports %d exceed %d", lamports, int64(math.MaxInt64))
	}

	return int64(lamports), nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
