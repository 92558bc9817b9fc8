package bank

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"golang.org/x/crypto/blake2b"
	"lukechampine.com/uint128"
)

const (
	// DefaultTicksPerSlot is the amount of ticks of a slot of a generated bank.
	DefaultTicksPerSlot = 64

	// DefaultHashesPerTick is the amount of hashes of a tick of a generated bank.
	DefaultHashesPerTick = 12500

	// DefaultNsPerSlot is the duration of a slot of a generated bank in nanoseconds.
	DefaultNsPerSlot = 400_000_000

	// DefaultMaxAge is the capacity of the blockhash queue of a generated bank.
	DefaultMaxAge = 300

	// DefaultSlotsPerEpoch is the length of an epoch of a generated bank.
	DefaultSlotsPerEpoch = 32
)

// region KeyGenerator /////////////////////////////////////////////////////////////////////////////////////////////////

// KeyGenerator derives a deterministic sequence of pubkeys and hashes from a seed.
type KeyGenerator struct {
	seed    []byte
	counter uint64
}

// NewKeyGenerator creates a KeyGenerator for the given seed.
func NewKeyGenerator(seed []byte) *KeyGenerator {
	return &KeyGenerator{
		seed: append([]byte(nil), seed...),
	}
}

// Pubkey returns the next pubkey of the sequence.
func (k *KeyGenerator) Pubkey() Pubkey {
	return Pubkey(k.next("pubkey"))
}

// Hash returns the next hash of the sequence.
func (k *KeyGenerator) Hash() Hash {
	return Hash(k.next("hash"))
}

func (k *KeyGenerator) next(domain string) [blake2b.Size256]byte {
	k.counter++

	return blake2b.Sum256(marshalutil.New().
		WriteBytes(k.seed).
		WriteBytes([]byte(domain)).
		WriteUint64(k.counter).
		Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Genesis //////////////////////////////////////////////////////////////////////////////////////////////////////

// GenesisFields returns the Fields of a root bank at slot 0 with default parameters.
func GenesisFields(keys *KeyGenerator, creationTime UnixTimestamp) *Fields {
	hashesPerTick := uint64(DefaultHashesPerTick)
	epochSchedule := EpochSchedule{
		SlotsPerEpoch:            DefaultSlotsPerEpoch,
		LeaderScheduleSlotOffset: DefaultSlotsPerEpoch,
	}
	slotsPerYear := 365.242_199 * 24 * 60 * 60 * 1_000_000_000 / DefaultNsPerSlot
	genesisHash := keys.Hash()

	blockhashQueue := NewBlockhashQueue(DefaultMaxAge)
	blockhashQueue.RegisterHash(genesisHash, 5000, uint64(creationTime)*1000)

	return &Fields{
		Header: Header{
			Hash:                keys.Hash(),
			ParentHash:          genesisHash,
			MaxTickHeight:       DefaultTicksPerSlot,
			TicksPerSlot:        DefaultTicksPerSlot,
			HashesPerTick:       &hashesPerTick,
			NsPerSlot:           uint128.From64(DefaultNsPerSlot),
			SlotsPerYear:        slotsPerYear,
			GenesisCreationTime: creationTime,
			CollectorID:         keys.Pubkey(),
			Capitalization:      500_000_000_000_000_000,
		},
		Ancestors:      NewAncestors(0),
		BlockhashQueue: blockhashQueue,
		FeeRateGovernor: FeeRateGovernor{
			LamportsPerSignature:       5000,
			TargetLamportsPerSignature: 10000,
			TargetSignaturesPerSlot:    20000,
			MinLamportsPerSignature:    5000,
			MaxLamportsPerSignature:    100000,
			BurnPercent:                50,
		},
		Inflation: Inflation{
			Initial:        0.08,
			Terminal:       0.015,
			Taper:          0.15,
			Foundation:     0.05,
			FoundationTerm: 7,
		},
		RentCollector: RentCollector{
			EpochSchedule: epochSchedule,
			SlotsPerYear:  slotsPerYear,
			Rent: Rent{
				LamportsPerByteYear: 3480,
				ExemptionThreshold:  2,
				BurnPercent:         50,
			},
		},
		EpochSchedule: epochSchedule,
		Stakes:        NewStakes(0),
		EpochStakes: map[Epoch]*EpochStakes{
			0: NewEpochStakes(NewStakes(0)),
			1: NewEpochStakes(NewStakes(0)),
		},
		EpochRewardStatus:   EpochRewardStatusInactive{},
		SnapshotPersistence: FullSnapshot{},
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NewFromParent ////////////////////////////////////////////////////////////////////////////////////////////////

// NewFromParent creates the child of a frozen parent Bank at the given slot, filled with all of its ticks. The last
// tick registers a blockhash that is derived from the new bank hash.
func NewFromParent(parent *Bank, collectorID Pubkey, slot Slot, opts ...Option) (child *Bank, err error) {
	if !parent.IsFrozen() {
		return nil, errors.New("parent bank must be frozen")
	}
	if slot <= parent.Slot() {
		return nil, errors.Errorf("slot %d must lie after the parent slot %d", slot, parent.Slot())
	}

	parentHeader := parent.Header()
	header := parentHeader.Clone()
	header.Slot = slot
	header.ParentSlot = parentHeader.Slot
	header.ParentHash = parentHeader.Hash
	header.BlockHeight = parentHeader.BlockHeight + 1
	header.Epoch = epochOfSlot(parent.EpochSchedule(), slot)
	header.TickHeight = (slot + 1) * header.TicksPerSlot
	header.MaxTickHeight = (slot + 1) * header.TicksPerSlot
	header.SignatureCount = 0
	header.CollectorID = collectorID
	header.CollectorFees = 0
	header.IsDelta = true
	header.Hash = blake2b.Sum256(marshalutil.New().WriteBytes(parentHeader.Hash.Bytes()).WriteUint64(slot).Bytes())

	ancestors := parent.Ancestors()
	ancestors[parentHeader.Slot] = struct{}{}
	ancestors[slot] = struct{}{}

	stakes := parent.StakesCache().Read().Stakes()
	stakes.Epoch = header.Epoch

	epochStakes := parent.EpochStakes()
	if leaderScheduleEpoch := epochOfSlot(parent.EpochSchedule(), slot+parent.EpochSchedule().LeaderScheduleSlotOffset); epochStakes[leaderScheduleEpoch] == nil {
		epochStakes[leaderScheduleEpoch] = NewEpochStakes(stakes.Clone())
	}

	if child, err = New(&Fields{
		Header:              header,
		Ancestors:           ancestors,
		HardForks:           parent.HardForks().Read(),
		BlockhashQueue:      parent.BlockhashQueue().Read(),
		FeeRateGovernor:     parent.FeeRateGovernor(),
		Inflation:           parent.Inflation(),
		RentCollector:       parent.RentCollector(),
		EpochSchedule:       parent.EpochSchedule(),
		Stakes:              stakes,
		EpochStakes:         epochStakes,
		EpochRewardStatus:   EpochRewardStatusInactive{},
		SnapshotPersistence: FullSnapshot{},
	}, opts...); err != nil {
		return nil, errors.Wrapf(err, "failed to create bank for slot %d", slot)
	}

	blockhash := blake2b.Sum256(marshalutil.New().WriteBytes(header.Hash.Bytes()).WriteUint64(header.TickHeight).Bytes())
	timestamp := uint64(header.GenesisCreationTime)*1000 + slot*header.NsPerSlot.Lo/1_000_000
	if err = child.RegisterBlockhash(blockhash, timestamp); err != nil {
		return nil, err
	}

	return child, nil
}

// epochOfSlot returns the epoch that contains the given slot.
func epochOfSlot(epochSchedule EpochSchedule, slot Slot) Epoch {
	if epochSchedule.SlotsPerEpoch == 0 {
		return 0
	}
	if slot < epochSchedule.FirstNormalSlot {
		return 0
	}

	return epochSchedule.FirstNormalEpoch + (slot-epochSchedule.FirstNormalSlot)/epochSchedule.SlotsPerEpoch
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
