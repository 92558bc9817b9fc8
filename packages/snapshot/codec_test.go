package snapshot

import (
	"math"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"lukechampine.com/uint128"

	"github.com/iotaledger/banksnapshot/packages/app/metrics"
	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/snapshot/wire"
)

func TestCodec_RoundTrip(t *testing.T) {
	original := sampleBank(t)

	encoded, err := NewEncoder().Encode(original)
	require.NoError(t, err)

	decoded, err := NewDecoder().Decode(encoded)
	require.NoError(t, err)
	assert.False(t, decoded.IsFrozen())
	decoded.Freeze()

	originalFields, err := NewEncoder().Capture(original)
	require.NoError(t, err)
	decodedFields, err := NewEncoder().Capture(decoded)
	require.NoError(t, err)
	assert.Equal(t, originalFields, decodedFields)

	assert.Equal(t, original.StakedNodes(), decoded.StakedNodes())
	assert.Equal(t, bank.HardForks{{Slot: 10, Count: 1}, {Slot: 20, Count: 1}}, decoded.HardForks().Read())
	assert.Equal(t, bank.Slot(sampleSlots), decoded.Slot())

	reencoded, err := NewEncoder().Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestCodec_DecodeFields(t *testing.T) {
	encoded, err := NewEncoder().EncodeFields(sampleFields(t))
	require.NoError(t, err)

	decodedFields, err := NewDecoder().DecodeFields(encoded)
	require.NoError(t, err)
	assert.Equal(t, sampleFields(t), decodedFields)
}

func TestCodec_DeterministicEncoding(t *testing.T) {
	sample := sampleBank(t)
	expected, err := NewEncoder().Encode(sample)
	require.NoError(t, err)

	encoder := NewEncoder()
	results := make([][]byte, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			encoded, encodeErr := encoder.Encode(sample)
			assert.NoError(t, encodeErr)
			results[i] = encoded
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, expected, result)
	}
}

func TestCodec_ReencodeNonCanonical(t *testing.T) {
	canonical, err := NewEncoder().EncodeFields(sampleFields(t))
	require.NoError(t, err)

	record := sampleRecord(t)
	ages := record.BlockhashQueue.Ages
	require.Greater(t, len(ages), 1)
	for i, j := 0, len(ages)-1; i < j; i, j = i+1, j-1 {
		ages[i], ages[j] = ages[j], ages[i]
	}
	ancestors := record.Ancestors
	require.NotEmpty(t, ancestors)
	record.Ancestors = nil

	bankRecord := bankBytes(t, (&wire.Snapshot{Bank: record}).Marshal())
	for i := len(ancestors) - 1; i >= 0; i-- {
		bankRecord = protowire.AppendTag(bankRecord, 22, protowire.VarintType)
		bankRecord = protowire.AppendVarint(bankRecord, ancestors[i])
	}
	bankRecord = protowire.AppendTag(bankRecord, 99, protowire.BytesType)
	bankRecord = protowire.AppendBytes(bankRecord, []byte("unknown"))

	var encoded []byte
	encoded = protowire.AppendTag(encoded, 1, protowire.VarintType)
	encoded = protowire.AppendVarint(encoded, uint64(wire.CurrentVersion))
	encoded = protowire.AppendTag(encoded, 2, protowire.BytesType)
	encoded = protowire.AppendBytes(encoded, bankRecord)
	encoded = protowire.AppendTag(encoded, 100, protowire.Fixed32Type)
	encoded = protowire.AppendFixed32(encoded, 7)
	require.NotEqual(t, canonical, encoded)

	decodedFields, err := NewDecoder().DecodeFields(encoded)
	require.NoError(t, err)
	assert.Equal(t, sampleFields(t), decodedFields)

	decoded, err := NewDecoder().Decode(encoded)
	require.NoError(t, err)
	decoded.Freeze()
	reencoded, err := NewEncoder().Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, canonical, reencoded)

	redecodedFields, err := NewDecoder().DecodeFields(reencoded)
	require.NoError(t, err)
	assert.Equal(t, decodedFields, redecodedFields)
}

// bankBytes returns the content of the bank field of an encoded snapshot that carries no other fields.
func bankBytes(t *testing.T, encoded []byte) []byte {
	number, wireType, tagLength := protowire.ConsumeTag(encoded)
	require.Positive(t, tagLength)
	require.Equal(t, protowire.Number(2), number)
	require.Equal(t, protowire.BytesType, wireType)

	value, valueLength := protowire.ConsumeBytes(encoded[tagLength:])
	require.Positive(t, valueLength)

	return append([]byte(nil), value...)
}

func TestEncoder_NotFrozen(t *testing.T) {
	unfrozen, err := bank.New(sampleFields(t))
	require.NoError(t, err)

	_, err = NewEncoder().Encode(unfrozen)
	assert.True(t, errors.Is(err, ErrBankNotFrozen))
}

func TestEncoder_RangeOverflow(t *testing.T) {
	fields := sampleFields(t)
	fields.Header.NsPerSlot = uint128.New(0, 1)
	_, err := NewEncoder().EncodeFields(fields)
	assert.True(t, errors.Is(err, ErrRangeOverflow))

	fields = sampleFields(t)
	fields.Header.NsPerSlot = uint128.From64(math.MaxUint64)
	encoded, err := NewEncoder().EncodeFields(fields)
	require.NoError(t, err)
	decodedFields, err := NewDecoder().DecodeFields(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(math.MaxUint64), decodedFields.Header.NsPerSlot)

	fields = sampleFields(t)
	active := fields.EpochRewardStatus.(bank.EpochRewardStatusActive)
	active.Rewards[0].RewardInfo.Lamports = -1
	_, err = NewEncoder().EncodeFields(fields)
	assert.True(t, errors.Is(err, ErrRangeOverflow))
}

func TestCodec_EpochRewardStatus(t *testing.T) {
	fields := sampleFields(t)
	fields.EpochRewardStatus = bank.EpochRewardStatusInactive{}
	record, err := bankToWire(fields)
	require.NoError(t, err)
	assert.Nil(t, record.EpochRewards)

	decodedFields, err := NewDecoder().DecodeFields(encodeRecord(record))
	require.NoError(t, err)
	assert.Equal(t, bank.EpochRewardStatusInactive{}, decodedFields.EpochRewardStatus)

	fields = sampleFields(t)
	fields.EpochRewardStatus = bank.EpochRewardStatusActive{StartBlockHeight: 0}
	encoded, err := NewEncoder().EncodeFields(fields)
	require.NoError(t, err)
	decodedFields, err = NewDecoder().DecodeFields(encoded)
	require.NoError(t, err)
	assert.Equal(t, bank.EpochRewardStatusActive{}, decodedFields.EpochRewardStatus)
	assert.True(t, decodedFields.EpochRewardStatus.IsActive())
}

func TestCodec_SnapshotPersistence(t *testing.T) {
	fields := sampleFields(t)
	fields.SnapshotPersistence = bank.FullSnapshot{}
	record, err := bankToWire(fields)
	require.NoError(t, err)
	assert.Nil(t, record.IncrementalSnapshotPersistence)

	decodedFields, err := NewDecoder().DecodeFields(encodeRecord(record))
	require.NoError(t, err)
	assert.Equal(t, bank.FullSnapshot{}, decodedFields.SnapshotPersistence)
	assert.False(t, decodedFields.SnapshotPersistence.IsIncremental())
}

func TestCodec_OptionalHeaderFields(t *testing.T) {
	fields := sampleFields(t)
	fields.Header.EpochAccountsHash = nil
	fields.Header.HashesPerTick = nil

	encoded, err := NewEncoder().EncodeFields(fields)
	require.NoError(t, err)
	decodedFields, err := NewDecoder().DecodeFields(encoded)
	require.NoError(t, err)
	assert.Nil(t, decodedFields.Header.EpochAccountsHash)
	assert.Nil(t, decodedFields.Header.HashesPerTick)

	zero := uint64(0)
	fields.Header.HashesPerTick = &zero
	encoded, err = NewEncoder().EncodeFields(fields)
	require.NoError(t, err)
	decodedFields, err = NewDecoder().DecodeFields(encoded)
	require.NoError(t, err)
	require.NotNil(t, decodedFields.Header.HashesPerTick)
	assert.Zero(t, *decodedFields.Header.HashesPerTick)
}

func TestCodec_DanglingDelegation(t *testing.T) {
	keys := bank.NewKeyGenerator([]byte("dangling"))
	fields := sampleFields(t)
	danglingStake := keys.Pubkey()
	fields.Stakes.Delegations[danglingStake] = bank.Delegation{VoterPubkey: keys.Pubkey(), Stake: 5}

	encoded, err := NewEncoder().EncodeFields(fields)
	require.NoError(t, err)
	decoded, err := NewDecoder().Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, []bank.Pubkey{danglingStake}, decoded.StakesCache().Read().Stakes().DanglingDelegations())
}

func TestDecoder_Version(t *testing.T) {
	record := sampleRecord(t)

	_, err := NewDecoder().Decode((&wire.Snapshot{Version: 2, Bank: record}).Marshal())
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))

	_, err = NewDecoder().Decode((&wire.Snapshot{Version: 0, Bank: record}).Marshal())
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))

	_, err = NewDecoder().Decode(nil)
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))

	_, err = NewDecoder().Decode([]byte{0xff, 0xff, 0xff})
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))

	_, err = NewDecoder().Decode((&wire.Snapshot{Version: 1}).Marshal())
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))
}

func TestDecoder_Malformed(t *testing.T) {
	hugeCommission := uint32(256)

	for name, mutate := range map[string]func(record *wire.Bank){
		"short hash": func(record *wire.Bank) {
			record.Hash = make([]byte, 31)
		},
		"long parent hash": func(record *wire.Bank) {
			record.ParentHash = make([]byte, 33)
		},
		"missing collector id": func(record *wire.Bank) {
			record.CollectorID = nil
		},
		"short vote account key": func(record *wire.Bank) {
			record.Stakes.VoteAccounts[0].Pubkey = make([]byte, 31)
		},
		"long vote account owner": func(record *wire.Bank) {
			record.Stakes.VoteAccounts[0].VoteAccount.Owner = make([]byte, 33)
		},
		"missing vote account": func(record *wire.Bank) {
			record.Stakes.VoteAccounts[0].VoteAccount = nil
		},
		"duplicate vote account": func(record *wire.Bank) {
			record.Stakes.VoteAccounts = append(record.Stakes.VoteAccounts, record.Stakes.VoteAccounts[0])
		},
		"duplicate delegation": func(record *wire.Bank) {
			record.Stakes.StakeDelegations = append(record.Stakes.StakeDelegations, record.Stakes.StakeDelegations[0])
		},
		"missing delegation": func(record *wire.Bank) {
			record.Stakes.StakeDelegations[0].Delegation = nil
		},
		"duplicate stake history epoch": func(record *wire.Bank) {
			record.Stakes.StakeHistory = append(record.Stakes.StakeHistory, record.Stakes.StakeHistory[0])
		},
		"duplicate ancestor": func(record *wire.Bank) {
			record.Ancestors = append(record.Ancestors, record.Ancestors[0])
		},
		"duplicate blockhash": func(record *wire.Bank) {
			record.BlockhashQueue.Ages = append(record.BlockhashQueue.Ages, record.BlockhashQueue.Ages[0])
		},
		"duplicate epoch stakes": func(record *wire.Bank) {
			record.EpochStakes = append(record.EpochStakes, record.EpochStakes[0])
		},
		"duplicate node vote account": func(record *wire.Bank) {
			node := &record.EpochStakes[len(record.EpochStakes)-1].NodeIDsToVoteAccounts[0]
			node.VoteAccounts = append(node.VoteAccounts, node.VoteAccounts[0])
		},
		"duplicate node": func(record *wire.Bank) {
			epochStake := &record.EpochStakes[len(record.EpochStakes)-1]
			epochStake.NodeIDsToVoteAccounts = append(epochStake.NodeIDsToVoteAccounts, epochStake.NodeIDsToVoteAccounts[0])
		},
		"duplicate authorized voter": func(record *wire.Bank) {
			epochStake := &record.EpochStakes[len(record.EpochStakes)-1]
			epochStake.EpochAuthorizedVoters = append(epochStake.EpochAuthorizedVoters, epochStake.EpochAuthorizedVoters[0])
		},
		"missing epoch stakes": func(record *wire.Bank) {
			record.EpochStakes[0].Stakes = nil
		},
		"fee burn percent": func(record *wire.Bank) {
			record.FeeRateGovernor.BurnPercent = 101
		},
		"rent burn percent": func(record *wire.Bank) {
			record.RentCollector.Rent.BurnPercent = 101
		},
		"missing rent": func(record *wire.Bank) {
			record.RentCollector.Rent = nil
		},
		"commission": func(record *wire.Bank) {
			record.EpochRewards.EpochStakeRewards[0].StakeRewardInfo.Commission = &hugeCommission
		},
		"reward kind": func(record *wire.Bank) {
			record.EpochRewards.EpochStakeRewards[0].StakeRewardInfo.RewardKind = 4
		},
		"reward lamports": func(record *wire.Bank) {
			record.EpochRewards.EpochStakeRewards[0].StakeRewardInfo.Lamports = 1 << 63
		},
		"missing reward info": func(record *wire.Bank) {
			record.EpochRewards.EpochStakeRewards[0].StakeRewardInfo = nil
		},
		"missing stake account": func(record *wire.Bank) {
			record.EpochRewards.EpochStakeRewards[0].StakeAccount = nil
		},
		"incremental hash": func(record *wire.Bank) {
			record.IncrementalSnapshotPersistence.IncrementalHash = nil
		},
		"missing inflation": func(record *wire.Bank) {
			record.Inflation = nil
		},
		"missing fee rate governor": func(record *wire.Bank) {
			record.FeeRateGovernor = nil
		},
		"missing rent collector": func(record *wire.Bank) {
			record.RentCollector = nil
		},
		"missing epoch schedule": func(record *wire.Bank) {
			record.EpochSchedule = nil
		},
		"missing blockhash queue": func(record *wire.Bank) {
			record.BlockhashQueue = nil
		},
		"missing stakes": func(record *wire.Bank) {
			record.Stakes = nil
		},
	} {
		t.Run(name, func(t *testing.T) {
			record := sampleRecord(t)
			mutate(record)

			assert.True(t, errors.Is(decodeRecord(record), ErrMalformedSnapshot))
		})
	}
}

func TestDecoder_KeyLength(t *testing.T) {
	record := sampleRecord(t)
	record.Stakes.StakeDelegations[0].Delegation.VoterPubkey = make([]byte, 31)
	err := decodeRecord(record)
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))
	assert.True(t, errors.Is(err, bank.ErrInvalidKeyLength))

	record = sampleRecord(t)
	record.ParentHash = make([]byte, 33)
	err = decodeRecord(record)
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))
	assert.True(t, errors.Is(err, bank.ErrInvalidKeyLength))
}

func TestDecoder_InvariantViolation(t *testing.T) {
	record := sampleRecord(t)
	record.BlockhashQueue.MaxAge = uint64(len(record.BlockhashQueue.Ages)) - 2
	err := decodeRecord(record)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.True(t, errors.Is(err, bank.ErrQueueCapacityExceeded))

	record = sampleRecord(t)
	record.BlockhashQueue.MaxAge = uint64(len(record.BlockhashQueue.Ages)) - 1
	assert.NoError(t, decodeRecord(record))

	record = sampleRecord(t)
	record.ParentSlot = record.Slot + 1
	err = decodeRecord(record)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.True(t, errors.Is(err, bank.ErrParentSlotAfterSlot))

	record = sampleRecord(t)
	record.Slot = 0
	record.ParentSlot = 5
	assert.NoError(t, decodeRecord(record))
}

func TestDecoder_Constructor(t *testing.T) {
	encoded, err := NewEncoder().EncodeFields(sampleFields(t))
	require.NoError(t, err)

	var constructed *bank.Fields
	decoded, err := NewDecoder(WithConstructor(func(fields *bank.Fields) (*bank.Bank, error) {
		constructed = fields

		return bank.New(fields)
	})).Decode(encoded)
	require.NoError(t, err)
	require.NotNil(t, constructed)
	assert.Equal(t, constructed.Header.Slot, decoded.Slot())

	errRejected := errors.New("rejected")
	_, err = NewDecoder(WithConstructor(func(*bank.Fields) (*bank.Bank, error) {
		return nil, errRejected
	})).Decode(encoded)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.True(t, errors.Is(err, errRejected))
}

func TestCodec_Metrics(t *testing.T) {
	codecMetrics := metrics.NewCodec()
	sample := sampleBank(t)

	encoded, err := NewEncoder(WithMetrics(codecMetrics)).Encode(sample)
	require.NoError(t, err)
	_, err = NewDecoder(WithMetrics(codecMetrics)).Decode(encoded)
	require.NoError(t, err)
	_, err = NewDecoder(WithMetrics(codecMetrics)).Decode([]byte{0xff})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(codecMetrics.Operations(metrics.OperationEncode, true)))
	assert.Equal(t, 1.0, testutil.ToFloat64(codecMetrics.Operations(metrics.OperationDecode, true)))
	assert.Equal(t, 1.0, testutil.ToFloat64(codecMetrics.Operations(metrics.OperationDecode, false)))
	assert.Equal(t, float64(sampleSlots), testutil.ToFloat64(codecMetrics.LastSlot()))
}
