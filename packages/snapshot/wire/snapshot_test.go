package wire

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestSnapshot_MarshalUnmarshal(t *testing.T) {
	hashesPerTick := uint64(12500)
	commission := uint32(0)
	original := &Snapshot{
		Version: CurrentVersion,
		Bank: &Bank{
			Epoch:               2,
			Slot:                77,
			Hash:                make([]byte, 32),
			HashesPerTick:       &hashesPerTick,
			SlotsPerYear:        78892314.984,
			Ancestors:           []uint64{70, 0, 77},
			GenesisCreationTime: -5,
			Inflation:           &Inflation{Initial: 0.08},
			HardForks:           []HardFork{{Slot: 10, Count: 1}, {Slot: 20, Count: 2}},
			BlockhashQueue: &BlockhashQueue{
				LastHashIndex: 3,
				MaxAge:        300,
				Ages: []Age{{
					Hash:          []byte{1, 2, 3},
					HashIndex:     3,
					FeeCalculator: &FeeCalculator{},
				}},
			},
			Stakes: &Stakes{
				VoteAccounts: []VoteAccountsEntry{{Pubkey: []byte{9}, Stake: 5, VoteAccount: &Account{Lamports: 1}}},
			},
			EpochRewards: &EpochRewards{
				EpochStakeRewards: []EpochStakeReward{{
					StakePubkey:     []byte{4},
					StakeRewardInfo: &RewardInfo{RewardKind: 2, Lamports: 500, Commission: &commission},
				}},
			},
		},
	}

	decoded := new(Snapshot)
	require.NoError(t, decoded.Unmarshal(original.Marshal()))
	assert.Equal(t, original, decoded)

	version, err := PeekVersion(original.Marshal())
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, version)
}

func TestSnapshot_Presence(t *testing.T) {
	decoded := new(Snapshot)
	require.NoError(t, decoded.Unmarshal((&Snapshot{Version: 1, Bank: &Bank{}}).Marshal()))
	require.NotNil(t, decoded.Bank)
	assert.Nil(t, decoded.Bank.HashesPerTick)
	assert.Nil(t, decoded.Bank.EpochAccountsHash)
	assert.Nil(t, decoded.Bank.EpochRewards)
	assert.Nil(t, decoded.Bank.IncrementalSnapshotPersistence)

	empty := new(Snapshot)
	require.NoError(t, empty.Unmarshal(nil))
	assert.Nil(t, empty.Bank)
	assert.Zero(t, empty.Version)

	emptyRewards := new(Snapshot)
	require.NoError(t, emptyRewards.Unmarshal((&Snapshot{Bank: &Bank{EpochRewards: &EpochRewards{}}}).Marshal()))
	assert.NotNil(t, emptyRewards.Bank.EpochRewards)
}

func TestBank_UnknownFields(t *testing.T) {
	var data []byte
	data = protowire.AppendTag(data, 3, protowire.VarintType)
	data = protowire.AppendVarint(data, 42)
	data = protowire.AppendTag(data, 1000, protowire.BytesType)
	data = protowire.AppendBytes(data, []byte("future"))
	data = protowire.AppendTag(data, 1001, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)
	// known number with an unexpected wire type
	data = protowire.AppendTag(data, 1, protowire.Fixed64Type)
	data = protowire.AppendFixed64(data, 9)

	bank := new(Bank)
	require.NoError(t, bank.unmarshal(data))
	assert.Equal(t, uint64(42), bank.Slot)
	assert.Zero(t, bank.Epoch)
}

func TestBank_Ancestors(t *testing.T) {
	var unpacked []byte
	for _, slot := range []uint64{5, 6} {
		unpacked = protowire.AppendTag(unpacked, 22, protowire.VarintType)
		unpacked = protowire.AppendVarint(unpacked, slot)
	}
	packed := appendPackedVarints(nil, 22, []uint64{7, 8})

	bank := new(Bank)
	require.NoError(t, bank.unmarshal(append(unpacked, packed...)))
	assert.Equal(t, []uint64{5, 6, 7, 8}, bank.Ancestors)
}

func TestBank_InvalidWireData(t *testing.T) {
	encoded := (&Snapshot{Version: 1, Bank: &Bank{Slot: 300, Hash: make([]byte, 32)}}).Marshal()

	truncated := new(Snapshot)
	assert.True(t, errors.Is(truncated.Unmarshal(encoded[:len(encoded)-1]), ErrInvalidWireData))

	var overflow []byte
	overflow = protowire.AppendTag(overflow, 1, protowire.VarintType)
	overflow = protowire.AppendVarint(overflow, 1<<32)
	_, err := PeekVersion(overflow)
	assert.True(t, errors.Is(err, ErrInvalidWireData))

	var badTag []byte
	badTag = protowire.AppendVarint(badTag, 0)
	assert.True(t, errors.Is(new(Snapshot).Unmarshal(badTag), ErrInvalidWireData))
}

func TestNodeIDToVoteAccounts_EmptyEntries(t *testing.T) {
	original := &NodeIDToVoteAccounts{
		NodeID:       []byte{1},
		VoteAccounts: [][]byte{{2}, {}, {3}},
	}

	decoded := new(NodeIDToVoteAccounts)
	require.NoError(t, decoded.unmarshal(original.appendTo(nil)))
	assert.Equal(t, original, decoded)
}
