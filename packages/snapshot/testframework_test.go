package snapshot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/snapshot/wire"
)

const sampleSlots = 40

// sampleFields returns the Fields of a bank that went through all of its life cycle: a staked validator, two hard
// forks, a pending reward distribution and an incremental snapshot. The result only depends on the seed.
func sampleFields(t *testing.T) *bank.Fields {
	keys := bank.NewKeyGenerator([]byte("snapshot"))
	tip, err := bank.New(bank.GenesisFields(keys, 1_584_368_940))
	require.NoError(t, err)

	voteAccount, stakeAccount := keys.Pubkey(), keys.Pubkey()
	require.NoError(t, tip.StoreVoteAccount(voteAccount, bank.VoteAccount{
		Stake: 1_000,
		Account: bank.Account{
			Lamports: 10,
			Data: bank.VoteState{
				NodePubkey:      keys.Pubkey(),
				AuthorizedVoter: keys.Pubkey(),
				Commission:      10,
			}.Bytes(),
			Owner: keys.Pubkey(),
		},
	}))
	require.NoError(t, tip.Delegate(stakeAccount, bank.Delegation{
		VoterPubkey:        voteAccount,
		Stake:              1_000,
		DeactivationEpoch:  math.MaxUint64,
		WarmupCooldownRate: 0.25,
	}))
	tip.Freeze()

	for slot := bank.Slot(1); slot <= sampleSlots; slot++ {
		tip, err = bank.NewFromParent(tip, keys.Pubkey(), slot)
		require.NoError(t, err)
		if slot == 10 || slot == 20 {
			require.NoError(t, tip.RegisterHardFork(slot))
		}
		tip.Freeze()
	}

	fields, err := NewEncoder().Capture(tip)
	require.NoError(t, err)

	fields.Stakes.History[0] = bank.StakeHistoryEntry{Activating: 1_000}
	fields.Stakes.History[1] = bank.StakeHistoryEntry{Effective: 1_000}

	epochAccountsHash := keys.Hash()
	fields.Header.EpochAccountsHash = &epochAccountsHash
	fields.Header.TransactionCount = 77
	fields.Header.AccountsDataSize = 4096

	fields.SnapshotPersistence = bank.IncrementalSnapshot{
		FullSlot:                  32,
		FullHash:                  keys.Hash(),
		FullCapitalization:        500_000_000_000_000_000,
		IncrementalHash:           keys.Hash(),
		IncrementalCapitalization: 500_000_000_000_000_500,
	}

	commission := uint8(10)
	fields.EpochRewardStatus = bank.EpochRewardStatusActive{
		StartBlockHeight: sampleSlots,
		Rewards: []bank.StakeReward{{
			StakePubkey: stakeAccount,
			StakeAccount: bank.Account{
				Lamports: 1_500,
				Owner:    keys.Pubkey(),
			},
			RewardInfo: bank.RewardInfo{
				Kind:        bank.RewardKindStaking,
				Lamports:    500,
				PostBalance: 1_500,
				Commission:  &commission,
			},
		}},
	}

	return fields
}

// sampleBank returns a frozen bank that is created from the sampleFields.
func sampleBank(t *testing.T) *bank.Bank {
	sample, err := bank.New(sampleFields(t))
	require.NoError(t, err)
	sample.Freeze()

	return sample
}

// sampleRecord returns the wire record of the sampleFields.
func sampleRecord(t *testing.T) *wire.Bank {
	record, err := bankToWire(sampleFields(t))
	require.NoError(t, err)

	return record
}

// encodeRecord encodes the given record as a snapshot of the current version.
func encodeRecord(record *wire.Bank) []byte {
	return (&wire.Snapshot{Version: wire.CurrentVersion, Bank: record}).Marshal()
}

// decodeRecord encodes the given record and decodes it again.
func decodeRecord(record *wire.Bank) error {
	_, err := NewDecoder().Decode(encodeRecord(record))

	return err
}
