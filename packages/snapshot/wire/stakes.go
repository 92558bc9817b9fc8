package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// region Stakes ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Stakes is the record of the vote accounts, the stake delegations and the stake history.
type Stakes struct {
	VoteAccounts     []VoteAccountsEntry     // 1
	StakeDelegations []StakeDelegationsEntry // 2
	Epoch            uint64                  // 4
	StakeHistory     []StakeHistory          // 5
}

func (m *Stakes) appendTo(buffer []byte) []byte {
	buffer = appendRepeated(buffer, 1, m.VoteAccounts)
	buffer = appendRepeated(buffer, 2, m.StakeDelegations)
	buffer = appendVarint(buffer, 4, m.Epoch)

	return appendRepeated(buffer, 5, m.StakeHistory)
}

func (m *Stakes) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return consumeRepeated(f, &m.VoteAccounts)
		case f.is(2, protowire.BytesType):
			return consumeRepeated(f, &m.StakeDelegations)
		case f.is(4, protowire.VarintType):
			return f.consumeVarint(&m.Epoch)
		case f.is(5, protowire.BytesType):
			return consumeRepeated(f, &m.StakeHistory)
		}

		return f.skip()
	})
}

// VoteAccountsEntry is the record of a vote account and its stake.
type VoteAccountsEntry struct {
	Pubkey      []byte   // 1
	Stake       uint64   // 2
	VoteAccount *Account // 3
}

func (m *VoteAccountsEntry) appendTo(buffer []byte) []byte {
	buffer = appendBytes(buffer, 1, m.Pubkey)
	buffer = appendVarint(buffer, 2, m.Stake)
	if m.VoteAccount != nil {
		buffer = appendMessage(buffer, 3, m.VoteAccount)
	}

	return buffer
}

func (m *VoteAccountsEntry) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return f.consumeBytes(&m.Pubkey)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.Stake)
		case f.is(3, protowire.BytesType):
			return consumeOptional(f, &m.VoteAccount)
		}

		return f.skip()
	})
}

// StakeDelegationsEntry is the record of the delegation of a stake account.
type StakeDelegationsEntry struct {
	Pubkey     []byte           // 1
	Delegation *StakeDelegation // 2
}

func (m *StakeDelegationsEntry) appendTo(buffer []byte) []byte {
	buffer = appendBytes(buffer, 1, m.Pubkey)
	if m.Delegation != nil {
		buffer = appendMessage(buffer, 2, m.Delegation)
	}

	return buffer
}

func (m *StakeDelegationsEntry) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return f.consumeBytes(&m.Pubkey)
		case f.is(2, protowire.BytesType):
			return consumeOptional(f, &m.Delegation)
		}

		return f.skip()
	})
}

// StakeDelegation is the record of a delegation.
type StakeDelegation struct {
	VoterPubkey        []byte  // 1
	Stake              uint64  // 2
	ActivationEpoch    uint64  // 3
	DeactivationEpoch  uint64  // 4
	WarmupCooldownRate float64 // 5
}

func (m *StakeDelegation) appendTo(buffer []byte) []byte {
	buffer = appendBytes(buffer, 1, m.VoterPubkey)
	buffer = appendVarint(buffer, 2, m.Stake)
	buffer = appendVarint(buffer, 3, m.ActivationEpoch)
	buffer = appendVarint(buffer, 4, m.DeactivationEpoch)

	return appendDouble(buffer, 5, m.WarmupCooldownRate)
}

func (m *StakeDelegation) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return f.consumeBytes(&m.VoterPubkey)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.Stake)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.ActivationEpoch)
		case f.is(4, protowire.VarintType):
			return f.consumeVarint(&m.DeactivationEpoch)
		case f.is(5, protowire.Fixed64Type):
			return f.consumeDouble(&m.WarmupCooldownRate)
		}

		return f.skip()
	})
}

// StakeHistory is the record of the stake totals of an epoch.
type StakeHistory struct {
	Epoch        uint64 // 1
	Effective    uint64 // 2
	Activating   uint64 // 3
	Deactivating uint64 // 4
}

func (m *StakeHistory) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.Epoch)
	buffer = appendVarint(buffer, 2, m.Effective)
	buffer = appendVarint(buffer, 3, m.Activating)

	return appendVarint(buffer, 4, m.Deactivating)
}

func (m *StakeHistory) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.Epoch)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.Effective)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.Activating)
		case f.is(4, protowire.VarintType):
			return f.consumeVarint(&m.Deactivating)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EpochStake ///////////////////////////////////////////////////////////////////////////////////////////////////

// EpochStake is the record of the stake distribution of an epoch.
type EpochStake struct {
	Epoch                 uint64                 // 1
	TotalStake            uint64                 // 2
	Stakes                *Stakes                // 3
	NodeIDsToVoteAccounts []NodeIDToVoteAccounts // 4
	EpochAuthorizedVoters []EpochAuthorizedVoter // 5
}

func (m *EpochStake) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.Epoch)
	buffer = appendVarint(buffer, 2, m.TotalStake)
	if m.Stakes != nil {
		buffer = appendMessage(buffer, 3, m.Stakes)
	}
	buffer = appendRepeated(buffer, 4, m.NodeIDsToVoteAccounts)

	return appendRepeated(buffer, 5, m.EpochAuthorizedVoters)
}

func (m *EpochStake) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.Epoch)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.TotalStake)
		case f.is(3, protowire.BytesType):
			return consumeOptional(f, &m.Stakes)
		case f.is(4, protowire.BytesType):
			return consumeRepeated(f, &m.NodeIDsToVoteAccounts)
		case f.is(5, protowire.BytesType):
			return consumeRepeated(f, &m.EpochAuthorizedVoters)
		}

		return f.skip()
	})
}

// NodeIDToVoteAccounts is the record of the vote accounts of a validator node.
type NodeIDToVoteAccounts struct {
	NodeID       []byte   // 1
	TotalStake   uint64   // 2
	VoteAccounts [][]byte // 3
}

func (m *NodeIDToVoteAccounts) appendTo(buffer []byte) []byte {
	buffer = appendBytes(buffer, 1, m.NodeID)
	buffer = appendVarint(buffer, 2, m.TotalStake)

	return appendRepeatedBytes(buffer, 3, m.VoteAccounts)
}

func (m *NodeIDToVoteAccounts) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return f.consumeBytes(&m.NodeID)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.TotalStake)
		case f.is(3, protowire.BytesType):
			return consumeRepeatedBytes(f, &m.VoteAccounts)
		}

		return f.skip()
	})
}

// EpochAuthorizedVoter is the record of the voter that is authorized for a vote account during an epoch.
type EpochAuthorizedVoter struct {
	VoteAccount     []byte // 1
	AuthorizedVoter []byte // 2
}

func (m *EpochAuthorizedVoter) appendTo(buffer []byte) []byte {
	buffer = appendBytes(buffer, 1, m.VoteAccount)

	return appendBytes(buffer, 2, m.AuthorizedVoter)
}

func (m *EpochAuthorizedVoter) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return f.consumeBytes(&m.VoteAccount)
		case f.is(2, protowire.BytesType):
			return f.consumeBytes(&m.AuthorizedVoter)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EpochRewards /////////////////////////////////////////////////////////////////////////////////////////////////

// EpochRewards is the record of a reward distribution that is in progress.
type EpochRewards struct {
	StartBlockHeight  uint64             // 1
	EpochStakeRewards []EpochStakeReward // 2
}

func (m *EpochRewards) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, m.StartBlockHeight)

	return appendRepeated(buffer, 2, m.EpochStakeRewards)
}

func (m *EpochRewards) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeVarint(&m.StartBlockHeight)
		case f.is(2, protowire.BytesType):
			return consumeRepeated(f, &m.EpochStakeRewards)
		}

		return f.skip()
	})
}

// EpochStakeReward is the record of the pending reward of a stake account.
type EpochStakeReward struct {
	StakePubkey     []byte      // 1
	StakeAccount    *Account    // 2
	StakeRewardInfo *RewardInfo // 3
}

func (m *EpochStakeReward) appendTo(buffer []byte) []byte {
	buffer = appendBytes(buffer, 1, m.StakePubkey)
	if m.StakeAccount != nil {
		buffer = appendMessage(buffer, 2, m.StakeAccount)
	}
	if m.StakeRewardInfo != nil {
		buffer = appendMessage(buffer, 3, m.StakeRewardInfo)
	}

	return buffer
}

func (m *EpochStakeReward) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.BytesType):
			return f.consumeBytes(&m.StakePubkey)
		case f.is(2, protowire.BytesType):
			return consumeOptional(f, &m.StakeAccount)
		case f.is(3, protowire.BytesType):
			return consumeOptional(f, &m.StakeRewardInfo)
		}

		return f.skip()
	})
}

// RewardInfo is the record of a reward.
type RewardInfo struct {
	RewardKind  uint32  // 1
	Lamports    uint64  // 2
	PostBalance uint64  // 3
	Commission  *uint32 // 4, optional
}

func (m *RewardInfo) appendTo(buffer []byte) []byte {
	buffer = appendVarint(buffer, 1, uint64(m.RewardKind))
	buffer = appendVarint(buffer, 2, m.Lamports)
	buffer = appendVarint(buffer, 3, m.PostBalance)

	return appendOptionalUint32(buffer, 4, m.Commission)
}

func (m *RewardInfo) unmarshal(data []byte) error {
	return walkFields(data, func(f field) (int, error) {
		switch {
		case f.is(1, protowire.VarintType):
			return f.consumeUint32(&m.RewardKind)
		case f.is(2, protowire.VarintType):
			return f.consumeVarint(&m.Lamports)
		case f.is(3, protowire.VarintType):
			return f.consumeVarint(&m.PostBalance)
		case f.is(4, protowire.VarintType):
			return f.consumeOptionalUint32(&m.Commission)
		}

		return f.skip()
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
