package bank

import (
	"strconv"

	"github.com/iotaledger/hive.go/stringify"
)

// region RewardKind ///////////////////////////////////////////////////////////////////////////////////////////////////

// RewardKind is the kind of a reward that was credited to an account.
type RewardKind uint8

const (
	// RewardKindFee is a reward paid out of transaction fees.
	RewardKindFee RewardKind = iota
	// RewardKindRent is a reward paid out of collected rent.
	RewardKindRent
	// RewardKindStaking is a reward for delegated stake.
	RewardKindStaking
	// RewardKindVoting is a reward for voting.
	RewardKindVoting
)

// IsValid returns true if the RewardKind is known.
func (r RewardKind) IsValid() bool {
	return r <= RewardKindVoting
}

// String returns a human-readable version of the RewardKind.
func (r RewardKind) String() string {
	switch r {
	case RewardKindFee:
		return "Fee"
	case RewardKindRent:
		return "Rent"
	case RewardKindStaking:
		return "Staking"
	case RewardKindVoting:
		return "Voting"
	default:
		return "RewardKind(" + strconv.Itoa(int(r)) + ")"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StakeReward //////////////////////////////////////////////////////////////////////////////////////////////////

// RewardInfo describes a reward that is credited to a stake account.
type RewardInfo struct {
	Kind        RewardKind
	Lamports    int64
	PostBalance uint64
	Commission  *uint8
}

// StakeReward is a reward that is pending for a stake account.
type StakeReward struct {
	StakePubkey  Pubkey
	StakeAccount Account
	RewardInfo   RewardInfo
}

// Clone returns a deep copy of the StakeReward.
func (s StakeReward) Clone() StakeReward {
	s.StakeAccount = s.StakeAccount.Clone()
	if s.RewardInfo.Commission != nil {
		commission := *s.RewardInfo.Commission
		s.RewardInfo.Commission = &commission
	}

	return s
}

// String returns a human-readable version of the StakeReward.
func (s StakeReward) String() string {
	return stringify.Struct("StakeReward",
		stringify.StructField("StakePubkey", s.StakePubkey),
		stringify.StructField("Kind", s.RewardInfo.Kind),
		stringify.StructField("Lamports", s.RewardInfo.Lamports),
		stringify.StructField("PostBalance", s.RewardInfo.PostBalance),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EpochRewardStatus ////////////////////////////////////////////////////////////////////////////////////////////

// EpochRewardStatus is the state of the reward distribution of the current epoch. It is either
// EpochRewardStatusActive or EpochRewardStatusInactive.
type EpochRewardStatus interface {
	// IsActive returns true if a reward distribution is in progress.
	IsActive() bool

	// Clone returns a deep copy of the EpochRewardStatus.
	Clone() EpochRewardStatus

	// String returns a human-readable version of the EpochRewardStatus.
	String() string
}

// EpochRewardStatusActive is the EpochRewardStatus of a reward distribution that is in progress.
type EpochRewardStatusActive struct {
	StartBlockHeight uint64
	Rewards          []StakeReward
}

// IsActive returns true.
func (e EpochRewardStatusActive) IsActive() bool {
	return true
}

// Clone returns a deep copy of the EpochRewardStatusActive.
func (e EpochRewardStatusActive) Clone() EpochRewardStatus {
	cloned := EpochRewardStatusActive{StartBlockHeight: e.StartBlockHeight}
	if e.Rewards != nil {
		cloned.Rewards = make([]StakeReward, len(e.Rewards))
		for i, reward := range e.Rewards {
			cloned.Rewards[i] = reward.Clone()
		}
	}

	return cloned
}

// String returns a human-readable version of the EpochRewardStatusActive.
func (e EpochRewardStatusActive) String() string {
	return stringify.Struct("EpochRewardStatusActive",
		stringify.StructField("StartBlockHeight", e.StartBlockHeight),
		stringify.StructField("Rewards", len(e.Rewards)),
	)
}

// EpochRewardStatusInactive is the EpochRewardStatus while no reward distribution is pending.
type EpochRewardStatusInactive struct{}

// IsActive returns false.
func (EpochRewardStatusInactive) IsActive() bool {
	return false
}

// Clone returns the EpochRewardStatusInactive.
func (e EpochRewardStatusInactive) Clone() EpochRewardStatus {
	return e
}

// String returns a human-readable version of the EpochRewardStatusInactive.
func (EpochRewardStatusInactive) String() string {
	return "EpochRewardStatusInactive"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SnapshotPersistence //////////////////////////////////////////////////////////////////////////////////////////

// SnapshotPersistence tells if a bank was captured by a full snapshot or by an incremental snapshot that is layered on
// top of a full one. It is either FullSnapshot or IncrementalSnapshot.
type SnapshotPersistence interface {
	// IsIncremental returns true for an incremental snapshot.
	IsIncremental() bool

	// String returns a human-readable version of the SnapshotPersistence.
	String() string
}

// FullSnapshot is the SnapshotPersistence of a self-contained snapshot.
type FullSnapshot struct{}

// IsIncremental returns false.
func (FullSnapshot) IsIncremental() bool {
	return false
}

// String returns a human-readable version of the FullSnapshot.
func (FullSnapshot) String() string {
	return "FullSnapshot"
}

// IncrementalSnapshot is the SnapshotPersistence of a snapshot that is layered on top of a full snapshot.
type IncrementalSnapshot struct {
	FullSlot                  Slot
	FullHash                  Hash
	FullCapitalization        uint64
	IncrementalHash           Hash
	IncrementalCapitalization uint64
}

// IsIncremental returns true.
func (IncrementalSnapshot) IsIncremental() bool {
	return true
}

// String returns a human-readable version of the IncrementalSnapshot.
func (i IncrementalSnapshot) String() string {
	return stringify.Struct("IncrementalSnapshot",
		stringify.StructField("FullSlot", i.FullSlot),
		stringify.StructField("FullHash", i.FullHash),
		stringify.StructField("FullCapitalization", i.FullCapitalization),
		stringify.StructField("IncrementalHash", i.IncrementalHash),
		stringify.StructField("IncrementalCapitalization", i.IncrementalCapitalization),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
