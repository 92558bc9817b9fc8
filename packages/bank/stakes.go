package bank

import (
	"bytes"
	"sort"

	"github.com/iotaledger/hive.go/stringify"
)

// region VoteAccounts /////////////////////////////////////////////////////////////////////////////////////////////////

// VoteAccount is a vote account together with the stake that is delegated to it.
type VoteAccount struct {
	Stake   uint64
	Account Account
}

// VoteAccounts maps the pubkeys of vote accounts to their stake and account.
type VoteAccounts map[Pubkey]VoteAccount

// TotalStake returns the sum of the stake of all vote accounts.
func (v VoteAccounts) TotalStake() (totalStake uint64) {
	for _, voteAccount := range v {
		totalStake += voteAccount.Stake
	}

	return totalStake
}

// StakedNodes returns the stake per validator node. Vote accounts without stake or with unparsable vote state are
// not counted.
func (v VoteAccounts) StakedNodes() (stakedNodes map[Pubkey]uint64) {
	stakedNodes = make(map[Pubkey]uint64)
	for _, voteAccount := range v {
		if voteAccount.Stake == 0 {
			continue
		}

		voteState, err := VoteStateFromBytes(voteAccount.Account.Data)
		if err != nil {
			continue
		}
		stakedNodes[voteState.NodePubkey] += voteAccount.Stake
	}

	return stakedNodes
}

// Clone returns a deep copy of the VoteAccounts.
func (v VoteAccounts) Clone() VoteAccounts {
	cloned := make(VoteAccounts, len(v))
	for pubkey, voteAccount := range v {
		cloned[pubkey] = VoteAccount{Stake: voteAccount.Stake, Account: voteAccount.Account.Clone()}
	}

	return cloned
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Delegation ///////////////////////////////////////////////////////////////////////////////////////////////////

// Delegation is the stake of a stake account that is delegated to a vote account.
type Delegation struct {
	VoterPubkey        Pubkey
	Stake              uint64
	ActivationEpoch    Epoch
	DeactivationEpoch  Epoch
	WarmupCooldownRate float64
}

// StakeHistoryEntry contains the stake totals of an epoch.
type StakeHistoryEntry struct {
	Effective    uint64
	Activating   uint64
	Deactivating uint64
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Stakes ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Stakes bundles the vote accounts, the stake delegations and the stake history of an epoch.
type Stakes struct {
	VoteAccounts VoteAccounts
	Delegations  map[Pubkey]Delegation
	History      map[Epoch]StakeHistoryEntry
	Epoch        Epoch
}

// NewStakes creates an empty Stakes bundle for the given epoch.
func NewStakes(epoch Epoch) *Stakes {
	return &Stakes{
		VoteAccounts: make(VoteAccounts),
		Delegations:  make(map[Pubkey]Delegation),
		History:      make(map[Epoch]StakeHistoryEntry),
		Epoch:        epoch,
	}
}

// DelegatedStakeByVoter returns the sum of the delegated stake per voter.
func (s *Stakes) DelegatedStakeByVoter() (delegatedStake map[Pubkey]uint64) {
	delegatedStake = make(map[Pubkey]uint64)
	for _, delegation := range s.Delegations {
		delegatedStake[delegation.VoterPubkey] += delegation.Stake
	}

	return delegatedStake
}

// DanglingDelegations returns the stake accounts (in ascending order) whose voter has no entry in the vote accounts.
func (s *Stakes) DanglingDelegations() (stakePubkeys []Pubkey) {
	for stakePubkey, delegation := range s.Delegations {
		if _, exists := s.VoteAccounts[delegation.VoterPubkey]; !exists {
			stakePubkeys = append(stakePubkeys, stakePubkey)
		}
	}
	SortPubkeys(stakePubkeys)

	return stakePubkeys
}

// Clone returns a deep copy of the Stakes.
func (s *Stakes) Clone() *Stakes {
	cloned := &Stakes{
		VoteAccounts: s.VoteAccounts.Clone(),
		Delegations:  make(map[Pubkey]Delegation, len(s.Delegations)),
		History:      make(map[Epoch]StakeHistoryEntry, len(s.History)),
		Epoch:        s.Epoch,
	}
	for pubkey, delegation := range s.Delegations {
		cloned.Delegations[pubkey] = delegation
	}
	for epoch, entry := range s.History {
		cloned.History[epoch] = entry
	}

	return cloned
}

// String returns a human-readable version of the Stakes.
func (s *Stakes) String() string {
	return stringify.Struct("Stakes",
		stringify.StructField("Epoch", s.Epoch),
		stringify.StructField("VoteAccounts", len(s.VoteAccounts)),
		stringify.StructField("TotalStake", s.VoteAccounts.TotalStake()),
		stringify.StructField("Delegations", len(s.Delegations)),
		stringify.StructField("History", len(s.History)),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StakesCache //////////////////////////////////////////////////////////////////////////////////////////////////

// StakesCache holds the Stakes of a Bank together with the views that are derived from them.
type StakesCache struct {
	stakes      *Stakes
	stakedNodes map[Pubkey]uint64
}

// NewStakesCache creates a StakesCache for the given Stakes and derives its views.
func NewStakesCache(stakes *Stakes) *StakesCache {
	return &StakesCache{
		stakes:      stakes,
		stakedNodes: stakes.VoteAccounts.StakedNodes(),
	}
}

// Stakes returns the cached Stakes.
func (s *StakesCache) Stakes() *Stakes {
	return s.stakes
}

// StakedNodes returns the stake per validator node.
func (s *StakesCache) StakedNodes() map[Pubkey]uint64 {
	return s.stakedNodes
}

// StoreVoteAccount adds or replaces a vote account and refreshes the derived views.
func (s *StakesCache) StoreVoteAccount(pubkey Pubkey, voteAccount VoteAccount) {
	s.stakes.VoteAccounts[pubkey] = voteAccount
	s.stakedNodes = s.stakes.VoteAccounts.StakedNodes()
}

// Delegate adds or replaces the delegation of a stake account.
func (s *StakesCache) Delegate(stakePubkey Pubkey, delegation Delegation) {
	s.stakes.Delegations[stakePubkey] = delegation
}

// Clone returns a deep copy of the StakesCache.
func (s *StakesCache) Clone() *StakesCache {
	cloned := &StakesCache{
		stakes:      s.stakes.Clone(),
		stakedNodes: make(map[Pubkey]uint64, len(s.stakedNodes)),
	}
	for node, stake := range s.stakedNodes {
		cloned.stakedNodes[node] = stake
	}

	return cloned
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// SortPubkeys sorts the given pubkeys in ascending byte order.
func SortPubkeys(pubkeys []Pubkey) {
	sort.Slice(pubkeys, func(i, j int) bool { return bytes.Compare(pubkeys[i][:], pubkeys[j][:]) < 0 })
}

// SortHashes sorts the given hashes in ascending byte order.
func SortHashes(hashes []Hash) {
	sort.Slice(hashes, func(i, j int) bool { return bytes.Compare(hashes[i][:], hashes[j][:]) < 0 })
}
