package bank

import (
	"github.com/iotaledger/hive.go/stringify"
)

// NodeVoteAccounts contains the vote accounts of a validator node and their summed stake.
type NodeVoteAccounts struct {
	TotalStake   uint64
	VoteAccounts []Pubkey
}

// EpochStakes is the frozen stake distribution of a single epoch.
type EpochStakes struct {
	TotalStake            uint64
	Stakes                *Stakes
	NodeIDToVoteAccounts  map[Pubkey]NodeVoteAccounts
	EpochAuthorizedVoters map[Pubkey]Pubkey
}

// NewEpochStakes derives the EpochStakes of an epoch from the given Stakes. Only vote accounts with stake and a
// parsable vote state are assigned to a node.
func NewEpochStakes(stakes *Stakes) (epochStakes *EpochStakes) {
	epochStakes = &EpochStakes{
		TotalStake:            stakes.VoteAccounts.TotalStake(),
		Stakes:                stakes,
		NodeIDToVoteAccounts:  make(map[Pubkey]NodeVoteAccounts),
		EpochAuthorizedVoters: make(map[Pubkey]Pubkey),
	}

	for pubkey, voteAccount := range stakes.VoteAccounts {
		if voteAccount.Stake == 0 {
			continue
		}

		voteState, err := VoteStateFromBytes(voteAccount.Account.Data)
		if err != nil {
			continue
		}

		nodeVoteAccounts := epochStakes.NodeIDToVoteAccounts[voteState.NodePubkey]
		nodeVoteAccounts.TotalStake += voteAccount.Stake
		nodeVoteAccounts.VoteAccounts = append(nodeVoteAccounts.VoteAccounts, pubkey)
		epochStakes.NodeIDToVoteAccounts[voteState.NodePubkey] = nodeVoteAccounts

		epochStakes.EpochAuthorizedVoters[pubkey] = voteState.AuthorizedVoter
	}

	for _, nodeVoteAccounts := range epochStakes.NodeIDToVoteAccounts {
		SortPubkeys(nodeVoteAccounts.VoteAccounts)
	}

	return epochStakes
}

// VoteAccountToNodeID returns the reverse index that maps every vote account to the node that it belongs to.
func (e *EpochStakes) VoteAccountToNodeID() (voteAccountToNodeID map[Pubkey]Pubkey) {
	voteAccountToNodeID = make(map[Pubkey]Pubkey)
	for nodeID, nodeVoteAccounts := range e.NodeIDToVoteAccounts {
		for _, voteAccount := range nodeVoteAccounts.VoteAccounts {
			voteAccountToNodeID[voteAccount] = nodeID
		}
	}

	return voteAccountToNodeID
}

// Clone returns a deep copy of the EpochStakes.
func (e *EpochStakes) Clone() *EpochStakes {
	cloned := &EpochStakes{
		TotalStake:            e.TotalStake,
		Stakes:                e.Stakes.Clone(),
		NodeIDToVoteAccounts:  make(map[Pubkey]NodeVoteAccounts, len(e.NodeIDToVoteAccounts)),
		EpochAuthorizedVoters: make(map[Pubkey]Pubkey, len(e.EpochAuthorizedVoters)),
	}
	for nodeID, nodeVoteAccounts := range e.NodeIDToVoteAccounts {
		cloned.NodeIDToVoteAccounts[nodeID] = NodeVoteAccounts{
			TotalStake:   nodeVoteAccounts.TotalStake,
			VoteAccounts: append([]Pubkey(nil), nodeVoteAccounts.VoteAccounts...),
		}
	}
	for voteAccount, authorizedVoter := range e.EpochAuthorizedVoters {
		cloned.EpochAuthorizedVoters[voteAccount] = authorizedVoter
	}

	return cloned
}

// String returns a human-readable version of the EpochStakes.
func (e *EpochStakes) String() string {
	return stringify.Struct("EpochStakes",
		stringify.StructField("TotalStake", e.TotalStake),
		stringify.StructField("Stakes", e.Stakes),
		stringify.StructField("Nodes", len(e.NodeIDToVoteAccounts)),
		stringify.StructField("AuthorizedVoters", len(e.EpochAuthorizedVoters)),
	)
}

// CloneEpochStakes returns a deep copy of the given epoch to EpochStakes mapping.
func CloneEpochStakes(epochStakes map[Epoch]*EpochStakes) map[Epoch]*EpochStakes {
	cloned := make(map[Epoch]*EpochStakes, len(epochStakes))
	for epoch, stakes := range epochStakes {
		cloned[epoch] = stakes.Clone()
	}

	return cloned
}
