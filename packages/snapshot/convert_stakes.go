package snapshot

import (
	"fmt"
	"sort"

	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/snapshot/wire"
)

// region Stakes ///////////////////////////////////////////////////////////////////////////////////////////////////////

func stakesToWire(stakes *bank.Stakes) *wire.Stakes {
	record := &wire.Stakes{
		VoteAccounts:     make([]wire.VoteAccountsEntry, 0, len(stakes.VoteAccounts)),
		StakeDelegations: make([]wire.StakeDelegationsEntry, 0, len(stakes.Delegations)),
		Epoch:            stakes.Epoch,
		StakeHistory:     make([]wire.StakeHistory, 0, len(stakes.History)),
	}

	voteAccountKeys := make([]bank.Pubkey, 0, len(stakes.VoteAccounts))
	for pubkey := range stakes.VoteAccounts {
		voteAccountKeys = append(voteAccountKeys, pubkey)
	}
	bank.SortPubkeys(voteAccountKeys)
	for _, pubkey := range voteAccountKeys {
		voteAccount := stakes.VoteAccounts[pubkey]
		record.VoteAccounts = append(record.VoteAccounts, wire.VoteAccountsEntry{
			Pubkey:      pubkey.Bytes(),
			Stake:       voteAccount.Stake,
			VoteAccount: accountToWire(voteAccount.Account),
		})
	}

	delegationKeys := make([]bank.Pubkey, 0, len(stakes.Delegations))
	for pubkey := range stakes.Delegations {
		delegationKeys = append(delegationKeys, pubkey)
	}
	bank.SortPubkeys(delegationKeys)
	for _, pubkey := range delegationKeys {
		delegation := stakes.Delegations[pubkey]
		record.StakeDelegations = append(record.StakeDelegations, wire.StakeDelegationsEntry{
			Pubkey: pubkey.Bytes(),
			Delegation: &wire.StakeDelegation{
				VoterPubkey:        delegation.VoterPubkey.Bytes(),
				Stake:              delegation.Stake,
				ActivationEpoch:    delegation.ActivationEpoch,
				DeactivationEpoch:  delegation.DeactivationEpoch,
				WarmupCooldownRate: delegation.WarmupCooldownRate,
			},
		})
	}

	for _, epoch := range sortedEpochs(stakes.History) {
		entry := stakes.History[epoch]
		record.StakeHistory = append(record.StakeHistory, wire.StakeHistory{
			Epoch:        epoch,
			Effective:    entry.Effective,
			Activating:   entry.Activating,
			Deactivating: entry.Deactivating,
		})
	}

	return record
}

func stakesFromWire(fieldName string, record *wire.Stakes) (stakes *bank.Stakes, err error) {
	stakes = bank.NewStakes(record.Epoch)

	for _, entry := range record.VoteAccounts {
		pubkey, keyErr := pubkeyFromWire(fieldName+".vote_accounts.pubkey", entry.Pubkey)
		if keyErr != nil {
			return nil, keyErr
		}
		if _, exists := stakes.VoteAccounts[pubkey]; exists {
			return nil, malformed("%s.vote_accounts contains %s twice", fieldName, pubkey)
		}

		account, accountErr := accountFromWire(fieldName+".vote_accounts.vote_account", entry.VoteAccount)
		if accountErr != nil {
			return nil, accountErr
		}
		stakes.VoteAccounts[pubkey] = bank.VoteAccount{Stake: entry.Stake, Account: account}
	}

	for _, entry := range record.StakeDelegations {
		pubkey, keyErr := pubkeyFromWire(fieldName+".stake_delegations.pubkey", entry.Pubkey)
		if keyErr != nil {
			return nil, keyErr
		}
		if _, exists := stakes.Delegations[pubkey]; exists {
			return nil, malformed("%s.stake_delegations contains %s twice", fieldName, pubkey)
		}
		if entry.Delegation == nil {
			return nil, missing(fieldName + ".stake_delegations.delegation")
		}

		voterPubkey, voterErr := pubkeyFromWire(fieldName+".stake_delegations.delegation.voter_pubkey", entry.Delegation.VoterPubkey)
		if voterErr != nil {
			return nil, voterErr
		}
		stakes.Delegations[pubkey] = bank.Delegation{
			VoterPubkey:        voterPubkey,
			Stake:              entry.Delegation.Stake,
			ActivationEpoch:    entry.Delegation.ActivationEpoch,
			DeactivationEpoch:  entry.Delegation.DeactivationEpoch,
			WarmupCooldownRate: entry.Delegation.WarmupCooldownRate,
		}
	}

	for _, entry := range record.StakeHistory {
		if _, exists := stakes.History[entry.Epoch]; exists {
			return nil, malformed("%s.stake_history contains epoch %d twice", fieldName, entry.Epoch)
		}
		stakes.History[entry.Epoch] = bank.StakeHistoryEntry{
			Effective:    entry.Effective,
			Activating:   entry.Activating,
			Deactivating: entry.Deactivating,
		}
	}

	return stakes, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region EpochStakes //////////////////////////////////////////////////////////////////////////////////////////////////

func epochStakesToWire(epochStakes map[bank.Epoch]*bank.EpochStakes) (records []wire.EpochStake) {
	epochs := make([]bank.Epoch, 0, len(epochStakes))
	for epoch := range epochStakes {
		epochs = append(epochs, epoch)
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i] < epochs[j] })

	records = make([]wire.EpochStake, 0, len(epochs))
	for _, epoch := range epochs {
		stakesOfEpoch := epochStakes[epoch]
		record := wire.EpochStake{
			Epoch:                 epoch,
			TotalStake:            stakesOfEpoch.TotalStake,
			Stakes:                stakesToWire(stakesOfEpoch.Stakes),
			NodeIDsToVoteAccounts: make([]wire.NodeIDToVoteAccounts, 0, len(stakesOfEpoch.NodeIDToVoteAccounts)),
			EpochAuthorizedVoters: make([]wire.EpochAuthorizedVoter, 0, len(stakesOfEpoch.EpochAuthorizedVoters)),
		}

		nodeIDs := make([]bank.Pubkey, 0, len(stakesOfEpoch.NodeIDToVoteAccounts))
		for nodeID := range stakesOfEpoch.NodeIDToVoteAccounts {
			nodeIDs = append(nodeIDs, nodeID)
		}
		bank.SortPubkeys(nodeIDs)
		for _, nodeID := range nodeIDs {
			nodeVoteAccounts := stakesOfEpoch.NodeIDToVoteAccounts[nodeID]
			voteAccounts := make([][]byte, len(nodeVoteAccounts.VoteAccounts))
			for i, voteAccount := range nodeVoteAccounts.VoteAccounts {
				voteAccounts[i] = voteAccount.Bytes()
			}
			record.NodeIDsToVoteAccounts = append(record.NodeIDsToVoteAccounts, wire.NodeIDToVoteAccounts{
				NodeID:       nodeID.Bytes(),
				TotalStake:   nodeVoteAccounts.TotalStake,
				VoteAccounts: voteAccounts,
			})
		}

		voteAccounts := make([]bank.Pubkey, 0, len(stakesOfEpoch.EpochAuthorizedVoters))
		for voteAccount := range stakesOfEpoch.EpochAuthorizedVoters {
			voteAccounts = append(voteAccounts, voteAccount)
		}
		bank.SortPubkeys(voteAccounts)
		for _, voteAccount := range voteAccounts {
			record.EpochAuthorizedVoters = append(record.EpochAuthorizedVoters, wire.EpochAuthorizedVoter{
				VoteAccount:     voteAccount.Bytes(),
				AuthorizedVoter: stakesOfEpoch.EpochAuthorizedVoters[voteAccount].Bytes(),
			})
		}

		records = append(records, record)
	}

	return records
}

func epochStakesFromWire(records []wire.EpochStake) (epochStakes map[bank.Epoch]*bank.EpochStakes, err error) {
	epochStakes = make(map[bank.Epoch]*bank.EpochStakes, len(records))
	for _, record := range records {
		if _, exists := epochStakes[record.Epoch]; exists {
			return nil, malformed("bank.epoch_stakes contains epoch %d twice", record.Epoch)
		}

		if epochStakes[record.Epoch], err = epochStakeFromWire(record); err != nil {
			return nil, err
		}
	}

	return epochStakes, nil
}

func epochStakeFromWire(record wire.EpochStake) (epochStakes *bank.EpochStakes, err error) {
	fieldName := fmt.Sprintf("bank.epoch_stakes[%d]", record.Epoch)
	if record.Stakes == nil {
		return nil, missing(fieldName + ".stakes")
	}

	epochStakes = &bank.EpochStakes{
		TotalStake:            record.TotalStake,
		NodeIDToVoteAccounts:  make(map[bank.Pubkey]bank.NodeVoteAccounts, len(record.NodeIDsToVoteAccounts)),
		EpochAuthorizedVoters: make(map[bank.Pubkey]bank.Pubkey, len(record.EpochAuthorizedVoters)),
	}
	if epochStakes.Stakes, err = stakesFromWire(fieldName+".stakes", record.Stakes); err != nil {
		return nil, err
	}

	for _, nodeRecord := range record.NodeIDsToVoteAccounts {
		nodeID, keyErr := pubkeyFromWire(fieldName+".node_id_to_vote_accounts.node_id", nodeRecord.NodeID)
		if keyErr != nil {
			return nil, keyErr
		}
		if _, exists := epochStakes.NodeIDToVoteAccounts[nodeID]; exists {
			return nil, malformed("%s.node_id_to_vote_accounts contains %s twice", fieldName, nodeID)
		}

		nodeVoteAccounts := bank.NodeVoteAccounts{
			TotalStake:   nodeRecord.TotalStake,
			VoteAccounts: make([]bank.Pubkey, 0, len(nodeRecord.VoteAccounts)),
		}
		seen := make(map[bank.Pubkey]struct{}, len(nodeRecord.VoteAccounts))
		for _, voteAccountBytes := range nodeRecord.VoteAccounts {
			voteAccount, voteErr := pubkeyFromWire(fieldName+".node_id_to_vote_accounts.vote_accounts", voteAccountBytes)
			if voteErr != nil {
				return nil, voteErr
			}
			if _, exists := seen[voteAccount]; exists {
				return nil, malformed("%s.node_id_to_vote_accounts of %s lists %s twice", fieldName, nodeID, voteAccount)
			}
			seen[voteAccount] = struct{}{}
			nodeVoteAccounts.VoteAccounts = append(nodeVoteAccounts.VoteAccounts, voteAccount)
		}
		epochStakes.NodeIDToVoteAccounts[nodeID] = nodeVoteAccounts
	}

	for _, voterRecord := range record.EpochAuthorizedVoters {
		voteAccount, keyErr := pubkeyFromWire(fieldName+".epoch_authorized_voters.vote_account", voterRecord.VoteAccount)
		if keyErr != nil {
			return nil, keyErr
		}
		if _, exists := epochStakes.EpochAuthorizedVoters[voteAccount]; exists {
			return nil, malformed("%s.epoch_authorized_voters contains %s twice", fieldName, voteAccount)
		}

		authorizedVoter, voterErr := pubkeyFromWire(fieldName+".epoch_authorized_voters.authorized_voter", voterRecord.AuthorizedVoter)
		if voterErr != nil {
			return nil, voterErr
		}
		epochStakes.EpochAuthorizedVoters[voteAccount] = authorizedVoter
	}

	return epochStakes, nil
}

// sortedEpochs returns the epochs of the given stake history in ascending order.
func sortedEpochs(history map[bank.Epoch]bank.StakeHistoryEntry) (epochs []bank.Epoch) {
	epochs = make([]bank.Epoch, 0, len(history))
	for epoch := range history {
		epochs = append(epochs, epoch)
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i] < epochs[j] })

	return epochs
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
