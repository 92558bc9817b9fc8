package snapshot

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/snapshot/wire"
)

// epochRewardsToWire converts the EpochRewardStatus into its record. An inactive status has no record.
func epochRewardsToWire(status bank.EpochRewardStatus) (record *wire.EpochRewards, err error) {
	switch typedStatus := status.(type) {
	case nil, bank.EpochRewardStatusInactive:
		return nil, nil
	case bank.EpochRewardStatusActive:
		record = &wire.EpochRewards{
			StartBlockHeight:  typedStatus.StartBlockHeight,
			EpochStakeRewards: make([]wire.EpochStakeReward, 0, len(typedStatus.Rewards)),
		}
		for _, reward := range typedStatus.Rewards {
			rewardInfo, rewardErr := rewardInfoToWire(reward.RewardInfo)
			if rewardErr != nil {
				return nil, errors.Wrapf(rewardErr, "failed to encode reward of %s", reward.StakePubkey)
			}

			record.EpochStakeRewards = append(record.EpochStakeRewards, wire.EpochStakeReward{
				StakePubkey:     reward.StakePubkey.Bytes(),
				StakeAccount:    accountToWire(reward.StakeAccount),
				StakeRewardInfo: rewardInfo,
			})
		}

		return record, nil
	default:
		return nil, errors.Errorf("unknown epoch reward status %T", status)
	}
}

// epochRewardsFromWire converts a record into an EpochRewardStatus. A missing record is an inactive status.
func epochRewardsFromWire(record *wire.EpochRewards) (status bank.EpochRewardStatus, err error) {
	if record == nil {
		return bank.EpochRewardStatusInactive{}, nil
	}

	active := bank.EpochRewardStatusActive{StartBlockHeight: record.StartBlockHeight}
	if len(record.EpochStakeRewards) > 0 {
		active.Rewards = make([]bank.StakeReward, 0, len(record.EpochStakeRewards))
	}
	for _, rewardRecord := range record.EpochStakeRewards {
		reward := bank.StakeReward{}
		if reward.StakePubkey, err = pubkeyFromWire("bank.epoch_rewards.stake_pubkey", rewardRecord.StakePubkey); err != nil {
			return nil, err
		}
		if reward.StakeAccount, err = accountFromWire("bank.epoch_rewards.stake_account", rewardRecord.StakeAccount); err != nil {
			return nil, err
		}
		if rewardRecord.StakeRewardInfo == nil {
			return nil, missing("bank.epoch_rewards.stake_reward_info")
		}
		if reward.RewardInfo, err = rewardInfoFromWire(rewardRecord.StakeRewardInfo); err != nil {
			return nil, err
		}

		active.Rewards = append(active.Rewards, reward)
	}

	return active, nil
}

func rewardInfoToWire(rewardInfo bank.RewardInfo) (record *wire.RewardInfo, err error) {
	record = &wire.RewardInfo{
		RewardKind:  uint32(rewardInfo.Kind),
		PostBalance: rewardInfo.PostBalance,
	}
	if record.Lamports, err = lamportsToWire(rewardInfo.Lamports); err != nil {
		return nil, err
	}
	if rewardInfo.Commission != nil {
		commission := uint32(*rewardInfo.Commission)
		record.Commission = &commission
	}

	return record, nil
}

func rewardInfoFromWire(record *wire.RewardInfo) (rewardInfo bank.RewardInfo, err error) {
	if record.RewardKind > math.MaxUint8 || !bank.RewardKind(record.RewardKind).IsValid() {
		return rewardInfo, malformed("bank.epoch_rewards.stake_reward_info.reward_kind %d is unknown", record.RewardKind)
	}
	rewardInfo.Kind = bank.RewardKind(record.RewardKind)
	rewardInfo.PostBalance = record.PostBalance

	if rewardInfo.Lamports, err = lamportsFromWire(record.Lamports); err != nil {
		return rewardInfo, err
	}

	if record.Commission != nil {
		if *record.Commission > math.MaxUint8 {
			return rewardInfo, malformed("bank.epoch_rewards.stake_reward_info.commission %d exceeds %d", *record.Commission, math.MaxUint8)
		}
		commission := uint8(*record.Commission)
		rewardInfo.Commission = &commission
	}

	return rewardInfo, nil
}
