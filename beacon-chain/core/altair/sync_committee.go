package altair

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/math"
)

// SyncRewards returns the proposer reward and the sync participant reward given the total active balance in state.
//
// Spec code:
//
//	# Compute participant and proposer rewards
//	total_active_increments = get_total_active_balance(state) // EFFECTIVE_BALANCE_INCREMENT
//	total_base_rewards = Gwei(get_base_reward_per_increment(state) * total_active_increments)
//	max_participant_rewards = Gwei(total_base_rewards * SYNC_REWARD_WEIGHT // WEIGHT_DENOMINATOR // SLOTS_PER_EPOCH)
//	participant_reward = Gwei(max_participant_rewards // SYNC_COMMITTEE_SIZE)
//	proposer_reward = Gwei(participant_reward * PROPOSER_WEIGHT // (WEIGHT_DENOMINATOR - PROPOSER_WEIGHT))
func SyncRewards(activeBalance uint64, cfg *params.BeaconChainConfig) (proposerReward, participantReward uint64, err error) {
	totalActiveIncrements, err := math.Div64(activeBalance, cfg.EffectiveBalanceIncrement)
	if err != nil {
		return 0, 0, err
	}
	baseRewardPerInc, err := BaseRewardPerIncrement(activeBalance, cfg)
	if err != nil {
		return 0, 0, err
	}
	totalBaseRewards, err := math.Mul64(baseRewardPerInc, totalActiveIncrements)
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not compute total base rewards")
	}
	maxParticipantRewards, err := math.Mul64(totalBaseRewards, cfg.SyncRewardWeight)
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not compute max participant rewards")
	}
	if maxParticipantRewards, err = math.Div64(maxParticipantRewards, cfg.WeightDenominator); err != nil {
		return 0, 0, err
	}
	if maxParticipantRewards, err = math.Div64(maxParticipantRewards, uint64(cfg.SlotsPerEpoch)); err != nil {
		return 0, 0, err
	}
	if participantReward, err = math.Div64(maxParticipantRewards, cfg.SyncCommitteeSize); err != nil {
		return 0, 0, err
	}
	proposerNumerator, err := math.Mul64(participantReward, cfg.ProposerWeight)
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not compute proposer reward")
	}
	proposerDenominator, err := math.Sub64(cfg.WeightDenominator, cfg.ProposerWeight)
	if err != nil {
		return 0, 0, err
	}
	if proposerReward, err = math.Div64(proposerNumerator, proposerDenominator); err != nil {
		return 0, 0, err
	}
	return proposerReward, participantReward, nil
}
