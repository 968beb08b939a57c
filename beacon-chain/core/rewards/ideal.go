package rewards

import (
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/altair"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/math"
)

// IdealRewards builds the ideal reward table of the previous epoch, one row per effective balance
// bucket from 0 up to maxEffectiveBalance in steps of one increment.
//
// Spec code:
//
//	def get_flag_index_deltas(state: BeaconState, flag_index: int) -> Tuple[Sequence[Gwei], Sequence[Gwei]]:
//	  ...
//	  unslashed_participating_balance = get_total_balance(state, unslashed_participating_indices)
//	  unslashed_participating_increments = unslashed_participating_balance // EFFECTIVE_BALANCE_INCREMENT
//	  active_increments = get_total_active_balance(state) // EFFECTIVE_BALANCE_INCREMENT
//	  for index in get_eligible_validator_indices(state):
//	      base_reward = get_base_reward(state, index)
//	      if index in unslashed_participating_indices:
//	          if not is_in_inactivity_leak(state):
//	              reward_numerator = base_reward * weight * unslashed_participating_increments
//	              rewards[index] += Gwei(reward_numerator // (active_increments * WEIGHT_DENOMINATOR))
func IdealRewards(p ParticipationSource, maxEffectiveBalance uint64, cfg *params.BeaconChainConfig) ([]IdealReward, error) {
	totalActive := p.TotalActiveBalance()
	perIncrement, err := altair.BaseRewardPerIncrement(totalActive, cfg)
	if err != nil {
		return nil, ArithmeticError(err, "could not compute base reward per increment")
	}
	activeIncrements, err := math.Div64(totalActive, cfg.EffectiveBalanceIncrement)
	if err != nil {
		return nil, ArithmeticError(err, "could not compute active increments")
	}
	denominator, err := math.Mul64(activeIncrements, cfg.WeightDenominator)
	if err != nil {
		return nil, ArithmeticError(err, "could not compute reward denominator")
	}
	buckets, err := math.Div64(maxEffectiveBalance, cfg.EffectiveBalanceIncrement)
	if err != nil {
		return nil, ArithmeticError(err, "could not compute balance buckets")
	}

	table := make([]IdealReward, buckets+1)
	for b := range table {
		table[b].EffectiveBalance = uint64(b) * cfg.EffectiveBalanceIncrement
	}
	for _, flag := range altair.ParticipationFlags {
		weight, err := flag.Weight(cfg)
		if err != nil {
			return nil, InvalidError(err, "unknown participation flag")
		}
		balance, err := p.UnslashedParticipatingBalance(flag)
		if err != nil {
			return nil, InvalidError(err, "could not get %s participating balance", flag)
		}
		unslashedIncrements, err := math.Div64(balance, cfg.EffectiveBalanceIncrement)
		if err != nil {
			return nil, ArithmeticError(err, "could not compute %s participating increments", flag)
		}
		for b := range table {
			reward, err := idealFlagReward(uint64(b), perIncrement, weight, unslashedIncrements, denominator)
			if err != nil {
				return nil, ArithmeticError(err, "could not compute ideal %s reward for %d increments", flag, b)
			}
			if p.InInactivityLeak() {
				reward = 0
			}
			switch flag {
			case altair.Source:
				table[b].Source = reward
			case altair.Target:
				table[b].Target = reward
			case altair.Head:
				table[b].Head = reward
			}
		}
	}
	return table, nil
}

func idealFlagReward(increments, perIncrement, weight, unslashedIncrements, denominator uint64) (uint64, error) {
	baseReward, err := math.Mul64(increments, perIncrement)
	if err != nil {
		return 0, err
	}
	numerator, err := math.Mul64(baseReward, weight)
	if err != nil {
		return 0, err
	}
	if numerator, err = math.Mul64(numerator, unslashedIncrements); err != nil {
		return 0, err
	}
	return math.Div64(numerator, denominator)
}
