package altair

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/math"
)

// ErrZeroActiveBalance is returned when base rewards are requested for a zero total active balance.
var ErrZeroActiveBalance = errors.New("active balance can't be 0")

// BaseRewardForBalance scales the per increment base reward to an effective balance.
func BaseRewardForBalance(effectiveBalance, perIncrement uint64, cfg *params.BeaconChainConfig) (uint64, error) {
	increments, err := math.Div64(effectiveBalance, cfg.EffectiveBalanceIncrement)
	if err != nil {
		return 0, err
	}
	return math.Mul64(increments, perIncrement)
}

// BaseRewardPerIncrement of the beacon state
//
// Spec code:
//
//	def get_base_reward_per_increment(state: BeaconState) -> Gwei:
//	  return Gwei(EFFECTIVE_BALANCE_INCREMENT * BASE_REWARD_FACTOR // integer_squareroot(get_total_active_balance(state)))
func BaseRewardPerIncrement(activeBalance uint64, cfg *params.BeaconChainConfig) (uint64, error) {
	if activeBalance == 0 {
		return 0, ErrZeroActiveBalance
	}
	numerator, err := math.Mul64(cfg.EffectiveBalanceIncrement, cfg.BaseRewardFactor)
	if err != nil {
		return 0, err
	}
	return math.Div64(numerator, math.IntegerSquareRoot(activeBalance))
}

// InactivityPenalty returns the extra penalty applied to an eligible validator that missed the
// timely target flag, scaled by its inactivity score.
//
// Spec code:
//
//	def get_inactivity_penalty_deltas(state: BeaconState) -> Tuple[Sequence[Gwei], Sequence[Gwei]]:
//	  ...
//	  for index in get_eligible_validator_indices(state):
//	      if index not in matching_target_indices:
//	          penalty_numerator = state.validators[index].effective_balance * state.inactivity_scores[index]
//	          penalty_denominator = config.INACTIVITY_SCORE_BIAS * INACTIVITY_PENALTY_QUOTIENT_BELLATRIX
//	          penalties[index] += Gwei(penalty_numerator // penalty_denominator)
func InactivityPenalty(effectiveBalance, inactivityScore uint64, stateVersion int, cfg *params.BeaconChainConfig) (uint64, error) {
	numerator, err := math.Mul64(effectiveBalance, inactivityScore)
	if err != nil {
		return 0, errors.Wrap(err, "could not compute penalty numerator")
	}
	denominator, err := math.Mul64(cfg.InactivityScoreBias, cfg.InactivityPenaltyQuotientForVersion(stateVersion))
	if err != nil {
		return 0, errors.Wrap(err, "could not compute penalty denominator")
	}
	return math.Div64(numerator, denominator)
}
