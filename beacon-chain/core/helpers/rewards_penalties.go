package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/prysm-rewards/math"
)

// TotalBalance returns the total amount at stake in Gwei
// of input validators.
//
// Spec pseudocode definition:
//
//	def get_total_balance(state: BeaconState, indices: Set[ValidatorIndex]) -> Gwei:
//	  """
//	  Return the combined effective balance of the ``indices``.
//	  ``EFFECTIVE_BALANCE_INCREMENT`` Gwei minimum to avoid divisions by zero.
//	  Math safe up to ~10B ETH, after which this overflows uint64.
//	  """
//	  return Gwei(max(EFFECTIVE_BALANCE_INCREMENT, sum([state.validators[index].effective_balance for index in indices])))
func TotalBalance(st state.ReadOnlyValidators, indices []primitives.ValidatorIndex, cfg *params.BeaconChainConfig) (uint64, error) {
	total := uint64(0)
	for _, idx := range indices {
		val, err := st.ValidatorAtIndexReadOnly(idx)
		if err != nil {
			return 0, err
		}
		total, err = mathutil.Add64(total, val.EffectiveBalance())
		if err != nil {
			return 0, errors.Wrap(err, "could not sum effective balances")
		}
	}
	return mathutil.Max(cfg.EffectiveBalanceIncrement, total), nil
}

// TotalActiveBalance returns the total amount at stake in Gwei
// of active validators.
//
// Spec pseudocode definition:
//
//	def get_total_active_balance(state: BeaconState) -> Gwei:
//	  """
//	  Return the combined effective balance of the active validators.
//	  Note: ``get_total_balance`` returns ``EFFECTIVE_BALANCE_INCREMENT`` Gwei minimum to avoid divisions by zero.
//	  """
//	  return get_total_balance(state, set(get_active_validator_indices(state, get_current_epoch(state))))
func TotalActiveBalance(st state.ReadOnlyBeaconState, cfg *params.BeaconChainConfig) (uint64, error) {
	total := uint64(0)
	epoch := CurrentEpoch(st, cfg)
	if err := st.ReadFromEveryValidator(func(idx int, val state.ReadOnlyValidator) error {
		if !IsActiveValidatorUsingTrie(val, epoch) {
			return nil
		}
		var err error
		total, err = mathutil.Add64(total, val.EffectiveBalance())
		return err
	}); err != nil {
		return 0, errors.Wrap(err, "could not sum active balances")
	}
	return mathutil.Max(cfg.EffectiveBalanceIncrement, total), nil
}

// FinalityDelay returns the finality delay using the beacon state.
//
// Spec code:
//
//	def get_finality_delay(state: BeaconState) -> uint64:
//	  return get_previous_epoch(state) - state.finalized_checkpoint.epoch
func FinalityDelay(prevEpoch, finalizedEpoch primitives.Epoch) primitives.Epoch {
	if prevEpoch < finalizedEpoch {
		return 0
	}
	return prevEpoch - finalizedEpoch
}

// IsInInactivityLeak returns true if the state is experiencing inactivity leak.
//
// Spec code:
//
//	def is_in_inactivity_leak(state: BeaconState) -> bool:
//	  return get_finality_delay(state) > MIN_EPOCHS_TO_INACTIVITY_PENALTY
func IsInInactivityLeak(prevEpoch, finalizedEpoch primitives.Epoch, cfg *params.BeaconChainConfig) bool {
	return FinalityDelay(prevEpoch, finalizedEpoch) > cfg.MinEpochsToInactivityPenalty
}
