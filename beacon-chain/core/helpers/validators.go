package helpers

import (
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/time/slots"
)

// IsActiveValidatorUsingTrie checks if a read only validator is active.
//
// Spec pseudocode definition:
//
//	def is_active_validator(validator: Validator, epoch: Epoch) -> bool:
//	  """
//	  Check if ``validator`` is active.
//	  """
//	  return validator.activation_epoch <= epoch < validator.exit_epoch
func IsActiveValidatorUsingTrie(validator state.ReadOnlyValidator, epoch primitives.Epoch) bool {
	return validator.ActivationEpoch() <= epoch && epoch < validator.ExitEpoch()
}

// IsEligibleForRewards reports whether a validator takes part in the flag reward and penalty
// accounting of the previous epoch.
//
// Spec pseudocode definition:
//
//	def get_eligible_validator_indices(state: BeaconState) -> Sequence[ValidatorIndex]:
//	  previous_epoch = get_previous_epoch(state)
//	  return [
//	      ValidatorIndex(index) for index, v in enumerate(state.validators)
//	      if is_active_validator(v, previous_epoch) or (v.slashed and previous_epoch + 1 < v.withdrawable_epoch)
//	  ]
func IsEligibleForRewards(validator state.ReadOnlyValidator, previousEpoch primitives.Epoch) bool {
	if IsActiveValidatorUsingTrie(validator, previousEpoch) {
		return true
	}
	return validator.Slashed() && uint64(previousEpoch)+1 < uint64(validator.WithdrawableEpoch())
}

// CurrentEpoch returns the current epoch number calculated from
// the slot number stored in beacon state.
//
// Spec pseudocode definition:
//
//	def get_current_epoch(state: BeaconState) -> Epoch:
//	  """
//	  Return the current epoch.
//	  """
//	  return compute_epoch_at_slot(state.slot)
func CurrentEpoch(st state.ReadOnlyBeaconState, cfg *params.BeaconChainConfig) primitives.Epoch {
	return slots.ToEpoch(st.Slot(), cfg.SlotsPerEpoch)
}

// PrevEpoch returns the previous epoch number calculated from
// the slot number stored in beacon state. It also checks for
// underflow condition.
//
// Spec pseudocode definition:
//
//	def get_previous_epoch(state: BeaconState) -> Epoch:
//	  """
//	  Return the previous epoch (unless the current epoch is ``GENESIS_EPOCH``).
//	  """
//	  current_epoch = get_current_epoch(state)
//	  return GENESIS_EPOCH if current_epoch == GENESIS_EPOCH else Epoch(current_epoch - 1)
func PrevEpoch(st state.ReadOnlyBeaconState, cfg *params.BeaconChainConfig) primitives.Epoch {
	currentEpoch := CurrentEpoch(st, cfg)
	if currentEpoch == cfg.GenesisEpoch {
		return cfg.GenesisEpoch
	}
	return currentEpoch - 1
}
