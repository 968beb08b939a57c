// Package slots converts between slots and epochs.
package slots

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/prysm-rewards/math"
)

// ToEpoch returns the epoch number of the input slot.
//
// Spec pseudocode definition:
//
//	def compute_epoch_at_slot(slot: Slot) -> Epoch:
//	  """
//	  Return the epoch number at ``slot``.
//	  """
//	  return Epoch(slot // SLOTS_PER_EPOCH)
func ToEpoch(slot, slotsPerEpoch primitives.Slot) primitives.Epoch {
	return primitives.Epoch(slot.DivSlot(slotsPerEpoch))
}

// EpochStart returns the first slot number of the
// current epoch.
//
// Spec pseudocode definition:
//
//	def compute_start_slot_at_epoch(epoch: Epoch) -> Slot:
//	  """
//	  Return the start slot of ``epoch``.
//	  """
//	  return Slot(epoch * SLOTS_PER_EPOCH)
func EpochStart(epoch primitives.Epoch, slotsPerEpoch primitives.Slot) (primitives.Slot, error) {
	slot, err := mathutil.Mul64(uint64(slotsPerEpoch), uint64(epoch))
	if err != nil {
		return 0, errors.Errorf("start slot calculation overflows: %v", err)
	}
	return primitives.Slot(slot), nil
}

// EpochEnd returns the last slot number of the
// current epoch.
func EpochEnd(epoch primitives.Epoch, slotsPerEpoch primitives.Slot) (primitives.Slot, error) {
	if epoch == primitives.Epoch(^uint64(0)) {
		return 0, errors.New("start slot calculation overflows")
	}
	slot, err := EpochStart(epoch+1, slotsPerEpoch)
	if err != nil {
		return 0, err
	}
	return slot - 1, nil
}
