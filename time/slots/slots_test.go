package slots_test

import (
	"math"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/prysmaticlabs/prysm-rewards/time/slots"
)

func TestToEpoch(t *testing.T) {
	tests := []struct {
		slot  primitives.Slot
		epoch primitives.Epoch
	}{
		{slot: 0, epoch: 0},
		{slot: 31, epoch: 0},
		{slot: 32, epoch: 1},
		{slot: 200, epoch: 6},
		{slot: 1 << 32, epoch: 1 << 27},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.epoch, slots.ToEpoch(tt.slot, 32), "ToEpoch(%d)", tt.slot)
	}
}

func TestEpochStartAndEnd(t *testing.T) {
	start, err := slots.EpochStart(3, 32)
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(96), start)

	end, err := slots.EpochEnd(3, 32)
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(127), end)

	end, err = slots.EpochEnd(0, 8)
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(7), end)

	_, err = slots.EpochStart(math.MaxUint64, 32)
	require.ErrorContains(t, "start slot calculation overflows", err)
	_, err = slots.EpochEnd(math.MaxUint64, 32)
	require.ErrorContains(t, "start slot calculation overflows", err)
}
