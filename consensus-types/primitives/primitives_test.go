package primitives_test

import (
	"math"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/prysm-rewards/math"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
)

func TestEpoch_SafeArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		fn      func() (primitives.Epoch, error)
		want    primitives.Epoch
		wantErr error
	}{
		{
			name: "add",
			fn:   func() (primitives.Epoch, error) { return primitives.Epoch(5).SafeAdd(3) },
			want: 8,
		},
		{
			name:    "add overflow",
			fn:      func() (primitives.Epoch, error) { return primitives.Epoch(math.MaxUint64).SafeAdd(1) },
			wantErr: mathutil.ErrAddOverflow,
		},
		{
			name:    "sub underflow",
			fn:      func() (primitives.Epoch, error) { return primitives.Epoch(0).SafeSub(1) },
			wantErr: mathutil.ErrSubUnderflow,
		},
		{
			name: "mul",
			fn:   func() (primitives.Epoch, error) { return primitives.Epoch(4).SafeMul(32) },
			want: 128,
		},
		{
			name:    "mul overflow",
			fn:      func() (primitives.Epoch, error) { return primitives.Epoch(math.MaxUint64).SafeMul(2) },
			wantErr: mathutil.ErrMulOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEpoch_AddPanicsOnOverflow(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	primitives.Epoch(math.MaxUint64).Add(1)
}

func TestSlot_DivAndMod(t *testing.T) {
	assert.Equal(t, primitives.Slot(3), primitives.Slot(97).DivSlot(32))
	assert.Equal(t, primitives.Slot(1), primitives.Slot(97).ModSlot(32))
	assert.Equal(t, "97", primitives.Slot(97).String())
}
