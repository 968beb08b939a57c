package altair_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/altair"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/prysmaticlabs/prysm-rewards/testing/util"
)

func TestNewParticipationCache(t *testing.T) {
	cfg := params.MainnetConfig()
	st := util.NewBeaconStateAltairT(t, util.WithValidators(4, 32e9), func(s *ethpb.BeaconState) error {
		s.PreviousEpochParticipation = []byte{0b111, 0b011, 0b001, 0b000}
		s.Validators[1].Slashed = true
		return nil
	})

	c, err := altair.NewParticipationCache(context.Background(), st, cfg)
	require.NoError(t, err)
	assert.Equal(t, primitives.Epoch(0), c.PrevEpoch())
	assert.Equal(t, false, c.InInactivityLeak())
	assert.Equal(t, 4, c.NumValidators())
	assert.Equal(t, uint64(128e9), c.TotalActiveBalance())

	wantBalances := map[altair.ParticipationFlag]uint64{
		altair.Source: 64e9,
		altair.Target: 32e9,
		altair.Head:   32e9,
	}
	for flag, want := range wantBalances {
		got, err := c.UnslashedParticipatingBalance(flag)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%s balance", flag)
	}

	wantSource := []bool{true, false, true, false}
	wantHead := []bool{true, false, false, false}
	for i := range wantSource {
		v, err := c.Validator(primitives.ValidatorIndex(i))
		require.NoError(t, err)
		assert.Equal(t, wantSource[i], v.IsPrevEpochSourceAttester, "source of validator %d", i)
		assert.Equal(t, wantHead[i], v.IsPrevEpochHeadAttester, "head of validator %d", i)
	}

	v, err := c.Validator(1)
	require.NoError(t, err)
	assert.Equal(t, false, v.IsPrevEpochTargetAttester, "slashed validator must not count as participating")
	assert.Equal(t, true, v.IsEligible)
}

func TestNewParticipationCache_ClampsToIncrement(t *testing.T) {
	cfg := params.MainnetConfig()
	st := util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9))

	c, err := altair.NewParticipationCache(context.Background(), st, cfg)
	require.NoError(t, err)
	for _, flag := range altair.ParticipationFlags {
		got, err := c.UnslashedParticipatingBalance(flag)
		require.NoError(t, err)
		assert.Equal(t, cfg.EffectiveBalanceIncrement, got, "%s balance", flag)
	}

	empty := util.NewBeaconStateAltairT(t)
	c, err = altair.NewParticipationCache(context.Background(), empty, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.EffectiveBalanceIncrement, c.TotalActiveBalance())
}

func TestNewParticipationCache_InactivityLeak(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		name      string
		finalized primitives.Epoch
		want      bool
	}{
		{name: "finality far behind", finalized: 0, want: true},
		{name: "finality within bound", finalized: 5, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := util.NewBeaconStateAltairT(t, util.WithValidators(1, 32e9), func(s *ethpb.BeaconState) error {
				s.Slot = 10 * cfg.SlotsPerEpoch
				s.FinalizedCheckpoint.Epoch = tt.finalized
				return nil
			})
			c, err := altair.NewParticipationCache(context.Background(), st, cfg)
			require.NoError(t, err)
			assert.Equal(t, primitives.Epoch(9), c.PrevEpoch())
			assert.Equal(t, tt.want, c.InInactivityLeak())
		})
	}
}

func TestNewParticipationCache_Eligibility(t *testing.T) {
	cfg := params.MainnetConfig()
	st := util.NewBeaconStateAltairT(t, util.WithValidators(4, 32e9), func(s *ethpb.BeaconState) error {
		s.Slot = 10 * cfg.SlotsPerEpoch
		s.FinalizedCheckpoint.Epoch = 8
		// Exited long ago.
		s.Validators[1].ExitEpoch = 5
		s.Validators[1].WithdrawableEpoch = 20
		// Slashed and exited, still before withdrawable.
		s.Validators[2].ExitEpoch = 5
		s.Validators[2].Slashed = true
		s.Validators[2].WithdrawableEpoch = 20
		// Not yet activated.
		s.Validators[3].ActivationEpoch = 12
		s.InactivityScores[0] = 7
		return nil
	})
	c, err := altair.NewParticipationCache(context.Background(), st, cfg)
	require.NoError(t, err)

	want := []bool{true, false, true, false}
	for i, w := range want {
		v, err := c.Validator(primitives.ValidatorIndex(i))
		require.NoError(t, err)
		assert.Equal(t, w, v.IsEligible, "validator %d", i)
	}
	assert.Equal(t, uint64(32e9), c.TotalActiveBalance())

	_, err = c.Validator(4)
	require.ErrorContains(t, "validator index 4 out of range", err)
}

func TestNewParticipationCache_InactivityScores(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		name      string
		slot      primitives.Slot
		finalized primitives.Epoch
		want      []uint64
	}{
		{
			// Missed target adds the bias, hitting it removes one, both then recover.
			name:      "no leak",
			slot:      10 * cfg.SlotsPerEpoch,
			finalized: 8,
			want:      []uint64{3, 0, 24, 0, 30},
		},
		{
			name:      "leak",
			slot:      10 * cfg.SlotsPerEpoch,
			finalized: 0,
			want:      []uint64{19, 0, 40, 4, 30},
		},
		{
			name: "genesis epoch",
			slot: 1,
			want: []uint64{20, 0, 36, 0, 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := util.NewBeaconStateAltairT(t, util.WithValidators(5, 32e9), func(s *ethpb.BeaconState) error {
				s.Slot = tt.slot
				s.FinalizedCheckpoint.Epoch = tt.finalized
				s.PreviousEpochParticipation = []byte{0b011, 0b011, 0b001, 0b000, 0b000}
				s.InactivityScores = []uint64{20, 0, 36, 0, 30}
				// Not yet active, so its score is left alone.
				s.Validators[4].ActivationEpoch = 100
				return nil
			})
			c, err := altair.NewParticipationCache(context.Background(), st, cfg)
			require.NoError(t, err)
			for i, w := range tt.want {
				v, err := c.Validator(primitives.ValidatorIndex(i))
				require.NoError(t, err)
				assert.Equal(t, w, v.InactivityScore, "validator %d", i)
			}
			scores, err := st.InactivityScores()
			require.NoError(t, err)
			assert.DeepEqual(t, []uint64{20, 0, 36, 0, 30}, scores, "state scores must not change")
		})
	}
}

func TestNewParticipationCache_CanceledContext(t *testing.T) {
	st := util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := altair.NewParticipationCache(ctx, st, params.MainnetConfig())
	require.ErrorIs(t, err, context.Canceled)
}
