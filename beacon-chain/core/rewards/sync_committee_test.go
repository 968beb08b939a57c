package rewards_test

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/rewards"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/prysmaticlabs/prysm-rewards/testing/util"
)

func bitlist(bits ...bool) bitfield.Bitlist {
	bl := bitfield.NewBitlist(uint64(len(bits)))
	for i, b := range bits {
		bl.SetBitAt(uint64(i), b)
	}
	return bl
}

func TestSyncCommitteeRewards_TwoMembers(t *testing.T) {
	st := util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9), util.WithSyncCommittee(0, 1))

	got, err := rewards.SyncCommitteeRewards(st, bitlist(true, false), 10, nil)
	require.NoError(t, err)
	want := []rewards.SyncCommitteeReward{
		{ValidatorIndex: 0, Reward: 10},
		{ValidatorIndex: 1, Reward: -10},
	}
	assert.DeepEqual(t, want, got)
}

func TestSyncCommitteeRewards_SignsAndMagnitude(t *testing.T) {
	committee := []uint64{4, 2, 7, 0, 5, 1, 6, 3}
	bits := []bool{true, true, false, true, false, false, true, true}
	st := util.NewBeaconStateAltairT(t, util.WithValidators(8, 32e9), util.WithSyncCommittee(committee...))

	got, err := rewards.SyncCommitteeRewards(st, bitlist(bits...), 174, rewards.NewValidatorFilter(nil, nil))
	require.NoError(t, err)
	require.Equal(t, len(committee), len(got))
	var sum int64
	for i, r := range got {
		assert.Equal(t, primitives.ValidatorIndex(committee[i]), r.ValidatorIndex)
		assert.Equal(t, bits[i], r.Reward > 0, "seat %d", i)
		if r.Reward < 0 {
			sum -= r.Reward
		} else {
			sum += r.Reward
		}
	}
	assert.Equal(t, int64(174*len(committee)), sum)
}

func TestSyncCommitteeRewards_Filter(t *testing.T) {
	committee := []uint64{4, 2, 7, 0, 5, 1, 6, 3}
	st := util.NewBeaconStateAltairT(t, util.WithValidators(8, 32e9), util.WithSyncCommittee(committee...))
	bits := bitlist(true, false, true, false, true, false, true, false)

	byIndex := rewards.NewValidatorFilter([]primitives.ValidatorIndex{0, 7, 4}, nil)
	got, err := rewards.SyncCommitteeRewards(st, bits, 10, byIndex)
	require.NoError(t, err)
	want := []rewards.SyncCommitteeReward{
		{ValidatorIndex: 4, Reward: 10},
		{ValidatorIndex: 7, Reward: 10},
		{ValidatorIndex: 0, Reward: -10},
	}
	assert.DeepEqual(t, want, got)

	pk := bytesutil.ToBytes48(util.DeterministicPubkey(2))
	byKey := rewards.NewValidatorFilter([]primitives.ValidatorIndex{3}, [][fieldparams.BLSPubkeyLength]byte{pk})
	got, err = rewards.SyncCommitteeRewards(st, bits, 10, byKey)
	require.NoError(t, err)
	want = []rewards.SyncCommitteeReward{
		{ValidatorIndex: 2, Reward: -10},
		{ValidatorIndex: 3, Reward: -10},
	}
	assert.DeepEqual(t, want, got)
}

func TestSyncCommitteeRewards_DuplicateSeats(t *testing.T) {
	st := util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9), util.WithSyncCommittee(1, 1, 0))

	got, err := rewards.SyncCommitteeRewards(st, bitlist(true, false, true), 5, nil)
	require.NoError(t, err)
	want := []rewards.SyncCommitteeReward{
		{ValidatorIndex: 1, Reward: 5},
		{ValidatorIndex: 1, Reward: -5},
		{ValidatorIndex: 0, Reward: 5},
	}
	assert.DeepEqual(t, want, got)
}

func TestSyncCommitteeRewards_EmptyCommittee(t *testing.T) {
	st := util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9))

	got, err := rewards.SyncCommitteeRewards(st, bitfield.NewBitvector512(), 10, nil)
	require.NoError(t, err)
	assert.DeepEqual(t, []rewards.SyncCommitteeReward(nil), got)
}

func TestSyncCommitteeRewards_Errors(t *testing.T) {
	tests := []struct {
		name    string
		st      func(t *testing.T) rewards.SyncCommitteeState
		bits    bitfield.Bitfield
		reward  uint64
		wantErr error
		wantMsg string
	}{
		{
			name: "bit count mismatch",
			st: func(t *testing.T) rewards.SyncCommitteeState {
				return util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9), util.WithSyncCommittee(0, 1))
			},
			bits:    bitfield.NewBitvector512(),
			reward:  10,
			wantErr: rewards.ErrInvalid,
			wantMsg: "sync aggregate has 512 bits, sync committee has 2 members",
		},
		{
			name: "nil bits",
			st: func(t *testing.T) rewards.SyncCommitteeState {
				return util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9), util.WithSyncCommittee(0, 1))
			},
			reward:  10,
			wantErr: rewards.ErrInvalid,
			wantMsg: "sync aggregate has 0 bits",
		},
		{
			name: "unknown member",
			st: func(t *testing.T) rewards.SyncCommitteeState {
				return util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9), func(s *ethpb.BeaconState) error {
					s.CurrentSyncCommittee = &ethpb.SyncCommittee{Pubkeys: [][]byte{
						util.DeterministicPubkey(0),
						util.DeterministicPubkey(99),
					}}
					return nil
				})
			},
			bits:    bitlist(true, true),
			reward:  10,
			wantErr: rewards.ErrInvalid,
			wantMsg: "is not a known validator",
		},
		{
			name: "reward overflows signed value",
			st: func(t *testing.T) rewards.SyncCommitteeState {
				return util.NewBeaconStateAltairT(t, util.WithValidators(2, 32e9), util.WithSyncCommittee(0, 1))
			},
			bits:    bitlist(true, true),
			reward:  1 << 63,
			wantErr: rewards.ErrArithmetic,
			wantMsg: "participant reward",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rewards.SyncCommitteeRewards(tt.st(t), tt.bits, tt.reward, nil)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorContains(t, tt.wantMsg, err)
			assert.DeepEqual(t, []rewards.SyncCommitteeReward(nil), got)
		})
	}
}
