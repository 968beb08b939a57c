package kv

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/prysmaticlabs/prysm-rewards/testing/util"
)

func TestStore_StateCRUD(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	st := util.NewBeaconStateAltairT(t, util.WithValidators(3, 32e9), util.WithSyncCommittee(2, 0), func(s *ethpb.BeaconState) error {
		s.Slot = 70
		s.PreviousEpochParticipation = []byte{7, 3, 0}
		s.InactivityScores = []uint64{0, 4, 9}
		return nil
	})
	root := bytesutil.ToBytes32(util.Root(70, 0x57))

	got, err := db.State(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, nil, got, "Expected nil state")
	has, err := db.HasState(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, false, has)

	require.NoError(t, db.SaveState(ctx, st, root))
	has, err = db.HasState(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, true, has)
	db.stateCache.Purge()

	got, err = db.State(ctx, root)
	require.NoError(t, err)
	assert.DeepEqual(t, st.ToProto(), got.ToProto())
	idx, ok := got.ValidatorIndexByPubkey(bytesutil.ToBytes48(util.DeterministicPubkey(2)))
	assert.Equal(t, true, ok)
	assert.Equal(t, 2, int(idx))

	slotRoot, ok, err := db.StateRootAtSlot(ctx, 70)
	require.NoError(t, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, root, slotRoot)

	require.NoError(t, db.DeleteState(ctx, root))
	has, err = db.HasState(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, false, has)
	_, ok, err = db.StateRootAtSlot(ctx, 70)
	require.NoError(t, err)
	assert.Equal(t, false, ok)
}

func TestStore_SaveState_Nil(t *testing.T) {
	db := setupDB(t)
	err := db.SaveState(context.Background(), nil, [32]byte{})
	require.ErrorContains(t, "nil state", err)
}
