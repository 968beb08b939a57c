package lookup

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db"
	dbtest "github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/testing"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/blocks"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/prysmaticlabs/prysm-rewards/testing/util"
)

// fillChain saves a block and a post-state for every given slot. The last slot becomes the head.
func fillChain(t *testing.T, beaconDB db.Database, slots ...primitives.Slot) {
	ctx := context.Background()
	for _, slot := range slots {
		pb := util.NewBeaconBlockAltair(slot, 512)
		blk, err := blocks.NewSignedBeaconBlock(pb)
		require.NoError(t, err)
		require.NoError(t, beaconDB.SaveBlock(ctx, blk))
		st := util.NewBeaconStateAltairT(t, util.WithValidators(4, 32e9), func(s *ethpb.BeaconState) error {
			s.Slot = slot
			return nil
		})
		require.NoError(t, beaconDB.SaveState(ctx, st, blk.StateRoot()))
		require.NoError(t, beaconDB.SaveHeadBlockRoot(ctx, blk.Root()))
	}
}

func newProviders(t *testing.T) (*BeaconDbBlocker, *BeaconDbStater) {
	beaconDB := dbtest.SetupDB(t)
	fillChain(t, beaconDB, 0, 8, 16, 32)
	blocker := &BeaconDbBlocker{BeaconDB: beaconDB}
	return blocker, &BeaconDbStater{BeaconDB: beaconDB, Blocker: blocker}
}

func TestBlocker_Block(t *testing.T) {
	blocker, _ := newProviders(t)
	ctx := context.Background()
	require.NoError(t, blocker.BeaconDB.(db.HeadAccessDatabase).SaveFinalizedCheckpoint(ctx, &ethpb.Checkpoint{
		Epoch: 0,
		Root:  util.Root(8, 0xb1),
	}))

	tests := []struct {
		name     string
		id       string
		wantSlot primitives.Slot
	}{
		{name: "head", id: "head", wantSlot: 32},
		{name: "genesis", id: "genesis", wantSlot: 0},
		{name: "finalized", id: "finalized", wantSlot: 8},
		{name: "slot", id: "16", wantSlot: 16},
		{name: "hex root", id: hexutil.Encode(util.Root(16, 0xb1)), wantSlot: 16},
		{name: "raw root", id: string(util.Root(8, 0xb1)), wantSlot: 8},
		{name: "case insensitive", id: "HEAD", wantSlot: 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blk, err := blocker.Block(ctx, []byte(tt.id))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlot, blk.Slot())
		})
	}
}

func TestBlocker_FinalizedDefaultsToGenesis(t *testing.T) {
	blocker, _ := newProviders(t)
	blk, err := blocker.Block(context.Background(), []byte("finalized"))
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(0), blk.Slot())
}

func TestBlocker_Errors(t *testing.T) {
	blocker, _ := newProviders(t)
	ctx := context.Background()

	_, err := blocker.Block(ctx, []byte("foo"))
	var parseErr *IdParseError
	require.Equal(t, true, errors.As(err, &parseErr))
	assert.ErrorContains(t, "could not parse block ID", err)

	_, err = blocker.Block(ctx, []byte("0x1234"))
	require.Equal(t, true, errors.As(err, &parseErr))

	_, err = blocker.Block(ctx, []byte("7"))
	var notFound BlockNotFoundError
	require.Equal(t, true, errors.As(err, &notFound))
	assert.ErrorContains(t, "no block found at slot 7", err)

	_, err = blocker.Block(ctx, []byte(hexutil.Encode(util.Root(99))))
	require.Equal(t, true, errors.As(err, &notFound))
}

func TestBlocker_NoHead(t *testing.T) {
	blocker := &BeaconDbBlocker{BeaconDB: dbtest.SetupDB(t)}
	_, err := blocker.Block(context.Background(), []byte("head"))
	var notFound BlockNotFoundError
	require.Equal(t, true, errors.As(err, &notFound))
}

func TestStater_State(t *testing.T) {
	_, stater := newProviders(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		wantSlot primitives.Slot
	}{
		{name: "head", id: "head", wantSlot: 32},
		{name: "genesis", id: "genesis", wantSlot: 0},
		{name: "finalized", id: "finalized", wantSlot: 0},
		{name: "slot", id: "8", wantSlot: 8},
		{name: "hex root", id: hexutil.Encode(util.Root(16, 0x57)), wantSlot: 16},
		{name: "raw root", id: string(util.Root(32, 0x57)), wantSlot: 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := stater.State(ctx, []byte(tt.id))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlot, st.Slot())
		})
	}
}

func TestStater_StateRoot(t *testing.T) {
	_, stater := newProviders(t)
	root, err := stater.StateRoot(context.Background(), []byte("head"))
	require.NoError(t, err)
	assert.DeepEqual(t, util.Root(32, 0x57), root)
}

func TestStater_StateBySlot(t *testing.T) {
	_, stater := newProviders(t)
	ctx := context.Background()

	st, err := stater.StateBySlot(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(16), st.Slot())

	st, err = stater.StateBySlot(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(0), st.Slot())

	_, err = stater.StateBySlot(ctx, 17)
	var notFound *StateNotFoundError
	require.Equal(t, true, errors.As(err, &notFound))
	assert.ErrorContains(t, "no state saved at slot 17", err)
}

func TestStater_Errors(t *testing.T) {
	_, stater := newProviders(t)
	ctx := context.Background()

	_, err := stater.State(ctx, []byte("justified"))
	var parseErr *IdParseError
	require.Equal(t, true, errors.As(err, &parseErr))
	assert.ErrorContains(t, "could not parse state ID", err)

	_, err = stater.State(ctx, []byte("0xzz"))
	require.Equal(t, true, errors.As(err, &parseErr))

	root := bytesutil.ToBytes32(util.Root(77))
	_, err = stater.State(ctx, root[:])
	var notFound *StateNotFoundError
	require.Equal(t, true, errors.As(err, &notFound))
}

func TestRawRootWithHexPrefix(t *testing.T) {
	beaconDB := dbtest.SetupDB(t)
	ctx := context.Background()
	pb := util.NewBeaconBlockAltair(40, 512)
	pb.Root = util.Root('0', 'x', 0xb1)
	pb.StateRoot = util.Root('0', 'x', 0x57)
	blk, err := blocks.NewSignedBeaconBlock(pb)
	require.NoError(t, err)
	require.NoError(t, beaconDB.SaveBlock(ctx, blk))
	st := util.NewBeaconStateAltairT(t, util.WithValidators(4, 32e9), func(s *ethpb.BeaconState) error {
		s.Slot = 40
		return nil
	})
	require.NoError(t, beaconDB.SaveState(ctx, st, blk.StateRoot()))
	blocker := &BeaconDbBlocker{BeaconDB: beaconDB}
	stater := &BeaconDbStater{BeaconDB: beaconDB, Blocker: blocker}

	got, err := blocker.Block(ctx, pb.Root)
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(40), got.Slot())

	root, err := stater.StateRoot(ctx, pb.StateRoot)
	require.NoError(t, err)
	assert.DeepEqual(t, pb.StateRoot, root)
	gotState, err := stater.State(ctx, pb.StateRoot)
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(40), gotState.Slot())
}
