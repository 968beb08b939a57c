package rewards

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	corerewards "github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/rewards"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db"
	dbtest "github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/testing"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/rpc/lookup"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/blocks"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/prysmaticlabs/prysm-rewards/testing/util"
)

type stateOption = func(*ethpb.BeaconState) error

// saveSlot stores an Altair block at the slot together with its post-state and makes it the head.
func saveSlot(t *testing.T, beaconDB db.Database, slot primitives.Slot, committeeSize uint64, participants []uint64, opts ...stateOption) {
	ctx := context.Background()
	blk, err := blocks.NewSignedBeaconBlock(util.NewBeaconBlockAltair(slot, committeeSize, participants...))
	require.NoError(t, err)
	require.NoError(t, beaconDB.SaveBlock(ctx, blk))
	opts = append(opts, func(s *ethpb.BeaconState) error {
		s.Slot = slot
		return nil
	})
	st := util.NewBeaconStateAltairT(t, opts...)
	require.NoError(t, beaconDB.SaveState(ctx, st, blk.StateRoot()))
	require.NoError(t, beaconDB.SaveHeadBlockRoot(ctx, blk.Root()))
}

func newService(beaconDB db.ReadOnlyDatabase, cfg *params.BeaconChainConfig) *Service {
	blocker := &lookup.BeaconDbBlocker{BeaconDB: beaconDB}
	return &Service{
		Blocker: blocker,
		Stater:  &lookup.BeaconDbStater{BeaconDB: beaconDB, Blocker: blocker},
		Config:  cfg,
	}
}

func withParticipation(flags ...byte) stateOption {
	return func(s *ethpb.BeaconState) error {
		s.PreviousEpochParticipation = flags
		return nil
	}
}

// attestationChain stores four 32 ETH validators whose previous epoch participation is
// all flags, source and target, source only and nothing.
func attestationChain(t *testing.T) db.Database {
	beaconDB := dbtest.SetupDB(t)
	saveSlot(t, beaconDB, 0, 512, nil, util.WithValidators(4, 32e9))
	saveSlot(t, beaconDB, 63, 512, nil, util.WithValidators(4, 32e9), withParticipation(0b111, 0b011, 0b001, 0b000))
	return beaconDB
}

func TestComputeAttestationRewards(t *testing.T) {
	s := newService(attestationChain(t), params.MainnetTestConfig())

	res, err := s.ComputeAttestationRewards(context.Background(), 0, nil)
	require.NoError(t, err)
	require.Equal(t, 33, len(res.IdealRewards))
	assert.DeepEqual(t, corerewards.IdealReward{
		EffectiveBalance: 32e9,
		Source:           939146,
		Target:           1162752,
		Head:             313048,
	}, res.IdealRewards[32])

	want := []corerewards.TotalReward{
		{ValidatorIndex: 0, Source: 939146, Target: 1162752, Head: 313048},
		{ValidatorIndex: 1, Source: 939146, Target: 1162752},
		{ValidatorIndex: 2, Source: 939146, Target: -2325505},
		{ValidatorIndex: 3, Source: -1252195, Target: -2325505},
	}
	assert.DeepEqual(t, want, res.TotalRewards)
	assert.Equal(t, false, res.ExecutionOptimistic)
	assert.Equal(t, false, res.Finalized)
}

func TestComputeAttestationRewards_RequestedValidators(t *testing.T) {
	s := newService(attestationChain(t), params.MainnetTestConfig())

	ids := []string{"3", hexutil.Encode(util.DeterministicPubkey(1)), "1", "3"}
	res, err := s.ComputeAttestationRewards(context.Background(), 0, ids)
	require.NoError(t, err)
	require.Equal(t, 2, len(res.TotalRewards))
	assert.Equal(t, primitives.ValidatorIndex(1), res.TotalRewards[0].ValidatorIndex)
	assert.Equal(t, int64(1162752), res.TotalRewards[0].Target)
	assert.Equal(t, primitives.ValidatorIndex(3), res.TotalRewards[1].ValidatorIndex)
}

func TestComputeAttestationRewards_Errors(t *testing.T) {
	beaconDB := attestationChain(t)
	preAltair := params.MainnetTestConfig().Copy()
	preAltair.AltairForkEpoch = 5

	missingState := dbtest.SetupDB(t)
	saveSlot(t, missingState, 0, 512, nil, util.WithValidators(4, 32e9))
	saveSlot(t, missingState, 70, 512, nil, util.WithValidators(4, 32e9))

	tests := []struct {
		name     string
		s        *Service
		epoch    primitives.Epoch
		ids      []string
		wantKind error
		wantErr  string
	}{
		{
			name:     "epoch not processed yet",
			s:        newService(beaconDB, params.MainnetTestConfig()),
			epoch:    1,
			wantKind: corerewards.ErrNotFound,
			wantErr:  "available after slot 95, head is at slot 63",
		},
		{
			name:     "before altair",
			s:        newService(beaconDB, preAltair),
			epoch:    2,
			wantKind: corerewards.ErrInvalid,
			wantErr:  "before the Altair fork epoch 5",
		},
		{
			name:     "unknown pubkey",
			s:        newService(beaconDB, params.MainnetTestConfig()),
			ids:      []string{hexutil.Encode(util.DeterministicPubkey(9))},
			wantKind: corerewards.ErrInvalid,
			wantErr:  "unknown validator",
		},
		{
			name:     "unknown index",
			s:        newService(beaconDB, params.MainnetTestConfig()),
			ids:      []string{"4"},
			wantKind: corerewards.ErrInvalid,
			wantErr:  "unknown validator 4",
		},
		{
			name:     "malformed id",
			s:        newService(beaconDB, params.MainnetTestConfig()),
			ids:      []string{"foo"},
			wantKind: corerewards.ErrInvalid,
			wantErr:  "invalid validator id foo",
		},
		{
			name:     "short pubkey",
			s:        newService(beaconDB, params.MainnetTestConfig()),
			ids:      []string{"0x1234"},
			wantKind: corerewards.ErrInvalid,
			wantErr:  "public key has length 2",
		},
		{
			name:     "state missing",
			s:        newService(missingState, params.MainnetTestConfig()),
			wantKind: corerewards.ErrNotFound,
			wantErr:  "could not get state at slot 63",
		},
		{
			name:     "epoch overflow",
			s:        newService(beaconDB, params.MainnetTestConfig()),
			epoch:    primitives.Epoch(^uint64(0)),
			wantKind: corerewards.ErrInvalid,
			wantErr:  "is too large",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.ComputeAttestationRewards(context.Background(), tt.epoch, tt.ids)
			assert.ErrorContains(t, tt.wantErr, err)
			assert.Equal(t, tt.wantKind, corerewards.KindOf(err))
		})
	}
}

// syncCommitteeChain stores eight 32 ETH validators whose sync committee seats hold the
// validators in reverse order. The block at slot 40 carries the bits of seats 0, 2 and 5.
func syncCommitteeChain(t *testing.T, opts ...stateOption) db.Database {
	beaconDB := dbtest.SetupDB(t)
	base := []stateOption{util.WithValidators(8, 32e9), util.WithSyncCommittee(7, 6, 5, 4, 3, 2, 1, 0)}
	saveSlot(t, beaconDB, 0, 8, nil, base...)
	saveSlot(t, beaconDB, 40, 8, []uint64{0, 2, 5}, append(base, opts...)...)
	return beaconDB
}

func TestComputeSyncCommitteeRewards(t *testing.T) {
	s := newService(syncCommitteeChain(t), params.MainnetTestConfig())

	res, err := s.ComputeSyncCommitteeRewards(context.Background(), "40", nil)
	require.NoError(t, err)
	want := []corerewards.SyncCommitteeReward{
		{ValidatorIndex: 7, Reward: 61},
		{ValidatorIndex: 6, Reward: -61},
		{ValidatorIndex: 5, Reward: 61},
		{ValidatorIndex: 4, Reward: -61},
		{ValidatorIndex: 3, Reward: -61},
		{ValidatorIndex: 2, Reward: 61},
		{ValidatorIndex: 1, Reward: -61},
		{ValidatorIndex: 0, Reward: -61},
	}
	assert.DeepEqual(t, want, res.Rewards)
	assert.Equal(t, false, res.Finalized)

	res, err = s.ComputeSyncCommitteeRewards(context.Background(), "head", []string{"0", hexutil.Encode(util.DeterministicPubkey(5))})
	require.NoError(t, err)
	want = []corerewards.SyncCommitteeReward{
		{ValidatorIndex: 5, Reward: 61},
		{ValidatorIndex: 0, Reward: -61},
	}
	assert.DeepEqual(t, want, res.Rewards)
}

func TestComputeSyncCommitteeRewards_Finalized(t *testing.T) {
	finalized := func(s *ethpb.BeaconState) error {
		s.FinalizedCheckpoint = &ethpb.Checkpoint{Epoch: 1, Root: util.Root(0, 0xb1)}
		return nil
	}
	s := newService(syncCommitteeChain(t, finalized), params.MainnetTestConfig())

	res, err := s.ComputeSyncCommitteeRewards(context.Background(), "genesis", nil)
	require.NoError(t, err)
	assert.Equal(t, true, res.Finalized)
	for _, r := range res.Rewards {
		assert.Equal(t, true, r.Reward < 0, "genesis block carries no sync committee bits")
	}
}

func TestComputeSyncCommitteeRewards_Errors(t *testing.T) {
	beaconDB := syncCommitteeChain(t)
	phase0 := &ethpb.SignedBeaconBlock{
		Version:    version.Phase0,
		Slot:       6,
		Root:       util.Root(6, 0xb1),
		ParentRoot: util.Root(40, 0xb1),
		StateRoot:  util.Root(6, 0x57),
	}
	blk, err := blocks.NewSignedBeaconBlock(phase0)
	require.NoError(t, err)
	require.NoError(t, beaconDB.SaveBlock(context.Background(), blk))
	s := newService(beaconDB, params.MainnetTestConfig())

	tests := []struct {
		name     string
		blockId  string
		ids      []string
		wantKind error
		wantErr  string
	}{
		{name: "unknown slot", blockId: "9", wantKind: corerewards.ErrNotFound, wantErr: "no block found at slot 9"},
		{name: "unknown root", blockId: hexutil.Encode(util.Root(42)), wantKind: corerewards.ErrNotFound, wantErr: "block not found"},
		{name: "bad block id", blockId: "foo", wantKind: corerewards.ErrInvalid, wantErr: "could not parse block ID"},
		{name: "phase0 block", blockId: "6", wantKind: corerewards.ErrInvalid, wantErr: "not supported for phase0 blocks"},
		{name: "bad validator id", blockId: "40", ids: []string{"-1"}, wantKind: corerewards.ErrInvalid, wantErr: "invalid validator id -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ComputeSyncCommitteeRewards(context.Background(), tt.blockId, tt.ids)
			assert.ErrorContains(t, tt.wantErr, err)
			assert.Equal(t, tt.wantKind, corerewards.KindOf(err))
		})
	}
}
