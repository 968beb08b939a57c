package state_native

import (
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
)

// Slot of the current beacon chain state.
func (b *BeaconState) Slot() primitives.Slot {
	return b.slot
}

// Version of the beacon state.
func (b *BeaconState) Version() int {
	return b.version
}

// Fork version of the beacon chain.
func (b *BeaconState) Fork() *ethpb.Fork {
	if b.fork == nil {
		return nil
	}
	return &ethpb.Fork{
		PreviousVersion: bytesutil.SafeCopyBytes(b.fork.PreviousVersion),
		CurrentVersion:  bytesutil.SafeCopyBytes(b.fork.CurrentVersion),
		Epoch:           b.fork.Epoch,
	}
}

// LatestBlockRoot is the root of the block this state was produced by.
func (b *BeaconState) LatestBlockRoot() [32]byte {
	return b.latestBlockRoot
}

// FinalizedCheckpoint denoting an epoch and block root.
func (b *BeaconState) FinalizedCheckpoint() *ethpb.Checkpoint {
	return ethpb.CopyCheckpoint(b.finalizedCheckpoint)
}

// FinalizedCheckpointEpoch returns the epoch value of the finalized checkpoint.
func (b *BeaconState) FinalizedCheckpointEpoch() primitives.Epoch {
	if b.finalizedCheckpoint == nil {
		return 0
	}
	return b.finalizedCheckpoint.Epoch
}

// CurrentEpochParticipation corresponding to participation bits on the beacon chain.
func (b *BeaconState) CurrentEpochParticipation() ([]byte, error) {
	if b.currentEpochParticipation == nil {
		return nil, state.ErrNilParticipation
	}
	return bytesutil.SafeCopyBytes(b.currentEpochParticipation), nil
}

// PreviousEpochParticipation corresponding to participation bits on the beacon chain.
func (b *BeaconState) PreviousEpochParticipation() ([]byte, error) {
	if b.previousEpochParticipation == nil {
		return nil, state.ErrNilParticipation
	}
	return bytesutil.SafeCopyBytes(b.previousEpochParticipation), nil
}

// InactivityScores of validators participating in consensus on the beacon chain.
func (b *BeaconState) InactivityScores() ([]uint64, error) {
	return append([]uint64(nil), b.inactivityScores...), nil
}

// CurrentSyncCommittee of the current sync committee in beacon chain state.
func (b *BeaconState) CurrentSyncCommittee() (*ethpb.SyncCommittee, error) {
	if b.currentSyncCommittee == nil {
		return nil, state.ErrNilSyncCommittee
	}
	return ethpb.CopySyncCommittee(b.currentSyncCommittee), nil
}
