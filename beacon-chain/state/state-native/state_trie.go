package state_native

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
)

var _ state.ReadOnlyBeaconState = (*BeaconState)(nil)

// BeaconState is an immutable snapshot of the beacon state fields used by reward accounting.
// Every accessor hands out copies, so one snapshot may be shared between concurrent readers.
type BeaconState struct {
	version                    int
	slot                       primitives.Slot
	fork                       *ethpb.Fork
	latestBlockRoot            [32]byte
	validators                 []*ethpb.Validator
	balances                   []uint64
	previousEpochParticipation []byte
	currentEpochParticipation  []byte
	inactivityScores           []uint64
	finalizedCheckpoint        *ethpb.Checkpoint
	currentSyncCommittee       *ethpb.SyncCommittee
	valMapHandler              map[[fieldparams.BLSPubkeyLength]byte]primitives.ValidatorIndex
}

// InitializeFromProto the beacon state from a protobuf representation.
func InitializeFromProto(st *ethpb.BeaconState) (*BeaconState, error) {
	if st == nil {
		return nil, errors.New("received nil state")
	}
	if st.Version < version.Altair {
		return nil, errors.Errorf("unsupported state version %s", version.String(st.Version))
	}
	n := len(st.Validators)
	if len(st.Balances) != n {
		return nil, errors.Errorf("balances length %d does not match validator count %d", len(st.Balances), n)
	}
	if len(st.PreviousEpochParticipation) != n || len(st.CurrentEpochParticipation) != n {
		return nil, errors.Errorf("participation length does not match validator count %d", n)
	}
	if len(st.InactivityScores) != n {
		return nil, errors.Errorf("inactivity scores length %d does not match validator count %d", len(st.InactivityScores), n)
	}

	b := &BeaconState{
		version:                    st.Version,
		slot:                       st.Slot,
		latestBlockRoot:            bytesutil.ToBytes32(st.LatestBlockRoot),
		validators:                 make([]*ethpb.Validator, n),
		balances:                   make([]uint64, n),
		previousEpochParticipation: make([]byte, n),
		currentEpochParticipation:  make([]byte, n),
		inactivityScores:           make([]uint64, n),
		finalizedCheckpoint:        ethpb.CopyCheckpoint(st.FinalizedCheckpoint),
		currentSyncCommittee:       ethpb.CopySyncCommittee(st.CurrentSyncCommittee),
		valMapHandler:              make(map[[fieldparams.BLSPubkeyLength]byte]primitives.ValidatorIndex, n),
	}
	copy(b.balances, st.Balances)
	copy(b.previousEpochParticipation, st.PreviousEpochParticipation)
	copy(b.currentEpochParticipation, st.CurrentEpochParticipation)
	copy(b.inactivityScores, st.InactivityScores)
	if st.Fork != nil {
		b.fork = &ethpb.Fork{
			PreviousVersion: bytesutil.SafeCopyBytes(st.Fork.PreviousVersion),
			CurrentVersion:  bytesutil.SafeCopyBytes(st.Fork.CurrentVersion),
			Epoch:           st.Fork.Epoch,
		}
	}
	for i, v := range st.Validators {
		if v == nil {
			return nil, errors.Errorf("nil validator at index %d", i)
		}
		if len(v.PublicKey) != fieldparams.BLSPubkeyLength {
			return nil, errors.Errorf("validator %d has public key of length %d", i, len(v.PublicKey))
		}
		b.validators[i] = ethpb.CopyValidator(v)
		key := bytesutil.ToBytes48(v.PublicKey)
		// The registry never holds duplicate keys, keep the first index regardless.
		if _, ok := b.valMapHandler[key]; !ok {
			b.valMapHandler[key] = primitives.ValidatorIndex(i)
		}
	}
	return b, nil
}

// ToProto returns a deep copy of the state in its persisted form.
func (b *BeaconState) ToProto() *ethpb.BeaconState {
	vals := make([]*ethpb.Validator, len(b.validators))
	for i, v := range b.validators {
		vals[i] = ethpb.CopyValidator(v)
	}
	return &ethpb.BeaconState{
		Version:                    b.version,
		Slot:                       b.slot,
		Fork:                       b.Fork(),
		LatestBlockRoot:            bytesutil.SafeCopyBytes(b.latestBlockRoot[:]),
		Validators:                 vals,
		Balances:                   append([]uint64(nil), b.balances...),
		PreviousEpochParticipation: bytesutil.SafeCopyBytes(b.previousEpochParticipation),
		CurrentEpochParticipation:  bytesutil.SafeCopyBytes(b.currentEpochParticipation),
		InactivityScores:           append([]uint64(nil), b.inactivityScores...),
		FinalizedCheckpoint:        ethpb.CopyCheckpoint(b.finalizedCheckpoint),
		CurrentSyncCommittee:       ethpb.CopySyncCommittee(b.currentSyncCommittee),
	}
}
