package importer

import (
	"github.com/attestantio/go-eth2-client/spec"
	"github.com/attestantio/go-eth2-client/spec/altair"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
)

// errUnsupportedVersion is returned for forks that carry no participation flags.
var errUnsupportedVersion = errors.New("unsupported fork version")

// stateFields holds the fork independent fields read from a versioned state.
type stateFields struct {
	slot                phase0.Slot
	fork                *phase0.Fork
	latestBlockHeader   *phase0.BeaconBlockHeader
	validators          []*phase0.Validator
	balances            []phase0.Gwei
	previousParticipate []altair.ParticipationFlags
	currentParticipate  []altair.ParticipationFlags
	inactivityScores    []uint64
	finalized           *phase0.Checkpoint
	syncCommittee       *altair.SyncCommittee
}

func versionOf(v spec.DataVersion) (int, error) {
	switch v {
	case spec.DataVersionAltair:
		return version.Altair, nil
	case spec.DataVersionBellatrix:
		return version.Bellatrix, nil
	case spec.DataVersionCapella:
		return version.Capella, nil
	case spec.DataVersionDeneb:
		return version.Deneb, nil
	case spec.DataVersionElectra:
		return version.Electra, nil
	default:
		return 0, errors.Wrapf(errUnsupportedVersion, "%s", v)
	}
}

func fieldsOf(st *spec.VersionedBeaconState) (*stateFields, error) {
	switch st.Version {
	case spec.DataVersionAltair:
		s := st.Altair
		if s == nil {
			break
		}
		return &stateFields{s.Slot, s.Fork, s.LatestBlockHeader, s.Validators, s.Balances,
			s.PreviousEpochParticipation, s.CurrentEpochParticipation, s.InactivityScores,
			s.FinalizedCheckpoint, s.CurrentSyncCommittee}, nil
	case spec.DataVersionBellatrix:
		s := st.Bellatrix
		if s == nil {
			break
		}
		return &stateFields{s.Slot, s.Fork, s.LatestBlockHeader, s.Validators, s.Balances,
			s.PreviousEpochParticipation, s.CurrentEpochParticipation, s.InactivityScores,
			s.FinalizedCheckpoint, s.CurrentSyncCommittee}, nil
	case spec.DataVersionCapella:
		s := st.Capella
		if s == nil {
			break
		}
		return &stateFields{s.Slot, s.Fork, s.LatestBlockHeader, s.Validators, s.Balances,
			s.PreviousEpochParticipation, s.CurrentEpochParticipation, s.InactivityScores,
			s.FinalizedCheckpoint, s.CurrentSyncCommittee}, nil
	case spec.DataVersionDeneb:
		s := st.Deneb
		if s == nil {
			break
		}
		return &stateFields{s.Slot, s.Fork, s.LatestBlockHeader, s.Validators, s.Balances,
			s.PreviousEpochParticipation, s.CurrentEpochParticipation, s.InactivityScores,
			s.FinalizedCheckpoint, s.CurrentSyncCommittee}, nil
	case spec.DataVersionElectra:
		s := st.Electra
		if s == nil {
			break
		}
		return &stateFields{s.Slot, s.Fork, s.LatestBlockHeader, s.Validators, s.Balances,
			s.PreviousEpochParticipation, s.CurrentEpochParticipation, s.InactivityScores,
			s.FinalizedCheckpoint, s.CurrentSyncCommittee}, nil
	default:
		return nil, errors.Wrapf(errUnsupportedVersion, "%s", st.Version)
	}
	return nil, errors.Errorf("no %s state data", st.Version)
}

// convertState maps an upstream state onto the persisted model. stateRoot is the root
// of the state itself and completes the latest block header before it is hashed.
func convertState(st *spec.VersionedBeaconState, stateRoot phase0.Root) (*ethpb.BeaconState, error) {
	if st == nil {
		return nil, errors.New("nil state")
	}
	ver, err := versionOf(st.Version)
	if err != nil {
		return nil, err
	}
	f, err := fieldsOf(st)
	if err != nil {
		return nil, err
	}
	if f.latestBlockHeader == nil || f.fork == nil || f.finalized == nil || f.syncCommittee == nil {
		return nil, errors.Errorf("incomplete state at slot %d", f.slot)
	}

	header := *f.latestBlockHeader
	if header.StateRoot == (phase0.Root{}) {
		header.StateRoot = stateRoot
	}
	latestRoot, err := header.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not hash latest block header")
	}

	vals := make([]*ethpb.Validator, len(f.validators))
	for i, v := range f.validators {
		if v == nil {
			return nil, errors.Errorf("nil validator at index %d", i)
		}
		vals[i] = &ethpb.Validator{
			PublicKey:                  bytesutil.SafeCopyBytes(v.PublicKey[:]),
			EffectiveBalance:           uint64(v.EffectiveBalance),
			Slashed:                    v.Slashed,
			ActivationEligibilityEpoch: primitives.Epoch(v.ActivationEligibilityEpoch),
			ActivationEpoch:            primitives.Epoch(v.ActivationEpoch),
			ExitEpoch:                  primitives.Epoch(v.ExitEpoch),
			WithdrawableEpoch:          primitives.Epoch(v.WithdrawableEpoch),
		}
	}
	balances := make([]uint64, len(f.balances))
	for i, b := range f.balances {
		balances[i] = uint64(b)
	}
	keys := make([][]byte, len(f.syncCommittee.Pubkeys))
	for i, k := range f.syncCommittee.Pubkeys {
		keys[i] = bytesutil.SafeCopyBytes(k[:])
	}

	return &ethpb.BeaconState{
		Version: ver,
		Slot:    primitives.Slot(f.slot),
		Fork: &ethpb.Fork{
			PreviousVersion: bytesutil.SafeCopyBytes(f.fork.PreviousVersion[:]),
			CurrentVersion:  bytesutil.SafeCopyBytes(f.fork.CurrentVersion[:]),
			Epoch:           primitives.Epoch(f.fork.Epoch),
		},
		LatestBlockRoot:            latestRoot[:],
		Validators:                 vals,
		Balances:                   balances,
		PreviousEpochParticipation: participationBytes(f.previousParticipate),
		CurrentEpochParticipation:  participationBytes(f.currentParticipate),
		InactivityScores:           append([]uint64{}, f.inactivityScores...),
		FinalizedCheckpoint: &ethpb.Checkpoint{
			Epoch: primitives.Epoch(f.finalized.Epoch),
			Root:  bytesutil.SafeCopyBytes(f.finalized.Root[:]),
		},
		CurrentSyncCommittee: &ethpb.SyncCommittee{Pubkeys: keys},
	}, nil
}

// convertBlock maps an upstream block onto the persisted model.
func convertBlock(blk *spec.VersionedSignedBeaconBlock) (*ethpb.SignedBeaconBlock, error) {
	if blk == nil {
		return nil, errors.New("nil block")
	}
	ver, err := versionOf(blk.Version)
	if err != nil {
		return nil, err
	}
	slot, err := blk.Slot()
	if err != nil {
		return nil, errors.Wrap(err, "could not read block slot")
	}
	proposer, err := blk.ProposerIndex()
	if err != nil {
		return nil, errors.Wrap(err, "could not read block proposer")
	}
	root, err := blk.Root()
	if err != nil {
		return nil, errors.Wrap(err, "could not compute block root")
	}
	parent, err := blk.ParentRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not read block parent root")
	}
	stateRoot, err := blk.StateRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not read block state root")
	}
	agg, err := blk.SyncAggregate()
	if err != nil {
		return nil, errors.Wrap(err, "could not read sync aggregate")
	}
	if agg == nil {
		return nil, errors.Errorf("block at slot %d has no sync aggregate", slot)
	}
	return &ethpb.SignedBeaconBlock{
		Version:       ver,
		Slot:          primitives.Slot(slot),
		ProposerIndex: primitives.ValidatorIndex(proposer),
		Root:          bytesutil.SafeCopyBytes(root[:]),
		ParentRoot:    bytesutil.SafeCopyBytes(parent[:]),
		StateRoot:     bytesutil.SafeCopyBytes(stateRoot[:]),
		SyncAggregate: &ethpb.SyncAggregate{SyncCommitteeBits: bytesutil.SafeCopyBytes(agg.SyncCommitteeBits)},
	}, nil
}

func participationBytes(flags []altair.ParticipationFlags) []byte {
	out := make([]byte, len(flags))
	for i, f := range flags {
		out[i] = byte(f)
	}
	return out
}
