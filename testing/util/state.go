// Package util provides deterministic states and blocks for tests.
package util

import (
	"testing"

	"github.com/pkg/errors"
	statenative "github.com/prysmaticlabs/prysm-rewards/beacon-chain/state/state-native"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
)

// DeterministicPubkey returns a well formed, unique public key for the validator index.
func DeterministicPubkey(i uint64) []byte {
	k := make([]byte, fieldparams.BLSPubkeyLength)
	copy(k, bytesutil.Uint64ToBytesBigEndian(i+1))
	k[fieldparams.BLSPubkeyLength-1] = 0xaa
	return k
}

// NewBeaconStateAltair creates a beacon state with minimum marshalable fields.
func NewBeaconStateAltair(options ...func(state *ethpb.BeaconState) error) (*statenative.BeaconState, error) {
	cfg := params.BeaconConfig()
	pb := &ethpb.BeaconState{
		Version: version.Altair,
		Fork: &ethpb.Fork{
			PreviousVersion: cfg.GenesisForkVersion,
			CurrentVersion:  cfg.AltairForkVersion,
		},
		LatestBlockRoot:            make([]byte, fieldparams.RootLength),
		Validators:                 []*ethpb.Validator{},
		Balances:                   []uint64{},
		PreviousEpochParticipation: []byte{},
		CurrentEpochParticipation:  []byte{},
		InactivityScores:           []uint64{},
		FinalizedCheckpoint:        &ethpb.Checkpoint{Root: make([]byte, fieldparams.RootLength)},
		CurrentSyncCommittee:       &ethpb.SyncCommittee{Pubkeys: [][]byte{}},
	}
	for _, opt := range options {
		if err := opt(pb); err != nil {
			return nil, err
		}
	}
	return statenative.InitializeFromProto(pb)
}

// WithValidators appends n active validators holding the given effective balance.
func WithValidators(n uint64, effectiveBalance uint64) func(*ethpb.BeaconState) error {
	return func(st *ethpb.BeaconState) error {
		farFuture := params.BeaconConfig().FarFutureEpoch
		start := uint64(len(st.Validators))
		for i := start; i < start+n; i++ {
			st.Validators = append(st.Validators, &ethpb.Validator{
				PublicKey:         DeterministicPubkey(i),
				EffectiveBalance:  effectiveBalance,
				ExitEpoch:         farFuture,
				WithdrawableEpoch: farFuture,
			})
			st.Balances = append(st.Balances, effectiveBalance)
			st.PreviousEpochParticipation = append(st.PreviousEpochParticipation, 0)
			st.CurrentEpochParticipation = append(st.CurrentEpochParticipation, 0)
			st.InactivityScores = append(st.InactivityScores, 0)
		}
		return nil
	}
}

// WithSyncCommittee sets the current sync committee to the public keys of the given indices.
func WithSyncCommittee(indices ...uint64) func(*ethpb.BeaconState) error {
	return func(st *ethpb.BeaconState) error {
		keys := make([][]byte, len(indices))
		for i, idx := range indices {
			if idx >= uint64(len(st.Validators)) {
				return errors.Errorf("sync committee member %d is not in the registry", idx)
			}
			keys[i] = bytesutil.SafeCopyBytes(st.Validators[idx].PublicKey)
		}
		st.CurrentSyncCommittee = &ethpb.SyncCommittee{Pubkeys: keys}
		return nil
	}
}

// NewBeaconStateAltairT is NewBeaconStateAltair failing the test on error.
func NewBeaconStateAltairT(t testing.TB, options ...func(state *ethpb.BeaconState) error) *statenative.BeaconState {
	st, err := NewBeaconStateAltair(options...)
	if err != nil {
		t.Fatal(err)
	}
	return st
}
