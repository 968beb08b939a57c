// Package state defines the actual beacon state interface used
// by the reward services, also containing useful, scoped interfaces such as
// a ReadOnlyValidator.
package state

import (
	"errors"

	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
)

var (
	// ErrNilValidatorsInState returns when accessing validators in the state while the state has a
	// nil slice for the validators field.
	ErrNilValidatorsInState = errors.New("state has nil validator slice")
	// ErrNilParticipation is returned when participation bits are requested from a state that has none.
	ErrNilParticipation = errors.New("nil epoch participation in state")
	// ErrNilSyncCommittee is returned when the state has no current sync committee.
	ErrNilSyncCommittee = errors.New("nil current sync committee in state")
)

// ReadOnlyBeaconState defines a struct which only has read access to beacon state methods.
// Implementations are immutable snapshots and safe for concurrent use.
type ReadOnlyBeaconState interface {
	Slot() primitives.Slot
	Version() int
	Fork() *ethpb.Fork
	LatestBlockRoot() [32]byte
	FinalizedCheckpoint() *ethpb.Checkpoint
	FinalizedCheckpointEpoch() primitives.Epoch
	ToProto() *ethpb.BeaconState
	ReadOnlyValidators
	ReadOnlyBalances
	ReadOnlyParticipation
	ReadOnlyInactivity
	ReadOnlySyncCommittee
}

// ReadOnlyValidators defines a struct which only has read access to validators methods.
type ReadOnlyValidators interface {
	ValidatorAtIndexReadOnly(idx primitives.ValidatorIndex) (ReadOnlyValidator, error)
	ValidatorIndexByPubkey(key [fieldparams.BLSPubkeyLength]byte) (primitives.ValidatorIndex, bool)
	PubkeyAtIndex(idx primitives.ValidatorIndex) [fieldparams.BLSPubkeyLength]byte
	NumValidators() int
	ReadFromEveryValidator(f func(idx int, val ReadOnlyValidator) error) error
}

// ReadOnlyBalances defines methods used to retrieve balances related data.
type ReadOnlyBalances interface {
	BalanceAtIndex(idx primitives.ValidatorIndex) (uint64, error)
}

// ReadOnlyParticipation defines a struct which only has read access to participation methods.
type ReadOnlyParticipation interface {
	CurrentEpochParticipation() ([]byte, error)
	PreviousEpochParticipation() ([]byte, error)
}

// ReadOnlyInactivity defines a struct which only has read access to inactivity methods.
type ReadOnlyInactivity interface {
	InactivityScores() ([]uint64, error)
}

// ReadOnlySyncCommittee defines a struct which only has read access to sync committee methods.
type ReadOnlySyncCommittee interface {
	CurrentSyncCommittee() (*ethpb.SyncCommittee, error)
}

// ReadOnlyValidator defines a struct which only has read access to validator methods.
type ReadOnlyValidator interface {
	EffectiveBalance() uint64
	ActivationEligibilityEpoch() primitives.Epoch
	ActivationEpoch() primitives.Epoch
	WithdrawableEpoch() primitives.Epoch
	ExitEpoch() primitives.Epoch
	PublicKey() [fieldparams.BLSPubkeyLength]byte
	Slashed() bool
	IsNil() bool
}
