// Package rewards computes the attestation and sync committee rewards of validators from an
// immutable beacon state snapshot.
package rewards

import (
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/altair"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/epoch/precompute"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/math"
)

// ParticipationSource is the previous epoch participation view the attestation calculators read.
// altair.ParticipationCache implements it.
type ParticipationSource interface {
	TotalActiveBalance() uint64
	InInactivityLeak() bool
	UnslashedParticipatingBalance(flag altair.ParticipationFlag) (uint64, error)
	Validator(idx primitives.ValidatorIndex) (*precompute.Validator, error)
	NumValidators() int
}

// IdealReward is the reward a perfectly performing validator with the given effective balance
// earns for each flag.
type IdealReward struct {
	EffectiveBalance uint64
	Source           uint64
	Target           uint64
	Head             uint64
}

// TotalReward is the signed reward of a validator per flag. Inactivity holds the inactivity
// penalty, which is zero outside of the target penalty set.
type TotalReward struct {
	ValidatorIndex primitives.ValidatorIndex
	Source         int64
	Target         int64
	Head           int64
	Inactivity     int64
}

// Total returns the checked sum of all components.
func (r TotalReward) Total() (int64, error) {
	var sum int64
	for _, v := range []int64{r.Source, r.Target, r.Head, r.Inactivity} {
		var err error
		if sum, err = math.AddInt64(sum, v); err != nil {
			return 0, ArithmeticError(err, "could not sum rewards of validator %d", r.ValidatorIndex)
		}
	}
	return sum, nil
}

// SyncCommitteeReward is the signed reward of one sync committee seat.
type SyncCommitteeReward struct {
	ValidatorIndex primitives.ValidatorIndex
	Reward         int64
}

// ValidatorFilter selects validators by index or by public key. The zero value selects all.
type ValidatorFilter struct {
	indices map[primitives.ValidatorIndex]bool
	pubkeys map[[fieldparams.BLSPubkeyLength]byte]bool
}

// NewValidatorFilter builds a filter matching any of the given indices or public keys.
func NewValidatorFilter(indices []primitives.ValidatorIndex, pubkeys [][fieldparams.BLSPubkeyLength]byte) *ValidatorFilter {
	f := &ValidatorFilter{
		indices: make(map[primitives.ValidatorIndex]bool, len(indices)),
		pubkeys: make(map[[fieldparams.BLSPubkeyLength]byte]bool, len(pubkeys)),
	}
	for _, i := range indices {
		f.indices[i] = true
	}
	for _, k := range pubkeys {
		f.pubkeys[k] = true
	}
	return f
}

// IsEmpty is true when the filter selects every validator.
func (f *ValidatorFilter) IsEmpty() bool {
	return f == nil || (len(f.indices) == 0 && len(f.pubkeys) == 0)
}

// Matches reports whether the validator is selected.
func (f *ValidatorFilter) Matches(idx primitives.ValidatorIndex, pubkey [fieldparams.BLSPubkeyLength]byte) bool {
	if f.IsEmpty() {
		return true
	}
	return f.indices[idx] || f.pubkeys[pubkey]
}
