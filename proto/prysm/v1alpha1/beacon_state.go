// Package eth holds the persisted data model of beacon states and blocks. Values are
// plain structs encoded as JSON by the database and produced by the importer.
package eth

import (
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
)

// Validator is a single entry of the validator registry.
type Validator struct {
	PublicKey                  []byte           `json:"pubkey"`
	EffectiveBalance           uint64           `json:"effective_balance"`
	Slashed                    bool             `json:"slashed"`
	ActivationEligibilityEpoch primitives.Epoch `json:"activation_eligibility_epoch"`
	ActivationEpoch            primitives.Epoch `json:"activation_epoch"`
	ExitEpoch                  primitives.Epoch `json:"exit_epoch"`
	WithdrawableEpoch          primitives.Epoch `json:"withdrawable_epoch"`
}

// Checkpoint is an epoch and block root pair.
type Checkpoint struct {
	Epoch primitives.Epoch `json:"epoch"`
	Root  []byte           `json:"root"`
}

// SyncCommittee lists the public keys of the members of a sync committee, in committee order.
type SyncCommittee struct {
	Pubkeys [][]byte `json:"pubkeys"`
}

// Fork describes the fork versions around a state.
type Fork struct {
	PreviousVersion []byte           `json:"previous_version"`
	CurrentVersion  []byte           `json:"current_version"`
	Epoch           primitives.Epoch `json:"epoch"`
}

// BeaconState is the subset of an Altair or later beacon state needed for reward accounting.
type BeaconState struct {
	Version                    int             `json:"version"`
	Slot                       primitives.Slot `json:"slot"`
	Fork                       *Fork           `json:"fork"`
	LatestBlockRoot            []byte          `json:"latest_block_root"`
	Validators                 []*Validator    `json:"validators"`
	Balances                   []uint64        `json:"balances"`
	PreviousEpochParticipation []byte          `json:"previous_epoch_participation"`
	CurrentEpochParticipation  []byte          `json:"current_epoch_participation"`
	InactivityScores           []uint64        `json:"inactivity_scores"`
	FinalizedCheckpoint        *Checkpoint     `json:"finalized_checkpoint"`
	CurrentSyncCommittee       *SyncCommittee  `json:"current_sync_committee"`
}

// CopyValidator copies the provided validator.
func CopyValidator(val *Validator) *Validator {
	if val == nil {
		return nil
	}
	cp := *val
	cp.PublicKey = bytesutil.SafeCopyBytes(val.PublicKey)
	return &cp
}

// CopyCheckpoint copies the provided checkpoint.
func CopyCheckpoint(cp *Checkpoint) *Checkpoint {
	if cp == nil {
		return nil
	}
	return &Checkpoint{
		Epoch: cp.Epoch,
		Root:  bytesutil.SafeCopyBytes(cp.Root),
	}
}

// CopySyncCommittee copies the provided sync committee.
func CopySyncCommittee(c *SyncCommittee) *SyncCommittee {
	if c == nil {
		return nil
	}
	keys := make([][]byte, len(c.Pubkeys))
	for i, k := range c.Pubkeys {
		keys[i] = bytesutil.SafeCopyBytes(k)
	}
	return &SyncCommittee{Pubkeys: keys}
}
