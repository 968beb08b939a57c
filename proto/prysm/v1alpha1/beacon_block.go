package eth

import "github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"

// SyncAggregate carries the participation bits of the sync committee for a block.
type SyncAggregate struct {
	SyncCommitteeBits []byte `json:"sync_committee_bits"`
}

// SignedBeaconBlock is the subset of a signed block needed for reward accounting.
// Roots are supplied by the producer of the record since hashing is not performed locally.
type SignedBeaconBlock struct {
	Version       int                       `json:"version"`
	Slot          primitives.Slot           `json:"slot"`
	ProposerIndex primitives.ValidatorIndex `json:"proposer_index"`
	Root          []byte                    `json:"root"`
	ParentRoot    []byte                    `json:"parent_root"`
	StateRoot     []byte                    `json:"state_root"`
	SyncAggregate *SyncAggregate            `json:"sync_aggregate,omitempty"`
}
