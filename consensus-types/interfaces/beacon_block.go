package interfaces

import (
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
)

// ReadOnlySignedBeaconBlock is an interface describing the method set of
// a signed beacon block.
type ReadOnlySignedBeaconBlock interface {
	Version() int
	Slot() primitives.Slot
	ProposerIndex() primitives.ValidatorIndex
	Root() [32]byte
	ParentRoot() [32]byte
	StateRoot() [32]byte
	SyncAggregate() (ReadOnlySyncAggregate, error)
	Proto() *ethpb.SignedBeaconBlock
	IsNil() bool
}

// ReadOnlySyncAggregate exposes the sync committee participation bits of a block.
type ReadOnlySyncAggregate interface {
	SyncCommitteeBits() bitfield.Bitfield
}
