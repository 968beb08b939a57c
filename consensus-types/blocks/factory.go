package blocks

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/interfaces"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
)

var (
	// ErrNilObject is returned in a constructor when the underlying object is nil.
	ErrNilObject = errors.New("received nil object")
	// ErrUnsupportedField is returned when a getter is called on a block version that has no such field.
	ErrUnsupportedField = errors.New("unsupported field for block type")
)

var _ interfaces.ReadOnlySignedBeaconBlock = (*SignedBeaconBlock)(nil)

// SignedBeaconBlock is the main signed beacon block structure. It can represent any block type.
type SignedBeaconBlock struct {
	version       int
	slot          primitives.Slot
	proposerIndex primitives.ValidatorIndex
	root          [fieldparams.RootLength]byte
	parentRoot    [fieldparams.RootLength]byte
	stateRoot     [fieldparams.RootLength]byte
	syncAggregate *syncAggregate
}

type syncAggregate struct {
	raw  []byte
	bits bitfield.Bitfield
}

// NewSignedBeaconBlock creates a signed beacon block from its persisted representation.
func NewSignedBeaconBlock(b *ethpb.SignedBeaconBlock) (*SignedBeaconBlock, error) {
	if b == nil {
		return nil, ErrNilObject
	}
	for name, r := range map[string][]byte{"root": b.Root, "parent root": b.ParentRoot, "state root": b.StateRoot} {
		if len(r) != fieldparams.RootLength {
			return nil, errors.Errorf("block %s has length %d, want %d", name, len(r), fieldparams.RootLength)
		}
	}
	blk := &SignedBeaconBlock{
		version:       b.Version,
		slot:          b.Slot,
		proposerIndex: b.ProposerIndex,
		root:          bytesutil.ToBytes32(b.Root),
		parentRoot:    bytesutil.ToBytes32(b.ParentRoot),
		stateRoot:     bytesutil.ToBytes32(b.StateRoot),
	}
	if b.Version >= version.Altair {
		if b.SyncAggregate == nil {
			return nil, errors.New("post-altair block has nil sync aggregate")
		}
		raw := bytesutil.SafeCopyBytes(b.SyncAggregate.SyncCommitteeBits)
		blk.syncAggregate = &syncAggregate{raw: raw, bits: syncCommitteeBits(raw)}
	}
	return blk, nil
}

// syncCommitteeBits interprets the serialized bitvector. Mainnet sized committees map onto
// a Bitvector512, any other preset size onto a Bitlist of the same bit length.
func syncCommitteeBits(raw []byte) bitfield.Bitfield {
	if len(raw) == len(bitfield.NewBitvector512()) {
		return bitfield.Bitvector512(bytesutil.SafeCopyBytes(raw))
	}
	n := uint64(len(raw)) * 8
	bl := bitfield.NewBitlist(n)
	for i := uint64(0); i < n; i++ {
		if raw[i/8]&(1<<(i%8)) != 0 {
			bl.SetBitAt(i, true)
		}
	}
	return bl
}

// Version of the underlying block.
func (b *SignedBeaconBlock) Version() int {
	return b.version
}

// Slot of the block.
func (b *SignedBeaconBlock) Slot() primitives.Slot {
	return b.slot
}

// ProposerIndex of the block.
func (b *SignedBeaconBlock) ProposerIndex() primitives.ValidatorIndex {
	return b.proposerIndex
}

// Root is the hash tree root of the block as reported by the producer of the record.
func (b *SignedBeaconBlock) Root() [32]byte {
	return b.root
}

// ParentRoot of the block.
func (b *SignedBeaconBlock) ParentRoot() [32]byte {
	return b.parentRoot
}

// StateRoot of the post-state of the block.
func (b *SignedBeaconBlock) StateRoot() [32]byte {
	return b.stateRoot
}

// SyncAggregate returns the sync aggregate in the block.
func (b *SignedBeaconBlock) SyncAggregate() (interfaces.ReadOnlySyncAggregate, error) {
	if b.version < version.Altair || b.syncAggregate == nil {
		return nil, errors.Wrapf(ErrUnsupportedField, "SyncAggregate for %s", version.String(b.version))
	}
	return b.syncAggregate, nil
}

// SyncCommitteeBits of the aggregate.
func (s *syncAggregate) SyncCommitteeBits() bitfield.Bitfield {
	return s.bits
}

// Proto returns the persisted representation of the block.
func (b *SignedBeaconBlock) Proto() *ethpb.SignedBeaconBlock {
	pb := &ethpb.SignedBeaconBlock{
		Version:       b.version,
		Slot:          b.slot,
		ProposerIndex: b.proposerIndex,
		Root:          bytesutil.SafeCopyBytes(b.root[:]),
		ParentRoot:    bytesutil.SafeCopyBytes(b.parentRoot[:]),
		StateRoot:     bytesutil.SafeCopyBytes(b.stateRoot[:]),
	}
	if b.syncAggregate != nil {
		pb.SyncAggregate = &ethpb.SyncAggregate{SyncCommitteeBits: bytesutil.SafeCopyBytes(b.syncAggregate.raw)}
	}
	return pb
}

// IsNil checks if the underlying block is nil.
func (b *SignedBeaconBlock) IsNil() bool {
	return b == nil
}
