package util

import (
	"github.com/prysmaticlabs/go-bitfield"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
)

// NewBeaconBlockAltair creates a beacon block with minimum marshalable fields.
// The sync aggregate carries the bits of a committee of the given size, participants set to true.
func NewBeaconBlockAltair(slot primitives.Slot, committeeSize uint64, participants ...uint64) *ethpb.SignedBeaconBlock {
	bits := make([]byte, (committeeSize+7)/8)
	if committeeSize == fieldparams.SyncCommitteeLength {
		bits = bitfield.NewBitvector512()
	}
	for _, p := range participants {
		bits[p/8] |= 1 << (p % 8)
	}
	return &ethpb.SignedBeaconBlock{
		Version:       version.Altair,
		Slot:          slot,
		Root:          Root(byte(slot), 0xb1),
		ParentRoot:    make([]byte, fieldparams.RootLength),
		StateRoot:     Root(byte(slot), 0x57),
		SyncAggregate: &ethpb.SyncAggregate{SyncCommitteeBits: bits},
	}
}

// Root returns a recognizable 32 byte root.
func Root(b ...byte) []byte {
	r := make([]byte, fieldparams.RootLength)
	copy(r, b)
	return r
}
