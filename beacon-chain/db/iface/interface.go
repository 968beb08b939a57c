// Package iface defines the actual database interface used
// by the rewards node, also containing useful, scoped interfaces such as
// a ReadOnlyDatabase.
package iface

import (
	"context"
	"io"

	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/interfaces"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
)

// ReadOnlyDatabase defines a struct which only has read access to database methods.
type ReadOnlyDatabase interface {
	// Block related methods.
	Block(ctx context.Context, blockRoot [32]byte) (interfaces.ReadOnlySignedBeaconBlock, error)
	HasBlock(ctx context.Context, blockRoot [32]byte) bool
	BlockRootAtSlot(ctx context.Context, slot primitives.Slot) ([32]byte, bool, error)
	HeadBlockRoot(ctx context.Context) ([32]byte, error)
	// State related methods.
	State(ctx context.Context, stateRoot [32]byte) (state.ReadOnlyBeaconState, error)
	HasState(ctx context.Context, stateRoot [32]byte) (bool, error)
	StateRootAtSlot(ctx context.Context, slot primitives.Slot) ([32]byte, bool, error)
	// Checkpoint operations.
	FinalizedCheckpoint(ctx context.Context) (*ethpb.Checkpoint, error)
}

// NoHeadAccessDatabase defines a struct without access to chain head data.
type NoHeadAccessDatabase interface {
	ReadOnlyDatabase

	// Block related methods.
	SaveBlock(ctx context.Context, block interfaces.ReadOnlySignedBeaconBlock) error
	SaveBlocks(ctx context.Context, blocks []interfaces.ReadOnlySignedBeaconBlock) error
	// State related methods.
	SaveState(ctx context.Context, state state.ReadOnlyBeaconState, stateRoot [32]byte) error
	DeleteState(ctx context.Context, stateRoot [32]byte) error
}

// HeadAccessDatabase defines a struct with access to reading chain head data.
type HeadAccessDatabase interface {
	NoHeadAccessDatabase

	SaveHeadBlockRoot(ctx context.Context, blockRoot [32]byte) error
	SaveFinalizedCheckpoint(ctx context.Context, checkpoint *ethpb.Checkpoint) error
}

// Database interface with full access.
type Database interface {
	io.Closer
	HeadAccessDatabase

	DatabasePath() string
	ClearDB() error
	Backup(ctx context.Context, outputDir string, overwrite bool) error
}
