package kv

import (
	"context"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// ErrNoHeadBlock is returned when the chain head has not been recorded yet.
var ErrNoHeadBlock = errors.New("no head block root saved")

// HeadBlockRoot returns the root of the latest canonical block.
func (s *Store) HeadBlockRoot(ctx context.Context) ([32]byte, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.HeadBlockRoot")
	defer span.End()
	var root [32]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(chainMetadataBucket).Get(headBlockRootKey)
		if enc == nil {
			return ErrNoHeadBlock
		}
		copy(root[:], enc)
		return nil
	})
	return root, err
}

// SaveHeadBlockRoot to the db. The block must already be saved.
func (s *Store) SaveHeadBlockRoot(ctx context.Context, blockRoot [32]byte) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.SaveHeadBlockRoot")
	defer span.End()
	if !s.HasBlock(ctx, blockRoot) {
		return errors.Errorf("no block found in db for head root %#x", blockRoot)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(chainMetadataBucket).Put(headBlockRootKey, blockRoot[:])
	})
}

// FinalizedCheckpoint returns the latest finalized checkpoint in the db. Before any checkpoint is
// saved it returns the genesis checkpoint.
func (s *Store) FinalizedCheckpoint(ctx context.Context) (*ethpb.Checkpoint, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.FinalizedCheckpoint")
	defer span.End()
	var checkpoint *ethpb.Checkpoint
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(finalizedCheckpointBucket).Get(finalizedKey)
		if enc == nil {
			checkpoint = &ethpb.Checkpoint{Root: make([]byte, fieldparams.RootLength)}
			return nil
		}
		checkpoint = &ethpb.Checkpoint{}
		return decode(enc, checkpoint)
	})
	return checkpoint, err
}

// SaveFinalizedCheckpoint records the finalized checkpoint. Checkpoints never move backwards.
func (s *Store) SaveFinalizedCheckpoint(ctx context.Context, checkpoint *ethpb.Checkpoint) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.SaveFinalizedCheckpoint")
	defer span.End()
	if checkpoint == nil {
		return errors.New("nil checkpoint")
	}
	current, err := s.FinalizedCheckpoint(ctx)
	if err != nil {
		return err
	}
	if checkpoint.Epoch < current.Epoch {
		return errors.Errorf("finalized checkpoint epoch %d is behind saved epoch %d", checkpoint.Epoch, current.Epoch)
	}
	enc, err := encode(checkpoint)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(finalizedCheckpointBucket).Put(finalizedKey, enc)
	})
}
