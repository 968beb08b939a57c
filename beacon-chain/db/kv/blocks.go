package kv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/blocks"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/interfaces"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// Block retrieval by root. A missing block returns nil without error.
func (s *Store) Block(ctx context.Context, blockRoot [32]byte) (interfaces.ReadOnlySignedBeaconBlock, error) {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.Block")
	defer span.End()
	// Return block from cache if it exists.
	if v, ok := s.blockCache.Get(string(blockRoot[:])); v != nil && ok {
		return v.(interfaces.ReadOnlySignedBeaconBlock), nil
	}
	var blk interfaces.ReadOnlySignedBeaconBlock
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(blocksBucket).Get(blockRoot[:])
		if enc == nil {
			return nil
		}
		var err error
		blk, err = unmarshalBlock(ctx, enc)
		return err
	})
	if err != nil || blk == nil {
		return nil, err
	}
	s.blockCache.Add(string(blockRoot[:]), blk)
	return blk, nil
}

// HasBlock checks if a block by root exists in the db.
func (s *Store) HasBlock(ctx context.Context, blockRoot [32]byte) bool {
	_, span := trace.StartSpan(ctx, "BeaconDB.HasBlock")
	defer span.End()
	if v, ok := s.blockCache.Get(string(blockRoot[:])); v != nil && ok {
		return true
	}
	exists := false
	if err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(blocksBucket).Get(blockRoot[:]) != nil
		return nil
	}); err != nil { // This view never returns an error, but we'll handle anyway for sanity.
		panic(err)
	}
	return exists
}

// BlockRootAtSlot returns the root of the canonical block saved at the slot.
func (s *Store) BlockRootAtSlot(ctx context.Context, slot primitives.Slot) ([32]byte, bool, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.BlockRootAtSlot")
	defer span.End()
	return s.rootAtSlot(blockSlotIndicesBucket, slot)
}

// SaveBlock to the db. The block also becomes the canonical block of its slot.
func (s *Store) SaveBlock(ctx context.Context, signed interfaces.ReadOnlySignedBeaconBlock) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.SaveBlock")
	defer span.End()
	return s.SaveBlocks(ctx, []interfaces.ReadOnlySignedBeaconBlock{signed})
}

// SaveBlocks via bulk updates to the db.
func (s *Store) SaveBlocks(ctx context.Context, blks []interfaces.ReadOnlySignedBeaconBlock) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveBlocks")
	defer span.End()

	encoded := make([][]byte, len(blks))
	for i, blk := range blks {
		if blk == nil || blk.IsNil() {
			return errors.Wrapf(blocks.ErrNilObject, "block %d", i)
		}
		enc, err := encode(blk.Proto())
		if err != nil {
			return errors.Wrapf(err, "could not encode block at slot %d", blk.Slot())
		}
		encoded[i] = enc
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(blocksBucket)
		idx := tx.Bucket(blockSlotIndicesBucket)
		for i, blk := range blks {
			root := blk.Root()
			if err := bkt.Put(root[:], encoded[i]); err != nil {
				return err
			}
			if err := idx.Put(bytesutil.Uint64ToBytesBigEndian(uint64(blk.Slot())), root[:]); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	for _, blk := range blks {
		root := blk.Root()
		s.blockCache.Add(string(root[:]), blk)
	}
	return nil
}

func (s *Store) rootAtSlot(bucket []byte, slot primitives.Slot) ([32]byte, bool, error) {
	var root [32]byte
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(bucket).Get(bytesutil.Uint64ToBytesBigEndian(uint64(slot)))
		if enc == nil {
			return nil
		}
		if len(enc) != len(root) {
			return errors.Errorf("corrupted slot index entry of length %d at slot %d", len(enc), slot)
		}
		copy(root[:], enc)
		found = true
		return nil
	})
	return root, found, err
}

// unmarshal block from marshaled proto beacon block bytes to versioned beacon block struct type.
func unmarshalBlock(_ context.Context, enc []byte) (interfaces.ReadOnlySignedBeaconBlock, error) {
	pb := &ethpb.SignedBeaconBlock{}
	if err := decode(enc, pb); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal block")
	}
	return blocks.NewSignedBeaconBlock(pb)
}
