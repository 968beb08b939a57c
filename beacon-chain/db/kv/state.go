package kv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	statenative "github.com/prysmaticlabs/prysm-rewards/beacon-chain/state/state-native"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// State returns the saved state using state root as key. A missing state returns nil without error.
func (s *Store) State(ctx context.Context, stateRoot [32]byte) (state.ReadOnlyBeaconState, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.State")
	defer span.End()
	if v, ok := s.stateCache.Get(string(stateRoot[:])); v != nil && ok {
		return v.(state.ReadOnlyBeaconState), nil
	}
	var enc []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		enc = bytesutil.SafeCopyBytes(tx.Bucket(stateBucket).Get(stateRoot[:]))
		return nil
	}); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, nil
	}
	st, err := s.unmarshalState(enc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not unmarshal state %#x", stateRoot)
	}
	s.stateCache.Add(string(stateRoot[:]), st)
	return st, nil
}

// HasState checks if a state by root exists in the db.
func (s *Store) HasState(ctx context.Context, stateRoot [32]byte) (bool, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.HasState")
	defer span.End()
	if v, ok := s.stateCache.Get(string(stateRoot[:])); v != nil && ok {
		return true, nil
	}
	hasState := false
	err := s.db.View(func(tx *bolt.Tx) error {
		hasState = tx.Bucket(stateBucket).Get(stateRoot[:]) != nil
		return nil
	})
	return hasState, err
}

// StateRootAtSlot returns the root of the state saved at the slot.
func (s *Store) StateRootAtSlot(ctx context.Context, slot primitives.Slot) ([32]byte, bool, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.StateRootAtSlot")
	defer span.End()
	return s.rootAtSlot(stateSlotIndicesBucket, slot)
}

// SaveState stores a state to the db using its state root and indexes it by slot.
func (s *Store) SaveState(ctx context.Context, st state.ReadOnlyBeaconState, stateRoot [32]byte) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.SaveState")
	defer span.End()
	if st == nil {
		return errors.New("nil state")
	}
	enc, err := encode(st.ToProto())
	if err != nil {
		return errors.Wrap(err, "could not encode state")
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(stateBucket).Put(stateRoot[:], enc); err != nil {
			return err
		}
		return tx.Bucket(stateSlotIndicesBucket).Put(bytesutil.Uint64ToBytesBigEndian(uint64(st.Slot())), stateRoot[:])
	}); err != nil {
		return err
	}
	s.stateCache.Add(string(stateRoot[:]), st)
	return nil
}

// DeleteState removes the state and its slot index entry, if the index still points at it.
func (s *Store) DeleteState(ctx context.Context, stateRoot [32]byte) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.DeleteState")
	defer span.End()
	s.stateCache.Remove(string(stateRoot[:]))
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(stateBucket)
		enc := bkt.Get(stateRoot[:])
		if enc == nil {
			return nil
		}
		st, err := s.unmarshalState(bytesutil.SafeCopyBytes(enc))
		if err != nil {
			return err
		}
		idx := tx.Bucket(stateSlotIndicesBucket)
		slotKey := bytesutil.Uint64ToBytesBigEndian(uint64(st.Slot()))
		if bytesutil.ToBytes32(idx.Get(slotKey)) == stateRoot {
			if err := idx.Delete(slotKey); err != nil {
				return err
			}
		}
		return bkt.Delete(stateRoot[:])
	})
}

func (s *Store) unmarshalState(enc []byte) (state.ReadOnlyBeaconState, error) {
	pb := &ethpb.BeaconState{}
	if err := decode(enc, pb); err != nil {
		return nil, err
	}
	return statenative.InitializeFromProto(pb)
}
