package lookup

import (
	"context"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	"go.opencensus.io/trace"
)

// Stater is responsible for retrieving states.
type Stater interface {
	State(ctx context.Context, id []byte) (state.ReadOnlyBeaconState, error)
	StateRoot(ctx context.Context, id []byte) ([]byte, error)
	StateBySlot(ctx context.Context, slot primitives.Slot) (state.ReadOnlyBeaconState, error)
}

// BeaconDbStater is an implementation of Stater. It retrieves states from the beacon database.
type BeaconDbStater struct {
	BeaconDB db.ReadOnlyDatabase
	Blocker  Blocker
}

// State returns the BeaconState for a given identifier. The identifier can be one of:
//   - "head" (canonical head in node's view)
//   - "genesis"
//   - "finalized"
//   - <slot>
//   - <hex encoded state root with '0x' prefix>
//   - <state root>
func (p *BeaconDbStater) State(ctx context.Context, stateId []byte) (state.ReadOnlyBeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "lookup.State")
	defer span.End()

	root, err := p.StateRoot(ctx, stateId)
	if err != nil {
		return nil, err
	}
	return p.stateByRoot(ctx, bytesutil.ToBytes32(root))
}

// StateRoot returns a beacon state root for a given identifier. The identifier can be one of:
//   - "head" (canonical head in node's view)
//   - "genesis"
//   - "finalized"
//   - <slot>
//   - <hex encoded state root with '0x' prefix>
//   - <state root>
func (p *BeaconDbStater) StateRoot(ctx context.Context, stateId []byte) ([]byte, error) {
	// Raw roots may start with any bytes, including "0x".
	if len(stateId) == fieldparams.RootLength {
		return bytesutil.SafeCopyBytes(stateId), nil
	}
	stateIdString := strings.ToLower(string(stateId))
	switch stateIdString {
	case "head", "genesis", "finalized":
		blk, err := p.Blocker.Block(ctx, []byte(stateIdString))
		if err != nil {
			return nil, errors.Wrapf(err, "could not get %s block", stateIdString)
		}
		root := blk.StateRoot()
		return root[:], nil
	}
	if strings.HasPrefix(stateIdString, "0x") {
		root, err := hexutil.Decode(stateIdString)
		if err != nil {
			e := NewIdParseError("state", err)
			return nil, &e
		}
		if len(root) != fieldparams.RootLength {
			e := NewIdParseError("state", errors.Errorf("root has length %d", len(root)))
			return nil, &e
		}
		return root, nil
	}
	slot, parseErr := strconv.ParseUint(stateIdString, 10, 64)
	if parseErr != nil {
		// ID format does not match any valid options.
		e := NewIdParseError("state", parseErr)
		return nil, &e
	}
	root, ok, err := p.BeaconDB.StateRootAtSlot(ctx, primitives.Slot(slot))
	if err != nil {
		return nil, errors.Wrap(err, "could not read state slot index")
	}
	if !ok {
		e := NewStateNotFoundError("no state saved at slot %d", slot)
		return nil, &e
	}
	return root[:], nil
}

// StateBySlot returns the state saved at the requested slot.
func (p *BeaconDbStater) StateBySlot(ctx context.Context, target primitives.Slot) (state.ReadOnlyBeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "lookup.StateBySlot")
	defer span.End()

	if target == params.BeaconConfig().GenesisSlot {
		return p.State(ctx, []byte("genesis"))
	}
	return p.State(ctx, []byte(strconv.FormatUint(uint64(target), 10)))
}

func (p *BeaconDbStater) stateByRoot(ctx context.Context, root [32]byte) (state.ReadOnlyBeaconState, error) {
	st, err := p.BeaconDB.State(ctx, root)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get state %#x", root)
	}
	if st == nil {
		e := NewStateNotFoundError("no state with root %#x", root)
		return nil, &e
	}
	return st, nil
}
