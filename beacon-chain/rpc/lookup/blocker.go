package lookup

import (
	"context"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/interfaces"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	"go.opencensus.io/trace"
)

// Blocker is responsible for retrieving blocks.
type Blocker interface {
	Block(ctx context.Context, id []byte) (interfaces.ReadOnlySignedBeaconBlock, error)
}

// BeaconDbBlocker is an implementation of Blocker. It retrieves blocks from the beacon chain database.
type BeaconDbBlocker struct {
	BeaconDB db.ReadOnlyDatabase
}

// Block returns the beacon block for a given identifier. The identifier can be one of:
//   - "head" (canonical head in node's view)
//   - "genesis"
//   - "finalized"
//   - <slot>
//   - <hex encoded block root with '0x' prefix>
//   - <block root>
func (p *BeaconDbBlocker) Block(ctx context.Context, id []byte) (interfaces.ReadOnlySignedBeaconBlock, error) {
	ctx, span := trace.StartSpan(ctx, "lookup.Block")
	defer span.End()

	root, err := p.blockRoot(ctx, id)
	if err != nil {
		return nil, err
	}
	blk, err := p.BeaconDB.Block(ctx, root)
	if err != nil {
		return nil, errors.Wrapf(err, "could not retrieve block %#x", root)
	}
	if blk == nil || blk.IsNil() {
		return nil, NewBlockNotFoundError("block not found for root " + hexutil.Encode(root[:]))
	}
	return blk, nil
}

func (p *BeaconDbBlocker) blockRoot(ctx context.Context, id []byte) ([32]byte, error) {
	// Raw roots may start with any bytes, including "0x".
	if len(id) == fieldparams.RootLength {
		return bytesutil.ToBytes32(id), nil
	}
	idString := strings.ToLower(string(id))
	switch idString {
	case "head":
		root, err := p.BeaconDB.HeadBlockRoot(ctx)
		if err != nil {
			return [32]byte{}, NewBlockNotFoundError("could not retrieve head block: " + err.Error())
		}
		return root, nil
	case "finalized":
		cp, err := p.BeaconDB.FinalizedCheckpoint(ctx)
		if err != nil {
			return [32]byte{}, errors.Wrap(err, "could not retrieve finalized checkpoint")
		}
		root := bytesutil.ToBytes32(cp.Root)
		if root == [32]byte{} {
			return p.blockRootAtSlot(ctx, params.BeaconConfig().GenesisSlot)
		}
		return root, nil
	case "genesis":
		return p.blockRootAtSlot(ctx, params.BeaconConfig().GenesisSlot)
	}
	if strings.HasPrefix(idString, "0x") {
		root, err := hexutil.Decode(idString)
		if err != nil {
			e := NewIdParseError("block", err)
			return [32]byte{}, &e
		}
		if len(root) != fieldparams.RootLength {
			e := NewIdParseError("block", errors.Errorf("root has length %d", len(root)))
			return [32]byte{}, &e
		}
		return bytesutil.ToBytes32(root), nil
	}
	slot, err := strconv.ParseUint(idString, 10, 64)
	if err != nil {
		e := NewIdParseError("block", err)
		return [32]byte{}, &e
	}
	return p.blockRootAtSlot(ctx, primitives.Slot(slot))
}

func (p *BeaconDbBlocker) blockRootAtSlot(ctx context.Context, slot primitives.Slot) ([32]byte, error) {
	root, ok, err := p.BeaconDB.BlockRootAtSlot(ctx, slot)
	if err != nil {
		return [32]byte{}, errors.Wrapf(err, "could not retrieve block root at slot %d", slot)
	}
	if !ok {
		return [32]byte{}, NewBlockNotFoundError("no block found at slot " + strconv.FormatUint(uint64(slot), 10))
	}
	return root, nil
}
