// Package importer copies Altair and later states and blocks from an upstream beacon node
// into the local store so that rewards can be served for them.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/iface"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/kv"
	statenative "github.com/prysmaticlabs/prysm-rewards/beacon-chain/state/state-native"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/blocks"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/runtime"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkerCount = 4
	defaultBatchSize   = 32
)

// Database is the storage the importer writes to.
type Database interface {
	iface.HeadAccessDatabase
}

// Service imports a range of slots once and then idles.
type Service struct {
	ctx       context.Context
	cancel    context.CancelFunc
	db        Database
	provider  Provider
	startSlot primitives.Slot
	endSlot   primitives.Slot
	toHead    bool
	nWorkers  int
	batchSize uint64
	done      chan struct{}
	started   bool

	lock    sync.RWMutex
	lastErr error
}

var _ runtime.Service = (*Service)(nil)

// ServiceOption configures the importer.
type ServiceOption func(*Service) error

// WithDatabase sets the store imported data is written to.
func WithDatabase(db Database) ServiceOption {
	return func(s *Service) error {
		s.db = db
		return nil
	}
}

// WithProvider sets the upstream the data is read from.
func WithProvider(p Provider) ServiceOption {
	return func(s *Service) error {
		s.provider = p
		return nil
	}
}

// WithSlotRange limits the import to [start, end]. An end of zero imports up to the upstream head.
func WithSlotRange(start, end primitives.Slot) ServiceOption {
	return func(s *Service) error {
		if end != 0 && end < start {
			return errors.Errorf("end slot %d is before start slot %d", end, start)
		}
		s.startSlot = start
		s.endSlot = end
		s.toHead = end == 0
		return nil
	}
}

func WithWorkerCount(n int) ServiceOption {
	return func(s *Service) error {
		if n <= 0 {
			return errors.New("worker count must be positive")
		}
		s.nWorkers = n
		return nil
	}
}

func WithBatchSize(n uint64) ServiceOption {
	return func(s *Service) error {
		if n == 0 {
			return errors.New("batch size must be positive")
		}
		s.batchSize = n
		return nil
	}
}

// NewService builds an importer. A database and a provider are required.
func NewService(ctx context.Context, opts ...ServiceOption) (*Service, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &Service{
		ctx:       ctx,
		cancel:    cancel,
		nWorkers:  defaultWorkerCount,
		batchSize: defaultBatchSize,
		toHead:    true,
		done:      make(chan struct{}),
	}
	for _, o := range opts {
		if err := o(s); err != nil {
			cancel()
			return nil, err
		}
	}
	if s.db == nil {
		cancel()
		return nil, errors.New("database option not configured")
	}
	if s.provider == nil {
		cancel()
		return nil, errors.New("provider option not configured")
	}
	return s, nil
}

// Start runs the import in the background.
func (s *Service) Start() {
	s.lock.Lock()
	s.started = true
	s.lock.Unlock()
	go func() {
		defer close(s.done)
		if err := s.Import(s.ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.WithError(err).Error("Import failed")
			s.setErr(err)
		}
	}()
}

// Stop cancels a running import and waits for it to return.
func (s *Service) Stop() error {
	s.cancel()
	s.lock.RLock()
	started := s.started
	s.lock.RUnlock()
	if !started {
		return nil
	}
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		return errors.New("timed out waiting for import to stop")
	}
	return nil
}

// Status reports the error of a failed import.
func (s *Service) Status() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.lastErr
}

func (s *Service) setErr(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.lastErr = err
}

// slotData is what the upstream holds for one slot. block is nil for a skipped slot.
type slotData struct {
	slot      primitives.Slot
	stateRoot [32]byte
	state     *ethpb.BeaconState
	block     *ethpb.SignedBeaconBlock
}

// Import copies every slot of the configured range into the database, batch by batch.
func (s *Service) Import(ctx context.Context) error {
	end := s.endSlot
	if s.toHead {
		head, err := s.headSlot(ctx)
		if err != nil {
			return err
		}
		end = head
	}
	if end < s.startSlot {
		log.WithFields(logrus.Fields{"start": s.startSlot, "head": end}).Warn("Nothing to import")
		return nil
	}
	log.WithFields(logrus.Fields{"start": s.startSlot, "end": end}).Info("Importing slots")

	start := s.startSlot
	for {
		last, err := start.SafeAdd(s.batchSize - 1)
		if err != nil || last > end {
			last = end
		}
		batch, err := s.fetchBatch(ctx, start, last)
		if err != nil {
			return err
		}
		if err := s.saveBatch(ctx, batch); err != nil {
			return err
		}
		if last == end {
			break
		}
		start = last + 1
	}
	log.WithField("slot", end).Info("Import complete")
	return nil
}

func (s *Service) headSlot(ctx context.Context) (primitives.Slot, error) {
	blk, err := s.provider.SignedBeaconBlock(ctx, "head")
	if err != nil {
		return 0, errors.Wrap(err, "could not fetch head block")
	}
	if blk == nil {
		return 0, errors.New("upstream has no head block")
	}
	slot, err := blk.Slot()
	if err != nil {
		return 0, errors.Wrap(err, "could not read head block slot")
	}
	return primitives.Slot(slot), nil
}

func (s *Service) fetchBatch(ctx context.Context, start, end primitives.Slot) ([]*slotData, error) {
	ctx, span := trace.StartSpan(ctx, "importer.fetchBatch")
	defer span.End()

	batch := make([]*slotData, uint64(end-start)+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.nWorkers)
	for i := range batch {
		i := i
		slot := start + primitives.Slot(i)
		g.Go(func() error {
			d, err := s.fetchSlot(ctx, slot)
			if err != nil {
				return errors.Wrapf(err, "could not import slot %d", slot)
			}
			batch[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}

// fetchSlot returns nil when the upstream has no Altair or later state for the slot.
func (s *Service) fetchSlot(ctx context.Context, slot primitives.Slot) (*slotData, error) {
	id := strconv.FormatUint(uint64(slot), 10)
	root, err := s.provider.BeaconStateRoot(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch state root")
	}
	if root == nil {
		log.WithField("slot", slot).Debug("No state available upstream")
		return nil, nil
	}
	vst, err := s.provider.BeaconState(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch state")
	}
	if vst == nil {
		log.WithField("slot", slot).Debug("No state available upstream")
		return nil, nil
	}
	st, err := convertState(vst, *root)
	if errors.Is(err, errUnsupportedVersion) {
		log.WithField("slot", slot).Debug("Skipping state of unsupported fork")
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not convert state")
	}
	d := &slotData{slot: slot, stateRoot: *root, state: st}

	vblk, err := s.provider.SignedBeaconBlock(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch block")
	}
	if vblk == nil {
		return d, nil
	}
	blk, err := convertBlock(vblk)
	if err != nil && !errors.Is(err, errUnsupportedVersion) {
		return nil, errors.Wrap(err, "could not convert block")
	}
	d.block = blk
	return d, nil
}

func (s *Service) saveBatch(ctx context.Context, batch []*slotData) error {
	ctx, span := trace.StartSpan(ctx, "importer.saveBatch")
	defer span.End()

	var head [32]byte
	var headSlot primitives.Slot
	var finalized *ethpb.Checkpoint
	for _, d := range batch {
		if d == nil {
			continue
		}
		if d.block != nil {
			blk, err := blocks.NewSignedBeaconBlock(d.block)
			if err != nil {
				return errors.Wrapf(err, "could not wrap block at slot %d", d.slot)
			}
			if err := s.db.SaveBlock(ctx, blk); err != nil {
				return errors.Wrapf(err, "could not save block at slot %d", d.slot)
			}
			head = bytesutil.ToBytes32(d.block.Root)
			headSlot = d.slot
			importedBlocksCount.Inc()
		}
		if err := s.saveState(ctx, d); err != nil {
			return err
		}
		finalized = d.state.FinalizedCheckpoint
		importedSlotsCount.Inc()
		lastImportedSlot.Set(float64(d.slot))
	}
	if head != [32]byte{} {
		if err := s.saveHead(ctx, head, headSlot); err != nil {
			return err
		}
	}
	if finalized == nil {
		return nil
	}
	current, err := s.db.FinalizedCheckpoint(ctx)
	if err != nil {
		return errors.Wrap(err, "could not read finalized checkpoint")
	}
	// Re-imports of older ranges must not move finality backwards.
	if finalized.Epoch >= current.Epoch {
		if err := s.db.SaveFinalizedCheckpoint(ctx, finalized); err != nil {
			return errors.Wrap(err, "could not save finalized checkpoint")
		}
	}
	return nil
}

// saveState stores the state of the slot unless it is already present. A different state
// stored for the same slot was orphaned upstream and is removed.
func (s *Service) saveState(ctx context.Context, d *slotData) error {
	prev, ok, err := s.db.StateRootAtSlot(ctx, d.slot)
	if err != nil {
		return errors.Wrapf(err, "could not read state index at slot %d", d.slot)
	}
	if ok && prev != d.stateRoot {
		log.WithFields(logrus.Fields{
			"slot":    d.slot,
			"oldRoot": fmt.Sprintf("%#x", prev),
			"newRoot": fmt.Sprintf("%#x", d.stateRoot),
		}).Debug("Replacing orphaned state")
		if err := s.db.DeleteState(ctx, prev); err != nil {
			return errors.Wrapf(err, "could not delete orphaned state at slot %d", d.slot)
		}
	}
	has, err := s.db.HasState(ctx, d.stateRoot)
	if err != nil {
		return errors.Wrapf(err, "could not check state at slot %d", d.slot)
	}
	if has {
		return nil
	}
	st, err := statenative.InitializeFromProto(d.state)
	if err != nil {
		return errors.Wrapf(err, "could not wrap state at slot %d", d.slot)
	}
	if err := s.db.SaveState(ctx, st, d.stateRoot); err != nil {
		return errors.Wrapf(err, "could not save state at slot %d", d.slot)
	}
	return nil
}

// saveHead moves the head to root unless the stored head is at a later slot.
func (s *Service) saveHead(ctx context.Context, root [32]byte, slot primitives.Slot) error {
	current, err := s.db.HeadBlockRoot(ctx)
	switch {
	case errors.Is(err, kv.ErrNoHeadBlock):
	case err != nil:
		return errors.Wrap(err, "could not read head block root")
	default:
		blk, err := s.db.Block(ctx, current)
		if err != nil {
			return errors.Wrap(err, "could not read head block")
		}
		if blk != nil && blk.Slot() > slot {
			return nil
		}
	}
	if err := s.db.SaveHeadBlockRoot(ctx, root); err != nil {
		return errors.Wrap(err, "could not save head block root")
	}
	return nil
}
