// Package rewards serves the attestation and sync committee reward endpoints of the beacon API.
package rewards

import (
	"context"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/altair"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/helpers"
	corerewards "github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/rewards"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/rpc/lookup"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
	"github.com/prysmaticlabs/prysm-rewards/time/slots"
	"go.opencensus.io/trace"
)

// AttestationRewardsResult holds the ideal reward table and the per-validator rewards of an epoch.
type AttestationRewardsResult struct {
	IdealRewards        []corerewards.IdealReward
	TotalRewards        []corerewards.TotalReward
	ExecutionOptimistic bool
	Finalized           bool
}

// SyncCommitteeRewardsResult holds the per-seat sync committee rewards of a block.
type SyncCommitteeRewardsResult struct {
	Rewards             []corerewards.SyncCommitteeReward
	ExecutionOptimistic bool
	Finalized           bool
}

// RewardFetcher computes the rewards served by the API.
type RewardFetcher interface {
	ComputeAttestationRewards(ctx context.Context, epoch primitives.Epoch, validatorIds []string) (*AttestationRewardsResult, error)
	ComputeSyncCommitteeRewards(ctx context.Context, blockId string, validatorIds []string) (*SyncCommitteeRewardsResult, error)
}

// Service resolves the states and blocks a reward request needs and runs the reward calculators.
// Every returned error carries one of the kinds of the core rewards package, except for failures
// of the storage layer itself.
type Service struct {
	Blocker lookup.Blocker
	Stater  lookup.Stater
	// Config is the chain configuration of the computation. The global beacon config is used when nil.
	Config *params.BeaconChainConfig
}

var _ RewardFetcher = (*Service)(nil)

func (s *Service) config() *params.BeaconChainConfig {
	if s.Config != nil {
		return s.Config
	}
	return params.BeaconConfig()
}

// ComputeAttestationRewards returns the rewards of the attestations made during the epoch. They
// are read from the state at the last slot of the following epoch, whose previous epoch is the
// requested one.
func (s *Service) ComputeAttestationRewards(
	ctx context.Context,
	epoch primitives.Epoch,
	validatorIds []string,
) (*AttestationRewardsResult, error) {
	ctx, span := trace.StartSpan(ctx, "rewards.ComputeAttestationRewards")
	defer span.End()

	cfg := s.config()
	if epoch < cfg.AltairForkEpoch {
		return nil, corerewards.InvalidError(nil, "attestation rewards are not available before the Altair fork epoch %d", cfg.AltairForkEpoch)
	}
	if epoch+1 < epoch {
		return nil, corerewards.InvalidError(nil, "epoch %d is too large", epoch)
	}
	stateSlot, err := slots.EpochEnd(epoch+1, cfg.SlotsPerEpoch)
	if err != nil {
		return nil, corerewards.InvalidError(err, "epoch %d is too large", epoch)
	}
	head, err := s.Blocker.Block(ctx, []byte("head"))
	if err != nil {
		return nil, lookupError(err, "could not get head block")
	}
	if stateSlot > head.Slot() {
		return nil, corerewards.NotFoundError(
			nil,
			"attestation rewards for epoch %d are available after slot %d, head is at slot %d",
			epoch,
			stateSlot,
			head.Slot(),
		)
	}
	st, err := s.Stater.StateBySlot(ctx, stateSlot)
	if err != nil {
		return nil, lookupError(err, "could not get state at slot %d", stateSlot)
	}
	requested, err := requestedIndices(st, validatorIds)
	if err != nil {
		return nil, err
	}

	cache, err := altair.NewParticipationCache(ctx, st, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not build participation cache")
	}
	ideal, err := corerewards.IdealRewards(cache, cfg.MaxEffectiveBalanceForVersion(st.Version()), cfg)
	if err != nil {
		return nil, err
	}
	totals, err := corerewards.AttestationRewards(cache, ideal, requested, st.Version(), cfg)
	if err != nil {
		return nil, err
	}
	finalized, err := s.isFinalized(ctx, st)
	if err != nil {
		return nil, err
	}
	return &AttestationRewardsResult{
		IdealRewards: ideal,
		TotalRewards: totals,
		Finalized:    finalized,
	}, nil
}

// ComputeSyncCommitteeRewards returns the reward of every sync committee seat for the block,
// positive for seats that signed and negative for seats that did not.
func (s *Service) ComputeSyncCommitteeRewards(
	ctx context.Context,
	blockId string,
	validatorIds []string,
) (*SyncCommitteeRewardsResult, error) {
	ctx, span := trace.StartSpan(ctx, "rewards.ComputeSyncCommitteeRewards")
	defer span.End()

	cfg := s.config()
	blk, err := s.Blocker.Block(ctx, []byte(blockId))
	if err != nil {
		return nil, lookupError(err, "could not get block %s", blockId)
	}
	if blk.Version() < version.Altair {
		return nil, corerewards.InvalidError(nil, "sync committee rewards are not supported for %s blocks", version.String(blk.Version()))
	}
	agg, err := blk.SyncAggregate()
	if err != nil {
		return nil, corerewards.InvalidError(err, "could not get sync aggregate")
	}
	stateRoot := blk.StateRoot()
	st, err := s.Stater.State(ctx, stateRoot[:])
	if err != nil {
		return nil, lookupError(err, "could not get state for block at slot %d", blk.Slot())
	}
	indices, pubkeys, err := parseValidatorIds(validatorIds)
	if err != nil {
		return nil, err
	}

	activeBalance, err := helpers.TotalActiveBalance(st, cfg)
	if err != nil {
		return nil, corerewards.ArithmeticError(err, "could not compute total active balance")
	}
	_, participantReward, err := altair.SyncRewards(activeBalance, cfg)
	if err != nil {
		return nil, corerewards.ArithmeticError(err, "could not compute sync committee reward")
	}
	res, err := corerewards.SyncCommitteeRewards(st, agg.SyncCommitteeBits(), participantReward, corerewards.NewValidatorFilter(indices, pubkeys))
	if err != nil {
		return nil, err
	}
	finalized, err := s.isFinalized(ctx, st)
	if err != nil {
		return nil, err
	}
	return &SyncCommitteeRewardsResult{
		Rewards:   res,
		Finalized: finalized,
	}, nil
}

// isFinalized reports whether the epoch of st is at or before the finalized epoch of the head state.
func (s *Service) isFinalized(ctx context.Context, st state.ReadOnlyBeaconState) (bool, error) {
	head, err := s.Stater.State(ctx, []byte("head"))
	if err != nil {
		return false, lookupError(err, "could not get head state")
	}
	return slots.ToEpoch(st.Slot(), s.config().SlotsPerEpoch) <= head.FinalizedCheckpointEpoch(), nil
}

// requestedIndices resolves validator ids against the registry of st.
func requestedIndices(st state.ReadOnlyValidators, validatorIds []string) ([]primitives.ValidatorIndex, error) {
	result := make([]primitives.ValidatorIndex, 0, len(validatorIds))
	for _, id := range validatorIds {
		idx, pubkey, isPubkey, err := parseValidatorId(id)
		if err != nil {
			return nil, err
		}
		if isPubkey {
			var ok bool
			idx, ok = st.ValidatorIndexByPubkey(pubkey)
			if !ok {
				return nil, corerewards.InvalidError(nil, "unknown validator %s", id)
			}
		}
		result = append(result, idx)
	}
	return result, nil
}

func parseValidatorIds(validatorIds []string) ([]primitives.ValidatorIndex, [][fieldparams.BLSPubkeyLength]byte, error) {
	var indices []primitives.ValidatorIndex
	var pubkeys [][fieldparams.BLSPubkeyLength]byte
	for _, id := range validatorIds {
		idx, pubkey, isPubkey, err := parseValidatorId(id)
		if err != nil {
			return nil, nil, err
		}
		if isPubkey {
			pubkeys = append(pubkeys, pubkey)
		} else {
			indices = append(indices, idx)
		}
	}
	return indices, pubkeys, nil
}

// parseValidatorId accepts a decimal validator index or a 0x-prefixed hex public key.
func parseValidatorId(id string) (primitives.ValidatorIndex, [fieldparams.BLSPubkeyLength]byte, bool, error) {
	if strings.HasPrefix(id, "0x") {
		b, err := hexutil.Decode(id)
		if err != nil {
			return 0, [fieldparams.BLSPubkeyLength]byte{}, false, corerewards.InvalidError(err, "invalid validator id %s", id)
		}
		if len(b) != fieldparams.BLSPubkeyLength {
			return 0, [fieldparams.BLSPubkeyLength]byte{}, false, corerewards.InvalidError(nil, "invalid validator id %s: public key has length %d", id, len(b))
		}
		return 0, bytesutil.ToBytes48(b), true, nil
	}
	idx, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, [fieldparams.BLSPubkeyLength]byte{}, false, corerewards.InvalidError(err, "invalid validator id %s", id)
	}
	return primitives.ValidatorIndex(idx), [fieldparams.BLSPubkeyLength]byte{}, false, nil
}

// lookupError tags the typed errors of the lookup package with a reward error kind.
func lookupError(err error, format string, args ...interface{}) error {
	var parseErr *lookup.IdParseError
	var stateNotFound *lookup.StateNotFoundError
	var blockNotFound lookup.BlockNotFoundError
	switch {
	case errors.As(err, &parseErr):
		return corerewards.InvalidError(err, format, args...)
	case errors.As(err, &stateNotFound), errors.As(err, &blockNotFound):
		return corerewards.NotFoundError(err, format, args...)
	default:
		return errors.Wrapf(err, format, args...)
	}
}
