package altair

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/epoch/precompute"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/math"
	"go.opencensus.io/trace"
)

// ParticipationCache holds the previous epoch participation view of a single state snapshot.
// It is built for one request and never shared.
type ParticipationCache struct {
	prevEpoch  primitives.Epoch
	inLeak     bool
	validators []*precompute.Validator
	balance    *precompute.Balance
}

// NewParticipationCache precomputes per validator participation and the aggregate balances of
// the previous epoch of the state.
//
// Spec code:
//
//	def get_unslashed_participating_indices(state: BeaconState, flag_index: int, epoch: Epoch) -> Set[ValidatorIndex]:
//	  assert epoch in (get_previous_epoch(state), get_current_epoch(state))
//	  if epoch == get_current_epoch(state):
//	      epoch_participation = state.current_epoch_participation
//	  else:
//	      epoch_participation = state.previous_epoch_participation
//	  active_validator_indices = get_active_validator_indices(state, epoch)
//	  participating_indices = [i for i in active_validator_indices if has_flag(epoch_participation[i], flag_index)]
//	  return set(filter(lambda index: not state.validators[index].slashed, participating_indices))
func NewParticipationCache(ctx context.Context, st state.ReadOnlyBeaconState, cfg *params.BeaconChainConfig) (*ParticipationCache, error) {
	ctx, span := trace.StartSpan(ctx, "altair.NewParticipationCache")
	defer span.End()

	participation, err := st.PreviousEpochParticipation()
	if err != nil {
		return nil, errors.Wrap(err, "could not get previous epoch participation")
	}
	scores, err := st.InactivityScores()
	if err != nil {
		return nil, errors.Wrap(err, "could not get inactivity scores")
	}
	if len(participation) != st.NumValidators() || len(scores) != st.NumValidators() {
		return nil, errors.Errorf("participation length %d and inactivity length %d do not match validator count %d",
			len(participation), len(scores), st.NumValidators())
	}

	prevEpoch := helpers.PrevEpoch(st, cfg)
	currentEpoch := helpers.CurrentEpoch(st, cfg)
	span.AddAttributes(trace.Int64Attribute("epoch", int64(prevEpoch)))

	vals := make([]*precompute.Validator, st.NumValidators())
	bal := &precompute.Balance{}
	err = st.ReadFromEveryValidator(func(idx int, val state.ReadOnlyValidator) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		eb := val.EffectiveBalance()
		v := &precompute.Validator{
			IsSlashed:                    val.Slashed(),
			IsActiveCurrentEpoch:         helpers.IsActiveValidatorUsingTrie(val, currentEpoch),
			IsActivePrevEpoch:            helpers.IsActiveValidatorUsingTrie(val, prevEpoch),
			IsEligible:                   helpers.IsEligibleForRewards(val, prevEpoch),
			CurrentEpochEffectiveBalance: eb,
			InactivityScore:              scores[idx],
		}
		if v.IsActiveCurrentEpoch {
			if bal.ActiveCurrentEpoch, err = math.Add64(bal.ActiveCurrentEpoch, eb); err != nil {
				return err
			}
		}
		if v.IsActivePrevEpoch {
			if bal.ActivePrevEpoch, err = math.Add64(bal.ActivePrevEpoch, eb); err != nil {
				return err
			}
			if !v.IsSlashed {
				if err := markParticipation(v, bal, participation[idx], cfg); err != nil {
					return err
				}
			}
		}
		vals[idx] = v
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not read every validator")
	}

	// Totals follow get_total_balance and never drop below one increment.
	bal.ActiveCurrentEpoch = math.Max(cfg.EffectiveBalanceIncrement, bal.ActiveCurrentEpoch)
	bal.ActivePrevEpoch = math.Max(cfg.EffectiveBalanceIncrement, bal.ActivePrevEpoch)
	bal.PrevEpochAttested = math.Max(cfg.EffectiveBalanceIncrement, bal.PrevEpochAttested)
	bal.PrevEpochTargetAttested = math.Max(cfg.EffectiveBalanceIncrement, bal.PrevEpochTargetAttested)
	bal.PrevEpochHeadAttested = math.Max(cfg.EffectiveBalanceIncrement, bal.PrevEpochHeadAttested)

	inLeak := helpers.IsInInactivityLeak(prevEpoch, st.FinalizedCheckpointEpoch(), cfg)
	if currentEpoch != cfg.GenesisEpoch {
		if err := processInactivityScores(vals, inLeak, cfg); err != nil {
			return nil, errors.Wrap(err, "could not process inactivity scores")
		}
	}

	return &ParticipationCache{
		prevEpoch:  prevEpoch,
		inLeak:     inLeak,
		validators: vals,
		balance:    bal,
	}, nil
}

// processInactivityScores moves the cached scores of eligible validators to the values the epoch
// transition computes before rewards are applied. Only the cached copy changes.
//
// Spec code:
//
//	def process_inactivity_updates(state: BeaconState) -> None:
//	  # Skip the genesis epoch as score updates are based on the previous epoch participation
//	  if get_current_epoch(state) == GENESIS_EPOCH:
//	      return
//	  for index in get_eligible_validator_indices(state):
//	      # Increase the inactivity score of inactive validators
//	      if index in get_unslashed_participating_indices(state, TIMELY_TARGET_FLAG_INDEX, get_previous_epoch(state)):
//	          state.inactivity_scores[index] -= min(1, state.inactivity_scores[index])
//	      else:
//	          state.inactivity_scores[index] += config.INACTIVITY_SCORE_BIAS
//	      # Decrease the inactivity score of all eligible validators during a leak-free epoch
//	      if not is_in_inactivity_leak(state):
//	          state.inactivity_scores[index] -= min(config.INACTIVITY_SCORE_RECOVERY_RATE, state.inactivity_scores[index])
func processInactivityScores(vals []*precompute.Validator, inLeak bool, cfg *params.BeaconChainConfig) error {
	for _, v := range vals {
		if !v.IsEligible {
			continue
		}
		if v.IsPrevEpochTargetAttester {
			v.InactivityScore -= math.Min(1, v.InactivityScore)
		} else {
			score, err := math.Add64(v.InactivityScore, cfg.InactivityScoreBias)
			if err != nil {
				return err
			}
			v.InactivityScore = score
		}
		if !inLeak {
			v.InactivityScore -= math.Min(cfg.InactivityScoreRecoveryRate, v.InactivityScore)
		}
	}
	return nil
}

func markParticipation(v *precompute.Validator, bal *precompute.Balance, flags byte, cfg *params.BeaconChainConfig) error {
	eb := v.CurrentEpochEffectiveBalance
	has, err := HasValidatorFlag(flags, cfg.TimelySourceFlagIndex)
	if err != nil {
		return err
	}
	if has {
		v.IsPrevEpochSourceAttester = true
		if bal.PrevEpochAttested, err = math.Add64(bal.PrevEpochAttested, eb); err != nil {
			return err
		}
	}
	if has, err = HasValidatorFlag(flags, cfg.TimelyTargetFlagIndex); err != nil {
		return err
	}
	if has {
		v.IsPrevEpochTargetAttester = true
		if bal.PrevEpochTargetAttested, err = math.Add64(bal.PrevEpochTargetAttested, eb); err != nil {
			return err
		}
	}
	if has, err = HasValidatorFlag(flags, cfg.TimelyHeadFlagIndex); err != nil {
		return err
	}
	if has {
		v.IsPrevEpochHeadAttester = true
		if bal.PrevEpochHeadAttested, err = math.Add64(bal.PrevEpochHeadAttested, eb); err != nil {
			return err
		}
	}
	return nil
}

// PrevEpoch is the epoch whose participation the cache describes.
func (c *ParticipationCache) PrevEpoch() primitives.Epoch {
	return c.prevEpoch
}

// InInactivityLeak reports whether the previous epoch is in an inactivity leak.
func (c *ParticipationCache) InInactivityLeak() bool {
	return c.inLeak
}

// TotalActiveBalance is the current epoch total active balance.
func (c *ParticipationCache) TotalActiveBalance() uint64 {
	return c.balance.ActiveCurrentEpoch
}

// Balance returns a copy of the aggregate balances.
func (c *ParticipationCache) Balance() precompute.Balance {
	return *c.balance
}

// NumValidators returns the number of validators covered by the cache.
func (c *ParticipationCache) NumValidators() int {
	return len(c.validators)
}

// UnslashedParticipatingBalance returns the clamped balance of unslashed validators that were
// active in the previous epoch and had the flag set.
func (c *ParticipationCache) UnslashedParticipatingBalance(flag ParticipationFlag) (uint64, error) {
	switch flag {
	case Source:
		return c.balance.PrevEpochAttested, nil
	case Target:
		return c.balance.PrevEpochTargetAttested, nil
	case Head:
		return c.balance.PrevEpochHeadAttested, nil
	default:
		return 0, errors.Wrapf(ErrInvalidFlagIndex, "flag %d", flag)
	}
}

// Validator returns the precomputed record of the validator at index.
func (c *ParticipationCache) Validator(idx primitives.ValidatorIndex) (*precompute.Validator, error) {
	if uint64(idx) >= uint64(len(c.validators)) {
		return nil, errors.Errorf("validator index %d out of range", idx)
	}
	return c.validators[idx], nil
}
