package rewards

import (
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/altair"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/epoch/precompute"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/math"
)

// AttestationRewards maps the previous epoch participation of the requested validators onto the
// ideal reward table or onto the flag penalty. Results are in validator index order with one entry
// per validator, whatever the order or repetition of the request. An empty request covers every
// validator. stateVersion selects the inactivity penalty quotient.
//
// Spec code:
//
//	if index in unslashed_participating_indices:
//	    ...
//	elif flag_index != TIMELY_HEAD_FLAG_INDEX:
//	    penalties[index] += Gwei(base_reward * weight // WEIGHT_DENOMINATOR)
func AttestationRewards(
	p ParticipationSource,
	table []IdealReward,
	requested []primitives.ValidatorIndex,
	stateVersion int,
	cfg *params.BeaconChainConfig,
) ([]TotalReward, error) {
	perIncrement, err := altair.BaseRewardPerIncrement(p.TotalActiveBalance(), cfg)
	if err != nil {
		return nil, ArithmeticError(err, "could not compute base reward per increment")
	}
	n := p.NumValidators()
	for _, idx := range requested {
		if uint64(idx) >= uint64(n) {
			return nil, InvalidError(nil, "unknown validator %d", idx)
		}
	}
	filter := NewValidatorFilter(requested, nil)

	size := n
	if !filter.IsEmpty() {
		size = len(requested)
	}
	result := make([]TotalReward, 0, size)
	for i := 0; i < n; i++ {
		idx := primitives.ValidatorIndex(i)
		if !filter.Matches(idx, [fieldparams.BLSPubkeyLength]byte{}) {
			continue
		}
		v, err := p.Validator(idx)
		if err != nil {
			return nil, InvalidError(err, "unknown validator %d", idx)
		}
		r := TotalReward{ValidatorIndex: idx}
		if v.IsEligible {
			if err := validatorRewards(&r, v, table, perIncrement, stateVersion, cfg); err != nil {
				return nil, err
			}
		}
		result = append(result, r)
	}
	return result, nil
}

func validatorRewards(
	r *TotalReward,
	v *precompute.Validator,
	table []IdealReward,
	perIncrement uint64,
	stateVersion int,
	cfg *params.BeaconChainConfig,
) error {
	bucket := v.CurrentEpochEffectiveBalance / cfg.EffectiveBalanceIncrement
	if bucket >= uint64(len(table)) {
		return InvalidError(nil, "effective balance %d of validator %d exceeds the ideal reward table", v.CurrentEpochEffectiveBalance, r.ValidatorIndex)
	}
	ideal := table[bucket]
	baseReward, err := altair.BaseRewardForBalance(v.CurrentEpochEffectiveBalance, perIncrement, cfg)
	if err != nil {
		return ArithmeticError(err, "could not compute base reward of validator %d", r.ValidatorIndex)
	}

	flags := []struct {
		flag     altair.ParticipationFlag
		attested bool
		ideal    uint64
		out      *int64
	}{
		{altair.Source, v.IsPrevEpochSourceAttester, ideal.Source, &r.Source},
		{altair.Target, v.IsPrevEpochTargetAttester, ideal.Target, &r.Target},
		{altair.Head, v.IsPrevEpochHeadAttester, ideal.Head, &r.Head},
	}
	for _, f := range flags {
		if f.attested {
			reward, err := math.Int64(f.ideal)
			if err != nil {
				return ArithmeticError(err, "%s reward of validator %d", f.flag, r.ValidatorIndex)
			}
			*f.out = reward
			continue
		}
		if f.flag == altair.Head {
			continue
		}
		weight, err := f.flag.Weight(cfg)
		if err != nil {
			return InvalidError(err, "unknown participation flag")
		}
		penalty, err := flagPenalty(baseReward, weight, cfg)
		if err != nil {
			return ArithmeticError(err, "could not compute %s penalty of validator %d", f.flag, r.ValidatorIndex)
		}
		*f.out = -penalty
	}

	if !v.IsPrevEpochTargetAttester {
		penalty, err := altair.InactivityPenalty(v.CurrentEpochEffectiveBalance, v.InactivityScore, stateVersion, cfg)
		if err != nil {
			return ArithmeticError(err, "could not compute inactivity penalty of validator %d", r.ValidatorIndex)
		}
		signed, err := math.Int64(penalty)
		if err != nil {
			return ArithmeticError(err, "inactivity penalty of validator %d", r.ValidatorIndex)
		}
		r.Inactivity = -signed
	}
	return nil
}

func flagPenalty(baseReward, weight uint64, cfg *params.BeaconChainConfig) (int64, error) {
	numerator, err := math.Mul64(baseReward, weight)
	if err != nil {
		return 0, err
	}
	penalty, err := math.Div64(numerator, cfg.WeightDenominator)
	if err != nil {
		return 0, err
	}
	return math.Int64(penalty)
}
