package altair

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
)

// ParticipationFlag identifies one of the timely attestation duties tracked in epoch participation.
type ParticipationFlag uint8

const (
	// Source is the timely source vote.
	Source ParticipationFlag = iota
	// Target is the timely target vote.
	Target
	// Head is the timely head vote.
	Head
)

// ParticipationFlags lists all flags in flag index order.
var ParticipationFlags = []ParticipationFlag{Source, Target, Head}

// ErrInvalidFlagIndex is returned when a flag index is out of the range of a participation byte.
var ErrInvalidFlagIndex = errors.New("invalid validator flag index")

func (f ParticipationFlag) String() string {
	switch f {
	case Source:
		return "source"
	case Target:
		return "target"
	case Head:
		return "head"
	default:
		return "unknown"
	}
}

// Index returns the bit position of the flag in a participation byte.
func (f ParticipationFlag) Index(cfg *params.BeaconChainConfig) (uint8, error) {
	switch f {
	case Source:
		return cfg.TimelySourceFlagIndex, nil
	case Target:
		return cfg.TimelyTargetFlagIndex, nil
	case Head:
		return cfg.TimelyHeadFlagIndex, nil
	default:
		return 0, errors.Wrapf(ErrInvalidFlagIndex, "flag %d", f)
	}
}

// Weight returns the incentive weight of the flag.
//
// Spec code:
//
//	PARTICIPATION_FLAG_WEIGHTS = [TIMELY_SOURCE_WEIGHT, TIMELY_TARGET_WEIGHT, TIMELY_HEAD_WEIGHT]
func (f ParticipationFlag) Weight(cfg *params.BeaconChainConfig) (uint64, error) {
	switch f {
	case Source:
		return cfg.TimelySourceWeight, nil
	case Target:
		return cfg.TimelyTargetWeight, nil
	case Head:
		return cfg.TimelyHeadWeight, nil
	default:
		return 0, errors.Wrapf(ErrInvalidFlagIndex, "flag %d", f)
	}
}

// HasValidatorFlag returns true if the flag at position has been set.
//
// Spec code:
//
//	def has_flag(flags: ParticipationFlags, flag_index: int) -> bool:
//	  flag = ParticipationFlags(2**flag_index)
//	  return flags & flag == flag
func HasValidatorFlag(flag, flagPosition uint8) (bool, error) {
	if flagPosition > 7 {
		return false, ErrInvalidFlagIndex
	}
	return ((flag >> flagPosition) & 1) == 1, nil
}
