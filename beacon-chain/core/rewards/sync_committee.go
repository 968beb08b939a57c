package rewards

import (
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/state"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-rewards/math"
)

// SyncCommitteeState is the part of a state the sync committee calculator reads.
type SyncCommitteeState interface {
	state.ReadOnlySyncCommittee
	ValidatorIndexByPubkey(key [fieldparams.BLSPubkeyLength]byte) (primitives.ValidatorIndex, bool)
}

// SyncCommitteeRewards assigns +participantReward to every committee seat whose aggregate bit is
// set and -participantReward to every other seat, in committee order. A validator holding several
// seats appears once per seat. The result is nil when the committee has no members.
func SyncCommitteeRewards(
	st SyncCommitteeState,
	bits bitfield.Bitfield,
	participantReward uint64,
	filter *ValidatorFilter,
) ([]SyncCommitteeReward, error) {
	committee, err := st.CurrentSyncCommittee()
	if err != nil {
		return nil, InvalidError(err, "could not get current sync committee")
	}
	if len(committee.Pubkeys) == 0 {
		return nil, nil
	}
	if bits == nil || bits.Len() != uint64(len(committee.Pubkeys)) {
		var n uint64
		if bits != nil {
			n = bits.Len()
		}
		return nil, InvalidError(nil, "sync aggregate has %d bits, sync committee has %d members", n, len(committee.Pubkeys))
	}
	value, err := math.Int64(participantReward)
	if err != nil {
		return nil, ArithmeticError(err, "participant reward")
	}

	result := make([]SyncCommitteeReward, 0, len(committee.Pubkeys))
	for i, pk := range committee.Pubkeys {
		if len(pk) != fieldparams.BLSPubkeyLength {
			return nil, InvalidError(nil, "sync committee member %d has public key of length %d", i, len(pk))
		}
		key := bytesutil.ToBytes48(pk)
		idx, ok := st.ValidatorIndexByPubkey(key)
		if !ok {
			return nil, InvalidError(nil, "sync committee member %#x is not a known validator", pk)
		}
		if !filter.Matches(idx, key) {
			continue
		}
		reward := -value
		if bits.BitAt(uint64(i)) {
			reward = value
		}
		result = append(result, SyncCommitteeReward{ValidatorIndex: idx, Reward: reward})
	}
	return result, nil
}
