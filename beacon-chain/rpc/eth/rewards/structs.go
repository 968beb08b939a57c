package rewards

import (
	"strconv"

	corerewards "github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/rewards"
)

type AttestationRewardsResponse struct {
	Data                AttestationRewards `json:"data"`
	ExecutionOptimistic bool               `json:"execution_optimistic"`
	Finalized           bool               `json:"finalized"`
}

type AttestationRewards struct {
	IdealRewards []IdealAttestationReward `json:"ideal_rewards"`
	TotalRewards []TotalAttestationReward `json:"total_rewards"`
}

type IdealAttestationReward struct {
	EffectiveBalance string `json:"effective_balance"`
	Head             string `json:"head"`
	Target           string `json:"target"`
	Source           string `json:"source"`
}

type TotalAttestationReward struct {
	ValidatorIndex string `json:"validator_index"`
	Head           string `json:"head"`
	Target         string `json:"target"`
	Source         string `json:"source"`
	Inactivity     string `json:"inactivity"`
}

type SyncCommitteeRewardsResponse struct {
	Data                []SyncCommitteeReward `json:"data"`
	ExecutionOptimistic bool                  `json:"execution_optimistic"`
	Finalized           bool                  `json:"finalized"`
}

type SyncCommitteeReward struct {
	ValidatorIndex string `json:"validator_index"`
	Reward         string `json:"reward"`
}

func idealRewardsToJson(rs []corerewards.IdealReward) []IdealAttestationReward {
	result := make([]IdealAttestationReward, len(rs))
	for i, r := range rs {
		result[i] = IdealAttestationReward{
			EffectiveBalance: strconv.FormatUint(r.EffectiveBalance, 10),
			Head:             strconv.FormatUint(r.Head, 10),
			Target:           strconv.FormatUint(r.Target, 10),
			Source:           strconv.FormatUint(r.Source, 10),
		}
	}
	return result
}

func totalRewardsToJson(rs []corerewards.TotalReward) []TotalAttestationReward {
	result := make([]TotalAttestationReward, len(rs))
	for i, r := range rs {
		result[i] = TotalAttestationReward{
			ValidatorIndex: strconv.FormatUint(uint64(r.ValidatorIndex), 10),
			Head:           strconv.FormatInt(r.Head, 10),
			Target:         strconv.FormatInt(r.Target, 10),
			Source:         strconv.FormatInt(r.Source, 10),
			Inactivity:     strconv.FormatInt(r.Inactivity, 10),
		}
	}
	return result
}

func syncCommitteeRewardsToJson(rs []corerewards.SyncCommitteeReward) []SyncCommitteeReward {
	// An empty committee has no result at all, unlike a filter that matched nobody.
	if rs == nil {
		return nil
	}
	result := make([]SyncCommitteeReward, len(rs))
	for i, r := range rs {
		result[i] = SyncCommitteeReward{
			ValidatorIndex: strconv.FormatUint(uint64(r.ValidatorIndex), 10),
			Reward:         strconv.FormatInt(r.Reward, 10),
		}
	}
	return result
}
