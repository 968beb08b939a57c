package testing

import (
	"context"

	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/rpc/eth/rewards"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
)

// MockRewardFetcher returns canned results and records the last request it received.
type MockRewardFetcher struct {
	AttestationResult   *rewards.AttestationRewardsResult
	SyncCommitteeResult *rewards.SyncCommitteeRewardsResult
	Error               error

	Epoch        primitives.Epoch
	BlockId      string
	ValidatorIds []string
}

var _ rewards.RewardFetcher = (*MockRewardFetcher)(nil)

func (m *MockRewardFetcher) ComputeAttestationRewards(_ context.Context, epoch primitives.Epoch, validatorIds []string) (*rewards.AttestationRewardsResult, error) {
	m.Epoch = epoch
	m.ValidatorIds = validatorIds
	if m.Error != nil {
		return nil, m.Error
	}
	return m.AttestationResult, nil
}

func (m *MockRewardFetcher) ComputeSyncCommitteeRewards(_ context.Context, blockId string, validatorIds []string) (*rewards.SyncCommitteeRewardsResult, error) {
	m.BlockId = blockId
	m.ValidatorIds = validatorIds
	if m.Error != nil {
		return nil, m.Error
	}
	return m.SyncCommitteeResult, nil
}
