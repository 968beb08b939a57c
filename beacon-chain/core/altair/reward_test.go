package altair_test

import (
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/altair"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
)

func TestBaseRewardPerIncrement(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		activeBalance uint64
		want          uint64
	}{
		{activeBalance: 1, want: 64 * 1e9},
		{activeBalance: 1e9, want: 2023907},
		{activeBalance: 32e9, want: 357771},
		{activeBalance: 128e9, want: 178885},
		{activeBalance: 2048e9, want: 44721},
	}
	for _, tt := range tests {
		got, err := altair.BaseRewardPerIncrement(tt.activeBalance, cfg)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "balance %d", tt.activeBalance)
	}
}

func TestBaseRewardPerIncrement_ZeroBalance(t *testing.T) {
	_, err := altair.BaseRewardPerIncrement(0, params.MainnetConfig())
	require.ErrorIs(t, err, altair.ErrZeroActiveBalance)
}

func TestBaseRewardForBalance_TruncatesToIncrement(t *testing.T) {
	cfg := params.MainnetConfig()
	got, err := altair.BaseRewardForBalance(31999999999, 357771, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(31*357771), got)
}

func TestInactivityPenalty(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		name    string
		eb      uint64
		score   uint64
		version int
		want    uint64
	}{
		{name: "zero score", eb: 32e9, score: 0, version: version.Bellatrix, want: 0},
		{name: "bellatrix", eb: 32e9, score: 16, version: version.Bellatrix, want: 7629},
		{name: "altair", eb: 32e9, score: 16, version: version.Altair, want: 2543},
		{name: "capella uses bellatrix quotient", eb: 32e9, score: 16, version: version.Capella, want: 7629},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := altair.InactivityPenalty(tt.eb, tt.score, tt.version, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInactivityPenalty_Overflow(t *testing.T) {
	_, err := altair.InactivityPenalty(1<<63, 4, version.Altair, params.MainnetConfig())
	require.ErrorContains(t, "could not compute penalty numerator", err)
}

func TestSyncRewards(t *testing.T) {
	tests := []struct {
		name            string
		cfg             *params.BeaconChainConfig
		activeBalance   uint64
		wantProposer    uint64
		wantParticipant uint64
	}{
		{
			name:            "mainnet, 64 validators",
			cfg:             params.MainnetConfig(),
			activeBalance:   64 * 32e9,
			wantProposer:    24,
			wantParticipant: 174,
		},
		{
			name:            "mainnet, one million validators",
			cfg:             params.MainnetConfig(),
			activeBalance:   32e9 * 1e6,
			wantProposer:    3112,
			wantParticipant: 21789,
		},
		{
			name:            "minimal, 4 validators",
			cfg:             params.MinimalSpecConfig(),
			activeBalance:   4 * 32e9,
			wantProposer:    399,
			wantParticipant: 2795,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposer, participant, err := altair.SyncRewards(tt.activeBalance, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProposer, proposer, "proposer reward")
			assert.Equal(t, tt.wantParticipant, participant, "participant reward")
		})
	}
}

func TestSyncRewards_ZeroBalance(t *testing.T) {
	_, _, err := altair.SyncRewards(0, params.MainnetConfig())
	require.ErrorIs(t, err, altair.ErrZeroActiveBalance)
}

func TestHasValidatorFlag(t *testing.T) {
	tests := []struct {
		flag     uint8
		position uint8
		want     bool
	}{
		{flag: 0b001, position: 0, want: true},
		{flag: 0b010, position: 0, want: false},
		{flag: 0b010, position: 1, want: true},
		{flag: 0b111, position: 2, want: true},
		{flag: 0b011, position: 2, want: false},
		{flag: 0x80, position: 7, want: true},
	}
	for _, tt := range tests {
		got, err := altair.HasValidatorFlag(tt.flag, tt.position)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "flag %08b position %d", tt.flag, tt.position)
	}
	_, err := altair.HasValidatorFlag(0, 8)
	require.ErrorIs(t, err, altair.ErrInvalidFlagIndex)
}

func TestParticipationFlag_WeightsAndIndices(t *testing.T) {
	cfg := params.MainnetConfig()
	var sum uint64
	for i, f := range altair.ParticipationFlags {
		idx, err := f.Index(cfg)
		require.NoError(t, err)
		assert.Equal(t, uint8(i), idx)
		w, err := f.Weight(cfg)
		require.NoError(t, err)
		sum += w
	}
	assert.Equal(t, cfg.WeightDenominator, sum+cfg.SyncRewardWeight+cfg.ProposerWeight)
	assert.Equal(t, "target", altair.Target.String())

	_, err := altair.ParticipationFlag(5).Weight(cfg)
	require.ErrorIs(t, err, altair.ErrInvalidFlagIndex)
}
