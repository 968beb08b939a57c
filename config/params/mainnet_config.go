package params

import (
	"math"
)

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig
}

func init() {
	mainnetBeaconConfig.InitializeForkSchedule()
}

var mainnetBeaconConfig = &BeaconChainConfig{
	// Constants (Non-configurable)
	FarFutureEpoch: math.MaxUint64,
	GenesisEpoch:   0,
	GenesisSlot:    0,

	ConfigName: MainnetName,
	PresetBase: "mainnet",

	// Gwei value constants.
	MaxEffectiveBalance:        32 * 1e9,
	MaxEffectiveBalanceElectra: 2048 * 1e9,
	EffectiveBalanceIncrement:  1 * 1e9,

	// Time parameter constants.
	SlotsPerEpoch:                32,
	MinEpochsToInactivityPenalty: 4,

	// Reward and penalty quotients constants.
	BaseRewardFactor: 64,

	// Participation flag indices and incentivization weights.
	TimelySourceFlagIndex: 0,
	TimelyTargetFlagIndex: 1,
	TimelyHeadFlagIndex:   2,
	TimelySourceWeight:    14,
	TimelyTargetWeight:    26,
	TimelyHeadWeight:      14,
	SyncRewardWeight:      2,
	ProposerWeight:        8,
	WeightDenominator:     64,

	// Sync committee and inactivity.
	SyncCommitteeSize:                  512,
	InactivityScoreBias:                4,
	InactivityScoreRecoveryRate:        16,
	InactivityPenaltyQuotientAltair:    3 * 1 << 24,
	InactivityPenaltyQuotientBellatrix: 1 << 24,

	// Fork related values.
	GenesisForkVersion:   []byte{0, 0, 0, 0},
	AltairForkVersion:    []byte{1, 0, 0, 0},
	AltairForkEpoch:      74240,
	BellatrixForkVersion: []byte{2, 0, 0, 0},
	BellatrixForkEpoch:   144896,
	CapellaForkVersion:   []byte{3, 0, 0, 0},
	CapellaForkEpoch:     194048,
	DenebForkVersion:     []byte{4, 0, 0, 0},
	DenebForkEpoch:       269568,
	ElectraForkVersion:   []byte{5, 0, 0, 0},
	ElectraForkEpoch:     364032,
}

// MainnetTestConfig provides a version of the mainnet config that has a different name
// and with every fork scheduled at genesis, so tests can build post-Altair states at low epochs.
func MainnetTestConfig() *BeaconChainConfig {
	mn := MainnetConfig().Copy()
	mn.ConfigName = MainnetTestName
	mn.AltairForkEpoch = 0
	mn.BellatrixForkEpoch = 0
	mn.CapellaForkEpoch = 0
	mn.DenebForkEpoch = 0
	mn.ElectraForkEpoch = math.MaxUint64
	mn.InitializeForkSchedule()
	return mn
}
