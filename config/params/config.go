// Package params defines important constants that are essential to the reward services.
package params

import (
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-rewards/config/fieldparams"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-rewards/runtime/version"
)

// BeaconChainConfig contains constant configs for node to participate in beacon chain.
type BeaconChainConfig struct {
	// Constants (non-configurable)
	FarFutureEpoch primitives.Epoch `yaml:"FAR_FUTURE_EPOCH"` // FarFutureEpoch represents a epoch extremely far away in the future used as the default penalization epoch for validators.
	GenesisEpoch   primitives.Epoch `yaml:"GENESIS_EPOCH"`    // GenesisEpoch is used to initialize epoch.
	GenesisSlot    primitives.Slot  `yaml:"GENESIS_SLOT"`     // GenesisSlot represents the first canonical slot number of the beacon chain.

	// General configuration.
	ConfigName string `yaml:"CONFIG_NAME" spec:"true"` // ConfigName for allowing an easy human-readable way of knowing what chain is being used.
	PresetBase string `yaml:"PRESET_BASE" spec:"true"` // PresetBase represents the underlying spec preset this config is based on.

	// Gwei value constants.
	MaxEffectiveBalance        uint64 `yaml:"MAX_EFFECTIVE_BALANCE" spec:"true"`         // MaxEffectiveBalance is the maximal amount of Gwei that is effective for staking.
	MaxEffectiveBalanceElectra uint64 `yaml:"MAX_EFFECTIVE_BALANCE_ELECTRA" spec:"true"` // MaxEffectiveBalanceElectra is the maximal amount of Gwei that is effective for compounding validators.
	EffectiveBalanceIncrement  uint64 `yaml:"EFFECTIVE_BALANCE_INCREMENT" spec:"true"`   // EffectiveBalanceIncrement is used for converting the high balance into the low balance for validators.

	// Time parameters constants.
	SlotsPerEpoch                primitives.Slot  `yaml:"SLOTS_PER_EPOCH" spec:"true"`                  // SlotsPerEpoch is the number of slots in an epoch.
	MinEpochsToInactivityPenalty primitives.Epoch `yaml:"MIN_EPOCHS_TO_INACTIVITY_PENALTY" spec:"true"` // MinEpochsToInactivityPenalty defines the minimum amount of epochs since finality to begin penalizing inactivity.

	// Reward and penalty quotients constants.
	BaseRewardFactor uint64 `yaml:"BASE_REWARD_FACTOR" spec:"true"` // BaseRewardFactor is used to calculate validator per-slot interest rate.

	// Altair participation flags and incentivization weights.
	TimelySourceFlagIndex uint8  `yaml:"TIMELY_SOURCE_FLAG_INDEX" spec:"true"` // TimelySourceFlagIndex is the source flag position of the participation bits.
	TimelyTargetFlagIndex uint8  `yaml:"TIMELY_TARGET_FLAG_INDEX" spec:"true"` // TimelyTargetFlagIndex is the target flag position of the participation bits.
	TimelyHeadFlagIndex   uint8  `yaml:"TIMELY_HEAD_FLAG_INDEX" spec:"true"`   // TimelyHeadFlagIndex is the head flag position of the participation bits.
	TimelySourceWeight    uint64 `yaml:"TIMELY_SOURCE_WEIGHT" spec:"true"`     // TimelySourceWeight is the factor of how much source rewards receive.
	TimelyTargetWeight    uint64 `yaml:"TIMELY_TARGET_WEIGHT" spec:"true"`     // TimelyTargetWeight is the factor of how much target rewards receive.
	TimelyHeadWeight      uint64 `yaml:"TIMELY_HEAD_WEIGHT" spec:"true"`       // TimelyHeadWeight is the factor of how much head rewards receive.
	SyncRewardWeight      uint64 `yaml:"SYNC_REWARD_WEIGHT" spec:"true"`       // SyncRewardWeight is the factor of how much sync committee rewards receive.
	ProposerWeight        uint64 `yaml:"PROPOSER_WEIGHT" spec:"true"`          // ProposerWeight is the factor of how much proposer rewards receive.
	WeightDenominator     uint64 `yaml:"WEIGHT_DENOMINATOR" spec:"true"`       // WeightDenominator accounts for total rewards denomination.

	// Sync committee and inactivity.
	SyncCommitteeSize                  uint64 `yaml:"SYNC_COMMITTEE_SIZE" spec:"true"`                   // SyncCommitteeSize for light client sync committee size.
	InactivityScoreBias                uint64 `yaml:"INACTIVITY_SCORE_BIAS" spec:"true"`                 // InactivityScoreBias for calculating score bias penalties during inactivity
	InactivityScoreRecoveryRate        uint64 `yaml:"INACTIVITY_SCORE_RECOVERY_RATE" spec:"true"`        // InactivityScoreRecoveryRate for recovering score bias penalties during inactivity.
	InactivityPenaltyQuotientAltair    uint64 `yaml:"INACTIVITY_PENALTY_QUOTIENT_ALTAIR" spec:"true"`    // InactivityPenaltyQuotientAltair for penalties during inactivity post Altair hard fork.
	InactivityPenaltyQuotientBellatrix uint64 `yaml:"INACTIVITY_PENALTY_QUOTIENT_BELLATRIX" spec:"true"` // InactivityPenaltyQuotientBellatrix for penalties during inactivity post Bellatrix hard fork.

	// Fork-related values.
	GenesisForkVersion   []byte           `yaml:"GENESIS_FORK_VERSION" spec:"true"`   // GenesisForkVersion is used to track fork version between state transitions.
	AltairForkVersion    []byte           `yaml:"ALTAIR_FORK_VERSION" spec:"true"`    // AltairForkVersion is used to represent the fork version for altair.
	AltairForkEpoch      primitives.Epoch `yaml:"ALTAIR_FORK_EPOCH" spec:"true"`      // AltairForkEpoch is used to represent the assigned fork epoch for altair.
	BellatrixForkVersion []byte           `yaml:"BELLATRIX_FORK_VERSION" spec:"true"` // BellatrixForkVersion is used to represent the fork version for bellatrix.
	BellatrixForkEpoch   primitives.Epoch `yaml:"BELLATRIX_FORK_EPOCH" spec:"true"`   // BellatrixForkEpoch is used to represent the assigned fork epoch for bellatrix.
	CapellaForkVersion   []byte           `yaml:"CAPELLA_FORK_VERSION" spec:"true"`   // CapellaForkVersion is used to represent the fork version for capella.
	CapellaForkEpoch     primitives.Epoch `yaml:"CAPELLA_FORK_EPOCH" spec:"true"`     // CapellaForkEpoch is used to represent the assigned fork epoch for capella.
	DenebForkVersion     []byte           `yaml:"DENEB_FORK_VERSION" spec:"true"`     // DenebForkVersion is used to represent the fork version for deneb.
	DenebForkEpoch       primitives.Epoch `yaml:"DENEB_FORK_EPOCH" spec:"true"`       // DenebForkEpoch is used to represent the assigned fork epoch for deneb.
	ElectraForkVersion   []byte           `yaml:"ELECTRA_FORK_VERSION" spec:"true"`   // ElectraForkVersion is used to represent the fork version for electra.
	ElectraForkEpoch     primitives.Epoch `yaml:"ELECTRA_FORK_EPOCH" spec:"true"`     // ElectraForkEpoch is used to represent the assigned fork epoch for electra.

	ForkVersionSchedule map[[fieldparams.VersionLength]byte]primitives.Epoch // Schedule of fork epochs by version.
	ForkVersionNames    map[[fieldparams.VersionLength]byte]int              // Fork names by version.
}

// Validate checks the invariants the reward arithmetic relies on.
func (b *BeaconChainConfig) Validate() error {
	if b.EffectiveBalanceIncrement == 0 {
		return errors.New("effective balance increment is zero")
	}
	if b.SlotsPerEpoch == 0 {
		return errors.New("slots per epoch is zero")
	}
	if b.SyncCommitteeSize == 0 {
		return errors.New("sync committee size is zero")
	}
	if b.ProposerWeight >= b.WeightDenominator {
		return errors.Errorf("proposer weight %d must be lower than weight denominator %d", b.ProposerWeight, b.WeightDenominator)
	}
	sum := b.TimelySourceWeight + b.TimelyTargetWeight + b.TimelyHeadWeight + b.SyncRewardWeight + b.ProposerWeight
	if sum != b.WeightDenominator {
		return errors.Errorf("incentive weights sum to %d, want weight denominator %d", sum, b.WeightDenominator)
	}
	return nil
}

// MaxEffectiveBalanceForVersion returns the highest effective balance a validator
// may hold at the given fork.
func (b *BeaconChainConfig) MaxEffectiveBalanceForVersion(v int) uint64 {
	if v >= version.Electra {
		return b.MaxEffectiveBalanceElectra
	}
	return b.MaxEffectiveBalance
}

// InactivityPenaltyQuotientForVersion returns the inactivity penalty quotient active at the given fork.
func (b *BeaconChainConfig) InactivityPenaltyQuotientForVersion(v int) uint64 {
	if v >= version.Bellatrix {
		return b.InactivityPenaltyQuotientBellatrix
	}
	return b.InactivityPenaltyQuotientAltair
}

// VersionForEpoch returns the fork version active at the given epoch.
func (b *BeaconChainConfig) VersionForEpoch(e primitives.Epoch) int {
	switch {
	case e >= b.ElectraForkEpoch:
		return version.Electra
	case e >= b.DenebForkEpoch:
		return version.Deneb
	case e >= b.CapellaForkEpoch:
		return version.Capella
	case e >= b.BellatrixForkEpoch:
		return version.Bellatrix
	case e >= b.AltairForkEpoch:
		return version.Altair
	default:
		return version.Phase0
	}
}

// InitializeForkSchedule initializes the schedules forks baked into the config.
func (b *BeaconChainConfig) InitializeForkSchedule() {
	b.ForkVersionSchedule = map[[fieldparams.VersionLength]byte]primitives.Epoch{}
	b.ForkVersionNames = map[[fieldparams.VersionLength]byte]int{}
	for v, fork := range map[int]struct {
		version []byte
		epoch   primitives.Epoch
	}{
		version.Phase0:    {b.GenesisForkVersion, b.GenesisEpoch},
		version.Altair:    {b.AltairForkVersion, b.AltairForkEpoch},
		version.Bellatrix: {b.BellatrixForkVersion, b.BellatrixForkEpoch},
		version.Capella:   {b.CapellaForkVersion, b.CapellaForkEpoch},
		version.Deneb:     {b.DenebForkVersion, b.DenebForkEpoch},
		version.Electra:   {b.ElectraForkVersion, b.ElectraForkEpoch},
	} {
		key := bytesutil.ToBytes4(fork.version)
		b.ForkVersionSchedule[key] = fork.epoch
		b.ForkVersionNames[key] = v
	}
}

// VersionForForkVersion maps a 4 byte fork version to the runtime version number.
func (b *BeaconChainConfig) VersionForForkVersion(forkVersion []byte) (int, error) {
	if len(forkVersion) != fieldparams.VersionLength {
		return 0, errors.Errorf("fork version has length %d, want %d", len(forkVersion), fieldparams.VersionLength)
	}
	v, ok := b.ForkVersionNames[bytesutil.ToBytes4(forkVersion)]
	if !ok {
		return 0, errors.Errorf("unknown fork version %#x", forkVersion)
	}
	return v, nil
}
