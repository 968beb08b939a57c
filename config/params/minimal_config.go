package params

import (
	"math"
)

// MinimalSpecConfig retrieves the minimal preset config.
func MinimalSpecConfig() *BeaconChainConfig {
	minimalConfig := mainnetBeaconConfig.Copy()

	minimalConfig.SlotsPerEpoch = 8
	minimalConfig.SyncCommitteeSize = 32

	minimalConfig.GenesisForkVersion = []byte{0, 0, 0, 1}
	minimalConfig.AltairForkVersion = []byte{1, 0, 0, 1}
	minimalConfig.AltairForkEpoch = math.MaxUint64
	minimalConfig.BellatrixForkVersion = []byte{2, 0, 0, 1}
	minimalConfig.BellatrixForkEpoch = math.MaxUint64
	minimalConfig.CapellaForkVersion = []byte{3, 0, 0, 1}
	minimalConfig.CapellaForkEpoch = math.MaxUint64
	minimalConfig.DenebForkVersion = []byte{4, 0, 0, 1}
	minimalConfig.DenebForkEpoch = math.MaxUint64
	minimalConfig.ElectraForkVersion = []byte{5, 0, 0, 1}
	minimalConfig.ElectraForkEpoch = math.MaxUint64

	minimalConfig.ConfigName = MinimalName
	minimalConfig.PresetBase = "minimal"

	minimalConfig.InitializeForkSchedule()
	return minimalConfig
}
