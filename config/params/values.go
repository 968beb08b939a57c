package params

import "github.com/pkg/errors"

const (
	MainnetName     = "mainnet"
	MainnetTestName = "test-mainnet"
	MinimalName     = "minimal"
)

// ByName returns a copy of the named built in config.
func ByName(name string) (*BeaconChainConfig, error) {
	switch name {
	case MainnetName:
		return MainnetConfig().Copy(), nil
	case MainnetTestName:
		return MainnetTestConfig(), nil
	case MinimalName:
		return MinimalSpecConfig(), nil
	default:
		return nil, errors.Errorf("unknown chain config %q", name)
	}
}
