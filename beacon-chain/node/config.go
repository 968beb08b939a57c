package node

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/cmd"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/monitoring/tracing"
	"github.com/urfave/cli/v2"
)

func configureTracing(cliCtx *cli.Context) error {
	return tracing.Setup(
		"rewards-node", // service name
		cliCtx.String(cmd.TracingProcessNameFlag.Name),
		cliCtx.String(cmd.TracingEndpointFlag.Name),
		cliCtx.Float64(cmd.TraceSampleFractionFlag.Name),
		cliCtx.Bool(cmd.EnableTracingFlag.Name),
	)
}

// configureChainConfig selects the chain config from a file when one is given, otherwise by
// name. The result also becomes the global config.
func configureChainConfig(cliCtx *cli.Context) (*params.BeaconChainConfig, error) {
	if cliCtx.IsSet(cmd.ChainConfigFileFlag.Name) {
		chainConfigFileName := cliCtx.String(cmd.ChainConfigFileFlag.Name)
		cfg, err := params.LoadChainConfigFile(chainConfigFileName)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load chain config file %s", chainConfigFileName)
		}
		log.WithField("configName", cfg.ConfigName).Info("Loaded chain config file")
		return cfg, nil
	}
	cfg, err := params.ByName(cliCtx.String(cmd.ChainConfigNameFlag.Name))
	if err != nil {
		return nil, err
	}
	params.OverrideBeaconConfig(cfg)
	return cfg, nil
}
