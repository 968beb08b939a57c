// Package main defines the rewards node, serving attestation and sync committee rewards
// over the beacon API for states and blocks held in a local database.
package main

import (
	"os"

	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/node"
	"github.com/prysmaticlabs/prysm-rewards/cmd"
	"github.com/prysmaticlabs/prysm-rewards/cmd/beacon-chain/flags"
	"github.com/prysmaticlabs/prysm-rewards/io/logs"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"go.uber.org/automaxprocs/maxprocs"
)

var log = logrus.WithField("prefix", "main")

var appFlags = []cli.Flag{
	cmd.DataDirFlag,
	cmd.VerbosityFlag,
	cmd.EnableTracingFlag,
	cmd.TracingProcessNameFlag,
	cmd.TracingEndpointFlag,
	cmd.TraceSampleFractionFlag,
	cmd.MonitoringHostFlag,
	cmd.MonitoringPortFlag,
	cmd.DisableMonitoringFlag,
	cmd.EnableBackupWebhookFlag,
	cmd.BackupWebhookOutputDir,
	cmd.ClearDB,
	cmd.ForceClearDB,
	cmd.LogFormat,
	cmd.LogFileName,
	cmd.ConfigFileFlag,
	cmd.ChainConfigFileFlag,
	cmd.ChainConfigNameFlag,
	flags.HTTPServerHost,
	flags.HTTPServerPort,
	flags.HTTPServerCorsDomain,
	flags.HTTPServerTimeout,
	flags.UpstreamURLFlag,
	flags.UpstreamTimeoutFlag,
	flags.ImportStartSlotFlag,
	flags.ImportEndSlotFlag,
	flags.ImportWorkersFlag,
	flags.ImportBatchSizeFlag,
	flags.StateCacheSizeFlag,
}

func init() {
	appFlags = cmd.WrapFlags(appFlags)
}

func main() {
	app := cli.App{}
	app.Name = "rewards-node"
	app.Usage = "serves attestation and sync committee rewards of a beacon chain"
	app.Action = startNode
	app.Flags = appFlags

	app.Before = func(ctx *cli.Context) error {
		// Load flags from config file, if specified.
		if ctx.IsSet(cmd.ConfigFileFlag.Name) {
			if err := altsrc.InitInputSourceWithContext(
				appFlags,
				altsrc.NewYamlSourceFromFlagFunc(cmd.ConfigFileFlag.Name))(ctx); err != nil {
				return err
			}
		}

		format := ctx.String(cmd.LogFormat.Name)
		logFileName := ctx.String(cmd.LogFileName.Name)
		// If persistent log files are written - we disable the log messages coloring because
		// the colors are ANSI codes and seen as gibberish in the log files.
		formatter, err := logs.Formatter(format, logFileName != "")
		if err != nil {
			return err
		}
		logrus.SetFormatter(formatter)

		if logFileName != "" {
			if err := logs.ConfigurePersistentLogging(logFileName, format); err != nil {
				log.WithError(err).Error("Failed to configuring logging to disk.")
			}
		}

		if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
			log.WithError(err).Warn("Could not set GOMAXPROCS")
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startNode(ctx *cli.Context) error {
	verbosity := ctx.String(cmd.VerbosityFlag.Name)
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	rewardsNode, err := node.New(ctx)
	if err != nil {
		return err
	}
	rewardsNode.Start()
	return nil
}
