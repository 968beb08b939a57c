package cmd

import (
	"flag"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

func TestWrapFlags(t *testing.T) {
	wrapped := WrapFlags([]cli.Flag{DataDirFlag, EnableTracingFlag, TraceSampleFractionFlag, MonitoringPortFlag, LogFormat})
	require.Equal(t, 5, len(wrapped))
	_, ok := wrapped[0].(*altsrc.StringFlag)
	assert.Equal(t, true, ok)
	_, ok = wrapped[1].(*altsrc.BoolFlag)
	assert.Equal(t, true, ok)
	_, ok = wrapped[4].(*altsrc.GenericFlag)
	assert.Equal(t, true, ok)
}

func TestWrapFlags_Int64Panics(t *testing.T) {
	defer func() {
		assert.NotNil(t, recover())
	}()
	WrapFlags([]cli.Flag{&cli.Int64Flag{Name: "bad"}})
}

func TestLogFormat_Default(t *testing.T) {
	set := flag.NewFlagSet("test", 0)
	require.NoError(t, LogFormat.Apply(set))
	ctx := cli.NewContext(&cli.App{}, set, nil)
	assert.Equal(t, "text", ctx.String(LogFormat.Name))
	require.NoError(t, set.Set(LogFormat.Name, "fluentd"))
	assert.Equal(t, "fluentd", ctx.String(LogFormat.Name))
	assert.ErrorContains(t, "allowed values", set.Set(LogFormat.Name, "yaml"))
}
