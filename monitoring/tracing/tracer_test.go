package tracing

import (
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
)

func TestSetup(t *testing.T) {
	require.NoError(t, Setup("", "", "", 0, false))
	assert.ErrorContains(t, "service name cannot be empty", Setup("", "rewards-node", "http://127.0.0.1:14268/api/traces", 0.2, true))
	assert.ErrorContains(t, "sample fraction", Setup("rewards", "rewards-node", "http://127.0.0.1:14268/api/traces", 1.5, true))
	require.NoError(t, Setup("rewards", "rewards-node", "http://127.0.0.1:14268/api/traces", 0.2, true))
	require.NoError(t, Setup("", "", "", 0, false))
}
