package assertions_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/assertions"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestAssert_Equal(t *testing.T) {
	tests := []struct {
		name        string
		expected    interface{}
		actual      interface{}
		msg         []interface{}
		expectedErr string
	}{
		{
			name:     "equal values",
			expected: 42,
			actual:   42,
		},
		{
			name:        "non-equal values",
			expected:    42,
			actual:      41,
			expectedErr: "Values are not equal, want: 42 (int), got: 41 (int)",
		},
		{
			name:        "custom error message",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom values are not equal"},
			expectedErr: "Custom values are not equal, want: 42 (int), got: 41 (int)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := &assertions.TBMock{}
			assert.Equal(tb, tt.expected, tt.actual, tt.msg...)
			if !strings.Contains(tb.ErrorfMsg, tt.expectedErr) {
				t.Errorf("got: %q, want: %q", tb.ErrorfMsg, tt.expectedErr)
			}
			if tt.expectedErr == "" && tb.ErrorfMsg != "" {
				t.Errorf("unexpected error: %q", tb.ErrorfMsg)
			}
		})
	}
}

func TestAssert_DeepEqual(t *testing.T) {
	type pair struct {
		A, B uint64
	}
	tb := &assertions.TBMock{}
	assert.DeepEqual(tb, []pair{{1, 2}}, []pair{{1, 2}})
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	assert.DeepEqual(tb, []pair{{1, 2}}, []pair{{1, 3}})
	if !strings.Contains(tb.ErrorfMsg, "Values are not equal") {
		t.Errorf("missing diff message: %q", tb.ErrorfMsg)
	}
}

func TestRequire_ErrorIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	tb := &assertions.TBMock{}
	require.ErrorIs(tb, errors.Join(errors.New("other"), sentinel), sentinel)
	if tb.FatalfMsg != "" {
		t.Errorf("unexpected error: %q", tb.FatalfMsg)
	}
	require.ErrorIs(tb, errors.New("other"), sentinel)
	if !strings.Contains(tb.FatalfMsg, "not in chain") {
		t.Errorf("unexpected message: %q", tb.FatalfMsg)
	}
}

func TestRequire_NotNilAndIsNil(t *testing.T) {
	var ptr *int
	tb := &assertions.TBMock{}
	require.NotNil(tb, ptr)
	if !strings.Contains(tb.FatalfMsg, "Unexpected nil value") {
		t.Errorf("typed nil pointer not detected: %q", tb.FatalfMsg)
	}
	tb = &assertions.TBMock{}
	require.IsNil(tb, ptr)
	if tb.FatalfMsg != "" {
		t.Errorf("unexpected error: %q", tb.FatalfMsg)
	}
}

func TestLogsContain(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.WithField("prefix", "rewards").Info("computed sync committee rewards")

	tb := &assertions.TBMock{}
	assertions.LogsContain(tb.Errorf, hook, "sync committee", true)
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	assertions.LogsContain(tb.Errorf, hook, "attestation", true)
	if !strings.Contains(tb.ErrorfMsg, "Expected log not found") {
		t.Errorf("unexpected message: %q", tb.ErrorfMsg)
	}
	tb = &assertions.TBMock{}
	assertions.LogsContain(tb.Errorf, hook, "rewards", false)
	if !strings.Contains(tb.ErrorfMsg, "Unexpected log found") {
		t.Errorf("field value not matched: %q", tb.ErrorfMsg)
	}
}
