package kv

import (
	"testing"

	ethpb "github.com/prysmaticlabs/prysm-rewards/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
)

func Test_encode_handlesNilFromFunction(t *testing.T) {
	foo := func() *ethpb.Checkpoint {
		return nil
	}
	_, err := encode(foo())
	require.ErrorContains(t, "cannot encode nil message", err)
}

func Test_decode_rejectsUncompressedData(t *testing.T) {
	err := decode([]byte("not snappy"), &ethpb.Checkpoint{})
	require.ErrorContains(t, "could not snappy decode", err)
}

func Test_encodeDecode(t *testing.T) {
	cp := &ethpb.Checkpoint{Epoch: 7, Root: []byte{1, 2, 3}}
	enc, err := encode(cp)
	require.NoError(t, err)
	got := &ethpb.Checkpoint{}
	require.NoError(t, decode(enc, got))
	assert.DeepEqual(t, cp, got)
}
