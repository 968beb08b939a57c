package bytesutil_test

import (
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
)

func TestToBytes4(t *testing.T) {
	tests := []struct {
		a []byte
		b [4]byte
	}{
		{nil, [4]byte{}},
		{[]byte{1}, [4]byte{1, 0, 0, 0}},
		{[]byte{1, 2, 3, 4, 5}, [4]byte{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		assert.DeepEqual(t, tt.b, bytesutil.ToBytes4(tt.a))
	}
}

func TestBigEndianRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 255, 256, 1 << 40, 1<<64 - 1}
	for _, tt := range tests {
		b := bytesutil.Uint64ToBytesBigEndian(tt)
		assert.Equal(t, 8, len(b))
		assert.Equal(t, tt, bytesutil.BytesToUint64BigEndian(b))
	}
	assert.Equal(t, uint64(0), bytesutil.BytesToUint64BigEndian([]byte{1, 2}))
}

func TestBigEndianOrdering(t *testing.T) {
	// Slot keys in the store must sort in numeric order.
	assert.Equal(t, true, string(bytesutil.Uint64ToBytesBigEndian(255)) < string(bytesutil.Uint64ToBytesBigEndian(256)))
}

func TestSafeCopyBytes(t *testing.T) {
	assert.DeepEqual(t, []byte(nil), bytesutil.SafeCopyBytes(nil))
	src := []byte{1, 2, 3}
	cp := bytesutil.SafeCopyBytes(src)
	src[0] = 9
	assert.DeepEqual(t, []byte{1, 2, 3}, cp)
}

func TestZeroRoot(t *testing.T) {
	assert.Equal(t, true, bytesutil.ZeroRoot(make([]byte, 32)))
	assert.Equal(t, false, bytesutil.ZeroRoot([]byte{1}))
}
