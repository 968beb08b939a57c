package math_test

import (
	stdmath "math"
	"testing"

	"github.com/prysmaticlabs/prysm-rewards/math"
	"github.com/prysmaticlabs/prysm-rewards/testing/require"
)

func TestIntegerSquareRoot(t *testing.T) {
	tt := []struct {
		number uint64
		root   uint64
	}{
		{
			number: 20,
			root:   4,
		},
		{
			number: 200,
			root:   14,
		},
		{
			number: 1987,
			root:   44,
		},
		{
			number: 34989843,
			root:   5915,
		},
		{
			number: 97282,
			root:   311,
		},
		{
			number: 1 << 32,
			root:   1 << 16,
		},
		{
			number: (1 << 32) + 1,
			root:   1 << 16,
		},
		{
			number: 1 << 33,
			root:   92681,
		},
		{
			number: 1 << 60,
			root:   1 << 30,
		},
		{
			number: 1<<60 - 1,
			root:   1<<30 - 1,
		},
		{
			number: stdmath.MaxUint64,
			root:   4294967295,
		},
	}

	for _, testVals := range tt {
		require.Equal(t, testVals.root, math.IntegerSquareRoot(testVals.number))
	}
}

func TestMath_Mul64(t *testing.T) {
	type args struct {
		a uint64
		b uint64
	}
	tests := []struct {
		args    args
		res     uint64
		wantErr bool
	}{
		{args: args{0, 1}, res: 0, wantErr: false},
		{args: args{1 << 32, 1}, res: 1 << 32, wantErr: false},
		{args: args{1 << 32, 100}, res: 429496729600, wantErr: false},
		{args: args{1 << 32, 1 << 31}, res: 9223372036854775808, wantErr: false},
		{args: args{1 << 32, 1 << 32}, res: 0, wantErr: true},
		{args: args{1 << 62, 2}, res: 9223372036854775808, wantErr: false},
		{args: args{1 << 62, 4}, res: 0, wantErr: true},
		{args: args{1 << 63, 1}, res: 9223372036854775808, wantErr: false},
		{args: args{1 << 63, 2}, res: 0, wantErr: true},
	}
	for _, tt := range tests {
		got, err := math.Mul64(tt.args.a, tt.args.b)
		if tt.wantErr && err == nil {
			t.Errorf("Mul64() Expected Error = %v, want error", tt.wantErr)
			continue
		}
		if tt.res != got {
			t.Errorf("Mul64() %v, want %v", got, tt.res)
		}
	}
}

func TestMath_Div64(t *testing.T) {
	_, err := math.Div64(1, 0)
	require.ErrorIs(t, err, math.ErrDivByZero)
	got, err := math.Div64(97, 32)
	require.NoError(t, err)
	require.Equal(t, uint64(3), got)
}

func TestMath_AddSub64(t *testing.T) {
	_, err := math.Add64(stdmath.MaxUint64, 1)
	require.ErrorIs(t, err, math.ErrAddOverflow)
	_, err = math.Sub64(0, 1)
	require.ErrorIs(t, err, math.ErrSubUnderflow)
	got, err := math.Sub64(10, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(7), got)
}

func TestMath_SignedHelpers(t *testing.T) {
	_, err := math.Int64(stdmath.MaxInt64 + 1)
	require.ErrorIs(t, err, math.ErrOverflow)
	v, err := math.Int64(42)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	_, err = math.AddInt64(stdmath.MaxInt64, 1)
	require.ErrorIs(t, err, math.ErrOverflow)
	_, err = math.AddInt64(stdmath.MinInt64, -1)
	require.ErrorIs(t, err, math.ErrOverflow)
	v, err = math.AddInt64(-5, 3)
	require.NoError(t, err)
	require.Equal(t, int64(-2), v)
}
