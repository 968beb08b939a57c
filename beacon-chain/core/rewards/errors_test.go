package rewards_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/rewards"
	"github.com/prysmaticlabs/prysm-rewards/math"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
)

func TestError_Kinds(t *testing.T) {
	err := rewards.ArithmeticError(math.ErrDivByZero, "could not compute %s", "reward")
	assert.ErrorIs(t, err, rewards.ErrArithmetic)
	assert.ErrorIs(t, err, math.ErrDivByZero)
	assert.Equal(t, false, errors.Is(err, rewards.ErrInvalid))
	assert.Equal(t, "could not compute reward: integer divide by zero", err.Error())

	wrapped := errors.Wrap(rewards.NotFoundError(nil, "state not found"), "request failed")
	assert.ErrorIs(t, wrapped, rewards.ErrNotFound)
	assert.Equal(t, rewards.ErrNotFound, rewards.KindOf(wrapped))
	assert.Equal(t, "request failed: state not found", wrapped.Error())

	assert.Equal(t, nil, rewards.KindOf(errors.New("plain")))
	assert.Equal(t, rewards.ErrInvalid, rewards.KindOf(rewards.InvalidError(nil, "bad")))
}
