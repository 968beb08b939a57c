package primitives

import (
	"fmt"

	"github.com/prysmaticlabs/prysm-rewards/math"
)

// Slot represents a single slot.
type Slot uint64

// Add increases slot by x.
// In case of arithmetic issues (overflow/underflow/div by zero) panic is thrown.
func (s Slot) Add(x uint64) Slot {
	res, err := s.SafeAdd(x)
	if err != nil {
		panic(err.Error())
	}
	return res
}

// SafeAdd increases slot by x.
func (s Slot) SafeAdd(x uint64) (Slot, error) {
	res, err := math.Add64(uint64(s), x)
	return Slot(res), err
}

// SafeSub subtracts x from the slot.
func (s Slot) SafeSub(x uint64) (Slot, error) {
	res, err := math.Sub64(uint64(s), x)
	return Slot(res), err
}

// SafeMul multiplies slot by x.
func (s Slot) SafeMul(x uint64) (Slot, error) {
	res, err := math.Mul64(uint64(s), x)
	return Slot(res), err
}

// DivSlot divides slot by another slot.
// In case of arithmetic issues (overflow/underflow/div by zero) panic is thrown.
func (s Slot) DivSlot(y Slot) Slot {
	res, err := math.Div64(uint64(s), uint64(y))
	if err != nil {
		panic(err.Error())
	}
	return Slot(res)
}

// ModSlot returns the remainder of the slot divided by y.
func (s Slot) ModSlot(y Slot) Slot {
	if y == 0 {
		panic(math.ErrDivByZero.Error())
	}
	return s % y
}

// String returns the decimal representation of the slot.
func (s Slot) String() string {
	return fmt.Sprintf("%d", uint64(s))
}
