package primitives

import "fmt"

// ValidatorIndex in eth2.
type ValidatorIndex uint64

// Gwei is the denomination of balances and rewards on the beacon chain.
type Gwei uint64

// String returns the decimal representation of the index.
func (v ValidatorIndex) String() string {
	return fmt.Sprintf("%d", uint64(v))
}
