package db

import (
	"context"

	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/kv"
)

// NewDB initializes a new DB.
func NewDB(ctx context.Context, dirPath string) (Database, error) {
	return kv.NewKVStore(ctx, dirPath, &kv.Config{})
}
