package db

import "github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/iface"

// ReadOnlyDatabase exposes Prysm's rewards node data backend for read access only, no information about
// head info. For head info, use HeadAccessDatabase.
type ReadOnlyDatabase = iface.ReadOnlyDatabase

// NoHeadAccessDatabase exposes the database without the chain head write methods.
type NoHeadAccessDatabase = iface.NoHeadAccessDatabase

// HeadAccessDatabase exposes Prysm's rewards node backend for read/write access with information about
// chain head information.
type HeadAccessDatabase = iface.HeadAccessDatabase

// Database defines the necessary methods for the rewards node database.
type Database = iface.Database
