package kv

// The schema will define how to store and retrieve data from the db.
// Blocks and states are keyed by root, the slot index buckets map a big endian
// slot to the root saved at that slot.
var (
	blocksBucket              = []byte("blocks")
	stateBucket               = []byte("state")
	blockSlotIndicesBucket    = []byte("block-slot-indices")
	stateSlotIndicesBucket    = []byte("state-slot-indices")
	chainMetadataBucket       = []byte("chain-metadata")
	finalizedCheckpointBucket = []byte("finalized-checkpoint")

	// Specific item keys.
	headBlockRootKey = []byte("head-root")
	finalizedKey     = []byte("finalized")
)
