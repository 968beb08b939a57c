package field_params

const (
	Preset              = "mainnet"
	BLSPubkeyLength     = 48  // BLSPubkeyLength defines the byte length of a BLSSignature.
	RootLength          = 32  // RootLength defines the byte length of a Merkle root.
	VersionLength       = 4   // VersionLength defines the byte length of a fork version number.
	SyncCommitteeLength = 512 // SyncCommitteeLength defines the length of a sync committee.
)
