package node

import "github.com/prysmaticlabs/prysm-rewards/beacon-chain/sync/importer"

// Option for rewards node configuration.
type Option func(rn *RewardsNode) error

// WithImportProvider imports from the given provider instead of dialing the upstream URL flag.
func WithImportProvider(p importer.Provider) Option {
	return func(rn *RewardsNode) error {
		rn.provider = p
		return nil
	}
}

// WithClearDBConfirmation replaces the interactive prompt shown before the database is cleared.
func WithClearDBConfirmation(confirm func(dbPath string) (bool, error)) Option {
	return func(rn *RewardsNode) error {
		rn.confirm = confirm
		return nil
	}
}
