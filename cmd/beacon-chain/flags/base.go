// Package flags defines the command line flags of the rewards node.
package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	// HTTPServerHost specifies the host of the rewards HTTP API.
	HTTPServerHost = &cli.StringFlag{
		Name:  "http-host",
		Usage: "Host on which the HTTP server runs on",
		Value: "127.0.0.1",
	}
	// HTTPServerPort specifies the port of the rewards HTTP API.
	HTTPServerPort = &cli.IntFlag{
		Name:  "http-port",
		Usage: "Port on which the HTTP server runs on",
		Value: 3500,
	}
	// HTTPServerCorsDomain serves CORS headers on the HTTP API.
	HTTPServerCorsDomain = &cli.StringFlag{
		Name:  "http-cors-domain",
		Usage: "Comma separated list of domains from which to accept cross origin requests",
		Value: "http://localhost:4200,http://localhost:7500,http://127.0.0.1:4200,http://127.0.0.1:7500,http://0.0.0.0:4200,http://0.0.0.0:7500,http://localhost:3000,http://0.0.0.0:3000,http://127.0.0.1:3000",
	}
	// HTTPServerTimeout bounds the time spent on a single request.
	HTTPServerTimeout = &cli.DurationFlag{
		Name:  "http-timeout",
		Usage: "Maximum time a reward request may take before it is aborted",
		Value: 120 * time.Second,
	}
	// UpstreamURLFlag points at the beacon node states and blocks are imported from.
	UpstreamURLFlag = &cli.StringFlag{
		Name:  "upstream-url",
		Usage: "Beacon node API to import states and blocks from. Import is disabled when empty",
	}
	// UpstreamTimeoutFlag bounds a single upstream request.
	UpstreamTimeoutFlag = &cli.DurationFlag{
		Name:  "upstream-timeout",
		Usage: "Timeout of a single request to the upstream beacon node",
		Value: 5 * time.Minute,
	}
	// ImportStartSlotFlag is the first slot imported from the upstream.
	ImportStartSlotFlag = &cli.Uint64Flag{
		Name:  "import-start-slot",
		Usage: "First slot to import from the upstream beacon node",
	}
	// ImportEndSlotFlag is the last slot imported from the upstream.
	ImportEndSlotFlag = &cli.Uint64Flag{
		Name:  "import-end-slot",
		Usage: "Last slot to import from the upstream beacon node. Defaults to the upstream head",
	}
	// ImportWorkersFlag sets the number of slots fetched concurrently.
	ImportWorkersFlag = &cli.IntFlag{
		Name:  "import-workers",
		Usage: "Number of slots fetched from the upstream concurrently",
		Value: 4,
	}
	// ImportBatchSizeFlag sets the number of slots saved per batch.
	ImportBatchSizeFlag = &cli.Uint64Flag{
		Name:  "import-batch-size",
		Usage: "Number of slots fetched before they are written to the database",
		Value: 32,
	}
	// StateCacheSizeFlag sets the number of decoded states kept in memory.
	StateCacheSizeFlag = &cli.IntFlag{
		Name:  "state-cache-size",
		Usage: "Number of decoded states kept in memory",
		Value: 8,
	}
)
