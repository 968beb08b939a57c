package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importedSlotsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importer_imported_slots_total",
		Help: "Count the number of slots whose state was imported from the upstream node.",
	})
	importedBlocksCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importer_imported_blocks_total",
		Help: "Count the number of blocks imported from the upstream node.",
	})
	lastImportedSlot = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "importer_last_imported_slot",
		Help: "Slot of the most recently imported state.",
	})
)
