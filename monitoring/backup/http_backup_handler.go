// Package backup serves database backups over HTTP.
package backup

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const backupTimeout = 5 * time.Minute

// Exporter defines a backup exporter methods.
type Exporter interface {
	Backup(ctx context.Context, outputPath string, overwrite bool) error
}

// Handler for accepting requests to initiate a new database backup. The overwrite query
// parameter replaces an existing backup of the same head slot.
func Handler(bk Exporter, outputDir string) func(http.ResponseWriter, *http.Request) {
	log := logrus.WithField("prefix", "db")

	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Creating database backup from HTTP webhook")

		_, overwrite := r.URL.Query()["overwrite"]

		ctx, cancel := context.WithTimeout(r.Context(), backupTimeout)
		defer cancel()
		if err := bk.Backup(ctx, outputDir, overwrite); err != nil {
			log.WithError(err).Error("Failed to create backup")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "OK"); err != nil {
			log.WithError(err).Error("Failed to write OK")
		}
	}
}
