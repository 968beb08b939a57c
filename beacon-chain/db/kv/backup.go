package kv

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

const backupsDirectoryName = "backups"

// Backup copies the database into outputDir, or into the backups directory of the datadir when
// outputDir is empty. The file is named after the slot of the head block. An existing backup of
// the same slot is only replaced when overwrite is set.
func (s *Store) Backup(ctx context.Context, outputDir string, overwrite bool) error {
	ctx, span := trace.StartSpan(ctx, "BeaconDB.Backup")
	defer span.End()

	backupsDir := path.Join(s.databasePath, backupsDirectoryName)
	if outputDir != "" {
		backupsDir = outputDir
	}
	var slot primitives.Slot
	headRoot, err := s.HeadBlockRoot(ctx)
	switch {
	case errors.Is(err, ErrNoHeadBlock):
	case err != nil:
		return err
	default:
		head, err := s.Block(ctx, headRoot)
		if err != nil {
			return err
		}
		if head == nil {
			return errors.Errorf("no head block %#x", headRoot)
		}
		slot = head.Slot()
	}

	if err := os.MkdirAll(backupsDir, 0700); err != nil {
		return errors.Wrap(err, "could not create backups directory")
	}
	backupPath := path.Join(backupsDir, fmt.Sprintf("rewards_backup_%d.db", slot))
	if _, err := os.Stat(backupPath); err == nil {
		if !overwrite {
			return errors.Errorf("backup %s already exists", backupPath)
		}
		if err := os.Remove(backupPath); err != nil {
			return errors.Wrap(err, "could not remove previous backup")
		}
	}
	log.WithField("backup", backupPath).Info("Writing backup database")
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(backupPath, 0600)
	})
}
