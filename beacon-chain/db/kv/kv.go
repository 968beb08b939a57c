// Package kv defines a bolt-db, key-value store implementation
// of the Database interface defined by the rewards node.
package kv

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	prombolt "github.com/prysmaticlabs/prombbolt"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/iface"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

var _ iface.Database = (*Store)(nil)

const (
	// StateCacheSize is the number of decoded states kept in memory.
	StateCacheSize = 8
	// DatabaseFileName is the name of the beacon node database.
	DatabaseFileName = "rewards.db"
	// RewardsNodeDbDirName is the name of the directory containing the rewards node database.
	RewardsNodeDbDirName = "rewardsdata"

	boltAllocSize = 8 * 1024 * 1024
)

var log = logrus.WithField("prefix", "db")

// blockCacheSize specifies 1000 slots worth of blocks cached.
var blockCacheSize = 1000

// Config for the bolt db kv store.
type Config struct {
	InitialMMapSize int
	StateCacheSize  int
}

// Store defines an implementation of the Database interface
// using BoltDB as the underlying persistent kv-store for the rewards node.
type Store struct {
	db           *bolt.DB
	databasePath string
	blockCache   *lru.Cache
	stateCache   *lru.Cache
	ctx          context.Context
}

// NewKVStore initializes a new boltDB key-value store at the directory
// path specified, creates the kv-buckets based on the schema, and stores
// an open connection db object as a property of the Store struct.
func NewKVStore(ctx context.Context, dirPath string, config *Config) (*Store, error) {
	if config == nil {
		config = &Config{}
	}
	if config.StateCacheSize == 0 {
		config.StateCacheSize = StateCacheSize
	}
	hasDir, err := hasDir(dirPath)
	if err != nil {
		return nil, err
	}
	if !hasDir {
		if err := os.MkdirAll(dirPath, 0700); err != nil {
			return nil, err
		}
	}
	datafile := StoreDatafilePath(dirPath)
	boltDB, err := bolt.Open(
		datafile,
		0600,
		&bolt.Options{
			Timeout:         1 * time.Second,
			InitialMmapSize: config.InitialMMapSize,
		},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}
	boltDB.AllocSize = boltAllocSize

	blockCache, err := lru.New(blockCacheSize)
	if err != nil {
		return nil, err
	}
	stateCache, err := lru.New(config.StateCacheSize)
	if err != nil {
		return nil, err
	}

	kv := &Store{
		db:           boltDB,
		databasePath: dirPath,
		blockCache:   blockCache,
		stateCache:   stateCache,
		ctx:          ctx,
	}
	if err := kv.db.Update(func(tx *bolt.Tx) error {
		return createBuckets(
			tx,
			blocksBucket,
			stateBucket,
			blockSlotIndicesBucket,
			stateSlotIndicesBucket,
			chainMetadataBucket,
			finalizedCheckpointBucket,
		)
	}); err != nil {
		return nil, err
	}
	if err := prometheus.Register(createBoltCollector(kv.db)); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
	}

	if size, err := kv.size(); err == nil {
		log.WithFields(logrus.Fields{
			"path": datafile,
			"size": humanize.Bytes(uint64(size)),
		}).Info("Opened beacon database")
	}
	return kv, nil
}

// ClearDB removes the previously stored database in the data directory.
func (s *Store) ClearDB() error {
	if _, err := os.Stat(s.databasePath); os.IsNotExist(err) {
		return nil
	}
	prometheus.Unregister(createBoltCollector(s.db))
	if err := os.Remove(path.Join(s.databasePath, DatabaseFileName)); err != nil {
		return errors.Wrap(err, "could not remove database file")
	}
	return nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	prometheus.Unregister(createBoltCollector(s.db))
	return s.db.Close()
}

// DatabasePath at which this database writes files.
func (s *Store) DatabasePath() string {
	return s.databasePath
}

func (s *Store) size() (int64, error) {
	var size int64
	err := s.db.View(func(tx *bolt.Tx) error {
		size = tx.Size()
		return nil
	})
	return size, err
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return nil
}

// createBoltCollector returns a prometheus collector specifically configured for boltdb.
func createBoltCollector(db *bolt.DB) prometheus.Collector {
	return prombolt.New("boltDB", db, blocksBucket, stateBucket)
}

// StoreDatafilePath is the canonical construction of a full
// database file path from the directory path.
func StoreDatafilePath(dirPath string) string {
	return path.Join(dirPath, DatabaseFileName)
}

func hasDir(dirPath string) (bool, error) {
	_, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}
