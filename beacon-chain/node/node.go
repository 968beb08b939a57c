// Package node is the main service which launches a rewards node and manages
// the lifecycle of all its associated services at runtime, such as the HTTP API,
// the importer and monitoring, gracefully closing them if the process ends.
package node

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/api/server"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/db/kv"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/rpc/eth/rewards"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/rpc/lookup"
	"github.com/prysmaticlabs/prysm-rewards/beacon-chain/sync/importer"
	"github.com/prysmaticlabs/prysm-rewards/cmd"
	"github.com/prysmaticlabs/prysm-rewards/cmd/beacon-chain/flags"
	"github.com/prysmaticlabs/prysm-rewards/config/params"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/io/logs"
	"github.com/prysmaticlabs/prysm-rewards/monitoring/backup"
	"github.com/prysmaticlabs/prysm-rewards/monitoring/prometheus"
	"github.com/prysmaticlabs/prysm-rewards/runtime"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// RewardsNode defines a struct that serves reward accounting for a beacon chain whose
// states and blocks are held in a local database. It handles the lifecycle of the
// entire system and registers services to a service registry.
type RewardsNode struct {
	cliCtx   *cli.Context
	ctx      context.Context
	cancel   context.CancelFunc
	services *runtime.ServiceRegistry
	lock     sync.RWMutex
	stop     chan struct{} // Channel to wait for termination notifications.
	db       db.Database
	cfg      *params.BeaconChainConfig
	provider importer.Provider
	confirm  func(string) (bool, error)
}

// New creates a new node instance, sets up configuration options, and registers
// every required service to the node.
func New(cliCtx *cli.Context, opts ...Option) (*RewardsNode, error) {
	if err := configureTracing(cliCtx); err != nil {
		return nil, err
	}
	cfg, err := configureChainConfig(cliCtx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(cliCtx.Context)
	rn := &RewardsNode{
		cliCtx:   cliCtx,
		ctx:      ctx,
		cancel:   cancel,
		services: runtime.NewServiceRegistry(),
		stop:     make(chan struct{}),
		cfg:      cfg,
		confirm:  confirmDelete,
	}
	for _, opt := range opts {
		if err := opt(rn); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := rn.startDB(cliCtx); err != nil {
		cancel()
		return nil, err
	}
	if err := rn.registerImporter(cliCtx); err != nil {
		rn.closeDB()
		cancel()
		return nil, err
	}
	if err := rn.registerHTTPService(cliCtx); err != nil {
		rn.closeDB()
		cancel()
		return nil, err
	}
	if !cliCtx.Bool(cmd.DisableMonitoringFlag.Name) {
		if err := rn.registerPrometheusService(cliCtx); err != nil {
			rn.closeDB()
			cancel()
			return nil, err
		}
	}
	return rn, nil
}

// Start the RewardsNode and kicks off every registered service.
func (rn *RewardsNode) Start() {
	rn.lock.Lock()

	log.WithFields(logrus.Fields{
		"config": rn.cfg.ConfigName,
	}).Info("Starting rewards node")

	rn.services.StartAll()

	stop := rn.stop
	rn.lock.Unlock()

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)
		<-sigc
		log.Info("Got interrupt, shutting down...")
		go rn.Close()
		for i := 10; i > 0; i-- {
			<-sigc
			if i > 1 {
				log.WithField("times", i-1).Info("Already shutting down, interrupt more to panic")
			}
		}
		panic("Panic closing the rewards node")
	}()

	// Wait for stop channel to be closed.
	<-stop
}

// Close handles graceful shutdown of the system.
func (rn *RewardsNode) Close() {
	rn.lock.Lock()
	defer rn.lock.Unlock()

	log.Info("Stopping rewards node")
	rn.services.StopAll()
	rn.closeDB()
	rn.cancel()
	close(rn.stop)
}

func (rn *RewardsNode) closeDB() {
	if rn.db == nil {
		return
	}
	if err := rn.db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
}

func (rn *RewardsNode) startDB(cliCtx *cli.Context) error {
	baseDir := cliCtx.String(cmd.DataDirFlag.Name)
	if baseDir == "" {
		return errors.New("could not determine a data directory, please specify --datadir")
	}
	dbPath := filepath.Join(baseDir, kv.RewardsNodeDbDirName)
	clearDB := cliCtx.Bool(cmd.ClearDB.Name)
	forceClearDB := cliCtx.Bool(cmd.ForceClearDB.Name)
	kvCfg := &kv.Config{StateCacheSize: cliCtx.Int(flags.StateCacheSizeFlag.Name)}

	log.WithField("databasePath", dbPath).Info("Checking DB")

	d, err := kv.NewKVStore(rn.ctx, dbPath, kvCfg)
	if err != nil {
		return err
	}
	clearDBConfirmed := false
	if clearDB && !forceClearDB {
		clearDBConfirmed, err = rn.confirm(dbPath)
		if err != nil {
			return err
		}
	}
	if clearDBConfirmed || forceClearDB {
		log.Warning("Removing database")
		if err := d.Close(); err != nil {
			return errors.Wrap(err, "could not close db prior to clearing")
		}
		if err := d.ClearDB(); err != nil {
			return errors.Wrap(err, "could not clear database")
		}
		d, err = kv.NewKVStore(rn.ctx, dbPath, kvCfg)
		if err != nil {
			return errors.Wrap(err, "could not create new database")
		}
	}

	rn.db = d
	return nil
}

func (rn *RewardsNode) registerImporter(cliCtx *cli.Context) error {
	provider := rn.provider
	if provider == nil {
		upstream := cliCtx.String(flags.UpstreamURLFlag.Name)
		if upstream == "" {
			log.Info("No upstream beacon node configured, serving the local database only")
			return nil
		}
		log.WithField("upstream", logs.MaskCredentialsLogging(upstream)).Info("Connecting to upstream beacon node")
		client, err := importer.NewBeaconClient(rn.ctx, upstream, cliCtx.Duration(flags.UpstreamTimeoutFlag.Name), nil)
		if err != nil {
			return err
		}
		provider = client
	}

	svc, err := importer.NewService(
		rn.ctx,
		importer.WithDatabase(rn.db),
		importer.WithProvider(provider),
		importer.WithSlotRange(
			primitives.Slot(cliCtx.Uint64(flags.ImportStartSlotFlag.Name)),
			primitives.Slot(cliCtx.Uint64(flags.ImportEndSlotFlag.Name)),
		),
		importer.WithWorkerCount(cliCtx.Int(flags.ImportWorkersFlag.Name)),
		importer.WithBatchSize(cliCtx.Uint64(flags.ImportBatchSizeFlag.Name)),
	)
	if err != nil {
		return errors.Wrap(err, "could not create importer")
	}
	return rn.services.RegisterService(svc)
}

func (rn *RewardsNode) registerHTTPService(cliCtx *cli.Context) error {
	router := mux.NewRouter()
	blocker := &lookup.BeaconDbBlocker{BeaconDB: rn.db}
	stater := &lookup.BeaconDbStater{BeaconDB: rn.db, Blocker: blocker}
	rs := &rewards.Server{
		RewardFetcher: &rewards.Service{
			Blocker: blocker,
			Stater:  stater,
			Config:  rn.cfg,
		},
	}
	rs.RegisterRoutes(router)

	host := cliCtx.String(flags.HTTPServerHost.Name)
	port := cliCtx.Int(flags.HTTPServerPort.Name)
	origins := strings.Split(cliCtx.String(flags.HTTPServerCorsDomain.Name), ",")
	srv, err := server.New(
		rn.ctx,
		server.WithRouter(router),
		server.WithHTTPAddr(fmt.Sprintf("%s:%d", host, port)),
		server.WithAllowedOrigins(origins),
		server.WithTimeout(cliCtx.Duration(flags.HTTPServerTimeout.Name)),
	)
	if err != nil {
		return errors.Wrap(err, "could not create HTTP server")
	}
	return rn.services.RegisterService(srv)
}

func (rn *RewardsNode) registerPrometheusService(cliCtx *cli.Context) error {
	var additionalHandlers []prometheus.Handler
	if cliCtx.IsSet(cmd.EnableBackupWebhookFlag.Name) {
		additionalHandlers = append(
			additionalHandlers,
			prometheus.Handler{
				Path:    "/db/backup",
				Handler: backup.Handler(rn.db, cliCtx.String(cmd.BackupWebhookOutputDir.Name)),
			},
		)
	}

	service := prometheus.NewService(
		fmt.Sprintf("%s:%d", cliCtx.String(cmd.MonitoringHostFlag.Name), cliCtx.Int(cmd.MonitoringPortFlag.Name)),
		rn.services,
		additionalHandlers...,
	)
	hook := prometheus.NewLogrusCollector()
	logrus.AddHook(hook)
	return rn.services.RegisterService(service)
}
