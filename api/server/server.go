// Package server serves the HTTP JSON API of the rewards node.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/runtime"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "api")

var _ runtime.Service = (*Server)(nil)

const defaultTimeout = 120 * time.Second

type config struct {
	httpAddr       string
	allowedOrigins []string
	router         *mux.Router
	timeout        time.Duration
}

// Server serves HTTP JSON traffic.
type Server struct {
	cfg          *config
	server       *http.Server
	cancel       context.CancelFunc
	ctx          context.Context
	startFailure error
}

// New returns a new instance of the Server.
func New(ctx context.Context, opts ...Option) (*Server, error) {
	g := &Server{
		ctx: ctx,
		cfg: &config{timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.cfg.router == nil {
		return nil, errors.New("router option not configured")
	}

	var handler http.Handler = g.cfg.router
	handler = NormalizeQueryValuesHandler(handler)
	handler = http.TimeoutHandler(handler, g.cfg.timeout, "request timed out")
	handler = CorsHandler(g.cfg.allowedOrigins).Handler(handler)
	g.cfg.router.Use(MetricsMiddleware)
	g.server = &http.Server{
		Addr:              g.cfg.httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
	}
	return g, nil
}

// Start the http rest service.
func (g *Server) Start() {
	_, cancel := context.WithCancel(g.ctx)
	g.cancel = cancel

	go func() {
		log.WithField("address", g.cfg.httpAddr).Info("Starting HTTP server")
		if err := g.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Failed to start HTTP server")
			g.startFailure = err
			return
		}
	}()
}

// Status of the HTTP server. Returns an error if this service is unhealthy.
func (g *Server) Status() error {
	if g.startFailure != nil {
		return g.startFailure
	}
	return nil
}

// Stop the HTTP server with a graceful shutdown.
func (g *Server) Stop() error {
	if g.server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(g.ctx, 2*time.Second)
		defer shutdownCancel()
		if err := g.server.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warn("Existing connections terminated")
			} else {
				log.WithError(err).Error("Failed to gracefully shut down server")
			}
		}
	}
	if g.cancel != nil {
		g.cancel()
	}
	return nil
}

// Handler returns the fully wrapped handler the server listens with.
func (g *Server) Handler() http.Handler {
	return g.server.Handler
}
