package server

import (
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Option for configuring the http-rest service.
type Option func(g *Server) error

// WithRouter allows adding a custom mux router to the server.
func WithRouter(r *mux.Router) Option {
	return func(g *Server) error {
		g.cfg.router = r
		return nil
	}
}

// WithHTTPAddr allows adding a custom http address to the server.
func WithHTTPAddr(addr string) Option {
	return func(g *Server) error {
		g.cfg.httpAddr = addr
		return nil
	}
}

// WithAllowedOrigins allows adding a set of allowed origins to the server.
func WithAllowedOrigins(origins []string) Option {
	return func(g *Server) error {
		g.cfg.allowedOrigins = origins
		return nil
	}
}

// WithTimeout allows changing the timeout value for API calls.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Server) error {
		if timeout <= 0 {
			return errors.Errorf("timeout must be positive, got %s", timeout)
		}
		g.cfg.timeout = timeout
		return nil
	}
}
