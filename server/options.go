// File: server/options.go
// Package server defines functional options for the Server facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"log/slog"
	"time"

	"github.com/momentics/hioload-http/control"
)

// ServerOption customizes server initialization.
type ServerOption func(*Server)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics shares a metrics registry with the caller.
func WithMetrics(m *control.Metrics) ServerOption {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMiddleware attaches middleware in FIFO order.
func WithMiddleware(mw ...Middleware) ServerOption {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithAddr overrides the bind address.
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		s.cfg.Addr = addr
	}
}

// WithReadTimeout bounds how long a client may take to send its request head.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.cfg.ReadTimeout = d
	}
}

// WithWriteTimeout bounds how long writing a response may take.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.cfg.WriteTimeout = d
	}
}

// WithHandlerTimeout bounds how long a matched handler may run. A handler
// still running past it gets its context cancelled and the client a 503.
func WithHandlerTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.cfg.HandlerTimeout = d
	}
}

// WithMaxHeaderBytes caps the size of the request head.
func WithMaxHeaderBytes(n int) ServerOption {
	return func(s *Server) {
		s.cfg.MaxHeaderBytes = n
	}
}

// WithExecutorWorkers sets the number of connection worker goroutines.
func WithExecutorWorkers(n int) ServerOption {
	return func(s *Server) {
		s.cfg.Workers = n
	}
}

// WithBacklog sets how many accepted connections may wait for a worker.
func WithBacklog(n int) ServerOption {
	return func(s *Server) {
		s.cfg.Backlog = n
	}
}

// WithMaxConnections caps concurrently open connections.
func WithMaxConnections(n int) ServerOption {
	return func(s *Server) {
		s.cfg.MaxConnections = n
	}
}
