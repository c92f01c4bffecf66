// File: server/server.go
// Package server provides the HTTP/1.1 server facade: route registration,
// the accept loop, per-connection dispatch and graceful shutdown.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/momentics/hioload-http/api"
	"github.com/momentics/hioload-http/control"
	"github.com/momentics/hioload-http/internal/concurrency"
	"github.com/momentics/hioload-http/internal/transport"
	"github.com/momentics/hioload-http/logging"
	"github.com/momentics/hioload-http/pool"
	"github.com/momentics/hioload-http/protocol"
	"github.com/momentics/hioload-http/router"
)

var ErrAlreadyRunning = errors.New("server already running")

// Server is the unified facade encapsulating route table, listener, executor and metrics.
type Server struct {
	cfg        *Config
	routes     *router.Table
	logger     *slog.Logger
	metrics    *control.Metrics
	probes     *control.DebugProbes
	buffers    *pool.BytePool
	middleware []Middleware

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	done     chan struct{} // closed when Serve has drained all connections
	running  bool
	closed   bool
}

// NewServer constructs a Server with the given Config and options.
// A nil cfg uses DefaultConfig.
func NewServer(cfg *Config, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	s := &Server{
		cfg:     &c,
		logger:  logging.Nop(),
		metrics: control.NewMetrics(),
		probes:  control.NewDebugProbes(),
		buffers: pool.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.routes = router.NewTable(s.logger)

	control.RegisterPlatformProbes(s.probes)
	s.probes.RegisterProbe("metrics", func() any { return s.metrics.GetSnapshot() })
	s.probes.RegisterProbe("routes", func() any { return s.routes.Len() })
	return s
}

// Register binds handler to (path, method). A duplicate registration is
// logged and rejected with api.ErrDuplicateRoute; the first handler stays.
func (s *Server) Register(path string, method protocol.Method, handler api.Handler) error {
	return s.routes.Register(path, method, handler)
}

// HandleFunc registers a plain function for (path, method).
func (s *Server) HandleFunc(path string, method protocol.Method, fn api.HandlerFunc) error {
	if fn == nil {
		return s.routes.Register(path, method, nil)
	}
	return s.routes.Register(path, method, fn)
}

// GET registers fn for GET requests on path.
func (s *Server) GET(path string, fn api.HandlerFunc) error {
	return s.HandleFunc(path, protocol.MethodGet, fn)
}

// POST registers fn for POST requests on path.
func (s *Server) POST(path string, fn api.HandlerFunc) error {
	return s.HandleFunc(path, protocol.MethodPost, fn)
}

// PUT registers fn for PUT requests on path.
func (s *Server) PUT(path string, fn api.HandlerFunc) error {
	return s.HandleFunc(path, protocol.MethodPut, fn)
}

// PATCH registers fn for PATCH requests on path.
func (s *Server) PATCH(path string, fn api.HandlerFunc) error {
	return s.HandleFunc(path, protocol.MethodPatch, fn)
}

// DELETE registers fn for DELETE requests on path.
func (s *Server) DELETE(path string, fn api.HandlerFunc) error {
	return s.HandleFunc(path, protocol.MethodDelete, fn)
}

// HEAD registers fn for HEAD requests on path.
func (s *Server) HEAD(path string, fn api.HandlerFunc) error {
	return s.HandleFunc(path, protocol.MethodHead, fn)
}

// OPTIONS registers fn for OPTIONS requests on path.
func (s *Server) OPTIONS(path string, fn api.HandlerFunc) error {
	return s.HandleFunc(path, protocol.MethodOptions, fn)
}

// Use appends middleware wrapped around every matched handler.
func (s *Server) Use(mw ...Middleware) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middleware = append(s.middleware, mw...)
}

// Routes exposes the route table.
func (s *Server) Routes() *router.Table {
	return s.routes
}

// Metrics returns the runtime counters.
func (s *Server) Metrics() *control.Metrics {
	return s.metrics
}

// Debug returns the probe registry describing the live server.
func (s *Server) Debug() *control.DebugProbes {
	return s.probes
}

// Config returns a copy of the effective configuration.
func (s *Server) Config() Config {
	return *s.cfg
}

// Addr returns the bound listener address, or nil before serving.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// LoopbackAddr turns a port given as ":8000" or "8000" into "127.0.0.1:8000".
func LoopbackAddr(port string) string {
	return "127.0.0.1:" + strings.TrimPrefix(port, ":")
}

// Listen binds 127.0.0.1 on port and serves until the process exits or
// Shutdown is called. It returns an api.ErrListenerBind error when the
// socket cannot be bound.
func (s *Server) Listen(port string) error {
	s.cfg.Addr = LoopbackAddr(port)
	return s.ListenAndServe(context.Background())
}

// ListenAndServe binds the configured address and serves until ctx is
// cancelled or Shutdown is called, returning api.ErrServerClosed then.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	ln, err := transport.Listen(ctx, transport.ListenerConfig{
		Addr:     s.cfg.Addr,
		MaxConns: s.cfg.MaxConnections,
	})
	if err != nil {
		return api.Wrap(api.ErrCodeListenerBind, "bind", err).WithContext("addr", s.cfg.Addr)
	}
	s.logger.Info("listening", "addr", ln.Addr().String())
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and hands each to the executor. It
// returns api.ErrServerClosed after ctx is cancelled or Shutdown is
// called, once in-flight connections have finished.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return api.ErrServerClosed
	}
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	s.listener = ln
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true
	handlerChain := append([]Middleware(nil), s.middleware...)
	done := s.done
	s.mu.Unlock()

	exec := concurrency.NewExecutor(s.cfg.Workers, s.cfg.Backlog)
	exec.OnPanic(func(r any) {
		s.logger.Error("connection task panicked", "panic", r)
	})
	s.probes.RegisterProbe("executor", func() any { return exec.Stats() })
	defer s.probes.UnregisterProbe("executor")

	defer close(done)
	defer cancel()
	defer exec.Close()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return api.ErrServerClosed
			}
			if backoff == 0 {
				backoff = 5 * time.Millisecond
			} else if backoff *= 2; backoff > time.Second {
				backoff = time.Second
			}
			s.logger.Warn("accept failed, retrying", "error", err, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return api.ErrServerClosed
			}
			continue
		}
		backoff = 0

		if err := exec.Submit(func() { s.serveConn(ctx, conn, handlerChain) }); err != nil {
			s.metrics.ConnRejected()
			s.logger.Warn("connection rejected", "remote", conn.RemoteAddr().String(), "error", err)
			s.reject(conn, api.StatusFor(err))
		}
	}
}

// Shutdown stops accepting connections and waits for in-flight ones.
// When ctx expires first, remaining connections are forced closed and
// ctx.Err() is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ln, cancel, done := s.listener, s.cancel, s.done
	s.mu.Unlock()

	if ln == nil {
		return nil
	}
	if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Debug("listener close", "error", err)
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}
