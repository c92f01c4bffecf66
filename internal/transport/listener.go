// Package transport
// Author: momentics <momentics@gmail.com>
//
// Listener factory.

package transport

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/net/netutil"
)

// ListenerConfig holds configuration for the TCP listener.
type ListenerConfig struct {
	Addr     string // TCP address to bind, e.g. "127.0.0.1:8000"
	MaxConns int    // cap on concurrently open connections, 0 = unlimited
}

// Listen binds the configured address with platform socket options applied.
// When MaxConns > 0, Accept blocks while MaxConns connections are open.
func Listen(ctx context.Context, cfg ListenerConfig) (net.Listener, error) {
	lc := net.ListenConfig{Control: setSockopts}
	ln, err := lc.Listen(ctx, "tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	if cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.MaxConns)
	}
	return ln, nil
}
