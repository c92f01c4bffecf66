// internal/transport/sockopt_linux.go
//go:build linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// setSockopts enables address reuse for fast restarts and disables Nagle
// on the listening socket; accepted sockets inherit TCP_NODELAY.
func setSockopts(network, address string, c syscall.RawConn) error {
	var serr error
	err := c.Control(func(fd uintptr) {
		if serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); serr != nil {
			serr = fmt.Errorf("SO_REUSEADDR: %w", serr)
			return
		}
		if serr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); serr != nil {
			serr = fmt.Errorf("TCP_NODELAY: %w", serr)
		}
	})
	if err != nil {
		return err
	}
	return serr
}
