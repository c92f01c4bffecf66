// internal/transport/sockopt_other.go
//go:build !linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import "syscall"

// setSockopts keeps the platform defaults.
func setSockopts(network, address string, c syscall.RawConn) error {
	return nil
}
