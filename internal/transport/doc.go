// File: internal/transport/doc.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TCP listener construction for hioload-http. Socket options are applied
// per platform behind build tags; admission limits wrap the listener.

package transport
