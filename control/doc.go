// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime counters and debug introspection for the HTTP server.
//
// Provides concurrent-safe primitives including:
//   - Lock-free connection and per-status response counters
//   - A named probe registry dumped on demand for debugging
//
// Platform probes are build-tag-partitioned.
package control
