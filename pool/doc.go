// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory layer for hioload-http connection reads.
// Size-classed byte buffers are recycled through sync.Pool so that
// per-connection head reads do not allocate on the hot path.
// See bufferpool.go for implementation details.
package pool
