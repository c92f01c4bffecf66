// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives for hioload-http: a fixed worker pool with a
// bounded FIFO admission backlog that sheds load once full.
package concurrency
