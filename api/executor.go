// Package api
// Author: momentics
//
// Executor contract for connection dispatch.

package api

// Executor runs connection tasks on a bounded set of workers.
type Executor interface {
	// Submit schedules task for execution, or returns ErrOverloaded when
	// the backlog is full.
	Submit(task func()) error

	// NumWorkers returns current number of worker routines.
	NumWorkers() int

	// Close stops accepting tasks and waits for running ones.
	Close()
}
