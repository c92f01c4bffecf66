// File: internal/concurrency/executor.go
// Package concurrency implements the bounded worker pool that serves connections.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor runs tasks on a fixed set of worker goroutines. Tasks that find
// every worker busy wait in a FIFO backlog of bounded length; once the
// backlog is full, Submit rejects with api.ErrOverloaded so the caller can
// shed load instead of queueing without limit.

package concurrency

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-http/api"
)

// ErrExecutorClosed is returned by Submit after Close.
var ErrExecutorClosed = errors.New("executor is closed")

// TaskFunc is a unit of work to execute.
type TaskFunc = func()

// Executor manages a pool of worker goroutines.
type Executor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending *queue.Queue // of TaskFunc, guarded by mu
	backlog int
	idle    int // workers waiting for a task, guarded by mu
	closed  bool
	wg      sync.WaitGroup

	numWorkers int
	onPanic    func(any)

	// statistics
	totalTasks     atomic.Int64
	completedTasks atomic.Int64
	rejectedTasks  atomic.Int64
}

var _ api.Executor = (*Executor)(nil)

// NewExecutor starts numWorkers goroutines with room for backlog tasks
// waiting beyond those idle workers can take. numWorkers <= 0 defaults to
// runtime.NumCPU(); backlog < 0 is treated as 0.
func NewExecutor(numWorkers, backlog int) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if backlog < 0 {
		backlog = 0
	}
	e := &Executor{
		pending:    queue.New(),
		backlog:    backlog,
		numWorkers: numWorkers,
	}
	e.cond = sync.NewCond(&e.mu)
	for i := 0; i < numWorkers; i++ {
		e.wg.Add(1)
		go e.run()
	}
	return e
}

// OnPanic installs a hook receiving values recovered from panicking tasks.
// It must be called before the first Submit.
func (e *Executor) OnPanic(fn func(any)) {
	e.onPanic = fn
}

// Submit enqueues a task. It fails with api.ErrOverloaded when the backlog
// is full and ErrExecutorClosed after Close.
func (e *Executor) Submit(task func()) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrExecutorClosed
	}
	if e.pending.Length() >= e.backlog+e.idle {
		e.mu.Unlock()
		e.rejectedTasks.Add(1)
		return api.ErrOverloaded
	}
	e.pending.Add(task)
	e.totalTasks.Add(1)
	e.mu.Unlock()
	e.cond.Signal()
	return nil
}

// NumWorkers returns the worker count.
func (e *Executor) NumWorkers() int {
	return e.numWorkers
}

// Pending returns the number of tasks waiting for a worker.
func (e *Executor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending.Length()
}

// Close stops accepting tasks, lets workers drain the backlog and waits for them.
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()
	e.wg.Wait()
}

// Stats returns basic executor metrics.
func (e *Executor) Stats() map[string]int64 {
	total := e.totalTasks.Load()
	completed := e.completedTasks.Load()
	return map[string]int64{
		"total_tasks":     total,
		"completed_tasks": completed,
		"rejected_tasks":  e.rejectedTasks.Load(),
		"pending_tasks":   total - completed,
		"num_workers":     int64(e.numWorkers),
	}
}

func (e *Executor) run() {
	defer e.wg.Done()
	for {
		e.mu.Lock()
		e.idle++
		for e.pending.Length() == 0 && !e.closed {
			e.cond.Wait()
		}
		e.idle--
		if e.pending.Length() == 0 {
			e.mu.Unlock()
			return
		}
		task := e.pending.Remove().(TaskFunc)
		e.mu.Unlock()

		e.execute(task)
	}
}

// execute runs the task, recovering from panics to keep the worker alive.
func (e *Executor) execute(task TaskFunc) {
	defer func() {
		if r := recover(); r != nil && e.onPanic != nil {
			e.onPanic(r)
		}
		e.completedTasks.Add(1)
	}()
	task()
}
