// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counters for the connection pipeline.
// Counters are lock-free; snapshots are plain maps for logging and debugging.

package control

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts connection and request outcomes.
type Metrics struct {
	startedAt time.Time

	accepted atomic.Int64
	rejected atomic.Int64
	active   atomic.Int64
	ioErrors atomic.Int64

	mu       sync.RWMutex
	statuses map[int]*atomic.Int64
}

// NewMetrics creates an empty registry.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt: time.Now(),
		statuses:  make(map[int]*atomic.Int64),
	}
}

// ConnAccepted records a connection handed to a worker.
func (m *Metrics) ConnAccepted() {
	m.accepted.Add(1)
	m.active.Add(1)
}

// ConnClosed records the end of an accepted connection.
func (m *Metrics) ConnClosed() {
	m.active.Add(-1)
}

// ConnRejected records a connection shed by admission control.
func (m *Metrics) ConnRejected() {
	m.rejected.Add(1)
}

// IOError records a read or write failure on a connection.
func (m *Metrics) IOError() {
	m.ioErrors.Add(1)
}

// Status records a response written with code.
func (m *Metrics) Status(code int) {
	m.mu.RLock()
	c, ok := m.statuses[code]
	m.mu.RUnlock()
	if !ok {
		m.mu.Lock()
		if c, ok = m.statuses[code]; !ok {
			c = new(atomic.Int64)
			m.statuses[code] = c
		}
		m.mu.Unlock()
	}
	c.Add(1)
}

// Active returns the number of connections currently being served.
func (m *Metrics) Active() int64 {
	return m.active.Load()
}

// StatusCount returns how many responses were written with code.
func (m *Metrics) StatusCount(code int) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.statuses[code]; ok {
		return c.Load()
	}
	return 0
}

// GetSnapshot returns the latest metrics.
func (m *Metrics) GetSnapshot() map[string]any {
	out := map[string]any{
		"uptime":         time.Since(m.startedAt).Round(time.Millisecond).String(),
		"conns_accepted": m.accepted.Load(),
		"conns_rejected": m.rejected.Load(),
		"conns_active":   m.active.Load(),
		"conn_io_errors": m.ioErrors.Load(),
	}
	m.mu.RLock()
	for code, c := range m.statuses {
		out["responses_"+strconv.Itoa(code)] = c.Load()
	}
	m.mu.RUnlock()
	return out
}
