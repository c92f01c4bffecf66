package control

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.ConnAccepted()
	m.ConnAccepted()
	m.ConnClosed()
	m.ConnRejected()
	m.IOError()
	m.Status(200)
	m.Status(404)
	m.Status(404)

	assert.Equal(t, int64(1), m.Active())
	assert.Equal(t, int64(2), m.StatusCount(404))
	assert.Zero(t, m.StatusCount(500))

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap["conns_accepted"])
	assert.Equal(t, int64(1), snap["conns_rejected"])
	assert.Equal(t, int64(1), snap["conns_active"])
	assert.Equal(t, int64(1), snap["conn_io_errors"])
	assert.Equal(t, int64(1), snap["responses_200"])
	assert.Equal(t, int64(2), snap["responses_404"])
	assert.Contains(t, snap, "uptime")
}

func TestMetrics_ConcurrentStatus(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Status(200)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1600), m.StatusCount(200))
}
