// File: pool/bufferpool.go
// Package pool implements size-classed byte buffer pooling for connection reads.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "sync"

// Predefined (power-of-two) buffer size classes (bytes).
var sizeClasses = [...]int{
	512,
	1 * 1024,
	2 * 1024,
	4 * 1024,
	8 * 1024,
	16 * 1024,
	32 * 1024,
	64 * 1024,
}

// sizeClassUpperBound returns the smallest class >= size, or -1 when size
// exceeds the largest class.
func sizeClassUpperBound(size int) int {
	for i, c := range sizeClasses {
		if size <= c {
			return i
		}
	}
	return -1
}

// BytePool hands out byte slices of at least the requested length.
// Slices larger than the biggest class are allocated and never pooled.
type BytePool struct {
	classes [len(sizeClasses)]sync.Pool
}

// NewBytePool returns an empty pool.
func NewBytePool() *BytePool {
	p := &BytePool{}
	for i := range p.classes {
		size := sizeClasses[i]
		p.classes[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return p
}

// Get returns a slice of length size.
func (p *BytePool) Get(size int) []byte {
	idx := sizeClassUpperBound(size)
	if idx < 0 {
		return make([]byte, size)
	}
	bp := p.classes[idx].Get().(*[]byte)
	return (*bp)[:size]
}

// Put recycles buf. Slices whose capacity is not an exact class are dropped.
func (p *BytePool) Put(buf []byte) {
	c := cap(buf)
	idx := sizeClassUpperBound(c)
	if idx < 0 || sizeClasses[idx] != c {
		return
	}
	buf = buf[:c]
	p.classes[idx].Put(&buf)
}

var defaultPool = NewBytePool()

// Default returns the process-wide pool.
func Default() *BytePool {
	return defaultPool
}
