package pool

import (
	"bytes"
	"sync"
)

// BufferPool manages a pool of staging buffers sized for one output segment.
// Codec sessions acquire a buffer for the lifetime of a run and return it on
// close, so independent runs of the same transformation reuse allocations
// without sharing state.
type BufferPool struct {
	size int       // Expected working size of each buffer.
	pool sync.Pool // Thread-safe pool of buffers.
}

// Creates a new buffer pool with a specified working buffer size.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, size))
			},
		},
	}
}

// Retrieves a clean buffer from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	buf := bp.pool.Get().(*bytes.Buffer)
	buf.Reset() // Ensure the buffer is clean.
	return buf
}

// Returns a buffer to the pool.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil {
		return
	}

	// Don't pool buffers that have grown far beyond the working size,
	// otherwise one incompressible run pins memory for every later run.
	if buf.Cap() > bp.size*2 {
		return
	}

	buf.Reset()
	bp.pool.Put(buf)
}
