// Package bufpool provides pooled *bytes.Buffer instances for the buffered
// serialization path.
package bufpool

import (
	"bytes"
	"sync"
)

// Buffers that grew beyond this are dropped instead of pooled.
const maxRetainedSize = 1 << 20

// Pool hands out reusable byte buffers. Safe for concurrent use.
type Pool struct {
	p sync.Pool
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{
		p: sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
}

// Get borrows a buffer from the pool.
func (p *Pool) Get() *bytes.Buffer {
	return p.p.Get().(*bytes.Buffer)
}

// Put resets and returns a buffer to the pool.
func (p *Pool) Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxRetainedSize {
		return
	}
	b.Reset()
	p.p.Put(b)
}
