/*
Package pool implements allocation strategies for the byte buffers backing
packed bitmaps.

A Pool keeps a free list per buffer length so that bitmaps which are cloned
and discarded in quick succession can reuse their buffers. Direct simply
allocates every time. Both satisfy Allocator and are interchangeable; a
bitmap behaves identically whichever one it is given.
*/
package pool

import "sync"

// DefaultMaxFree is the default cap on the free list for each buffer length.
const DefaultMaxFree = 50

// Allocator hands out and takes back byte buffers.
type Allocator interface {
	// Acquire returns a zeroed buffer of exactly n bytes.
	Acquire(n int) []byte
	// Release gives a buffer back. The caller must not use it afterwards.
	Release(b []byte)
}

// Direct is an Allocator that allocates a fresh buffer on every Acquire and
// leaves released buffers to the garbage collector.
type Direct struct{}

// Acquire implements Allocator.
func (Direct) Acquire(n int) []byte {
	return make([]byte, n)
}

// Release implements Allocator.
func (Direct) Release([]byte) {}

// Pool recycles buffers by length. It is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	free    map[int][][]byte
	maxFree int
}

// New returns a Pool keeping at most maxFree released buffers per length. A
// non-positive maxFree selects DefaultMaxFree.
func New(maxFree int) *Pool {
	if maxFree <= 0 {
		maxFree = DefaultMaxFree
	}
	return &Pool{
		free:    make(map[int][][]byte),
		maxFree: maxFree,
	}
}

// Acquire returns a previously released buffer of length n if there is one,
// otherwise a new one. Released buffers are zeroed on the way in so either
// path yields a zeroed buffer.
func (p *Pool) Acquire(n int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l := p.free[n]; len(l) > 0 {
		b := l[len(l)-1]
		l[len(l)-1] = nil
		p.free[n] = l[:len(l)-1]
		return b
	}

	return make([]byte, n)
}

// Release zeroes b and keeps it for a later Acquire of the same length,
// unless the free list for that length is already full.
func (p *Pool) Release(b []byte) {
	if b == nil {
		return
	}

	clear(b)

	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(b)
	if len(p.free[n]) >= p.maxFree {
		return
	}
	p.free[n] = append(p.free[n], b[:n:n])
}

// Free returns the number of buffers of length n waiting to be reused.
func (p *Pool) Free(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.free[n])
}

// Clear drops every free list.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.free = make(map[int][][]byte)
}
