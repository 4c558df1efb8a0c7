/*
Package bitmap implements the square monochrome pixel grid that glyphs are
drawn on.

A Bitmap of side length n is stored as a packed buffer of (n*n+7)/8 bytes.
Pixel (x, y) is bit y*n+x counting from the start of the buffer, with the
most significant bit of each byte first. Reading a pixel outside the grid
returns 0 and writing one is ignored.
*/
package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/pixelfont/pool"
)

// Sizes lists the side lengths a Bitmap can have.
var Sizes = [...]int{8, 16, 32, 64}

var (
	// ErrInvalidSize is returned when creating a Bitmap with a side length
	// not found in Sizes.
	ErrInvalidSize = errors.New("bitmap: invalid size")
	// ErrInvalidLength is returned when a byte slice doesn't match the
	// buffer length for the size.
	ErrInvalidLength = errors.New("bitmap: invalid data length")
	// ErrSizeMismatch is returned when combining bitmaps of different
	// sizes.
	ErrSizeMismatch = errors.New("bitmap: size mismatch")
)

// ValidSize reports whether size is one of Sizes.
func ValidSize(size int) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// BufferLen returns the number of bytes needed to pack a size by size grid.
func BufferLen(size int) int {
	return (size*size + 7) / 8
}

// An Option configures a Bitmap.
type Option func(*Bitmap)

// WithAllocator sets where the Bitmap gets its buffer from. Clones share
// the allocator of the original.
func WithAllocator(a pool.Allocator) Option {
	return func(b *Bitmap) {
		if a != nil {
			b.alloc = a
		}
	}
}

// Bitmap is a packed square monochrome pixel grid. A Bitmap owns its buffer
// and is not safe for concurrent mutation; copy it with Clone before
// handing it to another owner.
type Bitmap struct {
	size  int
	buf   []byte
	alloc pool.Allocator
}

// New returns an empty Bitmap with the given side length.
func New(size int, opts ...Option) (*Bitmap, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	b := &Bitmap{
		size:  size,
		alloc: pool.Direct{},
	}
	for _, o := range opts {
		o(b)
	}
	b.buf = b.alloc.Acquire(BufferLen(size))

	return b, nil
}

// MustNew is like New but panics if size is invalid.
func MustNew(size int, opts ...Option) *Bitmap {
	b, err := New(size, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the side length.
func (b *Bitmap) Size() int {
	return b.size
}

// Data returns a copy of the packed buffer.
func (b *Bitmap) Data() []byte {
	return bytes.Clone(b.buf)
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%dx%d)", b.size, b.size)
}

func (b *Bitmap) in(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// offset returns the byte index and bit shift of pixel (x, y).
func (b *Bitmap) offset(x, y int) (int, uint) {
	i := y*b.size + x
	return i >> 3, uint(7 - i&7)
}

// Get returns 1 if the pixel at (x, y) is on, and 0 otherwise.
func (b *Bitmap) Get(x, y int) uint8 {
	if !b.in(x, y) {
		return 0
	}
	i, shift := b.offset(x, y)
	return b.buf[i] >> shift & 1
}

// Set turns the pixel at (x, y) on or off.
func (b *Bitmap) Set(x, y int, on bool) *Bitmap {
	if !b.in(x, y) {
		return b
	}
	i, shift := b.offset(x, y)
	if on {
		b.buf[i] |= 1 << shift
	} else {
		b.buf[i] &^= 1 << shift
	}
	return b
}

// Clear turns every pixel off.
func (b *Bitmap) Clear() *Bitmap {
	clear(b.buf)
	return b
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{
		size:  b.size,
		buf:   b.alloc.Acquire(len(b.buf)),
		alloc: b.alloc,
	}
	copy(c.buf, b.buf)
	return c
}

// IsEmpty reports whether every pixel is off.
func (b *Bitmap) IsEmpty() bool {
	for _, v := range b.buf {
		if v != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether b and o have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	return b.size == o.size && bytes.Equal(b.buf, o.buf)
}

// Combine turns on every pixel in b that is on in o. It fails with
// ErrSizeMismatch, leaving b untouched, if the sizes differ.
func (b *Bitmap) Combine(o *Bitmap) error {
	if b.size != o.size {
		return fmt.Errorf("%w: %d and %d", ErrSizeMismatch, b.size, o.size)
	}
	for i, v := range o.buf {
		b.buf[i] |= v
	}
	return nil
}

// SetData replaces the packed buffer with a copy of p.
func (b *Bitmap) SetData(p []byte) error {
	if len(p) != len(b.buf) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(p), len(b.buf))
	}
	copy(b.buf, p)
	return nil
}

// Points returns every pixel that is on, in row order.
func (b *Bitmap) Points() []image.Point {
	var points []image.Point
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.Get(x, y) == 1 {
				points = append(points, image.Pt(x, y))
			}
		}
	}
	return points
}

// Release hands the buffer back to the allocator. b must not be used
// afterwards.
func (b *Bitmap) Release() {
	b.alloc.Release(b.buf)
	b.buf = nil
}
