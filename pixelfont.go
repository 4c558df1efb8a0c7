/*
Package pixelfont is a library for building bitmap fonts out of square
monochrome glyphs.

Glyphs are bitmaps from the bitmap package, drawn with lines, rectangles,
ellipses and flood fills. A Font collects them by character and converts to
and from the archive package's formats. PixelFont moves fonts between
archives and directories of glyph images.
*/
package pixelfont

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime"

	"github.com/bodgit/pixelfont/bitmap"
	"github.com/bodgit/pixelfont/pool"
)

// An Option configures a PixelFont.
type Option func(*PixelFont)

// WithAllocator makes every glyph created by the PixelFont take its buffer
// from a.
func WithAllocator(a pool.Allocator) Option {
	return func(p *PixelFont) {
		p.alloc = a
	}
}

// WithWorkers sets how many images are decoded concurrently. The default is
// the number of CPUs.
func WithWorkers(n int) Option {
	return func(p *PixelFont) {
		if n > 0 {
			p.workers = n
		}
	}
}

// PixelFont imports, exports and renders fonts of one glyph size.
type PixelFont struct {
	size    int
	logger  *log.Logger
	alloc   pool.Allocator
	workers int
}

// New returns a PixelFont for glyphs size pixels square. Progress is logged
// to logger, which may be nil.
func New(size int, logger *log.Logger, opts ...Option) (*PixelFont, error) {
	if !bitmap.ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", bitmap.ErrInvalidSize, size)
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	p := &PixelFont{
		size:    size,
		logger:  logger,
		alloc:   pool.Direct{},
		workers: runtime.NumCPU(),
	}
	for _, o := range opts {
		o(p)
	}

	return p, nil
}

// Size returns the glyph size.
func (p *PixelFont) Size() int {
	return p.size
}

// NewFont returns an empty font of the glyph size.
func (p *PixelFont) NewFont() *Font {
	f, _ := NewFont(p.size)
	return f
}

// NewGlyph returns an empty glyph bitmap using the configured allocator.
func (p *PixelFont) NewGlyph() *bitmap.Bitmap {
	return bitmap.MustNew(p.size, bitmap.WithAllocator(p.alloc))
}
