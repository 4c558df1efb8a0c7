package pixelfont

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bodgit/pixelfont/archive"
	"github.com/bodgit/pixelfont/bitmap"
	"github.com/bodgit/pixelfont/codec"
)

// ErrNilGlyph is returned when storing a nil bitmap in a Font.
var ErrNilGlyph = errors.New("pixelfont: nil glyph")

// Font maps single characters to glyph bitmaps. Every glyph has the same
// size as the font.
type Font struct {
	size   int
	glyphs map[string]*bitmap.Bitmap
}

// NewFont returns an empty font of glyphs size pixels square.
func NewFont(size int) (*Font, error) {
	if !bitmap.ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", bitmap.ErrInvalidSize, size)
	}
	return &Font{
		size:   size,
		glyphs: make(map[string]*bitmap.Bitmap),
	}, nil
}

// Size returns the side length of every glyph.
func (f *Font) Size() int {
	return f.size
}

// Len returns the number of glyphs.
func (f *Font) Len() int {
	return len(f.glyphs)
}

// Set stores b as the glyph for key. The font takes ownership of b and
// releases any glyph it replaces.
func (f *Font) Set(key string, b *bitmap.Bitmap) error {
	if !archive.ValidKey(key) {
		return fmt.Errorf("%w: %q", archive.ErrInvalidKey, key)
	}
	if b == nil {
		return fmt.Errorf("%w: %q", ErrNilGlyph, key)
	}
	if b.Size() != f.size {
		return fmt.Errorf("%w: glyph %q is %d, font is %d", bitmap.ErrSizeMismatch, key, b.Size(), f.size)
	}
	if old, ok := f.glyphs[key]; ok && old != b {
		old.Release()
	}
	f.glyphs[key] = b
	return nil
}

// Glyph returns the glyph for key.
func (f *Font) Glyph(key string) (*bitmap.Bitmap, bool) {
	b, ok := f.glyphs[key]
	return b, ok
}

// Delete removes and releases the glyph for key, if any.
func (f *Font) Delete(key string) {
	if b, ok := f.glyphs[key]; ok {
		b.Release()
		delete(f.glyphs, key)
	}
}

// Keys returns every key in sorted order.
func (f *Font) Keys() []string {
	keys := make([]string, 0, len(f.glyphs))
	for k := range f.glyphs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Archive returns a snapshot of the font as an archive.
func (f *Font) Archive() *archive.Archive {
	a := archive.New()
	for k, s := range codec.SerializeMap(f.glyphs) {
		if err := a.Set(k, s); err != nil {
			panic(err)
		}
	}
	return a
}

// Load replaces every glyph with those in a, releasing the old ones. Nothing
// changes if any glyph can't be decoded or has the wrong size.
func (f *Font) Load(a *archive.Archive, opts ...bitmap.Option) error {
	glyphs, err := codec.DeserializeMap(a.Glyphs(), opts...)
	if err != nil {
		return err
	}
	for k, b := range glyphs {
		if b.Size() != f.size {
			releaseAll(glyphs)
			return fmt.Errorf("%w: glyph %q is %d, font is %d", bitmap.ErrSizeMismatch, k, b.Size(), f.size)
		}
	}
	releaseAll(f.glyphs)
	f.glyphs = glyphs
	return nil
}

func releaseAll(glyphs map[string]*bitmap.Bitmap) {
	for _, b := range glyphs {
		b.Release()
	}
}
