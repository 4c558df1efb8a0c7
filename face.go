package pixelfont

import (
	"image"
	"image/color"

	"github.com/bodgit/pixelfont/bitmap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FaceOptions are optional arguments to NewFace.
type FaceOptions struct {
	// Scale is the number of device pixels per glyph pixel. Zero means 1.
	Scale int
	// Spacing is the number of glyph pixels left between glyphs.
	Spacing int
	// Descent is the number of glyph rows below the baseline.
	Descent int
}

// Face draws a Font with golang.org/x/image/font. It implements font.Face.
type Face struct {
	font    *Font
	scale   int
	spacing int
	descent int
}

var _ font.Face = (*Face)(nil)

// NewFace returns a Face drawing the glyphs of f. A nil opts uses the
// defaults.
func NewFace(f *Font, opts *FaceOptions) *Face {
	face := &Face{
		font:  f,
		scale: 1,
	}
	if opts != nil {
		if opts.Scale > 0 {
			face.scale = opts.Scale
		}
		face.spacing = max(opts.Spacing, 0)
		face.descent = min(max(opts.Descent, 0), f.Size())
	}
	return face
}

// glyphMask is a glyph bitmap magnified by scale, usable as a draw mask.
type glyphMask struct {
	b     *bitmap.Bitmap
	scale int
}

func (m glyphMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (m glyphMask) Bounds() image.Rectangle {
	n := m.b.Size() * m.scale
	return image.Rect(0, 0, n, n)
}

func (m glyphMask) At(x, y int) color.Color {
	if x < 0 || y < 0 || m.b.Get(x/m.scale, y/m.scale) == 0 {
		return color.Transparent
	}
	return color.Opaque
}

func (f *Face) ascent() int {
	return (f.font.Size() - f.descent) * f.scale
}

func (f *Face) advance() fixed.Int26_6 {
	return fixed.I((f.font.Size() + f.spacing) * f.scale)
}

// Close implements font.Face.
func (f *Face) Close() error {
	return nil
}

// Glyph implements font.Face.
func (f *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	b, ok := f.font.Glyph(string(r))
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}

	n := f.font.Size() * f.scale
	x, y := dot.X.Round(), dot.Y.Round()-f.ascent()
	return image.Rect(x, y, x+n, y+n), glyphMask{b, f.scale}, image.Point{}, f.advance(), true
}

// GlyphBounds implements font.Face.
func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	if _, ok := f.font.Glyph(string(r)); !ok {
		return fixed.Rectangle26_6{}, 0, false
	}

	n := f.font.Size() * f.scale
	bounds = fixed.Rectangle26_6{
		Min: fixed.P(0, -f.ascent()),
		Max: fixed.P(n, n-f.ascent()),
	}
	return bounds, f.advance(), true
}

// GlyphAdvance implements font.Face.
func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	if _, ok := f.font.Glyph(string(r)); !ok {
		return 0, false
	}
	return f.advance(), true
}

// Kern implements font.Face. Pixel fonts are monospaced so it is always
// zero.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics implements font.Face.
func (f *Face) Metrics() font.Metrics {
	n := f.font.Size() * f.scale
	return font.Metrics{
		Height:     fixed.I(n),
		Ascent:     fixed.I(f.ascent()),
		Descent:    fixed.I(n - f.ascent()),
		XHeight:    fixed.I(f.ascent() / 2),
		CapHeight:  fixed.I(f.ascent()),
		CaretSlope: image.Pt(0, 1),
	}
}
