package pixelfont

import (
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/pixelfont/bitmap"
	"github.com/ericpauley/go-quantize/quantize"
)

var errWrongSize = errors.New("pixelfont: image is wrong size")

// shade returns the gray level of c composited over white.
func shade(c color.Color) uint32 {
	r, g, b, a := c.RGBA()
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	// Premultiplied, so add back the white showing through
	return y + 0xffff - a
}

// inkIndex returns the palette index that counts as ink, or -1 if none does.
// With two colors the darker is ink, a single color is ink if it is closer to
// black than white.
func inkIndex(p color.Palette) int {
	switch len(p) {
	case 1:
		if shade(p[0]) < 0x8000 {
			return 0
		}
	case 2:
		s0, s1 := shade(p[0]), shade(p[1])
		switch {
		case s0 < s1:
			return 0
		case s1 < s0:
			return 1
		}
	}
	return -1
}

// toBitmap converts m to a glyph of the given size. Images with up to two
// palette colors are used as they are, anything else is quantized to two
// colors first.
func toBitmap(m image.Image, size int, opts ...bitmap.Option) (*bitmap.Bitmap, error) {
	r := m.Bounds()
	if r.Dx() != size || r.Dy() != size {
		return nil, errWrongSize
	}

	p, ok := m.ColorModel().(color.Palette)
	if !ok || len(p) > 2 {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, 2), m)
	}

	b, err := bitmap.New(size, opts...)
	if err != nil {
		return nil, err
	}

	ink := inkIndex(p)
	if ink < 0 {
		return b, nil
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if p.Index(m.At(x, y)) == ink {
				b.Set(x-r.Min.X, y-r.Min.Y, true)
			}
		}
	}

	return b, nil
}
