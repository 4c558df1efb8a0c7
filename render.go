package pixelfont

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Render draws text on a single line in black on white using f. Every
// character must have a glyph.
func Render(f *Font, text string, opts *FaceOptions) (*image.Gray, error) {
	face := NewFace(f, opts)

	for _, r := range text {
		if _, ok := face.GlyphAdvance(r); !ok {
			return nil, fmt.Errorf("pixelfont: no glyph for %q", r)
		}
	}

	m := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := m.Height.Ceil()

	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.Point26_6{Y: m.Ascent},
	}
	d.DrawString(text)

	return dst, nil
}
