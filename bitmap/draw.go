package bitmap

import (
	"image"

	"github.com/bodgit/pixelfont/raster"
)

func (b *Bitmap) plot(points []image.Point, on bool) *Bitmap {
	for _, p := range points {
		b.Set(p.X, p.Y, on)
	}
	return b
}

// DrawLine turns on every pixel of the line between from and to.
func (b *Bitmap) DrawLine(from, to image.Point) *Bitmap {
	return b.plot(raster.Line(from, to), true)
}

// Erase turns off every pixel of the line between from and to.
func (b *Bitmap) Erase(from, to image.Point) *Bitmap {
	return b.plot(raster.Line(from, to), false)
}

// DrawRectangle draws the outline of the rectangle with opposite corners
// from and to.
func (b *Bitmap) DrawRectangle(from, to image.Point) *Bitmap {
	return b.plot(raster.Rectangle(from, to), true)
}

// DrawEllipse draws the outline of the ellipse centred on center with the
// radii given by radii.X and radii.Y. Nothing is drawn unless both radii are
// positive.
func (b *Bitmap) DrawEllipse(center, radii image.Point) *Bitmap {
	if radii.X <= 0 || radii.Y <= 0 {
		return b
	}
	return b.plot(raster.Ellipse(center, radii), true)
}

// DrawEllipseInRect draws the outline of the ellipse inscribed in the box
// with opposite corners from and to.
func (b *Bitmap) DrawEllipseInRect(from, to image.Point) *Bitmap {
	return b.plot(raster.EllipseInRect(from, to), true)
}

// Fill turns on the 4-connected region of off pixels around start.
func (b *Bitmap) Fill(start image.Point) *Bitmap {
	on := func(x, y int) bool {
		return b.Get(x, y) == 1
	}
	return b.plot(raster.Fill(b.size, start, on), true)
}
