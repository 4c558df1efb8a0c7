package bitmap

import (
	"image"
	"image/color"
)

// Palette maps color index 0 (off) to white and 1 (on) to black.
var Palette = color.Palette{color.White, color.Black}

// Encoders such as image/png write a two color PalettedImage as one bit per
// pixel.
var _ image.PalettedImage = &Bitmap{}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.size, b.size)
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	return Palette
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	return Palette[b.Get(x, y)]
}

// ColorIndexAt implements image.PalettedImage.
func (b *Bitmap) ColorIndexAt(x, y int) uint8 {
	return b.Get(x, y)
}

// SetColorIndex turns the pixel on for any non-zero index.
func (b *Bitmap) SetColorIndex(x, y int, index uint8) {
	b.Set(x, y, index != 0)
}
