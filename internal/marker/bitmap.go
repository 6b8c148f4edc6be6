package marker

import (
	"image"
	"image/color"
)

// bytesPerPixel is the channel count of a Bitmap (R, G, B).
const bytesPerPixel = 3

// Bitmap is an opaque 24-bit RGB image.
//
// Pixel (x, y) occupies Pix[PixOffset(x, y) : PixOffset(x, y)+3]. Bitmap
// implements draw.Image so encoders and font drawers can work on it directly.
type Bitmap struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewBitmap allocates a black size x size bitmap.
func NewBitmap(size int) *Bitmap {
	if size < 0 {
		size = 0
	}
	return &Bitmap{
		Pix:    make([]uint8, size*size*bytesPerPixel),
		Stride: size * bytesPerPixel,
		Rect:   image.Rect(0, 0, size, size),
	}
}

// Size returns the side length of the bitmap.
func (b *Bitmap) Size() int { return b.Rect.Dx() }

func (b *Bitmap) ColorModel() color.Model { return color.RGBAModel }

func (b *Bitmap) Bounds() image.Rectangle { return b.Rect }

func (b *Bitmap) Opaque() bool { return true }

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (b *Bitmap) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x-b.Rect.Min.X)*bytesPerPixel
}

func (b *Bitmap) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}

// RGBAAt returns the pixel at (x, y), or transparent black outside the bounds.
func (b *Bitmap) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return color.RGBA{}
	}
	i := b.PixOffset(x, y)
	s := b.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	return color.RGBA{R: s[0], G: s[1], B: s[2], A: 0xff}
}

func (b *Bitmap) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	c1 := color.RGBAModel.Convert(c).(color.RGBA)
	i := b.PixOffset(x, y)
	s := b.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	s[0] = c1.R
	s[1] = c1.G
	s[2] = c1.B
}

// setGray writes the same value to all three channels of (x, y).
func (b *Bitmap) setGray(x, y int, v uint8) {
	i := b.PixOffset(x, y)
	s := b.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	s[0] = v
	s[1] = v
	s[2] = v
}

// SubImage returns the part of b visible through r. The returned value
// shares pixels with b.
func (b *Bitmap) SubImage(r image.Rectangle) image.Image {
	return b.sub(r)
}

func (b *Bitmap) sub(r image.Rectangle) *Bitmap {
	r = r.Intersect(b.Rect)
	if r.Empty() {
		return &Bitmap{}
	}
	i := b.PixOffset(r.Min.X, r.Min.Y)
	return &Bitmap{
		Pix:    b.Pix[i:],
		Stride: b.Stride,
		Rect:   r,
	}
}
