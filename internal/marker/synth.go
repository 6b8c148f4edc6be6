package marker

import (
	"image"
	"math/rand/v2"

	"golang.org/x/image/draw"
)

// bitStream turns the seeded generator into single bits.
//
// Format v1: a math/rand/v2 PCG (PCG-DXSM) seeded with NewPCG(s, s) where
// s = uint64(uint32(seed)); each 64-bit output is consumed least significant
// bit first. Changing any of this changes every marker ever issued.
type bitStream struct {
	src  *rand.PCG
	word uint64
	left int
}

func newBitStream(seed int32) *bitStream {
	s := uint64(uint32(seed))
	return &bitStream{src: rand.NewPCG(s, s)}
}

func (b *bitStream) next() uint64 {
	if b.left == 0 {
		b.word = b.src.Uint64()
		b.left = 64
	}
	bit := b.word & 1
	b.word >>= 1
	b.left--
	return bit
}

// Synthesize draws the base bitmap of profile p for seed.
//
// The result is a p.BaseSize square: a black frame of p.BorderThickness
// pixels, white padding, and an interior where every pixel is black or white
// according to one bit of the seeded stream, scanned row by row. The same
// (seed, p) always yields the same pixels.
func Synthesize(seed int32, p Profile) (*Bitmap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	size := p.BaseSize
	img := NewBitmap(size)
	draw.Draw(img, img.Rect, image.White, image.Point{}, draw.Src)

	if t := p.BorderThickness; t > 0 {
		bands := []image.Rectangle{
			image.Rect(0, 0, size, t),         // top
			image.Rect(size-t, 0, size, size), // right
			image.Rect(0, size-t, size, size), // bottom
			image.Rect(0, 0, t, size),         // left
		}
		for _, band := range bands {
			draw.Draw(img, band, image.Black, image.Point{}, draw.Src)
		}
	}

	bits := newBitStream(seed)
	interior := p.Interior()
	for y := interior.Min.Y; y < interior.Max.Y; y++ {
		for x := interior.Min.X; x < interior.Max.X; x++ {
			if bits.next() == 1 {
				img.setGray(x, y, 0x00)
			} else {
				img.setGray(x, y, 0xff)
			}
		}
	}

	return img, nil
}
