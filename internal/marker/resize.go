package marker

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize reports a target or source size that cannot be resized.
var ErrInvalidSize = errors.New("invalid size")

// Resize scales src to a size x size bitmap with nearest-neighbour sampling.
//
// Destination (x, y) copies source (round(x*scale), round(y*scale)) where
// scale = (srcSize-1)/(size-1), rounding half to even. No interpolation
// happens, so the output only contains colours present in src. A size of 1
// copies the source origin pixel; sizes below 1 return ErrInvalidSize.
func Resize(src *Bitmap, size int) (*Bitmap, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: target size %d must be >= 1", ErrInvalidSize, size)
	}
	if src == nil || src.Rect.Empty() {
		return nil, fmt.Errorf("%w: empty source bitmap", ErrInvalidSize)
	}
	srcSize := src.Rect.Dx()
	if src.Rect.Dy() != srcSize {
		return nil, fmt.Errorf("%w: source bitmap %dx%d is not square", ErrInvalidSize, srcSize, src.Rect.Dy())
	}

	scale := 0.0
	if size > 1 {
		scale = float64(srcSize-1) / float64(size-1)
	}

	// Rows and columns share the same mapping.
	nearest := make([]int, size)
	for i := range nearest {
		v := int(math.RoundToEven(float64(i) * scale))
		if v > srcSize-1 {
			v = srcSize - 1
		}
		nearest[i] = v
	}

	dst := NewBitmap(size)
	for y := 0; y < size; y++ {
		sy := src.Rect.Min.Y + nearest[y]
		for x := 0; x < size; x++ {
			si := src.PixOffset(src.Rect.Min.X+nearest[x], sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+bytesPerPixel], src.Pix[si:si+bytesPerPixel])
		}
	}

	return dst, nil
}
