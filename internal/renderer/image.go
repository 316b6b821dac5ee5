package renderer

import (
	"errors"
	"fmt"
	"image"
)

// BytesPerPixel is fixed: R, G, B and an alpha slot
const BytesPerPixel = 4

// ErrInvalidDimensions is returned when an image cannot be allocated
var ErrInvalidDimensions = errors.New("invalid image dimensions")

// Image is a flat RGBA pixel buffer. Mappings populate R, G and B; the
// alpha byte is only touched by clears and wholesale mask copies.
type Image struct {
	Pix    []byte
	Width  int
	Height int
}

// NewImage allocates a zeroed width x height buffer
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Image{
		Pix:    make([]byte, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
	}, nil
}

// FromRGBA copies any RGBA image into a tightly packed buffer
func FromRGBA(src *image.RGBA) *Image {
	b := src.Bounds()
	img := &Image{
		Pix:    make([]byte, b.Dx()*b.Dy()*BytesPerPixel),
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	rowBytes := b.Dx() * BytesPerPixel
	for y := 0; y < b.Dy(); y++ {
		srcStart := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(img.Pix[y*rowBytes:(y+1)*rowBytes], src.Pix[srcStart:srcStart+rowBytes])
	}
	return img
}

// WrapOffset returns the byte offset of pixel (x, y) in a width x height
// buffer. The result is always in [0, bpp*width*height): coordinates outside
// the image wrap around instead of faulting. width and height must be
// positive.
func WrapOffset(x, y, width, height, bpp int) int {
	size := bpp * width * height
	off := (bpp * (x + y*width)) % size
	if off < 0 {
		off += size
	}
	return off
}

// Offset returns the wrapped byte offset of pixel (x, y)
func (img *Image) Offset(x, y int) int {
	return WrapOffset(x, y, img.Width, img.Height, BytesPerPixel)
}

// Pixel returns the four bytes of pixel (x, y), wrapped
func (img *Image) Pixel(x, y int) []byte {
	o := img.Offset(x, y)
	return img.Pix[o : o+BytesPerPixel : o+BytesPerPixel]
}

// RGBA returns an image.RGBA view sharing the pixel buffer
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: img.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}
