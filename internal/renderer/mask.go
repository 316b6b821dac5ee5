package renderer

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Mask is a secondary image composited over generated frames. It is mapped
// onto the output by nearest-neighbour scaling with no interpolation;
// scaled coordinates that land outside the mask wrap around.
type Mask struct {
	img    *Image
	scaleX float64
	scaleY float64
}

// LoadMask decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file and prepares
// it for compositing onto a width x height output.
func LoadMask(filename string, width, height int) (*Mask, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mask: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: mask is empty", ErrInvalidDimensions)
	}

	// Convert to packed RGBA at the mask's own resolution
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return NewMask(FromRGBA(rgba), width, height)
}

// NewMask prepares an already decoded image for a width x height output
func NewMask(img *Image, width, height int) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Mask{
		img:    img,
		scaleX: float64(img.Width) / float64(width),
		scaleY: float64(img.Height) / float64(height),
	}, nil
}

// SourceOffset returns the byte offset in the mask for destination pixel (x, y)
func (m *Mask) SourceOffset(x, y int) int {
	mx := int(m.scaleX * float64(x))
	my := int(m.scaleY * float64(y))
	return m.img.Offset(mx, my)
}

// CopyInto overwrites all four bytes of the destination pixel px with the
// mask pixel mapped to (x, y).
func (m *Mask) CopyInto(px []byte, x, y int) {
	s := m.SourceOffset(x, y)
	copy(px[:BytesPerPixel], m.img.Pix[s:s+BytesPerPixel])
}

// AddInto adds the R, G and B of the mask pixel mapped to (x, y) onto the
// destination pixel px. Channels wrap on overflow.
func (m *Mask) AddInto(px []byte, x, y int) {
	s := m.SourceOffset(x, y)
	px[0] += m.img.Pix[s]
	px[1] += m.img.Pix[s+1]
	px[2] += m.img.Pix[s+2]
}
