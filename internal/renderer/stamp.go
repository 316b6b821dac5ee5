package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// stampColor is the label colour for frame stamps
var stampColor = color.RGBA{R: 248, G: 179, B: 29, A: 255}

// LoadFont parses the bundled Go Regular TrueType font at the given size
func LoadFont(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return face, nil
}

// StampSize picks a label size proportional to the image height
func StampSize(height int) float64 {
	return max(8, float64(height)/16)
}

// DrawStamp draws text in the top right corner of img
func DrawStamp(img *Image, face font.Face, text string) {
	d := &font.Drawer{
		Dst:  img.RGBA(),
		Src:  image.NewUniform(stampColor),
		Face: face,
	}

	// Measure text dimensions
	bounds, _ := d.BoundString(text)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	// Offset from the edges scales with the image
	offset := img.Height / 32
	x := img.Width - textWidth - offset
	y := textHeight + offset

	d.Dot = freetype.Pt(x, y)
	d.DrawString(text)
}

// FrameLabel formats a frame index the way sequence files are numbered
func FrameLabel(frameIndex int) string {
	return fmt.Sprintf("%04d", frameIndex)
}
