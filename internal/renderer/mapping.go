package renderer

import (
	"math"

	"github.com/linuxmatters/wavepaint/internal/audio"
)

// loudThreshold separates transients that brighten the frame from quiet
// samples drawn with the dim fallback
const loudThreshold = 0.19

// dimLevel scales quiet samples in the default strategy
const dimLevel = 0.25

// laneWidth is the number of pixels the loudness row loop handles per step
const laneWidth = 4

// frameParams are the per-frame inputs shared by every pixel
type frameParams struct {
	src         *audio.Source
	sampleIndex int
	frameSize   int
	amp         float64
	diagonal    float64
}

// channel converts a colour intensity to a byte. The value is truncated
// toward zero and then wraps modulo 256, matching fixed-width arithmetic.
func channel(v float64) uint8 {
	return uint8(int64(v))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func abs32(v float32) float64 {
	return math.Abs(float64(v))
}

// defaultRow maps one row with the symmetric product-of-offsets scheme.
// Loud samples add to the existing colour; quiet ones overwrite it.
func defaultRow(img *Image, p *frameParams, y int) {
	w, h := float64(img.Width), float64(img.Height)
	start := float64(p.sampleIndex)
	dy := float64(y) - h*0.5
	area := w * h

	for x := 0; x < img.Width; x++ {
		factor := (float64(x) - w*0.5) * dy / area
		at := int(math.Abs(lerp(start, start*2, factor))) + 3

		s0, s1, s2 := p.src.At(at), p.src.At(at+1), p.src.At(at+2)
		px := img.Pixel(x, y)
		if abs32(s0) > loudThreshold {
			px[0] += channel(p.amp * abs32(s0) * 255)
			px[1] += channel(p.amp * abs32(s1) * 255)
			px[2] += channel(p.amp * abs32(s2) * 255)
		} else {
			px[0] = channel(dimLevel * abs32(s0) * 255)
			px[1] = channel(dimLevel * abs32(s1) * 255)
			px[2] = channel(dimLevel * abs32(s2) * 255)
		}
	}
}

// experimentalRow maps one row radially: each channel reads a sample whose
// offset is interpolated by distance from the centre, with G and B pulled
// progressively toward the centre weighting.
func experimentalRow(img *Image, p *frameParams, y int) {
	start := float64(p.sampleIndex)
	end := start + float64(p.frameSize)
	cx, cy := float64(img.Width/2), float64(img.Height/2)

	for x := 0; x < img.Width; x++ {
		dist := math.Hypot(float64(x)-cx, float64(y)-cy)

		at0 := int(math.Abs(lerp(end, start, 1-dist/p.diagonal)))
		at1 := int(math.Abs(lerp(end, start, 1-(dist*0.75)/p.diagonal)))
		at2 := int(math.Abs(lerp(end, start, 1-(dist*0.50)/p.diagonal)))

		px := img.Pixel(x, y)
		px[0] = channel(p.amp * abs32(p.src.At(at0)) * 255)
		px[1] = channel(p.amp * abs32(p.src.At(at1)) * 255)
		px[2] = channel(p.amp * abs32(p.src.At(at2)) * 255)
	}
}

var blackLanes [laneWidth * BytesPerPixel]byte

// loudnessRow clears one row to black and copies the mask over it. Pixels
// are handled laneWidth at a time with a scalar tail; the result is the same
// as clearing and copying one pixel at a time.
func loudnessRow(img *Image, mask *Mask, y int) {
	rowStart := img.Offset(0, y)
	row := img.Pix[rowStart : rowStart+img.Width*BytesPerPixel]

	x := 0
	for ; x+laneWidth <= img.Width; x += laneWidth {
		o := x * BytesPerPixel
		copy(row[o:o+len(blackLanes)], blackLanes[:])
		if mask != nil {
			mask.CopyInto(row[o:], x, y)
			mask.CopyInto(row[o+4:], x+1, y)
			mask.CopyInto(row[o+8:], x+2, y)
			mask.CopyInto(row[o+12:], x+3, y)
		}
	}

	for ; x < img.Width; x++ {
		o := x * BytesPerPixel
		clear(row[o : o+BytesPerPixel])
		if mask != nil {
			mask.CopyInto(row[o:], x, y)
		}
	}
}

// singleRow fills one row of the single-image mode: three consecutive
// samples per pixel, advancing channels*3 samples per pixel from start.
// Samples are used as-is, without magnitude.
func singleRow(img *Image, src *audio.Source, mask *Mask, start, y int) {
	stride := src.Channels * 3
	idx := start + y*img.Width*stride

	for x := 0; x < img.Width; x++ {
		at := idx + 3
		px := img.Pixel(x, y)
		px[0] = channel(float64(src.At(at)) * 255)
		px[1] = channel(float64(src.At(at+1)) * 255)
		px[2] = channel(float64(src.At(at+2)) * 255)
		if mask != nil {
			mask.AddInto(px, x, y)
		}
		idx += stride
	}
}
