package renderer

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/linuxmatters/wavepaint/internal/audio"
	"golang.org/x/sync/errgroup"
)

// Config holds the renderer configuration
type Config struct {
	Strategy     Strategy // Mapping used by RenderFrame
	SeqFrameRate int      // Sequence frames per second of audio
	Workers      int      // Row workers; 0 uses GOMAXPROCS
}

// Renderer turns windows of an audio source into pixels of a single,
// reused image buffer
type Renderer struct {
	src  *audio.Source
	img  *Image
	mask *Mask

	strategy  Strategy
	frameSize int
	diagonal  float64
	workers   int

	// Amplitude of the most recently rendered sequence frame
	lastAmp float64
}

// FrameSize returns the number of interleaved samples one sequence frame
// spans at the given frame rate
func FrameSize(src *audio.Source, seqFrameRate int) int {
	if seqFrameRate <= 0 {
		return 0
	}
	return int(float64(src.SampleRate*src.Channels) / float64(seqFrameRate))
}

// NewRenderer creates a renderer drawing into img. mask may be nil.
func NewRenderer(src *audio.Source, img *Image, mask *Mask, cfg Config) (*Renderer, error) {
	if src == nil || src.Len() == 0 {
		return nil, audio.ErrNoAudio
	}
	if src.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", src.Channels)
	}
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, ErrInvalidDimensions
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > img.Height {
		workers = img.Height
	}

	return &Renderer{
		src:       src,
		img:       img,
		mask:      mask,
		strategy:  cfg.Strategy,
		frameSize: FrameSize(src, cfg.SeqFrameRate),
		diagonal:  math.Hypot(float64(img.Width), float64(img.Height)),
		workers:   workers,
	}, nil
}

// Image returns the buffer the renderer draws into
func (r *Renderer) Image() *Image {
	return r.img
}

// SampleIndex returns the first sample of a sequence frame
func (r *Renderer) SampleIndex(frameIndex int) int {
	return frameIndex * r.frameSize
}

// Amplitude returns the brightness multiplier of a sequence frame, computed
// over the frame's own window of samples
func (r *Renderer) Amplitude(frameIndex int) float64 {
	return r.src.WindowAmplitude(r.SampleIndex(frameIndex), r.frameSize)
}

// FrameAmplitude returns the amplitude computed by the last RenderFrame call.
// The loudness strategy does not draw with it but it is still measured.
func (r *Renderer) FrameAmplitude() float64 {
	return r.lastAmp
}

// RenderFrame draws sequence frame frameIndex with the configured strategy.
// The buffer is updated in place; the default strategy reads the previous
// frame's colours.
func (r *Renderer) RenderFrame(ctx context.Context, frameIndex int) error {
	if err := r.strategy.Validate(); err != nil {
		return err
	}

	r.lastAmp = r.Amplitude(frameIndex)
	p := &frameParams{
		src:         r.src,
		sampleIndex: r.SampleIndex(frameIndex),
		frameSize:   r.frameSize,
		amp:         r.lastAmp,
		diagonal:    r.diagonal,
	}

	var row func(y int)
	switch r.strategy {
	case StrategyDefault:
		row = func(y int) { defaultRow(r.img, p, y) }
	case StrategyExperimental:
		row = func(y int) { experimentalRow(r.img, p, y) }
	case StrategyLoudness:
		row = func(y int) { loudnessRow(r.img, r.mask, y) }
	}

	return r.eachRow(ctx, row)
}

// RenderSingle draws the single-image mode starting at sample startIndex,
// then adds the mask if one is loaded
func (r *Renderer) RenderSingle(ctx context.Context, startIndex int) error {
	return r.eachRow(ctx, func(y int) {
		singleRow(r.img, r.src, r.mask, startIndex, y)
	})
}

// eachRow splits the image into horizontal bands and runs row over every
// row. Pixels only depend on their own coordinates, so the output does not
// depend on the number of workers.
func (r *Renderer) eachRow(ctx context.Context, row func(y int)) error {
	if r.workers <= 1 {
		for y := 0; y < r.img.Height; y++ {
			row(y)
		}
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	band := (r.img.Height + r.workers - 1) / r.workers

	for y0 := 0; y0 < r.img.Height; y0 += band {
		y0 := y0
		y1 := min(y0+band, r.img.Height)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for y := y0; y < y1; y++ {
				row(y)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
