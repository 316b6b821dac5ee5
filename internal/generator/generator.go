package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linuxmatters/wavepaint/internal/audio"
	"github.com/linuxmatters/wavepaint/internal/config"
	"github.com/linuxmatters/wavepaint/internal/encoder"
	"github.com/linuxmatters/wavepaint/internal/renderer"
	"golang.org/x/image/font"
)

// ErrNoChannels is returned for a source that reports no channels
var ErrNoChannels = errors.New("audio has no channels")

// Generator runs one generation: a single image or a numbered sequence
type Generator struct {
	cfg      config.Generation
	src      *audio.Source
	mask     *renderer.Mask
	observer Observer
}

// New prepares a run over an already loaded source. A mask that cannot be
// loaded is reported to the observer and compositing is disabled.
func New(cfg config.Generation, src *audio.Source, observer Observer) (*Generator, error) {
	if src == nil || src.Len() == 0 {
		return nil, audio.ErrNoAudio
	}
	if src.Channels <= 0 {
		return nil, ErrNoChannels
	}
	if observer == nil {
		observer = Nop{}
	}

	g := &Generator{
		cfg:      cfg,
		src:      src,
		observer: observer,
	}

	if cfg.MaskPath != "" {
		mask, err := renderer.LoadMask(cfg.MaskPath, cfg.Width, cfg.Height)
		if err != nil {
			observer.Warning(fmt.Errorf("mask disabled: %w", err))
		} else {
			g.mask = mask
		}
	}

	return g, nil
}

// HasMask reports whether mask compositing is enabled for the run
func (g *Generator) HasMask() bool {
	return g.mask != nil
}

// NumFrames returns the number of sequence frames for src at seqFrameRate.
// A positive limit clamps the result to [0, derived].
func NumFrames(src *audio.Source, seqFrameRate, limit int) int {
	if src.SampleRate <= 0 || src.Channels <= 0 || seqFrameRate <= 0 {
		return 0
	}
	seconds := float64(src.Len()/src.Channels) / float64(src.SampleRate)
	n := int(seconds * float64(seqFrameRate))
	if limit > 0 {
		n = max(0, min(limit, n))
	}
	return n
}

// Run generates the configured output and returns a summary of the run
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	if g.cfg.Sequence {
		return g.runSequence(ctx)
	}
	return g.runSingle(ctx)
}

func (g *Generator) newRenderer(strategy renderer.Strategy) (*renderer.Renderer, *encoder.Encoder, error) {
	img, err := renderer.NewImage(g.cfg.Width, g.cfg.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to allocate image: %w", err)
	}

	r, err := renderer.NewRenderer(g.src, img, g.mask, renderer.Config{
		Strategy:     strategy,
		SeqFrameRate: g.cfg.SeqFrameRate,
		Workers:      g.cfg.Workers,
	})
	if err != nil {
		return nil, nil, err
	}

	level, err := encoder.ParseCompression(g.cfg.Compression)
	if err != nil {
		return nil, nil, err
	}

	enc, err := encoder.New(encoder.Config{
		OutputPath:  g.cfg.OutputPath,
		Width:       g.cfg.Width,
		Height:      g.cfg.Height,
		Compression: level,
	})
	if err != nil {
		return nil, nil, err
	}

	return r, enc, nil
}

func (g *Generator) runSingle(ctx context.Context) (Summary, error) {
	r, enc, err := g.newRenderer(renderer.StrategyDefault)
	if err != nil {
		return Summary{}, err
	}

	start := time.Now()
	if err := r.RenderSingle(ctx, g.cfg.StartIndex); err != nil {
		return Summary{}, err
	}
	drawTime := time.Since(start)

	t0 := time.Now()
	if err := enc.WriteImage(r.Image()); err != nil {
		return Summary{}, err
	}
	writeTime := time.Since(t0)

	summary := Summary{
		OutputPath: g.cfg.OutputPath,
		Frames:     enc.Frames(),
		Bytes:      enc.BytesWritten(),
		DrawTime:   drawTime,
		WriteTime:  writeTime,
		Total:      time.Since(start),
	}
	g.observer.Done(summary)
	return summary, nil
}

func (g *Generator) runSequence(ctx context.Context) (Summary, error) {
	strategy := renderer.Strategy(g.cfg.Strategy)
	if err := strategy.Validate(); err != nil {
		return Summary{}, err
	}

	r, enc, err := g.newRenderer(strategy)
	if err != nil {
		return Summary{}, err
	}

	var face font.Face
	if g.cfg.Stamp {
		face, err = renderer.LoadFont(renderer.StampSize(g.cfg.Height))
		if err != nil {
			return Summary{}, err
		}
		defer face.Close()
	}

	numFrames := NumFrames(g.src, g.cfg.SeqFrameRate, g.cfg.NumFrames)
	maxFrames := g.cfg.StartIndex + numFrames

	summary := Summary{
		OutputPath: g.cfg.OutputPath,
		Sequence:   true,
		Strategy:   strategy,
	}
	runStart := time.Now()

	for frame := g.cfg.StartIndex; frame < maxFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		frameStart := time.Now()
		if err := r.RenderFrame(ctx, frame); err != nil {
			return summary, fmt.Errorf("frame %d: %w", frame, err)
		}
		if face != nil {
			renderer.DrawStamp(r.Image(), face, renderer.FrameLabel(frame))
		}
		drawTime := time.Since(frameStart)

		t0 := time.Now()
		path, err := enc.WriteFrame(r.Image(), frame)
		if err != nil {
			return summary, fmt.Errorf("frame %d: %w", frame, err)
		}
		writeTime := time.Since(t0)

		delta := time.Since(frameStart)
		summary.DrawTime += drawTime
		summary.WriteTime += writeTime
		summary.Frames = enc.Frames()
		summary.Bytes = enc.BytesWritten()
		summary.Total = time.Since(runStart)

		stats := newFrameStats(frame, maxFrames, delta, summary.Total)
		stats.Completed = summary.Frames
		stats.Count = numFrames
		stats.Strategy = strategy
		stats.Path = path
		stats.Amplitude = r.FrameAmplitude()
		stats.Image = r.Image()
		g.observer.FrameDone(stats)
	}

	summary.Total = time.Since(runStart)
	g.observer.Done(summary)
	return summary, nil
}
