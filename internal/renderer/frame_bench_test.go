package renderer

import (
	"context"
	"fmt"
	"testing"
)

const (
	benchWidth  = 256
	benchHeight = 256
)

// BenchmarkRenderFrame benchmarks each strategy across worker counts
func BenchmarkRenderFrame(b *testing.B) {
	src := noiseSource(7, 44100*2*4, 2, 44100)

	maskImg, err := NewImage(64, 64)
	if err != nil {
		b.Fatal(err)
	}
	fill(maskImg, 128)

	for _, strategy := range []Strategy{StrategyDefault, StrategyExperimental, StrategyLoudness} {
		for _, workers := range []int{1, 4} {
			b.Run(fmt.Sprintf("%s/workers=%d", strategy, workers), func(b *testing.B) {
				img, err := NewImage(benchWidth, benchHeight)
				if err != nil {
					b.Fatal(err)
				}
				mask, err := NewMask(maskImg, benchWidth, benchHeight)
				if err != nil {
					b.Fatal(err)
				}
				r, err := NewRenderer(src, img, mask, Config{
					Strategy:     strategy,
					SeqFrameRate: 24,
					Workers:      workers,
				})
				if err != nil {
					b.Fatal(err)
				}

				ctx := context.Background()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if err := r.RenderFrame(ctx, i%96); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkRenderSingle benchmarks the single-image mode
func BenchmarkRenderSingle(b *testing.B) {
	src := noiseSource(8, 44100*2*4, 2, 44100)
	img, err := NewImage(benchWidth, benchHeight)
	if err != nil {
		b.Fatal(err)
	}
	r, err := NewRenderer(src, img, nil, Config{SeqFrameRate: 24})
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.RenderSingle(ctx, 0); err != nil {
			b.Fatal(err)
		}
	}
}
