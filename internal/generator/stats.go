package generator

import (
	"time"

	"github.com/linuxmatters/wavepaint/internal/renderer"
)

// FrameStats describes one completed sequence frame. Timing values are
// observational and never affect the rendered output.
type FrameStats struct {
	Frame     int // Index of the frame just written
	MaxFrames int // One past the last frame index of the run
	Completed int // Frames written so far in this run
	Count     int // Frames in this run
	Delta     time.Duration
	Total     time.Duration
	FPS       float64 // 1/Delta; 0 when Delta is zero
	Strategy  renderer.Strategy
	Remaining time.Duration // Delta times (MaxFrames - Frame)
	Path      string
	Amplitude float64 // Loudness multiplier of the frame's window

	// Image is the frame buffer. It is only valid until FrameDone returns.
	Image *renderer.Image
}

// Summary describes a finished run
type Summary struct {
	OutputPath string
	Sequence   bool
	Strategy   renderer.Strategy
	Frames     int   // Files written
	Bytes      int64 // Total size of the files written
	DrawTime   time.Duration
	WriteTime  time.Duration
	Total      time.Duration
}

// Observer receives progress from a run. Calls are made from the
// goroutine running the generator.
type Observer interface {
	FrameDone(stats FrameStats)
	Warning(err error)
	Done(summary Summary)
}

// Nop is an Observer that ignores everything
type Nop struct{}

func (Nop) FrameDone(FrameStats) {}
func (Nop) Warning(error)        {}
func (Nop) Done(Summary)         {}

// newFrameStats derives the rate and time estimate for a finished frame.
// The estimate counts the frame just written, so it never reaches zero.
func newFrameStats(frame, maxFrames int, delta, total time.Duration) FrameStats {
	framesLeft := max(0, maxFrames-frame)

	var fps float64
	if delta > 0 {
		fps = 1 / delta.Seconds()
	}

	return FrameStats{
		Frame:     frame,
		MaxFrames: maxFrames,
		Delta:     delta,
		Total:     total,
		FPS:       fps,
		Remaining: delta * time.Duration(framesLeft),
	}
}
