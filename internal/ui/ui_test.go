package ui

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/wavepaint/internal/generator"
	"github.com/linuxmatters/wavepaint/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) {
	s.msgs = append(s.msgs, msg)
}

func TestDownsampleFrameAverages(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 2))
	// Left half red, right half blue
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 200, A: 0}
			if x >= 2 {
				c = color.RGBA{B: 100, A: 0}
			}
			frame.SetRGBA(x, y, c)
		}
	}

	preview := DownsampleFrame(frame, PreviewConfig{Width: 2, Height: 1})
	require.Len(t, preview, 1)
	require.Len(t, preview[0], 2)
	assert.Equal(t, color.RGBA{R: 200, A: 255}, preview[0][0])
	assert.Equal(t, color.RGBA{B: 100, A: 255}, preview[0][1])
}

func TestDownsampleFrameSmallerThanPreview(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 3, 2))
	preview := DownsampleFrame(frame, DefaultPreviewConfig())

	require.Len(t, preview, 2)
	assert.Len(t, preview[0], 3)
	assert.Equal(t, uint8(255), preview[1][2].A)
}

func TestRenderPreview(t *testing.T) {
	out := RenderPreview([][]color.RGBA{{{R: 1, G: 2, B: 3, A: 255}}})
	assert.Contains(t, out, "\x1b[48;2;1;2;3m")
	assert.Equal(t, "", RenderPreview(nil))
}

func TestProgramObserverPreviewCadence(t *testing.T) {
	sender := &recordingSender{}
	obs := NewProgramObserver(sender, false)
	img, err := renderer.NewImage(8, 8)
	require.NoError(t, err)

	for i := 1; i <= 7; i++ {
		obs.FrameDone(generator.FrameStats{Completed: i, Count: 7, Image: img})
	}

	require.Len(t, sender.msgs, 7)
	for i, msg := range sender.msgs {
		fp, ok := msg.(FrameProgress)
		require.True(t, ok)
		assert.Nil(t, fp.Stats.Image)
		if i == 0 || i == 6 {
			assert.NotNil(t, fp.Preview, "frame %d", i+1)
		} else {
			assert.Nil(t, fp.Preview, "frame %d", i+1)
		}
	}
}

func TestProgramObserverNoPreview(t *testing.T) {
	sender := &recordingSender{}
	obs := NewProgramObserver(sender, true)
	img, err := renderer.NewImage(8, 8)
	require.NoError(t, err)

	obs.FrameDone(generator.FrameStats{Completed: 1, Count: 1, Image: img})
	obs.Warning(errors.New("mask disabled"))
	obs.Done(generator.Summary{Frames: 1})

	require.Len(t, sender.msgs, 3)
	assert.Nil(t, sender.msgs[0].(FrameProgress).Preview)
	assert.IsType(t, RenderWarning{}, sender.msgs[1])
	assert.IsType(t, RenderComplete{}, sender.msgs[2])
}

func TestRenderModelProgress(t *testing.T) {
	m := NewRenderModel(true)

	m, _ = m.Update(RenderWarning{Err: errors.New("mask disabled: missing")})
	m, _ = m.Update(FrameProgress{Stats: generator.FrameStats{
		Frame:     4,
		MaxFrames: 10,
		Completed: 5,
		Count:     10,
		Strategy:  renderer.StrategyExperimental,
		Amplitude: 0.5,
		Delta:     20 * time.Millisecond,
	}})

	view := m.View()
	assert.Contains(t, view, "experimental")
	assert.Contains(t, view, "50%")
	assert.Contains(t, view, "Frame 4 of 10")
	assert.Contains(t, view, "mask disabled")
}

func TestRenderModelComplete(t *testing.T) {
	m := NewRenderModel(true)

	m, cmd := m.Update(RenderComplete{Summary: generator.Summary{
		OutputPath: "frames/out",
		Sequence:   true,
		Frames:     24,
		Bytes:      2048,
		DrawTime:   600 * time.Millisecond,
		WriteTime:  300 * time.Millisecond,
		Total:      time.Second,
	}})
	require.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "Render Complete")
	assert.Contains(t, view, "frames/out####.png")
	assert.Contains(t, view, "2.0 KB")

	_, cmd = m.Update(quitTimerMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderModelFailed(t *testing.T) {
	m := NewRenderModel(true)
	m, cmd := m.Update(RenderFailed{Err: errors.New("boom")})
	require.NotNil(t, cmd)
	assert.Empty(t, strings.TrimSpace(m.View()))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "0s", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))

	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 MB", formatBytes(1536*1024))

	assert.Equal(t, "██░░", makeSparkline(0.5, 4))
	assert.Equal(t, "████", makeSparkline(2, 4))
}
