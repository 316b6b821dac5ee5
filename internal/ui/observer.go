package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/wavepaint/internal/generator"
)

// previewEvery is the number of frames between preview refreshes
const previewEvery = 6

// Sender is the part of *tea.Program the observer needs
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramObserver forwards generator progress to a Bubbletea program
type ProgramObserver struct {
	program   Sender
	noPreview bool
	config    PreviewConfig
}

// NewProgramObserver creates an observer sending to program
func NewProgramObserver(program Sender, noPreview bool) *ProgramObserver {
	return &ProgramObserver{
		program:   program,
		noPreview: noPreview,
		config:    DefaultPreviewConfig(),
	}
}

// FrameDone sends the frame's stats. Every previewEvery frames the image
// is downsampled here, while the buffer is still valid.
func (o *ProgramObserver) FrameDone(stats generator.FrameStats) {
	msg := FrameProgress{Stats: stats}
	if !o.noPreview && stats.Image != nil && (stats.Completed-1)%previewEvery == 0 {
		msg.Preview = DownsampleFrame(stats.Image.RGBA(), o.config)
	}
	msg.Stats.Image = nil
	o.program.Send(msg)
}

// Warning forwards a non-fatal problem
func (o *ProgramObserver) Warning(err error) {
	o.program.Send(RenderWarning{Err: err})
}

// Done signals completion
func (o *ProgramObserver) Done(summary generator.Summary) {
	o.program.Send(RenderComplete{Summary: summary})
}

// Fail stops the program after an error
func (o *ProgramObserver) Fail(err error) {
	o.program.Send(RenderFailed{Err: err})
}
