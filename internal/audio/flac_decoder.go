package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements Decoder for FLAC files
type FLACDecoder struct {
	stream      *flac.Stream
	file        *os.File
	sampleRate  int
	numChannels int

	// Interleaved samples decoded from the last FLAC frame but not yet returned
	pending []float32
}

// NewFLACDecoder creates a new FLAC decoder
func NewFLACDecoder(filename string) (*FLACDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	// Parse FLAC stream - reads signature and StreamInfo block
	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}

	return &FLACDecoder{
		stream:      stream,
		file:        f,
		sampleRate:  int(stream.Info.SampleRate),
		numChannels: int(stream.Info.NChannels),
	}, nil
}

// ReadChunk reads the next chunk of interleaved samples
func (d *FLACDecoder) ReadChunk(numFrames int) ([]float32, error) {
	want := numFrames * d.numChannels
	samples := make([]float32, 0, want)

	for len(samples) < want {
		if len(d.pending) == 0 {
			frame, err := d.stream.ParseNext()
			if err != nil {
				if err == io.EOF {
					break
				}
				return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
			}

			// FLAC frames carry one subframe per channel; interleave them
			maxVal := float32(int64(1) << (frame.BitsPerSample - 1))
			frameSamples := len(frame.Subframes[0].Samples)
			for i := 0; i < frameSamples; i++ {
				for _, subframe := range frame.Subframes {
					d.pending = append(d.pending, float32(subframe.Samples[i])/maxVal)
				}
			}
		}

		n := copy(samples[len(samples):want], d.pending)
		samples = samples[:len(samples)+n]
		d.pending = d.pending[n:]
	}

	if len(samples) == 0 {
		return nil, io.EOF
	}
	return samples, nil
}

// SampleRate returns the sample rate
func (d *FLACDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *FLACDecoder) NumChannels() int {
	return d.numChannels
}

// Close closes the decoder and releases resources
func (d *FLACDecoder) Close() error {
	if d.stream != nil {
		d.stream.Close()
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
