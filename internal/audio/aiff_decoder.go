package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

// AIFFDecoder implements Decoder for PCM AIFF files
type AIFFDecoder struct {
	decoder    *aiff.Decoder
	file       *os.File
	sampleRate int
	bitDepth   int
	numChans   int
	intBuf     *audio.IntBuffer
}

// NewAIFFDecoder creates a new AIFF decoder
func NewAIFFDecoder(filename string) (*AIFFDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := aiff.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid AIFF file")
	}
	decoder.ReadInfo()
	if err := decoder.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read AIFF header: %w", err)
	}

	format := decoder.Format()
	if format.NumChannels == 0 {
		f.Close()
		return nil, fmt.Errorf("AIFF file has no COMM chunk")
	}

	return &AIFFDecoder{
		decoder:    decoder,
		file:       f,
		sampleRate: format.SampleRate,
		bitDepth:   int(decoder.BitDepth),
		numChans:   format.NumChannels,
	}, nil
}

// ReadChunk reads the next chunk of interleaved samples
func (d *AIFFDecoder) ReadChunk(numFrames int) ([]float32, error) {
	bufSize := numFrames * d.numChans
	if d.intBuf == nil || cap(d.intBuf.Data) < bufSize {
		d.intBuf = &audio.IntBuffer{
			Data:   make([]int, bufSize),
			Format: d.decoder.Format(),
		}
	}
	d.intBuf.Data = d.intBuf.Data[:bufSize]

	n, err := d.decoder.PCMBuffer(d.intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	if n == 0 {
		return nil, io.EOF
	}

	maxVal := float32(audio.IntMaxSignedValue(d.bitDepth))
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		v := d.intBuf.Data[i]
		if d.bitDepth == 8 {
			// 8-bit AIFF is signed; the decoder returns the raw byte
			samples[i] = float32(int8(v)) / 128
			continue
		}
		samples[i] = float32(v) / maxVal
	}

	return samples, nil
}

// SampleRate returns the sample rate
func (d *AIFFDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *AIFFDecoder) NumChannels() int {
	return d.numChans
}

// Close closes the decoder and releases resources
func (d *AIFFDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
