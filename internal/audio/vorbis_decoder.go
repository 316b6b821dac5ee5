package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder implements Decoder for Ogg Vorbis files
type VorbisDecoder struct {
	reader      *oggvorbis.Reader
	file        *os.File
	sampleRate  int
	numChannels int
}

// NewVorbisDecoder creates a new Ogg Vorbis decoder
func NewVorbisDecoder(filename string) (*VorbisDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create Vorbis decoder: %w", err)
	}

	return &VorbisDecoder{
		reader:      reader,
		file:        f,
		sampleRate:  reader.SampleRate(),
		numChannels: reader.Channels(),
	}, nil
}

// ReadChunk reads the next chunk of interleaved samples.
// oggvorbis already produces interleaved float32 in [-1, 1].
func (d *VorbisDecoder) ReadChunk(numFrames int) ([]float32, error) {
	samples := make([]float32, numFrames*d.numChannels)

	total := 0
	for total < len(samples) {
		n, err := d.reader.Read(samples[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read Vorbis data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	// Keep the chunk channel aligned
	total -= total % d.numChannels
	if total == 0 {
		return nil, io.EOF
	}
	return samples[:total], nil
}

// SampleRate returns the sample rate
func (d *VorbisDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *VorbisDecoder) NumChannels() int {
	return d.numChannels
}

// Close closes the decoder and releases resources
func (d *VorbisDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
