package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// chunkFrames is the number of frames requested from a decoder per read
const chunkFrames = 4096

// Source is a fully decoded recording held in memory as interleaved float32
// samples. All reads wrap modulo the sample count, so any integer offset is
// a valid read.
type Source struct {
	Samples    []float32
	Channels   int
	SampleRate int
}

// NewSource wraps an interleaved sample buffer
func NewSource(samples []float32, channels, sampleRate int) *Source {
	return &Source{
		Samples:    samples,
		Channels:   channels,
		SampleRate: sampleRate,
	}
}

// Len returns the total number of samples across all channels
func (s *Source) Len() int {
	return len(s.Samples)
}

// Frames returns the number of samples per channel
func (s *Source) Frames() int {
	if s.Channels <= 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// Duration returns the length of the recording in seconds
func (s *Source) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(s.Frames()) / float64(s.SampleRate)
}

// WrapIndex maps any sample offset into [0, Len()).
func (s *Source) WrapIndex(i int) int {
	n := len(s.Samples)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// At returns the sample at offset i, wrapping modulo the sample count.
// An empty source reads as silence.
func (s *Source) At(i int) float32 {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[s.WrapIndex(i)]
}

// Load decodes an entire audio file into memory
func Load(filename string) (*Source, error) {
	dec, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return ReadAll(dec)
}

// ReadAll drains a decoder into a Source
func ReadAll(dec Decoder) (*Source, error) {
	channels := dec.NumChannels()
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}

	var samples []float32
	for {
		chunk, err := dec.ReadChunk(chunkFrames)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading audio: %w", err)
		}
		samples = append(samples, chunk...)
	}

	// Trim a partial trailing frame so the count stays a multiple of channels
	samples = samples[:len(samples)-len(samples)%channels]
	if len(samples) == 0 {
		return nil, ErrNoAudio
	}

	return NewSource(samples, channels, dec.SampleRate()), nil
}

// Open picks a decoder from the file extension, falling back to the file
// header when the extension is unknown.
func Open(filename string) (Decoder, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch format {
	case "wav", "wave", "mp3", "flac", "ogg", "oga", "aif", "aiff", "aifc":
	default:
		sniffed, err := sniffFormat(filename)
		if err != nil {
			return nil, err
		}
		format = sniffed
	}

	switch format {
	case "wav", "wave":
		return NewWAVDecoder(filename)
	case "mp3":
		return NewMP3Decoder(filename)
	case "flac":
		return NewFLACDecoder(filename)
	case "ogg", "oga":
		return NewVorbisDecoder(filename)
	case "aif", "aiff", "aifc":
		return NewAIFFDecoder(filename)
	}
	return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
}

// sniffFormat identifies a container from its magic bytes
func sniffFormat(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	header = header[:n]

	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return "wav", nil
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return "aiff", nil
	case bytes.HasPrefix(header, []byte("fLaC")):
		return "flac", nil
	case bytes.HasPrefix(header, []byte("OggS")):
		return "ogg", nil
	case bytes.HasPrefix(header, []byte("ID3")),
		len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return "mp3", nil
	}
	return "", fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
}
