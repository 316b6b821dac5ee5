package audio

import "errors"

// Decoder defines the interface for all audio format decoders
type Decoder interface {
	// ReadChunk reads up to numFrames frames as interleaved float32 samples
	// in [-1, 1]. Returns io.EOF when the stream is exhausted.
	ReadChunk(numFrames int) ([]float32, error)

	// SampleRate returns the audio sample rate in Hz
	SampleRate() int

	// NumChannels returns the number of audio channels (1=mono, 2=stereo)
	NumChannels() int

	// Close closes the decoder and releases resources
	Close() error
}

var (
	// ErrUnsupportedFormat is returned when no decoder recognises the file
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoAudio is returned when a file decodes to zero samples
	ErrNoAudio = errors.New("no audio data in file")
)
