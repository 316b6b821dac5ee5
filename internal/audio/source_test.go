package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestWAV writes interleaved PCM of the given bit depth to a temporary
// WAV file
func writeTestWAV(t *testing.T, name string, data []int, bitDepth, channels, sampleRate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())

	return path
}

func TestLoadWAVStereo(t *testing.T) {
	data := []int{16384, -16384, 32767, 0, -32768, 8192}
	path := writeTestWAV(t, "stereo.wav", data, 16, 2, 44100)

	src, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, src.Channels)
	assert.Equal(t, 44100, src.SampleRate)
	require.Equal(t, len(data), src.Len())
	assert.Equal(t, 3, src.Frames())

	// Interleaving is preserved, no downmix
	assert.InDelta(t, 0.5, src.Samples[0], 1e-4)
	assert.InDelta(t, -0.5, src.Samples[1], 1e-4)
	assert.InDelta(t, 1.0, src.Samples[2], 1e-4)
	assert.InDelta(t, 0.0, src.Samples[3], 1e-4)
}

func TestLoadWAV8BitIsCentred(t *testing.T) {
	// Unsigned 8-bit: 128 is silence, 0 and 255 the extremes
	path := writeTestWAV(t, "u8.wav", []int{128, 128, 255, 0}, 8, 1, 8000)

	src, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, src.Len())

	assert.Equal(t, float32(0), src.Samples[0])
	assert.Equal(t, float32(0), src.Samples[1])
	assert.InDelta(t, 127.0/128.0, src.Samples[2], 1e-6)
	assert.Equal(t, float32(-1), src.Samples[3])
}

func TestLoadSniffsUnknownExtension(t *testing.T) {
	path := writeTestWAV(t, "recording.bin", []int{100, 200, 300, 400}, 16, 1, 8000)

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, src.Len())
	assert.Equal(t, 8000, src.SampleRate)
}

func TestLoadRejectsUnknownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("definitely not audio"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.wav"))
	assert.Error(t, err)
}

func TestLoadEmptyWAV(t *testing.T) {
	path := writeTestWAV(t, "empty.wav", []int{}, 16, 1, 44100)

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrNoAudio), "got %v", err)
}

func TestSourceAtWraps(t *testing.T) {
	src := NewSource([]float32{0.1, 0.2, 0.3, 0.4}, 1, 48000)

	testCases := []struct {
		index int
		want  float32
	}{
		{0, 0.1},
		{3, 0.4},
		{4, 0.1},
		{9, 0.2},
		{-1, 0.4},
		{-6, 0.3},
		{math.MaxInt32, 0.4},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, src.At(tc.index), "At(%d)", tc.index)
	}
}

func TestSourceAtEmpty(t *testing.T) {
	src := NewSource(nil, 1, 48000)
	assert.Equal(t, float32(0), src.At(12))
}

func TestSourceDuration(t *testing.T) {
	src := NewSource(make([]float32, 96000), 2, 48000)
	assert.Equal(t, 48000, src.Frames())
	assert.InDelta(t, 1.0, src.Duration(), 1e-9)
}
