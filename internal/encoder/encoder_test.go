package encoder

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxmatters/wavepaint/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, w, h int) *renderer.Image {
	t.Helper()
	img, err := renderer.NewImage(w, h)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	return img
}

func TestFramePath(t *testing.T) {
	assert.Equal(t, "frames/out0000.png", FramePath("frames/out", 0))
	assert.Equal(t, "out.png0042.png", FramePath("out.png", 42))
	assert.Equal(t, "x12345.png", FramePath("x", 12345))
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{OutputPath: "a.png", Width: 0, Height: 4})
	assert.Error(t, err)

	_, err = New(Config{Width: 4, Height: 4})
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestWriteImageIsOpaque(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	enc, err := New(Config{OutputPath: path, Width: 3, Height: 2})
	require.NoError(t, err)

	src := testImage(t, 3, 2)
	require.NoError(t, enc.WriteImage(src))
	assert.Equal(t, 1, enc.Frames())
	assert.Positive(t, enc.BytesWritten())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 3, decoded.Bounds().Dx())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r, g, b, a := decoded.At(x, y).RGBA()
			px := src.Pixel(x, y)
			assert.Equal(t, uint32(px[0]), r>>8)
			assert.Equal(t, uint32(px[1]), g>>8)
			assert.Equal(t, uint32(px[2]), b>>8)
			assert.Equal(t, uint32(0xffff), a)
		}
	}

	// The rendered buffer keeps its own alpha
	assert.Equal(t, byte(3), src.Pix[3])
}

func TestWriteFrameSequence(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "seq", "frame")
	enc, err := New(Config{OutputPath: prefix, Width: 4, Height: 4})
	require.NoError(t, err)

	img := testImage(t, 4, 4)
	for i := 0; i < 3; i++ {
		path, err := enc.WriteFrame(img, i)
		require.NoError(t, err)
		assert.Equal(t, FramePath(prefix, i), path)
		assert.FileExists(t, path)
	}
	assert.Equal(t, 3, enc.Frames())
}

func TestWriteFrameSizeMismatch(t *testing.T) {
	enc, err := New(Config{OutputPath: filepath.Join(t.TempDir(), "a.png"), Width: 4, Height: 4})
	require.NoError(t, err)

	assert.Error(t, enc.WriteImage(testImage(t, 2, 2)))
	assert.Zero(t, enc.Frames())
}

func TestToOpaque(t *testing.T) {
	dst := make([]byte, 8)
	toOpaque(dst, []byte{1, 2, 3, 0, 4, 5, 6, 7})
	assert.Equal(t, []byte{1, 2, 3, 255, 4, 5, 6, 255}, dst)
}

func TestParseCompression(t *testing.T) {
	testCases := []struct {
		name string
		want png.CompressionLevel
	}{
		{"", png.DefaultCompression},
		{"default", png.DefaultCompression},
		{"none", png.NoCompression},
		{"fast", png.BestSpeed},
		{"BEST", png.BestCompression},
	}

	for _, tc := range testCases {
		level, err := ParseCompression(tc.name)
		require.NoError(t, err, "name %q", tc.name)
		assert.Equal(t, tc.want, level, "name %q", tc.name)
	}

	_, err := ParseCompression("maximum")
	assert.ErrorIs(t, err, ErrInvalidCompression)
}

func TestCompressionLevelApplies(t *testing.T) {
	dir := t.TempDir()

	// A flat image compresses well, so stored and deflated sizes differ
	img, err := renderer.NewImage(64, 64)
	require.NoError(t, err)

	sizes := map[png.CompressionLevel]int64{}
	for _, level := range []png.CompressionLevel{png.NoCompression, png.BestCompression} {
		enc, err := New(Config{
			OutputPath:  filepath.Join(dir, fmt.Sprintf("level%d.png", -int(level))),
			Width:       64,
			Height:      64,
			Compression: level,
		})
		require.NoError(t, err)
		require.NoError(t, enc.WriteImage(img))
		sizes[level] = enc.BytesWritten()
	}

	assert.Less(t, sizes[png.BestCompression], sizes[png.NoCompression])
}
