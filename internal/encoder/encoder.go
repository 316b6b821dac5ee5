package encoder

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/wavepaint/internal/renderer"
)

var (
	// ErrNoOutput is returned when no output path is configured
	ErrNoOutput = errors.New("output path cannot be empty")

	// ErrInvalidCompression is returned for an unknown compression name
	ErrInvalidCompression = errors.New("invalid compression level")
)

// compressionLevels maps compression names to PNG encoder levels
var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

// ParseCompression returns the PNG level for a compression name. An empty
// name selects the default level.
func ParseCompression(name string) (png.CompressionLevel, error) {
	if name == "" {
		return png.DefaultCompression, nil
	}
	level, ok := compressionLevels[strings.ToLower(name)]
	if !ok {
		return png.DefaultCompression, fmt.Errorf("%w %q (want default, none, fast or best)", ErrInvalidCompression, name)
	}
	return level, nil
}

// Config holds the encoder configuration
type Config struct {
	OutputPath  string               // Output file, or file prefix for sequences
	Width       int                  // Image width in pixels
	Height      int                  // Image height in pixels
	Compression png.CompressionLevel // PNG compression level
}

// Encoder writes rendered frames as PNG files. It keeps one opaque scratch
// image and one compression buffer for the lifetime of a run.
type Encoder struct {
	config Config

	png     *png.Encoder
	scratch *image.RGBA

	frames int
	bytes  int64
}

// New creates a new encoder instance
func New(config Config) (*Encoder, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", config.Width, config.Height)
	}
	if config.OutputPath == "" {
		return nil, ErrNoOutput
	}

	return &Encoder{
		config: config,
		png: &png.Encoder{
			CompressionLevel: config.Compression,
			BufferPool:       &bufferPool{},
		},
		scratch: image.NewRGBA(image.Rect(0, 0, config.Width, config.Height)),
	}, nil
}

// FramePath returns the file name of sequence frame frameIndex: the output
// path followed by the zero padded index and a .png extension
func (e *Encoder) FramePath(frameIndex int) string {
	return FramePath(e.config.OutputPath, frameIndex)
}

// FramePath joins a sequence prefix and a frame index
func FramePath(prefix string, frameIndex int) string {
	return fmt.Sprintf("%s%04d.png", prefix, frameIndex)
}

// WriteFrame writes sequence frame frameIndex and returns the path written
func (e *Encoder) WriteFrame(img *renderer.Image, frameIndex int) (string, error) {
	path := e.FramePath(frameIndex)
	if err := e.writeFile(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// WriteImage writes img to the configured output path exactly
func (e *Encoder) WriteImage(img *renderer.Image) error {
	return e.writeFile(e.config.OutputPath, img)
}

// Frames returns the number of files written so far
func (e *Encoder) Frames() int {
	return e.frames
}

// BytesWritten returns the total size of the files written so far
func (e *Encoder) BytesWritten() int64 {
	return e.bytes
}

func (e *Encoder) writeFile(path string, img *renderer.Image) error {
	if img.Width != e.config.Width || img.Height != e.config.Height {
		return fmt.Errorf("frame size mismatch: got %dx%d, expected %dx%d",
			img.Width, img.Height, e.config.Width, e.config.Height)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	toOpaque(e.scratch.Pix, img.Pix)
	if err := e.png.Encode(w, e.scratch); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	info, err := f.Stat()
	if err == nil {
		e.bytes += info.Size()
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	e.frames++
	return nil
}

// bufferPool keeps a single compression buffer; an Encoder is not used
// concurrently
type bufferPool struct {
	buf *png.EncoderBuffer
}

func (p *bufferPool) Get() *png.EncoderBuffer {
	return p.buf
}

func (p *bufferPool) Put(buf *png.EncoderBuffer) {
	p.buf = buf
}
