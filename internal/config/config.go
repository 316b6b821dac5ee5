package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Image settings
const (
	DefaultWidth  = 256
	DefaultHeight = 256
)

// Output settings
const (
	DefaultOutputPath   = "out.png"
	DefaultSeqFrameRate = 24        // Sequence frames per second of audio
	DefaultCompression  = "default" // PNG compression level name
)

// EnvPrefix names the environment variables the CLI reads, joined to the
// flag name with an underscore: WAVEPAINT_OUTPUT_PATH
const EnvPrefix = "WAVEPAINT"

// EnvFile is loaded from the working directory before flags are parsed
const EnvFile = ".env"

var (
	ErrNoAudioPath   = errors.New("no audio file given")
	ErrInvalidOption = errors.New("invalid option")
)

// Generation is the complete set of options for one run. It is built once
// from the command line and not modified afterwards.
type Generation struct {
	AudioPath  string
	OutputPath string
	MaskPath   string // Optional

	Compression string // PNG compression level name; empty is the default

	Width  int
	Height int

	StartIndex   int  // First sample read in single-image mode
	Sequence     bool // Write a numbered frame sequence
	SeqFrameRate int
	Strategy     int
	NumFrames    int // Sequence frame cap; 0 derives it from the audio length

	Verbose  bool
	Progress bool
	Stamp    bool
	Workers  int // Row workers; 0 uses GOMAXPROCS
}

// Validate checks the options that do not depend on the loaded audio.
// The strategy is validated by the generator, and only in sequence mode.
func (g Generation) Validate() error {
	if g.AudioPath == "" {
		return ErrNoAudioPath
	}
	if g.OutputPath == "" {
		return fmt.Errorf("%w: output path cannot be empty", ErrInvalidOption)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive (got %dx%d)", ErrInvalidOption, g.Width, g.Height)
	}
	if g.Sequence && g.SeqFrameRate <= 0 {
		return fmt.Errorf("%w: sequence frame rate must be positive (got %d)", ErrInvalidOption, g.SeqFrameRate)
	}
	if g.NumFrames < 0 {
		return fmt.Errorf("%w: frame count cannot be negative (got %d)", ErrInvalidOption, g.NumFrames)
	}
	if g.Workers < 0 {
		return fmt.Errorf("%w: worker count cannot be negative (got %d)", ErrInvalidOption, g.Workers)
	}
	return nil
}

// Vars returns the defaults as strings for interpolation into flag tags
func Vars() map[string]string {
	return map[string]string{
		"width":          strconv.Itoa(DefaultWidth),
		"height":         strconv.Itoa(DefaultHeight),
		"output_path":    DefaultOutputPath,
		"seq_frame_rate": strconv.Itoa(DefaultSeqFrameRate),
		"compression":    DefaultCompression,
	}
}

// LoadEnv loads variables from path into the process environment. A missing
// file is not an error; variables already set are not overridden.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
