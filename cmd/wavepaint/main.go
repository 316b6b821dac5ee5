package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/wavepaint/internal/audio"
	"github.com/linuxmatters/wavepaint/internal/cli"
	"github.com/linuxmatters/wavepaint/internal/config"
	"github.com/linuxmatters/wavepaint/internal/generator"
	"github.com/linuxmatters/wavepaint/internal/renderer"
	"github.com/linuxmatters/wavepaint/internal/ui"
	"golang.org/x/term"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

// Flags is the wavepaint command line. Every flag except --version can also
// be set from a WAVEPAINT_* environment variable named after it.
type Flags struct {
	Audio        string `arg:"" name:"audio" help:"Input audio file (WAV, AIFF, MP3, FLAC or Ogg Vorbis)" optional:""`
	Width        int    `short:"W" help:"Image width" default:"${width}"`
	Height       int    `short:"H" help:"Image height" default:"${height}"`
	StartIndex   int    `short:"i" name:"start-index" help:"Sample index to start at (single image) or first frame (sequence)" default:"0"`
	OutputPath   string `short:"o" name:"output-path" help:"Output file, or file prefix for sequences" default:"${output_path}"`
	Sequence     bool   `short:"S" help:"Generate an image sequence"`
	SeqFrameRate int    `short:"r" name:"seq-frame-rate" help:"Frame rate of the sequence" default:"${seq_frame_rate}"`
	Strategy     string `short:"s" help:"Sequence strategy: 0/default, 1/experimental, 2/loudness" default:"0"`
	NumFrames    int    `short:"n" name:"num-frames" help:"Maximum number of frames to generate (0 derives it from the audio)" default:"0"`
	Verbose      bool   `short:"v" help:"Print a line per frame"`
	Mask         string `short:"m" help:"Image composited over the output"`
	Compression  string `short:"c" help:"PNG compression: default, none, fast or best" default:"${compression}" enum:"default,none,fast,best"`
	Progress     bool   `help:"Show a live progress display while rendering a sequence"`
	NoPreview    bool   `help:"Disable the frame preview in the progress display"`
	Stamp        bool   `help:"Draw the frame number on sequence frames"`
	Workers      int    `short:"j" help:"Row workers per frame (0 uses all CPUs)" default:"0"`
	Version      bool   `help:"Show version information" env:"-"`
}

// newParser builds the kong parser for flags. Extra options are applied
// after the defaults.
func newParser(flags *Flags, options ...kong.Option) (*kong.Kong, error) {
	vars := kong.Vars(config.Vars())
	vars["version"] = version

	return kong.New(flags, append([]kong.Option{
		kong.Name("wavepaint"),
		kong.Description(cli.Description),
		vars,
		kong.DefaultEnvars(config.EnvPrefix),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	}, options...)...)
}

// generation converts parsed flags into run options
func generation(flags Flags) config.Generation {
	return config.Generation{
		AudioPath:    flags.Audio,
		OutputPath:   flags.OutputPath,
		MaskPath:     flags.Mask,
		Compression:  flags.Compression,
		Width:        flags.Width,
		Height:       flags.Height,
		StartIndex:   flags.StartIndex,
		Sequence:     flags.Sequence,
		SeqFrameRate: flags.SeqFrameRate,
		NumFrames:    flags.NumFrames,
		Verbose:      flags.Verbose,
		Progress:     flags.Progress,
		Stamp:        flags.Stamp,
		Workers:      flags.Workers,
	}
}

func main() {
	// Environment defaults from .env apply before flags are resolved
	if err := config.LoadEnv(config.EnvFile); err != nil {
		cli.PrintWarning(err.Error())
	}

	var flags Flags
	parser, err := newParser(&flags)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if flags.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	cfg := generation(flags)

	// The strategy only matters for sequences
	if cfg.Sequence {
		strategy, err := renderer.ParseStrategy(flags.Strategy)
		if err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
		cfg.Strategy = int(strategy)
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNoAudioPath) {
			cli.PrintError("no audio file was given")
		} else {
			cli.PrintError(err.Error())
		}
		os.Exit(1)
	}

	src, err := audio.Load(cfg.AudioPath)
	if err != nil {
		cli.PrintError(fmt.Sprintf("'%s' is not an audio file: %v", cfg.AudioPath, err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Sequence && cfg.Progress && term.IsTerminal(int(os.Stdout.Fd())) {
		err = runWithProgress(ctx, cfg, src, flags.NoPreview)
	} else {
		err = runPlain(ctx, cfg, src)
	}
	if err != nil {
		cli.PrintError(err.Error())
		cancel()
		os.Exit(1)
	}
}

// consoleObserver prints verbose frame lines and warnings to the terminal
type consoleObserver struct {
	verbose bool
}

func (o consoleObserver) FrameDone(stats generator.FrameStats) {
	if o.verbose {
		cli.PrintFrame(os.Stdout, stats)
	}
}

func (o consoleObserver) Warning(err error) {
	cli.PrintWarning(err.Error())
}

func (o consoleObserver) Done(summary generator.Summary) {
	if o.verbose {
		fmt.Println(cli.FormatCompleted(summary.Total))
	}
}

func runPlain(ctx context.Context, cfg config.Generation, src *audio.Source) error {
	g, err := generator.New(cfg, src, consoleObserver{verbose: cfg.Verbose})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		cli.PrintBanner()
		cli.PrintInfo("Audio", fmt.Sprintf("%s (%d Hz, %d ch, %.1fs)", cfg.AudioPath, src.SampleRate, src.Channels, src.Duration()))
		if cfg.Sequence {
			cli.PrintInfo("Frames", fmt.Sprintf("%d at %d fps", generator.NumFrames(src, cfg.SeqFrameRate, cfg.NumFrames), cfg.SeqFrameRate))
			cli.PrintInfo("Strategy", renderer.Strategy(cfg.Strategy).String())
		}
		if g.HasMask() {
			cli.PrintInfo("Mask", cfg.MaskPath)
		}
	}

	summary, err := g.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		cli.PrintSummary(summary)
	} else if !cfg.Sequence {
		cli.PrintSuccess(fmt.Sprintf("Done! Output: %s", summary.OutputPath))
	} else {
		cli.PrintSuccess(fmt.Sprintf("Done! %d frames written to %s####.png", summary.Frames, summary.OutputPath))
	}
	return nil
}

func runWithProgress(ctx context.Context, cfg config.Generation, src *audio.Source, noPreview bool) error {
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	p := tea.NewProgram(ui.NewRenderModel(noPreview), tea.WithContext(ctx))
	observer := ui.NewProgramObserver(p, noPreview)

	// Run rendering in goroutine; the program must be running to receive
	errCh := make(chan error, 1)
	go func() {
		g, err := generator.New(cfg, src, observer)
		if err == nil {
			_, err = g.Run(runCtx)
		}
		if err != nil {
			observer.Fail(err)
		}
		errCh <- err
	}()

	_, uiErr := p.Run()

	// Quitting the UI early stops the render
	cancelRun()
	runErr := <-errCh

	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return fmt.Errorf("running UI: %w", uiErr)
	}
	return runErr
}
