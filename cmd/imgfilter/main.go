package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wbrown/imgfilter"
	"github.com/wbrown/imgfilter/imageutil"
)

type config struct {
	input     string
	output    string
	mode      string
	threshold int
	histogram string
	preview   int
	workers   int
	strict    bool
	debug     bool
	list      bool
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("imgfilter", flag.ContinueOnError)
	fs.StringVar(&cfg.input, "input", "",
		"Path to the input image file (required)")
	fs.StringVar(&cfg.output, "output", "",
		"Path to save the filtered image (default: <input>_<mode>.png)")
	fs.StringVar(&cfg.mode, "mode", imgfilter.ModeIdentity.String(),
		"Filter mode, see -list")
	fs.IntVar(&cfg.threshold, "threshold", imgfilter.DefaultThreshold,
		"Binarization threshold (0-255)")
	fs.StringVar(&cfg.histogram, "histogram", "",
		"Path to save the histogram chart (histogram mode only)")
	fs.IntVar(&cfg.preview, "preview", 0,
		"Also save a preview scaled to this square size, 0 to disable")
	fs.IntVar(&cfg.workers, "workers", 1,
		"Number of row bands processed in parallel, 0 for all CPUs")
	fs.BoolVar(&cfg.strict, "strict", false,
		"Reject out-of-range thresholds and uniform images in histogram mode")
	fs.BoolVar(&cfg.debug, "debug", false,
		"Enable debug logging")
	fs.BoolVar(&cfg.list, "list", false,
		"List available modes and exit")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// The threshold field never accepted negative numbers.
	if cfg.threshold < 0 && !cfg.strict {
		cfg.threshold = 0
	}
	if cfg.input == "" && !cfg.list {
		fs.PrintDefaults()
		return nil, fmt.Errorf("please provide the image using the -input flag")
	}
	return cfg, nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// outputPath derives "<dir>/<base>_<mode>.png" from the input path.
func outputPath(input string, mode imgfilter.Mode) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return fmt.Sprintf("%s_%s.png", base, mode)
}

// previewPath inserts "_preview" before the extension of path.
func previewPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_preview" + ext
}

func run(ctx context.Context, cfg *config, log zerolog.Logger) error {
	if cfg.list {
		for _, m := range imgfilter.Modes {
			fmt.Printf("%-14s %s\n", m, m.Label())
		}
		return nil
	}

	mode, err := imgfilter.ParseMode(cfg.mode)
	if err != nil {
		return err
	}

	src, err := imageutil.LoadImage(cfg.input)
	if err != nil {
		return err
	}
	log.Info().
		Str("path", cfg.input).
		Int("width", src.Width()).
		Int("height", src.Height()).
		Msg("image loaded")

	policy := imgfilter.DegenerateUniform
	if cfg.strict {
		policy = imgfilter.DegenerateReject
	}
	engine := imgfilter.New(
		imgfilter.WithWorkers(cfg.workers),
		imgfilter.WithStrictThreshold(cfg.strict),
		imgfilter.WithDegeneratePolicy(policy),
		imgfilter.WithLogger(log),
	)

	res, err := engine.ApplyMode(ctx, src, mode, cfg.threshold)
	if err != nil {
		return err
	}

	output := cfg.output
	if output == "" {
		output = outputPath(cfg.input, mode)
	}
	if err := imageutil.SaveImage(res.Image, output); err != nil {
		return err
	}
	log.Info().Str("mode", mode.Label()).Str("path", output).Msg("output written")

	if cfg.preview > 0 {
		interp := imageutil.InterpolationSmooth
		if mode == imgfilter.ModeBinarize {
			interp = imageutil.InterpolationNearest
		}
		preview := imageutil.FitSquare(res.Image, cfg.preview, interp)
		path := previewPath(output)
		if err := imageutil.SaveImage(preview, path); err != nil {
			return err
		}
		log.Info().Str("path", path).Int("size", cfg.preview).Msg("preview written")
	}

	if res.Histogram != nil {
		lo, hi, _ := res.Histogram.Range()
		log.Info().
			Uint8("min", lo).
			Uint8("max", hi).
			Int("pixels", res.Histogram.Total()).
			Msg("histogram")
		if cfg.histogram != "" {
			chart, err := imageutil.RenderHistogram(res.Histogram, imageutil.DefaultChartOptions())
			if err != nil {
				return err
			}
			if err := imageutil.SaveImage(chart, cfg.histogram); err != nil {
				return err
			}
			log.Info().Str("path", cfg.histogram).Msg("histogram chart written")
		}
	} else if cfg.histogram != "" {
		log.Warn().Str("mode", mode.String()).Msg("-histogram ignored outside histogram mode")
	}
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg.debug)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("imgfilter failed")
		stop()
		os.Exit(1)
	}
}
