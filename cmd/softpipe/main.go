// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command softpipe renders a triangle scene on the CPU and writes it to an
// image file.
//
// Usage:
//
//	softpipe [flags]
//
// Without -scene it renders the built-in scene: one gradient-shaded
// triangle on a white background.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/softpipe"
	"github.com/gogpu/softpipe/internal/imageio"
	"github.com/gogpu/softpipe/internal/preview"
	"github.com/gogpu/softpipe/scene"
)

type config struct {
	scenePath string
	width     int
	height    int
	output    string
	frames    int
	workers   int
	ssaa      int
	preview   bool
	dump      bool
	verbose   bool

	// set records which flags appeared on the command line.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("softpipe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{set: map[string]bool{}}
	fs.StringVar(&cfg.scenePath, "scene", "", "scene file (YAML); empty renders the built-in triangle")
	fs.IntVar(&cfg.width, "width", scene.DefaultWidth, "image width, overrides the scene")
	fs.IntVar(&cfg.height, "height", scene.DefaultHeight, "image height, overrides the scene")
	fs.StringVar(&cfg.output, "output", "out.png", "output file (.png, .jpg, .bmp, .tif)")
	fs.IntVar(&cfg.frames, "frames", 1, "number of frames to render")
	fs.IntVar(&cfg.workers, "workers", 1, "rasterization workers (0 = GOMAXPROCS)")
	fs.IntVar(&cfg.ssaa, "ssaa", 1, "supersampling factor")
	fs.BoolVar(&cfg.preview, "preview", false, "print the last frame to the terminal")
	fs.BoolVar(&cfg.dump, "dump", false, "print the effective scene as YAML and exit")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	switch {
	case cfg.frames < 1:
		return nil, fmt.Errorf("-frames must be >= 1, got %d", cfg.frames)
	case cfg.ssaa < 1:
		return nil, fmt.Errorf("-ssaa must be >= 1, got %d", cfg.ssaa)
	case cfg.workers < 0:
		return nil, fmt.Errorf("-workers must be >= 0, got %d", cfg.workers)
	}
	if cfg.workers == 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	return cfg, nil
}

// loadScene returns the scene to render with command-line overrides applied.
func loadScene(cfg *config) (*scene.Scene, error) {
	s := scene.Default()
	if cfg.scenePath != "" {
		var err error
		if s, err = scene.Load(cfg.scenePath); err != nil {
			return nil, err
		}
	}
	if cfg.set["width"] {
		s.Width = cfg.width
	}
	if cfg.set["height"] {
		s.Height = cfg.height
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	softpipe.SetLogger(logger)
	defer softpipe.SetLogger(nil)

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}

	if cfg.dump {
		data, err := s.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if _, err := imageio.FormatFromPath(cfg.output); err != nil {
		return err
	}

	r, err := scene.NewRenderer(s, s.Width*cfg.ssaa, s.Height*cfg.ssaa,
		softpipe.WithWorkers(cfg.workers),
		softpipe.WithDiagnostics(softpipe.SlogDiagnostics(logger)),
	)
	if err != nil {
		return err
	}
	defer r.Close()

	var bar *progressbar.ProgressBar
	if cfg.frames > 1 {
		bar = progressbar.NewOptions(cfg.frames,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Close() }()
	}

	start := time.Now()
	fb := softpipe.NewFramebuffer(r.Width(), r.Height())
	var total softpipe.DrawStats
	var last image.Image

	for frame := range cfg.frames {
		stats, err := r.RenderInto(fb, frame)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		total.Primitives += stats.Primitives
		total.Rejected += stats.Rejected
		total.Fragments += stats.Fragments

		img, err := imageio.Downsample(fb.ToImage(), cfg.ssaa)
		if err != nil {
			return err
		}
		path := imageio.FramePath(cfg.output, frame, cfg.frames)
		if err := imageio.Save(path, img); err != nil {
			return err
		}
		logger.Debug("frame written", "frame", frame, "path", path, "fragments", stats.Fragments)
		last = img

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(stderr, "rendered %d frame(s) at %dx%d in %v: %d primitives, %d rejected, %d fragments\n",
		cfg.frames, s.Width, s.Height, time.Since(start).Round(time.Millisecond),
		total.Primitives, total.Rejected, total.Fragments)

	if cfg.preview {
		f, ok := stdout.(*os.File)
		if !ok {
			logger.Debug("preview skipped: stdout is not a file")
			return nil
		}
		if err := preview.Print(f, last); err != nil {
			if errors.Is(err, preview.ErrNotTerminal) {
				logger.Debug("preview skipped: stdout is not a terminal")
				return nil
			}
			return err
		}
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "softpipe: %v\n", err)
		os.Exit(1)
	}
}
