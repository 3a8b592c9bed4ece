package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kquant/internal/blobstore"
	"kquant/internal/config"
	"kquant/internal/ffmpeg"
	"kquant/internal/imageproc"
	"kquant/internal/kmeans"
	"kquant/internal/logging"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	cfg, err := config.Parse("kquant", args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if cfg.Interactive {
		if err := cfg.Prompt(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "quantization failed", "error", err)
		if errors.Is(err, kmeans.ErrInvalidParameter) {
			return 2
		}
		return 1
	}
	return 0
}

// run loads the input, clusters it and writes the output and optional report.
func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	start := time.Now()

	src, err := loadImage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	pixels, width, height := imageproc.Pixels(src)
	logger.InfoContext(ctx, "image loaded",
		"input", cfg.Input,
		"width", width,
		"height", height,
		"elapsed", time.Since(start),
	)

	opts, err := cfg.QuantizerOptions()
	if err != nil {
		return err
	}
	q, err := kmeans.New(cfg.K, append(opts, kmeans.WithLogger(logger))...)
	if err != nil {
		return err
	}
	mode, err := cfg.RenderMode()
	if err != nil {
		return err
	}

	centroids, err := q.Run(ctx, pixels)
	if err != nil {
		return err
	}
	out, err := q.Render(ctx, image.Pt(width, height), pixels, centroids, mode)
	if err != nil {
		return err
	}
	if mode == kmeans.ModePalette && cfg.Labels {
		imageproc.LabelSwatches(out, centroids, cfg.TileSize)
	}

	data, err := imageproc.Encode(out, cfg.Output)
	if err != nil {
		return err
	}
	if err := save(ctx, cfg.Output, data); err != nil {
		return err
	}

	if cfg.Report != "" {
		report, err := imageproc.AnalyzePalette(ctx, pixels, centroids, q.Dist(), q.Workers())
		if err != nil {
			return err
		}
		body, err := report.JSON()
		if err != nil {
			return err
		}
		if err := save(ctx, cfg.Report, body); err != nil {
			return err
		}
		logger.InfoContext(ctx, "report saved", "report", cfg.Report)
	}

	logger.InfoContext(ctx, "output saved", "output", cfg.Output, "elapsed", time.Since(start))
	return nil
}

func loadImage(ctx context.Context, cfg *config.Config, logger *logging.Logger) (image.Image, error) {
	if ffmpeg.IsVideo(cfg.Input) {
		loc, err := blobstore.ParseLocation(cfg.Input)
		if err != nil {
			return nil, err
		}
		if loc.Scheme != blobstore.SchemeFile {
			return nil, fmt.Errorf("video inputs must be local paths or URLs ffmpeg can open: %s", cfg.Input)
		}
		info, err := ffmpeg.ProbeVideo(ctx, loc.Key)
		if err != nil {
			return nil, fmt.Errorf("error getting video info: %w", err)
		}
		logger.InfoContext(ctx, "video probed",
			"width", info.Width,
			"height", info.Height,
			"fps", info.FrameRate,
			"hdr", info.HDR,
		)
		return ffmpeg.ExtractFrame(ctx, loc.Key, ffmpeg.FrameOptions{
			At:     cfg.FrameAt,
			HDR:    info.HDR,
			Logger: logger,
		})
	}

	store, name, err := blobstore.Resolve(ctx, cfg.Input)
	if err != nil {
		return nil, err
	}
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	img, _, err := imageproc.Decode(data)
	return img, err
}

func save(ctx context.Context, location string, data []byte) error {
	store, name, err := blobstore.Resolve(ctx, location)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data, imageproc.ContentType(name))
}
