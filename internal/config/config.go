// Package config collects and validates command line settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"kquant/internal/kmeans"
)

// Config holds the settings for one quantization run.
type Config struct {
	Input       string
	Output      string
	Report      string
	K           int
	Iterations  int
	Metric      string
	P           float64
	Mode        string
	Workers     int
	Seed        uint64
	TileSize    int
	Labels      bool
	FrameAt     string
	Interactive bool
	LogLevel    string
	LogFormat   string
}

// Default returns the settings used when a flag is not given.
func Default() Config {
	return Config{
		K:          8,
		Iterations: 10,
		Metric:     kmeans.MetricSquaredEuclidean.String(),
		P:          2,
		Mode:       kmeans.ModeImage.String(),
		TileSize:   kmeans.DefaultTileSize,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Parse parses command line arguments (without the program name).
// Usage and parse errors are written to output.
func Parse(name string, args []string, output io.Writer) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Input, "input", "", "Input image or video (path, s3://bucket/key or minio://host/bucket/key)")
	fs.StringVar(&cfg.Output, "output", "", "Output image location; the extension picks the format")
	fs.StringVar(&cfg.Report, "report", "", "Optional location for a JSON palette report")
	fs.IntVar(&cfg.K, "k", cfg.K, "Number of colors")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Number of refinement passes")
	fs.StringVar(&cfg.Metric, "metric", cfg.Metric, "Distance metric: euclidean or minkowski")
	fs.Float64Var(&cfg.P, "p", cfg.P, "Minkowski exponent (1 manhattan, 2 euclidean, inf chebyshev)")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Output mode: image or palette")
	fs.IntVar(&cfg.Workers, "workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Random seed for centroid sampling (0 = random)")
	fs.IntVar(&cfg.TileSize, "tile", cfg.TileSize, "Palette swatch size in pixels")
	fs.BoolVar(&cfg.Labels, "labels", false, "Write hex codes on palette swatches")
	fs.StringVar(&cfg.FrameAt, "frame-at", "", "Timestamp of the frame to quantize for video inputs")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Prompt for missing settings")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return &cfg, nil
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, &kmeans.ParamError{Name: "input", Value: c.Input, Reason: "required"})
	}
	if c.Output == "" {
		errs = append(errs, &kmeans.ParamError{Name: "output", Value: c.Output, Reason: "required"})
	}
	if c.K <= 0 {
		errs = append(errs, &kmeans.ParamError{Name: "k", Value: c.K, Reason: "must be positive"})
	}
	if c.Iterations < 0 {
		errs = append(errs, &kmeans.ParamError{Name: "iterations", Value: c.Iterations, Reason: "must not be negative"})
	}
	metric, err := kmeans.ParseMetric(c.Metric)
	if err != nil {
		errs = append(errs, err)
	}
	if metric == kmeans.MetricMinkowski && (math.IsNaN(c.P) || c.P <= 0) {
		errs = append(errs, &kmeans.ParamError{Name: "p", Value: c.P, Reason: "must be > 0"})
	}
	if _, err := kmeans.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.TileSize <= 0 {
		errs = append(errs, &kmeans.ParamError{Name: "tile", Value: c.TileSize, Reason: "must be positive"})
	}
	return errors.Join(errs...)
}

// QuantizerOptions translates the settings into kmeans options. Call
// Validate first.
func (c *Config) QuantizerOptions() ([]kmeans.Option, error) {
	metric, err := kmeans.ParseMetric(c.Metric)
	if err != nil {
		return nil, err
	}
	opts := []kmeans.Option{
		kmeans.WithIterations(c.Iterations),
		kmeans.WithMetric(metric, c.P),
		kmeans.WithWorkers(c.Workers),
		kmeans.WithTileSize(c.TileSize),
	}
	if c.Seed != 0 {
		opts = append(opts, kmeans.WithSeed(c.Seed))
	}
	return opts, nil
}

// RenderMode returns the parsed output mode.
func (c *Config) RenderMode() (kmeans.Mode, error) {
	return kmeans.ParseMode(c.Mode)
}
